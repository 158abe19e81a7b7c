// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the graphavalanche CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/graphavalanche/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials read from the secrets directory at startup.
var loadedSecrets secrets.Store

// logger is configured by the root command before any subcommand runs.
var logger = slog.New(slog.DiscardHandler)

// rootCmd is the base command for the graphavalanche CLI.
var rootCmd = &cobra.Command{
	Use:   "graphavalanche",
	Short: "Build citation graphs from paper lists using OpenAlex",
	Long: `graphavalanche reads a list of papers (internal ID plus DOI), looks up
each paper's references in OpenAlex, resolves the referenced works back to
DOIs, and keeps the citations whose two ends are both in the list. The result
is a directed citation graph with node, edge, and density statistics.

Input may be CSV, JSON, JSON Lines, YAML, TOML, or Parquet. The graph is
written as node-link JSON, YAML, or Cytoscape.js JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./graphavalanche.yaml or ~/.config/graphavalanche/graphavalanche.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of credential files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-batch progress")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("graphavalanche")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "graphavalanche"))
		}
	}

	viper.SetEnvPrefix("GRAPHAVALANCHE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
