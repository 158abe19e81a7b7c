// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/graphavalanche/internal/index"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [identifiers...]",
	Short: "Print the canonical form of DOIs",
	Long: `Normalize lower-cases each identifier, trims whitespace, and strips
doi.org URL and doi: prefixes. With no arguments it reads one identifier per
line from stdin.`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) > 0 {
		for _, a := range args {
			fmt.Fprintln(out, index.Normalize(a))
		}
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		fmt.Fprintln(out, index.Normalize(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}
