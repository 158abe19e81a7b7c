// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/graphavalanche/internal/ingest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input-file>",
	Short: "Check that every paper has a DOI and an ID",
	Long: `Validate loads paper records and lists those missing a DOI or an ID.
Such records are skipped by link. Exits non-zero when any record is listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	records, err := ingest.LoadFile(args[0])
	if err != nil {
		return err
	}

	problems := ingest.Validate(records)
	out := cmd.OutOrStdout()
	for _, p := range problems {
		fmt.Fprintln(out, p)
	}
	fmt.Fprintf(out, "%d record(s), %d invalid\n", len(records), len(problems))

	if len(problems) > 0 {
		return fmt.Errorf("%d record(s) missing a DOI or ID", len(problems))
	}
	return nil
}
