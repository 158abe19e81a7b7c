// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/graphavalanche/internal/graph"
	"github.com/pdiddy/graphavalanche/internal/ingest"
	"github.com/pdiddy/graphavalanche/internal/link"
	"github.com/pdiddy/graphavalanche/internal/openalex"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

var linkCmd = &cobra.Command{
	Use:   "link <input-file>",
	Short: "Discover citations between papers and build the citation graph",
	Long: `Link loads paper records, fetches each paper's reference list from
OpenAlex in batches, resolves the referenced works to DOIs, and keeps the
citations whose source and target are both in the input. The graph is written
to --output (default stdout) and a run summary to stderr.

A failed batch is skipped, not retried, and listed in the summary. The graph
is still written. Use --strict to exit non-zero when any batch failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringP("output", "o", "", "write the graph to this file instead of stdout")
	linkCmd.Flags().StringP("format", "f", string(types.OutputJSON), "graph format: json, yaml, or cytoscape")
	linkCmd.Flags().Bool("strict", false, "exit non-zero when any batch failed")
	linkCmd.Flags().Bool("timeline", false, "print papers in publication order after the summary")

	linkCmd.Flags().Int("batch-size", types.DefaultBatchSize, "identifiers per OpenAlex query")
	linkCmd.Flags().Duration("pace", types.DefaultPace, "minimum spacing between queries (0 disables)")
	linkCmd.Flags().Duration("timeout", types.DefaultTimeout, "per-request timeout")
	linkCmd.Flags().String("base-url", openalex.DefaultBaseURL, "OpenAlex works endpoint")
	linkCmd.Flags().String("email", "", "contact email for the OpenAlex polite pool")

	bindLinkFlags()

	rootCmd.AddCommand(linkCmd)
}

func bindLinkFlags() {
	_ = viper.BindPFlag(keyBatchSize, linkCmd.Flags().Lookup("batch-size"))
	_ = viper.BindPFlag(keyPace, linkCmd.Flags().Lookup("pace"))
	_ = viper.BindPFlag(keyTimeout, linkCmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag(keyBaseURL, linkCmd.Flags().Lookup("base-url"))
	_ = viper.BindPFlag(keyEmail, linkCmd.Flags().Lookup("email"))
}

func runLink(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch types.OutputFormat(format) {
	case types.OutputJSON, types.OutputYAML, types.OutputCytoscape:
	default:
		return fmt.Errorf("unsupported format %q (json, yaml, cytoscape)", format)
	}

	records, err := ingest.LoadFile(args[0])
	if err != nil {
		return err
	}
	records = ingest.Clean(records)

	cfg := pipelineConfig()
	client := openalex.NewClient(cfg.OpenAlex)
	client.Logger = logger
	linker, err := link.NewLinker(client, cfg.Link, logger)
	if err != nil {
		return err
	}

	run, err := linker.Link(cmd.Context(), records)
	if err != nil {
		return err
	}

	if err := writeGraph(cmd, run.Graph, types.OutputFormat(format)); err != nil {
		return err
	}

	summary := cmd.ErrOrStderr()
	printReport(summary, run.Report, run.Stats)
	if timeline, _ := cmd.Flags().GetBool("timeline"); timeline {
		printTimeline(summary, run)
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && run.Report.Degraded() {
		return fmt.Errorf("%d batch(es) failed", len(run.Report.Failures))
	}
	return nil
}

func writeGraph(cmd *cobra.Command, g *graph.Graph, format types.OutputFormat) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return graph.Write(cmd.OutOrStdout(), g, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := graph.Write(f, g, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printReport(w io.Writer, r link.Report, s graph.Stats) {
	fmt.Fprintf(w, "\nRun %s\n", r.RunID)
	fmt.Fprintf(w, "  records:      %d (%d indexed, %d skipped, %d duplicate identifiers)\n",
		r.Records, r.Indexed, r.Skipped, r.Duplicates)
	fmt.Fprintf(w, "  references:   %d works fetched (%d unmatched), %d referenced works, %d resolved\n",
		r.Fetched, r.Unmatched, r.ExternalIDs, r.Resolved)
	fmt.Fprintf(w, "  connections:  %d\n", r.Connections)
	fmt.Fprintf(w, "  graph:        %d nodes, %d edges, density %.4f\n", s.Nodes, s.Edges, s.Density)
	fmt.Fprintf(w, "  elapsed:      %s\n", r.Elapsed.Round(time.Millisecond))

	if !r.Degraded() {
		return
	}
	fmt.Fprintf(w, "\n%d batch(es) skipped; the graph may be missing edges:\n", len(r.Failures))
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  %-7s batch %d (%d ids): %s: %s\n", f.Stage, f.Batch+1, f.Size, f.Kind, f.Message)
	}
}

func printTimeline(w io.Writer, run *link.Run) {
	g := run.Graph
	fmt.Fprintln(w, "\nTimeline:")
	for _, e := range g.Timeline() {
		date := "undated"
		if e.Dated {
			date = e.Time.Format("2006-01-02")
		}
		doi, ok := run.Index.Identifier(e.ID)
		if !ok {
			doi = "-"
		}
		fmt.Fprintf(w, "  %-10s  %s  %s  %s (in %d, out %d)\n", date, e.ID, doi, e.Label, g.InDegree(e.ID), g.OutDegree(e.ID))
	}
}
