package main

import (
	"context"
	"fmt"
	"time"

	"career-match/internal/app"
	"career-match/internal/config"
	"career-match/internal/pipeline"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch postings from the configured sources and store them",
	Long:  "Runs every query through the job sources (JSearch, and LinkedIn when enabled) on a bounded worker pool and prints the ingest summary.",
	RunE:  runIngest,
}

var (
	ingestQueries []string
	ingestWorkers int
	ingestTimeout time.Duration
)

func init() {
	ingestCmd.Flags().StringSliceVarP(&ingestQueries, "query", "q", nil, "Query to ingest (repeatable; defaults to INGEST_QUERIES)")
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "Concurrent queries (defaults to INGEST_WORKERS)")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 10*time.Minute, "Overall timeout")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to init container: %w", err)
	}
	defer func() { _ = c.Close() }()

	queries := ingestQueries
	if len(queries) == 0 {
		queries = cfg.Ingest.Queries
	}
	workers := ingestWorkers
	if workers <= 0 {
		workers = cfg.Ingest.Workers
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ingestTimeout)
	defer cancel()

	sum, err := c.Ingest.Run(ctx, pipeline.IngestParams{
		Queries:          queries,
		Workers:          workers,
		QueriesPerSecond: cfg.JSearch.RPS,
	})
	if err != nil {
		return fmt.Errorf("ingest interrupted: %w", err)
	}
	return printJSON(cmd, sum)
}
