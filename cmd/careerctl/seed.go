package main

import (
	"context"
	"fmt"
	"time"

	"career-match/internal/app"
	"career-match/internal/config"
	"career-match/internal/repository"
	"career-match/internal/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo job corpus",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to init container: %w", err)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	s := seeder.JobSeeder{DB: c.DB, Jobs: repository.NewPostgresJobRepository(c.DB), Log: c.Logger}
	saved, err := s.Run(ctx)
	if err != nil {
		return err
	}
	if saved > 0 {
		_ = c.Cache.InvalidateSearch(ctx)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d jobs\n", saved)
	return nil
}
