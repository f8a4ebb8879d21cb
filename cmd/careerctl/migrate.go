package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"career-match/internal/config"
	"career-match/internal/database/migration"
	dbpostgres "career-match/internal/database/postgres"
	"career-match/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var (
	migrateDir    string
	migrateStatus bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "Read migrations from this directory instead of the embedded set")
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "List pending migrations without applying them")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r := migration.Runner{FS: migrations.FS, Logger: log.Default()}
	if migrateDir != "" {
		r = migration.Runner{Dir: migrateDir, Logger: log.Default()}
	}
	if migrateStatus {
		todo, err := r.Pending(ctx, db.SQLDB())
		if err != nil {
			return err
		}
		for _, m := range todo {
			fmt.Fprintf(cmd.OutOrStdout(), "pending V%d %s\n", m.Version, m.Name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d pending\n", len(todo))
		return nil
	}

	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
