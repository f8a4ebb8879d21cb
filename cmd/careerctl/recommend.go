package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-match/internal/app"
	"career-match/internal/config"
	"career-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank stored postings for a user or an explicit skill list",
	RunE:  runRecommend,
}

var (
	recommendUserID string
	recommendSkills []string
	recommendLimit  int
	recommendBasic  bool
)

func init() {
	recommendCmd.Flags().StringVar(&recommendUserID, "user-id", "", "Use this user's stored skill profile")
	recommendCmd.Flags().StringSliceVarP(&recommendSkills, "skill", "s", nil, "Skill to match (repeatable; overrides the profile)")
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 5, "Number of recommendations")
	recommendCmd.Flags().BoolVar(&recommendBasic, "basic", false, "Skip LLM evaluation and use keyword matching only")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	userID := uuid.Nil
	if s := strings.TrimSpace(recommendUserID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid --user-id: %w", err)
		}
		userID = id
	}
	if userID == uuid.Nil && len(recommendSkills) == 0 {
		return fmt.Errorf("provide --user-id or at least one --skill")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to init container: %w", err)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
	defer cancel()

	enhanced := !recommendBasic
	out, err := c.Recommendations.Recommend(ctx, userID, usecase.JobRecommendationParams{
		Limit:       recommendLimit,
		UseEnhanced: &enhanced,
		Skills:      recommendSkills,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}
