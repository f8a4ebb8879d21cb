package main

import (
	"fmt"

	"career-match/internal/config"
	"career-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local testing",
	RunE:  runToken,
}

var (
	tokenUserID string
	tokenEmail  string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User ID (random when empty)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "dev@example.com", "Email claim")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	userID := uuid.New()
	if tokenUserID != "" {
		userID, err = uuid.Parse(tokenUserID)
		if err != nil {
			return fmt.Errorf("invalid --user-id: %w", err)
		}
	}

	tok, err := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn).GenerateAccessToken(userID, tokenEmail)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	return printJSON(cmd, map[string]string{
		"user_id":      userID.String(),
		"access_token": tok,
		"expires_in":   cfg.JWT.AccessExpiresIn.String(),
	})
}
