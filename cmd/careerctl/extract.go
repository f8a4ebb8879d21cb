package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"career-match/internal/config"
	"career-match/internal/infrastructure/llm"
	"career-match/internal/usecase"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills from a CV or job description",
	Long:  "Extracts skills with the LLM when GEMINI_API_KEY is set, otherwise with the built-in dictionary. Reads --file, or stdin when it is '-'.",
	RunE:  runExtract,
}

var (
	extractFile string
	extractText string
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to a text file, or - for stdin")
	extractCmd.Flags().StringVarP(&extractText, "text", "t", "", "Inline text")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	text, err := readInputText(cmd, extractText, extractFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

	uc := usecase.NewSkillExtractionUsecase(nil, nil, logger)
	gen, err := llm.NewGeminiClient(cmd.Context(), cfg.LLM, logger)
	switch {
	case err == nil:
		uc = usecase.NewSkillExtractionUsecase(llm.NewSkillAnalyzer(gen, logger), nil, logger)
	case !errors.Is(err, llm.ErrNotConfigured):
		logger.Printf("[LLM] client init failed, using dictionary err=%v", err)
	}

	ex, err := uc.Extract(cmd.Context(), text)
	if err != nil {
		return err
	}
	return printJSON(cmd, ex)
}

func readInputText(cmd *cobra.Command, inline, path string) (string, error) {
	switch {
	case inline != "" && path != "":
		return "", fmt.Errorf("use either --text or --file, not both")
	case inline != "":
		return inline, nil
	case path == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("provide --text or --file")
	}
}
