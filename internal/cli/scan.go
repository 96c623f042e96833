package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/infomate/veracity/internal/logging"
	"github.com/infomate/veracity/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	scanTimeout   time.Duration
	scanOutJSON   string
	scanNoBrowser bool
)

// scanCmd analyzes a single URL from the command line.
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Analyze a single article URL and print the verdict",
	Long: `Scan runs the full analysis pipeline for one URL and prints the
result as JSON.

Example:
  veracity scan https://n.news.naver.com/article/001/0001234567
  veracity scan https://example.com/news/2025/08/30/item --json verdict.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	scanCmd.Flags().StringVar(&scanOutJSON, "json", "", "write JSON result to this path instead of stdout")
	scanCmd.Flags().BoolVar(&scanNoBrowser, "no-browser", false, "skip the headless browser, fetch with plain HTTP")
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scanNoBrowser {
		cfg.Browser.Enabled = false
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p, cleanup, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	analysis, err := p.Analyze(ctx, url)
	if err != nil {
		var extractionErr *pipeline.ExtractionError
		if errors.As(err, &extractionErr) {
			// Still print the partial facts for diagnostics.
			_ = writeJSON(extractionErr.Partial)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Publisher: %s\n", analysis.PublisherName)
		fmt.Fprintf(os.Stderr, "✓ Final score: %.2f (%s)\n",
			analysis.FinalAnalysis.FinalScore, analysis.FinalAnalysis.Grade)
		fmt.Fprintf(os.Stderr, "✓ Related articles: %d\n", len(analysis.RelatedArticles))
	}

	return writeJSON(analysis)
}

func writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if scanOutJSON == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(scanOutJSON, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", scanOutJSON)
	}
	return nil
}
