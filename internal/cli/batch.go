package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/personarium/personarium/internal/analyzer"
	"github.com/personarium/personarium/internal/model"
	"github.com/personarium/personarium/internal/report"
	"github.com/personarium/personarium/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	concurrency  int
	batchTimeout time.Duration
	fetchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple accounts from a file in parallel",
	Long: `Batch processes multiple accounts concurrently:
- Read account names from the input file (one per line, # for comments)
- Analyze accounts in parallel with a configurable worker count
- Fetches stay paced by the shared per-host rate limiter
- Write a JSON and Markdown report for every account

Example:
  personarium batch accounts.txt
  personarium batch accounts.txt --concurrency 5 --output-dir ./personas
  personarium batch accounts.txt --excel --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 3, "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch run")
	batchCmd.Flags().DurationVar(&fetchTimeout, "fetch-timeout", 2*time.Minute, "timeout for one account's fetches")

	// Fetch flags shared with analyze
	batchCmd.Flags().IntVar(&limit, "limit", 100, "max comments to fetch per account (posts fetch half)")
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default: built-in descriptive agent)")
	batchCmd.Flags().StringVar(&baseURL, "base-url", "", "listing API base URL (default: https://www.reddit.com)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&respectBots, "respect-robots", false, "honor robots.txt on the listing host")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Output flags
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "exports", "output directory for reports")
	batchCmd.Flags().BoolVar(&outExcel, "excel", false, "also export an Excel workbook per account")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (default: provider-specific)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := batchConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Personarium Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s\n", cfg.LLM.Provider)
	}
	fmt.Fprintf(os.Stderr, "\n")

	a := analyzer.New(&cfg)
	processor := worker.NewBatchProcessor(a, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading accounts from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d accounts with %d workers\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	renderer := report.NewRenderer(cfg.Output.Dir, cfg.Output.IncludeFooter)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Account, result.Error)
			continue
		}

		if err := exportRecord(renderer, result.Record, true, false, outExcel, true); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Account, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ u/%s (coverage: %d/100)\n",
			result.Record.Username, result.Record.Coverage.Index)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d accounts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	if len(results) > 0 && successCount == 0 {
		return fmt.Errorf("all %d accounts failed", failureCount)
	}
	return nil
}

// batchConfig mirrors buildConfig but maps the per-account fetch
// timeout from --fetch-timeout; --timeout bounds the whole run.
func batchConfig(cmd *cobra.Command) (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Fetch.Limit = limit
	}
	if flags.Changed("fetch-timeout") {
		cfg.Fetch.TimeoutSeconds = int(fetchTimeout.Seconds())
	}
	if flags.Changed("ua") {
		cfg.Reddit.UserAgent = userAgent
	}
	if flags.Changed("base-url") {
		cfg.Reddit.BaseURL = baseURL
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("concurrency") {
		cfg.Batch.Concurrency = concurrency
	} else if cfg.Batch.Concurrency > 0 {
		concurrency = cfg.Batch.Concurrency
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if respectBots {
		cfg.Fetch.RespectRobots = true
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if httpProxy != "" {
		cfg.Proxy.HTTP = httpProxy
	}
	if httpsProxy != "" {
		cfg.Proxy.HTTPS = httpsProxy
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
	}
	if cfg.LLM.Provider != "" {
		if err := configureLLM(&cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}
