package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/personarium/personarium/internal/analyzer"
	"github.com/personarium/personarium/internal/llm"
	"github.com/personarium/personarium/internal/model"
	"github.com/personarium/personarium/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	limit       int
	outJSON     bool
	outCSV      bool
	outExcel    bool
	outMD       bool
	outputDir   string
	timeout     time.Duration
	userAgent   string
	baseURL     string
	noCache     bool
	noFooter    bool
	respectBots bool
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <account>",
	Short: "Analyze a single account and build its persona report",
	Long: `Analyze fetches an account's public comments and posts to:
- Extract age, location, occupation, and relationship status claims
- Classify personality archetype and activity level
- Collect motivations, goals, behaviors, and frustrations with citations
- Score how much of the requested history actually backed the persona
- Render the persona to the console and export the selected formats

The account may be a bare username, u/name, or a full profile URL.

Example:
  personarium analyze spez
  personarium analyze u/spez --excel --md
  personarium analyze https://www.reddit.com/user/spez --limit 50 --json
  personarium analyze spez --llm openai --llm-model gpt-4o-mini --md`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Fetch flags
	analyzeCmd.Flags().IntVar(&limit, "limit", 100, "max comments to fetch (posts fetch half)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default: built-in descriptive agent)")
	analyzeCmd.Flags().StringVar(&baseURL, "base-url", "", "listing API base URL (default: https://www.reddit.com)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&respectBots, "respect-robots", false, "honor robots.txt on the listing host")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Output flags
	analyzeCmd.Flags().BoolVar(&outJSON, "json", false, "export JSON (default when no format is chosen)")
	analyzeCmd.Flags().BoolVar(&outCSV, "csv", false, "export CSV")
	analyzeCmd.Flags().BoolVar(&outExcel, "excel", false, "export Excel workbook")
	analyzeCmd.Flags().BoolVar(&outMD, "md", false, "export Markdown")
	analyzeCmd.Flags().StringVar(&outputDir, "output-dir", "exports", "output directory for exports")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (default: provider-specific)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	account := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", account)
		fmt.Fprintf(os.Stderr, "Limit: %d\n", cfg.Fetch.Limit)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	a := analyzer.New(&cfg)

	rec, err := a.Analyze(ctx, account)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Fetched %d comments and %d posts\n", rec.TotalComments, rec.TotalPosts)
		fmt.Fprintf(os.Stderr, "✓ Coverage index: %d/100 (%s confidence)\n", rec.Coverage.Index, rec.Coverage.Confidence)
		if rec.LLM != nil && rec.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", rec.LLM.Provider, rec.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := report.NewRenderer(cfg.Output.Dir, cfg.Output.IncludeFooter)
	renderer.RenderConsole(os.Stdout, rec)

	if !outJSON && !outCSV && !outExcel && !outMD {
		outJSON = true
	}
	return exportRecord(renderer, rec, outJSON, outCSV, outExcel, outMD)
}

// exportRecord writes the selected formats and reports each path. The
// LLM summary, when present, lands in a .llm.md file next to the
// Markdown report so generated prose never mixes with the heuristics.
func exportRecord(renderer *report.Renderer, rec *model.PersonaRecord, asJSON, asCSV, asExcel, asMD bool) error {
	if asJSON {
		path, err := renderer.RenderJSON(rec)
		if err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ JSON: %s\n", path)
	}

	if asCSV {
		path, err := renderer.RenderCSV(rec)
		if err != nil {
			return fmt.Errorf("export CSV: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ CSV: %s\n", path)
	}

	if asExcel {
		path, err := renderer.RenderExcel(rec)
		if err != nil {
			return fmt.Errorf("export Excel: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Excel: %s\n", path)
	}

	if asMD {
		path, err := renderer.RenderMarkdown(rec)
		if err != nil {
			return fmt.Errorf("export Markdown: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown: %s\n", path)

		if content := llm.RenderSeparateMarkdown(rec.LLM); content != "" {
			llmPath := strings.TrimSuffix(path, ".md") + ".llm.md"
			if err := renderer.RenderLLMMarkdown(content, llmPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "✓ LLM summary: %s\n", llmPath)
			}
		}
	}

	return nil
}

// buildConfig merges defaults, the loaded config file, PERSONARIUM_*
// environment variables and any analysis flags the user set.
func buildConfig(cmd *cobra.Command) (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Fetch.Limit = limit
	}
	if flags.Changed("timeout") {
		cfg.Fetch.TimeoutSeconds = int(timeout.Seconds())
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

	// --llm selects the flag provider; a provider from the config file
	// or environment enables the summary too.
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

// configureLLM resolves the provider's API key from the conventional
// environment variables.
func configureLLM(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama runs locally and needs no key.
		if base := os.Getenv("OLLAMA_BASE_URL"); base != "" {
			cfg.LLM.BaseURL = base
		}
	}
	return nil
}
