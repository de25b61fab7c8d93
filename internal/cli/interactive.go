package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/personarium/personarium/internal/analyzer"
	"github.com/personarium/personarium/internal/report"
	"github.com/spf13/cobra"
)

var noExport bool

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Analyze accounts one by one from an interactive prompt",
	Long: `Interactive prompts for account names in a loop, renders each
persona to the console, and exports an Excel workbook per account
(falling back to JSON when the workbook cannot be written).

One account failing never ends the session; enter 'q' to quit.

Example:
  personarium interactive
  personarium interactive --no-export --limit 50`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	interactiveCmd.Flags().IntVar(&limit, "limit", 100, "max comments to fetch (posts fetch half)")
	interactiveCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "timeout for one account's analysis")
	interactiveCmd.Flags().StringVar(&outputDir, "output-dir", "exports", "output directory for exports")
	interactiveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	interactiveCmd.Flags().BoolVar(&noExport, "no-export", false, "render to console only, write no files")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Personarium - Reddit Persona Analyzer")
	fmt.Println("=====================================")

	a := analyzer.New(&cfg)
	renderer := report.NewRenderer(cfg.Output.Dir, cfg.Output.IncludeFooter)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println()
		fmt.Println(strings.Repeat("=", 50))
		fmt.Print("\nEnter Reddit username or profile URL (or 'q' to quit): ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.EqualFold(input, "q") {
			break
		}

		fmt.Printf("\nAnalyzing: %s\n", input)
		if err := analyzeOne(a, renderer, input); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", input, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Println("\nThank you for using Personarium!")
	return nil
}

// analyzeOne runs a single account through the analyzer and exports
// the workbook. Errors stay scoped to this account.
func analyzeOne(a *analyzer.Analyzer, renderer *report.Renderer, input string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	rec, err := a.Analyze(ctx, input)
	if err != nil {
		return err
	}

	renderer.RenderConsole(os.Stdout, rec)

	if noExport {
		return nil
	}

	path, err := renderer.RenderExcel(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Excel export failed: %v\n", err)
		jsonPath, jerr := renderer.RenderJSON(rec)
		if jerr != nil {
			return fmt.Errorf("JSON fallback: %w", jerr)
		}
		fmt.Fprintf(os.Stderr, "✓ JSON (fallback): %s\n", jsonPath)
		return nil
	}

	fmt.Fprintf(os.Stderr, "✓ Excel: %s\n", path)
	return nil
}
