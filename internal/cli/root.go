package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/personarium/personarium/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "personarium",
	Short: "Personarium - persona sketches from public Reddit activity",
	Long: `Personarium builds a behavioral persona profile for a Reddit account
from its public comments and posts.

It fetches recent activity through the public JSON listings, runs
lightweight heuristics over the text, and reports demographics,
personality archetype, motivations, goals, behaviors, and frustrations,
each backed by a citation to the post or comment it came from.

Every field is a heuristic reading of how the account presents itself
in public, not a verified fact about the person behind it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Personarium.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("personarium v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.personarium/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	// A .env file is the conventional home for OPENAI_API_KEY and
	// friends; absence is fine.
	_ = godotenv.Load()

	seedDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.personarium")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PERSONARIUM_*
	viper.SetEnvPrefix("PERSONARIUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// seedDefaults registers every config key with viper so environment
// overrides resolve even for keys absent from the config file.
func seedDefaults() {
	cfg := model.DefaultConfig()

	viper.SetDefault("reddit.base_url", cfg.Reddit.BaseURL)
	viper.SetDefault("reddit.user_agent", cfg.Reddit.UserAgent)
	viper.SetDefault("fetch.limit", cfg.Fetch.Limit)
	viper.SetDefault("fetch.timeout_seconds", cfg.Fetch.TimeoutSeconds)
	viper.SetDefault("fetch.max_body_bytes", cfg.Fetch.MaxBodyBytes)
	viper.SetDefault("fetch.retries", cfg.Fetch.Retries)
	viper.SetDefault("fetch.respect_robots", cfg.Fetch.RespectRobots)
	viper.SetDefault("proxy.http", cfg.Proxy.HTTP)
	viper.SetDefault("proxy.https", cfg.Proxy.HTTPS)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl_minutes", cfg.Cache.MemoryTTLMinutes)
	viper.SetDefault("cache.disk_ttl_hours", cfg.Cache.DiskTTLHours)
	viper.SetDefault("rate_limit.requests_per_second", cfg.RateLimit.RequestsPerSecond)
	viper.SetDefault("rate_limit.burst", cfg.RateLimit.Burst)
	viper.SetDefault("batch.concurrency", cfg.Batch.Concurrency)
	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
	viper.SetDefault("llm.provider", cfg.LLM.Provider)
	viper.SetDefault("llm.model", cfg.LLM.Model)
	viper.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	viper.SetDefault("llm.timeout_seconds", cfg.LLM.TimeoutSeconds)
	viper.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	viper.SetDefault("llm.strict_citations", cfg.LLM.StrictCitations)
}
