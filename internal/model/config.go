package model

// Config is the full runtime configuration. Values merge in the usual
// order: defaults, config file, PERSONARIUM_* environment variables,
// CLI flags.
type Config struct {
	Reddit    RedditConfig    `yaml:"reddit" mapstructure:"reddit"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Proxy     ProxyConfig     `yaml:"proxy" mapstructure:"proxy"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
}

// RedditConfig selects the listing endpoint and how we identify to it.
type RedditConfig struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig bounds a single account fetch.
type FetchConfig struct {
	Limit          int   `yaml:"limit" mapstructure:"limit"`
	TimeoutSeconds int   `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxBodyBytes   int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Retries        int   `yaml:"retries" mapstructure:"retries"`
	RespectRobots  bool  `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ProxyConfig overrides the environment proxy settings when set.
type ProxyConfig struct {
	HTTP  string `yaml:"http" mapstructure:"http"`
	HTTPS string `yaml:"https" mapstructure:"https"`
}

// CacheConfig controls the layered listing-page cache. Dir empty means
// the OS user cache dir.
type CacheConfig struct {
	Enabled          bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir              string `yaml:"dir" mapstructure:"dir"`
	MemoryTTLMinutes int    `yaml:"memory_ttl_minutes" mapstructure:"memory_ttl_minutes"`
	DiskTTLHours     int    `yaml:"disk_ttl_hours" mapstructure:"disk_ttl_hours"`
}

// RateLimitConfig paces requests per listing host.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// BatchConfig sizes the batch worker pool.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// OutputConfig controls where and how reports are written.
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional summary provider. Disabled unless
// Provider is set.
type LLMConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"`
	Model           string `yaml:"model" mapstructure:"model"`
	APIKey          string `yaml:"-" mapstructure:"api_key"`
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxTokens       int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictCitations bool   `yaml:"strict_citations" mapstructure:"strict_citations"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Reddit: RedditConfig{
			BaseURL:   "https://www.reddit.com",
			UserAgent: "personarium/0.1 (+https://github.com/personarium/personarium)",
		},
		Fetch: FetchConfig{
			Limit:          100,
			TimeoutSeconds: 120,
			MaxBodyBytes:   2_000_000,
			Retries:        3,
			RespectRobots:  false,
		},
		Cache: CacheConfig{
			Enabled:          true,
			MemoryTTLMinutes: 15,
			DiskTTLHours:     24,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Batch: BatchConfig{
			Concurrency: 3,
		},
		Output: OutputConfig{
			Dir:           "exports",
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			TimeoutSeconds:  30,
			MaxTokens:       1000,
			StrictCitations: true,
		},
	}
}
