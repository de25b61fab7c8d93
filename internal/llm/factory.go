package llm

import (
	"fmt"
	"strings"

	"github.com/personarium/personarium/internal/model"
)

// NewProvider builds the provider named in config. An empty name means
// the LLM layer is disabled and yields (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the runtime LLM configuration.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:        modelConfig.Provider,
		Model:           modelConfig.Model,
		APIKey:          modelConfig.APIKey,
		BaseURL:         modelConfig.BaseURL,
		Timeout:         modelConfig.TimeoutSeconds,
		StrictCitations: modelConfig.StrictCitations,
		MaxTokens:       modelConfig.MaxTokens,
	}
}
