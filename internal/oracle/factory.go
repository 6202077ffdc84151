package oracle

import (
	"fmt"
	"strings"
)

// NewProvider creates a classification oracle from configuration. An
// empty provider name returns (nil, nil): the oracle is optional and
// nil means fallback sentences produce no nodes.
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
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
