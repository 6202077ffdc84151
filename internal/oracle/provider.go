// Package oracle wraps external classification services behind a
// capability interface. The pipeline consults an oracle only for
// sentences no deterministic rule could type; a missing, failing, or
// "None"-returning oracle simply yields no node.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/imradgraph/internal/model"
)

// Provider defines the interface for classification oracles
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify asks the oracle to label one sentence. The returned
	// text is raw; callers sanitize it with SanitizeLabel.
	Classify(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Request carries one sentence to classify
type Request struct {
	Sentence string
	Section  string
}

// Response is the oracle's raw answer
type Response struct {
	Text   string // Raw label text from the oracle
	Model  string // Model that produced it
	Tokens int    // Token consumption, when reported
}

// Config holds oracle provider configuration
type Config struct {
	Provider      string // "openai", "anthropic", "ollama", ""
	Model         string
	APIKey        string
	BaseURL       string
	Timeout       int // seconds
	MaxTokens     int
	RatePerSecond float64
	Burst         int
}

// systemPrompt frames every oracle call.
const systemPrompt = "You are a scientific-paper annotation assistant. " +
	"Answer with exactly one word: the requested label and nothing else."

// BuildPrompt constructs the classification prompt for a sentence.
func BuildPrompt(sentence string) string {
	return fmt.Sprintf("Classify the following sentence into one of: "+
		"Hypothesis, Experiment, Dataset, Analysis, Conclusion, None.\n"+
		"Sentence: '''%s'''", sentence)
}

// SanitizeLabel reduces a raw oracle response to a valid node type
// name or "None". Only the first whitespace token counts; anything
// unrecognized collapses to "None".
func SanitizeLabel(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "None"
	}
	label := strings.Trim(fields[0], ".,:;\"'")
	if _, ok := model.ParseNodeType(label); ok {
		return label
	}
	return "None"
}
