package oracle

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Hypothesis", "Hypothesis"},
		{"Hypothesis.", "Hypothesis"},
		{"  Dataset\n", "Dataset"},
		{"Analysis is the most likely label", "Analysis"},
		{"Conclusion:", "Conclusion"},
		{"\"Experiment\"", "Experiment"},
		{"None", "None"},
		{"hypothesis", "None"},
		{"Something else entirely", "None"},
		{"", "None"},
		{"   ", "None"},
	}
	for _, tt := range tests {
		if got := SanitizeLabel(tt.raw); got != tt.want {
			t.Errorf("SanitizeLabel(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("We fasted the mice.")

	if !strings.Contains(got, "Hypothesis, Experiment, Dataset, Analysis, Conclusion, None") {
		t.Errorf("prompt missing label list: %q", got)
	}
	if !strings.Contains(got, "'''We fasted the mice.'''") {
		t.Errorf("prompt missing quoted sentence: %q", got)
	}
}

func TestNewProvider_EmptyIsDisabled(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("empty provider name must mean no oracle, got %T", p)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "skynet"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProvider_RequiresCredentials(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("openai without an API key should fail")
	}
	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("anthropic without an API key should fail")
	}
}

func TestOllama_RequiresModel(t *testing.T) {
	p, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("construction should succeed: %v", err)
	}
	if _, err := p.Classify(context.Background(), Request{Sentence: "x"}); err == nil {
		t.Error("classify without a model should fail")
	}
}

// countingProvider records calls for the decorator tests.
type countingProvider struct {
	calls int
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) Classify(ctx context.Context, req Request) (*Response, error) {
	c.calls++
	return &Response{Text: "Hypothesis", Model: "counting"}, nil
}

func (c *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func TestCached_RepeatSentenceHitsCache(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCached(inner, t.TempDir(), time.Hour)

	req := Request{Sentence: "We fasted the mice.", Section: "methods"}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := cached.Classify(ctx, req)
		if err != nil {
			t.Fatalf("classify %d: %v", i, err)
		}
		if resp.Text != "Hypothesis" {
			t.Errorf("classify %d: text = %q", i, resp.Text)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCached_DistinctSentencesMiss(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCached(inner, t.TempDir(), time.Hour)
	ctx := context.Background()

	_, _ = cached.Classify(ctx, Request{Sentence: "First sentence."})
	_, _ = cached.Classify(ctx, Request{Sentence: "Second sentence."})

	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCached_DiskLayerSurvivesNewInstance(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	req := Request{Sentence: "We fasted the mice."}

	first := &countingProvider{}
	_, _ = NewCached(first, dir, time.Hour).Classify(ctx, req)

	second := &countingProvider{}
	resp, err := NewCached(second, dir, time.Hour).Classify(ctx, req)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if second.calls != 0 {
		t.Errorf("disk cache should have answered, inner calls = %d", second.calls)
	}
	if resp.Text != "Hypothesis" {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestRateLimited_Delegates(t *testing.T) {
	inner := &countingProvider{}
	limited := NewRateLimited(inner, 100, 10)

	resp, err := limited.Classify(context.Background(), Request{Sentence: "x"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if resp.Text != "Hypothesis" || inner.calls != 1 {
		t.Errorf("delegation failed: %+v, calls %d", resp, inner.calls)
	}
	if limited.Name() != "counting" {
		t.Errorf("Name() = %q", limited.Name())
	}
}

func TestRateLimited_CancelledContext(t *testing.T) {
	inner := &countingProvider{}
	// Burst 1 at a very low rate: the second call has to wait and the
	// cancelled context must abort it.
	limited := NewRateLimited(inner, 0.001, 1)

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := limited.Classify(ctx, Request{Sentence: "x"}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	cancel()
	if _, err := limited.Classify(ctx, Request{Sentence: "y"}); err == nil {
		t.Error("expected context error on second call")
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}
