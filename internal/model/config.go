package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Mode        string            `yaml:"mode" json:"mode"` // "rule" or "semantic"
	Store       StoreConfig       `yaml:"store" json:"store"`
	Oracle      OracleConfig      `yaml:"oracle" json:"oracle"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Database    DatabaseConfig    `yaml:"database" json:"database"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
}

// StoreConfig controls the learned-pattern store side file
type StoreConfig struct {
	Path  string `yaml:"path" json:"path"`   // JSON side file with learned cue patterns
	Learn bool   `yaml:"learn" json:"learn"` // Mine and persist new patterns from oracle labels
}

// OracleConfig controls the external classification oracle
type OracleConfig struct {
	Provider      string  `yaml:"provider" json:"provider"`   // openai, anthropic, ollama, "" = disabled
	Model         string  `yaml:"model" json:"model"`         // Provider-specific model name
	APIKey        string  `yaml:"api_key" json:"-"`           // Never serialized to JSON
	BaseURL       string  `yaml:"base_url" json:"base_url"`   // Custom endpoint (e.g. Ollama)
	Timeout       int     `yaml:"timeout" json:"timeout"`     // Seconds per call
	MaxTokens     int     `yaml:"max_tokens" json:"max_tokens"`
	RatePerSecond float64 `yaml:"rate_per_second" json:"rate_per_second"` // Oracle call budget
	Burst         int     `yaml:"burst" json:"burst"`
}

// CacheConfig controls the oracle response cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir" json:"dir"` // Disk layer location
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// DatabaseConfig controls the optional SQLite graph store
type DatabaseConfig struct {
	Path string `yaml:"path" json:"path"` // Empty disables persistence
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode: "rule",
		Store: StoreConfig{
			Path:  "learned_patterns.json",
			Learn: true,
		},
		Oracle: OracleConfig{
			Provider:      "", // Disabled by default
			Timeout:       30,
			MaxTokens:     16,
			RatePerSecond: 2,
			Burst:         5,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir(),
			TTL:     7 * 24 * time.Hour,
		},
		Output: OutputConfig{},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
