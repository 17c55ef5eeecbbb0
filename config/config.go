package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/console"
	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/store"
)

// FileName is the config file looked up in the working directory and the home directory.
const FileName = ".whisper.json"

// ErrMissingAPIKey is returned when a narrative command runs without a Gemini key.
var ErrMissingAPIKey = errors.New("gemini API key is not configured (set GEMINI_API_KEY or run `whisper setup --api-key`)")

// Config is the root configuration structure.
type Config struct {
	Store    StoreConfig    `json:"store"`
	Gemini   GeminiConfig   `json:"gemini"`
	Git      GitConfig      `json:"git"`
	Filters  FilterConfig   `json:"filters"`
	Log      LogConfig      `json:"log"`
	Story    StoryConfig    `json:"story"`
	Classify ClassifyConfig `json:"classify"`
	Coupling CouplingConfig `json:"coupling"`
}

// StoreConfig selects the commit store backend.
type StoreConfig struct {
	URL       string `json:"url"`       // memory://, redis://, bolt://, sqlite://
	Namespace string `json:"namespace"` // Default: project_history
}

// GeminiConfig holds text generation settings.
type GeminiConfig struct {
	APIKey         string `json:"apiKey"`
	Model          string `json:"model"`   // Default: gemini-2.0-flash
	BaseURL        string `json:"baseUrl"` // Default: https://generativelanguage.googleapis.com/v1beta
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// GitConfig holds log extraction settings.
type GitConfig struct {
	Binary         string `json:"binary"`         // Default: git
	TimeoutSeconds int    `json:"timeoutSeconds"` // 0 means no timeout
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error
}

// StoryConfig holds narrative window sizes.
type StoryConfig struct {
	DemoCommits   int `json:"demoCommits"`   // Default: 20
	RecentCommits int `json:"recentCommits"` // Default: 10
}

// CouplingConfig holds the "files that change together" options of the history report.
type CouplingConfig struct {
	MinCoCommits        int     `json:"minCoCommits"`
	MinJaccardThreshold float64 `json:"minJaccardThreshold"`
	MaxFilesPerCommit   int     `json:"maxFilesPerCommit"`
	TopPairs            int     `json:"topPairs"`
}

// ClassifyConfig holds the commit classification patterns.
type ClassifyConfig struct {
	Fix      []string `json:"fix"`
	Feature  []string `json:"feature"`
	Docs     []string `json:"docs"`
	Refactor []string `json:"refactor"`
	Chore    []string `json:"chore"`
}

// Rules converts the patterns into classifier rules.
func (c ClassifyConfig) Rules() classify.Rules {
	return classify.Rules{
		classify.TagFix:      c.Fix,
		classify.TagFeature:  c.Feature,
		classify.TagDocs:     c.Docs,
		classify.TagRefactor: c.Refactor,
		classify.TagChore:    c.Chore,
	}
}

// DefaultStoreURL is a bbolt file under the user's home directory.
func DefaultStoreURL() string {
	dir := ".whisper"
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dir = filepath.Join(home, ".whisper")
	}
	return "bolt://" + filepath.Join(dir, "history.db")
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	rules := classify.DefaultRules()
	return &Config{
		Store: StoreConfig{
			URL:       DefaultStoreURL(),
			Namespace: store.DefaultNamespace,
		},
		Gemini: GeminiConfig{
			Model:          "gemini-2.0-flash",
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta",
			TimeoutSeconds: 60,
		},
		Git: GitConfig{
			Binary: "git",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Log: LogConfig{
			Level: "info",
		},
		Story: StoryConfig{
			DemoCommits:   20,
			RecentCommits: 10,
		},
		Classify: ClassifyConfig{
			Fix:      rules[classify.TagFix],
			Feature:  rules[classify.TagFeature],
			Docs:     rules[classify.TagDocs],
			Refactor: rules[classify.TagRefactor],
			Chore:    rules[classify.TagChore],
		},
		Coupling: CouplingConfig{
			MinCoCommits:        2,
			MinJaccardThreshold: 0.1,
			MaxFilesPerCommit:   50,
			TopPairs:            10,
		},
	}
}

// DefaultPath returns the config file path used by SaveConfig when none is given.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, FileName)
	}
	return FileName
}

// LoadConfig loads configuration from a file, merging with defaults,
// then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, err
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv() {
	c.Store.URL = envDefault("WHISPER_STORE_URL", c.Store.URL)
	c.Store.Namespace = envDefault("WHISPER_STORE_NAMESPACE", c.Store.Namespace)
	c.Gemini.APIKey = envDefault("GEMINI_API_KEY", c.Gemini.APIKey)
	c.Gemini.Model = envDefault("GEMINI_MODEL", c.Gemini.Model)
	c.Gemini.BaseURL = envDefault("GEMINI_BASE_URL", c.Gemini.BaseURL)
	c.Log.Level = envDefault("LOG_LEVEL", c.Log.Level)
	c.Git.Binary = envDefault("WHISPER_GIT_BINARY", c.Git.Binary)
	if d := envDuration("WHISPER_TIMEOUT", 0); d > 0 {
		c.Git.TimeoutSeconds = int(d.Seconds())
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := console.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch store.Scheme(c.Store.URL) {
	case "memory", "redis", "rediss", "bolt", "sqlite":
	default:
		return &store.UnsupportedSchemeError{URL: c.Store.URL}
	}
	filter := git.PathFilter{Include: c.Filters.Include, Exclude: c.Filters.Exclude}
	if err := filter.Validate(); err != nil {
		return err
	}
	if _, err := classify.NewClassifier(c.Classify.Rules()); err != nil {
		return err
	}
	if c.Story.DemoCommits < 0 || c.Story.RecentCommits < 0 {
		return fmt.Errorf("story window sizes must not be negative")
	}
	if c.Coupling.MinCoCommits < 0 || c.Coupling.MaxFilesPerCommit < 0 || c.Coupling.TopPairs < 0 {
		return fmt.Errorf("coupling limits must not be negative")
	}
	if c.Coupling.MinJaccardThreshold < 0 || c.Coupling.MinJaccardThreshold > 1 {
		return fmt.Errorf("coupling minJaccardThreshold must be between 0 and 1, got %v", c.Coupling.MinJaccardThreshold)
	}
	return nil
}

// ValidateForNarrative additionally requires the Gemini settings.
func (c *Config) ValidateForNarrative() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Gemini.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Gemini.Model == "" || c.Gemini.BaseURL == "" {
		return fmt.Errorf("gemini model and base URL must be set")
	}
	return nil
}

// GitTimeout returns the git log timeout. Zero disables it.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.Git.TimeoutSeconds) * time.Second
}

// GeminiTimeout returns the per-request timeout for text generation.
func (c *Config) GeminiTimeout() time.Duration {
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	// The file may hold an API key.
	return os.WriteFile(path, data, 0o600)
}

func envDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if n := envInt(key, -1); n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
