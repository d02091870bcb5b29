// Package config handles global configuration for the mindmap CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/matsen/mindmap/internal/llm"
	"github.com/matsen/mindmap/internal/relate"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "mindmap"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Providers with a completer implementation.
const (
	ProviderOllama = "ollama"
	ProviderClaude = "claude"
)

// Defaults applied when neither file nor environment set a value.
const (
	DefaultProvider  = ProviderOllama
	DefaultOllamaURL = llm.DefaultOllamaURL
	DefaultModel     = llm.DefaultModel
	DefaultBatchSize = relate.DefaultBatchSize
	DefaultTimeout   = llm.DefaultTimeout
	DefaultLogLevel  = "info"
)

// ErrInvalidConfig is returned for values that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return s.String() }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds the settings for a run.
type Config struct {
	Provider          string        `yaml:"provider,omitempty" json:"provider"`
	Model             string        `yaml:"model,omitempty" json:"model"`
	OllamaURL         string        `yaml:"ollama_url,omitempty" json:"ollama_url"`
	OllamaAPIKey      Secret        `yaml:"ollama_api_key,omitempty" json:"ollama_api_key,omitempty"`
	BatchSize         int           `yaml:"batch_size,omitempty" json:"batch_size"`
	Timeout           time.Duration `yaml:"timeout,omitempty" json:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute,omitempty" json:"requests_per_minute,omitempty"`
	LogLevel          string        `yaml:"log_level,omitempty" json:"log_level"`
}

// Path returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/mindmap/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global config file, applies environment overrides and
// fills defaults. A missing file is not an error.
func Load() (*Config, error) {
	cfg, err := LoadFile(Path())
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file without overrides or defaults.
// Returns an empty config if path is empty or the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// GetConfigValue returns the environment variable if set, otherwise the
// config value.
func GetConfigValue(envKey, configValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return configValue
}

func (c *Config) applyEnv() {
	c.Provider = GetConfigValue("MINDMAP_PROVIDER", c.Provider)
	c.Model = GetConfigValue("MINDMAP_MODEL", c.Model)
	c.OllamaURL = GetConfigValue("OLLAMA_URL", c.OllamaURL)
	c.OllamaAPIKey = Secret(GetConfigValue("OLLAMA_API_KEY", c.OllamaAPIKey.Value()))
	c.LogLevel = GetConfigValue("MINDMAP_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("MINDMAP_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Model == "" && c.Provider == ProviderOllama {
		c.Model = DefaultModel
	}
	if c.OllamaURL == "" {
		c.OllamaURL = DefaultOllamaURL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks that the configured values can be used.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOllama, ProviderClaude:
	default:
		return fmt.Errorf("%w: provider %q (valid: %s, %s)", ErrInvalidConfig, c.Provider, ProviderOllama, ProviderClaude)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: requests_per_minute must not be negative", ErrInvalidConfig)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q (valid: debug, info, warn, error)", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// HelpfulConfigMessage explains where the config file lives.
func HelpfulConfigMessage() string {
	configPath := Path()
	return fmt.Sprintf(`Configuration is read from %s.

Example:
  mkdir -p %s
  cat > %s <<EOF
  provider: ollama
  model: %s
  ollama_url: %s
  batch_size: %d
  EOF

OLLAMA_API_KEY may also be set in the environment or a .env file.`,
		configPath, filepath.Dir(configPath), configPath, DefaultModel, DefaultOllamaURL, DefaultBatchSize)
}
