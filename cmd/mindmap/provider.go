package main

import (
	"fmt"
	"os"

	"github.com/matsen/mindmap/internal/config"
	"github.com/matsen/mindmap/internal/llm"
	"github.com/sirupsen/logrus"
)

// loadConfig reads the global config and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags lets global flags win over file and environment settings.
func applyFlags(cfg *config.Config) {
	if providerFlag != "" {
		cfg.Provider = providerFlag
		if modelFlag == "" && providerFlag == config.ProviderClaude && cfg.Model == config.DefaultModel {
			// The Ollama default means nothing to the claude CLI.
			cfg.Model = ""
		}
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
}

// newLogger builds the stderr logger used for progress and warnings.
func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", config.ErrInvalidConfig, level)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

// newCompleter returns the model client selected by cfg.
func newCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return llm.NewOllamaClient(
			llm.WithBaseURL(cfg.OllamaURL),
			llm.WithModel(cfg.Model),
			llm.WithAPIKey(cfg.OllamaAPIKey.Value()),
			llm.WithTimeout(cfg.Timeout),
			llm.WithRequestsPerMinute(cfg.RequestsPerMinute),
		), nil
	case config.ProviderClaude:
		return llm.NewClaudeCLI(cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", llm.ErrUnknownProvider, cfg.Provider)
	}
}

// modelName reports the model a completer talks to, if it knows.
func modelName(c llm.Completer) string {
	if named, ok := c.(interface{ ModelName() string }); ok {
		return named.ModelName()
	}
	return ""
}
