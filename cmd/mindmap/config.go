package main

import (
	"context"
	"time"

	"github.com/matsen/mindmap/internal/config"
	"github.com/matsen/mindmap/internal/llm"
	"github.com/spf13/cobra"
)

var (
	configPathOnly bool
	configCheck    bool
)

// checkTimeout bounds the reachability check of --check.
const checkTimeout = 10 * time.Second

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration that generate and topic would use, after the
config file, environment variables and global flags are applied.
The Ollama API key is never printed.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "Only print the config file location")
	configCmd.Flags().BoolVar(&configCheck, "check", false, "Also check that the Ollama endpoint answers")
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path              string        `json:"path"`
	Provider          string        `json:"provider"`
	Model             string        `json:"model,omitempty"`
	OllamaURL         string        `json:"ollama_url"`
	OllamaAPIKey      config.Secret `json:"ollama_api_key,omitempty"`
	BatchSize         int           `json:"batch_size"`
	Timeout           string        `json:"timeout"`
	RequestsPerMinute int           `json:"requests_per_minute"`
	LogLevel          string        `json:"log_level"`
	Status            string        `json:"status,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configPathOnly {
		if humanOutput {
			outputHuman("%s\n", config.Path())
		} else {
			outputJSON(map[string]string{"path": config.Path()})
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		if humanOutput {
			outputHuman("%s\n\n", config.HelpfulConfigMessage())
		}
		exitWithError(ExitConfigError, "%v", err)
	}

	resp := newConfigResponse(config.Path(), cfg)
	if configCheck {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		resp.Status = checkProvider(ctx, cfg)
	}
	if !humanOutput {
		outputJSON(resp)
		return nil
	}

	outputHuman("Config file: %s\n", resp.Path)
	outputHuman("  provider:            %s\n", resp.Provider)
	outputHuman("  model:               %s\n", orDefault(resp.Model, "(provider default)"))
	outputHuman("  ollama_url:          %s\n", resp.OllamaURL)
	outputHuman("  ollama_api_key:      %s\n", orDefault(resp.OllamaAPIKey.String(), "(not set)"))
	outputHuman("  batch_size:          %d\n", resp.BatchSize)
	outputHuman("  timeout:             %s\n", resp.Timeout)
	outputHuman("  requests_per_minute: %d\n", resp.RequestsPerMinute)
	outputHuman("  log_level:           %s\n", resp.LogLevel)
	if resp.Status != "" {
		outputHuman("  status:              %s\n", resp.Status)
	}
	return nil
}

// checkProvider pings the configured Ollama endpoint. The claude CLI has
// no cheap health check, so it is reported as unchecked.
func checkProvider(ctx context.Context, cfg *config.Config) string {
	if cfg.Provider != config.ProviderOllama {
		return "unchecked"
	}
	client := llm.NewOllamaClient(
		llm.WithBaseURL(cfg.OllamaURL),
		llm.WithAPIKey(cfg.OllamaAPIKey.Value()),
	)
	if err := client.IsAvailable(ctx); err != nil {
		return errorMessage(err)
	}
	return "ok"
}

func newConfigResponse(path string, cfg *config.Config) ConfigResponse {
	return ConfigResponse{
		Path:              path,
		Provider:          cfg.Provider,
		Model:             cfg.Model,
		OllamaURL:         cfg.OllamaURL,
		OllamaAPIKey:      cfg.OllamaAPIKey,
		BatchSize:         cfg.BatchSize,
		Timeout:           cfg.Timeout.String(),
		RequestsPerMinute: cfg.RequestsPerMinute,
		LogLevel:          cfg.LogLevel,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
