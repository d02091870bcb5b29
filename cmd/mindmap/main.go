// Package main provides the mindmap CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags shared by all commands.
var (
	humanOutput  bool
	logLevelFlag string
	providerFlag string
	modelFlag    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "Turn curriculum outlines into mind-map graphs",
	Long: `mindmap converts a curriculum (sections, topics, concepts) into a mind-map
graph: nested dots with stable ids, hierarchical lines, and connection lines
between related concepts inferred by a language model.

Models are reached through Ollama (default) or the claude CLI.
All commands output JSON by default; use --human for readable output.

Environment Variables:
  OLLAMA_API_KEY     Bearer token for hosted Ollama (also read from .env)
  OLLAMA_URL         Ollama API endpoint
  MINDMAP_PROVIDER   ollama or claude
  MINDMAP_MODEL      Model name`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for OLLAMA_API_KEY)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Model provider: ollama or claude (default from config)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model name (default from config)")
	rootCmd.Version = Version
}
