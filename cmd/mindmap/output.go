package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GenerateResponse is the response for the generate command.
type GenerateResponse struct {
	RunID         string `json:"run_id"`
	Input         string `json:"input"`
	Output        string `json:"output"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Nodes         int    `json:"nodes"`
	Concepts      int    `json:"concepts"`
	Sections      int    `json:"sections"`
	Hierarchical  int    `json:"hierarchical_lines"`
	Connections   int    `json:"connection_lines"`
	Batches       int    `json:"batches"`
	FailedBatches int    `json:"failed_batches"`
}

// TopicResponse is the response for the topic command.
type TopicResponse struct {
	Output   string `json:"output"`
	Name     string `json:"name,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Sections int    `json:"sections,omitempty"`
	Format   string `json:"format"`
}

// printGenerateHuman prints the generate summary in human-readable format.
func printGenerateHuman(w io.Writer, r GenerateResponse) {
	fmt.Fprintf(w, "Done: %s\n", r.Output)
	fmt.Fprintf(w, "  Subject: %s (%s)\n", r.Name, r.Slug)
	fmt.Fprintf(w, "  %d top-level sections, %d nodes, %d concepts\n", r.Sections, r.Nodes, r.Concepts)
	fmt.Fprintf(w, "  %d hierarchical relationships\n", r.Hierarchical)
	fmt.Fprintf(w, "  %d cross-concept connections\n", r.Connections)
	if r.FailedBatches > 0 {
		fmt.Fprintf(w, "  %d of %d batches failed (their concepts have no connections)\n", r.FailedBatches, r.Batches)
	}
}
