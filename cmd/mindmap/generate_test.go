package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/matsen/mindmap/internal/config"
	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/llm"
	"github.com/matsen/mindmap/internal/mindmap"
)

const osCurriculum = `{
  "name": "Operating Systems",
  "slug": "operating-systems",
  "description": "Kernels and processes",
  "sections": [
    {
      "name": "Processes",
      "number": "1",
      "topics": [
        {
          "name": "Scheduling",
          "number": "1.1",
          "concepts": [
            {"name": "Round robin", "description": "Each process runs for a fixed time slice in turn"},
            {"name": "Priority", "description": "Higher priority processes run first"}
          ]
        }
      ]
    }
  ]
}`

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	return path
}

func readGraph(t *testing.T, path string) mindmap.Graph {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var g mindmap.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	return g
}

func TestGenerateGraph(t *testing.T) {
	input := writeInput(t, osCurriculum)
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "```json\n" + `{"relationships": [{"concept_id": 3, "related_ids": [4]}, {"concept_id": 4, "related_ids": []}]}` + "\n```", nil
	})

	resp, err := generateGraph(context.Background(), generateOptions{Input: input, BatchSize: 15, RunID: "run-1"}, completer, quietLogger())
	if err != nil {
		t.Fatalf("generateGraph() error = %v", err)
	}

	wantOutput := filepath.Join(filepath.Dir(input), "os_relationships.json")
	want := &GenerateResponse{
		RunID:        "run-1",
		Input:        input,
		Output:       wantOutput,
		Name:         "Operating Systems",
		Slug:         "operating-systems",
		Nodes:        4,
		Concepts:     2,
		Sections:     1,
		Hierarchical: 3,
		Connections:  1,
		Batches:      1,
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("generateGraph() mismatch (-want +got):\n%s", diff)
	}

	g := readGraph(t, wantOutput)
	wantLines := mindmap.Lines{
		Hierarchical: []mindmap.Line{
			{Source: 1, Target: 2, Type: mindmap.LineHierarchical},
			{Source: 2, Target: 3, Type: mindmap.LineHierarchical},
			{Source: 2, Target: 4, Type: mindmap.LineHierarchical},
		},
		Connections: []mindmap.Line{
			{Source: 3, Target: 4, Type: mindmap.LineConnection},
		},
	}
	if diff := cmp.Diff(wantLines, g.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateGraph_FailedBatchStillWrites(t *testing.T) {
	input := writeInput(t, osCurriculum)
	output := filepath.Join(t.TempDir(), "graph.json")
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "I could not find any relationships.", nil
	})

	resp, err := generateGraph(context.Background(), generateOptions{Input: input, Output: output, BatchSize: 1}, completer, quietLogger())
	if err != nil {
		t.Fatalf("generateGraph() error = %v", err)
	}
	if resp.Output != output {
		t.Errorf("Output = %q, want %q", resp.Output, output)
	}
	if resp.Batches != 2 || resp.FailedBatches != 2 {
		t.Errorf("batches = %d/%d failed, want 2/2", resp.FailedBatches, resp.Batches)
	}
	if resp.Connections != 0 {
		t.Errorf("Connections = %d, want 0", resp.Connections)
	}

	g := readGraph(t, output)
	if got := mindmap.CountDots(g.Dots); got != 4 {
		t.Errorf("CountDots() = %d, want 4", got)
	}
}

func TestGenerateGraph_NoInfer(t *testing.T) {
	input := writeInput(t, osCurriculum)

	resp, err := generateGraph(context.Background(), generateOptions{Input: input, NoInfer: true}, nil, quietLogger())
	if err != nil {
		t.Fatalf("generateGraph() error = %v", err)
	}
	if resp.Batches != 0 || resp.Connections != 0 {
		t.Errorf("batches = %d, connections = %d, want 0, 0", resp.Batches, resp.Connections)
	}
	if resp.Hierarchical != 3 {
		t.Errorf("Hierarchical = %d, want 3", resp.Hierarchical)
	}
}

func TestGenerateGraph_Errors(t *testing.T) {
	never := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Error("model should not be called")
		return "", nil
	})

	tests := []struct {
		name     string
		input    func(t *testing.T) string
		wantErr  error
		wantCode int
	}{
		{
			name:     "missing file",
			input:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
			wantErr:  curriculum.ErrNotFound,
			wantCode: ExitDataError,
		},
		{
			name:     "not JSON",
			input:    func(t *testing.T) string { return writeInput(t, "sections:") },
			wantErr:  curriculum.ErrInvalidDocument,
			wantCode: ExitDataError,
		},
		{
			name:     "concept without name",
			input:    func(t *testing.T) string { return writeInput(t, `{"sections": [{"name": "S", "topics": [{"name": "T", "concepts": [{}]}]}]}`) },
			wantErr:  curriculum.ErrInvalidDocument,
			wantCode: ExitDataError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generateGraph(context.Background(), generateOptions{Input: tt.input(t)}, never, quietLogger())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("generateGraph() error = %v, want %v", err, tt.wantErr)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestGenerateGraph_Cancelled(t *testing.T) {
	input := writeInput(t, osCurriculum)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", ctx.Err()
	})
	_, err := generateGraph(ctx, generateOptions{Input: input}, completer, quietLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("generateGraph() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(mindmap.OutputPath(input)); !os.IsNotExist(statErr) {
		t.Errorf("output should not be written after cancel, stat error = %v", statErr)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", config.ErrInvalidConfig, ExitConfigError},
		{"unknown provider", llm.ErrUnknownProvider, ExitConfigError},
		{"not found", curriculum.ErrNotFound, ExitDataError},
		{"broken tree", curriculum.ErrBrokenTree, ExitDataError},
		{"model down", llm.ErrUnavailable, ExitError},
		{"other", errors.New("boom"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
