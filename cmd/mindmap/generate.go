package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/llm"
	"github.com/matsen/mindmap/internal/mindmap"
	"github.com/matsen/mindmap/internal/relate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	generateOutput    string
	generateBatchSize int
	generateNoInfer   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <curriculum.json>",
	Short: "Build a mind-map graph from a curriculum file",
	Long: `Build a mind-map graph from a curriculum file.

Every section, topic and concept gets a stable integer id in document order.
Concepts are sent to the model in batches to find related concepts; those
become connection lines in the graph. Batches that fail are logged and their
concepts simply have no connections.

The graph is written next to the input as <name>_relationships.json unless
--output is given.

Examples:
  mindmap generate data_structures.json
  mindmap generate os.json -o os_graph.json --batch-size 10
  mindmap generate os.json --provider claude --model sonnet
  mindmap generate os.json --no-infer`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: <input>_relationships.json)")
	generateCmd.Flags().IntVar(&generateBatchSize, "batch-size", 0, "Concepts per model call (default from config)")
	generateCmd.Flags().BoolVar(&generateNoInfer, "no-infer", false, "Skip relationship inference; hierarchy only")
	rootCmd.AddCommand(generateCmd)
}

// generateOptions describes a single pipeline run.
type generateOptions struct {
	Input     string
	Output    string
	BatchSize int
	NoInfer   bool
	RunID     string
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	opts := generateOptions{
		Input:     args[0],
		Output:    generateOutput,
		BatchSize: cfg.BatchSize,
		NoInfer:   generateNoInfer,
		RunID:     uuid.NewString(),
	}
	if generateBatchSize > 0 {
		opts.BatchSize = generateBatchSize
	}

	var completer llm.Completer
	if !opts.NoInfer {
		completer, err = newCompleter(cfg)
		if err != nil {
			exitWithError(exitCodeFor(err), "%v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	entry := log.WithFields(logrus.Fields{
		"run_id":   opts.RunID,
		"provider": cfg.Provider,
	})
	if name := modelName(completer); name != "" {
		entry = entry.WithField("model", name)
	}

	resp, err := generateGraph(ctx, opts, completer, entry)
	if err != nil {
		exitWithError(exitCodeFor(err), "%s", errorMessage(err))
	}

	if humanOutput {
		printGenerateHuman(os.Stdout, *resp)
	} else {
		outputJSON(resp)
	}
	return nil
}

// generateGraph runs load, assign, infer, materialize and write for one
// curriculum file. completer may be nil when opts.NoInfer is set.
func generateGraph(ctx context.Context, opts generateOptions, completer llm.Completer, log logrus.FieldLogger) (*GenerateResponse, error) {
	output := opts.Output
	if output == "" {
		output = mindmap.OutputPath(opts.Input)
	}

	log.WithField("input", opts.Input).Info("loading curriculum")
	doc, err := curriculum.Load(opts.Input)
	if err != nil {
		return nil, err
	}

	tree, err := curriculum.Assign(doc)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"nodes":    tree.Len(),
		"concepts": len(tree.Concepts()),
	}).Info("assigned ids")

	rels := relate.Map{}
	var report relate.Report
	if !opts.NoInfer {
		if completer == nil {
			return nil, fmt.Errorf("relationship inference needs a model: %w", llm.ErrUnavailable)
		}
		inferrer := relate.New(completer,
			relate.WithBatchSize(opts.BatchSize),
			relate.WithLogger(log),
		)
		rels, report, err = inferrer.Infer(ctx, tree)
		if err != nil {
			return nil, fmt.Errorf("inferring relationships: %w", err)
		}
	}

	graph, err := mindmap.Build(mindmap.MetadataFrom(doc), tree, rels)
	if err != nil {
		return nil, err
	}
	if graph.IsEmpty() {
		log.Warn("curriculum has no sections, writing an empty graph")
	}
	if err := mindmap.WriteFile(output, graph); err != nil {
		return nil, err
	}

	resp := &GenerateResponse{
		RunID:         opts.RunID,
		Input:         opts.Input,
		Output:        output,
		Name:          graph.Name,
		Slug:          graph.Slug,
		Nodes:         mindmap.CountDots(graph.Dots),
		Concepts:      len(tree.Concepts()),
		Sections:      len(graph.Dots),
		Hierarchical:  len(graph.Lines.Hierarchical),
		Connections:   len(graph.Lines.Connections),
		Batches:       len(report.Batches),
		FailedBatches: report.Failed(),
	}
	log.WithFields(logrus.Fields{
		"output":       output,
		"hierarchical": resp.Hierarchical,
		"connections":  resp.Connections,
	}).Info("wrote graph")
	return resp, nil
}
