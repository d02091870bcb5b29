package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/llm"
	"github.com/matsen/mindmap/internal/topic"
	"github.com/spf13/cobra"
)

var (
	topicDescription string
	topicMarkdown    bool
	topicOutput      string
)

var topicCmd = &cobra.Command{
	Use:   "topic <subject>",
	Short: "Draft a curriculum file for a subject",
	Long: `Draft a curriculum for a subject with the configured model.

By default the outline is written as a curriculum JSON file that
"mindmap generate" accepts, named after the subject (spaces become
underscores). With --markdown the outline is written as a markdown
document instead.

Examples:
  mindmap topic "operation systems"
  mindmap topic compilers -d "Front ends, IRs and code generation"
  mindmap topic "graph theory" --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runTopic,
}

func init() {
	topicCmd.Flags().StringVarP(&topicDescription, "description", "d", "", "Subject description (default: \"Explore <subject> concepts\")")
	topicCmd.Flags().BoolVar(&topicMarkdown, "markdown", false, "Write a markdown outline instead of curriculum JSON")
	topicCmd.Flags().StringVarP(&topicOutput, "output", "o", "", "Output file (default derived from the subject)")
	rootCmd.AddCommand(topicCmd)
}

func runTopic(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.WithField("subject", args[0]).Info("drafting curriculum")
	resp, err := writeTopic(ctx, topic.NewGenerator(completer), args[0], topicDescription, topicOutput, topicMarkdown)
	if err != nil {
		exitWithError(exitCodeFor(err), "%s", errorMessage(err))
	}

	if humanOutput {
		outputHuman("Wrote %s\n", resp.Output)
		if resp.Sections > 0 {
			outputHuman("  %d sections\n", resp.Sections)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}

// topicOutputPath picks the output file for a subject when none is given.
func topicOutputPath(subject, output string, markdown bool) string {
	if output != "" {
		return output
	}
	if markdown {
		return topic.FileName(subject, ".md")
	}
	return topic.FileName(subject, ".json")
}

// writeTopic drafts a curriculum for subject and writes it to disk.
func writeTopic(ctx context.Context, gen *topic.Generator, subject, description, output string, markdown bool) (*TopicResponse, error) {
	path := topicOutputPath(subject, output, markdown)

	if markdown {
		text, err := gen.GenerateMarkdown(ctx, subject)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(llm.StripCodeFence(text)+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("writing outline: %w", err)
		}
		return &TopicResponse{Output: path, Format: "markdown"}, nil
	}

	doc, err := gen.Generate(ctx, subject, description)
	if err != nil {
		return nil, err
	}
	if err := writeDocument(path, doc); err != nil {
		return nil, err
	}
	return &TopicResponse{
		Output:   path,
		Name:     doc.Name,
		Slug:     doc.Slug,
		Sections: len(doc.Sections),
		Format:   "json",
	}, nil
}

func writeDocument(path string, doc *curriculum.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding curriculum: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing curriculum: %w", err)
	}
	return nil
}
