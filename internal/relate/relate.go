// Package relate infers cross-cutting relationships between curriculum
// concepts by sending them to a model in fixed-size batches.
package relate

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/matsen/mindmap/internal/curriculum"
	"github.com/matsen/mindmap/internal/llm"
)

const (
	// DefaultBatchSize is the number of concepts sent per request.
	DefaultBatchSize = 15

	// responsePreviewLength limits how much of a bad response is logged.
	responsePreviewLength = 500
)

// Map holds, for each concept id, the ids of related concepts.
type Map map[int][]int

// Related returns the related ids for id, or an empty slice.
func (m Map) Related(id int) []int {
	if ids, ok := m[id]; ok && ids != nil {
		return ids
	}
	return []int{}
}

// BatchResult is the outcome of one request. Err is nil on success.
type BatchResult struct {
	Index      int
	ConceptIDs []int
	Err        error
}

// Report collects the batch outcomes of one Infer call.
type Report struct {
	Batches []BatchResult
}

// Failed returns the number of failed batches.
func (r Report) Failed() int {
	n := 0
	for _, b := range r.Batches {
		if b.Err != nil {
			n++
		}
	}
	return n
}

// Inferrer sends concept batches to a Completer and merges the answers.
type Inferrer struct {
	completer llm.Completer
	batchSize int
	log       logrus.FieldLogger
}

// Option configures an Inferrer.
type Option func(*Inferrer)

// WithBatchSize sets the number of concepts per request. Values below one
// keep the default.
func WithBatchSize(n int) Option {
	return func(i *Inferrer) {
		if n > 0 {
			i.batchSize = n
		}
	}
}

// WithLogger sets the logger used for progress and batch failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(i *Inferrer) {
		if log != nil {
			i.log = log
		}
	}
}

// New creates an Inferrer backed by completer.
func New(completer llm.Completer, opts ...Option) *Inferrer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	i := &Inferrer{
		completer: completer,
		batchSize: DefaultBatchSize,
		log:       discard,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Batches splits nodes into contiguous groups of at most size, keeping order.
func Batches(nodes []curriculum.Node, size int) [][]curriculum.Node {
	if size < 1 {
		size = DefaultBatchSize
	}
	var out [][]curriculum.Node
	for start := 0; start < len(nodes); start += size {
		end := min(start+size, len(nodes))
		out = append(out, nodes[start:end])
	}
	return out
}

// Infer asks the model about every concept of tree, one batch at a time.
// A failed batch leaves its concepts with empty lists and does not stop the
// run; only a cancelled context does. On return every concept id of the
// tree has an entry in the map.
func (i *Inferrer) Infer(ctx context.Context, tree *curriculum.Tree) (Map, Report, error) {
	concepts := tree.Concepts()
	rels := make(Map, len(concepts))
	var report Report

	curriculumJSON, err := summaryJSON(tree.Nodes())
	if err != nil {
		return nil, report, err
	}

	batches := Batches(concepts, i.batchSize)
	i.log.WithFields(logrus.Fields{
		"concepts":   len(concepts),
		"batch_size": i.batchSize,
		"batches":    len(batches),
	}).Info("analyzing concepts")

	for idx, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		result := BatchResult{Index: idx + 1, ConceptIDs: nodeIDs(batch)}
		log := i.log.WithFields(logrus.Fields{"batch": result.Index, "concepts": len(batch)})
		log.Info("processing batch")

		resp, raw, err := i.runBatch(ctx, batch, curriculumJSON)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, report, ctxErr
			}
			result.Err = err
			log.WithError(err).WithField("response", preview(raw)).Warn("batch failed, continuing with empty relationships")
			for _, id := range result.ConceptIDs {
				if _, ok := rels[id]; !ok {
					rels[id] = []int{}
				}
			}
		} else {
			for _, r := range resp.Relationships {
				rels[*r.ConceptID] = r.RelatedIDs
			}
		}
		report.Batches = append(report.Batches, result)
	}

	return Normalize(rels, tree, i.log), report, nil
}

// runBatch performs one request. raw is returned for logging even when
// parsing fails.
func (i *Inferrer) runBatch(ctx context.Context, batch []curriculum.Node, curriculumJSON string) (Response, string, error) {
	batchJSON, err := summaryJSON(batch)
	if err != nil {
		return Response{}, "", err
	}

	raw, err := i.completer.Complete(ctx, BuildPrompt(batchJSON, curriculumJSON))
	if err != nil {
		return Response{}, "", fmt.Errorf("calling model: %w", err)
	}

	resp, err := ParseResponse(raw)
	if err != nil {
		return Response{}, raw, err
	}
	return resp, raw, nil
}

// Normalize returns a map with an entry for every concept of tree. Keys
// that are not concepts are dropped; related ids are limited to other
// concepts of the tree and deduplicated, keeping first occurrence.
func Normalize(rels Map, tree *curriculum.Tree, log logrus.FieldLogger) Map {
	concepts := tree.Concepts()
	out := make(Map, len(concepts))
	for _, c := range concepts {
		related := rels[c.ID]
		kept := make([]int, 0, len(related))
		seen := make(map[int]bool, len(related))
		for _, id := range related {
			if id == c.ID || seen[id] {
				continue
			}
			if !tree.IsConcept(id) {
				if log != nil {
					log.WithFields(logrus.Fields{"concept": c.ID, "related": id}).Debug("dropping relationship to unknown concept")
				}
				continue
			}
			seen[id] = true
			kept = append(kept, id)
		}
		out[c.ID] = kept
	}
	return out
}

func nodeIDs(nodes []curriculum.Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= responsePreviewLength {
		return s
	}
	return string(r[:responsePreviewLength])
}
