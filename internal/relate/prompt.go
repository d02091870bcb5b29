package relate

import (
	"encoding/json"
	"fmt"

	"github.com/matsen/mindmap/internal/curriculum"
)

// Summary is the view of a node handed to the model.
type Summary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Number      string `json:"number"`
}

// Summarize converts nodes into their model-facing summaries.
func Summarize(nodes []curriculum.Node) []Summary {
	out := make([]Summary, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Summary{
			ID:          n.ID,
			Name:        n.Label,
			Type:        string(n.Kind),
			Description: n.Description,
			Number:      n.Number,
		})
	}
	return out
}

// summaryJSON renders summaries as indented JSON for embedding in a prompt.
func summaryJSON(nodes []curriculum.Node) (string, error) {
	data, err := json.MarshalIndent(Summarize(nodes), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding concept summary: %w", err)
	}
	return string(data), nil
}

// BuildPrompt builds the relationship prompt for one batch. batchJSON holds
// the concepts to analyze and curriculumJSON every node of the curriculum.
func BuildPrompt(batchJSON, curriculumJSON string) string {
	return fmt.Sprintf(`You are mapping a curriculum as a mind map. For each concept in the batch below,
list the ids of other concepts in the curriculum that a learner should connect it with,
such as prerequisites and direct applications.

Rules:
- Only use ids of nodes whose type is "concept".
- Never list a concept as related to itself.
- Prefer 2 to 5 strong relationships over many weak ones.
- Include every concept of the batch, with an empty list if nothing is related.

Concepts to analyze:
%s

Full curriculum for reference:
%s

Output format: a single JSON object.
Example: {"relationships": [{"concept_id": 12, "related_ids": [4, 27]}]}

Return ONLY the JSON object, no other text.`, batchJSON, curriculumJSON)
}
