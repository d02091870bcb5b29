package topic

import "fmt"

// Format selects the shape of the requested outline.
type Format int

// Outline formats.
const (
	FormatJSON Format = iota
	FormatMarkdown
)

// BuildPrompt builds the outline prompt for a subject.
func BuildPrompt(name string, format Format) string {
	var output string
	switch format {
	case FormatMarkdown:
		output = `Write the outline as markdown:
- "# <number> <section>" for sections
- "## <number> <topic>" for topics
- "- **<concept>**: <one sentence description>" for concepts

Return ONLY the markdown document.`
	default:
		output = `Output format: a single JSON object.
{"sections": [{"name": "...", "number": "1", "topics": [{"name": "...", "number": "1.1", "concepts": [{"name": "...", "description": "..."}]}]}]}

Return ONLY the JSON object, no other text.`
	}

	return fmt.Sprintf(`You are designing a comprehensive curriculum on %q.

Organize it into 5 to 10 sections. Each section has 2 to 6 topics, and each topic
has 3 to 8 concepts. Number sections 1, 2, 3 and topics 1.1, 1.2 and so on. Give every
concept a one sentence description that a learner could read on its own.
Cover fundamentals first, then analysis techniques, then practical implementations.

%s`, name, output)
}
