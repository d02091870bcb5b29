package llm

import "strings"

// StripCodeFence removes a surrounding markdown code block (```json ... ```)
// from a model response. Text without a leading fence is only trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence line, including any language tag.
	newline := strings.IndexByte(text, '\n')
	if newline == -1 {
		inner := strings.TrimPrefix(strings.Trim(text, "`"), "json")
		return strings.TrimSpace(inner)
	}
	text = text[newline+1:]

	if end := strings.LastIndex(text, "```"); end != -1 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

// FencedBlock returns the body of the first fenced code block in text,
// wherever it starts, so a reply like "Here you go:\n```json ..." still
// yields its JSON. Text without a fence is only trimmed.
func FencedBlock(text string) string {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "```")
	if start == -1 {
		return text
	}
	body := text[start+3:]

	newline := strings.IndexByte(body, '\n')
	if newline == -1 {
		// Single line: ```json{...}```
		if end := strings.Index(body, "```"); end != -1 {
			body = body[:end]
		}
		return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(body), "json"))
	}
	body = body[newline+1:]

	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
