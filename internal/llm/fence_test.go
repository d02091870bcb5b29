package llm

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain JSON",
			text: `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			text: "\n\n  {\"a\": 1}  \n",
			want: `{"a": 1}`,
		},
		{
			name: "json fence",
			text: "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bare fence",
			text: "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "fence without closing",
			text: "```json\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "trailing chatter after fence",
			text: "```json\n{\"a\": 1}\n```\nHope this helps!",
			want: `{"a": 1}`,
		},
		{
			name: "single line fence",
			text: "```json{\"a\": 1}```",
			want: `{"a": 1}`,
		},
		{
			name: "preamble is kept",
			text: "Here you go:\n{\"a\": 1}",
			want: "Here you go:\n{\"a\": 1}",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.text); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFencedBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "no fence",
			text: "  {\"a\": 1}\n",
			want: `{"a": 1}`,
		},
		{
			name: "leading fence",
			text: "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "preamble before fence",
			text: "Here you go:\n```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "first of two blocks",
			text: "First:\n```json\n{\"a\": 1}\n```\nSecond:\n```json\n{\"b\": 2}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "unclosed fence after preamble",
			text: "Sure.\n```\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "single line fence after preamble",
			text: "Result: ```json{\"a\": 1}```",
			want: `{"a": 1}`,
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FencedBlock(tt.text); got != tt.want {
				t.Errorf("FencedBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}
