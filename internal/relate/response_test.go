package relate

import (
	"errors"
	"testing"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantErr   bool
		wantCount int
	}{
		{
			name:      "valid JSON",
			response:  `{"relationships": [{"concept_id": 3, "related_ids": [4, 5]}]}`,
			wantCount: 1,
		},
		{
			name:      "JSON in markdown code block",
			response:  "```json\n{\"relationships\": [{\"concept_id\": 3, \"related_ids\": []}]}\n```",
			wantCount: 1,
		},
		{
			name:      "JSON in plain code block",
			response:  "```\n{\"relationships\": []}\n```",
			wantCount: 0,
		},
		{
			name:      "missing related_ids",
			response:  `{"relationships": [{"concept_id": 3}]}`,
			wantCount: 1,
		},
		{
			name:      "concept id zero is present",
			response:  `{"relationships": [{"concept_id": 0, "related_ids": []}]}`,
			wantCount: 1,
		},
		{
			name:     "missing concept_id",
			response: `{"relationships": [{"related_ids": [1]}]}`,
			wantErr:  true,
		},
		{
			name:     "missing relationships",
			response: `{"links": []}`,
			wantErr:  true,
		},
		{
			name:     "string ids",
			response: `{"relationships": [{"concept_id": "3", "related_ids": []}]}`,
			wantErr:  true,
		},
		{
			name:     "unfenced JSON with preamble",
			response: "Here are the relationships:\n{\"relationships\": []}",
			wantErr:  true,
		},
		{
			name:      "fenced JSON after preamble",
			response:  "Here you go:\n```json\n{\"relationships\": [{\"concept_id\": 3, \"related_ids\": [4]}]}\n```\nLet me know if you need more.",
			wantCount: 1,
		},
		{
			name:     "array instead of object",
			response: `[{"concept_id": 3}]`,
			wantErr:  true,
		},
		{
			name:     "empty response",
			response: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.response)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedResponse) {
					t.Errorf("ParseResponse() error = %v, want ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResponse() error = %v", err)
			}
			if len(resp.Relationships) != tt.wantCount {
				t.Errorf("relationships = %d, want %d", len(resp.Relationships), tt.wantCount)
			}
		})
	}
}
