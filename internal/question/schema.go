package question

import "github.com/skillvet/skillvet/internal/llm"

// Schema defines the JSON schema for LLM question generation responses.
var Schema = &llm.Schema{
	Name:        "interview-question",
	Description: "A single spoken-style Excel interview question with rubric keywords",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question to ask the candidate, phrased for a conversational interview",
			},
			"keywords": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "5-8 rubric terms a strong answer would mention",
			},
			"estimated_minutes": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     15,
				"description": "Expected time for a candidate to answer",
			},
		},
		"required":             []any{"question_text", "keywords", "estimated_minutes"},
		"additionalProperties": false,
	},
}
