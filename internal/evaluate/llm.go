package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillvet/skillvet/internal/llm"
	"github.com/skillvet/skillvet/internal/question"
	"github.com/skillvet/skillvet/internal/scoring"
	"github.com/skillvet/skillvet/internal/topic"
)

const judgeSystemPrompt = `You are an expert Excel interviewer grading a candidate's verbal answer.
Score strictly on the 0-10 scale: 0-2 no understanding, 3-4 major gaps,
5-6 workable but shallow, 7-8 solid with minor gaps, 9-10 expert.
Judge only what the answer demonstrates; do not reward length.`

// judgmentSchema defines the JSON schema for LLM evaluation responses.
var judgmentSchema = &llm.Schema{
	Name:        "answer-judgment",
	Description: "A scored assessment of an interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "Overall answer quality on the 0-10 scale",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Two or three sentences justifying the score",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "What the answer did well, as short phrases",
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "What a stronger answer would add, as short phrases",
			},
			"keywords_found": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Rubric terms the answer demonstrated",
			},
		},
		"required":             []any{"score", "explanation", "strengths", "improvements", "keywords_found"},
		"additionalProperties": false,
	},
}

// LLMConfig tunes the LLM judge.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns the standard judge settings. Temperature is
// kept low so repeated grading of the same answer stays stable.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}

// LLMEvaluator scores answers with an LLM provider.
type LLMEvaluator struct {
	provider llm.Provider
	config   LLMConfig
}

// NewLLMEvaluator creates an LLMEvaluator with the given provider.
func NewLLMEvaluator(provider llm.Provider, cfg LLMConfig) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, config: cfg}
}

func (e *LLMEvaluator) Evaluate(ctx context.Context, q question.Question, answer string) (*Judgment, error) {
	ctx = llm.WithPurpose(ctx, "evaluation")

	req := llm.Request{
		System: judgeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildJudgeMessage(q, answer)},
		},
		Schema:      judgmentSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	var j Judgment
	if err := json.Unmarshal(resp.Content, &j); err != nil {
		return nil, fmt.Errorf("failed to parse judgment: %w", err)
	}

	j.Score = scoring.Round1(scoring.Clamp(j.Score))
	return &j, nil
}

func buildJudgeMessage(q question.Question, answer string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\nDifficulty: %s\n", topic.DisplayName(q.Topic), q.Tier))
	if len(q.Keywords) > 0 {
		b.WriteString("Rubric terms a strong answer touches: ")
		b.WriteString(strings.Join(q.Keywords, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\nQuestion:\n")
	b.WriteString(q.Text)
	b.WriteString("\n\nCandidate's answer:\n")
	b.WriteString(answer)

	return b.String()
}
