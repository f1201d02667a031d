package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/skillvet/skillvet/internal/llm"
	"github.com/skillvet/skillvet/internal/phase"
	"github.com/skillvet/skillvet/internal/topic"
)

const systemPrompt = `You are an experienced Excel interviewer assessing a job candidate.
You write one interview question at a time. Questions are answered verbally,
so they must be answerable without a spreadsheet in front of the candidate.
Ask for explanations, comparisons, and worked examples rather than clicks.`

// GeneratorConfig tunes the LLM question generator.
type GeneratorConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultGeneratorConfig returns the standard generator settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// Generator produces questions with an LLM provider.
type Generator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// NewGenerator creates a Generator with the given provider and config.
func NewGenerator(provider llm.Provider, cfg GeneratorConfig) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	QuestionText     string   `json:"question_text"`
	Keywords         []string `json:"keywords"`
	EstimatedMinutes int      `json:"estimated_minutes"`
}

// Next generates a single question for the given request.
func (g *Generator) Next(ctx context.Context, req Request) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	llmReq := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      Schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if strings.TrimSpace(raw.QuestionText) == "" {
		return nil, fmt.Errorf("LLM returned empty question text")
	}

	return &Question{
		ID:            newQuestionID(),
		Text:          raw.QuestionText,
		Topic:         req.Topic,
		Tier:          req.Tier,
		Comprehensive: req.Comprehensive,
		Keywords:      raw.Keywords,
	}, nil
}

// newQuestionID returns a fresh "q_" identifier.
func newQuestionID() string {
	return "q_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func buildUserMessage(req Request) string {
	var b strings.Builder

	if req.Comprehensive {
		b.WriteString("Write one comprehensive challenge question that spans multiple Excel skill areas, ")
		b.WriteString(fmt.Sprintf("anchored in %s, at %s difficulty. ", topic.DisplayName(req.Topic), req.Tier))
		b.WriteString("It should require the candidate to combine techniques into a realistic workflow.\n")
	} else {
		b.WriteString(fmt.Sprintf("Write one question about %s at %s difficulty.\n",
			topic.DisplayName(req.Topic), req.Tier))
	}

	switch req.Phase {
	case phase.Opening:
		b.WriteString("This is early in the interview: keep it approachable and confidence-building.\n")
	case phase.DeepDive:
		b.WriteString("This is the deep-dive portion: probe for genuine depth, ask for reasoning and trade-offs.\n")
	case phase.Validation:
		b.WriteString("This is the final portion: the question should confirm real competence, not introduce new ground.\n")
	}

	if len(req.PriorQuestions) > 0 {
		b.WriteString("\nAlready asked this session (do not repeat or closely paraphrase):\n")
		for _, q := range req.PriorQuestions {
			b.WriteString("- ")
			b.WriteString(q)
			b.WriteString("\n")
		}
	}

	return b.String()
}
