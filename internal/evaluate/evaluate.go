// Package evaluate scores candidate answers. The primary signal comes
// from an LLM judge; a deterministic keyword heuristic provides the
// fallback signal and the blending weight lives in the scoring package.
package evaluate

import (
	"context"

	"github.com/skillvet/skillvet/internal/question"
)

// Judgment is the outcome of scoring one answer.
type Judgment struct {
	// Score is on the 0-10 scale.
	Score float64 `json:"score"`

	// Explanation is the judge's short rationale, shown in reports.
	Explanation string `json:"explanation"`

	// Strengths and Improvements are short phrases for the final report.
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`

	// KeywordsFound lists rubric terms the answer touched.
	KeywordsFound []string `json:"keywords_found,omitempty"`
}

// Evaluator scores a candidate's answer to a question.
type Evaluator interface {
	Evaluate(ctx context.Context, q question.Question, answer string) (*Judgment, error)
}
