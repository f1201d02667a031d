package interview

import (
	"time"

	"github.com/skillvet/skillvet/internal/completion"
	"github.com/skillvet/skillvet/internal/question"
	"github.com/skillvet/skillvet/internal/topic"
)

// Recommendation is the hiring verdict derived from the final score.
type Recommendation string

const (
	StrongHire    Recommendation = "strong_hire"
	Hire          Recommendation = "hire"
	Borderline    Recommendation = "borderline"
	NeedsTraining Recommendation = "needs_training"
	NotReady      Recommendation = "not_ready"
)

// recommend maps a final weighted score to a verdict.
func recommend(score float64) Recommendation {
	switch {
	case score >= 8.5:
		return StrongHire
	case score >= 7.0:
		return Hire
	case score >= 5.5:
		return Borderline
	case score >= 4.0:
		return NeedsTraining
	default:
		return NotReady
	}
}

// TopicScore is one topic's outcome in the final report.
type TopicScore struct {
	Topic     topic.Topic `json:"topic"`
	Mean      float64     `json:"mean"`
	Exchanges int         `json:"exchanges"`
}

// Result is the final interview report. Computing it is a pure function
// of the session's exchange history, so recomputing a finished session
// always yields the same report.
type Result struct {
	SessionID string      `json:"session_id"`
	Candidate string      `json:"candidate"`
	Level     topic.Level `json:"level"`

	Status Status            `json:"status"`
	Reason completion.Reason `json:"reason"`

	// FinalScore is the coverage-weighted score over assessed topics.
	FinalScore     float64        `json:"final_score"`
	Recommendation Recommendation `json:"recommendation"`

	QuestionCount int          `json:"question_count"`
	PerTopic      []TopicScore `json:"per_topic"`

	// CoverageSatisfied reports whether every topic met its minimum
	// exchange count for the declared level.
	CoverageSatisfied bool `json:"coverage_satisfied"`

	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TurnResult is what Submit returns after processing one answer: the
// scored exchange, and either the next question or the final report.
type TurnResult struct {
	Exchange Exchange

	// Done is true when the interview terminated on this turn.
	Done   bool
	Reason completion.Reason

	// NextQuestion is set when Done is false.
	NextQuestion *question.Question

	// Result is set when Done is true.
	Result *Result
}
