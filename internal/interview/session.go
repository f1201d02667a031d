// Package interview orchestrates a full adaptive interview: question
// sourcing, answer evaluation, difficulty adaptation, topic selection,
// and completion. All decision logic lives in the small leaf packages;
// this package sequences them and owns persistence.
package interview

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillvet/skillvet/internal/completion"
	"github.com/skillvet/skillvet/internal/phase"
	"github.com/skillvet/skillvet/internal/question"
	"github.com/skillvet/skillvet/internal/scoring"
	"github.com/skillvet/skillvet/internal/topic"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// State is the fine-grained position within an active session's turn
// loop. Persisted for observability; the engine derives behavior from
// Status and Pending, not from State.
type State string

const (
	StateInitialized    State = "initialized"
	StateAwaitingAnswer State = "awaiting_answer"
	StateEvaluating     State = "evaluating"
	StateDeciding       State = "deciding"
	StateFinalizing     State = "finalizing"
	StateTerminated     State = "terminated"
)

// Exchange is one completed question-answer-score cycle. Exchanges are
// append-only; every aggregate the engine needs is rebuilt from them.
type Exchange struct {
	Index    int               `json:"index"`
	Phase    phase.Phase       `json:"phase"`
	Question question.Question `json:"question"`
	Answer   string            `json:"answer"`

	// Rule names the selector cascade level that chose the topic.
	Rule string `json:"rule"`

	// Score is the blended 0-10 score. Primary is nil when the external
	// judge failed and only the heuristic scored the answer.
	Score   float64        `json:"score"`
	Source  scoring.Source `json:"source"`
	Primary *float64       `json:"primary,omitempty"`

	Explanation  string   `json:"explanation,omitempty"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`

	AnsweredAt time.Time `json:"answered_at"`
}

// Session is the full persisted state of one interview.
type Session struct {
	ID        string      `json:"id"`
	Candidate string      `json:"candidate"`
	Level     topic.Level `json:"level"`

	Status Status `json:"status"`
	State  State  `json:"state"`

	// Tier is the difficulty of the next question to be generated.
	Tier topic.Tier `json:"tier"`

	// Pending is the question awaiting an answer, nil once terminated.
	// PendingRule records the selector rule that chose it.
	Pending     *question.Question `json:"pending,omitempty"`
	PendingRule string             `json:"pending_rule,omitempty"`

	Exchanges []Exchange `json:"exchanges"`

	// Reason is set when the session terminates.
	Reason completion.Reason `json:"reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// newSessionID returns a fresh "itv_" session identifier.
func newSessionID() string {
	return "itv_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// askedIDs returns the bank IDs of all questions asked so far, including
// the pending one.
func (s *Session) askedIDs() []string {
	out := make([]string, 0, len(s.Exchanges)+1)
	for _, ex := range s.Exchanges {
		out = append(out, ex.Question.ID)
	}
	if s.Pending != nil {
		out = append(out, s.Pending.ID)
	}
	return out
}

// priorQuestionTexts returns the text of all questions asked so far.
func (s *Session) priorQuestionTexts() []string {
	out := make([]string, 0, len(s.Exchanges)+1)
	for _, ex := range s.Exchanges {
		out = append(out, ex.Question.Text)
	}
	if s.Pending != nil {
		out = append(out, s.Pending.Text)
	}
	return out
}
