// Package question produces interview questions. The primary source is
// an LLM generator; a built-in bank serves as the deterministic
// fallback so an interview never stalls on provider failure.
package question

import (
	"context"

	"github.com/skillvet/skillvet/internal/phase"
	"github.com/skillvet/skillvet/internal/topic"
)

// Question is one interview question ready to be asked.
type Question struct {
	// ID is unique within a session. Generated questions use "q_" plus
	// a random suffix; bank questions carry their fixed bank IDs.
	ID string `json:"id"`

	Text string `json:"text"`

	Topic topic.Topic `json:"topic"`

	Tier topic.Tier `json:"tier"`

	// Comprehensive marks a cross-topic challenge question.
	Comprehensive bool `json:"comprehensive,omitempty"`

	// Keywords are rubric terms a strong answer is expected to touch.
	// They feed the fallback evaluator.
	Keywords []string `json:"keywords,omitempty"`
}

// Request describes the question to produce.
type Request struct {
	Topic topic.Topic

	Tier topic.Tier

	Phase phase.Phase

	// Comprehensive asks for a cross-topic challenge instead of a
	// single-topic question.
	Comprehensive bool

	// ExcludeIDs lists bank question IDs already asked this session.
	ExcludeIDs []string

	// PriorQuestions is the text of questions already asked, so the
	// generator avoids near-duplicates.
	PriorQuestions []string
}

// Service produces the next question for a session.
type Service interface {
	Next(ctx context.Context, req Request) (*Question, error)
}
