// Package coverage tracks per-topic question counts against the minimum
// profile for the candidate's declared level. Counts only ever increase:
// coverage is monotonic for a session's lifetime.
package coverage

import (
	"sort"

	"github.com/skillvet/skillvet/internal/topic"
)

// Shortfall describes a topic that has not yet met its required minimum.
type Shortfall struct {
	Topic    topic.Topic
	Required int
	Actual   int
}

// Gap returns how many exchanges the topic is short of its minimum.
func (s Shortfall) Gap() int {
	return s.Required - s.Actual
}

// Tracker maintains the running exchange count per topic for one session.
type Tracker struct {
	required map[topic.Topic]int
	counts   map[topic.Topic]int
}

// NewTracker creates a Tracker for the given per-topic minimums.
func NewTracker(required map[topic.Topic]int) *Tracker {
	return &Tracker{
		required: required,
		counts:   make(map[topic.Topic]int),
	}
}

// Record increments the count for a topic.
func (t *Tracker) Record(tp topic.Topic) {
	t.counts[tp]++
}

// Count returns the number of recorded exchanges for a topic.
func (t *Tracker) Count(tp topic.Topic) int {
	return t.counts[tp]
}

// Counts returns a copy of all recorded counts.
func (t *Tracker) Counts() map[topic.Topic]int {
	out := make(map[topic.Topic]int, len(t.counts))
	for tp, n := range t.counts {
		out[tp] = n
	}
	return out
}

// Unmet returns the topics whose count is below their required minimum,
// ordered by largest shortfall first. Ties break by topic declaration
// order.
func (t *Tracker) Unmet() []Shortfall {
	var out []Shortfall
	for _, tp := range topic.All() {
		req := t.required[tp]
		if t.counts[tp] < req {
			out = append(out, Shortfall{Topic: tp, Required: req, Actual: t.counts[tp]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Gap() > out[j].Gap()
	})
	return out
}

// Satisfied reports whether every topic has met its minimum.
func (t *Tracker) Satisfied() bool {
	return len(t.Unmet()) == 0
}
