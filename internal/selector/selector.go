// Package selector chooses the next interview topic through a strict
// priority cascade, filtered by the current phase's bias.
package selector

import (
	"github.com/skillvet/skillvet/internal/coverage"
	"github.com/skillvet/skillvet/internal/phase"
	"github.com/skillvet/skillvet/internal/topic"
)

// Thresholds holds the performance boundaries the cascade consults.
type Thresholds struct {
	// Weakness is the topic mean below which a topic counts as weak.
	Weakness float64 `mapstructure:"weakness"`

	// Strength is the topic mean at or above which a topic counts as a
	// confirmed strength candidate in the Validation phase.
	Strength float64 `mapstructure:"strength"`

	// HighImportance is the configured weight above which a weak topic is
	// treated as a high-importance weak area.
	HighImportance float64 `mapstructure:"high-importance"`
}

// Choice is the selector's decision for the next question.
type Choice struct {
	// Topic is the chosen skill category. For a comprehensive challenge
	// it is the highest-weighted topic, kept for coverage bookkeeping.
	Topic topic.Topic

	// Comprehensive marks the Validation-phase final challenge spanning
	// all topics.
	Comprehensive bool

	// Rule names the cascade level that made the choice, for audit.
	Rule string
}

// Input captures the session facts the cascade consults.
type Input struct {
	// Phase is the phase of the question about to be asked.
	Phase phase.Phase

	// Unmet lists topics below their coverage minimum, largest shortfall
	// first.
	Unmet []coverage.Shortfall

	// Means holds the running mean per assessed topic.
	Means map[topic.Topic]float64

	// Counts holds the exchange count per topic.
	Counts map[topic.Topic]int

	// ConfirmedStrengths is the set of topics already re-confirmed during
	// the Validation phase.
	ConfirmedStrengths map[topic.Topic]bool
}

// Selector applies the priority cascade with configured weights and
// thresholds. It holds no per-session state.
type Selector struct {
	weights    map[topic.Topic]float64
	thresholds Thresholds
}

// New creates a Selector.
func New(weights map[topic.Topic]float64, th Thresholds) *Selector {
	return &Selector{weights: weights, thresholds: th}
}

// Pick chooses the next topic. In the Validation phase the unmet and
// low-performance levels are skipped entirely and the selector alternates
// between re-confirming a strength and issuing the comprehensive final
// challenge, so the last question is the comprehensive challenge once a
// strength topic has been validated.
func (s *Selector) Pick(in Input) Choice {
	if in.Phase == phase.Validation {
		return s.pickValidation(in)
	}

	// Deep Dive favors weak topics ahead of coverage.
	if in.Phase == phase.DeepDive {
		if tp, ok := s.weakestHighImportance(in.Means); ok {
			return Choice{Topic: tp, Rule: "low-performance"}
		}
	}

	// Priority 1: unmet minimums, highest shortfall first. The Opening
	// phase narrows the set to baseline topics when any are unmet.
	if len(in.Unmet) > 0 {
		candidates := in.Unmet
		if in.Phase == phase.Opening {
			if baseline := filterBaseline(in.Unmet); len(baseline) > 0 {
				candidates = baseline
			}
		}
		return Choice{Topic: candidates[0].Topic, Rule: "unmet-minimum"}
	}

	// Priority 2: high-importance weak areas.
	if tp, ok := s.weakestHighImportance(in.Means); ok {
		return Choice{Topic: tp, Rule: "low-performance"}
	}

	// Priority 3: highest configured weight among topics not yet
	// strength-confirmed.
	if tp, ok := s.heaviestUnconfirmed(in.ConfirmedStrengths); ok {
		return Choice{Topic: tp, Rule: "weighted-importance"}
	}

	// Priority 4: fewest exchanges so far, declaration order on ties.
	return Choice{Topic: leastAsked(in.Counts), Rule: "underrepresented"}
}

func (s *Selector) pickValidation(in Input) Choice {
	strength, ok := s.strongestUnconfirmed(in)
	if ok && len(in.ConfirmedStrengths) == 0 {
		return Choice{Topic: strength, Rule: "strength-confirmation"}
	}
	heaviest, _ := s.heaviestUnconfirmed(nil)
	return Choice{Topic: heaviest, Comprehensive: true, Rule: "comprehensive-challenge"}
}

// strongestUnconfirmed returns the not-yet-confirmed topic with the
// highest mean at or above the strength threshold.
func (s *Selector) strongestUnconfirmed(in Input) (topic.Topic, bool) {
	var best topic.Topic
	bestMean := -1.0
	for _, tp := range topic.All() {
		mean, assessed := in.Means[tp]
		if !assessed || in.ConfirmedStrengths[tp] {
			continue
		}
		if mean >= s.thresholds.Strength && mean > bestMean {
			best, bestMean = tp, mean
		}
	}
	return best, bestMean >= 0
}

// weakestHighImportance returns the assessed topic with the lowest mean
// among those below the weakness threshold with weight above the
// high-importance cutoff.
func (s *Selector) weakestHighImportance(means map[topic.Topic]float64) (topic.Topic, bool) {
	var weakest topic.Topic
	weakestMean := -1.0
	for _, tp := range topic.All() {
		mean, assessed := means[tp]
		if !assessed {
			continue
		}
		if mean < s.thresholds.Weakness && s.weights[tp] > s.thresholds.HighImportance {
			if weakestMean < 0 || mean < weakestMean {
				weakest, weakestMean = tp, mean
			}
		}
	}
	return weakest, weakestMean >= 0
}

// heaviestUnconfirmed returns the topic with the highest configured
// weight, skipping confirmed ones. Declaration order breaks weight ties.
func (s *Selector) heaviestUnconfirmed(confirmed map[topic.Topic]bool) (topic.Topic, bool) {
	var best topic.Topic
	bestWeight := -1.0
	found := false
	for _, tp := range topic.All() {
		if confirmed[tp] {
			continue
		}
		if s.weights[tp] > bestWeight {
			best, bestWeight = tp, s.weights[tp]
			found = true
		}
	}
	return best, found
}

func leastAsked(counts map[topic.Topic]int) topic.Topic {
	best := topic.All()[0]
	for _, tp := range topic.All() {
		if counts[tp] < counts[best] {
			best = tp
		}
	}
	return best
}

func filterBaseline(unmet []coverage.Shortfall) []coverage.Shortfall {
	var out []coverage.Shortfall
	for _, s := range unmet {
		if topic.Baseline(s.Topic) {
			out = append(out, s)
		}
	}
	return out
}
