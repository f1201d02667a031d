// Package adapt computes the next difficulty tier from rolling
// performance. It is a three-state machine with one raise transition, one
// lower transition, and a self-loop otherwise.
package adapt

import "github.com/skillvet/skillvet/internal/topic"

// Thresholds holds the performance boundaries for tier transitions.
type Thresholds struct {
	// RaiseRecent and RaiseOverall must both be met to step the tier up.
	RaiseRecent  float64 `mapstructure:"raise-recent"`
	RaiseOverall float64 `mapstructure:"raise-overall"`

	// LowerRecent and LowerOverall must both be met to step the tier down.
	LowerRecent  float64 `mapstructure:"lower-recent"`
	LowerOverall float64 `mapstructure:"lower-overall"`
}

// Next returns the tier for the next question given the recent-window
// average and the overall running mean. The raise rule is checked first;
// the tier never moves more than one step and never leaves the
// beginner..advanced range. The change applies to the next generated
// question only.
func Next(current topic.Tier, recentAvg, overallMean float64, th Thresholds) topic.Tier {
	switch {
	case recentAvg >= th.RaiseRecent && overallMean >= th.RaiseOverall && current != topic.TierAdvanced:
		return current.Raise()
	case recentAvg <= th.LowerRecent && overallMean <= th.LowerOverall && current != topic.TierBeginner:
		return current.Lower()
	default:
		return current
	}
}
