package adapt

import (
	"testing"

	"github.com/skillvet/skillvet/internal/topic"
)

var th = Thresholds{
	RaiseRecent:  8.5,
	RaiseOverall: 7.5,
	LowerRecent:  4.0,
	LowerOverall: 5.0,
}

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		current topic.Tier
		recent  float64
		overall float64
		want    topic.Tier
	}{
		{"raise on strong recent and overall", topic.TierBeginner, 9.0, 8.0, topic.TierIntermediate},
		{"no raise when overall lags", topic.TierBeginner, 9.0, 7.0, topic.TierBeginner},
		{"no raise when recent lags", topic.TierBeginner, 8.0, 9.0, topic.TierBeginner},
		{"raise capped at advanced", topic.TierAdvanced, 9.5, 9.5, topic.TierAdvanced},
		{"lower on weak recent and overall", topic.TierIntermediate, 3.5, 4.5, topic.TierBeginner},
		{"no lower when overall holds", topic.TierIntermediate, 3.5, 6.0, topic.TierIntermediate},
		{"lower capped at beginner", topic.TierBeginner, 1.0, 1.0, topic.TierBeginner},
		{"steady in the middle band", topic.TierIntermediate, 6.5, 6.5, topic.TierIntermediate},
		{"boundary values raise", topic.TierIntermediate, 8.5, 7.5, topic.TierAdvanced},
		{"boundary values lower", topic.TierAdvanced, 4.0, 5.0, topic.TierIntermediate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.current, tt.recent, tt.overall, th); got != tt.want {
				t.Errorf("Next(%s, %.1f, %.1f) = %s, want %s", tt.current, tt.recent, tt.overall, got, tt.want)
			}
		})
	}
}

func TestNextMovesAtMostOneStep(t *testing.T) {
	for _, current := range []topic.Tier{topic.TierBeginner, topic.TierIntermediate, topic.TierAdvanced} {
		for _, recent := range []float64{0, 5, 10} {
			for _, overall := range []float64{0, 5, 10} {
				next := Next(current, recent, overall, th)
				diff := int(next) - int(current)
				if diff < -1 || diff > 1 {
					t.Errorf("Next(%s, %.0f, %.0f) jumped %d steps", current, recent, overall, diff)
				}
			}
		}
	}
}
