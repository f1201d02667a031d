package completion

import "testing"

var (
	limits = Limits{Min: 6, Max: 10, Target: 8}
	th     = Thresholds{Exceptional: 9.5, Insufficient: 2.0, Weakness: 6.0}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		stop bool
		why  Reason
	}{
		{
			name: "continues below minimum regardless of performance",
			in:   Input{ExchangeCount: 5, OverallMean: 9.9, CoverageSatisfied: true},
			stop: false,
		},
		{
			name: "hard cap wins",
			in:   Input{ExchangeCount: 10, OverallMean: 9.9, CoverageSatisfied: true},
			stop: true, why: ReasonMaxReached,
		},
		{
			name: "exceptional after minimum",
			in:   Input{ExchangeCount: 7, OverallMean: 9.6},
			stop: true, why: ReasonExceptional,
		},
		{
			name: "exceptional boundary inclusive",
			in:   Input{ExchangeCount: 6, OverallMean: 9.5},
			stop: true, why: ReasonExceptional,
		},
		{
			name: "insufficient after minimum",
			in:   Input{ExchangeCount: 6, OverallMean: 1.8},
			stop: true, why: ReasonInsufficient,
		},
		{
			name: "satisfied when coverage done and no weak topic",
			in:   Input{ExchangeCount: 7, OverallMean: 7.0, CoverageSatisfied: true},
			stop: true, why: ReasonSatisfied,
		},
		{
			name: "weak topic blocks satisfied",
			in:   Input{ExchangeCount: 7, OverallMean: 7.0, CoverageSatisfied: true, WeakTopic: true},
			stop: false,
		},
		{
			name: "unmet coverage blocks satisfied",
			in:   Input{ExchangeCount: 7, OverallMean: 7.0, CoverageSatisfied: false},
			stop: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.in, limits, th)
			if got.Stop != tt.stop {
				t.Fatalf("Stop = %v, want %v", got.Stop, tt.stop)
			}
			if got.Stop && got.Reason != tt.why {
				t.Errorf("Reason = %s, want %s", got.Reason, tt.why)
			}
		})
	}
}

func TestDecideMaxBeatsExceptional(t *testing.T) {
	got := Decide(Input{ExchangeCount: 10, OverallMean: 9.9}, limits, th)
	if !got.Stop || got.Reason != ReasonMaxReached {
		t.Errorf("got %+v, want max_reached", got)
	}
}
