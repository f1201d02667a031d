// Package completion decides, after every exchange, whether the
// interview stops or continues. Every stop carries a machine-readable
// reason for audit.
package completion

// Reason explains why an interview terminated.
type Reason string

const (
	ReasonMaxReached   Reason = "max_reached"
	ReasonExceptional  Reason = "exceptional_performance"
	ReasonInsufficient Reason = "insufficient_performance"
	ReasonSatisfied    Reason = "requirements_satisfied"
	ReasonAborted      Reason = "aborted"
)

// Limits holds the question count bounds for an interview.
type Limits struct {
	Min    int `mapstructure:"min"`
	Max    int `mapstructure:"max"`
	Target int `mapstructure:"target"`
}

// Thresholds holds the overall-mean boundaries for early termination and
// the weakness threshold used by the requirements-satisfied rule.
type Thresholds struct {
	Exceptional  float64 `mapstructure:"exceptional"`
	Insufficient float64 `mapstructure:"insufficient"`
	Weakness     float64 `mapstructure:"weakness"`
}

// Decision is the outcome of a completion check.
type Decision struct {
	Stop   bool
	Reason Reason
}

// Input captures the session facts the completion rules consult.
type Input struct {
	// ExchangeCount is the number of completed exchanges.
	ExchangeCount int

	// OverallMean is the running mean across all exchanges.
	OverallMean float64

	// CoverageSatisfied is true when no topic is below its minimum.
	CoverageSatisfied bool

	// WeakTopic is true when any assessed topic's mean is below the
	// weakness threshold.
	WeakTopic bool
}

// Decide evaluates the termination rules in priority order: hard cap,
// exceptional performance, insufficient performance, requirements
// satisfied, else continue.
func Decide(in Input, limits Limits, th Thresholds) Decision {
	switch {
	case in.ExchangeCount >= limits.Max:
		return Decision{Stop: true, Reason: ReasonMaxReached}
	case in.ExchangeCount >= limits.Min && in.OverallMean >= th.Exceptional:
		return Decision{Stop: true, Reason: ReasonExceptional}
	case in.ExchangeCount >= limits.Min && in.OverallMean <= th.Insufficient:
		return Decision{Stop: true, Reason: ReasonInsufficient}
	case in.ExchangeCount >= limits.Min && in.CoverageSatisfied && !in.WeakTopic:
		return Decision{Stop: true, Reason: ReasonSatisfied}
	default:
		return Decision{}
	}
}
