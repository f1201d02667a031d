// Package phase maps a question index to the strategic stage of the
// interview. Phases are a pure function of (index, total); they carry no
// state of their own.
package phase

// Phase is the strategic stage of an interview.
type Phase string

const (
	// Opening establishes a baseline with basic formula and function topics.
	Opening Phase = "opening"

	// Exploration works through unmet coverage requirements.
	Exploration Phase = "exploration"

	// DeepDive probes topics where recorded performance is weak.
	DeepDive Phase = "deep-dive"

	// Validation re-confirms strengths or issues the comprehensive
	// final challenge.
	Validation Phase = "validation"
)

// ForIndex returns the phase for a 1-based question index given the
// configured total question count. Boundaries: indices 1-2 are Opening,
// 3 through total-3 are Exploration, total-2 to total-1 are DeepDive,
// and total onward is Validation. Indices past total stay in Validation,
// which covers interviews that run beyond the target toward the hard cap.
func ForIndex(index, total int) Phase {
	switch {
	case index <= 2:
		return Opening
	case index <= total-3:
		return Exploration
	case index <= total-1:
		return DeepDive
	default:
		return Validation
	}
}
