package topic

import "fmt"

// Tier represents a question difficulty tier, ordered beginner <
// intermediate < advanced.
type Tier int

const (
	TierBeginner Tier = iota
	TierIntermediate
	TierAdvanced
)

// String returns the wire representation of a tier.
func (t Tier) String() string {
	switch t {
	case TierBeginner:
		return "beginner"
	case TierIntermediate:
		return "intermediate"
	case TierAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as
// their names rather than integers.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier converts a tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "beginner":
		return TierBeginner, nil
	case "intermediate":
		return TierIntermediate, nil
	case "advanced":
		return TierAdvanced, nil
	default:
		return TierBeginner, fmt.Errorf("unknown tier: %q", s)
	}
}

// Raise returns the next tier up, capped at advanced.
func (t Tier) Raise() Tier {
	if t >= TierAdvanced {
		return TierAdvanced
	}
	return t + 1
}

// Lower returns the next tier down, capped at beginner.
func (t Tier) Lower() Tier {
	if t <= TierBeginner {
		return TierBeginner
	}
	return t - 1
}

// Level is the candidate's declared proficiency level. It shares names
// with Tier but is a distinct concept: the level selects the coverage
// profile and the starting tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown candidate level: %q", s)
	}
}

// StartingTier returns the difficulty tier an interview opens with for a
// declared level.
func (l Level) StartingTier() Tier {
	switch l {
	case LevelAdvanced:
		return TierAdvanced
	case LevelIntermediate:
		return TierIntermediate
	default:
		return TierBeginner
	}
}
