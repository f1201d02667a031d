package phase

import "testing"

func TestForIndex(t *testing.T) {
	// Standard 8-question target.
	tests := []struct {
		index int
		want  Phase
	}{
		{1, Opening},
		{2, Opening},
		{3, Exploration},
		{4, Exploration},
		{5, Exploration},
		{6, DeepDive},
		{7, DeepDive},
		{8, Validation},
		{9, Validation},
		{10, Validation},
	}
	for _, tt := range tests {
		if got := ForIndex(tt.index, 8); got != tt.want {
			t.Errorf("ForIndex(%d, 8) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestForIndexShortInterview(t *testing.T) {
	// With a 6-question target the exploration band vanishes.
	tests := []struct {
		index int
		want  Phase
	}{
		{1, Opening},
		{2, Opening},
		{3, Exploration},
		{4, DeepDive},
		{5, DeepDive},
		{6, Validation},
	}
	for _, tt := range tests {
		if got := ForIndex(tt.index, 6); got != tt.want {
			t.Errorf("ForIndex(%d, 6) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestForIndexCoversAllPhases(t *testing.T) {
	seen := map[Phase]bool{}
	for i := 1; i <= 8; i++ {
		seen[ForIndex(i, 8)] = true
	}
	for _, ph := range []Phase{Opening, Exploration, DeepDive, Validation} {
		if !seen[ph] {
			t.Errorf("phase %s never reached across indices 1-8", ph)
		}
	}
}
