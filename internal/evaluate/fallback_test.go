package evaluate

import (
	"strings"
	"testing"
)

var rubric = []string{"VLOOKUP", "INDEX", "MATCH", "lookup", "table"}

func TestFallbackEmptyAnswer(t *testing.T) {
	for _, answer := range []string{"", "   ", "\n\t"} {
		j := Fallback(answer, rubric)
		if j.Score != 0 {
			t.Errorf("Fallback(%q) score = %.1f, want 0", answer, j.Score)
		}
	}
}

func TestFallbackKeywordCoverageRaisesScore(t *testing.T) {
	weak := Fallback("You use a formula for that somehow.", rubric)
	strong := Fallback(
		"VLOOKUP searches the first column of a table for a key and returns a value from another column. "+
			"INDEX with MATCH is the more flexible lookup because the lookup column can sit anywhere in the table.",
		rubric,
	)
	if strong.Score <= weak.Score {
		t.Errorf("rubric-rich answer %.1f not above rubric-poor answer %.1f", strong.Score, weak.Score)
	}
	if len(strong.KeywordsFound) < 4 {
		t.Errorf("KeywordsFound = %v", strong.KeywordsFound)
	}
}

func TestFallbackCaseInsensitiveMatching(t *testing.T) {
	j := Fallback("vlookup scans a Table for a Lookup value.", rubric)
	found := map[string]bool{}
	for _, k := range j.KeywordsFound {
		found[k] = true
	}
	if !found["VLOOKUP"] || !found["table"] || !found["lookup"] {
		t.Errorf("KeywordsFound = %v", j.KeywordsFound)
	}
}

func TestFallbackDeterministic(t *testing.T) {
	answer := "VLOOKUP finds a value in a table. MATCH returns a position."
	first := Fallback(answer, rubric)
	second := Fallback(answer, rubric)
	if first.Score != second.Score {
		t.Errorf("scores differ: %.1f vs %.1f", first.Score, second.Score)
	}
}

func TestFallbackScoreInRange(t *testing.T) {
	answers := []string{
		"no",
		strings.Repeat("VLOOKUP INDEX MATCH lookup table. ", 30),
		"A short sentence about nothing in particular here.",
	}
	for _, answer := range answers {
		j := Fallback(answer, rubric)
		if j.Score < 0 || j.Score > 10 {
			t.Errorf("score %.1f out of range for %q", j.Score, answer[:20])
		}
	}
}

func TestFallbackNoKeywords(t *testing.T) {
	j := Fallback("A reasonable answer with several words in it, explaining the idea clearly.", nil)
	if j.Score <= 0 {
		t.Error("substantive answer scored zero without a rubric")
	}
	if j.Score > 6 {
		t.Errorf("score %.1f too generous without rubric credit", j.Score)
	}
}
