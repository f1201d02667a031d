package evaluate

import (
	"fmt"
	"strings"

	"github.com/skillvet/skillvet/internal/scoring"
)

// Fallback scores an answer without an LLM, using keyword hits and
// surface structure. Deterministic for the same answer and keywords.
// The signal is coarse; it exists so an evaluation always completes.
func Fallback(answer string, keywords []string) Judgment {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return Judgment{
			Score:       0,
			Explanation: "No answer was given.",
		}
	}

	lower := strings.ToLower(trimmed)

	var found []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}

	// Base credit for a substantive attempt, plus bounded bonuses for
	// rubric coverage, length, and sentence structure.
	score := 2.0

	keywordBonus := float64(len(found)) * 0.8
	if keywordBonus > 4.0 {
		keywordBonus = 4.0
	}
	score += keywordBonus

	words := strings.Fields(trimmed)
	switch {
	case len(words) >= 80:
		score += 2.0
	case len(words) >= 40:
		score += 1.5
	case len(words) >= 15:
		score += 1.0
	case len(words) >= 5:
		score += 0.5
	}

	score += structureBonus(trimmed, len(words))

	explanation := fmt.Sprintf(
		"Heuristic assessment: matched %d of %d rubric terms in a %d-word answer.",
		len(found), len(keywords), len(words),
	)

	return Judgment{
		Score:         scoring.Round1(scoring.Clamp(score)),
		Explanation:   explanation,
		KeywordsFound: found,
	}
}

// structureBonus gives full credit when average sentence length falls in
// a plausible explanatory range, and token credit otherwise.
func structureBonus(answer string, wordCount int) float64 {
	sentences := 0
	for _, r := range answer {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	avg := float64(wordCount) / float64(sentences)
	if avg >= 8 && avg <= 25 {
		return 1.0
	}
	return 0.3
}
