package scoring

import (
	"math"
	"testing"

	"github.com/skillvet/skillvet/internal/topic"
)

var blend = BlendWeights{Primary: 0.7, Fallback: 0.3}

func TestBlend(t *testing.T) {
	p := 8.0
	got, source := Blend(&p, 6.0, blend)
	if source != SourceBlended {
		t.Errorf("source = %s, want blended", source)
	}
	if got != 7.4 {
		t.Errorf("Blend(8, 6) = %.2f, want 7.4", got)
	}
}

func TestBlendFallbackOnly(t *testing.T) {
	got, source := Blend(nil, 6.3, blend)
	if source != SourceFallback {
		t.Errorf("source = %s, want fallback", source)
	}
	if got != 6.3 {
		t.Errorf("got %.2f, want 6.3", got)
	}
}

func TestBlendPrimaryOnly(t *testing.T) {
	p := 8.4
	got, source := Blend(&p, 3.0, BlendWeights{Primary: 1.0, Fallback: 0})
	if source != SourcePrimary {
		t.Errorf("source = %s, want primary", source)
	}
	if got != 8.4 {
		t.Errorf("got %.2f, want 8.4", got)
	}
}

func TestBlendClampsOutOfRange(t *testing.T) {
	p := 14.0
	got, _ := Blend(&p, -3.0, blend)
	if got < 0 || got > 10 {
		t.Fatalf("blend left range: %.2f", got)
	}
	if got != 7.0 {
		t.Errorf("got %.2f, want 7.0 (clamped 10*0.7 + 0*0.3)", got)
	}
}

// The blend of two in-range scores always lies between them.
func TestBlendConvex(t *testing.T) {
	for p := 0.0; p <= 10; p += 2.5 {
		for f := 0.0; f <= 10; f += 2.5 {
			pv := p
			got, _ := Blend(&pv, f, blend)
			lo, hi := math.Min(p, f), math.Max(p, f)
			// One-decimal rounding can nudge past the bound by at most 0.05.
			if got < lo-0.05 || got > hi+0.05 {
				t.Errorf("Blend(%.1f, %.1f) = %.2f outside [%.1f, %.1f]", p, f, got, lo, hi)
			}
		}
	}
}

func TestAggregatorMeans(t *testing.T) {
	a := NewAggregator(3)
	a.Record(topic.BasicFormulas, 8.0)
	a.Record(topic.BasicFormulas, 6.0)
	a.Record(topic.DataAnalysis, 4.0)

	mean, ok := a.TopicMean(topic.BasicFormulas)
	if !ok || mean != 7.0 {
		t.Errorf("TopicMean(basic-formulas) = %.1f, %v", mean, ok)
	}
	if _, ok := a.TopicMean(topic.Automation); ok {
		t.Error("TopicMean reported an unassessed topic")
	}
	if got := a.OverallMean(); got != 6.0 {
		t.Errorf("OverallMean = %.1f, want 6.0", got)
	}
}

func TestRecentAverageWindow(t *testing.T) {
	a := NewAggregator(3)
	for _, s := range []float64{2, 2, 9, 9, 9} {
		a.Record(topic.BasicFormulas, s)
	}
	if got := a.RecentAverage(); got != 9.0 {
		t.Errorf("RecentAverage = %.1f, want 9.0 (last 3 only)", got)
	}
	if got := a.OverallMean(); got != 6.2 {
		t.Errorf("OverallMean = %.1f, want 6.2", got)
	}
}

func TestRecentAverageBeforeWindowFull(t *testing.T) {
	a := NewAggregator(3)
	a.Record(topic.BasicFormulas, 8.0)
	if got := a.RecentAverage(); got != 8.0 {
		t.Errorf("RecentAverage with one score = %.1f, want 8.0", got)
	}
}

func TestFinalScoreRenormalizes(t *testing.T) {
	weights := map[topic.Topic]float64{
		topic.BasicFormulas:     0.15,
		topic.BasicFunctions:    0.15,
		topic.LookupFunctions:   0.20,
		topic.DataAnalysis:      0.20,
		topic.AdvancedFunctions: 0.18,
		topic.Automation:        0.12,
	}

	a := NewAggregator(3)
	a.Record(topic.BasicFormulas, 8.0)
	a.Record(topic.LookupFunctions, 6.0)

	// Renormalized: (8*0.15 + 6*0.20) / 0.35 = 6.857... -> 6.9
	if got := a.FinalScore(weights); got != 6.9 {
		t.Errorf("FinalScore = %.1f, want 6.9", got)
	}
}

func TestFinalScoreUniformTopicsEqualsMean(t *testing.T) {
	weights := map[topic.Topic]float64{
		topic.BasicFormulas:   0.5,
		topic.LookupFunctions: 0.5,
	}
	a := NewAggregator(3)
	a.Record(topic.BasicFormulas, 7.0)
	a.Record(topic.LookupFunctions, 7.0)
	if got := a.FinalScore(weights); got != 7.0 {
		t.Errorf("FinalScore = %.1f, want 7.0", got)
	}
}

func TestFinalScoreEmptySession(t *testing.T) {
	a := NewAggregator(3)
	if got := a.FinalScore(map[topic.Topic]float64{topic.BasicFormulas: 1}); got != 0 {
		t.Errorf("FinalScore on empty session = %.1f, want 0", got)
	}
}

// Recomputing from the same history yields the same outputs.
func TestAggregatorDeterministic(t *testing.T) {
	history := []struct {
		tp    topic.Topic
		score float64
	}{
		{topic.BasicFormulas, 7.2},
		{topic.DataAnalysis, 6.1},
		{topic.LookupFunctions, 8.4},
		{topic.DataAnalysis, 5.0},
	}
	weights := map[topic.Topic]float64{
		topic.BasicFormulas:   0.3,
		topic.LookupFunctions: 0.3,
		topic.DataAnalysis:    0.4,
	}

	build := func() *Aggregator {
		a := NewAggregator(3)
		for _, h := range history {
			a.Record(h.tp, h.score)
		}
		return a
	}

	first, second := build(), build()
	if first.FinalScore(weights) != second.FinalScore(weights) {
		t.Error("FinalScore differs across identical rebuilds")
	}
	if first.OverallMean() != second.OverallMean() {
		t.Error("OverallMean differs across identical rebuilds")
	}
}

func TestClampRound(t *testing.T) {
	if Clamp(-1) != 0 || Clamp(11) != 10 || Clamp(5.5) != 5.5 {
		t.Error("Clamp misbehaved")
	}
	if Round1(6.849) != 6.8 || Round1(6.85) != 6.9 {
		t.Error("Round1 misbehaved")
	}
}
