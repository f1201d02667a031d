// Package scoring blends the primary and fallback evaluation signals and
// maintains the per-topic and overall roll-ups that drive difficulty
// adaptation and the final weighted score.
package scoring

import (
	"math"
	"sort"

	"github.com/skillvet/skillvet/internal/topic"
)

// Source identifies which evaluation signal produced an exchange's score.
type Source string

const (
	// SourcePrimary means only the external judgment was used.
	SourcePrimary Source = "primary"

	// SourceFallback means the external judgment was unavailable and the
	// local heuristic scored the exchange alone.
	SourceFallback Source = "fallback"

	// SourceBlended means both signals were combined.
	SourceBlended Source = "blended"
)

// BlendWeights holds the relative weights of the two evaluation signals.
// Primary and Fallback must sum to 1.
type BlendWeights struct {
	Primary  float64 `mapstructure:"primary"`
	Fallback float64 `mapstructure:"fallback"`
}

// Clamp constrains a score to the closed interval [0, 10]. Values outside
// the domain from a misbehaving evaluation service are clamped, not
// propagated.
func Clamp(score float64) float64 {
	return math.Min(10, math.Max(0, score))
}

// Round1 rounds to one decimal place, the precision of all reported scores.
func Round1(score float64) float64 {
	return math.Round(score*10) / 10
}

// Blend combines the primary judgment (nil when the external service
// failed) with the always-available fallback judgment. A zero fallback
// weight reports the primary signal alone. The result is clamped and
// rounded to one decimal.
func Blend(primary *float64, fallback float64, w BlendWeights) (float64, Source) {
	fallback = Clamp(fallback)
	if primary == nil {
		return Round1(fallback), SourceFallback
	}
	p := Clamp(*primary)
	if w.Fallback == 0 {
		return Round1(p), SourcePrimary
	}
	return Round1(p*w.Primary + fallback*w.Fallback), SourceBlended
}

type topicStats struct {
	sum    float64
	count  int
	recent []float64
}

// Aggregator maintains running means and recent-score windows across the
// exchanges of one session. It is rebuilt from exchange history, so
// recomputing from an unchanged session always yields identical output.
type Aggregator struct {
	window   int
	perTopic map[topic.Topic]*topicStats
	sum      float64
	count    int
	recent   []float64
}

// NewAggregator creates an Aggregator with the given recent-window size.
func NewAggregator(window int) *Aggregator {
	return &Aggregator{
		window:   window,
		perTopic: make(map[topic.Topic]*topicStats),
	}
}

// Record adds a blended exchange score under its topic.
func (a *Aggregator) Record(tp topic.Topic, score float64) {
	score = Clamp(score)

	ts := a.perTopic[tp]
	if ts == nil {
		ts = &topicStats{}
		a.perTopic[tp] = ts
	}
	ts.sum += score
	ts.count++
	ts.recent = appendWindow(ts.recent, score, a.window)

	a.sum += score
	a.count++
	a.recent = appendWindow(a.recent, score, a.window)
}

func appendWindow(window []float64, score float64, size int) []float64 {
	window = append(window, score)
	if len(window) > size {
		window = window[len(window)-size:]
	}
	return window
}

// TopicMean returns the running arithmetic mean for a topic, and whether
// the topic has received any exchanges.
func (a *Aggregator) TopicMean(tp topic.Topic) (float64, bool) {
	ts := a.perTopic[tp]
	if ts == nil || ts.count == 0 {
		return 0, false
	}
	return ts.sum / float64(ts.count), true
}

// OverallMean returns the running mean across all exchanges, or 0 before
// the first exchange.
func (a *Aggregator) OverallMean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// RecentAverage returns the mean of the last k scores across all topics,
// or 0 before the first exchange.
func (a *Aggregator) RecentAverage() float64 {
	if len(a.recent) == 0 {
		return 0
	}
	var sum float64
	for _, s := range a.recent {
		sum += s
	}
	return sum / float64(len(a.recent))
}

// Assessed returns the topics that received at least one exchange, in
// declaration order.
func (a *Aggregator) Assessed() []topic.Topic {
	var out []topic.Topic
	for tp, ts := range a.perTopic {
		if ts.count > 0 {
			out = append(out, tp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return topic.DeclarationIndex(out[i]) < topic.DeclarationIndex(out[j])
	})
	return out
}

// ExchangeCount returns the count of exchanges per assessed topic.
func (a *Aggregator) ExchangeCount(tp topic.Topic) int {
	if ts := a.perTopic[tp]; ts != nil {
		return ts.count
	}
	return 0
}

// PerTopicScores returns the rounded running mean per assessed topic.
func (a *Aggregator) PerTopicScores() map[topic.Topic]float64 {
	out := make(map[topic.Topic]float64, len(a.perTopic))
	for tp, ts := range a.perTopic {
		if ts.count > 0 {
			out[tp] = Round1(ts.sum / float64(ts.count))
		}
	}
	return out
}

// FinalScore computes the weighted session score over the topics that
// were actually assessed. The configured weights are renormalized so they
// sum to 1 across covered topics; topics with zero exchanges contribute
// to neither numerator nor denominator. The result is rounded to one
// decimal.
func (a *Aggregator) FinalScore(weights map[topic.Topic]float64) float64 {
	var weighted, total float64
	for _, tp := range a.Assessed() {
		mean, _ := a.TopicMean(tp)
		w := weights[tp]
		weighted += mean * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return Round1(weighted / total)
}
