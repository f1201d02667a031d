package question

import (
	"context"
	"testing"

	"github.com/skillvet/skillvet/internal/topic"
)

func TestBankMatchesTopicAndTier(t *testing.T) {
	b := NewBank()
	q, err := b.Next(context.Background(), Request{
		Topic: topic.LookupFunctions,
		Tier:  topic.TierIntermediate,
	})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if q.Topic != topic.LookupFunctions || q.Tier != topic.TierIntermediate {
		t.Errorf("got %s/%s", q.Topic, q.Tier)
	}
	if len(q.Keywords) == 0 {
		t.Error("bank question has no rubric keywords")
	}
}

func TestBankHonorsExclusions(t *testing.T) {
	b := NewBank()
	ctx := context.Background()
	req := Request{Topic: topic.BasicFormulas, Tier: topic.TierBeginner}

	first, err := b.Next(ctx, req)
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}

	req.ExcludeIDs = []string{first.ID}
	second, err := b.Next(ctx, req)
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("excluded question %s returned again", first.ID)
	}
}

func TestBankRelaxesTier(t *testing.T) {
	b := NewBank()
	// Automation has no beginner entries; the bank should fall back to
	// the topic at another tier rather than fail.
	q, err := b.Next(context.Background(), Request{
		Topic: topic.Automation,
		Tier:  topic.TierBeginner,
	})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if q.Topic != topic.Automation {
		t.Errorf("topic = %s, want automation", q.Topic)
	}
}

func TestBankComprehensive(t *testing.T) {
	b := NewBank()
	q, err := b.Next(context.Background(), Request{
		Topic:         topic.DataAnalysis,
		Tier:          topic.TierAdvanced,
		Comprehensive: true,
	})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !q.Comprehensive {
		t.Error("comprehensive request returned a single-topic question")
	}
}

func TestBankExhaustion(t *testing.T) {
	b := NewBank()
	ctx := context.Background()
	var asked []string

	for {
		q, err := b.Next(ctx, Request{
			Topic:      topic.Automation,
			Tier:       topic.TierAdvanced,
			ExcludeIDs: asked,
		})
		if err != nil {
			return // exhausted, as expected
		}
		asked = append(asked, q.ID)
		if len(asked) > len(bankQuestions) {
			t.Fatal("bank returned more questions than it holds")
		}
	}
}

func TestBankEveryTopicCovered(t *testing.T) {
	b := NewBank()
	for _, tp := range topic.All() {
		if _, err := b.Next(context.Background(), Request{Topic: tp, Tier: topic.TierIntermediate}); err != nil {
			t.Errorf("no bank question for %s: %v", tp, err)
		}
	}
}
