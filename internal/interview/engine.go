package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skillvet/skillvet/internal/adapt"
	"github.com/skillvet/skillvet/internal/completion"
	"github.com/skillvet/skillvet/internal/config"
	"github.com/skillvet/skillvet/internal/coverage"
	"github.com/skillvet/skillvet/internal/evaluate"
	"github.com/skillvet/skillvet/internal/logger"
	"github.com/skillvet/skillvet/internal/phase"
	"github.com/skillvet/skillvet/internal/question"
	"github.com/skillvet/skillvet/internal/scoring"
	"github.com/skillvet/skillvet/internal/selector"
	"github.com/skillvet/skillvet/internal/topic"
)

var (
	// ErrSessionNotFound is returned when no session matches the ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionTerminated is returned when an operation requires an
	// active session.
	ErrSessionTerminated = errors.New("session already terminated")

	// ErrSessionActive is returned when a report is requested for a
	// session that is still running.
	ErrSessionActive = errors.New("session still active")

	// ErrCorruptSession is returned when a stored session fails to
	// decode.
	ErrCorruptSession = errors.New("corrupt session record")
)

// Engine runs interviews. It holds no per-session state: every
// operation loads the session, rebuilds the aggregates from its
// exchange history, and persists the updated session before returning.
type Engine struct {
	cfg       config.Config
	store     SessionStore
	questions question.Service
	judge     evaluate.Evaluator
	sel       *selector.Selector
	log       *zap.Logger
}

// New creates an Engine.
func New(cfg config.Config, st SessionStore, questions question.Service, judge evaluate.Evaluator, log *zap.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		store:     st,
		questions: questions,
		judge:     judge,
		sel:       selector.New(cfg.Weights, cfg.Selection),
		log:       log,
	}
}

// derived holds the aggregates rebuilt from a session's exchanges.
// Rebuilding rather than caching makes resume and idempotent reporting
// fall out of the same code path.
type derived struct {
	agg       *scoring.Aggregator
	cov       *coverage.Tracker
	confirmed map[topic.Topic]bool
}

func (e *Engine) rebuild(s *Session) derived {
	d := derived{
		agg:       scoring.NewAggregator(e.cfg.RecentWindow),
		cov:       coverage.NewTracker(e.cfg.CoverageFor(s.Level)),
		confirmed: make(map[topic.Topic]bool),
	}
	for _, ex := range s.Exchanges {
		d.agg.Record(ex.Question.Topic, ex.Score)
		d.cov.Record(ex.Question.Topic)
		if ex.Phase == phase.Validation && !ex.Question.Comprehensive {
			d.confirmed[ex.Question.Topic] = true
		}
	}
	return d
}

// Start creates a session for the candidate and returns it with the
// first question pending.
func (e *Engine) Start(ctx context.Context, candidate string, level topic.Level) (*Session, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, fmt.Errorf("candidate name is required")
	}
	if _, err := topic.ParseLevel(string(level)); err != nil {
		return nil, err
	}

	s := &Session{
		ID:        newSessionID(),
		Candidate: candidate,
		Level:     level,
		Status:    StatusActive,
		State:     StateInitialized,
		Tier:      level.StartingTier(),
		CreatedAt: time.Now().UTC(),
	}

	if err := e.nextQuestion(ctx, s, e.rebuild(s)); err != nil {
		return nil, err
	}

	if err := e.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	e.log.Info("interview started",
		zap.String("session", s.ID),
		zap.String("candidate", candidate),
		zap.String("level", string(level)),
	)
	return s, nil
}

// Get loads a session by ID.
func (e *Engine) Get(ctx context.Context, id string) (*Session, error) {
	return e.store.Load(ctx, id)
}

// Submit scores the answer to the pending question, decides whether the
// interview continues, and either advances to the next question or
// finalizes the report.
func (e *Engine) Submit(ctx context.Context, id, answer string) (*TurnResult, error) {
	s, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status != StatusActive {
		return nil, ErrSessionTerminated
	}
	if s.Pending == nil {
		return nil, fmt.Errorf("%w: %s: active session has no pending question", ErrCorruptSession, id)
	}

	s.State = StateEvaluating
	ex := e.scoreAnswer(ctx, s, answer)
	s.Exchanges = append(s.Exchanges, ex)
	s.Pending = nil
	s.PendingRule = ""

	d := e.rebuild(s)

	s.State = StateDeciding
	dec := completion.Decide(completion.Input{
		ExchangeCount:     len(s.Exchanges),
		OverallMean:       d.agg.OverallMean(),
		CoverageSatisfied: d.cov.Satisfied(),
		WeakTopic:         e.hasWeakTopic(d.agg),
	}, e.cfg.Questions, e.cfg.CompletionThresholds())

	if dec.Stop {
		s.State = StateFinalizing
		now := time.Now().UTC()
		s.Status = StatusCompleted
		s.Reason = dec.Reason
		s.CompletedAt = &now
		s.State = StateTerminated

		if err := e.store.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}

		res := e.buildResult(s, d)
		e.log.Info("interview completed",
			zap.String("session", s.ID),
			zap.String("reason", string(dec.Reason)),
			zap.Float64("final_score", res.FinalScore),
		)
		return &TurnResult{Exchange: ex, Done: true, Reason: dec.Reason, Result: res}, nil
	}

	// Tier adaptation applies to the next question only.
	s.Tier = adapt.Next(s.Tier, d.agg.RecentAverage(), d.agg.OverallMean(), e.cfg.Adapt)

	// The scored exchange is persisted before question sourcing, so a
	// content-service failure never loses the answer.
	if err := e.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if err := e.nextQuestion(ctx, s, d); err != nil {
		return nil, err
	}

	if err := e.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &TurnResult{Exchange: ex, NextQuestion: s.Pending}, nil
}

// Abort terminates an active session and returns its report.
func (e *Engine) Abort(ctx context.Context, id string) (*Result, error) {
	s, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status != StatusActive {
		return nil, ErrSessionTerminated
	}

	now := time.Now().UTC()
	s.Status = StatusAborted
	s.Reason = completion.ReasonAborted
	s.Pending = nil
	s.PendingRule = ""
	s.CompletedAt = &now
	s.State = StateTerminated

	if err := e.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	e.log.Info("interview aborted", zap.String("session", s.ID))
	return e.buildResult(s, e.rebuild(s)), nil
}

// Result computes the report for a terminated session.
func (e *Engine) Result(ctx context.Context, id string) (*Result, error) {
	s, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status == StatusActive {
		return nil, ErrSessionActive
	}
	return e.buildResult(s, e.rebuild(s)), nil
}

// scoreAnswer runs both evaluation signals and blends them. A primary
// judge failure degrades to the heuristic signal alone; it never fails
// the turn.
func (e *Engine) scoreAnswer(ctx context.Context, s *Session, answer string) Exchange {
	q := *s.Pending
	index := len(s.Exchanges) + 1

	keywords := q.Keywords
	if len(keywords) == 0 {
		keywords = topic.RubricKeywords(q.Topic)
	}
	fb := evaluate.Fallback(answer, keywords)

	var primary *float64
	explanation := fb.Explanation
	var strengths, improvements []string

	// A nil judge (no provider configured) scores on the heuristic alone.
	if e.judge != nil {
		judgment, err := e.judge.Evaluate(ctx, q, answer)
		if err != nil {
			e.log.Warn("primary evaluation failed, using heuristic only",
				zap.String("session", s.ID),
				zap.Int("index", index),
				zap.Error(err),
			)
		} else {
			primary = &judgment.Score
			explanation = judgment.Explanation
			strengths = judgment.Strengths
			improvements = judgment.Improvements
		}
	}

	score, source := scoring.Blend(primary, fb.Score, e.cfg.Blend)

	return Exchange{
		Index:        index,
		Phase:        phase.ForIndex(index, e.cfg.Questions.Target),
		Question:     q,
		Answer:       answer,
		Rule:         s.PendingRule,
		Score:        score,
		Source:       source,
		Primary:      primary,
		Explanation:  explanation,
		Strengths:    strengths,
		Improvements: improvements,
		AnsweredAt:   time.Now().UTC(),
	}
}

// nextQuestion selects the next topic and sources a question for it,
// leaving the session awaiting an answer.
func (e *Engine) nextQuestion(ctx context.Context, s *Session, d derived) error {
	index := len(s.Exchanges) + 1
	ph := phase.ForIndex(index, e.cfg.Questions.Target)

	choice := e.sel.Pick(selector.Input{
		Phase:              ph,
		Unmet:              d.cov.Unmet(),
		Means:              topicMeans(d.agg),
		Counts:             d.cov.Counts(),
		ConfirmedStrengths: d.confirmed,
	})

	q, err := e.questions.Next(ctx, question.Request{
		Topic:          choice.Topic,
		Tier:           s.Tier,
		Phase:          ph,
		Comprehensive:  choice.Comprehensive,
		ExcludeIDs:     s.askedIDs(),
		PriorQuestions: s.priorQuestionTexts(),
	})
	if err != nil {
		return fmt.Errorf("source question: %w", err)
	}

	s.Pending = q
	s.PendingRule = choice.Rule
	s.State = StateAwaitingAnswer

	e.log.Debug("question selected",
		zap.String("session", s.ID),
		zap.Int("index", index),
		zap.String("phase", string(ph)),
		zap.String("topic", string(choice.Topic)),
		zap.String("rule", choice.Rule),
		zap.Stringer("tier", s.Tier),
		zap.String("question", logger.Truncate(q.Text, 80)),
	)
	return nil
}

func (e *Engine) hasWeakTopic(agg *scoring.Aggregator) bool {
	for _, tp := range agg.Assessed() {
		if mean, ok := agg.TopicMean(tp); ok && mean < e.cfg.Selection.Weakness {
			return true
		}
	}
	return false
}

func topicMeans(agg *scoring.Aggregator) map[topic.Topic]float64 {
	out := make(map[topic.Topic]float64)
	for _, tp := range agg.Assessed() {
		if mean, ok := agg.TopicMean(tp); ok {
			out[tp] = mean
		}
	}
	return out
}

func (e *Engine) buildResult(s *Session, d derived) *Result {
	final := d.agg.FinalScore(e.cfg.Weights)

	var perTopic []TopicScore
	for _, tp := range d.agg.Assessed() {
		mean, _ := d.agg.TopicMean(tp)
		perTopic = append(perTopic, TopicScore{
			Topic:     tp,
			Mean:      scoring.Round1(mean),
			Exchanges: d.agg.ExchangeCount(tp),
		})
	}

	return &Result{
		SessionID:         s.ID,
		Candidate:         s.Candidate,
		Level:             s.Level,
		Status:            s.Status,
		Reason:            s.Reason,
		FinalScore:        final,
		Recommendation:    recommend(final),
		QuestionCount:     len(s.Exchanges),
		PerTopic:          perTopic,
		CoverageSatisfied: d.cov.Satisfied(),
		Strengths:         collect(s.Exchanges, func(ex Exchange) []string { return ex.Strengths }),
		Improvements:      collect(s.Exchanges, func(ex Exchange) []string { return ex.Improvements }),
		CompletedAt:       s.CompletedAt,
	}
}

// collect gathers deduplicated phrases across exchanges, capped so the
// report stays readable.
func collect(exchanges []Exchange, pick func(Exchange) []string) []string {
	const maxPhrases = 5
	seen := make(map[string]bool)
	var out []string
	for _, ex := range exchanges {
		for _, s := range pick(ex) {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
			if len(out) == maxPhrases {
				return out
			}
		}
	}
	return out
}
