package question

import (
	"context"

	"go.uber.org/zap"
)

// FallbackService tries the primary source and falls back to the bank
// when it fails. An interview turn never fails on question sourcing
// alone as long as the bank has material left.
type FallbackService struct {
	primary  Service
	fallback Service
	log      *zap.Logger
}

// WithFallback wraps primary with a bank fallback.
func WithFallback(primary, fallback Service, log *zap.Logger) *FallbackService {
	return &FallbackService{primary: primary, fallback: fallback, log: log}
}

func (s *FallbackService) Next(ctx context.Context, req Request) (*Question, error) {
	q, err := s.primary.Next(ctx, req)
	if err == nil {
		return q, nil
	}

	s.log.Warn("question generation failed, using bank",
		zap.String("topic", string(req.Topic)),
		zap.Stringer("tier", req.Tier),
		zap.Error(err),
	)

	return s.fallback.Next(ctx, req)
}
