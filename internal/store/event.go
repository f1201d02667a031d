package store

import (
	"context"
	"database/sql"
	"fmt"
)

// LLMRequestEventData captures one LLM round trip for auditing.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	Success      bool
	InputTokens  int
	OutputTokens int
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// EventRepo appends audit events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(provider, model, purpose, latency_ms, success,
			 input_tokens, output_tokens, request_body, response_body, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.LatencyMs, data.Success,
		data.InputTokens, data.OutputTokens, data.RequestBody, data.ResponseBody, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save llm event: %w", err)
	}
	return nil
}
