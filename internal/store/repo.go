package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Purpose string // exact purpose match, LLM events only
}

// LLMRequestEventData captures the metadata of a single LLM request.
// Prompts and responses are deliberately absent.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	Grounded     bool
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Generation outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidTopic = "invalid-topic"
	OutcomeFailed       = "failed"
	OutcomeCancelled    = "cancelled"
)

// GenerationEventData summarizes one lesson request end to end.
type GenerationEventData struct {
	RequestID        string
	Topic            string
	Audience         string
	Outcome          string
	Questions        int
	ResearchDegraded bool
	LatencyMs        int64
	ErrorMessage     string
}

// EventRepo provides append access to usage events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendGeneration records the outcome of a lesson request.
	AppendGeneration(ctx context.Context, data GenerationEventData) error
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// GenerationEvent is a stored generation event.
type GenerationEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GenerationEventData
}

// PurposeUsage aggregates token usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage per model ID.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}
