package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *Events) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(generationEventsTable).
		Columns("sequence", "timestamp", "request_id", "topic", "audience", "outcome",
			"questions", "research_degraded", "latency_ms", "error_message").
		Values(seqNum, time.Now().UnixMilli(), data.RequestID, data.Topic, data.Audience, data.Outcome,
			data.Questions, data.ResearchDegraded, data.LatencyMs, data.ErrorMessage).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save generation event: %w", err)
	}
	return nil
}

// QueryGenerations returns generation events newest first.
func (r *Events) QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error) {
	t := builder().Table(generationEventsTable)
	sel := builder().Select(columnsOf(t, []string{
		"id", "sequence", "timestamp", "request_id", "topic", "audience", "outcome",
		"questions", "research_degraded", "latency_ms", "error_message",
	})...).
		From(t).
		OrderBy(entsql.Desc(t.C("sequence")))
	if opts.After > 0 {
		sel.Where(entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var out []GenerationEvent
	for rows.Next() {
		var (
			e  GenerationEvent
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.RequestID, &e.Topic, &e.Audience, &e.Outcome,
			&e.Questions, &e.ResearchDegraded, &e.LatencyMs, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan generation event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// OutcomeCounts tallies generation events by outcome.
func (r *Events) OutcomeCounts(ctx context.Context) (map[string]int, error) {
	t := builder().Table(generationEventsTable)
	query, args := builder().Select(t.C("outcome"), entsql.As(entsql.Count(t.C("id")), "n")).
		From(t).
		GroupBy(t.C("outcome")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query outcome counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan outcome count: %w", err)
		}
		out[outcome] = n
	}
	return out, rows.Err()
}
