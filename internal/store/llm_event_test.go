package store

import (
	"context"
	"testing"
)

func seedLLMEvents(t *testing.T, repo *Events) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{RequestID: "r1", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "research", Grounded: true, InputTokens: 40, OutputTokens: 400, LatencyMs: 2000, Success: true},
		{RequestID: "r1", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "synthesis", InputTokens: 900, OutputTokens: 2100, LatencyMs: 6000, Success: true},
		{RequestID: "r2", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "research", Grounded: true, LatencyMs: 1000, Success: false, ErrorMessage: "LLM provider unavailable"},
		{RequestID: "r2", Provider: "openai", Model: "gpt-4o-mini", Purpose: "synthesis", InputTokens: 800, OutputTokens: 1500, LatencyMs: 4000, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 events, got %d", len(all))
	}
	if all[0].Model != "gpt-4o-mini" {
		t.Fatalf("expected newest first, got %s", all[0].Model)
	}
	if all[0].Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	research, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "research", Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(research) != 1 || research[0].Success || research[0].ErrorMessage == "" || !research[0].Grounded {
		t.Fatalf("unexpected research events: %+v", research)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 3})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("expected 1 event after sequence 3, got %d", len(after))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	e, err := repo.GetLLMEvent(ctx, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.Purpose != "synthesis" || e.OutputTokens != 2100 {
		t.Fatalf("unexpected event: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 99)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMEventsForRequest(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)

	events, err := repo.LLMEventsForRequest(context.Background(), "r1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].Purpose != "research" || events[1].Purpose != "synthesis" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	research := byPurpose[0]
	if research.Purpose != "research" || research.Calls != 2 || research.OutputTokens != 400 || research.AvgLatencyMs != 1500 {
		t.Fatalf("unexpected research usage: %+v", research)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("expected 2 models, got %d", len(byModel))
	}
	if byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 3 || byModel[0].InputTokens != 940 {
		t.Fatalf("unexpected gemini usage: %+v", byModel[0])
	}
}

func TestGenerationEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []GenerationEventData{
		{RequestID: "r1", Topic: "Quantum Entanglement", Audience: "Post-Graduate Expert", Outcome: OutcomeOK, Questions: 7, LatencyMs: 8000},
		{RequestID: "r2", Topic: "asdfgh", Audience: "High School", Outcome: OutcomeInvalidTopic, ResearchDegraded: true, ErrorMessage: "Not a recognizable topic."},
		{RequestID: "r3", Topic: "Tides", Audience: "5th Grade", Outcome: OutcomeOK, Questions: 5},
	} {
		if err := repo.AppendGeneration(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryGenerations(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].Topic != "Tides" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if !events[1].ResearchDegraded || events[1].Outcome != OutcomeInvalidTopic {
		t.Fatalf("unexpected invalid-topic event: %+v", events[1])
	}

	counts, err := repo.OutcomeCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[OutcomeOK] != 2 || counts[OutcomeInvalidTopic] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
