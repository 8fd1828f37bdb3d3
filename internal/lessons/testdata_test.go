package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/microlearn/internal/llm"
	"github.com/abhisek/microlearn/internal/store"
)

func question(n, correct int) map[string]any {
	return map[string]any{
		"question":     fmt.Sprintf("Question %d about photosynthesis?", n),
		"options":      []string{"Chlorophyll", "Mitochondria", "Ribosomes", "Golgi bodies"},
		"correctIndex": correct,
		"explanation":  "Chlorophyll absorbs light energy.",
	}
}

// lessonPayload is a valid synthesis response that tests mutate.
func lessonPayload(questions int) map[string]any {
	quiz := make([]any, questions)
	for i := range quiz {
		quiz[i] = question(i+1, 0)
	}
	return map[string]any{
		"title":          "Photosynthesis: How Plants Capture Light",
		"targetAudience": "8th Grade",
		"objective":      "Explain how plants convert light energy into chemical energy.",
		"keyConcepts":    []string{"Chlorophyll", "Light-dependent reactions", "Calvin cycle"},
		"content":        "**Photosynthesis** happens in the *chloroplast*.",
		"researchPapers": []any{
			map[string]any{"title": "Engineering faster RuBisCO", "source": "Nature", "date": "2024", "summary": "A faster enzyme variant.", "url": "https://nature.com/rubisco"},
		},
		"quiz":    quiz,
		"isValid": true,
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func researchReply() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage("1. Engineering faster RuBisCO (Nature, 2024): a faster enzyme variant.")}
}

func synthesisReply(payload map[string]any) llm.MockResponse {
	return llm.MockResponse{Content: mustJSON(payload)}
}

type fakeEvents struct {
	mu          sync.Mutex
	generations []store.GenerationEventData
}

func (f *fakeEvents) AppendLLMRequest(context.Context, store.LLMRequestEventData) error { return nil }

func (f *fakeEvents) AppendGeneration(_ context.Context, d store.GenerationEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations = append(f.generations, d)
	return nil
}

func (f *fakeEvents) last() store.GenerationEventData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generations[len(f.generations)-1]
}

func userPrompt(req llm.Request) string {
	var b strings.Builder
	for _, m := range req.Messages {
		b.WriteString(m.Content)
	}
	return b.String()
}
