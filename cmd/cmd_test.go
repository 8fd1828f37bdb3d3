package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/microlearn/internal/lessons"
	"github.com/abhisek/microlearn/internal/store"
)

func testQuiz() []lessons.QuizQuestion {
	var qs []lessons.QuizQuestion
	for i := 0; i < 5; i++ {
		qs = append(qs, lessons.QuizQuestion{
			Question:     "Where does photosynthesis happen?",
			Options:      []string{"Chloroplast", "Nucleus", "Vacuole", "Ribosome"},
			CorrectIndex: 0,
			Explanation:  "Chloroplasts hold chlorophyll.",
		})
	}
	return qs
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestRunLineQuiz_ScoresAndFinishes(t *testing.T) {
	in := strings.NewReader("1\n2\n1\n1\n1\nn\n")
	var out bytes.Buffer

	require.NoError(t, runLineQuiz(in, &out, testQuiz()))
	s := out.String()
	assert.Contains(t, s, "Question 1 of 5")
	assert.Contains(t, s, "Question 5 of 5")
	assert.Contains(t, s, "Incorrect. The answer is 1) Chloroplast")
	assert.Contains(t, s, "Quiz Complete! 80%  (4 out of 5 Correct)")
}

func TestRunLineQuiz_RejectsBadInputAndRetries(t *testing.T) {
	in := strings.NewReader("x\n7\n1\n1\n1\n1\n1\ny\n1\n1\n1\n1\n1\n")
	var out bytes.Buffer

	require.NoError(t, runLineQuiz(in, &out, testQuiz()))
	s := out.String()
	assert.Equal(t, 2, strings.Count(s, "Please enter a number from 1 to 4."))
	assert.Equal(t, 2, strings.Count(s, "Quiz Complete! 100%"), "second round after retry")
}

func TestRunLineQuiz_EOFEndsCleanly(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runLineQuiz(strings.NewReader("1\n"), &out, testQuiz()))
	assert.Contains(t, out.String(), "Question 2 of 5")
}

func TestRunLineQuiz_Empty(t *testing.T) {
	assert.Error(t, runLineQuiz(strings.NewReader(""), &bytes.Buffer{}, nil))
}

func TestPrintLesson(t *testing.T) {
	var out bytes.Buffer
	printLesson(&out, &lessons.Lesson{
		Title:          "Photosynthesis",
		TargetAudience: "High School",
		Objective:      "Explain light reactions.",
		KeyConcepts:    []string{"Chlorophyll"},
		Content:        "Plants use **chlorophyll**.\x1b[31m",
		ResearchPapers: []lessons.ResearchPaper{{Title: "RuBisCO", Source: "Nature", Summary: "Faster enzyme."}},
	})
	s := out.String()
	assert.Contains(t, s, "Plants use chlorophyll.")
	assert.NotContains(t, s, "**")
	assert.NotContains(t, s, "\x1b")
	assert.Contains(t, s, "[Recent] RuBisCO")
	assert.Contains(t, s, "Source: Nature")
}

func TestAudiencesCommand(t *testing.T) {
	s := execute(t, "audiences")
	assert.Contains(t, s, "5th Grade")
	assert.Contains(t, s, "Subject Matter Expert")
	assert.Regexp(t, `High School\s+High School  \(default\)`, s)
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "microlearn (devel)")
}

func TestHistoryCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "usage.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.EventRepo().AppendGeneration(ctx, store.GenerationEventData{
		RequestID: "req-1", Topic: "Photosynthesis", Audience: "High School",
		Outcome: store.OutcomeOK, Questions: 6, LatencyMs: 1200,
	}))
	require.NoError(t, st.EventRepo().AppendGeneration(ctx, store.GenerationEventData{
		RequestID: "req-2", Topic: "asdf", Audience: "5th Grade",
		Outcome: store.OutcomeInvalidTopic, ResearchDegraded: true,
	}))
	require.NoError(t, st.Close())

	s := execute(t, "history", "--db", dbPath)
	assert.Contains(t, s, "Photosynthesis")
	assert.Contains(t, s, "invalid-topic")
	assert.Contains(t, s, "degraded")
	assert.Contains(t, s, "All time: invalid-topic 1, ok 1")
}

func TestLLMCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "usage.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, store.LLMRequestEventData{
		RequestID: "req-1", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "research",
		Grounded: true, InputTokens: 1000, OutputTokens: 500, LatencyMs: 900, Success: true,
	}))
	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, store.LLMRequestEventData{
		RequestID: "req-1", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "synthesis",
		InputTokens: 2000, OutputTokens: 3000, LatencyMs: 4000, Success: true,
	}))
	require.NoError(t, st.Close())

	list := execute(t, "llm", "list", "--db", dbPath, "--purpose", "research")
	assert.Contains(t, list, "research")
	assert.NotContains(t, list, "synthesis")

	view := execute(t, "llm", "view", "1", "--db", dbPath)
	assert.Contains(t, view, "Request:   req-1")
	assert.Contains(t, view, "Grounded:  true")

	stats := execute(t, "llm", "stats", "--db", dbPath)
	assert.Contains(t, stats, "Usage by Purpose")
	assert.Contains(t, stats, "gemini-2.5-flash")
	assert.Contains(t, stats, "$")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", truncate("héllo", 4))
	assert.Equal(t, "ok", truncate("ok", 4))
}
