package lessons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLesson_RejectsMalformedShapes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p map[string]any)
		raw    string
	}{
		{name: "not json", raw: "{title: nope"},
		{name: "missing isValid", mutate: func(p map[string]any) { delete(p, "isValid") }},
		{name: "missing title", mutate: func(p map[string]any) { delete(p, "title") }},
		{name: "missing quiz", mutate: func(p map[string]any) { delete(p, "quiz") }},
		{name: "blank content", mutate: func(p map[string]any) { p["content"] = "" }},
		{name: "no key concepts", mutate: func(p map[string]any) { p["keyConcepts"] = []string{} }},
		{name: "four questions", mutate: func(p map[string]any) { p["quiz"] = lessonPayload(4)["quiz"] }},
		{name: "eleven questions", mutate: func(p map[string]any) { p["quiz"] = lessonPayload(11)["quiz"] }},
		{name: "three options", mutate: func(p map[string]any) {
			q := question(1, 0)
			q["options"] = []string{"a", "b", "c"}
			p["quiz"].([]any)[0] = q
		}},
		{name: "blank option", mutate: func(p map[string]any) {
			q := question(1, 0)
			q["options"] = []string{"a", "", "c", "d"}
			p["quiz"].([]any)[0] = q
		}},
		{name: "index out of range", mutate: func(p map[string]any) { p["quiz"].([]any)[2] = question(3, 4) }},
		{name: "negative index", mutate: func(p map[string]any) { p["quiz"].([]any)[2] = question(3, -1) }},
		{name: "index as string", mutate: func(p map[string]any) {
			q := question(1, 0)
			q["correctIndex"] = "1"
			p["quiz"].([]any)[0] = q
		}},
		{name: "missing explanation", mutate: func(p map[string]any) {
			q := question(1, 0)
			delete(q, "explanation")
			p["quiz"].([]any)[0] = q
		}},
		{name: "title wrong type", mutate: func(p map[string]any) { p["title"] = 42 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []byte(tt.raw)
			if tt.mutate != nil {
				p := lessonPayload(5)
				tt.mutate(p)
				raw = mustJSON(p)
			}

			_, err := decodeLesson(raw, HighSchool)
			var gerr *GenerationError
			require.ErrorAs(t, err, &gerr)
		})
	}
}

func TestDecodeLesson_PassThroughPolicy(t *testing.T) {
	p := lessonPayload(10)
	p["keyConcepts"] = []string{"a", "b", "c", "d", "e", "f", "g"}
	p["researchPapers"] = []any{
		map[string]any{"title": "Dup", "source": "Nature"},
		map[string]any{"title": "Dup", "source": "Nature"},
	}
	delete(p, "targetAudience")

	lesson, err := decodeLesson(mustJSON(p), Expert)
	require.NoError(t, err)

	// keyConcepts outside 3-5 and duplicate papers are kept as returned.
	assert.Len(t, lesson.KeyConcepts, 7)
	assert.Len(t, lesson.ResearchPapers, 2)
	assert.Equal(t, "Recent", lesson.ResearchPapers[0].DisplayDate())
	assert.Equal(t, "Subject Matter Expert", lesson.TargetAudience)
}

func TestDecodeLesson_DropsVerdictFields(t *testing.T) {
	p := lessonPayload(5)
	p["errorMessage"] = ""

	lesson, err := decodeLesson(mustJSON(p), MiddleSchool)
	require.NoError(t, err)
	assert.Equal(t, "8th Grade", lesson.TargetAudience)

	out := string(mustJSON(lesson))
	assert.NotContains(t, out, "isValid")
	assert.NotContains(t, out, "errorMessage")
}

func TestVerdictFromInvalid(t *testing.T) {
	v, ok := verdictFromInvalid([]byte(`{"isValid":false,"errorMessage":"  Gibberish.  "}`))
	require.True(t, ok)
	assert.Equal(t, "Gibberish.", v.Message)

	for _, raw := range []string{``, `not json`, `{"isValid":true}`, `{"title":"x"}`} {
		_, ok := verdictFromInvalid([]byte(raw))
		assert.False(t, ok, raw)
	}
}
