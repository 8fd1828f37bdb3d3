package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/microlearn/internal/lessons"
)

func TestNew_Defaults(t *testing.T) {
	f := New()
	assert.Equal(t, "", f.Topic())
	assert.Equal(t, lessons.HighSchool, f.Audience())
	assert.False(t, f.Busy())
	assert.NoError(t, f.State().Error)
	assert.False(t, f.CanSubmit())
}

func TestSubmit_BlankTopicRejected(t *testing.T) {
	for _, topic := range []string{"", "   ", "\t\n"} {
		f := New()
		f.SetTopic(topic)
		_, ok := f.Submit()
		assert.False(t, ok, "topic %q", topic)
		assert.False(t, f.Busy())
	}
}

func TestSubmit_TrimsAndLocks(t *testing.T) {
	f := New()
	f.SetTopic("  Photosynthesis  ")
	f.SetAudience(lessons.Elementary)

	req, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, Request{Topic: "Photosynthesis", Audience: lessons.Elementary}, req)
	assert.True(t, f.Busy())

	_, ok = f.Submit()
	assert.False(t, ok, "second submit while busy")

	f.SetTopic("Black holes")
	f.SetAudience(lessons.Expert)
	f.CycleAudience(1)
	assert.False(t, f.UseSuggestion(0))
	assert.Equal(t, "  Photosynthesis  ", f.Topic())
	assert.Equal(t, lessons.Elementary, f.Audience())
}

func TestFinish(t *testing.T) {
	f := New()
	f.SetTopic("Photosynthesis")
	_, _ = f.Submit()

	boom := errors.New("boom")
	f.Finish(boom)
	assert.False(t, f.Busy())
	assert.Equal(t, boom, f.State().Error)

	// A new attempt clears the previous error.
	_, ok := f.Submit()
	require.True(t, ok)
	assert.NoError(t, f.State().Error)

	f.Finish(nil)
	assert.Equal(t, LoadingState{}, f.State())
}

func TestCycleAudience_Wraps(t *testing.T) {
	f := New()
	f.SetAudience(lessons.Elementary)
	f.CycleAudience(-1)
	assert.Equal(t, lessons.Expert, f.Audience())
	f.CycleAudience(1)
	assert.Equal(t, lessons.Elementary, f.Audience())
	f.CycleAudience(2)
	assert.Equal(t, lessons.HighSchool, f.Audience())
	f.CycleAudience(len(lessons.Audiences()))
	assert.Equal(t, lessons.HighSchool, f.Audience())
}

func TestSetAudience_IgnoresUnknown(t *testing.T) {
	f := New()
	f.SetAudience(lessons.Audience("Toddler"))
	assert.Equal(t, lessons.HighSchool, f.Audience())
}

func TestUseSuggestion(t *testing.T) {
	f := New()
	assert.Equal(t, []string{"Artificial Intelligence", "Machine Learning", "Deep Learning"}, f.Suggestions())

	require.True(t, f.UseSuggestion(1))
	assert.Equal(t, "Machine Learning", f.Topic())
	assert.False(t, f.Busy(), "choosing a suggestion does not submit")

	assert.False(t, f.UseSuggestion(3))
	assert.Equal(t, "Machine Learning", f.Topic())

	f.Suggestions()[0] = "changed"
	assert.Equal(t, "Artificial Intelligence", f.Suggestions()[0])
}

func TestReset(t *testing.T) {
	f := New()
	f.SetTopic("Photosynthesis")
	f.SetAudience(lessons.Expert)
	_, _ = f.Submit()

	f.Reset()
	assert.True(t, f.Busy(), "in-flight request is not reset")

	f.Finish(errors.New("boom"))
	f.Reset()
	assert.Equal(t, LoadingState{}, f.State())
	assert.Equal(t, "Photosynthesis", f.Topic())
	assert.Equal(t, lessons.Expert, f.Audience())
}

func TestSubmitClearsPreviousError(t *testing.T) {
	f := New()
	f.SetTopic("Tides")
	_, _ = f.Submit()
	f.Finish(errors.New("boom"))

	_, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, LoadingState{IsLoading: true}, f.State())
}
