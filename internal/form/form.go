// Package form holds the lesson request form: topic text, audience
// selection, quick suggestions and the in-flight loading state.
package form

import (
	"strings"

	"github.com/abhisek/microlearn/internal/lessons"
)

var suggestions = []string{
	"Artificial Intelligence",
	"Machine Learning",
	"Deep Learning",
}

// Request is a submitted (topic, audience) pair.
type Request struct {
	Topic    string
	Audience lessons.Audience
}

// LoadingState reflects the current generation attempt.
type LoadingState struct {
	IsLoading bool
	Error     error
}

// Form is the request form model. While a request is in flight every
// mutator is a no-op.
type Form struct {
	topic    string
	audience lessons.Audience
	state    LoadingState
}

// New returns an empty form with the default audience.
func New() *Form {
	return &Form{audience: lessons.DefaultAudience}
}

func (f *Form) Topic() string              { return f.topic }
func (f *Form) Audience() lessons.Audience { return f.audience }
func (f *Form) State() LoadingState        { return f.state }
func (f *Form) Busy() bool                 { return f.state.IsLoading }

// CanSubmit reports whether Submit would start a request.
func (f *Form) CanSubmit() bool {
	return !f.state.IsLoading && strings.TrimSpace(f.topic) != ""
}

// SetTopic replaces the topic text.
func (f *Form) SetTopic(topic string) {
	if f.Busy() {
		return
	}
	f.topic = topic
}

// SetAudience selects an audience. Unknown values are ignored.
func (f *Form) SetAudience(a lessons.Audience) {
	if f.Busy() || !a.Valid() {
		return
	}
	f.audience = a
}

// CycleAudience moves the selection by delta, wrapping at either end.
func (f *Form) CycleAudience(delta int) {
	if f.Busy() {
		return
	}
	all := lessons.Audiences()
	cur := 0
	for i, a := range all {
		if a == f.audience {
			cur = i
			break
		}
	}
	n := len(all)
	f.audience = all[((cur+delta)%n+n)%n]
}

// Suggestions returns the quick-pick topics.
func (f *Form) Suggestions() []string {
	return append([]string(nil), suggestions...)
}

// UseSuggestion fills the topic with suggestion i. It does not submit.
func (f *Form) UseSuggestion(i int) bool {
	if f.Busy() || i < 0 || i >= len(suggestions) {
		return false
	}
	f.topic = suggestions[i]
	return true
}

// Submit starts a request when the topic is non-blank and nothing is in
// flight. The previous error is cleared. The topic goes out trimmed.
func (f *Form) Submit() (Request, bool) {
	if !f.CanSubmit() {
		return Request{}, false
	}
	f.Reset()
	f.state.IsLoading = true
	return Request{Topic: strings.TrimSpace(f.topic), Audience: f.audience}, true
}

// Finish ends the in-flight request, recording err (nil on success).
func (f *Form) Finish(err error) {
	f.state = LoadingState{Error: err}
}

// Reset clears the previous attempt's error. Topic and audience are kept.
func (f *Form) Reset() {
	if f.state.IsLoading {
		return
	}
	f.state = LoadingState{}
}
