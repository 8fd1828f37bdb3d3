// Package quiz implements the question-by-question state machine for a
// lesson's knowledge check: select, submit, advance, and retry.
package quiz

import (
	"errors"
	"math"

	"github.com/abhisek/microlearn/internal/lessons"
)

// Phase is the coarse state of a Session.
type Phase int

const (
	// Answering means a question is on screen.
	Answering Phase = iota
	// Results means every question has been answered.
	Results
)

func (p Phase) String() string {
	if p == Results {
		return "results"
	}
	return "answering"
}

// Errors returned for transitions that are not legal in the current state.
// A failed transition never changes the session.
var (
	ErrNoQuestions      = errors.New("quiz has no questions")
	ErrOptionOutOfRange = errors.New("option out of range")
	ErrAlreadySubmitted = errors.New("answer already submitted")
	ErrNoSelection      = errors.New("no option selected")
	ErrNotSubmitted     = errors.New("answer not submitted yet")
	ErrQuizComplete     = errors.New("quiz is complete")
	ErrNotComplete      = errors.New("quiz is not complete")
)

// Outcome is the fixed result of one submitted question.
type Outcome struct {
	Selected int
	Correct  bool
}

// Session tracks progress through one lesson's quiz. It is owned by a
// single goroutine (the UI loop) and is not safe for concurrent use.
type Session struct {
	questions []lessons.QuizQuestion

	phase     Phase
	index     int
	selected  int // -1 when nothing is selected
	submitted bool
	score     int
	outcomes  []*Outcome
}

// New starts a session at the first question.
func New(questions []lessons.QuizQuestion) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{questions: questions}
	s.reset()
	return s, nil
}

func (s *Session) reset() {
	s.phase = Answering
	s.index = 0
	s.selected = -1
	s.submitted = false
	s.score = 0
	s.outcomes = make([]*Outcome, len(s.questions))
}

// Select marks option i as the pending answer. Selecting again before
// submitting simply moves the selection.
func (s *Session) Select(i int) error {
	if s.phase == Results {
		return ErrQuizComplete
	}
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if i < 0 || i >= len(s.questions[s.index].Options) {
		return ErrOptionOutOfRange
	}
	s.selected = i
	return nil
}

// Submit locks in the selected option and scores it. Each question can be
// submitted exactly once.
func (s *Session) Submit() (bool, error) {
	if s.phase == Results {
		return false, ErrQuizComplete
	}
	if s.submitted {
		return false, ErrAlreadySubmitted
	}
	if s.selected < 0 {
		return false, ErrNoSelection
	}

	correct := s.questions[s.index].IsCorrect(s.selected)
	s.submitted = true
	if correct {
		s.score++
	}
	s.outcomes[s.index] = &Outcome{Selected: s.selected, Correct: correct}
	return correct, nil
}

// Advance moves past a submitted question, entering Results after the last.
func (s *Session) Advance() error {
	if s.phase == Results {
		return ErrQuizComplete
	}
	if !s.submitted {
		return ErrNotSubmitted
	}
	if s.IsLast() {
		s.phase = Results
		return nil
	}
	s.index++
	s.selected = -1
	s.submitted = false
	return nil
}

// Retry restarts the same quiz from the first question with a zero score.
func (s *Session) Retry() error {
	if s.phase != Results {
		return ErrNotComplete
	}
	s.reset()
	return nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// IsComplete reports whether the session reached Results.
func (s *Session) IsComplete() bool { return s.phase == Results }

// Index is the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total is the number of questions.
func (s *Session) Total() int { return len(s.questions) }

// Current returns the question on screen.
func (s *Session) Current() lessons.QuizQuestion { return s.questions[s.index] }

// Selected returns the pending or submitted option.
func (s *Session) Selected() (int, bool) { return s.selected, s.selected >= 0 }

// Submitted reports whether the current question has been answered.
func (s *Session) Submitted() bool { return s.submitted }

// Score is the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool { return s.index == len(s.questions)-1 }

// LastCorrect reports the outcome of the current question once submitted.
func (s *Session) LastCorrect() (correct, ok bool) {
	o := s.outcomes[s.index]
	if o == nil {
		return false, false
	}
	return o.Correct, true
}

// Outcomes returns the fixed result of each question, nil where the
// question has not been submitted.
func (s *Session) Outcomes() []*Outcome {
	out := make([]*Outcome, len(s.outcomes))
	for i, o := range s.outcomes {
		if o != nil {
			c := *o
			out[i] = &c
		}
	}
	return out
}

// ProgressPercent is (index+1)/total*100 for the question on screen.
func (s *Session) ProgressPercent() float64 {
	return float64(s.index+1) / float64(len(s.questions)) * 100
}

// FinalPercent is the score as a whole percentage, rounded half away
// from zero.
func (s *Session) FinalPercent() int {
	return int(math.Round(float64(s.score) / float64(len(s.questions)) * 100))
}
