// Package lesson displays a generated lesson and runs its quiz.
package lesson

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/microlearn/internal/lessons"
	"github.com/abhisek/microlearn/internal/quiz"
	"github.com/abhisek/microlearn/internal/screen"
	"github.com/abhisek/microlearn/internal/ui/layout"
)

type mode int

const (
	modeReading mode = iota
	modeQuiz
)

const pageStep = 10

// LessonScreen implements screen.Screen for one lesson and its quiz.
type LessonScreen struct {
	lesson *lessons.Lesson
	quiz   *quiz.Session
	logger *zap.Logger

	mode   mode
	scroll int
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BadgeProvider = (*LessonScreen)(nil)

// New creates a lesson screen opened in reading mode.
func New(l *lessons.Lesson, logger *zap.Logger) *LessonScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LessonScreen{lesson: l, logger: logger.Named("lesson")}
	if q, err := quiz.New(l.Quiz); err == nil {
		s.quiz = q
	}
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

func (s *LessonScreen) Badge() string {
	return s.lesson.TargetAudience
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeReading {
		hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
		if s.quiz != nil {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Take quiz"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "New topic"})
	}

	if s.quiz.IsComplete() {
		return []layout.KeyHint{
			{Key: "R", Description: "Review lesson & retry"},
			{Key: "Esc", Description: "New topic"},
		}
	}
	hints := []layout.KeyHint{{Key: "1-4", Description: "Select"}}
	if s.quiz.Submitted() {
		label := "Next question"
		if s.quiz.IsLast() {
			label = "See results"
		}
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: label})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Check answer"})
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: "Lesson"},
		layout.KeyHint{Key: "Esc", Description: "New topic"},
	)
}

// Quiz exposes the quiz session.
func (s *LessonScreen) Quiz() *quiz.Session {
	return s.quiz
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if s.mode == modeReading {
		s.handleReadingKey(kmsg.String())
		return s, nil
	}
	s.handleQuizKey(kmsg.String())
	return s, nil
}

func (s *LessonScreen) handleReadingKey(key string) {
	switch key {
	case "up", "k":
		s.scroll--
	case "down", "j":
		s.scroll++
	case "pgup":
		s.scroll -= pageStep
	case "pgdown", "space":
		s.scroll += pageStep
	case "home", "g":
		s.scroll = 0
	case "enter", "tab", "q":
		if s.quiz != nil {
			s.mode = modeQuiz
		}
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

func (s *LessonScreen) handleQuizKey(key string) {
	q := s.quiz

	if q.IsComplete() {
		if key == "r" || key == "R" {
			if err := q.Retry(); err == nil {
				s.mode = modeReading
				s.scroll = 0
			}
		}
		return
	}

	switch key {
	case "tab":
		s.mode = modeReading
	case "1", "2", "3", "4":
		_ = q.Select(int(key[0] - '1'))
	case "up", "k":
		s.moveSelection(-1)
	case "down", "j":
		s.moveSelection(1)
	case "enter", "space":
		if !q.Submitted() {
			if correct, err := q.Submit(); err == nil {
				s.logger.Debug("answer submitted",
					zap.Int("question", q.Index()+1),
					zap.Bool("correct", correct),
				)
			}
			return
		}
		if err := q.Advance(); err == nil && q.IsComplete() {
			s.logger.Info("quiz complete",
				zap.Int("score", q.Score()),
				zap.Int("total", q.Total()),
			)
		}
	}
}

func (s *LessonScreen) moveSelection(delta int) {
	q := s.quiz
	n := len(q.Current().Options)
	cur, ok := q.Selected()
	next := 0
	if ok {
		next = (cur + delta + n) % n
	} else if delta < 0 {
		next = n - 1
	}
	_ = q.Select(next)
}
