package compose

import "github.com/abhisek/microlearn/internal/lessons"

// lessonReadyMsg carries the outcome of one generation request.
type lessonReadyMsg struct {
	Ticket uint64
	Lesson *lessons.Lesson
	Err    error
}
