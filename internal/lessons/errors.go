package lessons

import (
	"errors"
	"fmt"
)

const (
	// GenericFailureMessage is shown for every failure that is not the
	// model's own verdict on the topic.
	GenericFailureMessage = "An unexpected error occurred while contacting the curriculum architect."

	// DefaultInvalidMessage is used when the model rejects a topic
	// without saying why.
	DefaultInvalidMessage = "Invalid Topic or Constraint Violation."
)

var (
	// ErrResearchUnavailable marks a degraded research phase. It is logged,
	// never returned from Generate.
	ErrResearchUnavailable = errors.New("research unavailable")

	// ErrEmptyTopic is returned when the topic is blank after trimming.
	ErrEmptyTopic = errors.New("topic is required")

	// ErrUnknownAudience is returned for an audience outside the fixed set.
	ErrUnknownAudience = errors.New("unknown audience level")
)

// GenerationError is a fatal synthesis failure: provider error, timeout,
// empty body, or output that does not match the lesson shape.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lesson generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("lesson generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError carries the model's judgment that the topic is
// nonsensical or violates policy.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) *ValidationError {
	if msg == "" {
		msg = DefaultInvalidMessage
	}
	return &ValidationError{Message: msg}
}

// UserMessage converts an error from Generate into text fit for display.
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrEmptyTopic):
		return "Please enter a topic."
	case errors.Is(err, ErrUnknownAudience):
		return "Please choose a target audience."
	default:
		return GenericFailureMessage
	}
}
