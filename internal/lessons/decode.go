package lessons

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Wire shapes use pointers so a missing field can be told apart from a
// zero value.
type lessonOutput struct {
	Title          *string           `json:"title"`
	TargetAudience *string           `json:"targetAudience"`
	Objective      *string           `json:"objective"`
	KeyConcepts    *[]string         `json:"keyConcepts"`
	Content        *string           `json:"content"`
	ResearchPapers []researchOutput  `json:"researchPapers"`
	Quiz           *[]questionOutput `json:"quiz"`
	IsValid        *bool             `json:"isValid"`
	ErrorMessage   *string           `json:"errorMessage"`
}

type questionOutput struct {
	Question     *string   `json:"question"`
	Options      *[]string `json:"options"`
	CorrectIndex *int      `json:"correctIndex"`
	Explanation  *string   `json:"explanation"`
}

type researchOutput struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeLesson turns raw synthesis output into a Lesson. It returns a
// *ValidationError when the model rejected the topic and a
// *GenerationError for anything else that is not a well-formed lesson.
func decodeLesson(raw []byte, audience Audience) (*Lesson, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &GenerationError{Reason: "no data returned"}
	}

	var out lessonOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &GenerationError{Reason: "malformed lesson JSON", Err: err}
	}

	if out.IsValid == nil {
		return nil, &GenerationError{Reason: "missing field isValid"}
	}
	if !*out.IsValid {
		return nil, newValidationError(strings.TrimSpace(deref(out.ErrorMessage)))
	}

	var missing []string
	for _, f := range []struct {
		name    string
		present bool
	}{
		{"title", out.Title != nil},
		{"objective", out.Objective != nil},
		{"keyConcepts", out.KeyConcepts != nil},
		{"content", out.Content != nil},
		{"quiz", out.Quiz != nil},
	} {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &GenerationError{Reason: "missing fields", Err: errors.New(strings.Join(missing, ", "))}
	}

	lesson := &Lesson{
		Title:          strings.TrimSpace(*out.Title),
		TargetAudience: strings.TrimSpace(deref(out.TargetAudience)),
		Objective:      strings.TrimSpace(*out.Objective),
		KeyConcepts:    *out.KeyConcepts,
		Content:        *out.Content,
	}
	if lesson.TargetAudience == "" {
		lesson.TargetAudience = audience.Label()
	}

	for i, q := range *out.Quiz {
		if q.Question == nil || q.Options == nil || q.CorrectIndex == nil || q.Explanation == nil {
			return nil, &GenerationError{Reason: fmt.Sprintf("quiz question %d is incomplete", i+1)}
		}
		lesson.Quiz = append(lesson.Quiz, QuizQuestion{
			Question:     *q.Question,
			Options:      *q.Options,
			CorrectIndex: *q.CorrectIndex,
			Explanation:  *q.Explanation,
		})
	}

	for _, p := range out.ResearchPapers {
		lesson.ResearchPapers = append(lesson.ResearchPapers, ResearchPaper(p))
	}

	if err := validateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// validateLesson enforces the shape the quiz depends on: 5 to 10
// questions, four options each and an in-range answer index.
func validateLesson(l *Lesson) error {
	err := validate.Struct(l)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
		return &GenerationError{Reason: "lesson failed validation", Err: errors.New(strings.Join(parts, "; "))}
	}
	return &GenerationError{Reason: "lesson failed validation", Err: err}
}

// verdictFromInvalid reports the model's rejection carried inside output
// that failed schema validation. A rejected topic often omits the
// required lesson fields, and that verdict must reach the user.
func verdictFromInvalid(raw []byte) (*ValidationError, bool) {
	var probe struct {
		IsValid      *bool   `json:"isValid"`
		ErrorMessage *string `json:"errorMessage"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &probe) != nil {
		return nil, false
	}
	if probe.IsValid == nil || *probe.IsValid {
		return nil, false
	}
	return newValidationError(strings.TrimSpace(deref(probe.ErrorMessage))), true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
