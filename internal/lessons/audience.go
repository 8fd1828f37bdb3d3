package lessons

import (
	"fmt"
	"strings"
)

// Audience is a target learner level. It controls the depth and
// vocabulary of the generated lesson.
type Audience string

const (
	Elementary   Audience = "5th Grade"
	MiddleSchool Audience = "8th Grade"
	HighSchool   Audience = "High School"
	University   Audience = "University Intro"
	Professional Audience = "Professional"
	Expert       Audience = "Post-Graduate Expert"
)

// DefaultAudience is preselected on the request form.
const DefaultAudience = HighSchool

var audienceLabels = map[Audience]string{
	Elementary:   "5th Grade (Elementary)",
	MiddleSchool: "8th Grade (Middle School)",
	HighSchool:   "High School",
	University:   "University (Introductory)",
	Professional: "Professional Development",
	Expert:       "Subject Matter Expert",
}

// Audiences returns every audience level in display order.
func Audiences() []Audience {
	return []Audience{Elementary, MiddleSchool, HighSchool, University, Professional, Expert}
}

// Label is the human-facing name of the level.
func (a Audience) Label() string {
	if l, ok := audienceLabels[a]; ok {
		return l
	}
	return string(a)
}

// Valid reports whether a is one of the known levels.
func (a Audience) Valid() bool {
	_, ok := audienceLabels[a]
	return ok
}

// ParseAudience accepts either a level value or its label,
// case-insensitively.
func ParseAudience(s string) (Audience, error) {
	s = strings.TrimSpace(s)
	for _, a := range Audiences() {
		if strings.EqualFold(s, string(a)) || strings.EqualFold(s, a.Label()) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAudience, s)
}
