package lessons

// Lesson is a generated micro-lesson: explanatory content, key concepts,
// optional research references and an assessment quiz. A Lesson is built
// once per successful request and never modified afterwards.
type Lesson struct {
	Title          string          `json:"title" validate:"required"`
	TargetAudience string          `json:"targetAudience"`
	Objective      string          `json:"objective" validate:"required"`
	KeyConcepts    []string        `json:"keyConcepts" validate:"min=1,dive,required"`
	Content        string          `json:"content" validate:"required"`
	Quiz           []QuizQuestion  `json:"quiz" validate:"min=5,max=10,dive"`
	ResearchPapers []ResearchPaper `json:"researchPapers,omitempty"`
}

// QuizQuestion is a single multiple-choice knowledge check.
type QuizQuestion struct {
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"len=4,dive,required"`
	CorrectIndex int      `json:"correctIndex" validate:"min=0,max=3"`
	Explanation  string   `json:"explanation" validate:"required"`
}

// IsCorrect reports whether option i is the right answer.
func (q QuizQuestion) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// ResearchPaper is a recent reference surfaced by the research phase.
type ResearchPaper struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
	URL     string `json:"url,omitempty"`
}

// DisplayDate returns the publication date, or "Recent" when unknown.
func (p ResearchPaper) DisplayDate() string {
	if p.Date == "" {
		return "Recent"
	}
	return p.Date
}
