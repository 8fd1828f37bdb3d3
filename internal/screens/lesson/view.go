package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/microlearn/internal/ui/components"
	"github.com/abhisek/microlearn/internal/ui/layout"
	"github.com/abhisek/microlearn/internal/ui/markup"
	"github.com/abhisek/microlearn/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	cw := layout.ReadableWidth(width)

	var body string
	if s.mode == modeReading {
		body = s.renderReading(cw)
		// Clamp the stored offset to the document.
		body, s.scroll = layout.Window(body, s.scroll, height)
	} else if s.quiz.IsComplete() {
		body = s.renderResults(cw)
	} else {
		body = s.renderQuestion(cw)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		PaddingLeft((width - cw) / 2).
		Render(body)
}

func (s *LessonScreen) renderReading(cw int) string {
	l := s.lesson
	text := theme.Body.Width(cw)

	var b strings.Builder
	b.WriteString(theme.Badge.Render("MICROLESSON"))
	if l.TargetAudience != "" {
		b.WriteString(" " + theme.Muted.Render(markup.Sanitize(l.TargetAudience)))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(cw).Render(markup.Sanitize(l.Title)))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Objective"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(cw).Render(markup.Sanitize(l.Objective)))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Key Concepts"))
	b.WriteString("\n")
	for _, k := range l.KeyConcepts {
		b.WriteString(text.Render("• " + markup.Sanitize(k)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	wrap := lipgloss.NewStyle().Width(cw)
	for _, para := range strings.Split(l.Content, "\n") {
		b.WriteString(wrap.Render(markup.Render(para, theme.Body)))
		b.WriteString("\n")
	}

	if len(l.ResearchPapers) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Latest Research & Developments"))
		b.WriteString("\n")
		for _, p := range l.ResearchPapers {
			b.WriteString(s.renderPaper(p.Title, p.DisplayDate(), p.Summary, p.Source, p.URL, cw))
			b.WriteString("\n")
		}
	}

	if s.quiz != nil {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Knowledge check: %d questions. Press Enter to begin.", s.quiz.Total())))
	}
	return b.String()
}

func (s *LessonScreen) renderPaper(title, date, summary, source, url string, cw int) string {
	inner := cw - 4
	var b strings.Builder
	b.WriteString(theme.Muted.Render(markup.Sanitize(date)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Bold(true).Width(inner).Render(markup.Sanitize(title)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(inner).Render(markup.Sanitize(summary)))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(markup.Sanitize(source)))
	if url != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(markup.Sanitize(url)))
	}
	return components.Card("", b.String(), cw, false)
}

func (s *LessonScreen) renderQuestion(cw int) string {
	q := s.quiz
	cur := q.Current()
	sel, hasSel := q.Selected()
	if !hasSel {
		sel = -1
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Knowledge Check"))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", q.Index()+1, q.Total()),
		q.ProgressPercent(), false, cw,
	).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(cw).Render(markup.Sanitize(cur.Question)))
	b.WriteString("\n\n")

	options := make([]string, len(cur.Options))
	for i, o := range cur.Options {
		options[i] = markup.Sanitize(o)
	}
	b.WriteString(components.MultiChoice{
		Options:      options,
		Selected:     sel,
		Submitted:    q.Submitted(),
		CorrectIndex: cur.CorrectIndex,
		Width:        cw,
	}.View())
	b.WriteString("\n")

	if correct, ok := q.LastCorrect(); ok {
		verdict := theme.Incorrect.Render("Incorrect.")
		if correct {
			verdict = theme.Correct.Render("Correct!")
		}
		b.WriteString(verdict)
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(cw).Render(markup.Sanitize(cur.Explanation)))
		b.WriteString("\n\n")

		label := "Next Question"
		if q.IsLast() {
			label = "See Results"
		}
		b.WriteString(components.NewButton(label, false).View())
	} else {
		b.WriteString(components.NewButton("Check Answer", !hasSel).View())
	}
	return b.String()
}

func (s *LessonScreen) renderResults(cw int) string {
	q := s.quiz

	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz Complete!"))
	b.WriteString("\n\n")
	pct := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(fmt.Sprintf("%d%%", q.FinalPercent()))
	b.WriteString(pct)
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d out of %d Correct", q.Score(), q.Total())))
	b.WriteString("\n\n")

	questions := s.lesson.Quiz
	for i, o := range q.Outcomes() {
		mark := theme.Muted.Render("·")
		if o != nil && o.Correct {
			mark = theme.Correct.Render("✓")
		} else if o != nil {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%d. %s", i+1, markup.Sanitize(questions[i].Question))
		b.WriteString(mark + " " + theme.Body.Width(cw-2).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press R to review the lesson and retry."))
	return b.String()
}
