// Package compose is the request screen: topic input, audience picker and
// suggestions. It submits to the lesson generator and hands a finished
// lesson to the lesson screen.
package compose

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/microlearn/internal/form"
	"github.com/abhisek/microlearn/internal/lessons"
	"github.com/abhisek/microlearn/internal/router"
	"github.com/abhisek/microlearn/internal/screen"
	"github.com/abhisek/microlearn/internal/ui/components"
	"github.com/abhisek/microlearn/internal/ui/layout"
)

const topicCharLimit = 200

// Generator produces a lesson for a topic and audience.
type Generator interface {
	Generate(ctx context.Context, topic string, audience lessons.Audience) (*lessons.Lesson, error)
}

type focusArea int

const (
	focusTopic focusArea = iota
	focusAudience
	focusSuggestions
	focusCount
)

// ComposeScreen implements screen.Screen for the lesson request form.
type ComposeScreen struct {
	parent     context.Context
	gen        Generator
	openLesson func(*lessons.Lesson) screen.Screen
	logger     *zap.Logger

	form    *form.Form
	input   components.TextInput
	focus   focusArea
	chip    int
	spinner components.Spinner

	seq    lessons.Sequencer
	ticket uint64
	cancel context.CancelFunc
}

var _ screen.Screen = (*ComposeScreen)(nil)
var _ screen.KeyHintProvider = (*ComposeScreen)(nil)

// New creates the compose screen. Requests derive from ctx, so cancelling
// it aborts an in-flight generation. openLesson builds the screen pushed
// when a lesson arrives.
func New(ctx context.Context, gen Generator, openLesson func(*lessons.Lesson) screen.Screen, logger *zap.Logger) *ComposeScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComposeScreen{
		parent:     ctx,
		gen:        gen,
		openLesson: openLesson,
		logger:     logger.Named("compose"),
		form:       form.New(),
		input:      components.NewTextInput("e.g. Photosynthesis, Quantum Computing, Stoicism", topicCharLimit),
	}
}

func (c *ComposeScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ComposeScreen) Title() string {
	return "New Lesson"
}

func (c *ComposeScreen) KeyHints() []layout.KeyHint {
	if c.form.Busy() {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch c.focus {
	case focusAudience:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Audience"})
	case focusSuggestions:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Choose"}, layout.KeyHint{Key: "Enter", Description: "Use topic"})
	}
	if c.focus != focusSuggestions {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Generate"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Form exposes the underlying form state.
func (c *ComposeScreen) Form() *form.Form {
	return c.form
}

func (c *ComposeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonReadyMsg:
		return c.handleLessonReady(msg)

	case components.SpinnerTickMsg:
		if !c.form.Busy() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyPressMsg:
		return c.handleKey(msg)
	}

	if c.focus == focusTopic && !c.form.Busy() {
		return c.updateInput(msg)
	}
	return c, nil
}

func (c *ComposeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if c.form.Busy() {
		if key == "esc" {
			c.cancelRequest()
		}
		return c, nil
	}

	switch key {
	case "tab":
		return c, c.setFocus((c.focus + 1) % focusCount)
	case "shift+tab":
		return c, c.setFocus((c.focus + focusCount - 1) % focusCount)
	}

	switch c.focus {
	case focusAudience:
		switch key {
		case "left", "h":
			c.form.CycleAudience(-1)
		case "right", "l":
			c.form.CycleAudience(1)
		case "enter":
			return c.submit()
		}
		return c, nil

	case focusSuggestions:
		n := len(c.form.Suggestions())
		switch key {
		case "left", "h":
			c.chip = (c.chip + n - 1) % n
		case "right", "l":
			c.chip = (c.chip + 1) % n
		case "enter", "space":
			if c.form.UseSuggestion(c.chip) {
				c.input.SetValue(c.form.Topic())
				return c, c.setFocus(focusTopic)
			}
		}
		return c, nil
	}

	if key == "enter" {
		return c.submit()
	}
	return c.updateInput(msg)
}

func (c *ComposeScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.form.SetTopic(c.input.Value())
	return c, cmd
}

func (c *ComposeScreen) setFocus(f focusArea) tea.Cmd {
	c.focus = f
	if f == focusTopic {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

func (c *ComposeScreen) submit() (screen.Screen, tea.Cmd) {
	req, ok := c.form.Submit()
	if !ok {
		return c, nil
	}

	c.ticket = c.seq.Next()
	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel
	c.spinner = components.Spinner{ID: int(c.ticket)}

	c.logger.Debug("lesson requested",
		zap.Uint64("ticket", c.ticket),
		zap.String("topic", req.Topic),
		zap.String("audience", string(req.Audience)),
	)

	return c, tea.Batch(c.generate(ctx, c.ticket, req), c.spinner.Tick())
}

func (c *ComposeScreen) generate(ctx context.Context, ticket uint64, req form.Request) tea.Cmd {
	gen := c.gen
	return func() tea.Msg {
		lesson, err := gen.Generate(ctx, req.Topic, req.Audience)
		return lessonReadyMsg{Ticket: ticket, Lesson: lesson, Err: err}
	}
}

// cancelRequest aborts the in-flight request. Its late result, if any,
// carries a stale ticket and is dropped.
func (c *ComposeScreen) cancelRequest() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq.Invalidate()
	c.form.Finish(nil)
	c.logger.Debug("lesson request cancelled", zap.Uint64("ticket", c.ticket))
}

func (c *ComposeScreen) handleLessonReady(msg lessonReadyMsg) (screen.Screen, tea.Cmd) {
	if !c.seq.IsCurrent(msg.Ticket) {
		c.logger.Debug("dropping stale lesson result", zap.Uint64("ticket", msg.Ticket))
		return c, nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if msg.Err == nil && msg.Lesson == nil {
		msg.Err = errors.New("generator returned no lesson")
	}
	c.form.Finish(msg.Err)
	if msg.Err != nil {
		return c, nil
	}

	next := c.openLesson(msg.Lesson)
	return c, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}
