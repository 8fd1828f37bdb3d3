package lessons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/microlearn/internal/llm"
	"github.com/abhisek/microlearn/internal/store"
)

// Purpose labels attached to each LLM call.
const (
	PurposeResearch  = "research"
	PurposeSynthesis = "synthesis"
)

// Service generates micro-lessons in two sequential phases: a grounded
// research call whose failure only degrades the lesson, then a
// schema-constrained synthesis call whose failure is fatal.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
	events   store.EventRepo
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventRepo records one generation event per request.
func WithEventRepo(r store.EventRepo) Option {
	return func(s *Service) { s.events = r }
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config, opts ...Option) *Service {
	s := &Service{provider: provider, cfg: cfg, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.Named("lessons")
	return s
}

// Generate builds a lesson for topic at the given audience level. Errors
// are either *ValidationError (topic rejected by the model),
// *GenerationError, ErrEmptyTopic or ErrUnknownAudience. No partial lesson
// is ever returned.
func (s *Service) Generate(ctx context.Context, topic string, audience Audience) (*Lesson, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if !audience.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAudience, audience)
	}

	requestID := llm.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = llm.WithRequestID(ctx, requestID)
	}
	log := s.logger.With(
		zap.String("request_id", requestID),
		zap.String("topic", topic),
		zap.String("audience", string(audience)),
	)
	start := time.Now()

	researchContext, researchErr := s.research(ctx, topic)
	if researchErr != nil {
		log.Warn("research degraded, continuing without it", zap.Error(researchErr))
	}

	var (
		lesson *Lesson
		err    error
	)
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = &GenerationError{Reason: "request cancelled", Err: ctxErr}
	} else {
		lesson, err = s.synthesize(ctx, topic, audience, researchContext)
	}

	latency := time.Since(start)
	outcome := classify(ctx, err)
	switch outcome {
	case store.OutcomeOK:
		log.Info("lesson generated",
			zap.String("title", lesson.Title),
			zap.Int("questions", len(lesson.Quiz)),
			zap.Int("research_papers", len(lesson.ResearchPapers)),
			zap.Duration("latency", latency))
	case store.OutcomeInvalidTopic:
		log.Info("topic rejected", zap.Error(err))
	case store.OutcomeCancelled:
		log.Debug("lesson request cancelled")
	default:
		log.Error("lesson generation failed", zap.Error(err), zap.Duration("latency", latency))
	}

	s.record(ctx, store.GenerationEventData{
		RequestID:        requestID,
		Topic:            topic,
		Audience:         string(audience),
		Outcome:          outcome,
		Questions:        questionCount(lesson),
		ResearchDegraded: researchErr != nil,
		LatencyMs:        latency.Milliseconds(),
		ErrorMessage:     errString(err),
	}, log)

	return lesson, err
}

// research runs the grounded search phase. It always returns a usable
// context string; a non-nil error wraps ErrResearchUnavailable and only
// means the lesson will lean on the model's own knowledge.
func (s *Service) research(ctx context.Context, topic string) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeResearch)
	if s.cfg.ResearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ResearchTimeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:  llm.UserMessage(buildResearchPrompt(topic)),
		Grounding: true,
		MaxTokens: s.cfg.ResearchMaxTokens,
	})
	if err != nil {
		return researchUnavailableContext, fmt.Errorf("%w: %w", ErrResearchUnavailable, err)
	}

	if strings.TrimSpace(resp.Text()) == "" {
		return researchEmptyContext, fmt.Errorf("%w: empty research response", ErrResearchUnavailable)
	}
	return buildResearchContext(resp.Text(), resp.Sources), nil
}

func (s *Service) synthesize(ctx context.Context, topic string, audience Audience, researchContext string) (*Lesson, error) {
	callCtx := llm.WithPurpose(ctx, PurposeSynthesis)
	if s.cfg.SynthesisTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, s.cfg.SynthesisTimeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(callCtx, llm.Request{
		System:      lessonSystemPrompt,
		Messages:    llm.UserMessage(buildSynthesisPrompt(topic, audience, researchContext)),
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.SynthesisMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, s.synthesisError(ctx, callCtx, err)
	}

	return decodeLesson(resp.Content, audience)
}

func (s *Service) synthesisError(parent, call context.Context, err error) error {
	var invalid *llm.ErrInvalidResponse
	switch {
	case parent.Err() != nil:
		return &GenerationError{Reason: "request cancelled", Err: parent.Err()}
	case errors.Is(call.Err(), context.DeadlineExceeded):
		return &GenerationError{Reason: fmt.Sprintf("synthesis timed out after %s", s.cfg.SynthesisTimeout), Err: err}
	case errors.Is(err, llm.ErrEmptyResponse):
		return &GenerationError{Reason: "no data returned", Err: err}
	case errors.As(err, &invalid):
		if verdict, ok := verdictFromInvalid(invalid.Content); ok {
			return verdict
		}
		return &GenerationError{Reason: "response did not match the lesson schema", Err: err}
	default:
		return &GenerationError{Reason: "synthesis call failed", Err: err}
	}
}

func (s *Service) record(ctx context.Context, data store.GenerationEventData, log *zap.Logger) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendGeneration(context.WithoutCancel(ctx), data); err != nil {
		log.Warn("failed to record generation event", zap.Error(err))
	}
}

func classify(ctx context.Context, err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return store.OutcomeOK
	case errors.As(err, &verr):
		return store.OutcomeInvalidTopic
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		return store.OutcomeCancelled
	default:
		return store.OutcomeFailed
	}
}

func questionCount(l *Lesson) int {
	if l == nil {
		return 0
	}
	return len(l.Quiz)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
