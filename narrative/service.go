package narrative

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/status"
)

const tracerName = "github.com/lixenwraith/tubby-terrors/narrative"

// Service is the narrative text collaborator
// Both fetches always return usable text: provider failures and empty answers map to fixed fallbacks
type Service struct {
	cfg    Config
	gen    Generator
	tracer trace.Tracer

	registry      *status.Registry
	statFallbacks *atomic.Int64
}

// NewService creates a service whose provider is built on Init from Config
func NewService(reg *status.Registry) *Service {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Service{
		cfg:           DefaultConfig(),
		tracer:        otel.Tracer(tracerName),
		registry:      reg,
		statFallbacks: reg.Ints.Get(status.KeyNarrativeFallbacks),
	}
}

// NewWithGenerator creates a ready service around gen; nil gen runs offline
func NewWithGenerator(gen Generator, cfg Config, reg *status.Registry) *Service {
	s := NewService(reg)
	s.cfg = cfg
	s.gen = gen
	return s
}

// Name implements Service
func (s *Service) Name() string {
	return "narrative"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return []string{"status"}
}

// Init implements Service
// args[0]: Config - provider settings; missing key runs offline
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if c, ok := args[0].(Config); ok {
			s.cfg = c
		}
	}
	// Tracer provider may have been installed after construction
	s.tracer = otel.Tracer(tracerName)

	gen, err := NewOpenAIGenerator(s.cfg)
	if errors.Is(err, ErrNoProvider) {
		log.Printf("narrative offline, using fallback text")
		return nil
	}
	if err != nil {
		return err
	}
	s.gen = gen
	return nil
}

// Start implements Service
func (s *Service) Start() error {
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	return nil
}

// MaxInflight is the configured bound on concurrent requests
func (s *Service) MaxInflight() int64 {
	return s.cfg.MaxInflight
}

// Online reports whether a provider is configured
func (s *Service) Online() bool {
	return s.gen != nil
}

// FetchIntroLore returns the idle-screen lore
func (s *Service) FetchIntroLore(ctx context.Context) string {
	ctx, span := s.tracer.Start(ctx, "narrative.lore")
	defer span.End()

	text, err := s.generate(ctx, Request{Prompt: lorePrompt})
	return s.resolve(span, text, err, LoreEmptyText, LoreErrorText)
}

// FetchReactionMessage returns a short line reacting to the collected count
func (s *Service) FetchReactionMessage(ctx context.Context, collected int) string {
	ctx, span := s.tracer.Start(ctx, "narrative.reaction",
		trace.WithAttributes(attribute.Int("narrative.collected", collected)))
	defer span.End()

	text, err := s.generate(ctx, Request{
		Prompt:      reactionPrompt(collected, constant.MaxPickups),
		Temperature: reactionTemperature,
		TopP:        reactionTopP,
	})
	return s.resolve(span, text, err, ReactionEmptyText, ReactionErrorText)
}

func (s *Service) generate(ctx context.Context, req Request) (string, error) {
	if s.gen == nil {
		return "", ErrNoProvider
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	return s.gen.Generate(ctx, req)
}

// resolve maps a generation result to display text, recording failures on the span
func (s *Service) resolve(span trace.Span, text string, err error, empty, failed string) string {
	switch {
	case err == nil && text != "":
		return text
	case err == nil, errors.Is(err, ErrEmptyResponse):
		s.statFallbacks.Add(1)
		span.SetAttributes(attribute.String("narrative.fallback", "empty"))
		return empty
	default:
		s.statFallbacks.Add(1)
		span.SetAttributes(attribute.String("narrative.fallback", "error"))
		if !errors.Is(err, ErrNoProvider) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generation failed")
			log.Printf("narrative request failed: %v", err)
		}
		return failed
	}
}
