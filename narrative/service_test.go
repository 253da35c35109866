package narrative

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/tubby-terrors/status"
)

type fakeGenerator struct {
	mu   sync.Mutex
	text string
	err  error
	wait bool // Block until the context ends
	reqs []Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func newTestService(gen Generator) (*Service, *status.Registry) {
	reg := status.NewRegistry()
	cfg := DefaultConfig()
	cfg.Timeout = 50 * time.Millisecond
	return NewWithGenerator(gen, cfg, reg), reg
}

func TestReactionSuccess(t *testing.T) {
	gen := &fakeGenerator{text: "It knows your name."}
	s, reg := newTestService(gen)

	if got := s.FetchReactionMessage(context.Background(), 3); got != "It knows your name." {
		t.Errorf("Expected generated text, got %q", got)
	}
	if len(gen.reqs) != 1 {
		t.Fatalf("Expected one request, got %d", len(gen.reqs))
	}
	req := gen.reqs[0]
	if !strings.Contains(req.Prompt, "found their 3 custard out of 10") {
		t.Errorf("Expected count in prompt, got %q", req.Prompt)
	}
	if req.Temperature != 0.9 || req.TopP != 0.8 {
		t.Errorf("Expected sampling 0.9/0.8, got %f/%f", req.Temperature, req.TopP)
	}
	if n := reg.Ints.Get(status.KeyNarrativeFallbacks).Load(); n != 0 {
		t.Errorf("Expected no fallbacks, got %d", n)
	}
}

func TestReactionFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want string
	}{
		{"error", &fakeGenerator{err: errors.New("503")}, ReactionErrorText},
		{"empty sentinel", &fakeGenerator{err: ErrEmptyResponse}, ReactionEmptyText},
		{"empty text", &fakeGenerator{}, ReactionEmptyText},
		{"timeout", &fakeGenerator{wait: true}, ReactionErrorText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, reg := newTestService(tt.gen)
			if got := s.FetchReactionMessage(context.Background(), 1); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if n := reg.Ints.Get(status.KeyNarrativeFallbacks).Load(); n != 1 {
				t.Errorf("Expected one fallback, got %d", n)
			}
		})
	}
}

func TestLoreFallbacks(t *testing.T) {
	s, _ := newTestService(&fakeGenerator{err: errors.New("down")})
	if got := s.FetchIntroLore(context.Background()); got != LoreErrorText {
		t.Errorf("Expected %q, got %q", LoreErrorText, got)
	}

	s, _ = newTestService(&fakeGenerator{})
	if got := s.FetchIntroLore(context.Background()); got != LoreEmptyText {
		t.Errorf("Expected %q, got %q", LoreEmptyText, got)
	}
}

func TestLoreUsesProviderDefaults(t *testing.T) {
	gen := &fakeGenerator{text: "The fog is hungry."}
	s, _ := newTestService(gen)

	if got := s.FetchIntroLore(context.Background()); got != "The fog is hungry." {
		t.Errorf("Expected generated lore, got %q", got)
	}
	if req := gen.reqs[0]; req.Temperature != 0 || req.TopP != 0 {
		t.Errorf("Expected default sampling for lore, got %f/%f", req.Temperature, req.TopP)
	}
}

func TestOfflineService(t *testing.T) {
	s := NewService(nil)
	if err := s.Init(DefaultConfig()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if s.Online() {
		t.Error("Expected offline without an API key")
	}
	if got := s.FetchReactionMessage(context.Background(), 5); got != ReactionErrorText {
		t.Errorf("Expected %q offline, got %q", ReactionErrorText, got)
	}
	if got := s.FetchIntroLore(context.Background()); got != LoreErrorText {
		t.Errorf("Expected %q offline, got %q", LoreErrorText, got)
	}
}

func TestCancelledContextFallsBack(t *testing.T) {
	s, _ := newTestService(&fakeGenerator{wait: true})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := s.FetchReactionMessage(ctx, 2); got != ReactionErrorText {
		t.Errorf("Expected %q on cancel, got %q", ReactionErrorText, got)
	}
}
