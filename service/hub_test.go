package service

import (
	"errors"
	"reflect"
	"testing"
)

// recorder logs lifecycle calls into a shared journal
type recorder struct {
	name    string
	deps    []string
	journal *[]string
	initErr error
	gotArgs []any
}

func (r *recorder) Name() string           { return r.name }
func (r *recorder) Dependencies() []string { return r.deps }

func (r *recorder) Init(args ...any) error {
	r.gotArgs = args
	*r.journal = append(*r.journal, "init:"+r.name)
	return r.initErr
}

func (r *recorder) Start() error {
	*r.journal = append(*r.journal, "start:"+r.name)
	return nil
}

func (r *recorder) Stop() error {
	*r.journal = append(*r.journal, "stop:"+r.name)
	return nil
}

func TestHubLifecycleOrder(t *testing.T) {
	var journal []string
	h := NewHub()
	game := &recorder{name: "game", deps: []string{"audio", "status"}, journal: &journal}
	h.Register(game)
	h.Register(&recorder{name: "audio", deps: []string{"status"}, journal: &journal})
	h.Register(&recorder{name: "status", journal: &journal})

	if err := h.InitAll(map[string][]any{"game": {42}}); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	h.StopAll()

	want := []string{
		"init:status", "init:audio", "init:game",
		"start:status", "start:audio", "start:game",
		"stop:game", "stop:audio", "stop:status",
	}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("Expected %v, got %v", want, journal)
	}
	if len(game.gotArgs) != 1 || game.gotArgs[0] != 42 {
		t.Errorf("Expected game args [42], got %v", game.gotArgs)
	}
}

func TestHubCircularDependency(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", deps: []string{"b"}, journal: &journal})
	h.Register(&recorder{name: "b", deps: []string{"a"}, journal: &journal})

	if err := h.InitAll(nil); !errors.Is(err, ErrCircularDependency) {
		t.Errorf("Expected ErrCircularDependency, got %v", err)
	}
}

func TestHubMissingDependency(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", deps: []string{"ghost"}, journal: &journal})

	if err := h.InitAll(nil); err == nil {
		t.Error("Expected error for unregistered dependency")
	}
}

func TestHubInitRollback(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "a", journal: &journal})
	h.Register(&recorder{name: "b", deps: []string{"a"}, journal: &journal, initErr: errors.New("boom")})

	if err := h.InitAll(nil); err == nil {
		t.Fatal("Expected init failure")
	}
	want := []string{"init:a", "init:b", "stop:a"}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("Expected %v, got %v", want, journal)
	}
}

func TestHubDuplicateName(t *testing.T) {
	var journal []string
	h := NewHub()
	if err := h.Register(&recorder{name: "a", journal: &journal}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := h.Register(&recorder{name: "a", journal: &journal}); err == nil {
		t.Error("Expected duplicate registration error")
	}
}

func TestHubKeepsRegistrationOrder(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "status", journal: &journal})
	h.Register(&recorder{name: "terminal", journal: &journal})
	h.Register(&recorder{name: "audio", deps: []string{"status"}, journal: &journal})
	h.Register(&recorder{name: "network", deps: []string{"status"}, journal: &journal})

	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	want := []string{"init:status", "init:terminal", "init:audio", "init:network"}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("Expected %v, got %v", want, journal)
	}
}

// failingStart refuses to start
type failingStart struct{ recorder }

func (f *failingStart) Start() error {
	*f.journal = append(*f.journal, "start:"+f.name)
	return errors.New("port in use")
}

func TestHubStartRollback(t *testing.T) {
	var journal []string
	h := NewHub()
	h.Register(&recorder{name: "status", journal: &journal})
	h.Register(&recorder{name: "audio", deps: []string{"status"}, journal: &journal})
	h.Register(&failingStart{recorder{name: "network", deps: []string{"status"}, journal: &journal}})

	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start failure")
	}
	h.StopAll()

	want := []string{
		"init:status", "init:audio", "init:network",
		"start:status", "start:audio", "start:network",
		"stop:audio", "stop:status",
	}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("Expected %v, got %v", want, journal)
	}
}
