package terminal

import (
	"testing"
	"time"

	"github.com/lixenwraith/tubby-terrors/input"
)

func TestHoldFirstPressWindow(t *testing.T) {
	h := NewHoldTracker()
	t0 := time.Unix(1000, 0)

	if !h.Press(input.KeyW, t0) {
		t.Fatal("Expected first press to start a hold")
	}
	if got := h.Expire(t0.Add(549 * time.Millisecond)); len(got) != 0 {
		t.Errorf("Expected key still held at 549ms, got %v", got)
	}
	got := h.Expire(t0.Add(550 * time.Millisecond))
	if len(got) != 1 || got[0] != input.KeyW {
		t.Errorf("Expected KeyW released at 550ms, got %v", got)
	}
	if h.Held(input.KeyW) {
		t.Error("Expected KeyW no longer held")
	}
}

func TestHoldRepeatsExtend(t *testing.T) {
	h := NewHoldTracker()
	t0 := time.Unix(1000, 0)

	h.Press(input.KeyA, t0)
	if h.Press(input.KeyA, t0.Add(500*time.Millisecond)) {
		t.Error("Expected repeat not to start a new hold")
	}
	// Repeat window replaces the longer initial one
	if got := h.Expire(t0.Add(619 * time.Millisecond)); len(got) != 0 {
		t.Errorf("Expected held before repeat deadline, got %v", got)
	}
	if got := h.Expire(t0.Add(620 * time.Millisecond)); len(got) != 1 {
		t.Errorf("Expected release at repeat deadline, got %v", got)
	}
}

func TestHoldReleaseAllSorted(t *testing.T) {
	h := NewHoldTracker()
	now := time.Unix(1000, 0)
	h.Press(input.KeyW, now)
	h.Press(input.KeyD, now)
	h.Press(input.KeyShiftLeft, now)

	got := h.ReleaseAll()
	want := []input.KeyCode{input.KeyD, input.KeyW, input.KeyShiftLeft}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
	if h.Release(input.KeyW) {
		t.Error("Expected nothing left to release")
	}
}
