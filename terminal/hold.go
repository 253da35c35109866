package terminal

import (
	"sort"
	"time"

	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/input"
)

// HoldTracker synthesizes key releases for terminals that only report presses
// A key stays down while repeats keep arriving; silence past the deadline releases it
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	held    map[input.KeyCode]time.Time
}

// NewHoldTracker creates a tracker with the default hold windows
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		initial: constant.KeyHoldInitial,
		repeat:  constant.KeyHoldRepeat,
		held:    make(map[input.KeyCode]time.Time),
	}
}

// Press records a press at now, returning true on the first press of a hold
func (h *HoldTracker) Press(code input.KeyCode, now time.Time) bool {
	if _, ok := h.held[code]; ok {
		h.held[code] = now.Add(h.repeat)
		return false
	}
	h.held[code] = now.Add(h.initial)
	return true
}

// Held reports whether code is currently down
func (h *HoldTracker) Held(code input.KeyCode) bool {
	_, ok := h.held[code]
	return ok
}

// Expire releases every key whose deadline passed, in code order
func (h *HoldTracker) Expire(now time.Time) []input.KeyCode {
	return h.release(func(deadline time.Time) bool { return !now.Before(deadline) })
}

// ReleaseAll drops every held key
func (h *HoldTracker) ReleaseAll() []input.KeyCode {
	return h.release(func(time.Time) bool { return true })
}

func (h *HoldTracker) release(due func(time.Time) bool) []input.KeyCode {
	var out []input.KeyCode
	for code, deadline := range h.held {
		if due(deadline) {
			out = append(out, code)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	for _, code := range out {
		delete(h.held, code)
	}
	return out
}


// Release drops code immediately, returning true if it was held
func (h *HoldTracker) Release(code input.KeyCode) bool {
	if _, ok := h.held[code]; !ok {
		return false
	}
	delete(h.held, code)
	return true
}
