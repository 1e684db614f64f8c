package input

import (
	"time"

	"github.com/lixenwraith/vi-pong/engine"
)

// DefaultHoldWindow covers the gap between the first key press and terminal auto-repeat
const DefaultHoldWindow = 120 * time.Millisecond

// HoldTracker approximates a held key from press and repeat events
// Terminals never report key release, so a direction stays active for the
// hold window after its most recent press
type HoldTracker struct {
	clock  engine.Clock
	window time.Duration

	dir       engine.Direction
	pressedAt time.Time
}

// NewHoldTracker creates a tracker; a non-positive window uses DefaultHoldWindow
func NewHoldTracker(clock engine.Clock, window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{clock: clock, window: window}
}

// Press records a movement intent; the newest direction wins
func (h *HoldTracker) Press(intent IntentType) {
	switch intent {
	case IntentUp:
		h.dir = engine.DirUp
	case IntentDown:
		h.dir = engine.DirDown
	default:
		return
	}
	h.pressedAt = h.clock.Now()
}

// Direction returns the held direction, or DirNone once the window expired
func (h *HoldTracker) Direction() engine.Direction {
	if h.dir == engine.DirNone {
		return engine.DirNone
	}
	if h.clock.Now().Sub(h.pressedAt) > h.window {
		h.dir = engine.DirNone
	}
	return h.dir
}

// Release drops any held direction
func (h *HoldTracker) Release() {
	h.dir = engine.DirNone
}
