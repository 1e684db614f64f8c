package status

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/lixenwraith/vi-pong/event"
)

// Registry keys
const (
	KeyTicks       = "ticks"
	KeyPaddleHits  = "paddle_hits"
	KeyWallBounces = "wall_bounces"
	KeyPoints      = "points"
	KeyMatches     = "matches"
	KeyRally       = "rally"
	KeyMaxRally    = "max_rally"
	KeyRallies     = "rallies"
	KeyAvgRally    = "avg_rally"
	KeyMatchID     = "match_id"
	KeyWinner      = "winner"
	KeyMuted       = "muted"
)

// Tracker turns simulation events into registry counters
// A rally is the number of paddle hits between two points
type Tracker struct {
	reg *Registry

	ticks       *atomic.Int64
	paddleHits  *atomic.Int64
	wallBounces *atomic.Int64
	points      *atomic.Int64
	matches     *atomic.Int64
	rally       *atomic.Int64
	maxRally    *atomic.Int64
	rallies     *atomic.Int64
	rallyHits   int64 // Paddle hits in completed rallies, loop goroutine only
	avgRally    *AtomicFloat
	matchID     *AtomicString
	winner      *AtomicString
	muted       *atomic.Bool
}

// NewTracker registers all counters in reg and caches their pointers
func NewTracker(reg *Registry) *Tracker {
	return &Tracker{
		reg:         reg,
		ticks:       reg.Ints.Get(KeyTicks),
		paddleHits:  reg.Ints.Get(KeyPaddleHits),
		wallBounces: reg.Ints.Get(KeyWallBounces),
		points:      reg.Ints.Get(KeyPoints),
		matches:     reg.Ints.Get(KeyMatches),
		rally:       reg.Ints.Get(KeyRally),
		maxRally:    reg.Ints.Get(KeyMaxRally),
		rallies:     reg.Ints.Get(KeyRallies),
		avgRally:    reg.Floats.Get(KeyAvgRally),
		matchID:     reg.Strings.Get(KeyMatchID),
		winner:      reg.Strings.Get(KeyWinner),
		muted:       reg.Bools.Get(KeyMuted),
	}
}

// Registry returns the backing registry
func (t *Tracker) Registry() *Registry { return t.reg }

// Tick counts one simulation step
func (t *Tracker) Tick() { t.ticks.Add(1) }

// SetMatchID records the current match id before any event arrives
func (t *Tracker) SetMatchID(id string) { t.matchID.Store(id) }

// SetMuted mirrors the audio mute state for the HUD
func (t *Tracker) SetMuted(muted bool) { t.muted.Store(muted) }

func (t *Tracker) Emit(ev event.Event) {
	if ev.MatchID != "" {
		t.matchID.Store(ev.MatchID)
	}

	switch ev.Type {
	case event.EventPaddleHit:
		t.paddleHits.Add(1)
		if r := t.rally.Add(1); r > t.maxRally.Load() {
			t.maxRally.Store(r)
		}
	case event.EventWallBounce:
		t.wallBounces.Add(1)
	case event.EventScore:
		t.points.Add(1)
		t.endRally()
	case event.EventMatchOver:
		t.matches.Add(1)
		t.winner.Store(ev.Side.String())
	case event.EventReplaySelected:
		t.winner.Store("")
		t.rally.Store(0)
	}
}

func (t *Tracker) endRally() {
	n := t.rallies.Add(1)
	t.rallyHits += t.rally.Swap(0)
	t.avgRally.Set(float64(t.rallyHits) / float64(n))
}

// StatusLine formats the HUD row
func (t *Tracker) StatusLine() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "hits %d  walls %d  rally %d  max %d  avg %.1f  matches %d",
		t.paddleHits.Load(),
		t.wallBounces.Load(),
		t.rally.Load(),
		t.maxRally.Load(),
		t.avgRally.Get(),
		t.matches.Load(),
	)
	if t.muted.Load() {
		sb.WriteString("  [muted]")
	}
	sb.WriteString("  q:quit m:mute")
	return sb.String()
}
