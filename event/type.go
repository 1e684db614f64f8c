package event

import "fmt"

// EventType identifies a simulation occurrence the host may react to
type EventType uint8

const (
	EventNone EventType = iota
	EventPaddleHit      // Ball bounced off a paddle
	EventWallBounce     // Ball bounced off top or bottom wall
	EventScore          // A side scored a point
	EventMatchOver      // A side reached the target score
	EventReplaySelected // A new match was configured from the replay menu
)

var eventNames = [...]string{
	EventNone:           "none",
	EventPaddleHit:      "paddle_hit",
	EventWallBounce:     "wall_bounce",
	EventScore:          "score",
	EventMatchOver:      "match_over",
	EventReplaySelected: "replay_selected",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// Side names the paddle an event refers to
type Side uint8

const (
	SideNone Side = iota
	SidePlayer
	SideAI
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideAI:
		return "ai"
	}
	return "none"
}

// Event is a value type; sinks must not retain pointers into the simulation
type Event struct {
	Type    EventType
	Side    Side   // Hit paddle, scoring side or winner
	MatchID string // Match the event belongs to
	Tick    uint64 // Tick counter of the emitting match
	Target  int    // Target score, set for MatchOver and ReplaySelected
}
