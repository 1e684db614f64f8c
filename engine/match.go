package engine

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/vi-pong/engine/fsm"
	"github.com/lixenwraith/vi-pong/event"
	"github.com/lixenwraith/vi-pong/vmath"
)

// Match states
const (
	StatePlaying fsm.StateID = iota + 1
	StateReplaySelect
)

// Match owns both paddles and the ball and advances them one tick at a time
// Not safe for concurrent use; the host drives it from a single goroutine
type Match struct {
	id    string
	newID func() string

	player *Paddle
	ai     *Paddle
	ball   *Ball

	rng  vmath.Rand
	sink event.Sink

	playerScore int
	aiScore     int
	targetScore int
	gameOver    bool
	winner      string
	tick        uint64

	fsm *fsm.Machine[*Match]
}

// Option configures a Match
type Option func(*Match)

// WithTargetScore sets the points required to win the first match
func WithTargetScore(target int) Option {
	return func(m *Match) {
		if target > 0 {
			m.targetScore = target
		}
	}
}

// WithSink sets the event receiver; nil keeps events dropped
func WithSink(sink event.Sink) Option {
	return func(m *Match) {
		m.sink = sink
	}
}

// WithIDGenerator replaces the uuid based match id source
func WithIDGenerator(fn func() string) Option {
	return func(m *Match) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewMatch creates a match in the playing state with a served ball
func NewMatch(rng vmath.Rand, opts ...Option) *Match {
	defaultTarget, _ := ReplayChoice(DefaultBestOf).TargetScore()
	m := &Match{
		newID:       uuid.NewString,
		rng:         rng,
		targetScore: defaultTarget,
	}
	for _, opt := range opts {
		opt(m)
	}

	paddleY := float64(CourtHeight/2 - PaddleHeight/2)
	m.player = NewPaddle(PaddleInset, paddleY)
	m.ai = NewPaddle(CourtWidth-PaddleInset-PaddleWidth, paddleY)
	m.ball = NewBall(CourtWidth/2, CourtHeight/2, CourtWidth, CourtHeight, rng)
	m.id = m.newID()

	m.fsm = newMatchMachine()
	// Only fails on a malformed graph, which newMatchMachine never builds
	if err := m.fsm.Init(m, StatePlaying); err != nil {
		panic(err)
	}
	return m
}

func newMatchMachine() *fsm.Machine[*Match] {
	machine := fsm.NewMachine[*Match]()
	machine.AddState(StatePlaying, "playing")
	machine.AddState(StateReplaySelect, "replay_select")

	machine.AddTransition(StatePlaying, fsm.Transition[*Match]{
		TargetID: StateReplaySelect,
		Event:    event.EventMatchOver,
		Guard:    func(m *Match) bool { return m.gameOver },
	})
	machine.AddTransition(StateReplaySelect, fsm.Transition[*Match]{
		TargetID: StatePlaying,
		Event:    event.EventReplaySelected,
	})
	machine.OnExit(StateReplaySelect, (*Match).resetForReplay)
	return machine
}

// AdvanceTick runs one simulation step; does nothing while the match is over
func (m *Match) AdvanceTick(dir Direction) {
	if m.gameOver {
		return
	}
	m.tick++
	m.fsm.Tick()

	m.player.MoveDir(dir, CourtHeight)

	if m.ball.Move() {
		m.emit(event.EventWallBounce, event.SideNone)
	}

	switch m.ball.CheckCollision(m.player, m.ai, m.rng) {
	case CollisionPlayer:
		m.emit(event.EventPaddleHit, event.SidePlayer)
	case CollisionAI:
		m.emit(event.EventPaddleHit, event.SideAI)
	}

	switch {
	case m.ball.X < 0:
		m.aiScore++
		m.ball.Reset(m.rng)
		m.emit(event.EventScore, event.SideAI)
	case m.ball.X+float64(m.ball.Width) > CourtWidth:
		m.playerScore++
		m.ball.Reset(m.rng)
		m.emit(event.EventScore, event.SidePlayer)
	}

	m.ai.AutoTrack(m.ball, CourtHeight)

	m.checkMatchOver()
}

// checkMatchOver ends the match when a side reaches the target; player is checked first
func (m *Match) checkMatchOver() {
	var side event.Side
	switch {
	case m.playerScore >= m.targetScore:
		m.winner = WinnerPlayer
		side = event.SidePlayer
	case m.aiScore >= m.targetScore:
		m.winner = WinnerAI
		side = event.SideAI
	default:
		return
	}
	m.gameOver = true
	m.emit(event.EventMatchOver, side)
	m.fsm.HandleEvent(m, event.EventMatchOver)
}

// SelectReplay configures and starts the next match from the replay menu
// Returns ErrNotAwaitingReplay outside the replay state and ErrInvalidChoice
// for an unknown best-of value; neither case mutates the match
func (m *Match) SelectReplay(choice ReplayChoice) error {
	if m.fsm.Active() != StateReplaySelect {
		return ErrNotAwaitingReplay
	}
	target, err := choice.TargetScore()
	if err != nil {
		return err
	}

	m.targetScore = target
	m.fsm.HandleEvent(m, event.EventReplaySelected)
	m.emit(event.EventReplaySelected, event.SideNone)
	return nil
}

// resetForReplay runs on leaving the replay state
func (m *Match) resetForReplay() {
	m.playerScore = 0
	m.aiScore = 0
	m.ball.Reset(m.rng)
	m.gameOver = false
	m.winner = ""
	m.id = m.newID()
}

func (m *Match) emit(t event.EventType, side event.Side) {
	if m.sink == nil {
		return
	}
	m.sink.Emit(event.Event{
		Type:    t,
		Side:    side,
		MatchID: m.id,
		Tick:    m.tick,
		Target:  m.targetScore,
	})
}

// ID returns the current match id; it changes on every replay
func (m *Match) ID() string { return m.id }

// State returns the active state ID
func (m *Match) State() fsm.StateID { return m.fsm.Active() }

// AwaitingReplay reports whether the replay menu is active
func (m *Match) AwaitingReplay() bool { return m.fsm.Active() == StateReplaySelect }

// Score, target, outcome and tick counter accessors
func (m *Match) PlayerScore() int { return m.playerScore }
func (m *Match) AIScore() int     { return m.aiScore }
func (m *Match) TargetScore() int { return m.targetScore }
func (m *Match) GameOver() bool   { return m.gameOver }
func (m *Match) Winner() string   { return m.winner }
func (m *Match) Tick() uint64     { return m.tick }
