package engine

import "github.com/lixenwraith/vi-pong/vmath"

// Snapshot is the read-only view handed to the renderer between ticks
type Snapshot struct {
	MatchID string
	Tick    uint64
	State   string

	CourtWidth  int
	CourtHeight int

	Player vmath.Rect
	AI     vmath.Rect
	Ball   vmath.Rect

	PlayerScore int
	AIScore     int
	TargetScore int
	GameOver    bool
	Winner      string
}

// Snapshot copies the render-relevant state
func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		MatchID:     m.id,
		Tick:        m.tick,
		State:       m.fsm.ActiveName(),
		CourtWidth:  CourtWidth,
		CourtHeight: CourtHeight,
		Player:      m.player.Rect(),
		AI:          m.ai.Rect(),
		Ball:        m.ball.Rect(),
		PlayerScore: m.playerScore,
		AIScore:     m.aiScore,
		TargetScore: m.targetScore,
		GameOver:    m.gameOver,
		Winner:      m.winner,
	}
}
