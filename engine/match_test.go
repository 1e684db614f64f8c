package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/lixenwraith/vi-pong/event"
	"github.com/lixenwraith/vi-pong/vmath"
)

// newTestMatch builds a match with a scripted rng, an event recorder and sequential ids
func newTestMatch(t *testing.T, opts ...Option) (*Match, *event.Recorder) {
	t.Helper()
	rec := &event.Recorder{}
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("match-%d", n)
	}
	opts = append([]Option{WithSink(rec), WithIDGenerator(ids)}, opts...)
	return NewMatch(vmath.NewSeqRand(1), opts...), rec
}

// placeBall puts the ball at a position with a velocity, away from both paddles by default
func placeBall(m *Match, x, y, vx, vy float64) {
	m.ball.X, m.ball.Y = x, y
	m.ball.VX, m.ball.VY = vx, vy
}

// finishMatch drives the player to the target by sending the ball off the right edge
func finishMatch(t *testing.T, m *Match) {
	t.Helper()
	m.playerScore = m.targetScore - 1
	placeBall(m, 795, 100, 5, 0)
	m.AdvanceTick(DirNone)
	require.True(t, m.GameOver())
}

func TestNewMatchDefaults(t *testing.T) {
	m, _ := newTestMatch(t)

	assert.Equal(t, "match-1", m.ID())
	assert.Equal(t, 3, m.TargetScore(), "default best of 5 needs 3 points")
	assert.Equal(t, StatePlaying, m.State())
	assert.False(t, m.GameOver())
	assert.Equal(t, 0, m.PlayerScore())
	assert.Equal(t, 0, m.AIScore())

	s := m.Snapshot()
	assert.Equal(t, 10, s.Player.X)
	assert.Equal(t, 250, s.Player.Y)
	assert.Equal(t, 780, s.AI.X)
	assert.Equal(t, 400, s.Ball.X)
	assert.Equal(t, 300, s.Ball.Y)
	assert.Equal(t, "playing", s.State)
}

func TestMatchWithTargetScore(t *testing.T) {
	m, _ := newTestMatch(t, WithTargetScore(4))
	assert.Equal(t, 4, m.TargetScore())
}

func TestAdvanceTickMovesPlayer(t *testing.T) {
	m, _ := newTestMatch(t)
	placeBall(m, 400, 300, 5, 0)

	m.AdvanceTick(DirUp)
	assert.Equal(t, 250-PaddleSpeed, m.player.Y)

	m.AdvanceTick(DirDown)
	m.AdvanceTick(DirDown)
	assert.Equal(t, 250+PaddleSpeed, m.player.Y)
	assert.Equal(t, uint64(3), m.Tick())
}

func TestAdvanceTickWallBounceEvent(t *testing.T) {
	m, rec := newTestMatch(t)
	placeBall(m, 400, 1, 5, -3)

	m.AdvanceTick(DirNone)

	assert.Equal(t, 0.0, m.ball.Y)
	assert.Equal(t, 3.0, m.ball.VY)
	assert.Equal(t, 1, rec.Count(event.EventWallBounce))
}

func TestAdvanceTickPaddleHitEvent(t *testing.T) {
	m, rec := newTestMatch(t)
	placeBall(m, 22, 300, -5, 0)

	m.AdvanceTick(DirNone)

	assert.Equal(t, 20.0, m.ball.X)
	assert.Equal(t, 5.0, m.ball.VX)
	require.Equal(t, 1, rec.Count(event.EventPaddleHit))
	assert.Equal(t, event.SidePlayer, rec.Events[0].Side)
	assert.Equal(t, "match-1", rec.Events[0].MatchID)
}

func TestScoringLeftEdge(t *testing.T) {
	m, rec := newTestMatch(t)
	placeBall(m, 2, 50, -5, 0)

	m.AdvanceTick(DirNone)

	assert.Equal(t, 1, m.AIScore())
	assert.Equal(t, 0, m.PlayerScore())
	assert.Equal(t, 1, rec.Count(event.EventScore))
	assert.Equal(t, event.SideAI, rec.Events[0].Side)
	assert.Equal(t, float64(CourtWidth/2), m.ball.X, "ball is reset to spawn")
	assert.Equal(t, float64(CourtHeight/2), m.ball.Y)
	assert.Equal(t, BallSpeedX, m.ball.VX)
}

func TestScoringRightEdge(t *testing.T) {
	m, rec := newTestMatch(t)
	placeBall(m, 795, 50, 5, 0)

	m.AdvanceTick(DirNone)

	assert.Equal(t, 1, m.PlayerScore())
	assert.Equal(t, 0, m.AIScore())
	assert.Equal(t, 1, rec.Count(event.EventScore))
	assert.Equal(t, event.SidePlayer, rec.Events[0].Side)
}

func TestScoringOncePerTick(t *testing.T) {
	m, rec := newTestMatch(t)
	placeBall(m, 2, 50, -5, 0)

	m.AdvanceTick(DirNone)
	m.AdvanceTick(DirNone)

	assert.Equal(t, 1, m.AIScore(), "reset ball must not be counted again")
	assert.Equal(t, 1, rec.Count(event.EventScore))
}

func TestMatchOverPlayerWins(t *testing.T) {
	m, rec := newTestMatch(t, WithTargetScore(2))
	m.playerScore = 1
	placeBall(m, 795, 100, 5, 0)

	m.AdvanceTick(DirNone)

	assert.Equal(t, 2, m.PlayerScore())
	assert.True(t, m.GameOver())
	assert.Equal(t, "Player Wins!", m.Winner())
	assert.Equal(t, StateReplaySelect, m.State())
	assert.True(t, m.AwaitingReplay())
	require.Equal(t, 1, rec.Count(event.EventMatchOver))
	last := rec.Events[len(rec.Events)-1]
	assert.Equal(t, event.EventMatchOver, last.Type)
	assert.Equal(t, event.SidePlayer, last.Side)
	assert.Equal(t, 2, last.Target)
}

func TestMatchOverAIWins(t *testing.T) {
	m, _ := newTestMatch(t, WithTargetScore(2))
	m.aiScore = 1
	placeBall(m, 2, 50, -5, 0)

	m.AdvanceTick(DirNone)

	assert.True(t, m.GameOver())
	assert.Equal(t, "AI Wins!", m.Winner())
	assert.Equal(t, 2, m.AIScore())
}

func TestMatchNotOverBelowTarget(t *testing.T) {
	m, rec := newTestMatch(t, WithTargetScore(3))
	m.playerScore = 1
	placeBall(m, 795, 100, 5, 0)

	m.AdvanceTick(DirNone)

	assert.Equal(t, 2, m.PlayerScore())
	assert.False(t, m.GameOver())
	assert.Equal(t, "", m.Winner())
	assert.Zero(t, rec.Count(event.EventMatchOver))
}

func TestAdvanceTickFrozenWhileOver(t *testing.T) {
	m, rec := newTestMatch(t)
	finishMatch(t, m)

	before := m.Snapshot()
	events := len(rec.Events)
	for i := 0; i < 10; i++ {
		m.AdvanceTick(DirUp)
	}

	assert.Equal(t, before, m.Snapshot(), "nothing advances in the replay state")
	assert.Len(t, rec.Events, events)
}

func TestSelectReplay(t *testing.T) {
	cases := []struct {
		choice ReplayChoice
		target int
	}{
		{BestOf3, 2},
		{BestOf5, 3},
		{BestOf7, 4},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("best of %d", tc.choice), func(t *testing.T) {
			m, rec := newTestMatch(t)
			finishMatch(t, m)
			m.aiScore = 1
			placeBall(m, 123, 45, 1, 1)

			err := m.SelectReplay(tc.choice)

			require.NoError(t, err)
			assert.Equal(t, tc.target, m.TargetScore())
			assert.Equal(t, 0, m.PlayerScore())
			assert.Equal(t, 0, m.AIScore())
			assert.False(t, m.GameOver())
			assert.Equal(t, "", m.Winner())
			assert.Equal(t, StatePlaying, m.State())
			assert.Equal(t, float64(CourtWidth/2), m.ball.X)
			assert.Equal(t, float64(CourtHeight/2), m.ball.Y)
			assert.Equal(t, BallSpeedX, m.ball.VX)
			assert.Equal(t, BallSpeedY, m.ball.VY)
			assert.Equal(t, "match-2", m.ID(), "each replay gets a new id")

			last := rec.Events[len(rec.Events)-1]
			assert.Equal(t, event.EventReplaySelected, last.Type)
			assert.Equal(t, tc.target, last.Target)
			assert.Equal(t, "match-2", last.MatchID)
		})
	}
}

func TestSelectReplayResumesPlay(t *testing.T) {
	m, _ := newTestMatch(t)
	finishMatch(t, m)
	require.NoError(t, m.SelectReplay(BestOf3))

	tick := m.Tick()
	m.AdvanceTick(DirNone)
	assert.Equal(t, tick+1, m.Tick())
}

func TestSelectReplayErrors(t *testing.T) {
	t.Run("not awaiting", func(t *testing.T) {
		m, _ := newTestMatch(t)
		err := m.SelectReplay(BestOf3)
		assert.ErrorIs(t, err, ErrNotAwaitingReplay)
		assert.Equal(t, 3, m.TargetScore())
	})

	t.Run("invalid choice", func(t *testing.T) {
		m, _ := newTestMatch(t)
		finishMatch(t, m)
		score := m.PlayerScore()

		err := m.SelectReplay(ReplayChoice(4))

		assert.ErrorIs(t, err, ErrInvalidChoice)
		assert.True(t, m.GameOver())
		assert.Equal(t, score, m.PlayerScore())
		assert.Equal(t, StateReplaySelect, m.State())
	})
}

func TestReplayChoiceTargetScore(t *testing.T) {
	for choice, want := range map[ReplayChoice]int{BestOf3: 2, BestOf5: 3, BestOf7: 4} {
		got, err := choice.TargetScore()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, bad := range []ReplayChoice{0, 1, 2, 9, -3} {
		_, err := bad.TargetScore()
		assert.ErrorIs(t, err, ErrInvalidChoice)
	}
}

func TestReplayOptions(t *testing.T) {
	menu := ReplayOptions()
	require.Len(t, menu, 4)
	assert.Equal(t, "Best of 3 (Press 3)", menu[0])
	assert.Equal(t, "Exit (ESC)", menu[3])
}

func TestMatchWithoutSink(t *testing.T) {
	m := NewMatch(vmath.NewSeqRand(0), WithTargetScore(2))
	m.playerScore = 1
	placeBall(m, 795, 100, 5, 0)

	assert.NotPanics(t, func() { m.AdvanceTick(DirNone) })
	assert.True(t, m.GameOver())
	assert.NotEmpty(t, m.ID())
}

// TestMatchInvariants plays long random sessions and checks every tick
func TestMatchInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := NewMatch(rng)
	dirs := []Direction{DirNone, DirUp, DirDown}
	choices := []ReplayChoice{BestOf3, BestOf5, BestOf7}

	matches := 0
	for i := 0; i < 50_000; i++ {
		if m.AwaitingReplay() {
			matches++
			require.NoError(t, m.SelectReplay(choices[rng.Intn(len(choices))]))
		}

		prevPlayer, prevAI := m.PlayerScore(), m.AIScore()
		m.AdvanceTick(dirs[rng.Intn(len(dirs))])

		for _, p := range []*Paddle{m.player, m.ai} {
			require.GreaterOrEqual(t, p.Y, 0.0)
			require.LessOrEqual(t, p.Y, float64(CourtHeight-PaddleHeight))
		}
		require.GreaterOrEqual(t, m.ball.Y, 0.0)
		require.LessOrEqual(t, m.ball.Y, float64(CourtHeight-BallSize))
		require.LessOrEqual(t, m.ball.VY, MaxBallSpeedY)
		require.GreaterOrEqual(t, m.ball.VY, -MaxBallSpeedY)

		gained := (m.PlayerScore() - prevPlayer) + (m.AIScore() - prevAI)
		require.LessOrEqual(t, gained, 1, "at most one point per tick")
		require.GreaterOrEqual(t, gained, 0, "scores never decrease within a match")

		reached := 0
		if m.PlayerScore() >= m.TargetScore() {
			reached++
		}
		if m.AIScore() >= m.TargetScore() {
			reached++
		}
		require.Equal(t, m.GameOver(), reached == 1)
	}
	assert.Positive(t, matches, "the AI should lose or win at least once")
}
