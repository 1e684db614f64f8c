package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-pong/config"
	"github.com/lixenwraith/vi-pong/engine"
	"github.com/lixenwraith/vi-pong/event"
	"github.com/lixenwraith/vi-pong/logger"
	"github.com/lixenwraith/vi-pong/metrics"
	"github.com/lixenwraith/vi-pong/status"
	"github.com/lixenwraith/vi-pong/vmath"
)

// harness runs an App against a simulation screen with injected events and ticks
type harness struct {
	t      *testing.T
	app    *App
	screen tcell.SimulationScreen
	clock  *engine.MockTimeProvider
	events chan tcell.Event
	ticks  chan time.Time
	done   chan error
	logBuf *bytes.Buffer
}

type fakeSound struct {
	muted  bool
	events []event.Event
}

func (f *fakeSound) Emit(ev event.Event) { f.events = append(f.events, ev) }
func (f *fakeSound) ToggleMute() bool   { f.muted = !f.muted; return f.muted }

func newHarness(t *testing.T, cfg *config.Config, sound Sound, mm *metrics.Manager) *harness {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	h := &harness{
		t:      t,
		screen: screen,
		clock:  engine.NewMockTimeProvider(time.Unix(0, 0)),
		events: make(chan tcell.Event),
		ticks:  make(chan time.Time),
		done:   make(chan error, 1),
		logBuf: &bytes.Buffer{},
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)

	n := 0
	a, err := New(Options{
		Screen:  screen,
		Config:  cfg,
		Logger:  logger.New(h.logBuf, level, false),
		Rand:    vmath.NewSeqRand(0), // Every serve goes left and up
		Clock:   h.clock,
		Sound:   sound,
		Metrics: mm,
		Events:  h.events,
		Ticks:   h.ticks,
		IDGenerator: func() string {
			n++
			return "match-" + strconv.Itoa(n)
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.app = a

	go func() { h.done <- a.Run(context.Background()) }()
	return h
}

func (h *harness) key(ch rune) {
	h.events <- tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone)
}

// sync blocks until the loop is back at select, so the previous frame is fully drawn
func (h *harness) sync() {
	h.key('x') // Unbound
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.ticks <- time.Time{}
	}
}

// quit stops the loop and waits for Run, after which app state is safe to read
func (h *harness) quit() {
	h.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case err := <-h.done:
		if err != nil {
			h.t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		h.t.Fatal("Run did not return after quit")
	}
}

func (h *harness) row(y int) string {
	w, _ := h.screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := h.screen.GetContent(x, y)
		sb.WriteRune(ch)
	}
	return sb.String()
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Options{Rand: vmath.NewSeqRand(0)}); !errors.Is(err, ErrNoScreen) {
		t.Errorf("Expected ErrNoScreen, got %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if _, err := New(Options{Screen: screen}); !errors.Is(err, ErrNoRand) {
		t.Errorf("Expected ErrNoRand, got %v", err)
	}

	cfg := config.New()
	cfg.BestOf = 4
	if _, err := New(Options{Screen: screen, Rand: vmath.NewSeqRand(0), Config: cfg}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestQuitKeyStopsLoop(t *testing.T) {
	h := newHarness(t, nil, nil, nil)
	h.tick(3)
	h.quit()

	if got := h.app.Match().Tick(); got != 3 {
		t.Errorf("Expected 3 ticks before quit, got %d", got)
	}
	if got := h.app.Status().Registry().Ints.Get(status.KeyTicks).Load(); got != 3 {
		t.Errorf("Expected status ticks 3, got %d", got)
	}
}

func TestContextCancelStopsLoop(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	a, err := New(Options{
		Screen: screen,
		Rand:   vmath.NewSeqRand(0),
		Events: make(chan tcell.Event),
		Ticks:  make(chan time.Time),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestClosedEventStreamStopsLoop(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event)
	a, err := New(Options{Screen: screen, Rand: vmath.NewSeqRand(0), Events: events, Ticks: make(chan time.Time)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	close(events)

	if err := a.Run(context.Background()); err != nil {
		t.Errorf("Expected nil on closed stream, got %v", err)
	}
}

func TestHeldKeyMovesPaddle(t *testing.T) {
	h := newHarness(t, nil, nil, nil)
	start := h.app.Match().Snapshot().Player.Y

	h.key('w')
	h.tick(1)
	h.tick(1)

	// Window expires without a repeat
	h.clock.Advance(200 * time.Millisecond)
	h.tick(1)

	h.key('s')
	h.tick(1)
	h.quit()

	want := start - 2*int(engine.PaddleSpeed) + int(engine.PaddleSpeed)
	if got := h.app.Match().Snapshot().Player.Y; got != want {
		t.Errorf("Expected paddle y %d, got %d", want, got)
	}
}

// TestMatchOverAndReplay plays a first-to-2 match the AI wins, then picks best of 7
func TestMatchOverAndReplay(t *testing.T) {
	cfg := config.New()
	cfg.BestOf = 3
	sound := &fakeSound{}
	mm := metrics.NewManager()
	h := newHarness(t, cfg, sound, mm)

	// Each serve crosses the left edge after 81 ticks, well above the idle paddle
	h.tick(162)
	h.sync()
	if !h.app.Match().AwaitingReplay() {
		h.quit()
		t.Fatalf("Expected replay menu after two AI points, scores %d:%d",
			h.app.Match().PlayerScore(), h.app.Match().AIScore())
	}

	// Ticks during the menu do not advance the simulation
	h.tick(10)
	h.sync()
	if got := h.app.Match().Tick(); got != 162 {
		t.Errorf("Expected tick counter frozen at 162 during the menu, got %d", got)
	}

	// Movement is ignored while the menu is shown
	h.key('w')
	h.sync()

	winnerRow := h.row(8)
	menuRow := h.row(12)

	h.key('7')
	h.tick(1)
	h.quit()

	m := h.app.Match()
	if !strings.Contains(winnerRow, engine.WinnerAI) {
		t.Errorf("Expected %q on screen, got %q", engine.WinnerAI, winnerRow)
	}
	if !strings.Contains(menuRow, "Best of 3 (Press 3)") {
		t.Errorf("Expected replay menu on screen, got %q", menuRow)
	}

	if m.AwaitingReplay() || m.GameOver() {
		t.Error("Expected a new match after selection")
	}
	if m.TargetScore() != 4 {
		t.Errorf("Expected target 4 for best of 7, got %d", m.TargetScore())
	}
	if m.PlayerScore() != 0 || m.AIScore() != 0 {
		t.Errorf("Expected zeroed scores, got %d:%d", m.PlayerScore(), m.AIScore())
	}
	if m.Tick() != 163 {
		t.Errorf("Expected 163 simulated ticks, got %d", m.Tick())
	}
	if m.ID() != "match-2" {
		t.Errorf("Expected fresh match id, got %q", m.ID())
	}

	reg := h.app.Status().Registry()
	if got := reg.Ints.Get(status.KeyPoints).Load(); got != 2 {
		t.Errorf("Expected 2 points, got %d", got)
	}
	if got := reg.Ints.Get(status.KeyMatches).Load(); got != 1 {
		t.Errorf("Expected 1 match, got %d", got)
	}

	scores := 0
	for _, ev := range sound.events {
		if ev.Type == event.EventScore {
			scores++
		}
	}
	if scores != 2 {
		t.Errorf("Expected sound sink to see 2 scores, got %d", scores)
	}

	logs := h.logBuf.String()
	if !strings.Contains(logs, "match over") || !strings.Contains(logs, "match_id=match-1") {
		t.Errorf("Expected match over log with match id, got %q", logs)
	}
}

// TestQuitAtReplayMenu quits from the menu and checks the finished match is left as is
func TestQuitAtReplayMenu(t *testing.T) {
	cfg := config.New()
	cfg.BestOf = 3
	h := newHarness(t, cfg, nil, nil)

	h.tick(162)
	h.sync()

	m := h.app.Match()
	if !m.AwaitingReplay() {
		h.quit()
		t.Fatalf("Expected replay menu after two AI points, scores %d:%d", m.PlayerScore(), m.AIScore())
	}
	tick, player, ai, id := m.Tick(), m.PlayerScore(), m.AIScore(), m.ID()

	h.quit()

	if !m.AwaitingReplay() || !m.GameOver() {
		t.Error("Expected match to stay at the replay menu after quit")
	}
	if m.Tick() != tick {
		t.Errorf("Expected tick %d after quit, got %d", tick, m.Tick())
	}
	if m.PlayerScore() != player || m.AIScore() != ai {
		t.Errorf("Expected scores %d:%d after quit, got %d:%d", player, ai, m.PlayerScore(), m.AIScore())
	}
	if m.ID() != id {
		t.Errorf("Expected match id %q after quit, got %q", id, m.ID())
	}
}

func TestReplayKeysIgnoredWhilePlaying(t *testing.T) {
	h := newHarness(t, nil, nil, nil)
	h.key('3')
	h.tick(1)
	h.quit()

	if got := h.app.Match().TargetScore(); got != 3 {
		t.Errorf("Expected default target 3, got %d", got)
	}
}

func TestMuteToggle(t *testing.T) {
	sound := &fakeSound{}
	h := newHarness(t, nil, sound, nil)

	h.key('m')
	h.tick(1)
	h.sync()
	statusRow := h.row(24)
	h.key('m')
	h.quit()

	if sound.muted {
		t.Error("Expected unmuted after two toggles")
	}
	if !strings.Contains(statusRow, "[muted]") {
		t.Errorf("Expected muted marker on status row, got %q", statusRow)
	}
}
