// Package app hosts the match: it polls the terminal, steps the simulation at a
// fixed rate and draws every frame.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-pong/config"
	"github.com/lixenwraith/vi-pong/core"
	"github.com/lixenwraith/vi-pong/engine"
	"github.com/lixenwraith/vi-pong/event"
	"github.com/lixenwraith/vi-pong/input"
	"github.com/lixenwraith/vi-pong/logger"
	"github.com/lixenwraith/vi-pong/metrics"
	"github.com/lixenwraith/vi-pong/render"
	"github.com/lixenwraith/vi-pong/status"
	"github.com/lixenwraith/vi-pong/vmath"
)

// Construction errors
var (
	ErrNoScreen = errors.New("app: screen is required")
	ErrNoRand   = errors.New("app: rand source is required")
)

// Sound is the audio collaborator; audio.SoundManager satisfies it
type Sound interface {
	event.Sink
	ToggleMute() bool
}

// Options wires the collaborators; only Screen and Rand are required
type Options struct {
	Screen  tcell.Screen
	Config  *config.Config
	Logger  logger.Logger
	Rand    vmath.Rand
	Clock   engine.Clock
	Sound   Sound
	Metrics *metrics.Manager

	// Events replaces terminal polling, Ticks replaces the frame ticker
	Events <-chan tcell.Event
	Ticks  <-chan time.Time

	// IDGenerator replaces uuid match ids
	IDGenerator func() string
}

// App owns the frame loop; all match mutation happens on the Run goroutine
type App struct {
	screen   tcell.Screen
	match    *engine.Match
	renderer *render.TerminalRenderer
	keys     *input.KeyTable
	hold     *input.HoldTracker
	tracker  *status.Tracker
	metrics  *metrics.Manager
	sound    Sound
	log      logger.Logger

	interval time.Duration
	events   <-chan tcell.Event
	ticks    <-chan time.Time
	muted    bool
}

// New builds the host and its match
func New(opts Options) (*App, error) {
	if opts.Screen == nil {
		return nil, ErrNoScreen
	}
	if opts.Rand == nil {
		return nil, ErrNoRand
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	target, err := engine.ReplayChoice(cfg.BestOf).TargetScore()
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = engine.NewTimeProvider()
	}

	a := &App{
		screen:   opts.Screen,
		renderer: render.NewTerminalRenderer(opts.Screen, render.ThemeFor(cfg.Color)),
		keys:     input.DefaultKeyTable(),
		hold:     input.NewHoldTracker(clock, cfg.HoldWindow()),
		tracker:  status.NewTracker(status.NewRegistry()),
		metrics:  opts.Metrics,
		sound:    opts.Sound,
		log:      log.Named("app"),
		interval: cfg.TickInterval(),
		events:   opts.Events,
		ticks:    opts.Ticks,
	}

	// Optional sinks are appended only when set so no typed nil reaches Fanout
	sinks := []event.Sink{a.tracker, event.SinkFunc(a.logEvent)}
	if a.sound != nil {
		sinks = append(sinks, a.sound)
	}
	if a.metrics != nil {
		sinks = append(sinks, a.metrics)
	}

	matchOpts := []engine.Option{
		engine.WithTargetScore(target),
		engine.WithSink(event.NewFanout(sinks...)),
	}
	if opts.IDGenerator != nil {
		matchOpts = append(matchOpts, engine.WithIDGenerator(opts.IDGenerator))
	}
	a.match = engine.NewMatch(opts.Rand, matchOpts...)
	a.tracker.SetMatchID(a.match.ID())

	return a, nil
}

// Match exposes the simulation for inspection
func (a *App) Match() *engine.Match { return a.match }

// Status exposes the HUD counters
func (a *App) Status() *status.Tracker { return a.tracker }

// Run drives the loop until quit, context cancellation or terminal closure
// All three are normal exits and return nil
func (a *App) Run(ctx context.Context) error {
	events := a.events
	if events == nil {
		ch := make(chan tcell.Event, 64)
		done := make(chan struct{})
		defer close(done)
		core.Go(func() { a.poll(ch, done) })
		events = ch
	}

	ticks := a.ticks
	if ticks == nil {
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	a.log.Info(ctx, "match started",
		logger.MatchID(a.match.ID()),
		logger.Int("target", a.match.TargetScore()),
	)
	a.draw()

	for {
		select {
		case <-ctx.Done():
			a.log.Info(ctx, "stopped", logger.String("reason", ctx.Err().Error()))
			return nil

		case ev, ok := <-events:
			if !ok {
				a.log.Info(ctx, "terminal closed")
				return nil
			}
			if !a.handleEvent(ctx, ev) {
				a.log.Info(ctx, "quit", logger.Uint64("tick", a.match.Tick()))
				return nil
			}

		case <-ticks:
			a.step()
			a.draw()
		}
	}
}

// poll forwards terminal events until the screen is finalized
func (a *App) poll(out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent applies one terminal event; returns false to quit
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) bool {
	intent := a.keys.Lookup(ev)
	switch intent {
	case input.IntentQuit:
		return false

	case input.IntentToggleMute:
		a.toggleMute(ctx)
		a.draw()

	case input.IntentResize:
		a.screen.Sync()
		a.draw()

	case input.IntentUp, input.IntentDown:
		if !a.match.AwaitingReplay() {
			a.hold.Press(intent)
		}

	case input.IntentBestOf3, input.IntentBestOf5, input.IntentBestOf7:
		if !a.match.AwaitingReplay() {
			return true
		}
		if err := a.match.SelectReplay(engine.ReplayChoice(intent.BestOf())); err != nil {
			a.log.Warn(ctx, "replay selection rejected", logger.Error(err))
			return true
		}
		a.hold.Release()
		a.draw()
	}
	return true
}

func (a *App) toggleMute(ctx context.Context) {
	if a.sound != nil {
		a.muted = a.sound.ToggleMute()
	} else {
		a.muted = !a.muted
	}
	a.tracker.SetMuted(a.muted)
	a.log.Debug(ctx, "mute toggled", logger.Bool("muted", a.muted))
}

// step advances one tick; the replay menu halts the simulation
func (a *App) step() {
	if a.match.AwaitingReplay() {
		return
	}
	a.match.AdvanceTick(a.hold.Direction())
	a.tracker.Tick()
	if a.metrics != nil {
		a.metrics.Tick()
	}
}

func (a *App) draw() {
	snap := a.match.Snapshot()
	a.renderer.Render(snap, fmt.Sprintf("first to %d  %s", snap.TargetScore, a.tracker.StatusLine()))
}

// logEvent records match lifecycle events; per-tick events are debug only
func (a *App) logEvent(ev event.Event) {
	ctx := context.Background()
	fields := []logger.Field{
		logger.MatchID(ev.MatchID),
		logger.Uint64("tick", ev.Tick),
	}

	switch ev.Type {
	case event.EventScore:
		a.log.Info(ctx, "point", append(fields,
			logger.String("side", ev.Side.String()),
			logger.Int("player", a.match.PlayerScore()),
			logger.Int("ai", a.match.AIScore()),
		)...)
	case event.EventMatchOver:
		a.log.Info(ctx, "match over", append(fields, logger.String("winner", ev.Side.String()))...)
	case event.EventReplaySelected:
		a.log.Info(ctx, "match started", append(fields, logger.Int("target", ev.Target))...)
	default:
		a.log.Debug(ctx, ev.Type.String(), append(fields, logger.String("side", ev.Side.String()))...)
	}
}
