package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"

	"github.com/lixenwraith/vi-pong/app"
	"github.com/lixenwraith/vi-pong/audio"
	"github.com/lixenwraith/vi-pong/config"
	"github.com/lixenwraith/vi-pong/core"
	"github.com/lixenwraith/vi-pong/logger"
	"github.com/lixenwraith/vi-pong/metrics"
	"github.com/lixenwraith/vi-pong/vmath"
)

var (
	configPath = flag.String("config", "", "YAML config file (overrides $PONG_CONFIG)")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to the configured log file")
)

func main() {
	os.Exit(run())
}

func run() int {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *debugFlag {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	log, _, logCloser, err := logger.Setup(logger.Options{
		Debug: cfg.Debug,
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	core.SetCrashTerminal(screen)
	// Normal exit terminal cleanup
	defer func() {
		core.SetCrashTerminal(nil)
		screen.Fini()
	}()
	screen.HideCursor()

	// Audio is optional; the game runs silent when no device is available
	var sound app.Sound
	if cfg.AudioEnabled {
		sm := audio.NewSoundManager(audioConfig(cfg))
		if err := sm.Initialize(); err != nil {
			log.Warn(ctx, "audio unavailable, continuing without sound", logger.Error(err))
		} else {
			sound = sm
			defer sm.Cleanup()
		}
	}

	var mm *metrics.Manager
	if cfg.MetricsAddr != "" {
		mm = metrics.NewManager()
		core.Go(func() {
			if err := mm.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Warn(ctx, "metrics server stopped", logger.Error(err))
			}
		})
		log.Info(ctx, "metrics enabled", logger.String("addr", cfg.MetricsAddr))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info(ctx, "starting", logger.Int("fps", cfg.FPS), logger.Int("best_of", cfg.BestOf), logger.Any("seed", seed))

	game, err := app.New(app.Options{
		Screen:  screen,
		Config:  cfg,
		Logger:  log,
		Rand:    newRand(seed),
		Sound:   sound,
		Metrics: mm,
	})
	if err != nil {
		log.Error(ctx, "app setup failed", logger.Error(err))
		return 1
	}

	if err := game.Run(ctx); err != nil {
		log.Error(ctx, "game loop failed", logger.Error(err))
		return 1
	}
	return 0
}

// newRand seeds the simulation random source
func newRand(seed int64) vmath.Rand {
	return rand.New(rand.NewSource(uint64(seed)))
}

// audioConfig maps game config onto the mixer settings
func audioConfig(cfg *config.Config) *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = cfg.AudioEnabled
	ac.MasterVolume = cfg.MasterVolume
	return ac
}
