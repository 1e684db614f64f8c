package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Options selects where logs go.
type Options struct {
	Debug bool   // Logs are written only in debug mode
	Level string // Level name, see ParseLevel
	File  string // Log file path, parent directories are created
}

// Setup opens the log sink and builds the process logger.
// The terminal belongs to the game, so without Debug everything is discarded,
// including the standard library log package.
// The returned closer is never nil.
func Setup(opts Options) (Logger, *slog.LevelVar, io.Closer, error) {
	level := new(slog.LevelVar)
	if err := SetLevelString(level, opts.Level); err != nil {
		return nil, nil, nil, err
	}

	if !opts.Debug || opts.File == "" {
		log.SetOutput(io.Discard)
		return New(io.Discard, level, false), level, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return New(f, level, true), level, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
