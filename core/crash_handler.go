package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores the terminal; tcell.Screen satisfies it
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher

	// Overridden in tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetCrashTerminal registers the screen restored by HandleCrash; nil clears it
func SetCrashTerminal(t Finisher) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the panic with its stack trace and exits 1
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashTerminal = nil // A second crash must not Fini twice
	crashMu.Unlock()

	if t != nil {
		t.Fini()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mVI-PONG CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
