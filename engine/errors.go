package engine

import "errors"

// Sentinel errors returned by replay selection
var (
	ErrNotAwaitingReplay = errors.New("match is not awaiting a replay selection")
	ErrInvalidChoice     = errors.New("invalid replay choice")
)
