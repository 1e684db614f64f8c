package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // Esc, q, Ctrl+C
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Paddle movement
	IntentUp   // w, Up arrow
	IntentDown // s, Down arrow

	// Replay menu
	IntentBestOf3 // 3
	IntentBestOf5 // 5
	IntentBestOf7 // 7
)

var intentNames = map[IntentType]string{
	IntentNone:       "none",
	IntentQuit:       "quit",
	IntentToggleMute: "toggle_mute",
	IntentResize:     "resize",
	IntentUp:         "up",
	IntentDown:       "down",
	IntentBestOf3:    "best_of_3",
	IntentBestOf5:    "best_of_5",
	IntentBestOf7:    "best_of_7",
}

func (i IntentType) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// IsMovement reports whether the intent steers the paddle
func (i IntentType) IsMovement() bool {
	return i == IntentUp || i == IntentDown
}

// BestOf returns the best-of-N value for replay intents, 0 otherwise
func (i IntentType) BestOf() int {
	switch i {
	case IntentBestOf3:
		return 3
	case IntentBestOf5:
		return 5
	case IntentBestOf7:
		return 7
	}
	return 0
}
