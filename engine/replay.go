package engine

import "fmt"

// ReplayChoice is a best-of-N selection from the replay menu
type ReplayChoice int

const (
	BestOf3 ReplayChoice = 3
	BestOf5 ReplayChoice = 5
	BestOf7 ReplayChoice = 7
)

// TargetScore maps best-of-N to the number of points needed to win
func (c ReplayChoice) TargetScore() (int, error) {
	switch c {
	case BestOf3, BestOf5, BestOf7:
		return int(c)/2 + 1, nil
	}
	return 0, fmt.Errorf("%w: best of %d", ErrInvalidChoice, int(c))
}

// ReplayOptions lists the lines shown while awaiting a selection
func ReplayOptions() []string {
	return []string{
		"Best of 3 (Press 3)",
		"Best of 5 (Press 5)",
		"Best of 7 (Press 7)",
		"Exit (ESC)",
	}
}
