package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps terminal keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings, matched case-insensitively
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyUp:     IntentUp,
			tcell.KeyDown:   IntentDown,
		},
		Runes: map[rune]IntentType{
			'w': IntentUp,
			's': IntentDown,
			'q': IntentQuit,
			'm': IntentToggleMute,
			'3': IntentBestOf3,
			'5': IntentBestOf5,
			'7': IntentBestOf7,
		},
	}
}

// Lookup resolves a tcell event to an intent; unbound input yields IntentNone
func (kt *KeyTable) Lookup(ev tcell.Event) IntentType {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return kt.Runes[unicode.ToLower(ev.Rune())]
		}
		return kt.SpecialKeys[ev.Key()]
	case *tcell.EventResize:
		return IntentResize
	}
	return IntentNone
}
