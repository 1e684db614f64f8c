package render

import "github.com/gdamore/tcell/v2"

// RGB palette, Tokyo Night flavoured
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbPaddle     = tcell.NewRGBColor(255, 255, 255)
	RgbPlayer     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbAI         = tcell.NewRGBColor(255, 120, 120) // Bright red
	RgbBall       = tcell.NewRGBColor(255, 255, 0)
	RgbNet        = tcell.NewRGBColor(90, 90, 110)
	RgbScore      = tcell.NewRGBColor(255, 255, 255)
	RgbStatusBar  = tcell.NewRGBColor(180, 180, 180)
	RgbWinner     = tcell.NewRGBColor(255, 165, 0) // Orange
)

// Theme holds the styles used for one frame
type Theme struct {
	Base   tcell.Style
	Player tcell.Style
	AI     tcell.Style
	Ball   tcell.Style
	Net    tcell.Style
	Score  tcell.Style
	Status tcell.Style
	Winner tcell.Style
}

// ColorTheme uses the RGB palette
func ColorTheme() Theme {
	base := tcell.StyleDefault.Background(RgbBackground)
	return Theme{
		Base:   base,
		Player: base.Foreground(RgbPlayer),
		AI:     base.Foreground(RgbAI),
		Ball:   base.Foreground(RgbBall),
		Net:    base.Foreground(RgbNet),
		Score:  base.Foreground(RgbScore).Bold(true),
		Status: base.Foreground(RgbStatusBar),
		Winner: base.Foreground(RgbWinner).Bold(true),
	}
}

// MonoTheme leaves colors to the terminal defaults
func MonoTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Base:   base,
		Player: base,
		AI:     base,
		Ball:   base,
		Net:    base,
		Score:  base.Bold(true),
		Status: base,
		Winner: base.Bold(true),
	}
}

// ThemeFor resolves a color mode name: "mono" disables colors, anything else uses the palette
func ThemeFor(mode string) Theme {
	if mode == "mono" {
		return MonoTheme()
	}
	return ColorTheme()
}
