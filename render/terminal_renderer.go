package render

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-pong/engine"
	"github.com/lixenwraith/vi-pong/vmath"
)

// Glyphs
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// TerminalRenderer draws match snapshots onto a tcell screen
// The court is scaled to the whole screen minus the bottom status row
type TerminalRenderer struct {
	screen tcell.Screen
	theme  Theme

	width  int
	height int // Rows available to the court
}

// NewTerminalRenderer creates a renderer bound to screen
func NewTerminalRenderer(screen tcell.Screen, theme Theme) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		theme:  theme,
	}
}

// Render draws one frame: the court while playing, the replay menu when over
func (r *TerminalRenderer) Render(s engine.Snapshot, status string) {
	r.resize()
	r.fill(r.theme.Base)

	if s.GameOver {
		r.drawReplayMenu(s)
	} else {
		r.drawCourt(s)
	}
	r.drawStatusBar(status)

	r.screen.Show()
}

// resize re-reads the screen size; terminal resizes are picked up every frame
func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	r.width = w
	r.height = h - 1
	if r.height < 1 {
		r.height = 1
	}
}

func (r *TerminalRenderer) fill(style tcell.Style) {
	r.screen.SetStyle(style)
	r.screen.Clear()
}

func (r *TerminalRenderer) drawCourt(s engine.Snapshot) {
	// Dashed net down the middle
	netX := r.width / 2
	for y := 0; y < r.height; y += 2 {
		r.screen.SetContent(netX, y, NetChar, nil, r.theme.Net)
	}

	r.drawText(r.width/4, 1, strconv.Itoa(s.PlayerScore), r.theme.Score)
	r.drawText(r.width*3/4, 1, strconv.Itoa(s.AIScore), r.theme.Score)

	r.drawRect(s, s.Player, PaddleChar, r.theme.Player)
	r.drawRect(s, s.AI, PaddleChar, r.theme.AI)

	// The ball is smaller than a cell at most sizes; draw it at its center cell
	cx, cy := s.Ball.Center()
	r.screen.SetContent(r.toCellX(s, int(cx)), r.toCellY(s, int(cy)), BallChar, nil, r.theme.Ball)
}

// drawRect fills every cell covered by rect, at least one cell
func (r *TerminalRenderer) drawRect(s engine.Snapshot, rect vmath.Rect, ch rune, style tcell.Style) {
	x0, x1 := r.toCellX(s, rect.X), r.toCellX(s, rect.Right()-1)
	y0, y1 := r.toCellY(s, rect.Y), r.toCellY(s, rect.Bottom()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawReplayMenu(s engine.Snapshot) {
	r.drawCentered(r.height/3, s.Winner, r.theme.Winner)

	for i, line := range engine.ReplayOptions() {
		r.drawCentered(r.height/2+i*2, line, r.theme.Score)
	}
}

func (r *TerminalRenderer) drawStatusBar(status string) {
	r.drawText(0, r.height, status, r.theme.Status)
}

func (r *TerminalRenderer) drawCentered(y int, text string, style tcell.Style) {
	r.drawText((r.width-len([]rune(text)))/2, y, text, style)
}

// drawText writes text on one row, clipped to the screen
func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y > r.height {
		return
	}
	for _, ch := range text {
		if x >= r.width {
			return
		}
		if x >= 0 {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

func (r *TerminalRenderer) toCellX(s engine.Snapshot, x int) int {
	return vmath.Clamp(x*r.width/s.CourtWidth, 0, r.width-1)
}

func (r *TerminalRenderer) toCellY(s engine.Snapshot, y int) int {
	return vmath.Clamp(y*r.height/s.CourtHeight, 0, r.height-1)
}
