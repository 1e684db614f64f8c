package engine

import (
	"math"

	"github.com/lixenwraith/vi-pong/vmath"
)

// Direction is the per-tick movement intent for the player paddle
type Direction int8

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}

// Paddle is a vertical bar that only moves along y
type Paddle struct {
	X, Y   float64
	Width  int
	Height int
	Speed  float64
}

// NewPaddle creates a paddle at (x, y) with the standard size and speed
func NewPaddle(x, y float64) *Paddle {
	return &Paddle{
		X:      x,
		Y:      y,
		Width:  PaddleWidth,
		Height: PaddleHeight,
		Speed:  PaddleSpeed,
	}
}

// Move shifts the paddle by delta and clamps it into the court
func (p *Paddle) Move(delta float64, courtHeight int) {
	p.Y = vmath.ClampF(p.Y+delta, 0, float64(courtHeight-p.Height))
}

// MoveDir moves by one speed step in the given direction
func (p *Paddle) MoveDir(dir Direction, courtHeight int) {
	switch dir {
	case DirUp:
		p.Move(-p.Speed, courtHeight)
	case DirDown:
		p.Move(p.Speed, courtHeight)
	}
}

// AutoTrack steers the paddle center toward the ball center by at most Speed
// Purely reactive: no prediction, so a fast enough ball outruns it
func (p *Paddle) AutoTrack(ball *Ball, courtHeight int) {
	diff := ball.CenterY() - p.CenterY()
	if diff == 0 {
		return
	}
	step := math.Min(p.Speed, math.Abs(diff))
	p.Move(vmath.Sign(diff)*step, courtHeight)
}

// CenterY returns the vertical center
func (p *Paddle) CenterY() float64 {
	return p.Y + float64(p.Height)/2
}

// Rect returns the bounding box with the position truncated to integers
func (p *Paddle) Rect() vmath.Rect {
	return vmath.NewRect(p.X, p.Y, p.Width, p.Height)
}
