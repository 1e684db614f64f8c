package engine

import "github.com/lixenwraith/vi-pong/vmath"

// Collision tags which paddle, if any, the ball hit this tick
type Collision uint8

const (
	CollisionNone Collision = iota
	CollisionPlayer
	CollisionAI
)

// IsPaddle reports whether any paddle was hit
func (c Collision) IsPaddle() bool {
	return c != CollisionNone
}

// Ball is the moving square; it knows the court walls but not the scoring rules
type Ball struct {
	X, Y   float64
	VX, VY float64
	Width  int
	Height int

	SpawnX, SpawnY float64

	CourtWidth  int
	CourtHeight int
}

// NewBall creates a ball at its spawn point with a random serve velocity
func NewBall(x, y float64, courtWidth, courtHeight int, rng vmath.Rand) *Ball {
	b := &Ball{
		Width:       BallSize,
		Height:      BallSize,
		SpawnX:      x,
		SpawnY:      y,
		CourtWidth:  courtWidth,
		CourtHeight: courtHeight,
	}
	b.Reset(rng)
	return b
}

// Move integrates one tick of velocity and bounces off top/bottom walls
// Returns true if a wall bounce happened
func (b *Ball) Move() bool {
	b.X += b.VX
	b.Y += b.VY

	bottom := float64(b.CourtHeight - b.Height)
	switch {
	case b.Y < 0:
		b.Y = 0
		b.VY = -b.VY
		return true
	case b.Y > bottom:
		b.Y = bottom
		b.VY = -b.VY
		return true
	}
	return false
}

// CheckCollision resolves overlap with the player paddle, then the AI paddle
// On a hit the ball is placed flush against the paddle's court-facing edge
func (b *Ball) CheckCollision(player, ai *Paddle, rng vmath.Rand) Collision {
	r := b.Rect()
	switch {
	case r.Intersects(player.Rect()):
		b.X = player.X + float64(player.Width)
		b.deflect(rng)
		return CollisionPlayer
	case r.Intersects(ai.Rect()):
		b.X = ai.X - float64(b.Width)
		b.deflect(rng)
		return CollisionAI
	}
	return CollisionNone
}

// deflect reverses horizontal travel and nudges vertical speed by -1, 0 or +1
func (b *Ball) deflect(rng vmath.Rand) {
	b.VX = -b.VX
	b.VY = vmath.ClampF(b.VY+vmath.PickOffset(rng), -MaxBallSpeedY, MaxBallSpeedY)
}

// Reset returns the ball to its spawn point and serves in a random diagonal
func (b *Ball) Reset(rng vmath.Rand) {
	b.X = b.SpawnX
	b.Y = b.SpawnY
	b.VX = vmath.PickSign(rng, BallSpeedX)
	b.VY = vmath.PickSign(rng, BallSpeedY)
}

// CenterY returns the vertical center
func (b *Ball) CenterY() float64 {
	return b.Y + float64(b.Height)/2
}

// Rect returns the bounding box with the position truncated to integers
func (b *Ball) Rect() vmath.Rect {
	return vmath.NewRect(b.X, b.Y, b.Width, b.Height)
}
