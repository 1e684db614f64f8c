package vmath

import "math"

// Rect is an axis-aligned bounding box in integer court units
type Rect struct {
	X, Y int
	W, H int
}

// NewRect builds a Rect from a float position, rounding toward zero like int()
func NewRect(x, y float64, w, h int) Rect {
	return Rect{X: int(x), Y: int(y), W: w, H: h}
}

// Right returns the x coordinate one past the right edge
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate one past the bottom edge
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects reports whether two rects overlap; touching edges do not count
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Center returns the center point using float math
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

// --- Scalars ---

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampF restricts v to [lo, hi]
func ClampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Sign returns -1, 0 or 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// --- Randomness ---

// Rand is the random source injected into the simulation
// Intn returns a value in [0, n)
type Rand interface {
	Intn(n int) int
}

// PickSign returns -v or +v with equal probability
func PickSign(rng Rand, v float64) float64 {
	if rng.Intn(2) == 0 {
		return -v
	}
	return v
}

// PickOffset returns -1, 0 or +1 with equal probability
func PickOffset(rng Rand) float64 {
	return float64(rng.Intn(3) - 1)
}

// SeqRand replays a fixed sequence of values, wrapping around
// Values are reduced modulo n so any script is valid for any call
type SeqRand struct {
	vals []int
	pos  int
}

func NewSeqRand(vals ...int) *SeqRand {
	return &SeqRand{vals: vals}
}

func (r *SeqRand) Intn(n int) int {
	if n <= 0 || len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.pos%len(r.vals)]
	r.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
