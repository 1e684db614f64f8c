package engine

// Court geometry in simulation units; fixed, not configurable
const (
	CourtWidth  = 800
	CourtHeight = 600
)

// Paddle geometry
const (
	PaddleWidth  = 10
	PaddleHeight = 100
	PaddleSpeed  = 7.0
	PaddleInset  = 10 // Gap between court edge and paddle outer side
)

// Ball geometry and kinematics
const (
	BallSize      = 7
	BallSpeedX    = 5.0 // Horizontal magnitude after every reset
	BallSpeedY    = 3.0 // Vertical magnitude after every reset
	MaxBallSpeedY = 8.0 // Cap on vertical magnitude after paddle perturbation
)

// Match defaults
const (
	DefaultBestOf = 5

	WinnerPlayer = "Player Wins!"
	WinnerAI     = "AI Wins!"
)
