package types

import "fmt"

type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Opposite returns the reversed direction vector.
func (p Point) Opposite() Point {
	return Point{X: -p.X, Y: -p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Unit direction vectors. Y grows downwards, like the screen.
var (
	Right = Point{X: 1, Y: 0}
	Left  = Point{X: -1, Y: 0}
	Down  = Point{X: 0, Y: 1}
	Up    = Point{X: 0, Y: -1}
)

// Directions lists the four unit vectors in a fixed order for random picks.
var Directions = [4]Point{Right, Left, Down, Up}

// IsDirection reports whether p is one of the four unit vectors.
func IsDirection(p Point) bool {
	for _, d := range Directions {
		if p == d {
			return true
		}
	}
	return false
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// NewGrid returns a square grid of tileCount x tileCount cells.
func NewGrid(tileCount int) Grid {
	return Grid{Width: tileCount, Height: tileCount}
}

// InBounds is the player's rule: leaving the grid is lethal, never wrapped.
func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Wrap folds p back onto the grid as a torus. Only decorative snakes use it.
func (g Grid) Wrap(p Point) Point {
	return Point{X: mod(p.X, g.Width), Y: mod(p.Y, g.Height)}
}

func (g Grid) Cells() int {
	return g.Width * g.Height
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// Color is an RGBA color; A is the opacity used by the translucent background snakes.
type Color struct {
	R, G, B, A uint8
}

var (
	SnakeGreen = Color{R: 0, G: 255, B: 0, A: 255}
	FoodRed    = Color{R: 255, G: 0, B: 0, A: 255}
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

// Message is the end-of-session line shown to the player.
func (c CollisionType) Message() string {
	switch c {
	case WallCollision:
		return "You lost -- hit the wall"
	case SelfCollision:
		return "You died -- hit yourself"
	default:
		return "You Died!"
	}
}

// SessionState is the lifecycle of one game session.
type SessionState int

const (
	Idle SessionState = iota
	Running
	Ended
)

func (s SessionState) String() string {
	switch s {
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "idle"
	}
}
