package entity

import (
	"slices"

	"snake-arcade/game/types"
)

// Snake is the player. Body[0] is the head.
type Snake struct {
	Body []types.Point
	// Direction is the pending direction, consumed by the next Advance.
	Direction types.Point
	Color     types.Color
}

func NewSnake(startPos types.Point, dir types.Point, color types.Color) *Snake {
	return &Snake{
		Body:      []types.Point{startPos},
		Direction: dir,
		Color:     color,
	}
}

func (s *Snake) Head() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// SetDirection stages dir for the next Advance. The exact opposite of the
// current Direction is ignored and reported as false.
func (s *Snake) SetDirection(dir types.Point) bool {
	if !types.IsDirection(dir) || dir == s.Direction.Opposite() {
		return false
	}
	s.Direction = dir
	return true
}

// Advance prepends head+Direction to the body and returns the new head.
// The caller resolves collisions and then either keeps the growth or calls RemoveTail.
func (s *Snake) Advance() types.Point {
	newHead := s.Head().Add(s.Direction)
	s.Body = slices.Insert(s.Body, 0, newHead)
	return newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Occupies reports whether p is any cell of the body. The game itself never
// needs it; tests and debugging code use it to inspect the board.
func (s *Snake) Occupies(p types.Point) bool {
	return slices.Contains(s.Body, p)
}

// Cells returns a copy of the body, head first.
func (s *Snake) Cells() []types.Point {
	return slices.Clone(s.Body)
}
