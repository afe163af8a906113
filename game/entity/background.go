package entity

import (
	"slices"

	"snake-arcade/game/types"
)

// BackgroundSnake is a decorative wanderer. It wraps around the grid, never
// dies and never touches the player or the food.
type BackgroundSnake struct {
	Body      []types.Point
	Direction types.Point
	Length    int
	Color     types.Color
}

func NewBackgroundSnake(startPos, dir types.Point, length int, color types.Color) *BackgroundSnake {
	return &BackgroundSnake{
		Body:      []types.Point{startPos},
		Direction: dir,
		Length:    length,
		Color:     color,
	}
}

// Step moves the head one cell on the torus and trims the tail to Length.
func (b *BackgroundSnake) Step(grid types.Grid) {
	head := grid.Wrap(b.Body[0].Add(b.Direction))
	b.Body = slices.Insert(b.Body, 0, head)
	if len(b.Body) > b.Length {
		b.Body = b.Body[:b.Length]
	}
}
