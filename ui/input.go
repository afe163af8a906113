package ui

import (
	"snake-arcade/game"
	"snake-arcade/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var directionKeys = map[int32]types.Point{
	rl.KeyLeft:  types.Left,
	rl.KeyA:     types.Left,
	rl.KeyUp:    types.Up,
	rl.KeyW:     types.Up,
	rl.KeyRight: types.Right,
	rl.KeyD:     types.Right,
	rl.KeyDown:  types.Down,
	rl.KeyS:     types.Down,
}

var swipeDirections = map[rl.Gestures]types.Point{
	rl.GestureSwipeLeft:  types.Left,
	rl.GestureSwipeUp:    types.Up,
	rl.GestureSwipeRight: types.Right,
	rl.GestureSwipeDown:  types.Down,
}

// HandleInput drains this frame's keyboard, mouse and touch input into g.
func HandleInput(g *game.Game) {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		handleKey(g, key)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.AnyInput()
	}

	gesture := rl.GetGestureDetected()
	if dir, ok := swipeDirections[gesture]; ok {
		g.AnyInput()
		g.SetDirection(dir)
	} else if gesture == rl.GestureTap {
		g.AnyInput()
	}
}

func handleKey(g *game.Game, key int32) {
	if key == rl.KeyP || key == rl.KeySpace {
		if g.State() == types.Running {
			g.Stop()
		} else {
			g.AnyInput()
		}
		return
	}

	g.AnyInput()
	if dir, ok := directionKeys[key]; ok {
		g.SetDirection(dir)
	}
}
