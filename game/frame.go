package game

import (
	"fmt"
	"slices"

	"snake-arcade/game/types"
)

// Frame is an immutable snapshot of everything a presenter draws.
type Frame struct {
	Grid       types.Grid
	Snake      []types.Point
	SnakeColor types.Color
	Food       types.Point
	FoodColor  types.Color
	Background []BackgroundFrame
	Score      int
	HighScore  int
	NewRecord  bool
	State      types.SessionState
	Cause      types.CollisionType
}

type BackgroundFrame struct {
	Body  []types.Point
	Color types.Color
}

func (g *Game) Frame() Frame {
	bg := make([]BackgroundFrame, 0, len(g.backgroundMgr.GetSnakes()))
	for _, s := range g.backgroundMgr.GetSnakes() {
		bg = append(bg, BackgroundFrame{Body: slices.Clone(s.Body), Color: s.Color})
	}
	return Frame{
		Grid:       g.Grid,
		Snake:      g.snake.Cells(),
		SnakeColor: g.snake.Color,
		Food:       g.foodMgr.Food(),
		FoodColor:  types.FoodRed,
		Background: bg,
		Score:      g.score,
		HighScore:  g.highScore,
		NewRecord:  g.highlight > 0,
		State:      g.state,
		Cause:      g.cause,
	}
}

func (f Frame) ScoreText() string {
	return fmt.Sprintf("Score: %d", f.Score)
}

func (f Frame) HighScoreText() string {
	return fmt.Sprintf("High Score: %d", f.HighScore)
}

// Overlay returns the centred lines for the current state: the start prompt
// while idle, the death summary once ended, nothing while running.
func (f Frame) Overlay() []string {
	switch f.State {
	case types.Idle:
		return []string{"Press any key to start"}
	case types.Ended:
		return []string{
			"You Died!",
			fmt.Sprintf("Final Score: %d", f.Score),
			f.Cause.Message(),
		}
	default:
		return nil
	}
}
