package manager

import (
	"golang.org/x/exp/rand"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

const (
	MinBackgroundLength = 3
	MaxBackgroundLength = 7
	DefaultTurnChance   = 0.02
)

// BackgroundManager owns the decorative snakes drawn behind the player.
type BackgroundManager struct {
	grid       types.Grid
	rng        *rand.Rand
	turnChance float64
	snakes     []*entity.BackgroundSnake
}

func NewBackgroundManager(grid types.Grid, rng *rand.Rand, turnChance float64) *BackgroundManager {
	return &BackgroundManager{
		grid:       grid,
		rng:        rng,
		turnChance: turnChance,
	}
}

// Regenerate replaces every background snake with count fresh ones.
func (bm *BackgroundManager) Regenerate(count int) {
	bm.snakes = make([]*entity.BackgroundSnake, 0, count)
	for i := 0; i < count; i++ {
		pos := types.Point{
			X: bm.rng.Intn(bm.grid.Width),
			Y: bm.rng.Intn(bm.grid.Height),
		}
		length := MinBackgroundLength + bm.rng.Intn(MaxBackgroundLength-MinBackgroundLength+1)
		bm.snakes = append(bm.snakes, entity.NewBackgroundSnake(pos, bm.randomDirection(), length, bm.randomColor()))
	}
}

// Update moves every snake one step, then lets each one turn with turnChance.
// Reversals are allowed here.
func (bm *BackgroundManager) Update() {
	for _, s := range bm.snakes {
		s.Step(bm.grid)
		if bm.rng.Float64() < bm.turnChance {
			s.Direction = bm.randomDirection()
		}
	}
}

func (bm *BackgroundManager) GetSnakes() []*entity.BackgroundSnake {
	return bm.snakes
}

func (bm *BackgroundManager) randomDirection() types.Point {
	return types.Directions[bm.rng.Intn(len(types.Directions))]
}

// randomColor is a translucent green with opacity between 0.2 and 0.5.
func (bm *BackgroundManager) randomColor() types.Color {
	alpha := 0.2 + bm.rng.Float64()*0.3
	return types.Color{R: 0, G: 255, B: 100, A: uint8(alpha * 255)}
}
