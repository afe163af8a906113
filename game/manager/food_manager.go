package manager

import (
	"golang.org/x/exp/rand"

	"snake-arcade/game/types"
)

type FoodManager struct {
	grid types.Grid
	rng  *rand.Rand
	food types.Point
}

func NewFoodManager(grid types.Grid, rng *rand.Rand) *FoodManager {
	return &FoodManager{
		grid: grid,
		rng:  rng,
	}
}

// Spawn samples uniformly random cells until one is not in occupied, and makes it
// the current food. When occupied covers the whole grid there is nowhere to
// sample, so the current food is left as is and returned.
func (fm *FoodManager) Spawn(occupied []types.Point) types.Point {
	taken := make(map[types.Point]struct{}, len(occupied))
	for _, p := range occupied {
		if fm.grid.InBounds(p) {
			taken[p] = struct{}{}
		}
	}
	if len(taken) >= fm.grid.Cells() {
		return fm.food
	}
	for {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if _, ok := taken[food]; !ok {
			fm.food = food
			return food
		}
	}
}

func (fm *FoodManager) Food() types.Point {
	return fm.food
}

// Place puts food at an explicit cell. Play always goes through Spawn; Place
// exists for tests and scripted boards.
func (fm *FoodManager) Place(food types.Point) {
	fm.food = food
}
