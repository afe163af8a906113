package manager

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Check classifies the snake's freshly prepended head. Walls are checked
// before the body, so a head that is both outside and on the body is a wall death.
func (cm *CollisionManager) Check(snake *entity.Snake) types.CollisionType {
	head := snake.Head()
	if cm.isWallCollision(head) {
		return types.WallCollision
	}
	if cm.isSelfCollision(head, snake.Body) {
		return types.SelfCollision
	}
	return types.NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.InBounds(pos)
}

// isSelfCollision compares pos against every body cell except the head at index 0.
// The tail is still part of the body at this point, so chasing it is lethal.
func (cm *CollisionManager) isSelfCollision(pos types.Point, body []types.Point) bool {
	for i := 1; i < len(body); i++ {
		if pos == body[i] {
			return true
		}
	}
	return false
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}
