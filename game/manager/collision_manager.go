package manager

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
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
	}
	return "none"
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision reports what the head would hit on entering pos.
// Every current segment counts, the tail included.
func (cm *CollisionManager) CheckCollision(pos types.Point, snake *entity.Snake) CollisionType {
	if cm.isWallCollision(pos) {
		return WallCollision
	}
	if snake != nil && snake.Occupies(pos) {
		return SelfCollision
	}
	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// CheckAppleCollision returns the index of the apple at pos, or -1
func (cm *CollisionManager) CheckAppleCollision(pos types.Point, apples []entity.Apple) int {
	for i, a := range apples {
		if a.Pos == pos {
			return i
		}
	}
	return -1
}

// CheckBonusCollision reports whether the bonus item sits on pos
func (cm *CollisionManager) CheckBonusCollision(pos types.Point, bonus *entity.BonusItem) bool {
	return bonus != nil && bonus.Pos == pos
}
