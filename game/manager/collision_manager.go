package manager

import (
	"gridsnake/game/types"
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
	case NoCollision:
		return "none"
	case WallCollision:
		return "wall-collision"
	case SelfCollision:
		return "self-collision"
	}
	return "unknown"
}

// Mover is the view of the body needed to classify its next move
type Mover interface {
	Occupancy
	Tail() types.Position
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckMove classifies moving the head of body onto next.
// The tail cell of a multi-segment body is vacated by the same move and does not collide.
func (cm *CollisionManager) CheckMove(body Mover, next types.Position) CollisionType {
	if cm.isWallCollision(next) {
		return WallCollision
	}
	if body.Contains(next) && !(body.Len() > 1 && next == body.Tail()) {
		return SelfCollision
	}
	return NoCollision
}

// isWallCollision checks if a position lies off the board
func (cm *CollisionManager) isWallCollision(pos types.Position) bool {
	return !cm.grid.IsValid(pos)
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Position, food types.Position) bool {
	return pos == food
}
