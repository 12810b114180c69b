package manager

import (
	"log"

	"gridsnake/game/types"
)

// Occupancy is the view of the body needed to place food
type Occupancy interface {
	Contains(pos types.Position) bool
	Len() int
}

type FoodManager struct {
	grid   types.Grid
	rng    types.Rand
	logger *log.Logger

	// maxAttempts bounds rejection sampling before the exhaustive scan
	maxAttempts int
}

func NewFoodManager(grid types.Grid, rng types.Rand, logger *log.Logger) *FoodManager {
	return &FoodManager{
		grid:        grid,
		rng:         rng,
		logger:      logger,
		maxAttempts: grid.Cells(),
	}
}

// Place picks a free cell for food, avoiding previous when possible.
// ok is false only when every cell is covered by the body.
func (fm *FoodManager) Place(body Occupancy, previous *types.Position) (types.Position, bool) {
	free := fm.grid.Cells() - body.Len()
	if free <= 0 {
		return types.Position{}, false
	}

	for i := 0; i < fm.maxAttempts; i++ {
		food := fm.grid.RandomPosition(fm.rng)
		if body.Contains(food) || (previous != nil && food == *previous) {
			continue
		}
		return food, true
	}

	fm.logger.Printf("[FoodManager] sampling exhausted after %d draws with %d free cells, scanning", fm.maxAttempts, free)
	return fm.scan(body, previous)
}

// scan walks the board in row-major order from a random start
func (fm *FoodManager) scan(body Occupancy, previous *types.Position) (types.Position, bool) {
	cells := fm.grid.Cells()
	start := fm.rng.Intn(cells)

	var fallback *types.Position
	for i := 0; i < cells; i++ {
		idx := (start + i) % cells
		p := types.Position{Row: idx / fm.grid.Size, Col: idx % fm.grid.Size}
		if body.Contains(p) {
			continue
		}
		if previous != nil && p == *previous {
			fallback = &p
			continue
		}
		return p, true
	}

	if fallback != nil {
		return *fallback, true
	}
	return types.Position{}, false
}
