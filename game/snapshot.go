package game

import (
	"time"

	"gridsnake/game/manager"
	"gridsnake/game/types"
)

// CellState is what a presenter draws in one cell
type CellState uint8

const (
	CellEmpty CellState = iota
	CellFood
	CellBody
	CellHead
)

func (c CellState) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellFood:
		return "food"
	case CellBody:
		return "snake-body"
	case CellHead:
		return "snake-head"
	}
	return "unknown"
}

// Snapshot is a self-contained copy of the board for presentation.
// Nothing in it aliases simulation state.
type Snapshot struct {
	Size  int
	Cells []CellState // row-major, Size*Size

	Body    []types.Position // head to tail
	Heading types.Heading
	Food    types.Position
	HasFood bool

	Score   int
	Over    bool
	Cause   manager.CollisionType
	Tick    uint64
	RoundID string

	// Stamped by the scheduler
	Paused   bool
	PlayTime time.Duration
}

// At returns the state of pos, CellEmpty when off the board
func (s Snapshot) At(pos types.Position) CellState {
	if pos.Row < 0 || pos.Row >= s.Size || pos.Col < 0 || pos.Col >= s.Size {
		return CellEmpty
	}
	return s.Cells[pos.Row*s.Size+pos.Col]
}

// Head returns the head cell
func (s Snapshot) Head() types.Position {
	return s.Body[0]
}

// Snapshot copies the current round state
func (s *Simulation) Snapshot() Snapshot {
	size := s.grid.Size
	snap := Snapshot{
		Size:    size,
		Cells:   make([]CellState, size*size),
		Body:    s.body.Positions(),
		Heading: s.body.Heading(),
		Food:    s.food,
		HasFood: s.hasFood,
		Score:   s.body.Len(),
		Over:    s.over,
		Cause:   s.cause,
		Tick:    s.ticks,
		RoundID: s.roundID,
	}

	if s.hasFood {
		snap.Cells[s.food.Row*size+s.food.Col] = CellFood
	}
	for i, p := range snap.Body {
		state := CellBody
		if i == 0 {
			state = CellHead
		}
		snap.Cells[p.Row*size+p.Col] = state
	}
	return snap
}
