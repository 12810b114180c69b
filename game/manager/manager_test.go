package manager

import (
	"io"
	"log"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"gridsnake/game/types"
)

// cellSet is a minimal Mover backed by a map
type cellSet struct {
	cells map[types.Position]bool
	tail  types.Position
}

func newCellSet(cells ...types.Position) *cellSet {
	s := &cellSet{cells: make(map[types.Position]bool)}
	for _, c := range cells {
		s.cells[c] = true
	}
	if len(cells) > 0 {
		s.tail = cells[len(cells)-1]
	}
	return s
}

func (s *cellSet) Contains(p types.Position) bool { return s.cells[p] }
func (s *cellSet) Len() int                       { return len(s.cells) }
func (s *cellSet) Tail() types.Position           { return s.tail }

// zeroRand always samples the origin
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// allBut returns every cell of grid except the given ones
func allBut(grid types.Grid, except ...types.Position) *cellSet {
	skip := make(map[types.Position]bool)
	for _, e := range except {
		skip[e] = true
	}
	s := newCellSet()
	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			p := types.Position{Row: r, Col: c}
			if !skip[p] {
				s.cells[p] = true
			}
		}
	}
	return s
}

func TestPlaceAvoidsBodyAndPrevious(t *testing.T) {
	grid := types.NewGrid(5)
	fm := NewFoodManager(grid, rand.New(rand.NewSource(1)), quietLogger())
	body := newCellSet(types.Position{Row: 2, Col: 2}, types.Position{Row: 2, Col: 1})
	prev := types.Position{Row: 0, Col: 0}

	for i := 0; i < 500; i++ {
		food, ok := fm.Place(body, &prev)
		if !ok {
			t.Fatal("Place failed on an open board")
		}
		if !grid.IsValid(food) {
			t.Fatalf("food %v off board", food)
		}
		if body.Contains(food) {
			t.Fatalf("food %v placed on body", food)
		}
		if food == prev {
			t.Fatalf("food re-placed on previous cell %v", prev)
		}
	}
}

func TestPlaceOneFreeCellTerminates(t *testing.T) {
	grid := types.NewGrid(3)
	free := types.Position{Row: 2, Col: 2}
	body := allBut(grid, free)

	tests := []struct {
		name string
		rng  types.Rand
	}{
		{"random", rand.New(rand.NewSource(99))},
		{"stuck sampler", zeroRand{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := NewFoodManager(grid, tt.rng, quietLogger())
			food, ok := fm.Place(body, nil)
			if !ok || food != free {
				t.Errorf("Place() = %v, %v; want %v, true", food, ok, free)
			}
		})
	}
}

func TestPlaceFallsBackToPreviousWhenOnlyFreeCell(t *testing.T) {
	grid := types.NewGrid(2)
	only := types.Position{Row: 1, Col: 1}
	body := allBut(grid, only)
	fm := NewFoodManager(grid, zeroRand{}, quietLogger())

	food, ok := fm.Place(body, &only)
	if !ok || food != only {
		t.Errorf("Place() = %v, %v; want %v, true", food, ok, only)
	}
}

func TestPlaceFullBoard(t *testing.T) {
	grid := types.NewGrid(2)
	fm := NewFoodManager(grid, zeroRand{}, quietLogger())

	if _, ok := fm.Place(allBut(grid), nil); ok {
		t.Error("Place succeeded on a full board")
	}
}

func TestCheckMove(t *testing.T) {
	grid := types.NewGrid(3)
	cm := NewCollisionManager(grid)
	p := func(r, c int) types.Position { return types.Position{Row: r, Col: c} }

	long := newCellSet(p(1, 1), p(1, 2), p(2, 2), p(2, 1))
	single := newCellSet(p(1, 1))

	tests := []struct {
		name string
		body Mover
		next types.Position
		want CollisionType
	}{
		{"open cell", long, p(0, 1), NoCollision},
		{"off top", long, p(-1, 1), WallCollision},
		{"off right", long, p(1, 3), WallCollision},
		{"neck", long, p(1, 2), SelfCollision},
		{"vacating tail", long, p(2, 1), NoCollision},
		{"single segment self", single, p(1, 1), SelfCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cm.CheckMove(tt.body, tt.next); got != tt.want {
				t.Errorf("CheckMove(%v) = %v, want %v", tt.next, got, tt.want)
			}
		})
	}
}

func TestStateManagerRecordsRounds(t *testing.T) {
	sm := NewStateManager()

	sm.RecordRound(RoundRecord{ID: "a", Score: 3, Cause: WallCollision, EndedAt: time.Now()})
	sm.RecordRound(RoundRecord{ID: "b", Score: 7, Cause: SelfCollision, EndedAt: time.Now()})
	sm.RecordRound(RoundRecord{ID: "c", Score: 2, Cause: WallCollision, EndedAt: time.Now()})

	if got := sm.GetHighScore(); got != 7 {
		t.Errorf("GetHighScore() = %d, want 7", got)
	}
	if got := sm.AverageScore(); got != 4 {
		t.Errorf("AverageScore() = %v, want 4", got)
	}

	hist := sm.GetHistory()
	if len(hist) != 3 || hist[0].ID != "a" || hist[2].ID != "c" {
		t.Errorf("GetHistory() = %+v", hist)
	}

	hist[0].Score = 100
	if sm.GetHistory()[0].Score != 3 {
		t.Error("GetHistory exposed internal storage")
	}
}

func TestStateManagerBoundsHistory(t *testing.T) {
	sm := NewStateManager()
	for i := 0; i < MaxHistory+10; i++ {
		sm.RecordRound(RoundRecord{Score: i})
	}

	hist := sm.GetHistory()
	if len(hist) != MaxHistory {
		t.Fatalf("len(history) = %d, want %d", len(hist), MaxHistory)
	}
	if hist[0].Score != 10 {
		t.Errorf("oldest retained score = %d, want 10", hist[0].Score)
	}
}
