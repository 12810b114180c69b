package game

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"
)

// DefaultHeading is the heading of a freshly spawned snake
const DefaultHeading = types.Right

// TickResult reports what one tick did
type TickResult struct {
	Moved bool
	Ate   bool
	Grew  bool
	Over  bool
	Cause manager.CollisionType
}

// Simulation composes grid, body and food into the rules of one round.
// It is not safe for concurrent use; the scheduler serializes all calls.
type Simulation struct {
	grid types.Grid
	body *entity.Body

	food    types.Position
	hasFood bool

	over    bool
	cause   manager.CollisionType
	ticks   uint64
	roundID string

	rng          types.Rand
	foodMgr      *manager.FoodManager
	collisionMgr *manager.CollisionManager
	logger       *log.Logger
}

// Option configures a Simulation
type Option func(*Simulation)

// WithRand sets the random source for spawns and food placement
func WithRand(rng types.Rand) Option {
	return func(s *Simulation) {
		s.rng = rng
	}
}

// WithSeed seeds a deterministic random source
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

func newSimulation(size int, opts []Option) *Simulation {
	grid := types.NewGrid(size)
	s := &Simulation{
		grid:         grid,
		collisionMgr: manager.NewCollisionManager(grid),
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	s.foodMgr = manager.NewFoodManager(grid, s.rng, s.logger)
	return s
}

// NewSimulation creates a running round on a size×size board
func NewSimulation(size int, opts ...Option) *Simulation {
	s := newSimulation(size, opts)
	s.Reset()
	return s
}

// NewSimulationFromState creates a running round with an explicit body
// (cells head to tail) and food cell. ok is false if the state is not legal.
func NewSimulationFromState(size int, cells []types.Position, heading types.Heading, food types.Position, opts ...Option) (*Simulation, bool) {
	s := newSimulation(size, opts)

	body, ok := entity.NewBodyFromPositions(cells, heading)
	if !ok {
		return nil, false
	}
	for _, c := range cells {
		if !s.grid.IsValid(c) {
			return nil, false
		}
	}
	if !s.grid.IsValid(food) || body.Contains(food) {
		return nil, false
	}

	s.body = body
	s.food = food
	s.hasFood = true
	s.roundID = uuid.NewString()
	return s, true
}

// Reset starts a new round: fresh single-segment body at a random cell,
// default heading and new food. Callable from any state.
func (s *Simulation) Reset() {
	s.body = entity.NewBody(s.grid.RandomPosition(s.rng), DefaultHeading)
	s.over = false
	s.cause = manager.NoCollision
	s.ticks = 0
	s.roundID = uuid.NewString()
	s.food, s.hasFood = s.foodMgr.Place(s.body, nil)
}

// Tick advances the round by one step
func (s *Simulation) Tick() TickResult {
	if s.over {
		return TickResult{Over: true, Cause: s.cause}
	}
	s.ticks++

	next := s.body.PeekNextHead()
	if c := s.collisionMgr.CheckMove(s.body, next); c != manager.NoCollision {
		s.over = true
		s.cause = c
		s.logger.Printf("[Simulation] round %s over: %s at %v, length %d", s.roundID, c, next, s.body.Len())
		return TickResult{Over: true, Cause: c}
	}

	s.body.Advance()
	res := TickResult{Moved: true}

	if s.hasFood && s.collisionMgr.IsFoodCollision(s.body.Head(), s.food) {
		res.Ate = true
		// Food moves before the tail grows; growth must not cover the new food
		prev := s.food
		s.food, s.hasFood = s.foodMgr.Place(s.body, &prev)
		if !s.hasFood {
			s.logger.Printf("[Simulation] round %s: no free cell for food", s.roundID)
		}

		res.Grew = s.body.GrowTail(s.grid, s.isFood)
		if !res.Grew {
			s.logger.Printf("[Simulation] round %s: no room to grow behind tail %v", s.roundID, s.body.Tail())
		}
	}

	return res
}

func (s *Simulation) isFood(pos types.Position) bool {
	return s.hasFood && pos == s.food
}

// SetHeading requests a new heading; reversals are ignored
func (s *Simulation) SetHeading(h types.Heading) bool {
	return s.body.SetHeading(h)
}

func (s *Simulation) Grid() types.Grid {
	return s.grid
}

// Body exposes the snake for read-only queries
func (s *Simulation) Body() *entity.Body {
	return s.body
}

// Food returns the food cell; ok is false when the board has no free cell
func (s *Simulation) Food() (types.Position, bool) {
	return s.food, s.hasFood
}

func (s *Simulation) Over() bool {
	return s.over
}

// Cause returns why the round ended, NoCollision while running
func (s *Simulation) Cause() manager.CollisionType {
	return s.cause
}

// Score is the body length
func (s *Simulation) Score() int {
	return s.body.Len()
}

func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

func (s *Simulation) RoundID() string {
	return s.roundID
}
