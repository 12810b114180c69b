package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"gridsnake/game"
	"gridsnake/game/manager"
	"gridsnake/game/types"
)

// Default timer periods
const (
	DefaultTickInterval  = 100 * time.Millisecond
	DefaultFrameInterval = 16600 * time.Microsecond
)

// commandBuffer bounds input commands waiting for the loop
const commandBuffer = 64

// Presenter receives a board snapshot on every presentation tick.
// It is called from the scheduler goroutine and must not call Stop.
type Presenter interface {
	Present(snap game.Snapshot)
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(snap game.Snapshot)

func (f PresenterFunc) Present(snap game.Snapshot) { f(snap) }

// Scheduler drives a Simulation with two independent timers: a logic tick
// that advances the round and a presentation tick that only reads it.
// All simulation access happens on the scheduler goroutine once started.
type Scheduler struct {
	sim       *game.Simulation
	presenter Presenter
	logger    *log.Logger

	tickInterval  time.Duration
	frameInterval time.Duration
	newTicker     TickerFactory

	clock    *PausableClock
	isPaused atomic.Bool

	// Tick counter for debugging and metrics
	tickCount atomic.Uint64

	onRoundEnd func(manager.RoundRecord)

	// Control
	commands chan func()
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithIntervals sets the logic and presentation periods
func WithIntervals(tick, frame time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.tickInterval = tick
		s.frameInterval = frame
	}
}

// WithTickerFactory replaces time.NewTicker, used by tests to drive ticks
func WithTickerFactory(f TickerFactory) SchedulerOption {
	return func(s *Scheduler) {
		s.newTicker = f
	}
}

// WithTimeProvider sets the time source of the play clock
func WithTimeProvider(tp TimeProvider) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = NewPausableClock(tp)
	}
}

// WithSchedulerLogger sets the diagnostics logger
func WithSchedulerLogger(logger *log.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithRoundEndHook registers fn to receive a record of every finished round
func WithRoundEndHook(fn func(manager.RoundRecord)) SchedulerOption {
	return func(s *Scheduler) {
		s.onRoundEnd = fn
	}
}

// NewScheduler creates a stopped scheduler for sim; presenter may be nil
func NewScheduler(sim *game.Simulation, presenter Presenter, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		sim:           sim,
		presenter:     presenter,
		logger:        log.Default(),
		tickInterval:  DefaultTickInterval,
		frameInterval: DefaultFrameInterval,
		newTicker:     NewRealTicker,
		commands:      make(chan func(), commandBuffer),
		stopChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewPausableClock(NewMonotonicTimeProvider())
	}
	return s
}

// Start launches the scheduler goroutine. Repeated calls and calls after Stop are no-ops.
func (s *Scheduler) Start() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	if s.running.CompareAndSwap(false, true) {
		s.clock.Reset()
		s.wg.Add(1)
		Go(s.loop)
		s.logger.Printf("[Scheduler] started: tick %v, frame %v", s.tickInterval, s.frameInterval)
	}
}

// Stop halts both timers and waits for the goroutine to exit; safe to call repeatedly.
// No presenter or hook callbacks happen after Stop returns.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Printf("[Scheduler] stopped after %d ticks", s.tickCount.Load())
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()
	defer s.running.Store(false)

	logic := s.newTicker(s.tickInterval)
	defer logic.Stop()
	frame := s.newTicker(s.frameInterval)
	defer frame.Stop()

	for {
		// Stop wins over any ready timer
		select {
		case <-s.stopChan:
			return
		default:
		}

		select {
		case <-s.stopChan:
			return
		case fn := <-s.commands:
			fn()
		case <-logic.C():
			// Input that arrived before this tick is applied first
			s.drainCommands()
			s.handleLogicTick()
		case <-frame.C():
			s.drainCommands()
			s.handleFrame()
		}
	}
}

func (s *Scheduler) drainCommands() {
	for {
		select {
		case fn := <-s.commands:
			fn()
		default:
			return
		}
	}
}

// exec runs fn on the scheduler goroutine, or inline when it is not running
func (s *Scheduler) exec(fn func()) {
	if !s.running.Load() {
		fn()
		return
	}
	select {
	case s.commands <- fn:
	case <-s.stopChan:
	}
}

// handleLogicTick runs one logic timer firing
func (s *Scheduler) handleLogicTick() {
	s.tickCount.Add(1)

	if s.isPaused.Load() {
		return
	}

	// Hold on game over so it can be acknowledged before a restart
	if s.sim.Over() {
		s.Pause()
		return
	}

	if res := s.sim.Tick(); res.Over {
		s.finishRound(res.Cause)
	}
}

func (s *Scheduler) finishRound(cause manager.CollisionType) {
	rec := manager.RoundRecord{
		ID:       s.sim.RoundID(),
		Score:    s.sim.Score(),
		Cause:    cause,
		Ticks:    s.sim.Ticks(),
		PlayTime: s.clock.Elapsed(),
		EndedAt:  time.Now(),
	}
	s.logger.Printf("[Scheduler] round %s finished: score %d, %s", rec.ID, rec.Score, rec.Cause)
	if s.onRoundEnd != nil {
		s.onRoundEnd(rec)
	}
}

// handleFrame pushes a snapshot to the presenter without touching the simulation
func (s *Scheduler) handleFrame() {
	if s.presenter == nil {
		return
	}
	s.presenter.Present(s.Snapshot())
}

// Snapshot returns the current board stamped with pause state and play time.
// Call it from the presenter or while the scheduler is not running.
func (s *Scheduler) Snapshot() game.Snapshot {
	snap := s.sim.Snapshot()
	snap.Paused = s.isPaused.Load()
	snap.PlayTime = s.clock.Elapsed()
	return snap
}

// Pause makes logic ticks no-ops; idempotent
func (s *Scheduler) Pause() {
	if s.isPaused.CompareAndSwap(false, true) {
		s.clock.Pause()
	}
}

// Resume re-enables logic ticks; idempotent
func (s *Scheduler) Resume() {
	if s.isPaused.CompareAndSwap(true, false) {
		s.clock.Resume()
	}
}

func (s *Scheduler) IsPaused() bool {
	return s.isPaused.Load()
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

// Ticks returns how many times the logic timer fired
func (s *Scheduler) Ticks() uint64 {
	return s.tickCount.Load()
}

// SetHeading applies a heading request before the next logic tick.
// Reversals are dropped by the body; accepted while paused.
func (s *Scheduler) SetHeading(h types.Heading) {
	s.exec(func() {
		s.sim.SetHeading(h)
	})
}

// TogglePause flips the pause state. After game over, once paused,
// it starts a new round instead.
func (s *Scheduler) TogglePause() {
	s.exec(func() {
		switch {
		case s.isPaused.Load() && s.sim.Over():
			s.restart()
		case s.isPaused.Load():
			s.Resume()
		default:
			s.Pause()
		}
	})
}

// Restart begins a new round from any state and resumes
func (s *Scheduler) Restart() {
	s.exec(s.restart)
}

func (s *Scheduler) restart() {
	s.sim.Reset()
	s.clock.Reset()
	s.Resume()
	s.logger.Printf("[Scheduler] round %s started", s.sim.RoundID())
}
