package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock measures play time of the current round, excluding pauses
type PausableClock struct {
	mu sync.RWMutex

	provider  TimeProvider
	startTime time.Time // real time when the round started

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // real time when the current pause started
	totalPausedTime time.Duration // cumulative pause duration of this round
}

func NewPausableClock(provider TimeProvider) *PausableClock {
	return &PausableClock{
		provider:  provider,
		startTime: provider.Now(),
	}
}

// Elapsed returns play time since the last Reset, frozen while paused
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	end := pc.provider.Now()
	if pc.isPaused.Load() {
		end = pc.pauseStartTime
	}
	return end.Sub(pc.startTime) - pc.totalPausedTime
}

// Pause stops play time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.provider.Now()
	}
}

// Resume continues play time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
		pc.pauseStartTime = time.Time{}
	}
}

// Reset restarts play time from zero, keeping the pause state
func (pc *PausableClock) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.provider.Now()
	pc.startTime = now
	pc.totalPausedTime = 0
	if pc.isPaused.Load() {
		pc.pauseStartTime = now
	}
}

func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time of this round, including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() {
		total += pc.provider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
