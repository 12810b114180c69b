package manager

import (
	"sync"
	"time"
)

// MaxHistory bounds the number of finished rounds kept in memory
const MaxHistory = 200

// RoundRecord summarizes one finished round
type RoundRecord struct {
	ID       string
	Score    int
	Cause    CollisionType
	Ticks    uint64
	PlayTime time.Duration
	EndedAt  time.Time
}

// StateManager keeps session statistics across rounds, in memory only
type StateManager struct {
	mu        sync.RWMutex
	highScore int
	history   []RoundRecord
}

func NewStateManager() *StateManager {
	return &StateManager{
		history: make([]RoundRecord, 0),
	}
}

// RecordRound stores a finished round and updates the session best
func (sm *StateManager) RecordRound(rec RoundRecord) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if rec.Score > sm.highScore {
		sm.highScore = rec.Score
	}
	sm.history = append(sm.history, rec)
	if len(sm.history) > MaxHistory {
		sm.history = sm.history[len(sm.history)-MaxHistory:]
	}
}

func (sm *StateManager) GetHighScore() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.highScore
}

// GetHistory returns a copy of the retained rounds, oldest first
func (sm *StateManager) GetHistory() []RoundRecord {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]RoundRecord, len(sm.history))
	copy(out, sm.history)
	return out
}

// AverageScore returns the mean score over retained rounds, 0 when empty
func (sm *StateManager) AverageScore() float64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.history) == 0 {
		return 0
	}
	total := 0
	for _, r := range sm.history {
		total += r.Score
	}
	return float64(total) / float64(len(sm.history))
}
