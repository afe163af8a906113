package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MaxHistory caps the number of finished sessions kept in the stats file.
const MaxHistory = 50

// SessionRecord describes one finished session.
type SessionRecord struct {
	UUID      string    `json:"uuid"`
	Score     int       `json:"score"`
	Cause     string    `json:"cause"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type GameStats struct {
	HighScore int             `json:"highScore"`
	History   []SessionRecord `json:"history"`
}

// StateManager persists the high score and the session history as JSON.
type StateManager struct {
	mu    sync.Mutex
	path  string
	stats GameStats
}

// NewStateManager loads path if it exists; a missing file starts from zero.
func NewStateManager(path string) (*StateManager, error) {
	sm := &StateManager{
		path:  path,
		stats: GameStats{History: make([]SessionRecord, 0)},
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if err := sm.LoadStats(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return sm, nil
}

func (sm *StateManager) LoadStats() error {
	data, err := os.ReadFile(sm.path)
	if err != nil {
		return err
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("failed to parse stats file %s: %w", sm.path, err)
	}
	if stats.HighScore < 0 {
		stats.HighScore = 0
	}

	sm.mu.Lock()
	sm.stats = stats
	sm.mu.Unlock()
	return nil
}

// saveLocked writes the stats file; sm.mu must be held.
func (sm *StateManager) saveLocked() error {
	data, err := json.MarshalIndent(sm.stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tmp := sm.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := os.Rename(tmp, sm.path); err != nil {
		return fmt.Errorf("failed to replace stats file: %w", err)
	}
	return nil
}

func (sm *StateManager) HighScore() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.stats.HighScore
}

// SetHighScore stores score if it beats the saved one; lower values are ignored.
func (sm *StateManager) SetHighScore(score int) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if score <= sm.stats.HighScore {
		return nil
	}
	sm.stats.HighScore = score
	return sm.saveLocked()
}

// RecordSession appends r to the history, dropping the oldest entries past MaxHistory.
func (sm *StateManager) RecordSession(r SessionRecord) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stats.History = append(sm.stats.History, r)
	if over := len(sm.stats.History) - MaxHistory; over > 0 {
		sm.stats.History = sm.stats.History[over:]
	}
	return sm.saveLocked()
}

func (sm *StateManager) GetHistory() []SessionRecord {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	history := make([]SessionRecord, len(sm.stats.History))
	copy(history, sm.stats.History)
	return history
}
