// Package state tracks the daemon's view of the current pipeline run
// with thread-safe access from HTTP handlers and the runner goroutine.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the coarse lifecycle of the daemon.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateError    State = "error"
	StateComplete State = "complete"
)

const maxLogs = 50

// LogEntry is one line in the status log ring buffer.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Status is the snapshot returned by GET /status.
type Status struct {
	State State      `json:"state"`
	Stage string     `json:"stage,omitempty"`
	RunID string     `json:"run_id,omitempty"`
	Logs  []LogEntry `json:"logs"`
	Error string     `json:"error,omitempty"`
}

// Manager holds the run state behind a mutex. It implements the
// runner's Reporter interface.
type Manager struct {
	mu      sync.RWMutex
	state   State
	stage   string
	runID   string
	logs    []LogEntry
	lastErr error
}

func NewManager() *Manager {
	return &Manager{state: StateIdle}
}

// Begin transitions to running and returns the new run id. It fails
// when a run is already active.
func (m *Manager) Begin() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateRunning {
		return "", false
	}
	m.state = StateRunning
	m.stage = ""
	m.runID = uuid.NewString()
	m.lastErr = nil
	m.appendLog("run started")
	return m.runID, true
}

// Complete marks the active run finished.
func (m *Manager) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateComplete
	m.appendLog("run complete")
}

// SetStage records the stage the runner just entered.
func (m *Manager) SetStage(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stage = stage
	m.appendLog("stage: " + stage)
}

// Log appends a formatted line to the ring buffer.
func (m *Manager) Log(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLog(fmt.Sprintf(format, args...))
}

// Fail records the error and moves to the error state.
func (m *Manager) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateError
	m.lastErr = err
	m.appendLog("error: " + err.Error())
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// RunID returns the active (or last) run id.
func (m *Manager) RunID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runID
}

// GetStatus returns a copy-safe snapshot.
func (m *Manager) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Status{
		State: m.state,
		Stage: m.stage,
		RunID: m.runID,
		Logs:  append([]LogEntry{}, m.logs...),
	}
	if m.lastErr != nil {
		s.Error = m.lastErr.Error()
	}
	return s
}

// appendLog must be called with the lock held.
func (m *Manager) appendLog(msg string) {
	m.logs = append(m.logs, LogEntry{Timestamp: time.Now(), Message: msg})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}
