// Package service implements the thin, stateless façades the transport
// layer calls into. Every façade shares one ApplicationState; none
// contains compliance logic of its own — that lives in catalogue,
// layers, confidence, scoring, scanner, fixplan, fixapply, and undo.
package service

import (
	"sync"
	"time"

	"github.com/complior/engine/internal/models"
)

// ApplicationState is the engine's single mutable piece of shared state.
// Requests are handled one at a time (§5 concurrency model), so the mutex
// here only guards against the rare case of a concurrent background
// re-scan racing a request; it is not a general-purpose lock.
type ApplicationState struct {
	mu sync.RWMutex

	ProjectPath string
	Mode        string
	StartedAt   time.Time
	LastScan    *models.ScanResult
}

func NewApplicationState(projectPath string) *ApplicationState {
	return &ApplicationState{
		ProjectPath: projectPath,
		Mode:        "scan",
		StartedAt:   time.Now().UTC(),
	}
}

func (s *ApplicationState) SetLastScan(result models.ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastScan = &result
}

func (s *ApplicationState) GetLastScan() (models.ScanResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastScan == nil {
		return models.ScanResult{}, false
	}
	return *s.LastScan, true
}

func (s *ApplicationState) SetMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Mode = mode
}

func (s *ApplicationState) GetMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Mode
}

func (s *ApplicationState) Uptime() time.Duration {
	return time.Since(s.StartedAt)
}
