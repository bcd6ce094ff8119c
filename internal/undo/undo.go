// Package undo persists the fix history log and reverses applied fixes.
// History lives at <projectPath>/.complior/history.json as an append-only
// list; Manager rewrites the whole file on every mutation since the log is
// expected to stay small relative to a project's source tree.
package undo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/complior/engine/internal/events"
	"github.com/complior/engine/internal/models"
)

const historyRelPath = ".complior/history.json"

// findKind looks up the actual result of a check in a scan, defaulting to
// CheckPass when no matching finding exists (the check no longer fails).
func findKind(scan models.ScanResult, checkID, obligationID string) models.CheckResultKind {
	for _, f := range scan.Findings {
		if f.CheckID == checkID && (obligationID == "" || f.ObligationID == obligationID) {
			return f.Kind
		}
	}
	return models.CheckPass
}

// Rescanner re-runs a full scan, mirroring fixapply.Rescanner so Manager
// doesn't need to import the scanner package.
type Rescanner func() models.ScanResult

// Manager owns the history log for one project.
type Manager struct {
	mu          sync.Mutex
	projectPath string
	bus         *events.Bus
	rescan      Rescanner
}

func New(projectPath string, bus *events.Bus, rescan Rescanner) *Manager {
	return &Manager{projectPath: projectPath, bus: bus, rescan: rescan}
}

func (m *Manager) path() string {
	return filepath.Join(m.projectPath, filepath.FromSlash(historyRelPath))
}

func (m *Manager) load() (models.HistoryFile, error) {
	var hf models.HistoryFile
	data, err := os.ReadFile(m.path())
	if os.IsNotExist(err) {
		return hf, nil
	}
	if err != nil {
		return hf, err
	}
	if err := json.Unmarshal(data, &hf); err != nil {
		return hf, err
	}
	return hf, nil
}

func (m *Manager) save(hf models.HistoryFile) error {
	if err := os.MkdirAll(filepath.Dir(m.path()), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(hf, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path())
}

// Append assigns the next monotonic id and persists a new HistoryEntry.
func (m *Manager) Append(entry models.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	hf, err := m.load()
	if err != nil {
		return err
	}
	var maxID int64
	for _, e := range hf.Entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	entry.ID = maxID + 1
	hf.Entries = append(hf.Entries, entry)
	return m.save(hf)
}

// Entries returns the full history, most recent last.
func (m *Manager) Entries() ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hf, err := m.load()
	if err != nil {
		return nil, err
	}
	return hf.Entries, nil
}

// UndoLast reverses the most recently applied (non-undone) entry.
func (m *Manager) UndoLast(ctx context.Context) (models.FixResult, error) {
	m.mu.Lock()
	hf, err := m.load()
	m.mu.Unlock()
	if err != nil {
		return models.FixResult{}, err
	}

	var target *models.HistoryEntry
	sorted := append([]models.HistoryEntry{}, hf.Entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	for i := range sorted {
		if sorted[i].Status == models.HistoryApplied {
			target = &sorted[i]
			break
		}
	}
	if target == nil {
		return models.FixResult{}, fmt.Errorf("no applied fix to undo")
	}
	return m.UndoByID(ctx, target.ID)
}

// UndoByID reverses a specific entry by id. Already-undone entries return
// an error rather than being silently skipped.
func (m *Manager) UndoByID(ctx context.Context, id int64) (models.FixResult, error) {
	m.mu.Lock()
	hf, err := m.load()
	if err != nil {
		m.mu.Unlock()
		return models.FixResult{}, err
	}

	idx := -1
	for i, e := range hf.Entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.mu.Unlock()
		return models.FixResult{}, fmt.Errorf("history entry %d not found", id)
	}
	entry := hf.Entries[idx]
	m.mu.Unlock()

	if entry.Status == models.HistoryUndone {
		return models.FixResult{}, fmt.Errorf("history entry %d already undone", id)
	}

	before := m.rescan()

	scoreBefore := entry.ScoreAfter
	for i := len(entry.Files) - 1; i >= 0; i-- {
		file := entry.Files[i]
		target := filepath.Join(m.projectPath, filepath.FromSlash(file.Path))
		switch file.Action {
		case models.ActionCreate:
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				return models.FixResult{}, fmt.Errorf("undoing create of %s: %w", file.Path, err)
			}
		case models.ActionEdit:
			if file.BackupPath == "" {
				return models.FixResult{}, fmt.Errorf("undoing edit of %s: no backup recorded", file.Path)
			}
			content, err := os.ReadFile(file.BackupPath)
			if err != nil {
				return models.FixResult{}, fmt.Errorf("reading backup for %s: %w", file.Path, err)
			}
			tmp := target + ".complior-tmp"
			if err := os.WriteFile(tmp, content, 0644); err != nil {
				return models.FixResult{}, fmt.Errorf("restoring %s: %w", file.Path, err)
			}
			if err := os.Rename(tmp, target); err != nil {
				return models.FixResult{}, fmt.Errorf("restoring %s: %w", file.Path, err)
			}
		}
		if m.bus != nil {
			m.bus.Emit(ctx, events.FileChanged, "undo", map[string]string{"path": file.Path})
		}
	}

	fresh := m.rescan()

	m.mu.Lock()
	hf, err = m.load()
	if err != nil {
		m.mu.Unlock()
		return models.FixResult{}, err
	}
	for i := range hf.Entries {
		if hf.Entries[i].ID == id {
			hf.Entries[i].Status = models.HistoryUndone
		}
	}
	saveErr := m.save(hf)
	m.mu.Unlock()
	if saveErr != nil {
		return models.FixResult{}, saveErr
	}

	validation := &models.FixValidation{
		CheckID:      entry.CheckID,
		ObligationID: entry.ObligationID,
		Before:       findKind(before, entry.CheckID, entry.ObligationID),
		After:        findKind(fresh, entry.CheckID, entry.ObligationID),
		ScoreDelta:   fresh.Score.TotalScore - scoreBefore,
		TotalScore:   fresh.Score.TotalScore,
	}
	if m.bus != nil {
		m.bus.Emit(ctx, events.FixUndone, "undo", validation)
	}

	return models.FixResult{
		Plan:        models.FixPlan{CheckID: entry.CheckID, ObligationID: entry.ObligationID, FixType: entry.FixType},
		Applied:     true,
		ScoreBefore: scoreBefore,
		ScoreAfter:  fresh.Score.TotalScore,
		Validation:  validation,
	}, nil
}
