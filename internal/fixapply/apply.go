// Package fixapply applies FixPlans to a project tree: it writes files
// atomically via temp-file-then-rename, backs up anything it overwrites,
// and records an undo-able HistoryEntry for every successful apply. It
// never rolls back partial changes on failure — backups are left in place
// for manual recovery, per the engine's failure semantics.
package fixapply

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/complior/engine/internal/catalogue"
	"github.com/complior/engine/internal/events"
	"github.com/complior/engine/internal/models"
	"github.com/complior/engine/internal/undo"
)

// Rescanner re-runs a full scan over the project and returns the fresh
// ScanResult, so Applier can compute scoreAfter without importing the
// scanner package directly (scanner already depends on layers/scoring;
// this keeps fixapply decoupled from the orchestrator's own wiring).
type Rescanner func() models.ScanResult

// Applier applies, validates, and (via Undo) reverses FixPlans.
type Applier struct {
	projectPath string
	bus         *events.Bus
	history     *undo.Manager
	rescan      Rescanner
}

func New(projectPath string, bus *events.Bus, history *undo.Manager, rescan Rescanner) *Applier {
	return &Applier{projectPath: projectPath, bus: bus, history: history, rescan: rescan}
}

const templatePrefix = "[TEMPLATE:"

// ApplyFix executes a FixPlan's actions in order, re-scans, and returns the
// outcome. lastScore is the score before this apply (0 if there has been
// no prior scan).
func (a *Applier) ApplyFix(ctx context.Context, plan models.FixPlan, lastScore float64) models.FixResult {
	result := models.FixResult{Plan: plan, ScoreBefore: lastScore}

	var fileEntries []models.HistoryFileEntry
	for _, action := range plan.Actions {
		target := filepath.Join(a.projectPath, filepath.FromSlash(action.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			result.Error = fmt.Sprintf("creating directory for %s: %v", action.Path, err)
			return result
		}

		var backupPath string
		if _, err := os.Stat(target); err == nil {
			bp, err := a.backup(target)
			if err != nil {
				result.Error = fmt.Sprintf("backing up %s: %v", action.Path, err)
				return result
			}
			backupPath = bp
		}

		content, err := resolveContent(action)
		if err != nil {
			result.Error = fmt.Sprintf("resolving content for %s: %v", action.Path, err)
			return result
		}

		if err := writeAtomic(target, content); err != nil {
			result.Error = fmt.Sprintf("writing %s: %v", action.Path, err)
			return result
		}

		fileEntries = append(fileEntries, models.HistoryFileEntry{
			Path:       action.Path,
			Action:     action.Kind,
			BackupPath: backupPath,
		})
		result.BackupPaths = append(result.BackupPaths, backupPath)

		if a.bus != nil {
			a.bus.Emit(ctx, events.FileChanged, "fixapply", map[string]string{"path": action.Path})
		}
	}

	fresh := a.rescan()
	result.ScoreAfter = fresh.Score.TotalScore
	result.Applied = true

	if a.bus != nil {
		a.bus.Emit(ctx, events.ScoreUpdated, "fixapply", map[string]float64{"score": result.ScoreAfter})
	}

	entry := models.HistoryEntry{
		CheckID:      plan.CheckID,
		ObligationID: plan.ObligationID,
		FixType:      plan.FixType,
		Status:       models.HistoryApplied,
		Timestamp:    time.Now().UTC(),
		Files:        fileEntries,
		ScoreBefore:  lastScore,
		ScoreAfter:   result.ScoreAfter,
	}
	a.history.Append(entry)

	return result
}

// ApplyAndValidate wraps ApplyFix and constructs a FixValidation comparing
// the finding's CheckResultKind before and after.
func (a *Applier) ApplyAndValidate(ctx context.Context, plan models.FixPlan, before models.ScanResult) models.FixResult {
	result := a.ApplyFix(ctx, plan, before.Score.TotalScore)
	if !result.Applied {
		return result
	}

	fresh := a.rescan()
	validation := &models.FixValidation{
		CheckID:      plan.CheckID,
		ObligationID: plan.ObligationID,
		Article:      plan.Article,
		Before:       findKind(before, plan.CheckID, plan.ObligationID),
		After:        findKind(fresh, plan.CheckID, plan.ObligationID),
		ScoreDelta:   fresh.Score.TotalScore - before.Score.TotalScore,
		TotalScore:   fresh.Score.TotalScore,
	}
	result.Validation = validation

	if a.bus != nil {
		a.bus.Emit(ctx, events.FixValidated, "fixapply", validation)
	}
	return result
}

func findKind(scan models.ScanResult, checkID, obligationID string) models.CheckResultKind {
	for _, f := range scan.Findings {
		if f.CheckID == checkID && (obligationID == "" || f.ObligationID == obligationID) {
			return f.Kind
		}
	}
	return models.CheckPass // no matching finding means the check no longer fails
}

func (a *Applier) backup(target string) (string, error) {
	content, err := os.ReadFile(target)
	if err != nil {
		return "", err
	}
	backupsDir := filepath.Join(a.projectPath, ".complior", "backups")
	if err := os.MkdirAll(backupsDir, 0755); err != nil {
		return "", err
	}
	flattened := strings.ReplaceAll(filepath.ToSlash(strings.TrimPrefix(target, a.projectPath+string(os.PathSeparator))), "/", "_")
	name := strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + flattened
	backupPath := filepath.Join(backupsDir, name)
	return backupPath, os.WriteFile(backupPath, content, 0644)
}

func resolveContent(action models.FixAction) (string, error) {
	content := action.Content
	if action.Kind == models.ActionEdit {
		content = action.NewContent
	}
	if strings.HasPrefix(content, templatePrefix) && strings.HasSuffix(content, "]") {
		templateFile := strings.TrimSuffix(strings.TrimPrefix(content, templatePrefix), "]")
		return catalogue.Template(templateFile)
	}
	return content, nil
}

func writeAtomic(target, content string) error {
	tmp := target + ".complior-tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
