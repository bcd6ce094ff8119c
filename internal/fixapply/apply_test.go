package fixapply

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/complior/engine/internal/models"
	"github.com/complior/engine/internal/undo"
)

func newTestApplier(t *testing.T, rescan Rescanner) (*Applier, string) {
	t.Helper()
	dir := t.TempDir()
	if rescan == nil {
		rescan = func() models.ScanResult { return models.ScanResult{} }
	}
	history := undo.New(dir, nil, undo.Rescanner(rescan))
	return New(dir, nil, history, rescan), dir
}

func TestApplyFixCreatesFileAndRecordsHistory(t *testing.T) {
	applier, dir := newTestApplier(t, func() models.ScanResult {
		return models.ScanResult{Score: models.ScoreBreakdown{TotalScore: 90}}
	})

	plan := models.FixPlan{
		CheckID: "check-1",
		FixType: models.FixTemplateGeneration,
		Actions: []models.FixAction{
			{Kind: models.ActionCreate, Path: "PRIVACY.md", Content: "# Privacy Policy\n"},
		},
	}

	result := applier.ApplyFix(context.Background(), plan, 50)

	if !result.Applied {
		t.Fatalf("expected fix to apply, got error: %s", result.Error)
	}
	if result.ScoreBefore != 50 || result.ScoreAfter != 90 {
		t.Errorf("expected scoreBefore=50 scoreAfter=90, got %v/%v", result.ScoreBefore, result.ScoreAfter)
	}

	data, err := os.ReadFile(filepath.Join(dir, "PRIVACY.md"))
	if err != nil {
		t.Fatalf("expected the created file to exist: %v", err)
	}
	if string(data) != "# Privacy Policy\n" {
		t.Errorf("unexpected file content: %q", data)
	}

	entries, err := undo.New(dir, nil, nil).Entries()
	if err != nil {
		t.Fatalf("unexpected error loading history: %v", err)
	}
	if len(entries) != 1 || entries[0].CheckID != "check-1" {
		t.Errorf("expected one history entry for check-1, got %+v", entries)
	}
}

func TestApplyFixBacksUpBeforeEditing(t *testing.T) {
	applier, dir := newTestApplier(t, nil)

	original := filepath.Join(dir, "README.md")
	if err := os.WriteFile(original, []byte("old content"), 0644); err != nil {
		t.Fatalf("failed to seed fixture file: %v", err)
	}

	plan := models.FixPlan{
		CheckID: "check-2",
		Actions: []models.FixAction{
			{Kind: models.ActionEdit, Path: "README.md", NewContent: "new content"},
		},
	}

	result := applier.ApplyFix(context.Background(), plan, 0)
	if !result.Applied {
		t.Fatalf("expected fix to apply, got error: %s", result.Error)
	}
	if len(result.BackupPaths) != 1 || result.BackupPaths[0] == "" {
		t.Fatalf("expected a backup path to be recorded, got %+v", result.BackupPaths)
	}

	backup, err := os.ReadFile(result.BackupPaths[0])
	if err != nil {
		t.Fatalf("expected backup file to exist: %v", err)
	}
	if string(backup) != "old content" {
		t.Errorf("expected backup to preserve the original content, got %q", backup)
	}

	current, err := os.ReadFile(original)
	if err != nil {
		t.Fatalf("unexpected error reading edited file: %v", err)
	}
	if string(current) != "new content" {
		t.Errorf("expected the file to hold the new content, got %q", current)
	}
}

func TestApplyAndValidateComparesFindingKinds(t *testing.T) {
	rescan := func() models.ScanResult {
		return models.ScanResult{
			Score: models.ScoreBreakdown{TotalScore: 95},
			Findings: []models.Finding{
				{CheckID: "check-3", Kind: models.CheckPass},
			},
		}
	}
	applier, _ := newTestApplier(t, rescan)

	before := models.ScanResult{
		Score: models.ScoreBreakdown{TotalScore: 60},
		Findings: []models.Finding{
			{CheckID: "check-3", Kind: models.CheckFail},
		},
	}
	plan := models.FixPlan{
		CheckID: "check-3",
		Actions: []models.FixAction{
			{Kind: models.ActionCreate, Path: "TERMS.md", Content: "terms"},
		},
	}

	result := applier.ApplyAndValidate(context.Background(), plan, before)

	if result.Validation == nil {
		t.Fatal("expected a validation record")
	}
	if result.Validation.Before != models.CheckFail {
		t.Errorf("expected before=fail, got %v", result.Validation.Before)
	}
	if result.Validation.After != models.CheckPass {
		t.Errorf("expected after=pass, got %v", result.Validation.After)
	}
	if result.Validation.ScoreDelta != 35 {
		t.Errorf("expected score delta 35, got %v", result.Validation.ScoreDelta)
	}
}

func TestApplyFixFailsClosedOnUnresolvableTemplate(t *testing.T) {
	applier, _ := newTestApplier(t, nil)

	plan := models.FixPlan{
		CheckID: "check-4",
		Actions: []models.FixAction{
			{Kind: models.ActionCreate, Path: "POLICY.md", Content: "[TEMPLATE:does-not-exist.tmpl]"},
		},
	}

	result := applier.ApplyFix(context.Background(), plan, 0)
	if result.Applied {
		t.Fatal("expected apply to fail for an unresolvable template reference")
	}
	if result.Error == "" {
		t.Error("expected a non-empty error message")
	}
}
