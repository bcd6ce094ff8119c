package models

import "time"

// FixActionKind discriminates create vs edit fix actions.
type FixActionKind string

const (
	ActionCreate FixActionKind = "create"
	ActionEdit   FixActionKind = "edit"
)

// FixAction is one file operation within a FixPlan. Path is project
// relative; Content may be a literal or a "[TEMPLATE:<file>]" placeholder
// resolved at apply time.
type FixAction struct {
	Kind        FixActionKind `json:"kind"`
	Path        string        `json:"path"`
	Content     string        `json:"content,omitempty"`
	OldContent  string        `json:"oldContent,omitempty"`
	NewContent  string        `json:"newContent,omitempty"`
}

// FixType enumerates the strategy families a FixPlan can come from.
type FixType string

const (
	FixCodeInjection     FixType = "code_injection"
	FixTemplateGeneration FixType = "template_generation"
	FixConfigFix         FixType = "config_fix"
	FixMetadataGeneration FixType = "metadata_generation"
)

// FixPlan is the output of the fix strategy registry for one failing
// finding.
type FixPlan struct {
	ObligationID  string      `json:"obligationId,omitempty"`
	CheckID       string      `json:"checkId"`
	Article       string      `json:"article,omitempty"`
	FixType       FixType     `json:"fixType"`
	Framework     string      `json:"framework,omitempty"`
	Actions       []FixAction `json:"actions"`
	Diff          string      `json:"diff"`
	ScoreImpact   int         `json:"scoreImpact"`
	CommitMessage string      `json:"commitMessage"`
	Description   string      `json:"description"`
}

// FixValidation compares a finding's CheckResultKind before and after a
// fix or undo operation.
type FixValidation struct {
	CheckID      string          `json:"checkId"`
	ObligationID string          `json:"obligationId,omitempty"`
	Article      string          `json:"article,omitempty"`
	Before       CheckResultKind `json:"before"`
	After        CheckResultKind `json:"after"`
	ScoreDelta   float64         `json:"scoreDelta"`
	TotalScore   float64         `json:"totalScore"`
}

// FixResult is the outcome of applying a FixPlan.
type FixResult struct {
	Plan        FixPlan  `json:"plan"`
	Applied     bool     `json:"applied"`
	ScoreBefore float64  `json:"scoreBefore"`
	ScoreAfter  float64  `json:"scoreAfter"`
	BackupPaths []string `json:"backupPaths"`
	Error       string   `json:"error,omitempty"`

	Validation *FixValidation `json:"validation,omitempty"`
}

// HistoryStatus is the lifecycle state of a HistoryEntry.
type HistoryStatus string

const (
	HistoryApplied HistoryStatus = "applied"
	HistoryUndone  HistoryStatus = "undone"
)

// HistoryFileEntry records one file touched by an applied fix, with enough
// information to reverse it.
type HistoryFileEntry struct {
	Path       string        `json:"path"`
	Action     FixActionKind `json:"action"`
	BackupPath string        `json:"backupPath,omitempty"`
}

// HistoryEntry is one row of the append-only undo log.
type HistoryEntry struct {
	ID           int64              `json:"id"`
	CheckID      string             `json:"checkId"`
	ObligationID string             `json:"obligationId,omitempty"`
	FixType      FixType            `json:"fixType"`
	Status       HistoryStatus      `json:"status"`
	Timestamp    time.Time          `json:"timestamp"`
	Files        []HistoryFileEntry `json:"files"`
	ScoreBefore  float64            `json:"scoreBefore"`
	ScoreAfter   float64            `json:"scoreAfter"`
}

// HistoryFile is the persisted, ordered list of HistoryEntry.
type HistoryFile struct {
	Entries []HistoryEntry `json:"entries"`
}
