package models

import "time"

// FileSnapshot is an immutable record of one source file collected during
// a scan.
type FileSnapshot struct {
	AbsPath string `json:"-"`
	Path    string `json:"path"` // project-relative
	Ext     string `json:"ext"`  // lowercased
	Content string `json:"-"`
}

// ScanContext is the aggregate the collector hands to the rule layers.
// Single-use; layers never mutate it.
type ScanContext struct {
	ProjectPath string         `json:"projectPath"`
	Files       []FileSnapshot `json:"-"`
}

// CheckResultKind discriminates the CheckResult tagged sum.
type CheckResultKind string

const (
	CheckPass CheckResultKind = "pass"
	CheckFail CheckResultKind = "fail"
	CheckSkip CheckResultKind = "skip"
)

// CheckResult is a tagged sum: pass/fail/skip, produced by a rule layer and
// consumed by scoring and finding construction. CheckID is stable across
// runs.
type CheckResult struct {
	Kind         CheckResultKind `json:"kind"`
	CheckID      string          `json:"checkId"`
	Message      string          `json:"message"`
	Severity     Severity        `json:"severity,omitempty"`
	ObligationID string          `json:"obligationId,omitempty"`
	Article      string          `json:"article,omitempty"`
	Fix          string          `json:"fix,omitempty"`
	File         string          `json:"file,omitempty"`
	Line         int             `json:"line,omitempty"`
	Reason       string          `json:"reason,omitempty"` // skip only
	Layer        string          `json:"layer"`            // L1..L4
}

// ConfidenceLevel is the categorical bucket a ConfidenceRecord falls into.
type ConfidenceLevel string

const (
	LevelPass        ConfidenceLevel = "PASS"
	LevelLikelyPass  ConfidenceLevel = "LIKELY_PASS"
	LevelUncertain   ConfidenceLevel = "UNCERTAIN"
	LevelLikelyFail  ConfidenceLevel = "LIKELY_FAIL"
	LevelFail        ConfidenceLevel = "FAIL"
)

// ConfidenceRecord pairs a non-skip CheckResult with a confidence score.
type ConfidenceRecord struct {
	Layer        string          `json:"layer"`
	Confidence   float64         `json:"confidence"`
	Level        ConfidenceLevel `json:"level"`
	ObligationID string          `json:"obligationId,omitempty"`
}

// Finding is the user-visible projection of a CheckResult plus its
// confidence.
type Finding struct {
	CheckID      string          `json:"checkId"`
	Kind         CheckResultKind `json:"kind"`
	Message      string          `json:"message"`
	Severity     Severity        `json:"severity,omitempty"`
	ObligationID string          `json:"obligationId,omitempty"`
	Article      string          `json:"article,omitempty"`
	Fix          string          `json:"fix,omitempty"`
	File         string          `json:"file,omitempty"`
	Line         int             `json:"line,omitempty"`
	Layer        string          `json:"layer"`
	Confidence   float64         `json:"confidence"`
	Level        ConfidenceLevel `json:"level"`
}

// CategoryScore is one row of a ScoreBreakdown.
type CategoryScore struct {
	Category     string  `json:"category"`
	Weight       float64 `json:"weight"`
	Score        float64 `json:"score"`
	ObligationCount int  `json:"obligationCount"`
	PassedCount  int     `json:"passedCount"`
}

// ConfidenceSummary counts findings per confidence level.
type ConfidenceSummary map[ConfidenceLevel]int

// ScoreBreakdown is the scoring engine's output.
type ScoreBreakdown struct {
	TotalScore         float64            `json:"totalScore"`
	Zone               string             `json:"zone"` // red|yellow|green
	CategoryScores     []CategoryScore    `json:"categoryScores"`
	CriticalCapApplied bool               `json:"criticalCapApplied"`
	TotalChecks        int                `json:"totalChecks"`
	PassedChecks       int                `json:"passedChecks"`
	FailedChecks       int                `json:"failedChecks"`
	SkippedChecks      int                `json:"skippedChecks"`
	ConfidenceSummary  ConfidenceSummary  `json:"confidenceSummary"`
}

// ScanResult is the immutable output of one scan.
type ScanResult struct {
	Score        ScoreBreakdown `json:"score"`
	Findings     []Finding      `json:"findings"`
	ProjectPath  string         `json:"projectPath"`
	ScannedAt    time.Time      `json:"scannedAt"`
	DurationMS   int64          `json:"duration"`
	FilesScanned int            `json:"filesScanned"`
}
