// Package scanner is the scan orchestrator: it runs the four rule layers
// in strict order, zips their CheckResults with confidence records into
// Findings, and computes the final ScoreBreakdown. It never reads files
// itself — that is the collector's job — so the same ScanContext always
// produces the same ScanResult modulo timing.
package scanner

import (
	"time"

	"github.com/complior/engine/internal/confidence"
	"github.com/complior/engine/internal/layers"
	"github.com/complior/engine/internal/models"
	"github.com/complior/engine/internal/scoring"
)

// Scanner runs layers L1-L4 over a ScanContext and scores the result.
type Scanner struct {
	catalogue *models.Catalogue
}

func New(catalogue *models.Catalogue) *Scanner {
	return &Scanner{catalogue: catalogue}
}

// Scan is the scanner orchestrator's sole contract: scan(ctx) -> ScanResult.
func (s *Scanner) Scan(ctx *models.ScanContext) models.ScanResult {
	start := time.Now()

	var allChecks []models.CheckResult
	allChecks = append(allChecks, layers.RunL1(ctx)...)
	allChecks = append(allChecks, layers.RunL2(ctx, s.catalogue.DocumentValidators)...)

	l3Checks, l3Result := layers.RunL3(ctx, s.catalogue)
	allChecks = append(allChecks, l3Checks...)
	allChecks = append(allChecks, layers.RunL4(ctx, s.catalogue.PatternRules, l3Result)...)

	findings := make([]models.Finding, 0, len(allChecks))
	summary := models.ConfidenceSummary{}

	for _, c := range allChecks {
		if c.Kind == models.CheckSkip {
			continue
		}
		rec := confidence.For(c)
		f := models.Finding{
			CheckID:      c.CheckID,
			Kind:         c.Kind,
			Message:      c.Message,
			Severity:     c.Severity,
			ObligationID: c.ObligationID,
			Article:      c.Article,
			Fix:          c.Fix,
			File:         c.File,
			Line:         c.Line,
			Layer:        c.Layer,
		}
		if rec != nil {
			f.Confidence = rec.Confidence
			f.Level = rec.Level
			summary[rec.Level]++
		}
		findings = append(findings, f)
	}

	breakdown := scoring.Compute(allChecks, s.catalogue.Scoring, s.catalogue.CheckIDCategoryMap)
	breakdown.ConfidenceSummary = summary

	return models.ScanResult{
		Score:        breakdown,
		Findings:     findings,
		ProjectPath:  ctx.ProjectPath,
		ScannedAt:    time.Now().UTC(),
		DurationMS:   time.Since(start).Milliseconds(),
		FilesScanned: len(ctx.Files),
	}
}
