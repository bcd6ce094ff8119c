package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/complior/engine/internal/models"
)

func renderJSONReport(result models.ScanResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func renderMarkdownReport(result models.ScanResult, opts ReportOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Compliance Report\n\n")
	if opts.Organization != "" {
		fmt.Fprintf(&b, "**Organization:** %s\n\n", opts.Organization)
	}
	if opts.Jurisdiction != "" {
		fmt.Fprintf(&b, "**Jurisdiction:** %s\n\n", opts.Jurisdiction)
	}
	fmt.Fprintf(&b, "**Project:** %s\n\n", result.ProjectPath)
	fmt.Fprintf(&b, "**Scanned at:** %s\n\n", result.ScannedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(&b, "## Score: %.2f (%s)\n\n", result.Score.TotalScore, result.Score.Zone)
	if result.Score.CriticalCapApplied {
		b.WriteString("> A prohibited-practice or critical obligation failure capped this score.\n\n")
	}

	fmt.Fprintf(&b, "| Checks | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total | %d |\n", result.Score.TotalChecks)
	fmt.Fprintf(&b, "| Passed | %d |\n", result.Score.PassedChecks)
	fmt.Fprintf(&b, "| Failed | %d |\n", result.Score.FailedChecks)
	fmt.Fprintf(&b, "| Skipped | %d |\n\n", result.Score.SkippedChecks)

	b.WriteString("## Category Scores\n\n")
	b.WriteString("| Category | Weight | Score | Passed/Total |\n|---|---|---|---|\n")
	for _, c := range result.Score.CategoryScores {
		fmt.Fprintf(&b, "| %s | %.0f | %.2f | %d/%d |\n", c.Category, c.Weight, c.Score, c.PassedCount, c.ObligationCount)
	}

	b.WriteString("\n## Findings\n\n")
	for _, f := range result.Findings {
		if f.Kind != models.CheckFail {
			continue
		}
		fmt.Fprintf(&b, "- **[%s]** %s", f.Severity, f.Message)
		if f.File != "" {
			fmt.Fprintf(&b, " (`%s`", f.File)
			if f.Line > 0 {
				fmt.Fprintf(&b, ":%d", f.Line)
			}
			b.WriteString(")")
		}
		if f.Article != "" {
			fmt.Fprintf(&b, " — %s", f.Article)
		}
		b.WriteString("\n")
	}

	return b.String()
}
