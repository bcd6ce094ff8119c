package layers

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/complior/engine/internal/models"
)

var headingRe = regexp.MustCompile(`(?m)^(#{1,4})\s+(.+)$`)
var normalizeWS = regexp.MustCompile(`[\s_\-]+`)

func normalizeHeading(title string) string {
	return strings.TrimSpace(normalizeWS.ReplaceAllString(strings.ToLower(title), " "))
}

// DocStatus is the L2 structural verdict for a matched document.
type DocStatus string

const (
	DocValid   DocStatus = "VALID"
	DocPartial DocStatus = "PARTIAL"
	DocEmpty   DocStatus = "EMPTY"
)

// RunL2 evaluates every document validator against the scan context. A
// validator with no matching file is silently skipped — L1 is the
// presence authority, L2 only judges structure once a file exists.
func RunL2(ctx *models.ScanContext, validators []models.DocumentValidator) []models.CheckResult {
	var results []models.CheckResult
	for _, v := range validators {
		file, content, found := findDocument(ctx, v.FilenamePatterns)
		if !found {
			continue
		}

		checkID := "doc-structure-" + v.ObligationID
		trimmed := strings.TrimSpace(content)
		headings := headingRe.FindAllStringSubmatch(content, -1)

		if trimmed == "" || len(headings) == 0 {
			results = append(results, models.CheckResult{
				Kind:         models.CheckFail,
				CheckID:      checkID,
				Message:      "document " + file + " is empty",
				Severity:     models.SeverityHigh,
				ObligationID: v.ObligationID,
				File:         file,
				Layer:        "L2",
			})
			continue
		}

		normalizedHeadings := make([]string, 0, len(headings))
		for _, h := range headings {
			normalizedHeadings = append(normalizedHeadings, normalizeHeading(h[2]))
		}

		var required, matched int
		for _, sec := range v.Sections {
			if !sec.Required {
				continue
			}
			required++
			needle := normalizeHeading(sec.Title)
			for _, h := range normalizedHeadings {
				if strings.Contains(h, needle) {
					matched++
					break
				}
			}
		}

		switch {
		case required == 0 || matched == required:
			results = append(results, models.CheckResult{
				Kind:         models.CheckPass,
				CheckID:      checkID,
				Message:      "document " + file + " contains all required sections",
				ObligationID: v.ObligationID,
				File:         file,
				Layer:        "L2",
			})
		case matched > 0:
			results = append(results, models.CheckResult{
				Kind:         models.CheckFail,
				CheckID:      checkID,
				Message:      "document " + file + " is missing some required sections",
				Severity:     models.SeverityMedium,
				ObligationID: v.ObligationID,
				File:         file,
				Layer:        "L2",
			})
		default:
			results = append(results, models.CheckResult{
				Kind:         models.CheckFail,
				CheckID:      checkID,
				Message:      "document " + file + " is missing all required sections",
				Severity:     models.SeverityHigh,
				ObligationID: v.ObligationID,
				File:         file,
				Layer:        "L2",
			})
		}
	}
	return results
}

func findDocument(ctx *models.ScanContext, patterns []string) (path, content string, found bool) {
	for _, f := range ctx.Files {
		base := strings.ToLower(filepath.Base(f.Path))
		for _, p := range patterns {
			if base == strings.ToLower(p) {
				return f.Path, f.Content, true
			}
		}
	}
	return "", "", false
}
