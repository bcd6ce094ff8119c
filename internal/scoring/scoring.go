// Package scoring computes a ScoreBreakdown from a scan's CheckResults. It
// is pure: it never reads files and never mutates its inputs.
package scoring

import (
	"math"

	"github.com/complior/engine/internal/models"
)

const criticalCap = 40.0

// Compute implements the scoring procedure: category aggregation,
// renormalization over active categories, the critical-obligation cap,
// and zone assignment.
func Compute(checks []models.CheckResult, scoring models.ScoringData, checkCategoryMap map[string]string) models.ScoreBreakdown {
	total := len(checks)
	var passed, failed, skipped int
	for _, c := range checks {
		switch c.Kind {
		case models.CheckPass:
			passed++
		case models.CheckFail:
			failed++
		case models.CheckSkip:
			skipped++
		}
	}

	if total == 0 || passed+failed == 0 {
		return models.ScoreBreakdown{
			TotalScore:    100,
			Zone:          "green",
			TotalChecks:   total,
			PassedChecks:  passed,
			FailedChecks:  failed,
			SkippedChecks: skipped,
		}
	}

	categoryByObligation := map[string]string{}
	for _, cat := range scoring.Categories {
		for _, obID := range cat.ObligationsInCategory {
			categoryByObligation[obID] = cat.Name
		}
	}

	type tally struct {
		passed, failed int
	}
	tallies := map[string]*tally{}

	for _, c := range checks {
		if c.Kind == models.CheckSkip {
			continue
		}
		category := resolveCategory(c, categoryByObligation, checkCategoryMap)
		if category == "" {
			continue
		}
		t, ok := tallies[category]
		if !ok {
			t = &tally{}
			tallies[category] = t
		}
		if c.Kind == models.CheckPass {
			t.passed++
		} else {
			t.failed++
		}
	}

	var categoryScores []models.CategoryScore
	var weightedSum, activeWeight float64
	for _, cat := range scoring.Categories {
		t, ok := tallies[cat.Name]
		if !ok || (t.passed+t.failed) == 0 {
			continue
		}
		score := float64(t.passed) / float64(t.passed+t.failed) * 100
		categoryScores = append(categoryScores, models.CategoryScore{
			Category:        cat.Name,
			Weight:          cat.Weight,
			Score:           round2(score),
			ObligationCount: t.passed + t.failed,
			PassedCount:     t.passed,
		})
		weightedSum += score * cat.Weight
		activeWeight += cat.Weight
	}

	var rawScore float64
	if activeWeight > 0 {
		rawScore = weightedSum / activeWeight
	} else {
		rawScore = 100
	}

	criticalObligations := toSet(scoring.CriticalObligationIDs)
	criticalChecks := toSet(scoring.CriticalCheckIDs)
	capApplied := false
	for _, c := range checks {
		if c.Kind != models.CheckFail {
			continue
		}
		if criticalObligations[c.ObligationID] || criticalChecks[c.CheckID] {
			capApplied = true
			break
		}
	}

	finalScore := rawScore
	if capApplied && finalScore > criticalCap {
		finalScore = criticalCap
	}
	finalScore = round2(finalScore)

	return models.ScoreBreakdown{
		TotalScore:         finalScore,
		Zone:               zoneFor(finalScore),
		CategoryScores:     categoryScores,
		CriticalCapApplied: capApplied,
		TotalChecks:        total,
		PassedChecks:       passed,
		FailedChecks:       failed,
		SkippedChecks:      skipped,
	}
}

func resolveCategory(c models.CheckResult, categoryByObligation, checkCategoryMap map[string]string) string {
	if c.ObligationID != "" {
		if cat, ok := categoryByObligation[c.ObligationID]; ok {
			return cat
		}
	}
	if cat, ok := checkCategoryMap[c.CheckID]; ok {
		return cat
	}
	return ""
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func zoneFor(score float64) string {
	switch {
	case score < 50:
		return "red"
	case score < 80:
		return "yellow"
	default:
		return "green"
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
