package scoring

import (
	"testing"

	"github.com/complior/engine/internal/models"
)

func TestComputeEmptyChecksYieldsGreen(t *testing.T) {
	got := Compute(nil, models.ScoringData{}, nil)

	if got.TotalScore != 100 {
		t.Errorf("expected total score 100 for no checks, got %v", got.TotalScore)
	}
	if got.Zone != "green" {
		t.Errorf("expected green zone for no checks, got %v", got.Zone)
	}
}

func TestComputeZoneBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		passed   int
		failed   int
		wantZone string
	}{
		{"all pass is green", 10, 0, "green"},
		{"mostly pass is green", 9, 1, "green"},
		{"half pass is yellow", 5, 5, "yellow"},
		{"mostly fail is red", 2, 8, "red"},
	}

	scoring := models.ScoringData{
		Categories: []models.Category{
			{Name: "general", Weight: 1.0, ObligationsInCategory: []string{"ob-1"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var checks []models.CheckResult
			for i := 0; i < tc.passed; i++ {
				checks = append(checks, models.CheckResult{Kind: models.CheckPass, CheckID: "c", ObligationID: "ob-1", Layer: "L1"})
			}
			for i := 0; i < tc.failed; i++ {
				checks = append(checks, models.CheckResult{Kind: models.CheckFail, CheckID: "c", ObligationID: "ob-1", Layer: "L1"})
			}

			got := Compute(checks, scoring, nil)
			if got.Zone != tc.wantZone {
				t.Errorf("score %.2f: expected zone %s, got %s", got.TotalScore, tc.wantZone, got.Zone)
			}
		})
	}
}

func TestComputeCriticalCapClampsHighScore(t *testing.T) {
	scoring := models.ScoringData{
		Categories: []models.Category{
			{Name: "general", Weight: 1.0, ObligationsInCategory: []string{"ob-1", "ob-2"}},
		},
		CriticalObligationIDs: []string{"ob-2"},
	}
	checks := []models.CheckResult{
		{Kind: models.CheckPass, CheckID: "c1", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c2", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c3", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c4", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c5", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c6", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c7", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c8", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckPass, CheckID: "c9", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckFail, CheckID: "crit", ObligationID: "ob-2", Layer: "L1"},
	}

	got := Compute(checks, scoring, nil)

	if !got.CriticalCapApplied {
		t.Fatal("expected critical cap to apply when a critical obligation fails")
	}
	if got.TotalScore > 40 {
		t.Errorf("expected score capped at 40, got %v", got.TotalScore)
	}
}

func TestComputeRenormalizesOverActiveCategoriesOnly(t *testing.T) {
	scoring := models.ScoringData{
		Categories: []models.Category{
			{Name: "active", Weight: 1.0, ObligationsInCategory: []string{"ob-1"}},
			{Name: "dormant", Weight: 3.0, ObligationsInCategory: []string{"ob-2"}},
		},
	}
	checks := []models.CheckResult{
		{Kind: models.CheckPass, CheckID: "c1", ObligationID: "ob-1", Layer: "L1"},
	}

	got := Compute(checks, scoring, nil)

	if len(got.CategoryScores) != 1 {
		t.Fatalf("expected only the active category to be scored, got %d entries", len(got.CategoryScores))
	}
	if got.TotalScore != 100 {
		t.Errorf("expected full score when the only active category passed fully, got %v", got.TotalScore)
	}
}

func TestComputeSkipsDoNotCountTowardTotals(t *testing.T) {
	scoring := models.ScoringData{
		Categories: []models.Category{
			{Name: "general", Weight: 1.0, ObligationsInCategory: []string{"ob-1"}},
		},
	}
	checks := []models.CheckResult{
		{Kind: models.CheckPass, CheckID: "c1", ObligationID: "ob-1", Layer: "L1"},
		{Kind: models.CheckSkip, CheckID: "c2", ObligationID: "ob-1", Layer: "L1", Reason: "not applicable"},
	}

	got := Compute(checks, scoring, nil)

	if got.SkippedChecks != 1 {
		t.Errorf("expected 1 skipped check, got %d", got.SkippedChecks)
	}
	if got.PassedChecks+got.FailedChecks != 1 {
		t.Errorf("expected skip excluded from pass/fail totals, got passed=%d failed=%d", got.PassedChecks, got.FailedChecks)
	}
}

func TestComputeFallsBackToCheckCategoryMap(t *testing.T) {
	scoring := models.ScoringData{
		Categories: []models.Category{
			{Name: "general", Weight: 1.0},
		},
	}
	checkCategoryMap := map[string]string{"c1": "general"}
	checks := []models.CheckResult{
		{Kind: models.CheckFail, CheckID: "c1", Layer: "L3"},
	}

	got := Compute(checks, scoring, checkCategoryMap)

	if len(got.CategoryScores) != 1 {
		t.Fatalf("expected the check-id fallback mapping to classify the check, got %d category scores", len(got.CategoryScores))
	}
	if got.CategoryScores[0].Score != 0 {
		t.Errorf("expected category score 0 for a lone failing check, got %v", got.CategoryScores[0].Score)
	}
}
