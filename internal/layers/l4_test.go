package layers

import (
	"testing"

	"github.com/complior/engine/internal/models"
)

func TestRunL4IgnoresVendoredPaths(t *testing.T) {
	rules := []models.PatternRule{
		{Category: "rate-limit", Polarity: "negative", Pattern: `danger`, Label: "dangerous call"},
	}
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{
			{Path: "node_modules/pkg/index.js", Ext: ".js", Content: "danger()"},
		},
	}

	results := RunL4(ctx, rules, L3Result{})
	if len(results) != 0 {
		t.Errorf("expected vendored paths to be ignored, got %+v", results)
	}
}

func TestRunL4NegativePatternFails(t *testing.T) {
	rules := []models.PatternRule{
		{Category: "bare-llm-call", Polarity: "negative", Pattern: `openai\.chat\.completions\.create`, Label: "unguarded LLM call", ObligationID: "rate-limiting"},
	}
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{
			{Path: "app.ts", Ext: ".ts", Content: "const r = await openai.chat.completions.create({})"},
		},
	}

	results := RunL4(ctx, rules, L3Result{})
	if len(results) != 1 || results[0].Kind != models.CheckFail {
		t.Fatalf("expected a single failing result, got %+v", results)
	}
	if results[0].Line != 1 {
		t.Errorf("expected the match to be reported on line 1, got %d", results[0].Line)
	}
}

func TestRunL4PositiveFirstMatchOnlySurvives(t *testing.T) {
	rules := []models.PatternRule{
		{Category: "rate-limit", Polarity: "positive", Pattern: `rateLimit`, Label: "rate limiter present"},
	}
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{
			{Path: "a.go", Ext: ".go", Content: "rateLimit(1)"},
			{Path: "b.go", Ext: ".go", Content: "rateLimit(2)"},
		},
	}

	results := RunL4(ctx, rules, L3Result{})
	if len(results) != 1 {
		t.Fatalf("expected only the first positive match to survive, got %+v", results)
	}
}

func TestRunL4MissingPositiveSafeguardSurfacesWhenAISDKDetected(t *testing.T) {
	rules := []models.PatternRule{
		{Category: "rate-limit", Polarity: "positive", Pattern: `rateLimit`, Label: "rate limiter present", ObligationID: "rate-limiting"},
	}
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{
			{Path: "a.go", Ext: ".go", Content: "no safeguards here"},
		},
	}

	results := RunL4(ctx, rules, L3Result{AISDKDetected: true})

	var notFound bool
	for _, r := range results {
		if r.CheckID == "l4-rate-limit-not-found" {
			notFound = true
		}
	}
	if !notFound {
		t.Fatal("expected a not-found finding for the missing positive safeguard when AI SDK usage is detected")
	}
}

func TestRunL4NoMissingSafeguardWithoutAIUsageEvidence(t *testing.T) {
	rules := []models.PatternRule{
		{Category: "rate-limit", Polarity: "positive", Pattern: `rateLimit`, Label: "rate limiter present", ObligationID: "rate-limiting"},
	}
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{
			{Path: "a.go", Ext: ".go", Content: "no safeguards here"},
		},
	}

	results := RunL4(ctx, rules, L3Result{})
	for _, r := range results {
		if r.CheckID == "l4-rate-limit-not-found" {
			t.Error("did not expect a not-found finding when there is no AI SDK/bare-LLM-call evidence")
		}
	}
}
