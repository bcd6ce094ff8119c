package layers

import (
	"testing"

	"github.com/complior/engine/internal/models"
)

func validator() models.DocumentValidator {
	return models.DocumentValidator{
		ObligationID:     "privacy-policy",
		FilenamePatterns: []string{"PRIVACY.md"},
		Sections: []models.RequiredSection{
			{Title: "Data Collection", Required: true},
			{Title: "Data Retention", Required: true},
			{Title: "Optional Notes", Required: false},
		},
	}
}

func TestRunL2SkipsValidatorWithNoMatchingFile(t *testing.T) {
	ctx := &models.ScanContext{Files: nil}

	results := RunL2(ctx, []models.DocumentValidator{validator()})
	if len(results) != 0 {
		t.Errorf("expected no results when the validator's file is absent, got %+v", results)
	}
}

func TestRunL2EmptyDocumentFails(t *testing.T) {
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{{Path: "PRIVACY.md", Content: "   "}},
	}

	results := RunL2(ctx, []models.DocumentValidator{validator()})
	if len(results) != 1 || results[0].Kind != models.CheckFail {
		t.Fatalf("expected a single failing result for an empty document, got %+v", results)
	}
}

func TestRunL2AllSectionsPresentPasses(t *testing.T) {
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{{
			Path: "PRIVACY.md",
			Content: "# Privacy Policy\n\n## Data Collection\nwe collect X\n\n## Data Retention\nwe retain for Y\n",
		}},
	}

	results := RunL2(ctx, []models.DocumentValidator{validator()})
	if len(results) != 1 || results[0].Kind != models.CheckPass {
		t.Fatalf("expected a passing result when all required sections are present, got %+v", results)
	}
}

func TestRunL2PartialSectionsYieldsMediumSeverity(t *testing.T) {
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{{
			Path:    "PRIVACY.md",
			Content: "# Privacy Policy\n\n## Data Collection\nwe collect X\n",
		}},
	}

	results := RunL2(ctx, []models.DocumentValidator{validator()})
	if len(results) != 1 {
		t.Fatalf("expected exactly one result, got %+v", results)
	}
	if results[0].Kind != models.CheckFail {
		t.Errorf("expected a partial match to still fail, got %v", results[0].Kind)
	}
	if results[0].Severity != models.SeverityMedium {
		t.Errorf("expected medium severity for a partial match, got %v", results[0].Severity)
	}
}

func TestRunL2NoSectionsMatchedYieldsHighSeverity(t *testing.T) {
	ctx := &models.ScanContext{
		Files: []models.FileSnapshot{{
			Path:    "PRIVACY.md",
			Content: "# Privacy Policy\n\n## Unrelated Heading\nsomething else\n",
		}},
	}

	results := RunL2(ctx, []models.DocumentValidator{validator()})
	if len(results) != 1 || results[0].Severity != models.SeverityHigh {
		t.Fatalf("expected high severity when no required sections match, got %+v", results)
	}
}
