package fixplan

import (
	"testing"

	"github.com/complior/engine/internal/models"
)

func TestPlanDispatchesDisclosureStrategyFirst(t *testing.T) {
	finding := models.Finding{CheckID: "ai-disclosure-absent"}

	plan := Plan(finding, Context{Framework: "next"}, &models.Catalogue{})
	if plan == nil {
		t.Fatal("expected a fix plan for an ai-disclosure-absent finding")
	}
	if plan.ObligationID != "ai-disclosure" {
		t.Errorf("expected obligation ai-disclosure, got %q", plan.ObligationID)
	}
	if plan.Actions[0].Path != "src/components/AIDisclosure.tsx" {
		t.Errorf("expected a next/react-specific path, got %q", plan.Actions[0].Path)
	}
}

func TestPlanDisclosureStrategyFallsBackToGenericMiddleware(t *testing.T) {
	finding := models.Finding{CheckID: "ai-disclosure-absent"}

	plan := Plan(finding, Context{}, &models.Catalogue{})
	if plan == nil {
		t.Fatal("expected a fix plan")
	}
	if plan.Actions[0].Path != "src/middleware/ai-disclosure.ts" {
		t.Errorf("expected the generic middleware path, got %q", plan.Actions[0].Path)
	}
}

func TestPlanFallsThroughToDocumentationStrategy(t *testing.T) {
	cat := &models.Catalogue{
		FixTemplates: []models.FixTemplateEntry{
			{ObligationID: "privacy-policy", TemplateFile: "privacy.tmpl", OutputFile: "PRIVACY.md", Description: "privacy policy"},
		},
	}
	finding := models.Finding{CheckID: "doc-structure-privacy-policy", ObligationID: "privacy-policy"}

	plan := Plan(finding, Context{}, cat)
	if plan == nil {
		t.Fatal("expected the documentation strategy to produce a plan")
	}
	if plan.Actions[0].Content != "[TEMPLATE:privacy.tmpl]" {
		t.Errorf("expected a template placeholder, got %q", plan.Actions[0].Content)
	}
}

func TestPlanDocumentationStrategySkipsWhenOutputAlreadyExists(t *testing.T) {
	cat := &models.Catalogue{
		FixTemplates: []models.FixTemplateEntry{
			{ObligationID: "privacy-policy", TemplateFile: "privacy.tmpl", OutputFile: "PRIVACY.md"},
		},
	}
	finding := models.Finding{CheckID: "doc-structure-privacy-policy", ObligationID: "privacy-policy"}
	ctx := Context{ExistingFiles: map[string]bool{"docs/PRIVACY.md": true}}

	plan := Plan(finding, ctx, cat)
	if plan != nil {
		t.Errorf("expected no plan once the output file already exists, got %+v", plan)
	}
}

func TestPlanReturnsNilWhenNoStrategyMatches(t *testing.T) {
	finding := models.Finding{CheckID: "unrelated-check"}
	plan := Plan(finding, Context{}, &models.Catalogue{})
	if plan != nil {
		t.Errorf("expected no plan for an unrecognized finding, got %+v", plan)
	}
}
