// Package fixplan implements the fix strategy registry: given a failing
// Finding, dispatch through an ordered list of strategies and return the
// first non-nil FixPlan.
package fixplan

import (
	"fmt"
	"strings"

	"github.com/complior/engine/internal/models"
)

// Context is the information a strategy needs beyond the finding itself.
type Context struct {
	ProjectPath   string
	Framework     string // "next", "react", or "" (generic)
	ExistingFiles map[string]bool
}

// Strategy produces a FixPlan for a finding, or nil if it doesn't apply.
type Strategy func(models.Finding, Context, *models.Catalogue) *models.FixPlan

// Registry holds the ordered strategy list; the first strategy to return a
// non-nil plan wins.
var Registry = []Strategy{
	disclosureStrategy,
	contentMarkingStrategy,
	interactionLoggingStrategy,
	metadataStrategy,
	documentationStrategy,
}

// Plan dispatches a finding through the registry in order.
func Plan(f models.Finding, ctx Context, cat *models.Catalogue) *models.FixPlan {
	for _, strategy := range Registry {
		if plan := strategy(f, ctx, cat); plan != nil {
			return plan
		}
	}
	return nil
}

func disclosureStrategy(f models.Finding, ctx Context, cat *models.Catalogue) *models.FixPlan {
	if f.CheckID != "ai-disclosure-absent" && f.CheckID != "ai-disclosure" {
		return nil
	}
	var path, content string
	if ctx.Framework == "next" || ctx.Framework == "react" {
		path = "src/components/AIDisclosure.tsx"
		content = nextDisclosureComponent
	} else {
		path = "src/middleware/ai-disclosure.ts"
		content = genericDisclosureMiddleware
	}
	return &models.FixPlan{
		ObligationID:  "ai-disclosure",
		CheckID:       f.CheckID,
		Article:       "Art. 50(1)",
		FixType:       models.FixCodeInjection,
		Framework:     ctx.Framework,
		Actions:       []models.FixAction{{Kind: models.ActionCreate, Path: path, Content: content}},
		Diff:          unifiedDiffNewFile(path, content),
		ScoreImpact:   5,
		CommitMessage: "Add AI interaction disclosure",
		Description:   "Creates a disclosure surface informing users they are interacting with an AI system.",
	}
}

func contentMarkingStrategy(f models.Finding, ctx Context, cat *models.Catalogue) *models.FixPlan {
	if f.CheckID != "content-marking-absent" && f.CheckID != "content-marking" {
		return nil
	}
	path := "complior-content-marking.json"
	content := contentMarkingSkeleton
	return &models.FixPlan{
		ObligationID:  "content-marking",
		CheckID:       f.CheckID,
		Article:       "Art. 50(2)",
		FixType:       models.FixConfigFix,
		Framework:     ctx.Framework,
		Actions:       []models.FixAction{{Kind: models.ActionCreate, Path: path, Content: content}},
		Diff:          unifiedDiffNewFile(path, content),
		ScoreImpact:   5,
		CommitMessage: "Add synthetic content marking configuration",
		Description:   "Creates a C2PA/IPTC configuration skeleton for marking AI-generated content.",
	}
}

func interactionLoggingStrategy(f models.Finding, ctx Context, cat *models.Catalogue) *models.FixPlan {
	if f.CheckID != "interaction-logging-absent" && f.CheckID != "interaction-logging" {
		return nil
	}
	path := "src/logging/ai-interaction-logger.ts"
	content := interactionLoggerSource
	return &models.FixPlan{
		ObligationID:  "interaction-logging",
		CheckID:       f.CheckID,
		Article:       "Art. 12",
		FixType:       models.FixCodeInjection,
		Framework:     ctx.Framework,
		Actions:       []models.FixAction{{Kind: models.ActionCreate, Path: path, Content: content}},
		Diff:          unifiedDiffNewFile(path, content),
		ScoreImpact:   5,
		CommitMessage: "Add AI interaction logging",
		Description:   "Creates a logger that records AI system interactions for traceability.",
	}
}

func metadataStrategy(f models.Finding, ctx Context, cat *models.Catalogue) *models.FixPlan {
	if f.CheckID != "compliance-metadata-absent" && f.CheckID != "compliance-metadata" {
		return nil
	}
	path := ".well-known/ai-compliance.json"
	content := complianceMetadataSkeleton
	return &models.FixPlan{
		ObligationID:  "compliance-metadata",
		CheckID:       f.CheckID,
		Article:       "Art. 11",
		FixType:       models.FixMetadataGeneration,
		Framework:     ctx.Framework,
		Actions:       []models.FixAction{{Kind: models.ActionCreate, Path: path, Content: content}},
		Diff:          unifiedDiffNewFile(path, content),
		ScoreImpact:   5,
		CommitMessage: "Publish machine-readable compliance metadata",
		Description:   "Creates a well-known compliance declaration file.",
	}
}

// documentationStrategy is the catch-all: if the finding's obligation has a
// template map entry and no existing file ends with the output path, emit
// a single create action with a [TEMPLATE:...] placeholder.
func documentationStrategy(f models.Finding, ctx Context, cat *models.Catalogue) *models.FixPlan {
	if f.ObligationID == "" {
		return nil
	}
	var entry *models.FixTemplateEntry
	for i := range cat.FixTemplates {
		if cat.FixTemplates[i].ObligationID == f.ObligationID {
			entry = &cat.FixTemplates[i]
			break
		}
	}
	if entry == nil {
		return nil
	}
	for existing := range ctx.ExistingFiles {
		if strings.HasSuffix(existing, entry.OutputFile) {
			return nil
		}
	}

	placeholder := fmt.Sprintf("[TEMPLATE:%s]", entry.TemplateFile)
	return &models.FixPlan{
		ObligationID:  f.ObligationID,
		CheckID:       f.CheckID,
		Article:       entry.Article,
		FixType:       models.FixTemplateGeneration,
		Framework:     ctx.Framework,
		Actions:       []models.FixAction{{Kind: models.ActionCreate, Path: entry.OutputFile, Content: placeholder}},
		Diff:          unifiedDiffNewFile(entry.OutputFile, "(template: "+entry.TemplateFile+")"),
		ScoreImpact:   3,
		CommitMessage: "Add " + entry.Description,
		Description:   entry.Description,
	}
}

func unifiedDiffNewFile(path, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- /dev/null\n+++ b/%s\n", path)
	lines := strings.Split(content, "\n")
	fmt.Fprintf(&b, "@@ -0,0 +1,%d @@\n", len(lines))
	for _, line := range lines {
		b.WriteString("+" + line + "\n")
	}
	return b.String()
}
