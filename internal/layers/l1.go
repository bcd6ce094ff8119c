// Package layers implements the four independent rule layers (L1
// presence, L2 document structure, L3 config/dependency parsing, L4
// source-pattern matching) that the scanner orchestrator runs in order.
package layers

import (
	"regexp"

	"github.com/complior/engine/internal/models"
)

var aiUsageEvidenceRe = regexp.MustCompile(`(?i)(openai|anthropic|langchain|llama[-_]?index|huggingface|cohere|generativeai|mistralai|ollama)`)

type l1Check struct {
	checkID       string
	obligationID  string
	article       string
	filePathRe    *regexp.Regexp
	contentRe     *regexp.Regexp
	needsAIUsage  bool // skip unless AI usage evidence found anywhere in project
	label         string
}

var l1Checks = []l1Check{
	{
		checkID:      "ai-disclosure",
		obligationID: "ai-disclosure",
		article:      "Art. 50(1)",
		filePathRe:   regexp.MustCompile(`(?i)(AIDisclosure|ai-disclosure)`),
		label:        "AI interaction disclosure",
	},
	{
		checkID:      "content-marking",
		obligationID: "content-marking",
		article:      "Art. 50(2)",
		filePathRe:   regexp.MustCompile(`(?i)(content-marking|c2pa)`),
		contentRe:    regexp.MustCompile(`(?i)(c2pa|content[-_]credentials)`),
		label:        "Synthetic content marking",
	},
	{
		checkID:      "interaction-logging",
		obligationID: "interaction-logging",
		article:      "Art. 12",
		filePathRe:   regexp.MustCompile(`(?i)(ai-interaction-logger|interaction[-_]log)`),
		contentRe:    regexp.MustCompile(`(?i)(logInteraction|log_interaction)`),
		needsAIUsage: true,
		label:        "Automatic interaction logging",
	},
	{
		checkID:      "ai-literacy",
		obligationID: "ai-literacy",
		article:      "Art. 4",
		filePathRe:   regexp.MustCompile(`(?i)(ai-literacy-policy|AI_LITERACY)`),
		label:        "AI literacy policy",
	},
	{
		checkID:      "gpai-transparency",
		obligationID: "gpai-transparency",
		article:      "Art. 53",
		filePathRe:   regexp.MustCompile(`(?i)(gpai-transparency|GPAI_TRANSPARENCY)`),
		label:        "GPAI transparency documentation",
	},
	{
		checkID:      "compliance-metadata",
		obligationID: "compliance-metadata",
		article:      "Art. 11",
		filePathRe:   regexp.MustCompile(`(?i)(\.well-known/ai-compliance\.json|ai-compliance\.json)`),
		label:        "Machine-readable compliance metadata",
	},
	{
		checkID:      "documentation",
		obligationID: "technical-documentation",
		article:      "Art. 11",
		filePathRe:   regexp.MustCompile(`(?i)(technical-documentation|TECHNICAL_DOCUMENTATION|README)`),
		label:        "Project documentation",
	},
}

// RunL1 evaluates the fixed presence/evidence checks against the scan
// context's file list.
func RunL1(ctx *models.ScanContext) []models.CheckResult {
	aiUsagePresent := false
	for _, f := range ctx.Files {
		if aiUsageEvidenceRe.MatchString(f.Content) {
			aiUsagePresent = true
			break
		}
	}

	var results []models.CheckResult
	for _, chk := range l1Checks {
		if chk.needsAIUsage && !aiUsagePresent {
			results = append(results, models.CheckResult{
				Kind:    models.CheckSkip,
				CheckID: chk.checkID + "-presence",
				Reason:  "no AI API usage detected in project",
				Layer:   "L1",
			})
			continue
		}

		found, path := findL1Evidence(ctx, chk)
		if found {
			results = append(results, models.CheckResult{
				Kind:         models.CheckPass,
				CheckID:      chk.checkID + "-present",
				Message:      chk.label + " found",
				ObligationID: chk.obligationID,
				Article:      chk.article,
				File:         path,
				Layer:        "L1",
			})
		} else {
			results = append(results, models.CheckResult{
				Kind:         models.CheckFail,
				CheckID:      chk.checkID + "-absent",
				Message:      chk.label + " not found",
				Severity:     models.SeverityHigh,
				ObligationID: chk.obligationID,
				Article:      chk.article,
				Layer:        "L1",
			})
		}
	}
	return results
}

func findL1Evidence(ctx *models.ScanContext, chk l1Check) (bool, string) {
	for _, f := range ctx.Files {
		if chk.filePathRe != nil && chk.filePathRe.MatchString(f.Path) {
			return true, f.Path
		}
		if chk.contentRe != nil && chk.contentRe.MatchString(f.Content) {
			return true, f.Path
		}
	}
	return false, ""
}
