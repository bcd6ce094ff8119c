package layers

import (
	"regexp"
	"strings"

	"github.com/complior/engine/internal/models"
)

var l4Extensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".py": true, ".go": true, ".vue": true, ".html": true,
}

var l4IgnoreSegments = map[string]bool{
	"node_modules": true, ".git": true, "dist": true, "build": true,
	".next": true, "coverage": true, "__pycache__": true, "vendor": true,
	".cache": true, ".output": true,
}

type compiledRule struct {
	models.PatternRule
	re *regexp.Regexp
}

func compileRules(rules []models.PatternRule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			continue
		}
		out = append(out, compiledRule{PatternRule: r, re: re})
	}
	return out
}

func ignoredPath(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if l4IgnoreSegments[seg] {
			return true
		}
	}
	return false
}

// RunL4 scans source files against the catalogue's pattern rules, folding
// in L3's AI SDK detection and its own bare-LLM-call matches to decide
// whether unmatched positive categories should surface as NOT_FOUND
// missing-safeguard findings.
func RunL4(ctx *models.ScanContext, rules []models.PatternRule, l3 L3Result) []models.CheckResult {
	compiled := compileRules(rules)

	var results []models.CheckResult
	positiveFoundOnce := map[string]bool{}
	negativeBareLLMFound := false

	for _, f := range ctx.Files {
		if !l4Extensions[f.Ext] || ignoredPath(f.Path) {
			continue
		}
		for _, rule := range compiled {
			loc := rule.re.FindStringIndex(f.Content)
			if loc == nil {
				continue
			}
			line := 1 + strings.Count(f.Content[:loc[0]], "\n")

			if rule.Polarity == "negative" {
				results = append(results, models.CheckResult{
					Kind:         models.CheckFail,
					CheckID:      "l4-" + rule.Category + "-found",
					Message:      rule.Label,
					Severity:     models.SeverityMedium,
					ObligationID: rule.ObligationID,
					Article:      rule.Article,
					Fix:          rule.Recommendation,
					File:         f.Path,
					Line:         line,
					Layer:        "L4",
				})
				if rule.Category == "bare-llm-call" {
					negativeBareLLMFound = true
				}
				continue
			}

			// positive polarity: first FOUND per category survives
			if !positiveFoundOnce[rule.Category] {
				positiveFoundOnce[rule.Category] = true
				results = append(results, models.CheckResult{
					Kind:         models.CheckPass,
					CheckID:      "l4-" + rule.Category + "-found",
					Message:      rule.Label,
					ObligationID: rule.ObligationID,
					Article:      rule.Article,
					File:         f.Path,
					Line:         line,
					Layer:        "L4",
				})
			}
		}
	}

	if l3.AISDKDetected || negativeBareLLMFound {
		seenCategory := map[string]bool{}
		for _, rule := range rules {
			if rule.Polarity != "positive" || seenCategory[rule.Category] {
				continue
			}
			seenCategory[rule.Category] = true
			if positiveFoundOnce[rule.Category] {
				continue
			}
			results = append(results, models.CheckResult{
				Kind:         models.CheckFail,
				CheckID:      "l4-" + rule.Category + "-not-found",
				Message:      "missing safeguard: " + rule.Label,
				Severity:     models.SeverityMedium,
				ObligationID: rule.ObligationID,
				Article:      rule.Article,
				Fix:          rule.Recommendation,
				Layer:        "L4",
			})
		}
	}

	return results
}
