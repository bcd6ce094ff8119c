package layers

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/complior/engine/internal/models"
)

// Dependency is a (name, version, ecosystem) triple extracted from a
// manifest file.
type Dependency struct {
	Name      string
	Version   string
	Ecosystem string
	File      string
}

// L3Result is the typed output L4 additionally consumes.
type L3Result struct {
	Dependencies  []Dependency
	AISDKDetected bool
}

var biasTestingPackages = map[string]bool{
	"fairlearn": true, "aif360": true, "aequitas": true,
	"responsibleai": true, "@responsible-ai/fairness": true,
}

var envAIKeyRe = regexp.MustCompile(`(?i)^(OPENAI|ANTHROPIC|COHERE|GROQ|MISTRAL|GOOGLE_AI|GEMINI)_API_KEY`)
var observabilityVarRe = regexp.MustCompile(`(?i)(SENTRY_DSN|DATADOG|NEW_RELIC|MONITORING|OBSERVABILITY)`)
var ciComplianceRe = regexp.MustCompile(`(?i)(complior|compliance|audit|security[-_]scan|ai[-_]act)`)
var retentionHintRe = regexp.MustCompile(`(?i)(max-size|max-file|retention|rotate)`)

// RunL3 parses manifest and config files, emits CheckResults, and returns
// the typed dependency/AI-SDK data L4 needs.
func RunL3(ctx *models.ScanContext, cat *models.Catalogue) ([]models.CheckResult, L3Result) {
	var results []models.CheckResult
	var deps []Dependency

	for _, f := range ctx.Files {
		base := strings.ToLower(filepath.Base(f.Path))
		switch {
		case base == "package.json":
			deps = append(deps, parsePackageJSON(f.Path, f.Content)...)
		case base == "requirements.txt":
			deps = append(deps, parseRequirementsTxt(f.Path, f.Content)...)
		case base == "cargo.toml":
			deps = append(deps, parseCargoToml(f.Path, f.Content)...)
		case base == "go.mod":
			deps = append(deps, parseGoMod(f.Path, f.Content)...)
		case base == "docker-compose.yml" || base == "docker-compose.yaml":
			results = append(results, checkDockerCompose(f.Path, f.Content)...)
		case base == ".env" || base == ".env.example" || base == ".env.local":
			results = append(results, checkEnvFile(f.Path, f.Content)...)
		}

		if strings.Contains(f.Path, ".github/workflows/") && (strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".yaml")) {
			results = append(results, checkCIConfig(f.Path, f.Content))
		}
	}

	aiSDKDetected := false
	for _, dep := range deps {
		if banned := matchBanned(dep, cat.BannedPackages); banned != nil {
			results = append(results, models.CheckResult{
				Kind:         models.CheckFail,
				CheckID:      "banned-package-" + dep.Name,
				Message:      "prohibited package " + dep.Name + ": " + banned.Reason,
				Severity:     models.SeverityCritical,
				ObligationID: banned.ObligationID,
				Article:      banned.Article,
				File:         dep.File,
				Layer:        "L3",
			})
		}
		if label, ok := cat.AISDKRegistry[dep.Name]; ok {
			aiSDKDetected = true
			results = append(results, models.CheckResult{
				Kind:    models.CheckPass,
				CheckID: "ai-sdk-detected-" + dep.Name,
				Message: "detected AI SDK: " + label,
				File:    dep.File,
				Layer:   "L3",
			})
		}
	}

	if aiSDKDetected {
		hasBiasTesting := false
		for _, dep := range deps {
			if biasTestingPackages[dep.Name] {
				hasBiasTesting = true
				break
			}
		}
		if !hasBiasTesting {
			results = append(results, models.CheckResult{
				Kind:         models.CheckFail,
				CheckID:      "bias-testing-absent",
				Message:      "AI SDK detected but no bias-testing dependency found",
				Severity:     models.SeverityHigh,
				ObligationID: "bias-testing",
				Article:      "Art. 10",
				Layer:        "L3",
			})
		} else {
			results = append(results, models.CheckResult{
				Kind:         models.CheckPass,
				CheckID:      "bias-testing-present",
				Message:      "bias-testing dependency present",
				ObligationID: "bias-testing",
				Article:      "Art. 10",
				Layer:        "L3",
			})
		}
	}

	return results, L3Result{Dependencies: deps, AISDKDetected: aiSDKDetected}
}

func matchBanned(dep Dependency, banned []models.BannedPackage) *models.BannedPackage {
	for i := range banned {
		b := banned[i]
		if !strings.EqualFold(b.Name, dep.Name) {
			continue
		}
		if b.Ecosystem == "any" || strings.EqualFold(b.Ecosystem, dep.Ecosystem) {
			return &b
		}
	}
	return nil
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

func parsePackageJSON(file, content string) []Dependency {
	var pkg packageJSON
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil
	}
	var out []Dependency
	for _, m := range []map[string]string{pkg.Dependencies, pkg.DevDependencies, pkg.PeerDependencies} {
		for name, version := range m {
			out = append(out, Dependency{Name: name, Version: version, Ecosystem: "npm", File: file})
		}
	}
	return out
}

var requirementsLineRe = regexp.MustCompile(`^([A-Za-z0-9_.\-\[\]]+)\s*([=<>!~]{1,2}=?\s*[\w.\-]*)?`)

func parseRequirementsTxt(file, content string) []Dependency {
	var out []Dependency
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := requirementsLineRe.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		out = append(out, Dependency{Name: strings.ToLower(m[1]), Version: strings.TrimSpace(m[2]), Ecosystem: "pypi", File: file})
	}
	return out
}

func parseCargoToml(file, content string) []Dependency {
	var raw map[string]interface{}
	if _, err := toml.Decode(content, &raw); err != nil {
		return nil
	}
	depsSection, ok := raw["dependencies"].(map[string]interface{})
	if !ok {
		return nil
	}
	var out []Dependency
	for name, v := range depsSection {
		version := ""
		switch val := v.(type) {
		case string:
			version = val
		case map[string]interface{}:
			if s, ok := val["version"].(string); ok {
				version = s
			}
		}
		out = append(out, Dependency{Name: name, Version: version, Ecosystem: "cargo", File: file})
	}
	return out
}

var goModRequireLineRe = regexp.MustCompile(`^\s*([^\s]+)\s+(v[\w.\-+]+)`)

func parseGoMod(file, content string) []Dependency {
	var out []Dependency
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "require ("):
			inBlock = true
			continue
		case inBlock && trimmed == ")":
			inBlock = false
			continue
		case inBlock:
			if m := goModRequireLineRe.FindStringSubmatch(trimmed); m != nil {
				out = append(out, Dependency{Name: m[1], Version: m[2], Ecosystem: "go", File: file})
			}
		case strings.HasPrefix(trimmed, "require "):
			if m := goModRequireLineRe.FindStringSubmatch(strings.TrimPrefix(trimmed, "require ")); m != nil {
				out = append(out, Dependency{Name: m[1], Version: m[2], Ecosystem: "go", File: file})
			}
		}
	}
	return out
}

func checkDockerCompose(file, content string) []models.CheckResult {
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil
	}

	hasLogging := false
	if services, ok := doc["services"].(map[string]interface{}); ok {
		for _, svc := range services {
			svcMap, ok := svc.(map[string]interface{})
			if !ok {
				continue
			}
			if _, ok := svcMap["logging"]; ok {
				hasLogging = true
				break
			}
		}
	}
	hasRetentionHint := retentionHintRe.MatchString(content)

	switch {
	case hasLogging && hasRetentionHint:
		return []models.CheckResult{{
			Kind: models.CheckPass, CheckID: "docker-compose-logging", File: file,
			Message: "docker-compose defines logging with retention", Layer: "L3",
			ObligationID: "interaction-logging", Article: "Art. 12",
		}}
	case hasLogging:
		return []models.CheckResult{{
			Kind: models.CheckFail, CheckID: "docker-compose-logging", File: file,
			Message: "docker-compose logging section has no retention hint", Severity: models.SeverityLow,
			Layer: "L3", ObligationID: "interaction-logging", Article: "Art. 12",
		}}
	default:
		return []models.CheckResult{{
			Kind: models.CheckFail, CheckID: "docker-compose-logging", File: file,
			Message: "docker-compose has no logging section", Severity: models.SeverityLow,
			Layer: "L3", ObligationID: "interaction-logging", Article: "Art. 12",
		}}
	}
}

func checkEnvFile(file, content string) []models.CheckResult {
	var results []models.CheckResult
	hasAIKey := envAIKeyRe.MatchString(content)
	hasLogLevel := strings.Contains(content, "LOG_LEVEL")
	hasObservability := observabilityVarRe.MatchString(content)

	if hasAIKey && !hasLogLevel {
		results = append(results, models.CheckResult{
			Kind: models.CheckFail, CheckID: "env-log-level-" + file, File: file,
			Message: "AI provider key present without LOG_LEVEL configured", Severity: models.SeverityLow, Layer: "L3",
		})
	}
	if hasAIKey && !hasObservability {
		results = append(results, models.CheckResult{
			Kind: models.CheckFail, CheckID: "env-observability-" + file, File: file,
			Message: "AI provider key present without an observability variable configured",
			Severity: models.SeverityLow, ObligationID: "observability", Layer: "L3",
		})
	}
	return results
}

func checkCIConfig(file, content string) models.CheckResult {
	if ciComplianceRe.MatchString(content) {
		return models.CheckResult{
			Kind: models.CheckPass, CheckID: "ci-compliance-check-" + file, File: file,
			Message: "CI workflow includes a compliance/security step", Layer: "L3",
		}
	}
	return models.CheckResult{
		Kind: models.CheckFail, CheckID: "ci-compliance-check-" + file, File: file,
		Message: "CI workflow has no compliance/security step", Severity: models.SeverityLow, Layer: "L3",
	}
}
