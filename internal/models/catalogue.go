// Package models holds the engine's data model: the regulation catalogue
// types, scan-time records, and fix/undo state, all exported with json tags
// since JSON is the wire format for every transport the engine exposes.
package models

// Severity is ordered: info < low < medium < high < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordinal of a severity for comparisons.
func (s Severity) Rank() int { return severityRank[s] }

// Obligation is an atomic regulatory requirement, loaded once at startup
// and treated as immutable thereafter.
type Obligation struct {
	ID               string   `json:"id"`
	Article          string   `json:"article"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ApplicableRoles  []string `json:"applicableRoles"`
	ApplicableRisk   []string `json:"applicableRiskLevels"`
	Severity         Severity `json:"severity"`
	Deadline         string   `json:"deadline,omitempty"`
	Penalty          string   `json:"penalty,omitempty"`
	Automatable      bool     `json:"automatable"`
	TemplateBacked   bool     `json:"templateBacked"`
}

// Category is a named weighted grouping of obligations used by the scoring
// engine.
type Category struct {
	Name                string   `json:"name"`
	Weight              float64  `json:"weight"`
	ObligationsInCategory []string `json:"obligations_in_category"`
}

// RequiredSection is one entry in a DocumentValidator's ordered section
// list.
type RequiredSection struct {
	Title    string `json:"title"`
	Required bool   `json:"required"`
}

// DocumentValidator matches an obligation satisfied by a written document.
type DocumentValidator struct {
	ObligationID     string            `json:"obligationId"`
	FilenamePatterns []string          `json:"filenamePatterns"`
	Sections         []RequiredSection `json:"sections"`
}

// BannedPackage is a catalogue entry flagging a dependency as prohibited.
type BannedPackage struct {
	Name      string   `json:"name"`
	Ecosystem string   `json:"ecosystem"` // "any" or a specific ecosystem
	Reason    string   `json:"reason"`
	ObligationID string `json:"obligationId"`
	Article   string   `json:"article"`
	Penalty   string   `json:"penalty,omitempty"`
}

// PatternRule is one L4 source-pattern-matching rule.
type PatternRule struct {
	Category       string `json:"category"`
	Polarity       string `json:"polarity"` // "positive" | "negative"
	Pattern        string `json:"pattern"`  // regex source
	ObligationID   string `json:"obligationId"`
	Article        string `json:"article"`
	Recommendation string `json:"recommendation"`
	Label          string `json:"label"`
}

// FixTemplateEntry maps an obligation to its documentation fix template.
type FixTemplateEntry struct {
	ObligationID string `json:"obligationId"`
	TemplateFile string `json:"templateFile"`
	OutputFile   string `json:"outputFile"`
	Description  string `json:"description"`
	Article      string `json:"article"`
}

// ScoringData bundles the weighted categories and critical-obligation set
// the scoring engine needs.
type ScoringData struct {
	Categories       []Category `json:"categories"`
	CriticalObligationIDs []string `json:"criticalObligationIds"`
	CriticalCheckIDs []string `json:"criticalCheckIds"`
}

// Catalogue is the full set of loaded regulation data, cached for the
// process lifetime by internal/catalogue.
type Catalogue struct {
	Obligations        []Obligation        `json:"obligations"`
	Categories         []Category          `json:"categories"`
	DocumentValidators []DocumentValidator `json:"documentValidators"`
	BannedPackages     []BannedPackage     `json:"bannedPackages"`
	AISDKRegistry      map[string]string   `json:"aiSdkRegistry"`
	PatternRules       []PatternRule       `json:"patternRules"`
	FixTemplates       []FixTemplateEntry  `json:"fixTemplates"`
	Scoring            ScoringData         `json:"scoring"`
	CheckIDCategoryMap map[string]string   `json:"checkIdCategoryMap"`
}
