package rulestore

// RuleEntry is one immutable unit of legal reference data: a civil-code
// contract template, a statute excerpt, or an assessment rule. Identifiers
// are unique across the whole store.
type RuleEntry struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source  string   `json:"source,omitempty" yaml:"source,omitempty"`
	Content string   `json:"content" yaml:"content"`
}

// ChecklistSection is one ordered group of contract review points.
type ChecklistSection struct {
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

// PenaltyRules describes how liquidated-damages clauses are assessed.
type PenaltyRules struct {
	RuleID     string  `json:"id" yaml:"id"`
	LegalBasis string  `json:"legal_basis" yaml:"legal_basis"`
	Principle  string  `json:"principle" yaml:"principle"`
	CapRatio   float64 `json:"cap_ratio" yaml:"cap_ratio"`

	JudicialStandards struct {
		General    string `json:"general" yaml:"general"`
		Special    string `json:"special" yaml:"special"`
		Adjustment string `json:"adjustment" yaml:"adjustment"`
	} `json:"judicial_standards" yaml:"judicial_standards"`

	Methods  []string `json:"methods" yaml:"methods"`
	Cautions []string `json:"cautions" yaml:"cautions"`
}

// DiscretionFactor is one input of the judicial discretion standard.
type DiscretionFactor struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"`
}

// DiscretionStandards captures the 九民纪要 discretion baseline.
type DiscretionStandards struct {
	RuleID           string                      `json:"id" yaml:"id"`
	Title            string                      `json:"title" yaml:"title"`
	Source           string                      `json:"source" yaml:"source"`
	Factors          map[string]DiscretionFactor `json:"factors" yaml:"factors"`
	FormulaReference string                      `json:"formula_reference" yaml:"formula_reference"`
	Guidelines       []string                    `json:"guidelines" yaml:"guidelines"`
}

// Match modes for risk patterns.
const (
	MatchAny    = "any"    // trigger when any keyword is present
	MatchAbsent = "absent" // trigger when no keyword is present
)

// RiskPattern is one deterministic trigger for the contract risk scan.
// RuleID points at the RuleEntry the resulting finding cites.
type RiskPattern struct {
	ID          string   `yaml:"id"`
	Category    string   `yaml:"category"`
	Match       string   `yaml:"match"`
	Keywords    []string `yaml:"keywords"`
	Severity    string   `yaml:"severity"`
	Description string   `yaml:"description"`
	Suggestion  string   `yaml:"suggestion"`
	RuleID      string   `yaml:"rule_id"`
}

// SuggestionTemplate is the remedy material for one risk type.
type SuggestionTemplate struct {
	RiskType        string   `json:"risk_type" yaml:"risk_type"`
	Title           string   `json:"title" yaml:"title"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
	ClauseTemplate  string   `json:"clause_template,omitempty" yaml:"clause_template,omitempty"`
}
