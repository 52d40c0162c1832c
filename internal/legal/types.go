package legal

// Severity of a risk finding. Closed set.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Compliance status of an analyzed clause.
type Compliance string

const (
	ComplianceCompliant          Compliance = "compliant"
	ComplianceBasicallyCompliant Compliance = "basically_compliant"
	ComplianceNeedsReview        Compliance = "needs_review"
	ComplianceNonCompliant       Compliance = "non_compliant"
)

// ClassificationInsufficientInput marks clause analyses of empty or blank
// input. Empty input is a valid boundary case, not an error.
const ClassificationInsufficientInput = "insufficient_input"

// RiskFinding is one flagged issue produced by the contract risk scan.
type RiskFinding struct {
	Category   string   `json:"type"`
	Severity   Severity `json:"level"`
	Rationale  string   `json:"description"`
	Suggestion string   `json:"suggestion"`
	RuleID     string   `json:"rule_id,omitempty"`
	ClauseRef  string   `json:"clause_ref,omitempty"`
}

// RiskReport is the full result of a contract risk scan.
type RiskReport struct {
	Status         string        `json:"status"`
	RiskCount      int           `json:"risk_count"`
	Risks          []RiskFinding `json:"risks,omitempty"`
	Message        string        `json:"message,omitempty"`
	Recommendation string        `json:"recommendation"`
}

// Citation points at a rule entry backing a clause analysis.
type Citation struct {
	RuleID string `json:"rule_id"`
	Title  string `json:"title"`
	Source string `json:"source,omitempty"`
}

// ClauseAnalysis is the result of analyzing one clause.
type ClauseAnalysis struct {
	ClauseType     string     `json:"clause_type"`
	ClauseText     string     `json:"clause_text"`
	Classification string     `json:"classification"`
	Compliance     Compliance `json:"compliance_status"`
	Citations      []Citation `json:"legal_basis"`
	Suggestions    []string   `json:"suggestions,omitempty"`
}

// Suggestion is the remedy advice for one risk type.
type Suggestion struct {
	RiskType        string   `json:"risk_type"`
	Title           string   `json:"title"`
	Recommendations []string `json:"recommendations"`
	ClauseTemplate  string   `json:"template,omitempty"`
	Context         string   `json:"context,omitempty"`
}

// Damage calculation scenarios.
const (
	ScenarioGeneralContract = "general_contract"
	ScenarioPrivateLending  = "private_lending"
	ScenarioLaborContract   = "labor_contract"
)

// DiscretionaryWeight carries the judicial discretion inputs for general
// contract damage calculations.
type DiscretionaryWeight struct {
	PerformanceRatio float64 `json:"performance_ratio"` // 0.0-1.0
	FaultScore       float64 `json:"fault_score"`       // 1.0-2.0, 2.0 = malicious
	ConsumerContract bool    `json:"is_consumer_contract"`
}

// DamagesInput parameterizes CalculateDamages.
type DamagesInput struct {
	Scenario          string
	ActualLoss        float64
	ExpectationLoss   float64
	MitigationBenefit float64
	Weight            *DiscretionaryWeight

	// Private lending
	Rate float64

	// Labor contract
	TrainingCost    float64
	TotalMonths     int
	RemainingMonths int

	// Test hook: forces the legal DB sync failure path.
	SimulateDBFailure bool
}

// DamagesAdjustment is one note attached to a damages calculation.
type DamagesAdjustment struct {
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	LegalBasis string `json:"legal_basis,omitempty"`
}

// DamagesResult is the outcome of a damages calculation.
type DamagesResult struct {
	Scenario        string              `json:"scenario"`
	BaseLoss        float64             `json:"base_loss,omitempty"`
	Gamma           *GammaBreakdown     `json:"gamma_calculation,omitempty"`
	Adjustments     []DamagesAdjustment `json:"adjustments"`
	FinalSuggestion float64             `json:"final_suggestion"`
}

// GammaBreakdown explains the discretionary adjustment coefficient.
type GammaBreakdown struct {
	W1    float64 `json:"w1_performance"`
	W2    float64 `json:"w2_fault"`
	Gamma float64 `json:"gamma"`
}

// DiscretionResult is the outcome of a judicial discretion evaluation.
type DiscretionResult struct {
	Loss             float64  `json:"loss"`
	PerformanceRatio float64  `json:"performance_ratio"`
	FaultScore       float64  `json:"fault_score"`
	Gamma            float64  `json:"gamma"`
	FinalAmount      float64  `json:"final_amount"`
	ExceedsGuideline bool     `json:"exceeds_guideline"`
	LegalBasis       string   `json:"legal_basis"`
	Guidelines       []string `json:"guidelines"`
}

// HealthCheckResult is one sub-check of the health probe.
type HealthCheckResult struct {
	Status   string `json:"status"`
	Score    float64 `json:"score,omitempty"`
	Message  string `json:"message,omitempty"`
	LastSync string `json:"last_sync,omitempty"`
	Source   string `json:"source,omitempty"`
}

// HealthStatus is the overall health probe result.
type HealthStatus struct {
	Status    string                       `json:"status"`
	Version   string                       `json:"version"`
	Timestamp string                       `json:"timestamp"`
	Checks    map[string]HealthCheckResult `json:"checks"`
}
