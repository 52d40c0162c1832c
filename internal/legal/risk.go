package legal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"legalcn/internal/rulestore"
)

// percentPattern extracts percentage figures, e.g. "50%" or "12.5 %".
var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// CheckContractRisk scans contract text for the requested risk categories
// and returns the findings in deterministic order: categories in request
// order (first occurrence wins on duplicates), patterns in rule-store
// order within each category.
//
// Unknown category names are ignored rather than rejected: they select no
// patterns. This keeps the tool usable with partial or newer category sets
// sent by older or newer clients.
func (e *Engine) CheckContractRisk(contractText string, checkTypes []string) []RiskFinding {
	findings := []RiskFinding{}
	seen := make(map[string]bool)

	for _, category := range checkTypes {
		if seen[category] {
			continue
		}
		seen[category] = true

		for _, p := range e.store.RiskPatterns(category) {
			if finding, ok := evalPattern(contractText, p); ok {
				findings = append(findings, finding)
			}
		}

		if category == "penalty" {
			findings = append(findings, e.penaltyRatioFindings(contractText)...)
		}
	}

	return findings
}

// RiskReport wraps CheckContractRisk findings into the report shape the
// tool returns, preserving the pass / found-risks status split.
func (e *Engine) RiskReport(contractText string, checkTypes []string) RiskReport {
	risks := e.CheckContractRisk(contractText, checkTypes)

	if len(risks) == 0 {
		return RiskReport{
			Status:         "通过",
			Message:        "初步检查未发现明显法律风险",
			Recommendation: "建议结合具体业务场景进行深度审计",
		}
	}

	return RiskReport{
		Status:         "发现风险",
		RiskCount:      len(risks),
		Risks:          risks,
		Recommendation: "建议咨询专业律师进行详细审查",
	}
}

// evalPattern applies one rule-store pattern to the text.
func evalPattern(text string, p rulestore.RiskPattern) (RiskFinding, bool) {
	matched := ""
	switch p.Match {
	case rulestore.MatchAny:
		for _, kw := range p.Keywords {
			if strings.Contains(text, kw) {
				matched = kw
				break
			}
		}
		if matched == "" {
			return RiskFinding{}, false
		}
	case rulestore.MatchAbsent:
		for _, kw := range p.Keywords {
			if strings.Contains(text, kw) {
				return RiskFinding{}, false
			}
		}
	default:
		return RiskFinding{}, false
	}

	return RiskFinding{
		Category:   p.Category,
		Severity:   Severity(p.Severity),
		Rationale:  p.Description,
		Suggestion: p.Suggestion,
		RuleID:     p.RuleID,
		ClauseRef:  matched,
	}, true
}

// penaltyRatioFindings scans for liquidated-damages percentages above the
// judicial cap. Only texts that actually talk about 违约金 are considered,
// so unrelated percentages (discounts, equity stakes) stay quiet.
func (e *Engine) penaltyRatioFindings(text string) []RiskFinding {
	if !strings.Contains(text, "违约金") {
		return nil
	}

	rules := e.store.PenaltyRules()
	capPct := rules.CapRatio * 100

	var findings []RiskFinding
	for _, match := range percentPattern.FindAllStringSubmatch(text, -1) {
		pct, err := strconv.ParseFloat(match[1], 64)
		if err != nil || pct <= capPct {
			continue
		}

		findings = append(findings, RiskFinding{
			Category: "penalty",
			Severity: SeverityHigh,
			Rationale: fmt.Sprintf("违约金比例 %s%% 超过司法实践上限 %.0f%%",
				match[1], capPct),
			Suggestion: rules.JudicialStandards.Adjustment,
			RuleID:     rules.RuleID,
			ClauseRef:  match[0],
		})
	}
	return findings
}
