package legal

import (
	"strings"

	"legalcn/internal/apperr"
	"legalcn/internal/rulestore"
)

// domesticVenues are locations considered to have an obvious real
// connection for jurisdiction clauses.
var domesticVenues = []string{"北京", "上海", "深圳", "广州"}

// AnalyzeLegalClause classifies a single clause against the rule entries
// tagged with clauseType. Unknown clause types fail with
// InvalidClauseType; empty input is a boundary case, answered with an
// insufficient-input classification instead of an error.
//
// A non-compliant result always cites at least one rule entry.
func (e *Engine) AnalyzeLegalClause(clauseText, clauseType string) (ClauseAnalysis, error) {
	if !e.store.ClauseTagged(clauseType) {
		return ClauseAnalysis{}, apperr.InvalidClauseType(clauseType)
	}

	analysis := ClauseAnalysis{
		ClauseType: clauseType,
		ClauseText: clauseText,
		Compliance: ComplianceNeedsReview,
		Citations:  []Citation{},
	}

	if strings.TrimSpace(clauseText) == "" {
		analysis.Classification = ClassificationInsufficientInput
		analysis.Suggestions = append(analysis.Suggestions, "请提供完整的条款文本以便分析")
		return analysis, nil
	}

	for _, rule := range e.store.ClauseRules(clauseType) {
		analysis.Citations = append(analysis.Citations, Citation{
			RuleID: rule.ID,
			Title:  rule.Title,
			Source: rule.Source,
		})
	}

	switch clauseType {
	case "penalty":
		e.analyzePenaltyClause(clauseText, &analysis)
	case "jurisdiction":
		e.analyzeJurisdictionClause(clauseText, &analysis)
	case "liability":
		e.analyzeLiabilityClause(clauseText, &analysis)
	default:
		analysis.Classification = clauseType
	}

	return analysis, nil
}

func (e *Engine) analyzePenaltyClause(text string, analysis *ClauseAnalysis) {
	analysis.Classification = "penalty_clause"
	analysis.Compliance = ComplianceBasicallyCompliant

	if strings.Contains(text, "%") || strings.Contains(text, "倍") {
		analysis.Suggestions = append(analysis.Suggestions, "注意违约金比例,避免被认定为过高")
	}

	// A ratio above the judicial cap flips the clause to non-compliant.
	if over := e.penaltyRatioFindings(text); len(over) > 0 {
		analysis.Compliance = ComplianceNonCompliant
		analysis.Classification = "excessive_penalty"
		analysis.Suggestions = append(analysis.Suggestions, over[0].Suggestion)
	}
}

func (e *Engine) analyzeJurisdictionClause(text string, analysis *ClauseAnalysis) {
	analysis.Classification = "jurisdiction_clause"

	for _, venue := range domesticVenues {
		if strings.Contains(text, venue) {
			analysis.Compliance = ComplianceCompliant
			return
		}
	}

	analysis.Compliance = ComplianceNeedsReview
	analysis.Suggestions = append(analysis.Suggestions, "建议选择与合同有实际联系的地点")
}

func (e *Engine) analyzeLiabilityClause(text string, analysis *ClauseAnalysis) {
	analysis.Classification = "liability_clause"
	analysis.Compliance = ComplianceBasicallyCompliant

	for _, p := range e.store.RiskPatterns("liability") {
		if p.Match != rulestore.MatchAny {
			continue
		}
		for _, kw := range p.Keywords {
			if strings.Contains(text, kw) {
				analysis.Compliance = ComplianceNonCompliant
				analysis.Classification = "void_exemption_clause"
				analysis.Suggestions = append(analysis.Suggestions, p.Suggestion)
				return
			}
		}
	}
}
