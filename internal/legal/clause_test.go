package legal

import (
	"strings"
	"testing"

	"legalcn/internal/apperr"
)

func TestAnalyzeLegalClauseInvalidType(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.AnalyzeLegalClause("任何文本", "arbitration")

	if err == nil {
		t.Fatal("Expected an error for unknown clause type")
	}
	if !apperr.IsKind(err, apperr.KindInvalidClauseType) {
		t.Errorf("Expected INVALID_CLAUSE_TYPE, got %v", err)
	}
}

func TestAnalyzeLegalClauseEmptyText(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := engine.AnalyzeLegalClause(tt.text, "penalty")
			if err != nil {
				t.Fatalf("Empty input must not be an error, got %v", err)
			}
			if analysis.Classification != ClassificationInsufficientInput {
				t.Errorf("Expected insufficient_input, got %q", analysis.Classification)
			}
			if analysis.Compliance != ComplianceNeedsReview {
				t.Errorf("Expected needs_review, got %q", analysis.Compliance)
			}
			if len(analysis.Suggestions) == 0 {
				t.Error("Expected a suggestion asking for the clause text")
			}
		})
	}
}

func TestAnalyzePenaltyClause(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name               string
		text               string
		wantClassification string
		wantCompliance     Compliance
	}{
		{
			name:               "reasonable ratio",
			text:               "一方违约的,应支付合同总价款10%的违约金",
			wantClassification: "penalty_clause",
			wantCompliance:     ComplianceBasicallyCompliant,
		},
		{
			name:               "excessive ratio",
			text:               "违约金为合同总额的50%",
			wantClassification: "excessive_penalty",
			wantCompliance:     ComplianceNonCompliant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := engine.AnalyzeLegalClause(tt.text, "penalty")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if analysis.Classification != tt.wantClassification {
				t.Errorf("Expected classification %q, got %q", tt.wantClassification, analysis.Classification)
			}
			if analysis.Compliance != tt.wantCompliance {
				t.Errorf("Expected compliance %q, got %q", tt.wantCompliance, analysis.Compliance)
			}
			if len(analysis.Citations) == 0 {
				t.Error("Penalty analysis must cite its legal basis")
			}
		})
	}
}

func TestAnalyzeJurisdictionClause(t *testing.T) {
	engine := newTestEngine(t)

	domestic, err := engine.AnalyzeLegalClause("争议由上海市浦东新区人民法院管辖", "jurisdiction")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if domestic.Compliance != ComplianceCompliant {
		t.Errorf("Expected compliant for domestic venue, got %q", domestic.Compliance)
	}

	foreign, err := engine.AnalyzeLegalClause("争议由伦敦商事法庭管辖", "jurisdiction")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if foreign.Compliance != ComplianceNeedsReview {
		t.Errorf("Expected needs_review for foreign venue, got %q", foreign.Compliance)
	}
	if len(foreign.Suggestions) == 0 {
		t.Error("Expected a venue suggestion for the foreign clause")
	}
}

func TestAnalyzeLiabilityClause(t *testing.T) {
	engine := newTestEngine(t)

	void, err := engine.AnalyzeLegalClause("乙方对任何损失不承担任何责任", "liability")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if void.Classification != "void_exemption_clause" {
		t.Errorf("Expected void_exemption_clause, got %q", void.Classification)
	}
	if void.Compliance != ComplianceNonCompliant {
		t.Errorf("Expected non_compliant, got %q", void.Compliance)
	}

	// Non-compliant analyses must cite at least one rule entry.
	if len(void.Citations) == 0 {
		t.Fatal("Non-compliant analysis must carry citations")
	}
	found := false
	for _, c := range void.Citations {
		if c.RuleID == "civil-code-506" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a civil-code-506 citation, got %+v", void.Citations)
	}

	fair, err := engine.AnalyzeLegalClause("除故意或重大过失外,双方按过错比例承担责任", "liability")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fair.Compliance != ComplianceBasicallyCompliant {
		t.Errorf("Expected basically_compliant, got %q", fair.Compliance)
	}
}

func TestAnalyzeTerminationClause(t *testing.T) {
	engine := newTestEngine(t)

	analysis, err := engine.AnalyzeLegalClause("任何一方均可提前三十日书面通知解除本合同", "termination")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if analysis.Classification != "termination" {
		t.Errorf("Expected termination classification, got %q", analysis.Classification)
	}
	if len(analysis.Citations) == 0 {
		t.Error("Expected termination rules to be cited")
	}
	for _, c := range analysis.Citations {
		if !strings.HasPrefix(c.RuleID, "civil-code-") {
			t.Errorf("Unexpected citation %q", c.RuleID)
		}
	}
}
