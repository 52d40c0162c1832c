package legal

import (
	"math"
	"testing"

	"legalcn/internal/apperr"
)

func almostEqual(t *testing.T, want, got float64) {
	t.Helper()
	if math.Abs(want-got) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCalculateDamagesGeneralContract(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name     string
		input    DamagesInput
		wantBase float64
		wantFin  float64
	}{
		{
			name: "plain loss sum",
			input: DamagesInput{
				Scenario:          ScenarioGeneralContract,
				ActualLoss:        10000,
				ExpectationLoss:   5000,
				MitigationBenefit: 2000,
			},
			wantBase: 13000,
			wantFin:  13000,
		},
		{
			name: "mitigation exceeding loss floors at zero",
			input: DamagesInput{
				Scenario:          ScenarioGeneralContract,
				ActualLoss:        1000,
				MitigationBenefit: 5000,
			},
			wantBase: 0,
			wantFin:  0,
		},
		{
			name: "discretionary uplift",
			input: DamagesInput{
				Scenario:   ScenarioGeneralContract,
				ActualLoss: 10000,
				Weight: &DiscretionaryWeight{
					PerformanceRatio: 0.5,
					FaultScore:       2.0,
				},
			},
			wantBase: 10000,
			// gamma = 0.3 * (1 - 0.5) * 2.0 = 0.3
			wantFin: 13000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.CalculateDamages(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			almostEqual(t, tt.wantBase, result.BaseLoss)
			almostEqual(t, tt.wantFin, result.FinalSuggestion)
		})
	}
}

func TestCalculateDamagesGammaBreakdown(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.CalculateDamages(DamagesInput{
		Scenario:   ScenarioGeneralContract,
		ActualLoss: 1000,
		Weight: &DiscretionaryWeight{
			PerformanceRatio: 0.8,
			FaultScore:       1.5,
			ConsumerContract: true,
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Gamma == nil {
		t.Fatal("Expected a gamma breakdown")
	}
	almostEqual(t, 0.2, result.Gamma.W1)
	almostEqual(t, 1.5, result.Gamma.W2)
	almostEqual(t, 0.09, result.Gamma.Gamma)

	found := false
	for _, adj := range result.Adjustments {
		if adj.Type == "consumer_protection" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a consumer protection adjustment, got %+v", result.Adjustments)
	}
}

func TestCalculateDamagesPrivateLending(t *testing.T) {
	engine := newTestEngine(t)

	ok, err := engine.CalculateDamages(DamagesInput{
		Scenario: ScenarioPrivateLending,
		Rate:     0.10,
	})
	if err != nil {
		t.Fatalf("Rate within cap must pass, got %v", err)
	}
	almostEqual(t, 0.10, ok.FinalSuggestion)

	_, err = engine.CalculateDamages(DamagesInput{
		Scenario: ScenarioPrivateLending,
		Rate:     0.24,
	})
	if err == nil {
		t.Fatal("Expected rate above LPR*4 to be rejected")
	}
	appErr := apperr.As(err)
	if appErr == nil || appErr.Kind != apperr.KindValidation {
		t.Fatalf("Expected VALIDATION_ERROR, got %v", err)
	}
	if appErr.Details["risk_level"] != "critical" {
		t.Errorf("Expected critical risk level, got %v", appErr.Details["risk_level"])
	}
	if appErr.Details["legal_basis"] == "" || appErr.Details["legal_basis"] == nil {
		t.Error("Expected the legal basis in the error details")
	}
}

func TestCalculateDamagesDBSyncFailure(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.CalculateDamages(DamagesInput{
		Scenario:          ScenarioPrivateLending,
		Rate:              0.10,
		SimulateDBFailure: true,
	})

	if !apperr.IsKind(err, apperr.KindDBSync) {
		t.Errorf("Expected DB_SYNC_ERROR, got %v", err)
	}
}

func TestCalculateDamagesLaborContract(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.CalculateDamages(DamagesInput{
		Scenario:        ScenarioLaborContract,
		TrainingCost:    12000,
		TotalMonths:     24,
		RemainingMonths: 12,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	almostEqual(t, 6000, result.FinalSuggestion)
	if len(result.Adjustments) == 0 || result.Adjustments[0].LegalBasis == "" {
		t.Errorf("Expected the labor law basis in the adjustments, got %+v", result.Adjustments)
	}

	invalid := []DamagesInput{
		{Scenario: ScenarioLaborContract, TrainingCost: 12000, TotalMonths: 0, RemainingMonths: 1},
		{Scenario: ScenarioLaborContract, TrainingCost: 12000, TotalMonths: 24, RemainingMonths: 30},
		{Scenario: ScenarioLaborContract, TrainingCost: 12000, TotalMonths: 24, RemainingMonths: -1},
	}
	for _, in := range invalid {
		if _, err := engine.CalculateDamages(in); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("Expected VALIDATION_ERROR for %+v, got %v", in, err)
		}
	}
}

func TestCalculateDamagesUnknownScenario(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.CalculateDamages(DamagesInput{Scenario: "insurance"})

	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("Expected VALIDATION_ERROR, got %v", err)
	}
}

func TestEvaluateJudicialDiscretion(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.EvaluateJudicialDiscretion(10000, 0.5, 1.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	almostEqual(t, 0.15, result.Gamma)
	almostEqual(t, 11500, result.FinalAmount)
	if result.ExceedsGuideline {
		t.Error("15% uplift must not exceed the 30% guideline")
	}
	if result.LegalBasis == "" {
		t.Error("Expected the discretion standard source as legal basis")
	}
	if len(result.Guidelines) == 0 {
		t.Error("Expected guidelines from the discretion standard")
	}

	aggressive, err := engine.EvaluateJudicialDiscretion(10000, 0.0, 2.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	almostEqual(t, 0.6, aggressive.Gamma)
	almostEqual(t, 16000, aggressive.FinalAmount)
	if !aggressive.ExceedsGuideline {
		t.Error("60% uplift must be flagged as exceeding the guideline")
	}
}

func TestEvaluateJudicialDiscretionBounds(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name        string
		loss        float64
		performance float64
		fault       float64
	}{
		{"negative loss", -1, 0.5, 1.5},
		{"performance below range", 1000, -0.1, 1.5},
		{"performance above range", 1000, 1.1, 1.5},
		{"fault below range", 1000, 0.5, 0.9},
		{"fault above range", 1000, 0.5, 2.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.EvaluateJudicialDiscretion(tt.loss, tt.performance, tt.fault)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("Expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}
