package legal

import (
	"fmt"

	"legalcn/internal/apperr"
)

// staticLPR is the fallback one-year loan prime rate used when no live
// legal database is wired up (reference value, early 2024).
const staticLPR = 0.0345

// lprCapMultiple is the private-lending protection cap: four times LPR.
const lprCapMultiple = 4.0

// latestLPR returns the one-year LPR. The live legal database sync is an
// external collaborator; simulateFailure exercises its failure path, which
// surfaces as a DB sync error to the caller.
func latestLPR(simulateFailure bool) (float64, error) {
	if simulateFailure {
		return 0, apperr.DBSync("法律数据库同步失败，已切换至备用静态数据源")
	}
	return staticLPR, nil
}

// CalculateDamages computes a liquidated-damages suggestion with red-line
// interception for the regulated scenarios.
//
// General contracts: L = actual + expectation - mitigation (floored at 0),
// gamma = 0.3 * (1 - performance) * fault, suggestion = L * (1 + gamma).
// Private lending: rates above LPR*4 are rejected outright with the legal
// basis in the error details. Labor contracts: the cap is the unamortized
// share of the training cost.
func (e *Engine) CalculateDamages(in DamagesInput) (DamagesResult, error) {
	result := DamagesResult{
		Scenario:    in.Scenario,
		Adjustments: []DamagesAdjustment{},
	}

	switch in.Scenario {
	case ScenarioPrivateLending:
		if err := e.checkLendingRate(in.Rate, in.SimulateDBFailure); err != nil {
			return DamagesResult{}, err
		}
		result.FinalSuggestion = in.Rate
		return result, nil

	case ScenarioLaborContract:
		limit, err := laborContractLimit(in.TrainingCost, in.TotalMonths, in.RemainingMonths)
		if err != nil {
			return DamagesResult{}, err
		}
		result.Adjustments = append(result.Adjustments, DamagesAdjustment{
			Message:    fmt.Sprintf("劳动合同违约金上限为服务期尚未履行部分所应分摊的培训费用 (%.2f)。", limit),
			LegalBasis: "《中华人民共和国劳动合同法》第二十二条",
		})
		result.FinalSuggestion = limit
		return result, nil

	case ScenarioGeneralContract:
		// fallthrough to the general formula below

	default:
		return DamagesResult{}, apperr.Validation(
			fmt.Sprintf("未知计算场景: %s", in.Scenario),
			map[string]any{"scenario": in.Scenario},
		)
	}

	baseLoss := in.ActualLoss + in.ExpectationLoss - in.MitigationBenefit
	if baseLoss < 0 {
		baseLoss = 0
	}
	result.BaseLoss = baseLoss

	gamma := 0.0
	if w := in.Weight; w != nil {
		w1 := 1.0 - w.PerformanceRatio
		if w1 < 0 {
			w1 = 0
		}
		w2 := w.FaultScore

		gamma = 0.3 * w1 * w2
		result.Gamma = &GammaBreakdown{W1: w1, W2: w2, Gamma: gamma}

		if w.ConsumerContract {
			result.Adjustments = append(result.Adjustments, DamagesAdjustment{
				Type:       "consumer_protection",
				Message:    "消费者合同，建议法院在裁量时更加倾向于保护消费者权益，严格审查格式条款。",
				LegalBasis: "《消费者权益保护法》",
			})
		}
	}

	result.FinalSuggestion = baseLoss * (1.0 + gamma)
	return result, nil
}

// checkLendingRate enforces the LPR*4 private-lending cap.
func (e *Engine) checkLendingRate(rate float64, simulateDBFailure bool) error {
	lpr, err := latestLPR(simulateDBFailure)
	if err != nil {
		return err
	}

	limit := lpr * lprCapMultiple
	if rate > limit {
		return apperr.Validation(
			fmt.Sprintf("约定利率 (%.2f%%) 超过法律保护上限 (%.2f%%)", rate*100, limit*100),
			map[string]any{
				"risk_level":  string(SeverityCritical),
				"legal_basis": "《最高人民法院关于审理民间借贷案件适用法律若干问题的规定》",
				"limit":       limit,
				"provided":    rate,
			},
		)
	}
	return nil
}

// laborContractLimit is the unamortized training cost cap for labor
// contract liquidated damages.
func laborContractLimit(trainingCost float64, totalMonths, remainingMonths int) (float64, error) {
	if totalMonths <= 0 {
		return 0, apperr.Validation("服务期总月数必须大于0",
			map[string]any{"total_months": totalMonths})
	}
	if remainingMonths < 0 || remainingMonths > totalMonths {
		return 0, apperr.Validation("剩余月数必须在0和服务期总月数之间",
			map[string]any{"remaining_months": remainingMonths, "total_months": totalMonths})
	}

	return (trainingCost / float64(totalMonths)) * float64(remainingMonths), nil
}

// EvaluateJudicialDiscretion applies the 九民纪要 discretion baseline:
// final = loss * (1 + 0.3 * (1 - performance) * fault). Results whose
// uplift exceeds the 30% guideline are flagged, not rejected; the caller
// decides what to do with an aggressive claim.
func (e *Engine) EvaluateJudicialDiscretion(loss, performance, fault float64) (DiscretionResult, error) {
	if loss < 0 {
		return DiscretionResult{}, apperr.Validation("实际损失不能为负数",
			map[string]any{"loss": loss})
	}
	if performance < 0 || performance > 1 {
		return DiscretionResult{}, apperr.Validation("合同履行比例必须在 0.0 到 1.0 之间",
			map[string]any{"performance": performance})
	}
	if fault < 1 || fault > 2 {
		return DiscretionResult{}, apperr.Validation("过错程度评分必须在 1.0 到 2.0 之间",
			map[string]any{"fault": fault})
	}

	standards := e.store.DiscretionStandards()

	gamma := 0.3 * (1 - performance) * fault
	final := loss * (1 + gamma)

	return DiscretionResult{
		Loss:             loss,
		PerformanceRatio: performance,
		FaultScore:       fault,
		Gamma:            gamma,
		FinalAmount:      final,
		ExceedsGuideline: final > loss*1.3,
		LegalBasis:       standards.Source,
		Guidelines:       standards.Guidelines,
	}, nil
}
