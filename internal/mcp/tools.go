package mcp

import (
	"context"
	"encoding/json"
	"time"

	"legalcn/internal/apperr"
	"legalcn/internal/legal"
	"legalcn/internal/privacy"

	"github.com/mark3labs/mcp-go/mcp"
)

// Fixed tool registry. Names are part of the public protocol surface.
const (
	toolCheckContractRisk  = "check_contract_risk"
	toolAnalyzeLegalClause = "analyze_legal_clause"
	toolGetLegalSuggestion = "get_legal_suggestion"
	toolCalculateDamages   = "calculate_damages"
	toolEvaluateDiscretion = "evaluate_judicial_discretion"
	toolHealthCheck        = "health_check"
)

// defaultCheckTypes mirrors the tool schema default.
var defaultCheckTypes = []string{"jurisdiction", "penalty"}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(toolCheckContractRisk,
		mcp.WithDescription("检查合同文本中的法律风险,识别管辖权、违约金等关键条款"),
		mcp.WithString("contract_text",
			mcp.Required(),
			mcp.Description("合同文本内容"),
		),
		mcp.WithArray("check_types",
			mcp.Description("检查类型,可选: jurisdiction(管辖权), penalty(违约金), liability(责任条款)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("parent_pid",
			mcp.Description("关联的上级文档 PID (可选)"),
		),
	), s.wrapTool(toolCheckContractRisk, s.handleCheckContractRisk))

	s.mcpServer.AddTool(mcp.NewTool(toolAnalyzeLegalClause,
		mcp.WithDescription("分析特定法律条款的合规性,基于《民法典》进行评估"),
		mcp.WithString("clause_text",
			mcp.Required(),
			mcp.Description("需要分析的条款文本"),
		),
		mcp.WithString("clause_type",
			mcp.Required(),
			mcp.Description("条款类型"),
			mcp.Enum("penalty", "liability", "termination", "jurisdiction"),
		),
	), s.wrapTool(toolAnalyzeLegalClause, s.handleAnalyzeLegalClause))

	s.mcpServer.AddTool(mcp.NewTool(toolGetLegalSuggestion,
		mcp.WithDescription("根据风险类型获取法律建议和修改方案"),
		mcp.WithString("risk_type",
			mcp.Required(),
			mcp.Description("风险类型"),
			mcp.Enum("jurisdiction", "penalty", "liability", "general"),
		),
		mcp.WithString("context",
			mcp.Description("具体情况描述"),
		),
	), s.wrapTool(toolGetLegalSuggestion, s.handleGetLegalSuggestion))

	s.mcpServer.AddTool(mcp.NewTool(toolCalculateDamages,
		mcp.WithDescription("计算违约金，包含法律红线检查 (民间借贷利率封顶、劳动合同违约金上限)"),
		mcp.WithString("scenario",
			mcp.Required(),
			mcp.Description("场景类型"),
			mcp.Enum(legal.ScenarioGeneralContract, legal.ScenarioPrivateLending, legal.ScenarioLaborContract),
		),
		mcp.WithNumber("actual_loss", mcp.Description("实际损失")),
		mcp.WithNumber("expectation_loss", mcp.Description("可得利益损失")),
		mcp.WithNumber("mitigation_benefit", mcp.Description("减损收益")),
		mcp.WithNumber("performance_ratio", mcp.Description("合同履行比例 (0.0-1.0)")),
		mcp.WithNumber("fault_score", mcp.Description("过错程度评分 (1.0-2.0, 2.0为恶意)")),
		mcp.WithBoolean("is_consumer_contract", mcp.Description("是否消费者合同")),
		mcp.WithNumber("rate", mcp.Description("利率 (民间借贷场景)")),
		mcp.WithNumber("training_cost", mcp.Description("培训费用 (劳动合同场景)")),
		mcp.WithNumber("total_months", mcp.Description("服务期总月数 (劳动合同场景)")),
		mcp.WithNumber("remaining_months", mcp.Description("剩余月数 (劳动合同场景)")),
		mcp.WithBoolean("simulate_db_failure", mcp.Description("是否模拟数据库同步失败 (测试用)")),
	), s.wrapTool(toolCalculateDamages, s.handleCalculateDamages))

	s.mcpServer.AddTool(mcp.NewTool(toolEvaluateDiscretion,
		mcp.WithDescription("基于《九民纪要》与司法解释的裁量权行使标准评估违约金"),
		mcp.WithNumber("loss",
			mcp.Required(),
			mcp.Description("实际损失金额"),
		),
		mcp.WithNumber("performance",
			mcp.Required(),
			mcp.Description("合同履行比例 (0.0-1.0)"),
		),
		mcp.WithNumber("fault",
			mcp.Required(),
			mcp.Description("过错程度评分 (1.0-2.0, 2.0为恶意)"),
		),
		mcp.WithString("contract_pid",
			mcp.Description("关联的合同 PID (可选)"),
		),
	), s.wrapTool(toolEvaluateDiscretion, s.handleEvaluateDiscretion))

	s.mcpServer.AddTool(mcp.NewTool(toolHealthCheck,
		mcp.WithDescription("服务器健康检查探针"),
	), s.wrapTool(toolHealthCheck, s.handleHealthCheck))
}

// toolFunc is a protocol-free tool body: arguments in, plain data out.
type toolFunc func(request mcp.CallToolRequest) (any, error)

// wrapTool applies the shared middleware around a tool body: the
// elicitation gate before it, then compliance metadata injection, PII
// masking and error envelope translation after it.
func (s *Server) wrapTool(name string, fn toolFunc) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		s.logger.Debug("Tool called", "tool", name)

		if reason, hit := privacy.CheckElicitation(request.GetArguments()); hit {
			s.logger.Warn("Elicitation required", "tool", name, "reason", reason)
			return mcp.NewToolResultError(errorEnvelope(
				apperr.ElicitationRequired("[Elicitation Required] " + reason))), nil
		}

		result, err := fn(request)
		if err != nil {
			s.logger.Error("Tool failed", "tool", name, "error", err)
			return mcp.NewToolResultError(errorEnvelope(err)), nil
		}

		text, err := s.renderToolResult(result)
		if err != nil {
			s.logger.Error("Failed to encode tool result", "tool", name, "error", err)
			return mcp.NewToolResultError(errorEnvelope(apperr.Internal("%v", err))), nil
		}

		s.logger.LogPerformance(name, start)
		return mcp.NewToolResultText(text), nil
	}
}

// renderToolResult serializes a tool result, injects the compliance
// metadata block and masks PII in the serialized form.
func (s *Server) renderToolResult(result any) (string, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return "", err
	}

	// Re-decode to a generic map so the metadata block can be attached
	// uniformly, whatever struct the engine returned.
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Non-object result: mask and return as-is.
		return s.masker.MaskText(string(raw)), nil
	}

	meta, _ := payload["metadata"].(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}
	for k, v := range privacy.ComplianceMetadata("Legal-CN-v" + s.config.ServerVersion) {
		meta[k] = v
	}
	payload["metadata"] = meta

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return s.masker.MaskText(string(out)), nil
}

func (s *Server) handleCheckContractRisk(request mcp.CallToolRequest) (any, error) {
	contractText, err := request.RequireString("contract_text")
	if err != nil {
		return nil, apperr.Validation("contract_text 参数是必需的", nil)
	}
	checkTypes := request.GetStringSlice("check_types", defaultCheckTypes)
	parentPID := request.GetString("parent_pid", "")

	report := s.engine.RiskReport(contractText, checkTypes)

	// Every generated report gets a persistent identifier so follow-up
	// calls can reference it.
	pid := s.pids.Mint(report, map[string]any{
		"type":         "RiskAssessmentReport",
		"generated_by": toolCheckContractRisk,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	}, parentPID)

	result := map[string]any{
		"status":         report.Status,
		"recommendation": report.Recommendation,
		"report_pid":     pid,
	}
	if report.Message != "" {
		result["message"] = report.Message
	}
	if report.RiskCount > 0 {
		result["risk_count"] = report.RiskCount
		result["risks"] = report.Risks
	}
	if parentPID != "" {
		result["related_to"] = parentPID
	}
	return result, nil
}

func (s *Server) handleAnalyzeLegalClause(request mcp.CallToolRequest) (any, error) {
	clauseText, err := request.RequireString("clause_text")
	if err != nil {
		return nil, apperr.Validation("clause_text 参数是必需的", nil)
	}
	clauseType, err := request.RequireString("clause_type")
	if err != nil {
		return nil, apperr.Validation("clause_type 参数是必需的", nil)
	}

	return s.engine.AnalyzeLegalClause(clauseText, clauseType)
}

func (s *Server) handleGetLegalSuggestion(request mcp.CallToolRequest) (any, error) {
	riskType, err := request.RequireString("risk_type")
	if err != nil {
		return nil, apperr.Validation("risk_type 参数是必需的", nil)
	}
	context := request.GetString("context", "")

	return s.engine.LegalSuggestion(riskType, context)
}

func (s *Server) handleCalculateDamages(request mcp.CallToolRequest) (any, error) {
	scenario, err := request.RequireString("scenario")
	if err != nil {
		return nil, apperr.Validation("scenario 参数是必需的", nil)
	}

	input := legal.DamagesInput{
		Scenario:          scenario,
		ActualLoss:        request.GetFloat("actual_loss", 0),
		ExpectationLoss:   request.GetFloat("expectation_loss", 0),
		MitigationBenefit: request.GetFloat("mitigation_benefit", 0),
		Rate:              request.GetFloat("rate", 0),
		TrainingCost:      request.GetFloat("training_cost", 0),
		TotalMonths:       request.GetInt("total_months", 0),
		RemainingMonths:   request.GetInt("remaining_months", 0),
		SimulateDBFailure: request.GetBool("simulate_db_failure", false),
	}

	// The discretionary weight only participates when the caller supplied
	// its inputs; a zero fault score would otherwise null the adjustment.
	args := request.GetArguments()
	if _, ok := args["performance_ratio"]; ok {
		input.Weight = &legal.DiscretionaryWeight{
			PerformanceRatio: request.GetFloat("performance_ratio", 0),
			FaultScore:       request.GetFloat("fault_score", 1),
			ConsumerContract: request.GetBool("is_consumer_contract", false),
		}
	}

	return s.engine.CalculateDamages(input)
}

func (s *Server) handleEvaluateDiscretion(request mcp.CallToolRequest) (any, error) {
	loss, err := request.RequireFloat("loss")
	if err != nil {
		return nil, apperr.Validation("loss 参数是必需的", nil)
	}
	performance, err := request.RequireFloat("performance")
	if err != nil {
		return nil, apperr.Validation("performance 参数是必需的", nil)
	}
	fault, err := request.RequireFloat("fault")
	if err != nil {
		return nil, apperr.Validation("fault 参数是必需的", nil)
	}

	result, err := s.engine.EvaluateJudicialDiscretion(loss, performance, fault)
	if err != nil {
		return nil, err
	}

	if contractPID := request.GetString("contract_pid", ""); contractPID != "" {
		return map[string]any{
			"evaluation":   result,
			"contract_pid": contractPID,
		}, nil
	}
	return result, nil
}

func (s *Server) handleHealthCheck(request mcp.CallToolRequest) (any, error) {
	return s.engine.HealthCheck(s.config.ServerVersion), nil
}
