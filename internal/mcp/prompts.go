package mcp

import (
	"context"

	"legalcn/internal/legal"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	promptContractReview = "contract_review_flow"
	promptRiskAssessment = "risk_assessment_template"
)

func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(mcp.NewPrompt(promptContractReview,
		mcp.WithPromptDescription("合同审查标准工作流程，引导分步审查"),
		mcp.WithArgument("contract_type",
			mcp.ArgumentDescription("合同类型，如租赁合同、买卖合同 (默认: "+legal.DefaultContractType+")"),
		),
	), s.handleContractReviewPrompt)

	s.mcpServer.AddPrompt(mcp.NewPrompt(promptRiskAssessment,
		mcp.WithPromptDescription("企业合作风险评估报告模板"),
		mcp.WithArgument("company_name",
			mcp.ArgumentDescription("被评估企业名称"),
			mcp.RequiredArgument(),
		),
	), s.handleRiskAssessmentPrompt)
}

func (s *Server) handleContractReviewPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	contractType := request.Params.Arguments["contract_type"]

	text, err := s.engine.ContractReviewPrompt(contractType)
	if err != nil {
		return nil, err
	}

	return mcp.NewGetPromptResult(
		"合同审查工作流程",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleRiskAssessmentPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	companyName := request.Params.Arguments["company_name"]

	text, err := s.engine.RiskAssessmentPrompt(companyName)
	if err != nil {
		return nil, err
	}

	return mcp.NewGetPromptResult(
		"企业风险评估报告模板",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
