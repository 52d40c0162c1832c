package legal

import (
	"strings"

	"legalcn/internal/apperr"
)

// DefaultContractType is used when the review prompt is requested without
// an explicit contract type.
const DefaultContractType = "通用合同"

const contractReviewTemplate = `# 合同审查工作流程

## 审查对象
合同类型: {{.ContractType}}

## 审查步骤

### 第一步: 形式审查
1. 检查合同各方的主体资格
2. 确认合同签字盖章是否完整
3. 核对合同文本是否有涂改

### 第二步: 内容审查
1. 使用 ` + "`check_contract_risk`" + ` 工具进行初步风险扫描
2. 逐条审查主要条款的完整性和合理性
3. 特别关注: 价款、履行期限、违约责任、争议解决

### 第三步: 合规性审查
1. 检查是否违反法律强制性规定
2. 使用 ` + "`analyze_legal_clause`" + ` 工具分析关键条款
3. 参考 ` + "`civil_code_contract://general`" + ` 资源

### 第四步: 风险评估
1. 识别潜在法律风险
2. 使用 ` + "`get_legal_suggestion`" + ` 获取修改建议
3. 出具风险评估报告

### 第五步: 修改建议
1. 针对发现的问题提出具体修改方案
2. 提供标准条款模板
3. 建议是否需要进一步法律咨询

## 输出格式
请按照以上步骤,生成详细的合同审查报告。
`

const riskAssessmentTemplate = `# 企业风险评估报告

## 评估对象
企业名称: {{.CompanyName}}

## 评估维度

### 1. 主体资格审查
- 企业是否依法设立
- 营业执照是否有效
- 经营范围是否符合

### 2. 信用状况评估
- 是否存在失信记录
- 是否有重大诉讼
- 是否有经营异常

### 3. 合同履约能力
- 注册资本是否充足
- 经营状况是否良好
- 是否有履约保障措施

### 4. 法律风险提示
- 识别潜在法律风险
- 提出风险防范建议
- 建议合同条款设置

## 数据来源
- 国家企业信用信息公示系统
- 中国裁判文书网
- 天眼查等第三方平台 (如已集成)

## 输出要求
请生成一份完整的企业风险评估报告,包含以上所有维度的分析。
`

// ContractReviewPrompt renders the contract review workflow prompt.
// Rendering is pure template interpolation: identical input yields
// byte-identical output.
func (e *Engine) ContractReviewPrompt(contractType string) (string, error) {
	if strings.TrimSpace(contractType) == "" {
		contractType = DefaultContractType
	}

	var sb strings.Builder
	err := e.reviewPrompt.Execute(&sb, struct{ ContractType string }{contractType})
	if err != nil {
		return "", apperr.Internal("渲染合同审查提示词失败: %v", err)
	}
	return sb.String(), nil
}

// RiskAssessmentPrompt renders the company risk assessment prompt.
// The company name is required.
func (e *Engine) RiskAssessmentPrompt(companyName string) (string, error) {
	if strings.TrimSpace(companyName) == "" {
		return "", apperr.Validation("company_name 参数是必需的", nil)
	}

	var sb strings.Builder
	err := e.assessmentPrompt.Execute(&sb, struct{ CompanyName string }{companyName})
	if err != nil {
		return "", apperr.Internal("渲染风险评估提示词失败: %v", err)
	}
	return sb.String(), nil
}
