package privacy

import (
	"fmt"
	"strings"
	"time"
)

// sensitiveFields are the PIPL special-category markers that require
// explicit user confirmation before processing.
var sensitiveFields = []string{
	"medical_record", "病历",
	"biometric", "生物特征",
	"face_id", "人脸",
	"fingerprint", "指纹",
	"genetic", "基因",
}

// CheckElicitation scans tool arguments for sensitive-category fields.
// A hit returns the reason the call must be confirmed by the user first;
// the tool handler aborts before the logic layer runs.
func CheckElicitation(arguments map[string]any) (string, bool) {
	raw := strings.ToLower(fmt.Sprintf("%v", arguments))
	for _, keyword := range sensitiveFields {
		if strings.Contains(raw, keyword) {
			return fmt.Sprintf("检测到敏感信息字段 '%s'，需获取用户显式确认 (mcp_elicitation_request)", keyword), true
		}
	}
	return "", false
}

// ComplianceMetadata returns the gb_45438 compliance block injected into
// structured tool results.
func ComplianceMetadata(modelVersion string) map[string]any {
	return map[string]any{
		"gb_45438_compliance": map[string]any{
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
			"model_version": modelVersion,
			"watermark":     "AI Generated Content - PIPL Compliant",
			"processor":     "PrivacyPreservingMAE",
		},
	}
}
