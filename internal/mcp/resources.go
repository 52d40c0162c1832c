package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs. Contract templates live under their own scheme; everything
// else (checklist, assessment rules, minted report PIDs) shares legal://.
const (
	contractTemplateScheme = "civil_code_contract://"
	uriChecklist           = "legal://templates/contract-checklist"
	uriPenaltyRules        = "legal://rules/penalty-assessment"
	uriDiscretion          = "legal://judicial-discretion/standards"
	uriPIDTemplate         = "legal://pid/{handle}"
)

func (s *Server) registerResources() {
	for _, id := range s.store.TemplateIDs() {
		entry, err := s.store.ContractTemplate(id)
		if err != nil {
			continue
		}
		uri := contractTemplateScheme + id
		s.mcpServer.AddResource(mcp.NewResource(
			uri,
			entry.Title,
			mcp.WithResourceDescription("《民法典》"+entry.Title+"核心条款"),
			mcp.WithMIMEType("application/json"),
		), s.handleContractTemplate(id))
	}

	s.mcpServer.AddResource(mcp.NewResource(
		uriChecklist,
		"合同审查检查清单",
		mcp.WithResourceDescription("结构化的合同审查检查清单，按审查阶段分节"),
		mcp.WithMIMEType("application/json"),
	), s.handleChecklist)

	s.mcpServer.AddResource(mcp.NewResource(
		uriPenaltyRules,
		"违约金评估规则",
		mcp.WithResourceDescription("违约金司法审查标准，含30%上限与调整方法"),
		mcp.WithMIMEType("application/json"),
	), s.handlePenaltyRules)

	s.mcpServer.AddResource(mcp.NewResource(
		uriDiscretion,
		"司法裁量权行使标准",
		mcp.WithResourceDescription("基于《九民纪要》的违约金裁量因素与指引"),
		mcp.WithMIMEType("application/json"),
	), s.handleDiscretionStandards)

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(
		uriPIDTemplate,
		"已归档的分析报告",
		mcp.WithTemplateDescription("通过持久标识符检索先前生成的风险评估报告"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.handlePIDLookup)
}

// fdoEnvelope wraps reference content as a JSON-LD FAIR digital object.
// dateCreated is the store load time, not the read time, so repeated reads
// of the same resource are byte-identical.
func (s *Server) fdoEnvelope(uri, docType, name string, content any) map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       docType,
		"identifier":  uri,
		"name":        name,
		"dateCreated": s.store.LoadedAt().Format(time.RFC3339),
		"license":     "https://creativecommons.org/licenses/by-nc/4.0/",
		"publisher":   s.config.ServerName,
		"content":     content,
	}
}

func jsonResource(uri string, payload any) ([]mcp.ResourceContents, error) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(raw),
		},
	}, nil
}

func (s *Server) handleContractTemplate(id string) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entry, err := s.store.ContractTemplate(id)
		if err != nil {
			return nil, err
		}

		uri := contractTemplateScheme + id
		payload := s.fdoEnvelope(uri, "Legislation", entry.Title, map[string]any{
			"title":  entry.Title,
			"source": entry.Source,
			"tags":   entry.Tags,
			"text":   entry.Content,
		})
		return jsonResource(uri, payload)
	}
}

func (s *Server) handleChecklist(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload := s.fdoEnvelope(uriChecklist, "HowTo", "合同审查检查清单", map[string]any{
		"sections": s.store.Checklist(),
	})
	return jsonResource(uriChecklist, payload)
}

func (s *Server) handlePenaltyRules(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload := s.fdoEnvelope(uriPenaltyRules, "Legislation", "违约金评估规则", s.store.PenaltyRules())
	return jsonResource(uriPenaltyRules, payload)
}

func (s *Server) handleDiscretionStandards(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload := s.fdoEnvelope(uriDiscretion, "Legislation", "司法裁量权行使标准", s.store.DiscretionStandards())
	return jsonResource(uriDiscretion, payload)
}

func (s *Server) handlePIDLookup(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	record, err := s.pids.Lookup(uri)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Report",
		"identifier":  record.URI,
		"dateCreated": record.CreatedAt,
		"contentHash": "sha256:" + record.ContentHash,
		"metadata":    record.Metadata,
		"content":     record.Content,
	}
	if record.ParentPID != "" {
		payload["isBasedOn"] = record.ParentPID
	}
	return jsonResource(uri, payload)
}
