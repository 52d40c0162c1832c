// Package legal implements the contract logic engine: risk scanning,
// clause analysis, remedy suggestions, damages calculation and prompt
// rendering over an injected rule store.
//
// The engine is deliberately protocol-free. It receives plain data and
// returns plain data; the MCP envelope lives entirely in internal/mcp.
// All state is the immutable rule store, so every method is safe for
// concurrent use.
package legal

import (
	"fmt"
	"text/template"

	"legalcn/internal/rulestore"
)

// Engine evaluates contract text against the rule store.
type Engine struct {
	store *rulestore.Store

	reviewPrompt     *template.Template
	assessmentPrompt *template.Template
}

// NewEngine creates an engine over the given rule store.
func NewEngine(store *rulestore.Store) (*Engine, error) {
	reviewPrompt, err := template.New("contract_review").Parse(contractReviewTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing contract review template: %w", err)
	}
	assessmentPrompt, err := template.New("risk_assessment").Parse(riskAssessmentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing risk assessment template: %w", err)
	}

	return &Engine{
		store:            store,
		reviewPrompt:     reviewPrompt,
		assessmentPrompt: assessmentPrompt,
	}, nil
}

// Store exposes the underlying rule store for resource serving.
func (e *Engine) Store() *rulestore.Store {
	return e.store
}
