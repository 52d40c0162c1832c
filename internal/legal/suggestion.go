package legal

// LegalSuggestion returns the remedy template for a risk type with the
// caller's context echoed into the result. Unknown risk types fail with
// UnknownRiskType; callers who want the generic advice ask for "general"
// explicitly.
func (e *Engine) LegalSuggestion(riskType, context string) (Suggestion, error) {
	tpl, err := e.store.SuggestionTemplate(riskType)
	if err != nil {
		return Suggestion{}, err
	}

	return Suggestion{
		RiskType:        tpl.RiskType,
		Title:           tpl.Title,
		Recommendations: tpl.Recommendations,
		ClauseTemplate:  tpl.ClauseTemplate,
		Context:         context,
	}, nil
}
