package service

import (
	"fmt"
	"strings"
)

// SuggestionService produces canned drafting hints for SOP fields.
// There is no model behind it; the lists are fixed.
type SuggestionService struct{}

func NewSuggestionService() *SuggestionService {
	return &SuggestionService{}
}

const suggestionConfidence = 0.6

var suggestionsByField = map[string][]string{
	"purpose": {
		"Ensure the procedure produces the same outcome regardless of who runs it",
		"Reduce onboarding time by capturing the steps a new person needs",
		"Prevent the known failure modes of doing this task from memory",
	},
	"inputs": {
		"Access credentials or permissions required before starting",
		"Source documents, templates or data files the procedure consumes",
		"Names of the people who must be notified or involved",
	},
	"steps": {
		"Break the work into steps that each produce a checkable result",
		"Start each step with the action, then state the expected outcome",
		"Add a verification step before anything irreversible",
	},
	"outputs": {
		"The finished artifact and where it is stored",
		"A record or notification confirming the procedure ran",
		"Updated state in the systems the procedure touches",
	},
	"faqs": {
		"What should I do when a step fails partway through?",
		"Who approves exceptions to this procedure?",
		"How often should this document be reviewed?",
	},
}

// Suggest returns the canned list for the field, seeded with the
// caller's context as the first entry when one is given.
func (s *SuggestionService) Suggest(field, context string) ([]string, float64, error) {
	canned, ok := suggestionsByField[field]
	if !ok {
		return nil, 0, fmt.Errorf("unknown suggestion field %q", field)
	}

	suggestions := make([]string, 0, len(canned)+1)
	if ctx := strings.TrimSpace(context); ctx != "" {
		suggestions = append(suggestions, fmt.Sprintf("Tailor this section to: %s", ctx))
	}
	suggestions = append(suggestions, canned...)
	return suggestions, suggestionConfidence, nil
}
