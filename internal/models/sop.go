package models

import "time"

// SOPStep is one ordered step of a standard operating procedure document.
type SOPStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type SOPFAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SOP is a reusable procedure document, managed independently of tasks.
type SOP struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Purpose   string    `json:"purpose"`
	Inputs    []string  `json:"inputs"`
	Steps     []SOPStep `json:"steps"`
	Outputs   []string  `json:"outputs"`
	FAQs      []SOPFAQ  `json:"faqs"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateSOPInput struct {
	Title   string    `json:"title"`
	Purpose string    `json:"purpose"`
	Inputs  []string  `json:"inputs"`
	Steps   []SOPStep `json:"steps"`
	Outputs []string  `json:"outputs"`
	FAQs    []SOPFAQ  `json:"faqs"`
	Tags    []string  `json:"tags"`
}

type UpdateSOPInput struct {
	Title   *string    `json:"title"`
	Purpose *string    `json:"purpose"`
	Inputs  *[]string  `json:"inputs"`
	Steps   *[]SOPStep `json:"steps"`
	Outputs *[]string  `json:"outputs"`
	FAQs    *[]SOPFAQ  `json:"faqs"`
	Tags    *[]string  `json:"tags"`
}

// SuggestionRequest asks for canned drafting hints for one SOP field.
type SuggestionRequest struct {
	Field          string `json:"field"`
	Context        string `json:"context"`
	CurrentContent string `json:"currentContent"`
}
