package handlers

import (
	"net/http"
	"strings"

	"github.com/soptrack/soptracker/internal/models"
	"github.com/soptrack/soptracker/internal/repository"
	"github.com/soptrack/soptracker/internal/service"
)

type SOPHandler struct {
	sops        *repository.SOPRepository
	suggestions *service.SuggestionService
}

func NewSOPHandler(sops *repository.SOPRepository, suggestions *service.SuggestionService) *SOPHandler {
	return &SOPHandler{sops: sops, suggestions: suggestions}
}

func (h *SOPHandler) ListSOPs(w http.ResponseWriter, r *http.Request) {
	sops, err := h.sops.List()
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sops": sops})
}

func (h *SOPHandler) CreateSOP(w http.ResponseWriter, r *http.Request) {
	var input models.CreateSOPInput
	if !decodeBody(w, r, &input) {
		return
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Purpose = strings.TrimSpace(input.Purpose)
	if input.Title == "" || input.Purpose == "" {
		writeError(w, http.StatusBadRequest, "title and purpose are required")
		return
	}

	sop, err := h.sops.Create(input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"sop": sop})
}

func (h *SOPHandler) GetSOP(w http.ResponseWriter, r *http.Request) {
	sop, err := h.sops.Get(r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sop": sop})
}

func (h *SOPHandler) UpdateSOP(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateSOPInput
	if !decodeBody(w, r, &input) {
		return
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		writeError(w, http.StatusBadRequest, "title must not be blank")
		return
	}
	if input.Purpose != nil && strings.TrimSpace(*input.Purpose) == "" {
		writeError(w, http.StatusBadRequest, "purpose must not be blank")
		return
	}

	sop, err := h.sops.Update(r.PathValue("id"), input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sop": sop})
}

func (h *SOPHandler) DeleteSOP(w http.ResponseWriter, r *http.Request) {
	if err := h.sops.Delete(r.PathValue("id")); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Suggest serves canned drafting hints for one SOP field. There is no
// model behind it, matching the product's stubbed AI surface.
func (h *SOPHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Context) == "" {
		writeError(w, http.StatusBadRequest, "context is required")
		return
	}

	suggestions, confidence, err := h.suggestions.Suggest(req.Field, req.Context)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"suggestions": suggestions,
		"confidence":  confidence,
	})
}
