package handlers

import (
	"net/http"
	"strings"

	"github.com/soptrack/soptracker/internal/models"
	"github.com/soptrack/soptracker/internal/repository"
)

type EvidenceHandler struct {
	evidence *repository.EvidenceRepository
	steps    *repository.StepRepository
}

func NewEvidenceHandler(evidence *repository.EvidenceRepository, steps *repository.StepRepository) *EvidenceHandler {
	return &EvidenceHandler{evidence: evidence, steps: steps}
}

func (h *EvidenceHandler) ListEvidence(w http.ResponseWriter, r *http.Request) {
	step, err := h.steps.Get(r.PathValue("id"), r.PathValue("stepId"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"evidence": step.Evidence})
}

func (h *EvidenceHandler) AddEvidence(w http.ResponseWriter, r *http.Request) {
	var input models.CreateEvidenceInput
	if !decodeBody(w, r, &input) {
		return
	}

	if input.Kind == "" || strings.TrimSpace(input.Name) == "" || input.URL == "" || input.Size == nil {
		writeError(w, http.StatusBadRequest, "invalid evidence payload")
		return
	}
	if !input.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "invalid evidence kind")
		return
	}
	if *input.Size < 0 {
		writeError(w, http.StatusBadRequest, "size must not be negative")
		return
	}

	step, err := h.evidence.Add(r.PathValue("id"), r.PathValue("stepId"), input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"step": step})
}

func (h *EvidenceHandler) GetEvidence(w http.ResponseWriter, r *http.Request) {
	ev, err := h.evidence.Get(r.PathValue("id"), r.PathValue("stepId"), r.PathValue("evidenceId"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"evidence": ev})
}

func (h *EvidenceHandler) RemoveEvidence(w http.ResponseWriter, r *http.Request) {
	_, err := h.evidence.Remove(r.PathValue("id"), r.PathValue("stepId"), r.PathValue("evidenceId"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
