package handlers

import (
	"net/http"
	"strings"

	"github.com/soptrack/soptracker/internal/models"
	"github.com/soptrack/soptracker/internal/repository"
)

type StepHandler struct {
	steps *repository.StepRepository
}

func NewStepHandler(steps *repository.StepRepository) *StepHandler {
	return &StepHandler{steps: steps}
}

func (h *StepHandler) ListSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := h.steps.List(r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"steps": steps})
}

func (h *StepHandler) CreateStep(w http.ResponseWriter, r *http.Request) {
	var input models.CreateStepInput
	if !decodeBody(w, r, &input) {
		return
	}

	if strings.TrimSpace(input.What) == "" || strings.TrimSpace(input.Result) == "" {
		writeError(w, http.StatusBadRequest, "what and result are required")
		return
	}

	step, err := h.steps.Create(r.PathValue("id"), input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"step": step})
}

func (h *StepHandler) GetStep(w http.ResponseWriter, r *http.Request) {
	step, err := h.steps.Get(r.PathValue("id"), r.PathValue("stepId"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"step": step})
}

func (h *StepHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateStepInput
	if !decodeBody(w, r, &input) {
		return
	}

	if input.What != nil && strings.TrimSpace(*input.What) == "" {
		writeError(w, http.StatusBadRequest, "what must not be blank")
		return
	}
	if input.Result != nil && strings.TrimSpace(*input.Result) == "" {
		writeError(w, http.StatusBadRequest, "result must not be blank")
		return
	}
	if input.Status != nil && !input.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	step, err := h.steps.Update(r.PathValue("id"), r.PathValue("stepId"), input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"step": step})
}

func (h *StepHandler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	if err := h.steps.Delete(r.PathValue("id"), r.PathValue("stepId")); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
