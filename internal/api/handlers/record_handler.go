package handlers

import (
	"net/http"
	"strings"

	"github.com/soptrack/soptracker/internal/models"
	"github.com/soptrack/soptracker/internal/repository"
)

type RecordHandler struct {
	records *repository.RecordRepository
}

func NewRecordHandler(records *repository.RecordRepository) *RecordHandler {
	return &RecordHandler{records: records}
}

func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.List(r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var input models.CreateRecordInput
	if !decodeBody(w, r, &input) {
		return
	}

	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" {
		writeError(w, http.StatusBadRequest, "record content is required")
		return
	}

	record, err := h.records.Create(r.PathValue("id"), input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"record": record})
}

func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.Get(r.PathValue("id"), r.PathValue("recordId"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": record})
}

func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var input models.CreateRecordInput
	if !decodeBody(w, r, &input) {
		return
	}

	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" {
		writeError(w, http.StatusBadRequest, "record content is required")
		return
	}

	record, err := h.records.Update(r.PathValue("id"), r.PathValue("recordId"), input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": record})
}

func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(r.PathValue("id"), r.PathValue("recordId")); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
