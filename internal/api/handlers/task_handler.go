package handlers

import (
	"net/http"
	"strings"

	"github.com/soptrack/soptracker/internal/models"
	"github.com/soptrack/soptracker/internal/repository"
	"github.com/soptrack/soptracker/internal/service"
)

type TaskHandler struct {
	tasks *repository.TaskRepository
	stats *service.StatsService
}

func NewTaskHandler(tasks *repository.TaskRepository, stats *service.StatsService) *TaskHandler {
	return &TaskHandler{tasks: tasks, stats: stats}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List()
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input models.CreateTaskInput
	if !decodeBody(w, r, &input) {
		return
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		writeError(w, http.StatusBadRequest, "task title is required")
		return
	}
	if input.Priority != "" && !input.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}

	task, err := h.tasks.Create(input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"task": task})
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateTaskInput
	if !decodeBody(w, r, &input) {
		return
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			writeError(w, http.StatusBadRequest, "task title is required")
			return
		}
		input.Title = &trimmed
	}
	if input.Status != nil && !input.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if input.Priority != nil && !input.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}

	task, err := h.tasks.Update(r.PathValue("id"), input)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.PathValue("id")); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.TaskStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
