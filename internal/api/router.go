package api

import (
	"database/sql"
	"net/http"

	"github.com/soptrack/soptracker/internal/api/handlers"
	"github.com/soptrack/soptracker/internal/repository"
	"github.com/soptrack/soptracker/internal/service"
)

func SetupRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	taskRepo := repository.NewTaskRepository(db)
	stepRepo := repository.NewStepRepository(db)
	evidenceRepo := repository.NewEvidenceRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	sopRepo := repository.NewSOPRepository(db)

	statsService := service.NewStatsService(db)
	suggestionService := service.NewSuggestionService()

	taskHandler := handlers.NewTaskHandler(taskRepo, statsService)
	stepHandler := handlers.NewStepHandler(stepRepo)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceRepo, stepRepo)
	recordHandler := handlers.NewRecordHandler(recordRepo)
	sopHandler := handlers.NewSOPHandler(sopRepo, suggestionService)

	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /tasks/stats", taskHandler.GetStats)
	mux.HandleFunc("GET /tasks/{id}", taskHandler.GetTask)
	mux.HandleFunc("PUT /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.DeleteTask)

	mux.HandleFunc("GET /tasks/{id}/steps", stepHandler.ListSteps)
	mux.HandleFunc("POST /tasks/{id}/steps", stepHandler.CreateStep)
	mux.HandleFunc("GET /tasks/{id}/steps/{stepId}", stepHandler.GetStep)
	mux.HandleFunc("PUT /tasks/{id}/steps/{stepId}", stepHandler.UpdateStep)
	mux.HandleFunc("DELETE /tasks/{id}/steps/{stepId}", stepHandler.DeleteStep)

	mux.HandleFunc("GET /tasks/{id}/steps/{stepId}/evidence", evidenceHandler.ListEvidence)
	mux.HandleFunc("POST /tasks/{id}/steps/{stepId}/evidence", evidenceHandler.AddEvidence)
	mux.HandleFunc("GET /tasks/{id}/steps/{stepId}/evidence/{evidenceId}", evidenceHandler.GetEvidence)
	mux.HandleFunc("DELETE /tasks/{id}/steps/{stepId}/evidence/{evidenceId}", evidenceHandler.RemoveEvidence)

	mux.HandleFunc("GET /tasks/{id}/records", recordHandler.ListRecords)
	mux.HandleFunc("POST /tasks/{id}/records", recordHandler.CreateRecord)
	mux.HandleFunc("GET /tasks/{id}/records/{recordId}", recordHandler.GetRecord)
	mux.HandleFunc("PUT /tasks/{id}/records/{recordId}", recordHandler.UpdateRecord)
	mux.HandleFunc("DELETE /tasks/{id}/records/{recordId}", recordHandler.DeleteRecord)

	mux.HandleFunc("GET /sops", sopHandler.ListSOPs)
	mux.HandleFunc("POST /sops", sopHandler.CreateSOP)
	mux.HandleFunc("POST /sops/suggest", sopHandler.Suggest)
	mux.HandleFunc("GET /sops/{id}", sopHandler.GetSOP)
	mux.HandleFunc("PUT /sops/{id}", sopHandler.UpdateSOP)
	mux.HandleFunc("DELETE /sops/{id}", sopHandler.DeleteSOP)

	return mux
}
