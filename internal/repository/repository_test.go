package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/soptrack/soptracker/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func createTestTask(t *testing.T, tasks *TaskRepository, title string) models.Task {
	t.Helper()

	task, err := tasks.Create(models.CreateTaskInput{Title: title})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func createTestStep(t *testing.T, steps *StepRepository, taskID, what string) models.TaskStep {
	t.Helper()

	step, err := steps.Create(taskID, models.CreateStepInput{What: what, Result: what + " done"})
	if err != nil {
		t.Fatalf("create step: %v", err)
	}
	return step
}
