package repository

import (
	"errors"
	"testing"

	"github.com/soptrack/soptracker/internal/models"
)

func TestCreateRecordPrepends(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	records := NewRecordRepository(db)
	task := createTestTask(t, tasks, "journal")

	for _, content := range []string{"first note", "second note", "third note"} {
		if _, err := records.Create(task.ID, models.CreateRecordInput{Content: content}); err != nil {
			t.Fatalf("create %q: %v", content, err)
		}
	}

	list, err := records.List(task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].Content != "third note" {
		t.Fatalf("list[0] = %q, want newest first", list[0].Content)
	}
	if list[2].Content != "first note" {
		t.Fatalf("list[2] = %q, want oldest last", list[2].Content)
	}
}

func TestCreateRecordWithoutTaskRow(t *testing.T) {
	records := NewRecordRepository(openTestDB(t))

	record, err := records.Create("not-a-task-yet", models.CreateRecordInput{Content: "early note"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.ID == "" {
		t.Fatal("expected generated id")
	}

	list, err := records.List("not-a-task-yet")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
}

func TestCreateRecordAccumulatesActualTime(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	records := NewRecordRepository(db)
	task := createTestTask(t, tasks, "timed")

	duration := 30
	if _, err := records.Create(task.ID, models.CreateRecordInput{Content: "pomodoro", Duration: &duration}); err != nil {
		t.Fatalf("create: %v", err)
	}
	duration2 := 15
	if _, err := records.Create(task.ID, models.CreateRecordInput{Content: "wrap up", Duration: &duration2}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := tasks.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ActualTime == nil || *got.ActualTime != 45 {
		t.Fatalf("actualTime = %v, want 45", got.ActualTime)
	}
}

func TestUpdateRecordReplacesMutableFields(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	records := NewRecordRepository(db)
	task := createTestTask(t, tasks, "edit")

	record, err := records.Create(task.ID, models.CreateRecordInput{Content: "rough note", StepID: "step-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := records.Update(task.ID, record.ID, models.CreateRecordInput{Content: "clean note"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "clean note" {
		t.Fatalf("content = %q", updated.Content)
	}
	if updated.StepID != "" {
		t.Fatalf("stepId = %q, want cleared (full replacement)", updated.StepID)
	}
	if !updated.CreatedAt.Equal(record.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", updated.CreatedAt, record.CreatedAt)
	}
}

func TestRecordNotFound(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	records := NewRecordRepository(db)
	task := createTestTask(t, tasks, "empty")

	list, err := records.List("unknown-task")
	if err != nil {
		t.Fatalf("list unknown task: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("len = %d, want 0", len(list))
	}

	if _, err := records.Update(task.ID, "missing", models.CreateRecordInput{Content: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update = %v, want ErrNotFound", err)
	}
	if err := records.Delete(task.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete = %v, want ErrNotFound", err)
	}

	record, err := records.Create(task.ID, models.CreateRecordInput{Content: "note"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := records.Update("other-task", record.ID, models.CreateRecordInput{Content: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update with wrong task = %v, want ErrNotFound", err)
	}
}
