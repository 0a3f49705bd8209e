package repository

import (
	"errors"
	"testing"

	"github.com/soptrack/soptracker/internal/models"
)

func assertDenseOrder(t *testing.T, steps []models.TaskStep) {
	t.Helper()
	for i, step := range steps {
		if step.Order != i+1 {
			t.Fatalf("steps[%d].Order = %d, want %d", i, step.Order, i+1)
		}
	}
}

func TestCreateStepAssignsDenseOrder(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	steps := NewStepRepository(db)
	task := createTestTask(t, tasks, "with steps")

	for i, what := range []string{"gather", "draft", "review"} {
		step := createTestStep(t, steps, task.ID, what)
		if step.Order != i+1 {
			t.Fatalf("order = %d, want %d", step.Order, i+1)
		}
		if step.Status != models.StepStatusPending {
			t.Fatalf("status = %q, want pending", step.Status)
		}
		if step.Evidence == nil || len(step.Evidence) != 0 {
			t.Fatalf("evidence = %v, want empty list", step.Evidence)
		}
	}

	list, err := steps.List(task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	assertDenseOrder(t, list)
}

func TestCreateStepUnknownTask(t *testing.T) {
	steps := NewStepRepository(openTestDB(t))

	_, err := steps.Create("missing", models.CreateStepInput{What: "w", Result: "r"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteStepRenumbersSurvivors(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	steps := NewStepRepository(db)
	task := createTestTask(t, tasks, "renumber")

	first := createTestStep(t, steps, task.ID, "one")
	second := createTestStep(t, steps, task.ID, "two")
	third := createTestStep(t, steps, task.ID, "three")

	if err := steps.Delete(task.ID, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, err := steps.List(task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	assertDenseOrder(t, list)
	if list[0].ID != first.ID || list[1].ID != third.ID {
		t.Fatalf("relative order lost: %q, %q", list[0].What, list[1].What)
	}
}

func TestDensityAfterInterleavedCreatesAndDeletes(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	steps := NewStepRepository(db)
	task := createTestTask(t, tasks, "churn")

	a := createTestStep(t, steps, task.ID, "a")
	createTestStep(t, steps, task.ID, "b")
	if err := steps.Delete(task.ID, a.ID); err != nil {
		t.Fatalf("delete a: %v", err)
	}
	createTestStep(t, steps, task.ID, "c")
	createTestStep(t, steps, task.ID, "d")

	list, err := steps.List(task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	assertDenseOrder(t, list)
}

func TestUpdateStepMergesFields(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	steps := NewStepRepository(db)
	task := createTestTask(t, tasks, "merge")
	step := createTestStep(t, steps, task.ID, "original")

	status := models.StepStatusDone
	spent := 25
	notes := "took longer than expected"
	updated, err := steps.Update(task.ID, step.ID, models.UpdateStepInput{
		Status:       &status,
		SpentMinutes: &spent,
		Notes:        &notes,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != status {
		t.Fatalf("status = %q", updated.Status)
	}
	if updated.SpentMinutes == nil || *updated.SpentMinutes != spent {
		t.Fatalf("spentMinutes = %v", updated.SpentMinutes)
	}
	if updated.Notes != notes {
		t.Fatalf("notes = %q", updated.Notes)
	}
	if updated.What != "original" {
		t.Fatalf("what changed: %q", updated.What)
	}
}

func TestUpdateStepOrderHintResequences(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	steps := NewStepRepository(db)
	task := createTestTask(t, tasks, "resequence")

	first := createTestStep(t, steps, task.ID, "one")
	second := createTestStep(t, steps, task.ID, "two")
	third := createTestStep(t, steps, task.ID, "three")

	// An order hint below the first sibling moves the step to the front;
	// everything is then renumbered densely.
	hint := 0
	updated, err := steps.Update(task.ID, third.ID, models.UpdateStepInput{Order: &hint})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Order != 1 {
		t.Fatalf("order = %d, want 1", updated.Order)
	}

	list, err := steps.List(task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertDenseOrder(t, list)
	if list[0].ID != third.ID || list[1].ID != first.ID || list[2].ID != second.ID {
		t.Fatalf("sequence = %q, %q, %q", list[0].What, list[1].What, list[2].What)
	}
}

func TestUpdateStepOrderHintStableOnTie(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	steps := NewStepRepository(db)
	task := createTestTask(t, tasks, "ties")

	first := createTestStep(t, steps, task.ID, "one")
	second := createTestStep(t, steps, task.ID, "two")

	// Hinting an order equal to an existing one keeps the earlier sibling
	// ahead (stable sort).
	hint := 1
	if _, err := steps.Update(task.ID, second.ID, models.UpdateStepInput{Order: &hint}); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := steps.List(task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertDenseOrder(t, list)
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("sequence = %q, %q", list[0].What, list[1].What)
	}
}

func TestStepNotFound(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)
	steps := NewStepRepository(db)
	task := createTestTask(t, tasks, "lonely")

	if _, err := steps.Get(task.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get = %v, want ErrNotFound", err)
	}
	what := "w"
	if _, err := steps.Update(task.ID, "missing", models.UpdateStepInput{What: &what}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update = %v, want ErrNotFound", err)
	}
	if err := steps.Delete(task.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete = %v, want ErrNotFound", err)
	}
}
