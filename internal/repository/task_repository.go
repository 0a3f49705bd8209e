package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/soptrack/soptracker/internal/models"
)

const taskColumns = `id, title, description, status, priority, started_at, due_date,
    completed_at, created_at, updated_at, sop_id, tags, estimated_time, actual_time,
    pomodoro_count`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns every task, newest first.
func (r *TaskRepository) List() ([]models.Task, error) {
	rows, err := r.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(input models.CreateTaskInput) (models.Task, error) {
	now := nowUTC()

	task := models.Task{
		ID:            NewID(),
		Title:         input.Title,
		Description:   input.Description,
		Status:        models.TaskStatusPending,
		Priority:      input.Priority,
		StartedAt:     input.StartedAt,
		DueDate:       input.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
		SopID:         input.SopID,
		Tags:          input.Tags,
		EstimatedTime: input.EstimatedTime,
		PomodoroCount: 0,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if task.StartedAt == nil {
		task.StartedAt = &now
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return models.Task{}, fmt.Errorf("encode tags: %w", err)
	}

	_, err = r.db.Exec(`
        INSERT INTO tasks (`+taskColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		toMillisPtr(task.StartedAt),
		toMillisPtr(task.DueDate),
		toMillisPtr(task.CompletedAt),
		toMillis(task.CreatedAt),
		toMillis(task.UpdatedAt),
		task.SopID,
		string(tags),
		int64OrNil(task.EstimatedTime),
		int64OrNil(task.ActualTime),
		task.PomodoroCount,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) Get(id string) (models.Task, error) {
	row := r.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Update merges the non-nil input fields onto the stored task and
// refreshes updatedAt. The first transition to "completed" stamps
// completedAt; it is never cleared afterwards.
func (r *TaskRepository) Update(id string, input models.UpdateTaskInput) (models.Task, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.Task{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.StartedAt != nil {
		task.StartedAt = input.StartedAt
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.SopID != nil {
		task.SopID = *input.SopID
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}
	if input.EstimatedTime != nil {
		task.EstimatedTime = input.EstimatedTime
	}
	if input.ActualTime != nil {
		task.ActualTime = input.ActualTime
	}
	if input.PomodoroCount != nil {
		task.PomodoroCount = *input.PomodoroCount
	}

	now := nowUTC()
	task.UpdatedAt = now
	if task.Status == models.TaskStatusCompleted && task.CompletedAt == nil {
		task.CompletedAt = &now
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return models.Task{}, fmt.Errorf("encode tags: %w", err)
	}

	_, err = tx.Exec(`
        UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?,
            started_at = ?, due_date = ?, completed_at = ?, updated_at = ?,
            sop_id = ?, tags = ?, estimated_time = ?, actual_time = ?,
            pomodoro_count = ?
        WHERE id = ?`,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		toMillisPtr(task.StartedAt),
		toMillisPtr(task.DueDate),
		toMillisPtr(task.CompletedAt),
		toMillis(task.UpdatedAt),
		task.SopID,
		string(tags),
		int64OrNil(task.EstimatedTime),
		int64OrNil(task.ActualTime),
		task.PomodoroCount,
		task.ID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("commit update: %w", err)
	}
	return task, nil
}

// Delete removes the task along with its steps, their evidence and its
// records in one transaction.
func (r *TaskRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM evidence WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("delete task evidence: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM steps WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("delete task steps: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM records WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("delete task records: %w", err)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task          models.Task
		status        string
		priority      string
		startedAt     sql.NullInt64
		dueDate       sql.NullInt64
		completedAt   sql.NullInt64
		createdAt     int64
		updatedAt     int64
		tags          string
		estimatedTime sql.NullInt64
		actualTime    sql.NullInt64
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&startedAt,
		&dueDate,
		&completedAt,
		&createdAt,
		&updatedAt,
		&task.SopID,
		&tags,
		&estimatedTime,
		&actualTime,
		&task.PomodoroCount,
	)
	if err != nil {
		return models.Task{}, err
	}

	task.Status = models.TaskStatus(status)
	task.Priority = models.TaskPriority(priority)
	task.StartedAt = fromMillisPtr(startedAt)
	task.DueDate = fromMillisPtr(dueDate)
	task.CompletedAt = fromMillisPtr(completedAt)
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	task.EstimatedTime = intPtr(estimatedTime)
	task.ActualTime = intPtr(actualTime)

	if err := json.Unmarshal([]byte(tags), &task.Tags); err != nil {
		return models.Task{}, fmt.Errorf("decode tags: %w", err)
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	return task, nil
}
