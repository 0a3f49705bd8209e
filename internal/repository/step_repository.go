package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/soptrack/soptracker/internal/models"
)

const stepColumns = `id, task_id, ord, status, what, result, how_key_points, why,
    expected_minutes, spent_minutes, notes, created_at, updated_at`

type StepRepository struct {
	db *sql.DB
}

func NewStepRepository(db *sql.DB) *StepRepository {
	return &StepRepository{db: db}
}

// List returns the task's steps sorted by order, evidence included.
// Unknown tasks yield an empty list.
func (r *StepRepository) List(taskID string) ([]models.TaskStep, error) {
	steps, err := loadSteps(r.db, taskID)
	if err != nil {
		return nil, err
	}
	if err := attachEvidence(r.db, taskID, steps); err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *StepRepository) Get(taskID, stepID string) (models.TaskStep, error) {
	steps, err := r.List(taskID)
	if err != nil {
		return models.TaskStep{}, err
	}
	for _, step := range steps {
		if step.ID == stepID {
			return step, nil
		}
	}
	return models.TaskStep{}, ErrNotFound
}

// Create appends a step at order max+1. The task must exist.
func (r *StepRepository) Create(taskID string, input models.CreateStepInput) (models.TaskStep, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.TaskStep{}, fmt.Errorf("begin create step: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM tasks WHERE id = ?`, taskID).Scan(&exists); err != nil {
		return models.TaskStep{}, fmt.Errorf("check task: %w", err)
	}
	if exists == 0 {
		return models.TaskStep{}, ErrNotFound
	}

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(ord), 0) + 1 FROM steps WHERE task_id = ?`, taskID).Scan(&next); err != nil {
		return models.TaskStep{}, fmt.Errorf("next order: %w", err)
	}

	now := nowUTC()
	step := models.TaskStep{
		ID:              NewID(),
		TaskID:          taskID,
		Order:           next,
		Status:          models.StepStatusPending,
		What:            input.What,
		Result:          input.Result,
		HowKeyPoints:    input.HowKeyPoints,
		Why:             input.Why,
		ExpectedMinutes: input.ExpectedMinutes,
		Evidence:        []models.Evidence{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := insertStep(tx, step); err != nil {
		return models.TaskStep{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.TaskStep{}, fmt.Errorf("commit create step: %w", err)
	}
	return step, nil
}

// Update merges the non-nil input fields onto the step. A non-nil Order
// re-sorts the siblings stably by order and renumbers them 1..N, so the
// incoming value is a position hint rather than an absolute slot.
func (r *StepRepository) Update(taskID, stepID string, input models.UpdateStepInput) (models.TaskStep, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.TaskStep{}, fmt.Errorf("begin update step: %w", err)
	}
	defer tx.Rollback()

	siblings, err := loadSteps(tx, taskID)
	if err != nil {
		return models.TaskStep{}, err
	}

	idx := -1
	for i := range siblings {
		if siblings[i].ID == stepID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.TaskStep{}, ErrNotFound
	}

	step := &siblings[idx]
	if input.What != nil {
		step.What = *input.What
	}
	if input.Result != nil {
		step.Result = *input.Result
	}
	if input.HowKeyPoints != nil {
		step.HowKeyPoints = *input.HowKeyPoints
	}
	if input.Why != nil {
		step.Why = *input.Why
	}
	if input.ExpectedMinutes != nil {
		step.ExpectedMinutes = input.ExpectedMinutes
	}
	if input.SpentMinutes != nil {
		step.SpentMinutes = input.SpentMinutes
	}
	if input.Notes != nil {
		step.Notes = *input.Notes
	}
	if input.Status != nil {
		step.Status = *input.Status
	}
	step.UpdatedAt = nowUTC()

	if input.Order != nil {
		step.Order = *input.Order
		// Stable sort keeps the prior relative order on ties, then the
		// whole list is renumbered densely.
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Order < siblings[j].Order
		})
		for i := range siblings {
			siblings[i].Order = i + 1
			if _, err := tx.Exec(`UPDATE steps SET ord = ? WHERE id = ?`, i+1, siblings[i].ID); err != nil {
				return models.TaskStep{}, fmt.Errorf("renumber steps: %w", err)
			}
			if siblings[i].ID == stepID {
				step = &siblings[i]
			}
		}
	}

	points, err := json.Marshal(keyPoints(step.HowKeyPoints))
	if err != nil {
		return models.TaskStep{}, fmt.Errorf("encode key points: %w", err)
	}

	_, err = tx.Exec(`
        UPDATE steps SET status = ?, what = ?, result = ?, how_key_points = ?,
            why = ?, expected_minutes = ?, spent_minutes = ?, notes = ?, updated_at = ?
        WHERE id = ?`,
		string(step.Status),
		step.What,
		step.Result,
		string(points),
		step.Why,
		int64OrNil(step.ExpectedMinutes),
		int64OrNil(step.SpentMinutes),
		step.Notes,
		toMillis(step.UpdatedAt),
		step.ID,
	)
	if err != nil {
		return models.TaskStep{}, fmt.Errorf("update step: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.TaskStep{}, fmt.Errorf("commit update step: %w", err)
	}

	return r.Get(taskID, stepID)
}

// Delete removes the step and its evidence, then renumbers the
// surviving siblings densely starting at 1.
func (r *StepRepository) Delete(taskID, stepID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete step: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM steps WHERE id = ? AND task_id = ?`, stepID, taskID)
	if err != nil {
		return fmt.Errorf("delete step: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete step: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM evidence WHERE step_id = ?`, stepID); err != nil {
		return fmt.Errorf("delete step evidence: %w", err)
	}

	remaining, err := loadSteps(tx, taskID)
	if err != nil {
		return err
	}
	for i, s := range remaining {
		if s.Order != i+1 {
			if _, err := tx.Exec(`UPDATE steps SET ord = ? WHERE id = ?`, i+1, s.ID); err != nil {
				return fmt.Errorf("renumber steps: %w", err)
			}
		}
	}

	return tx.Commit()
}

type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func insertStep(q querier, step models.TaskStep) error {
	points, err := json.Marshal(keyPoints(step.HowKeyPoints))
	if err != nil {
		return fmt.Errorf("encode key points: %w", err)
	}

	_, err = q.Exec(`
        INSERT INTO steps (`+stepColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		step.ID,
		step.TaskID,
		step.Order,
		string(step.Status),
		step.What,
		step.Result,
		string(points),
		step.Why,
		int64OrNil(step.ExpectedMinutes),
		int64OrNil(step.SpentMinutes),
		step.Notes,
		toMillis(step.CreatedAt),
		toMillis(step.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create step: %w", err)
	}
	return nil
}

// loadSteps reads the task's steps ordered by ord (rowid breaks ties),
// without evidence attached.
func loadSteps(q querier, taskID string) ([]models.TaskStep, error) {
	rows, err := q.Query(`SELECT `+stepColumns+` FROM steps WHERE task_id = ? ORDER BY ord ASC, rowid ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	steps := []models.TaskStep{}
	for rows.Next() {
		var (
			step            models.TaskStep
			status          string
			points          string
			expectedMinutes sql.NullInt64
			spentMinutes    sql.NullInt64
			createdAt       int64
			updatedAt       int64
		)
		err := rows.Scan(
			&step.ID,
			&step.TaskID,
			&step.Order,
			&status,
			&step.What,
			&step.Result,
			&points,
			&step.Why,
			&expectedMinutes,
			&spentMinutes,
			&step.Notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step.Status = models.TaskStepStatus(status)
		step.ExpectedMinutes = intPtr(expectedMinutes)
		step.SpentMinutes = intPtr(spentMinutes)
		step.CreatedAt = fromMillis(createdAt)
		step.UpdatedAt = fromMillis(updatedAt)
		step.Evidence = []models.Evidence{}
		if err := json.Unmarshal([]byte(points), &step.HowKeyPoints); err != nil {
			return nil, fmt.Errorf("decode key points: %w", err)
		}
		if len(step.HowKeyPoints) == 0 {
			step.HowKeyPoints = nil
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func keyPoints(points []string) []string {
	if points == nil {
		return []string{}
	}
	return points
}
