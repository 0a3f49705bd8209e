package repository

import (
	"database/sql"
	"fmt"

	"github.com/soptrack/soptracker/internal/models"
)

const recordColumns = `id, content, step_id, duration, created_at`

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// List returns the task's records, newest first. Unknown tasks yield an
// empty list.
func (r *RecordRepository) List(taskID string) ([]models.TaskRecord, error) {
	rows, err := r.db.Query(`SELECT `+recordColumns+` FROM records WHERE task_id = ? ORDER BY rowid DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []models.TaskRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Create prepends a record. The task is not required to exist yet; the
// record list for a new taskId starts implicitly. When a duration is
// given and the task does exist, the duration is added to the task's
// actualTime.
func (r *RecordRepository) Create(taskID string, input models.CreateRecordInput) (models.TaskRecord, error) {
	record := models.TaskRecord{
		ID:        NewID(),
		Content:   input.Content,
		CreatedAt: nowUTC(),
		Duration:  input.Duration,
		StepID:    input.StepID,
	}

	tx, err := r.db.Begin()
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("begin create record: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO records (id, task_id, content, step_id, duration, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		taskID,
		record.Content,
		record.StepID,
		int64OrNil(record.Duration),
		toMillis(record.CreatedAt),
	)
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("create record: %w", err)
	}

	if record.Duration != nil && *record.Duration > 0 {
		_, err = tx.Exec(`
            UPDATE tasks SET actual_time = COALESCE(actual_time, 0) + ?, updated_at = ?
            WHERE id = ?`,
			*record.Duration, toMillis(record.CreatedAt), taskID)
		if err != nil {
			return models.TaskRecord{}, fmt.Errorf("accumulate actual time: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.TaskRecord{}, fmt.Errorf("commit create record: %w", err)
	}
	return record, nil
}

func (r *RecordRepository) Get(taskID, recordID string) (models.TaskRecord, error) {
	row := r.db.QueryRow(`SELECT `+recordColumns+` FROM records WHERE id = ? AND task_id = ?`, recordID, taskID)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return models.TaskRecord{}, ErrNotFound
	}
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// Update replaces the mutable fields (content, stepId, duration) and
// keeps createdAt.
func (r *RecordRepository) Update(taskID, recordID string, input models.CreateRecordInput) (models.TaskRecord, error) {
	res, err := r.db.Exec(`
        UPDATE records SET content = ?, step_id = ?, duration = ?
        WHERE id = ? AND task_id = ?`,
		input.Content,
		input.StepID,
		int64OrNil(input.Duration),
		recordID,
		taskID,
	)
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.TaskRecord{}, fmt.Errorf("update record: %w", err)
	}
	if n == 0 {
		return models.TaskRecord{}, ErrNotFound
	}
	return r.Get(taskID, recordID)
}

func (r *RecordRepository) Delete(taskID, recordID string) error {
	res, err := r.db.Exec(`DELETE FROM records WHERE id = ? AND task_id = ?`, recordID, taskID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row rowScanner) (models.TaskRecord, error) {
	var (
		record    models.TaskRecord
		duration  sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&record.ID, &record.Content, &record.StepID, &duration, &createdAt)
	if err != nil {
		return models.TaskRecord{}, err
	}
	record.Duration = intPtr(duration)
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
