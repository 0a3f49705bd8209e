package repository

import (
	"database/sql"
	"fmt"

	"github.com/soptrack/soptracker/internal/models"
)

const evidenceColumns = `id, task_id, step_id, kind, name, url, size, mime_type,
    preview_url, note, is_final, created_at`

type EvidenceRepository struct {
	db    *sql.DB
	steps *StepRepository
}

func NewEvidenceRepository(db *sql.DB) *EvidenceRepository {
	return &EvidenceRepository{db: db, steps: NewStepRepository(db)}
}

// Add attaches evidence to a step and returns the refreshed parent step,
// so callers get the full evidence list in one round trip.
func (r *EvidenceRepository) Add(taskID, stepID string, input models.CreateEvidenceInput) (models.TaskStep, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.TaskStep{}, fmt.Errorf("begin add evidence: %w", err)
	}
	defer tx.Rollback()

	if err := requireStep(tx, taskID, stepID); err != nil {
		return models.TaskStep{}, err
	}

	now := nowUTC()
	var size int64
	if input.Size != nil {
		size = *input.Size
	}

	_, err = tx.Exec(`
        INSERT INTO evidence (`+evidenceColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		NewID(),
		taskID,
		stepID,
		string(input.Kind),
		input.Name,
		input.URL,
		size,
		input.MimeType,
		input.PreviewURL,
		input.Note,
		boolToInt(input.IsFinal),
		toMillis(now),
	)
	if err != nil {
		return models.TaskStep{}, fmt.Errorf("add evidence: %w", err)
	}

	if _, err := tx.Exec(`UPDATE steps SET updated_at = ? WHERE id = ?`, toMillis(now), stepID); err != nil {
		return models.TaskStep{}, fmt.Errorf("touch step: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.TaskStep{}, fmt.Errorf("commit add evidence: %w", err)
	}

	return r.steps.Get(taskID, stepID)
}

// Remove deletes the evidence from the step if present. Removing an
// absent evidence id is not an error; only a missing step is.
func (r *EvidenceRepository) Remove(taskID, stepID, evidenceID string) (models.TaskStep, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.TaskStep{}, fmt.Errorf("begin remove evidence: %w", err)
	}
	defer tx.Rollback()

	if err := requireStep(tx, taskID, stepID); err != nil {
		return models.TaskStep{}, err
	}

	if _, err := tx.Exec(`DELETE FROM evidence WHERE id = ? AND step_id = ?`, evidenceID, stepID); err != nil {
		return models.TaskStep{}, fmt.Errorf("remove evidence: %w", err)
	}

	now := nowUTC()
	if _, err := tx.Exec(`UPDATE steps SET updated_at = ? WHERE id = ?`, toMillis(now), stepID); err != nil {
		return models.TaskStep{}, fmt.Errorf("touch step: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.TaskStep{}, fmt.Errorf("commit remove evidence: %w", err)
	}

	return r.steps.Get(taskID, stepID)
}

func (r *EvidenceRepository) Get(taskID, stepID, evidenceID string) (models.Evidence, error) {
	step, err := r.steps.Get(taskID, stepID)
	if err != nil {
		return models.Evidence{}, err
	}
	for _, ev := range step.Evidence {
		if ev.ID == evidenceID {
			return ev, nil
		}
	}
	return models.Evidence{}, ErrNotFound
}

func requireStep(q querier, taskID, stepID string) error {
	var exists int
	if err := q.QueryRow(`SELECT COUNT(*) FROM steps WHERE id = ? AND task_id = ?`, stepID, taskID).Scan(&exists); err != nil {
		return fmt.Errorf("check step: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}
	return nil
}

// attachEvidence fills the Evidence list of each step from the task's
// evidence rows, oldest first.
func attachEvidence(q querier, taskID string, steps []models.TaskStep) error {
	if len(steps) == 0 {
		return nil
	}

	rows, err := q.Query(`SELECT `+evidenceColumns+` FROM evidence WHERE task_id = ? ORDER BY rowid ASC`, taskID)
	if err != nil {
		return fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	byStep := map[string][]models.Evidence{}
	for rows.Next() {
		var (
			ev        models.Evidence
			kind      string
			isFinal   int
			createdAt int64
		)
		err := rows.Scan(
			&ev.ID,
			&ev.TaskID,
			&ev.StepID,
			&kind,
			&ev.Name,
			&ev.URL,
			&ev.Size,
			&ev.MimeType,
			&ev.PreviewURL,
			&ev.Note,
			&isFinal,
			&createdAt,
		)
		if err != nil {
			return fmt.Errorf("scan evidence: %w", err)
		}
		ev.Kind = models.EvidenceKind(kind)
		ev.IsFinal = isFinal != 0
		ev.CreatedAt = fromMillis(createdAt)
		byStep[ev.StepID] = append(byStep[ev.StepID], ev)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range steps {
		if list, ok := byStep[steps[i].ID]; ok {
			steps[i].Evidence = list
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
