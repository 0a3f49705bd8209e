package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/soptrack/soptracker/internal/models"
)

const sopColumns = `id, title, purpose, inputs, steps, outputs, faqs, tags,
    created_at, updated_at`

type SOPRepository struct {
	db *sql.DB
}

func NewSOPRepository(db *sql.DB) *SOPRepository {
	return &SOPRepository{db: db}
}

// List returns every SOP document, newest first.
func (r *SOPRepository) List() ([]models.SOP, error) {
	rows, err := r.db.Query(`SELECT ` + sopColumns + ` FROM sops ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sops: %w", err)
	}
	defer rows.Close()

	sops := []models.SOP{}
	for rows.Next() {
		sop, err := scanSOP(rows)
		if err != nil {
			return nil, err
		}
		sops = append(sops, sop)
	}
	return sops, rows.Err()
}

func (r *SOPRepository) Create(input models.CreateSOPInput) (models.SOP, error) {
	now := nowUTC()

	sop := models.SOP{
		ID:        NewID(),
		Title:     input.Title,
		Purpose:   input.Purpose,
		Inputs:    input.Inputs,
		Steps:     input.Steps,
		Outputs:   input.Outputs,
		FAQs:      input.FAQs,
		Tags:      input.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	normalizeSOP(&sop)

	if err := r.writeSOP(`
        INSERT INTO sops (id, title, purpose, inputs, steps, outputs, faqs, tags, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, sop, true); err != nil {
		return models.SOP{}, err
	}
	return sop, nil
}

func (r *SOPRepository) Get(id string) (models.SOP, error) {
	row := r.db.QueryRow(`SELECT `+sopColumns+` FROM sops WHERE id = ?`, id)
	sop, err := scanSOP(row)
	if err == sql.ErrNoRows {
		return models.SOP{}, ErrNotFound
	}
	if err != nil {
		return models.SOP{}, fmt.Errorf("get sop: %w", err)
	}
	return sop, nil
}

func (r *SOPRepository) Update(id string, input models.UpdateSOPInput) (models.SOP, error) {
	sop, err := r.Get(id)
	if err != nil {
		return models.SOP{}, err
	}

	if input.Title != nil {
		sop.Title = *input.Title
	}
	if input.Purpose != nil {
		sop.Purpose = *input.Purpose
	}
	if input.Inputs != nil {
		sop.Inputs = *input.Inputs
	}
	if input.Steps != nil {
		sop.Steps = *input.Steps
	}
	if input.Outputs != nil {
		sop.Outputs = *input.Outputs
	}
	if input.FAQs != nil {
		sop.FAQs = *input.FAQs
	}
	if input.Tags != nil {
		sop.Tags = *input.Tags
	}
	sop.UpdatedAt = nowUTC()
	normalizeSOP(&sop)

	if err := r.writeSOP(`
        UPDATE sops SET title = ?, purpose = ?, inputs = ?, steps = ?, outputs = ?,
            faqs = ?, tags = ?, created_at = ?, updated_at = ?
        WHERE id = ?`, sop, false); err != nil {
		return models.SOP{}, err
	}
	return sop, nil
}

func (r *SOPRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM sops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sop: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sop: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeSOP assigns ids to new steps, fills missing step orders
// sequentially and replaces nil list fields with empty ones.
func normalizeSOP(sop *models.SOP) {
	for i := range sop.Steps {
		if sop.Steps[i].ID == "" {
			sop.Steps[i].ID = NewID()
		}
		if sop.Steps[i].Order == 0 {
			sop.Steps[i].Order = i + 1
		}
	}
	if sop.Inputs == nil {
		sop.Inputs = []string{}
	}
	if sop.Steps == nil {
		sop.Steps = []models.SOPStep{}
	}
	if sop.Outputs == nil {
		sop.Outputs = []string{}
	}
	if sop.FAQs == nil {
		sop.FAQs = []models.SOPFAQ{}
	}
}

func (r *SOPRepository) writeSOP(query string, sop models.SOP, insert bool) error {
	inputs, err := json.Marshal(sop.Inputs)
	if err != nil {
		return fmt.Errorf("encode inputs: %w", err)
	}
	steps, err := json.Marshal(sop.Steps)
	if err != nil {
		return fmt.Errorf("encode steps: %w", err)
	}
	outputs, err := json.Marshal(sop.Outputs)
	if err != nil {
		return fmt.Errorf("encode outputs: %w", err)
	}
	faqs, err := json.Marshal(sop.FAQs)
	if err != nil {
		return fmt.Errorf("encode faqs: %w", err)
	}
	tags, err := json.Marshal(sop.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	args := []any{}
	if insert {
		args = append(args, sop.ID)
	}
	args = append(args,
		sop.Title,
		sop.Purpose,
		string(inputs),
		string(steps),
		string(outputs),
		string(faqs),
		string(tags),
		toMillis(sop.CreatedAt),
		toMillis(sop.UpdatedAt),
	)
	if !insert {
		args = append(args, sop.ID)
	}

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("write sop: %w", err)
	}
	return nil
}

func scanSOP(row rowScanner) (models.SOP, error) {
	var (
		sop       models.SOP
		inputs    string
		steps     string
		outputs   string
		faqs      string
		tags      string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&sop.ID,
		&sop.Title,
		&sop.Purpose,
		&inputs,
		&steps,
		&outputs,
		&faqs,
		&tags,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.SOP{}, err
	}

	if err := json.Unmarshal([]byte(inputs), &sop.Inputs); err != nil {
		return models.SOP{}, fmt.Errorf("decode inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(steps), &sop.Steps); err != nil {
		return models.SOP{}, fmt.Errorf("decode steps: %w", err)
	}
	if err := json.Unmarshal([]byte(outputs), &sop.Outputs); err != nil {
		return models.SOP{}, fmt.Errorf("decode outputs: %w", err)
	}
	if err := json.Unmarshal([]byte(faqs), &sop.FAQs); err != nil {
		return models.SOP{}, fmt.Errorf("decode faqs: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &sop.Tags); err != nil {
		return models.SOP{}, fmt.Errorf("decode tags: %w", err)
	}
	sop.CreatedAt = fromMillis(createdAt)
	sop.UpdatedAt = fromMillis(updatedAt)
	return sop, nil
}
