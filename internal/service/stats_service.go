package service

import (
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/soptrack/soptracker/internal/models"
)

// StatsService aggregates task and evidence numbers into a TaskStats
// read model.
type StatsService struct {
	db *sql.DB
}

func NewStatsService(db *sql.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) TaskStats() (models.TaskStats, error) {
	var stats models.TaskStats

	row := s.db.QueryRow(`
        SELECT COUNT(*),
               COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(actual_time), 0)
        FROM tasks`)
	if err := row.Scan(&stats.Total, &stats.Completed, &stats.InProgress, &stats.Pending, &stats.TotalTime); err != nil {
		return models.TaskStats{}, fmt.Errorf("task stats: %w", err)
	}

	var evidenceBytes int64
	row = s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM evidence`)
	if err := row.Scan(&stats.EvidenceCount, &evidenceBytes); err != nil {
		return models.TaskStats{}, fmt.Errorf("evidence stats: %w", err)
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
		stats.AvgTimePerTask = float64(stats.TotalTime) / float64(stats.Total)
	}
	stats.TotalEvidenceSize = humanize.Bytes(uint64(evidenceBytes))

	return stats, nil
}
