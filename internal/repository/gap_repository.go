package repository

import (
	"database/sql"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
)

type GapRepository struct {
	db *sql.DB
}

func NewGapRepository(db *sql.DB) *GapRepository {
	return &GapRepository{db: db}
}

func (r *GapRepository) SaveGaps(runID string, gaps []model.ContentGap) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range gaps {
		err := tx.QueryRow(`
			INSERT INTO content_gap(run_id, gap_topic, competitor_coverage)
			VALUES($1, $2, $3)
			RETURNING id
		`, runID, gaps[i].GapTopic, gaps[i].CompetitorCoverage).Scan(&gaps[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *GapRepository) GetByRun(runID string) ([]model.ContentGap, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, gap_topic, competitor_coverage, created_at
		FROM content_gap
		WHERE run_id = $1
		ORDER BY competitor_coverage DESC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gaps []model.ContentGap
	for rows.Next() {
		var g model.ContentGap
		err := rows.Scan(&g.ID, &g.RunID, &g.GapTopic, &g.CompetitorCoverage, &g.CreatedAt)
		if err != nil {
			return nil, err
		}
		gaps = append(gaps, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gaps, nil
}

func (r *GapRepository) ListGaps(limit, offset int) ([]model.ContentGap, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, gap_topic, competitor_coverage, created_at
		FROM content_gap
		ORDER BY created_at DESC, competitor_coverage DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gaps []model.ContentGap
	for rows.Next() {
		var g model.ContentGap
		err := rows.Scan(&g.ID, &g.RunID, &g.GapTopic, &g.CompetitorCoverage, &g.CreatedAt)
		if err != nil {
			return nil, err
		}
		gaps = append(gaps, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gaps, nil
}
