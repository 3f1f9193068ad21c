package repository

import (
	"database/sql"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) SaveReport(report *model.TrendReport) error {
	return r.db.QueryRow(`
		INSERT INTO trend_report(run_id, clustering_mode, topic_count, elbow_threshold, payload)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`, report.RunID, report.ClusteringMode, report.TopicCount, report.ElbowThreshold, report.Payload).Scan(&report.ID)
}

func (r *ReportRepository) GetLatest() (*model.TrendReport, error) {
	var report model.TrendReport
	err := r.db.QueryRow(`
		SELECT id, run_id, clustering_mode, topic_count, elbow_threshold, payload, created_at
		FROM trend_report
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&report.ID, &report.RunID, &report.ClusteringMode, &report.TopicCount, &report.ElbowThreshold, &report.Payload, &report.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *ReportRepository) GetByRunID(runID string) (*model.TrendReport, error) {
	var report model.TrendReport
	err := r.db.QueryRow(`
		SELECT id, run_id, clustering_mode, topic_count, elbow_threshold, payload, created_at
		FROM trend_report
		WHERE run_id = $1
	`, runID).Scan(&report.ID, &report.RunID, &report.ClusteringMode, &report.TopicCount, &report.ElbowThreshold, &report.Payload, &report.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *ReportRepository) ListReports(limit, offset int) ([]model.TrendReport, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, clustering_mode, topic_count, elbow_threshold, payload, created_at
		FROM trend_report
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.TrendReport
	for rows.Next() {
		var report model.TrendReport
		err := rows.Scan(&report.ID, &report.RunID, &report.ClusteringMode, &report.TopicCount, &report.ElbowThreshold, &report.Payload, &report.CreatedAt)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *ReportRepository) GetReportTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trend_report`).Scan(&total)
	return total, err
}
