package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
)

type BriefRepository struct {
	db *sql.DB
}

func NewBriefRepository(db *sql.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

func (r *BriefRepository) SaveBrief(brief *model.Brief) error {
	points, err := json.Marshal(brief.KeyTalkingPoints)
	if err != nil {
		return err
	}

	return r.db.QueryRow(`
		INSERT INTO content_brief(run_id, topic, source_type, audience, job_to_be_done, angle, promise, cta, key_talking_points, model_used)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, brief.RunID, brief.Topic, brief.SourceType, brief.Audience, brief.JobToBeDone, brief.Angle, brief.Promise, brief.CTA, points, brief.ModelUsed).Scan(&brief.ID)
}

func (r *BriefRepository) GetByID(id int64) (*model.Brief, error) {
	var b model.Brief
	var pointsJSON []byte
	err := r.db.QueryRow(`
		SELECT id, run_id, topic, source_type, audience, job_to_be_done, angle, promise, cta, key_talking_points, model_used, created_at
		FROM content_brief
		WHERE id = $1
	`, id).Scan(&b.ID, &b.RunID, &b.Topic, &b.SourceType, &b.Audience, &b.JobToBeDone, &b.Angle, &b.Promise, &b.CTA, &pointsJSON, &b.ModelUsed, &b.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(pointsJSON, &b.KeyTalkingPoints); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BriefRepository) ListBriefs(limit, offset int) ([]model.Brief, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, topic, source_type, audience, job_to_be_done, angle, promise, cta, key_talking_points, model_used, created_at
		FROM content_brief
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var briefs []model.Brief
	for rows.Next() {
		var b model.Brief
		var pointsJSON []byte
		err := rows.Scan(&b.ID, &b.RunID, &b.Topic, &b.SourceType, &b.Audience, &b.JobToBeDone, &b.Angle, &b.Promise, &b.CTA, &pointsJSON, &b.ModelUsed, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(pointsJSON, &b.KeyTalkingPoints); err != nil {
			return nil, err
		}
		briefs = append(briefs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return briefs, nil
}

func (r *BriefRepository) GetBriefTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM content_brief`).Scan(&total)
	return total, err
}
