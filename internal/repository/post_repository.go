package repository

import (
	"database/sql"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) SavePost(post *model.SocialPost) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO social_post(run_id, title, score, comments, url, source, subreddit, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (run_id, url) DO NOTHING
		RETURNING id
	`, post.RunID, post.Title, post.Score, post.Comments, post.URL, post.Source, post.Subreddit, post.CreatedAt).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	post.ID = id
	return true, nil
}

func (r *PostRepository) GetByRun(runID string) ([]model.SocialPost, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, title, score, comments, url, source, subreddit, created_at, fetched_at
		FROM social_post
		WHERE run_id = $1
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.SocialPost
	for rows.Next() {
		var p model.SocialPost
		err := rows.Scan(&p.ID, &p.RunID, &p.Title, &p.Score, &p.Comments, &p.URL, &p.Source, &p.Subreddit, &p.CreatedAt, &p.FetchedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) CountByRun(runID string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM social_post WHERE run_id = $1
	`, runID).Scan(&total)
	return total, err
}

func (r *PostRepository) SaveError(runID string, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(run_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, runID, errMsg, errType)

	return err
}

func (r *PostRepository) GetErrorCount(runID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error WHERE run_id = $1
	`, runID).Scan(&count)
	return count, err
}
