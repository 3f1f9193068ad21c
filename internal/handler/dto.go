package handler

import "encoding/json"

type ReportResponse struct {
	ID             int64           `json:"id"`
	RunID          string          `json:"run_id"`
	ClusteringMode string          `json:"clustering_mode"`
	TopicCount     int             `json:"topic_count"`
	ElbowThreshold float64         `json:"elbow_threshold"`
	CreatedAt      string          `json:"created_at"`
	Report         json.RawMessage `json:"report"`
}

type ReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type GapResponse struct {
	ID                 int64  `json:"id"`
	RunID              string `json:"run_id"`
	GapTopic           string `json:"gap_topic"`
	CompetitorCoverage int    `json:"competitor_coverage"`
	CreatedAt          string `json:"created_at"`
}

type GapsResponse struct {
	Gaps   []GapResponse `json:"gaps"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type BriefResponse struct {
	ID               int64    `json:"id"`
	RunID            string   `json:"run_id"`
	Topic            string   `json:"topic"`
	SourceType       string   `json:"source_type"`
	Audience         string   `json:"audience"`
	JobToBeDone      string   `json:"job_to_be_done"`
	Angle            string   `json:"angle"`
	Promise          string   `json:"promise"`
	CTA              string   `json:"cta"`
	KeyTalkingPoints []string `json:"key_talking_points"`
	ModelUsed        string   `json:"model_used"`
	CreatedAt        string   `json:"created_at"`
}

type BriefsResponse struct {
	Briefs []BriefResponse `json:"briefs"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
