package model

import "time"

// TrendReport is a persisted trend analysis report. Payload holds the full
// report JSON exactly as produced by the analyzer, since downstream consumers
// pattern-match on its field names.
type TrendReport struct {
	ID             int64
	RunID          string
	ClusteringMode string
	TopicCount     int
	ElbowThreshold float64
	Payload        []byte
	CreatedAt      time.Time
}

// ContentGap is a topic competitors cover that our own content does not.
type ContentGap struct {
	ID                 int64
	RunID              string
	GapTopic           string
	CompetitorCoverage int
	CreatedAt          time.Time
}
