package model

import "time"

// Source types a brief can be generated from.
const (
	BriefSourceTrending = "trending_topic"
	BriefSourceGap      = "content_gap"
)

// Brief is a structured content brief produced by the LLM for one topic.
type Brief struct {
	ID               int64
	RunID            string
	Topic            string
	SourceType       string
	Audience         string
	JobToBeDone      string
	Angle            string
	Promise          string
	CTA              string
	KeyTalkingPoints []string
	ModelUsed        string
	CreatedAt        time.Time
}
