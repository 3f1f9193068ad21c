package trend

import "time"

// TopicMetrics carries the per-cluster signal breakdown behind a relevance score.
type TopicMetrics struct {
	FreshnessScore  float64 `json:"freshness_score"`
	EngagementScore float64 `json:"engagement_score"`
	Frequency       int     `json:"frequency"`
	TotalEngagement float64 `json:"total_engagement"`
}

// TrendingTopic is one ranked, scored cluster in the final report.
type TrendingTopic struct {
	TopicCluster   string       `json:"topic_cluster"`
	RelevanceScore float64      `json:"relevance_score"`
	Metrics        TopicMetrics `json:"metrics"`
	Rank           int          `json:"rank"`
}

// ClusterMetrics holds the raw, un-normalized per-cluster numbers. They feed
// the report summary totals and are recomputed fresh on every run.
type ClusterMetrics struct {
	TopicCluster   string  `json:"topic_cluster"`
	Frequency      int     `json:"frequency"`
	RawEngagement  float64 `json:"raw_engagement"`
	FreshnessScore float64 `json:"freshness_score"`
	PostCount      int     `json:"post_count"`
}

// Summary aggregates run-level totals. Totals reflect all scored clusters,
// not just those that survived elbow filtering.
type Summary struct {
	ClusteringMode       string  `json:"clustering_mode"`
	TotalClusters        int     `json:"total_clusters"`
	TotalPostsAnalyzed   int     `json:"total_posts_analyzed"`
	OriginalTitles       int     `json:"original_titles"`
	TotalEngagement      float64 `json:"total_engagement"`
	TimeWindowDays       int     `json:"time_window_days"`
	TopicsAfterFiltering int     `json:"topics_after_filtering"`
}

// ScoringWeights mirrors the configured weights into the report so downstream
// consumers can see how scores were composed.
type ScoringWeights struct {
	Engagement float64 `json:"engagement"`
	Freshness  float64 `json:"freshness"`
	Frequency  float64 `json:"frequency"`
}

// Report is the single artifact handed across the analyzer boundary. Field
// names are a contract with downstream brief generation and the API; do not
// rename them. ElbowThreshold is present only when elbow filtering ran.
type Report struct {
	AnalysisTimestamp time.Time       `json:"analysis_timestamp"`
	Summary           Summary         `json:"summary"`
	ScoringWeights    ScoringWeights  `json:"scoring_weights"`
	TrendingTopics    []TrendingTopic `json:"trending_topics"`
	ElbowThreshold    *float64        `json:"elbow_threshold,omitempty"`
}

// DefaultReport is the well-defined empty report returned in lenient mode when
// a run has no usable data. Downstream consumers always expect a report-shaped
// value, so this never propagates as an error.
func DefaultReport(cfg ScoringConfig, now time.Time) *Report {
	zero := 0.0
	return &Report{
		AnalysisTimestamp: now,
		Summary: Summary{
			ClusteringMode: ModeGlobal,
			TimeWindowDays: cfg.WindowDays,
		},
		ScoringWeights: ScoringWeights{
			Engagement: cfg.EngagementWeight,
			Freshness:  cfg.FreshnessWeight,
			Frequency:  cfg.FrequencyWeight,
		},
		TrendingTopics: []TrendingTopic{},
		ElbowThreshold: &zero,
	}
}
