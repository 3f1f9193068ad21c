package trend

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"
)

// Clustering modes recorded in the report summary.
const (
	ModeGlobal      = "global"
	ModeBySubreddit = "by_subreddit"
)

var (
	// ErrInvalidInput means the post or cluster list itself was unusable
	// (empty or missing). Fatal to the run in strict mode.
	ErrInvalidInput = errors.New("invalid analysis input")

	// ErrNoResolvableData means the shapes were valid but no cluster title
	// resolved to a known post, so there is nothing to score.
	ErrNoResolvableData = errors.New("no resolvable data")
)

// RunOptions controls a single analysis run.
//
// Lenient makes no-data conditions degrade to DefaultReport instead of
// returning an error, for call sites that must always receive a report.
type RunOptions struct {
	ApplyElbow     bool
	Lenient        bool
	ClusteringMode string
}

// Analyzer scores clusters of social posts and assembles trending topic
// reports. It is purely computational and safe for concurrent use; the only
// non-determinism is the injected clock, which freshness scoring depends on.
type Analyzer struct {
	cfg ScoringConfig
	now func() time.Time
}

func NewAnalyzer(cfg ScoringConfig) (*Analyzer, error) {
	return NewAnalyzerWithClock(cfg, time.Now)
}

// NewAnalyzerWithClock builds an analyzer with an explicit clock so runs are
// reproducible under test.
func NewAnalyzerWithClock(cfg ScoringConfig, now func() time.Time) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Analyzer{cfg: cfg, now: now}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// engagementScore sums the weighted engagement of a set of posts. Upvotes
// count more than comments. Posts without a timestamp still count here.
func engagementScore(posts []Post) float64 {
	var total float64
	for _, p := range posts {
		total += float64(p.Score)*0.7 + float64(p.Comments)*0.3
	}
	return total
}

// freshnessScore averages per-post freshness over the posts that carry a
// parseable date. Freshness decays linearly to zero across the window and
// never goes negative. A cluster with no dated posts scores the neutral
// midpoint of 50 rather than 0, so undated content is not penalized.
func (a *Analyzer) freshnessScore(posts []Post, now time.Time) float64 {
	var sum float64
	var dated int

	for _, p := range posts {
		postedAt, ok := p.PostedAt()
		if !ok {
			continue
		}
		daysAgo := int(now.Sub(postedAt).Hours() / 24)
		freshness := math.Max((float64(a.cfg.WindowDays-daysAgo)/float64(a.cfg.WindowDays))*100, 0)
		sum += freshness
		dated++
	}

	if dated == 0 {
		return 50
	}
	return sum / float64(dated)
}

// scoreClusters resolves each cluster's titles against the post universe,
// computes raw per-cluster metrics, then normalizes engagement and frequency
// against the run maxima and blends the weighted relevance score. Clusters
// with zero resolvable posts are dropped, not errors.
func (a *Analyzer) scoreClusters(clusters []Cluster, postsByTitle map[string]Post) ([]TrendingTopic, []ClusterMetrics) {
	now := a.now()
	var metrics []ClusterMetrics

	for _, cluster := range clusters {
		var clusterPosts []Post
		for _, title := range cluster.Titles {
			if p, ok := postsByTitle[title]; ok {
				clusterPosts = append(clusterPosts, p)
			}
		}

		if len(clusterPosts) == 0 {
			slog.Info("cluster has no resolvable posts, dropping", "cluster", cluster.Name)
			continue
		}

		metrics = append(metrics, ClusterMetrics{
			TopicCluster:   cluster.Name,
			Frequency:      len(clusterPosts),
			RawEngagement:  engagementScore(clusterPosts),
			FreshnessScore: a.freshnessScore(clusterPosts, now),
			PostCount:      len(clusterPosts),
		})
	}

	// Maxima default to 1 so an empty run never divides by zero.
	var maxEngagement, maxFrequency float64
	for _, m := range metrics {
		maxEngagement = math.Max(maxEngagement, m.RawEngagement)
		maxFrequency = math.Max(maxFrequency, float64(m.Frequency))
	}
	if len(metrics) == 0 {
		maxEngagement, maxFrequency = 1, 1
	}

	slog.Info("normalization factors", "max_engagement", maxEngagement, "max_frequency", maxFrequency)

	topics := make([]TrendingTopic, 0, len(metrics))
	for _, m := range metrics {
		var engagement, frequency float64
		if maxEngagement > 0 {
			engagement = m.RawEngagement / maxEngagement * 100
		}
		if maxFrequency > 0 {
			frequency = float64(m.Frequency) / maxFrequency * 100
		}

		relevance := engagement*a.cfg.EngagementWeight +
			m.FreshnessScore*a.cfg.FreshnessWeight +
			frequency*a.cfg.FrequencyWeight

		topics = append(topics, TrendingTopic{
			TopicCluster:   m.TopicCluster,
			RelevanceScore: round2(relevance),
			Metrics: TopicMetrics{
				FreshnessScore:  round2(m.FreshnessScore),
				EngagementScore: round2(engagement),
				Frequency:       m.Frequency,
				TotalEngagement: m.RawEngagement,
			},
		})
	}

	return topics, metrics
}

// rankTopics sorts topics by relevance descending and assigns 1-based ranks.
// The sort is stable so equal scores keep their encounter order.
func rankTopics(topics []TrendingTopic) {
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].RelevanceScore > topics[j].RelevanceScore
	})
	for i := range topics {
		topics[i].Rank = i + 1
	}
}

// Analyze runs the full scoring pipeline: resolve titles, score and rank every
// cluster, optionally cut the ranked list at the elbow, and assemble the report.
//
// In strict mode (the default), empty inputs surface as ErrInvalidInput and a
// run where nothing resolves surfaces as ErrNoResolvableData. In lenient mode
// both degrade to DefaultReport.
func (a *Analyzer) Analyze(posts []Post, clusters []Cluster, opts RunOptions) (*Report, error) {
	mode := opts.ClusteringMode
	if mode == "" {
		mode = ModeGlobal
	}

	fail := func(err error) (*Report, error) {
		if opts.Lenient {
			slog.Warn("degrading to default report", "reason", err)
			return DefaultReport(a.cfg, a.now()), nil
		}
		return nil, err
	}

	if len(posts) == 0 {
		return fail(fmt.Errorf("%w: empty post list", ErrInvalidInput))
	}

	postsByTitle := extractTitles(posts)
	if len(postsByTitle) == 0 {
		return fail(fmt.Errorf("%w: no posts with titles", ErrInvalidInput))
	}

	if len(clusters) == 0 {
		return fail(fmt.Errorf("%w: clustering produced no clusters", ErrInvalidInput))
	}

	topics, metrics := a.scoreClusters(clusters, postsByTitle)
	if len(topics) == 0 {
		return fail(fmt.Errorf("%w: no cluster resolved any known post", ErrNoResolvableData))
	}

	rankTopics(topics)

	var elbowThreshold *float64
	if opts.ApplyElbow {
		var threshold float64
		topics, threshold = ApplyElbowFiltering(topics)
		threshold = round2(threshold)
		elbowThreshold = &threshold
	}

	return a.buildReport(topics, metrics, len(postsByTitle), elbowThreshold, mode), nil
}

// buildReport assembles the final report. Summary totals are computed across
// all scored clusters, before elbow filtering.
func (a *Analyzer) buildReport(topics []TrendingTopic, metrics []ClusterMetrics, totalTitles int, elbowThreshold *float64, mode string) *Report {
	var totalPosts int
	var totalEngagement float64
	for _, m := range metrics {
		totalPosts += m.PostCount
		totalEngagement += m.RawEngagement
	}

	return &Report{
		AnalysisTimestamp: a.now(),
		Summary: Summary{
			ClusteringMode:       mode,
			TotalClusters:        len(metrics),
			TotalPostsAnalyzed:   totalPosts,
			OriginalTitles:       totalTitles,
			TotalEngagement:      totalEngagement,
			TimeWindowDays:       a.cfg.WindowDays,
			TopicsAfterFiltering: len(topics),
		},
		ScoringWeights: ScoringWeights{
			Engagement: a.cfg.EngagementWeight,
			Freshness:  a.cfg.FreshnessWeight,
			Frequency:  a.cfg.FrequencyWeight,
		},
		TrendingTopics: topics,
		ElbowThreshold: elbowThreshold,
	}
}
