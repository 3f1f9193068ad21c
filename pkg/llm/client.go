package llm

import (
	"context"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/trend"
)

// ClusterOracle groups post titles into named topic clusters. The trend
// analyzer treats it as a black box; retry policy lives in the implementations
// here, never in the analyzer.
type ClusterOracle interface {
	ClusterTitles(ctx context.Context, titles []string) ([]trend.Cluster, error)

	// ClusterSubredditTitles clusters titles from a single subreddit so the
	// prompt carries the community context. Used in by-subreddit mode.
	ClusterSubredditTitles(ctx context.Context, subreddit string, titles []string) ([]trend.Cluster, error)
}

// GapFinder compares our page titles against a batch of competitor titles and
// returns the topics competitors cover that we do not.
type GapFinder interface {
	FindGaps(ctx context.Context, ownTitles, competitorTitles []string) ([]model.ContentGap, error)
}

// BriefWriter turns a single topic into a structured content brief.
type BriefWriter interface {
	WriteBrief(ctx context.Context, topic string, sourceType string) (*model.Brief, error)
}
