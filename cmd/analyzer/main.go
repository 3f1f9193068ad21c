package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/db"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/repository"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/trend"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/pkg/llm"
)

const maxRetries = 3

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	postRepo := repository.NewPostRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)

	oracle := newClusterOracle()

	analyzer, err := trend.NewAnalyzer(scoringConfigFromEnv())
	if err != nil {
		log.Fatalf("invalid scoring config: %v", err)
	}

	bySubreddit := os.Getenv("CLUSTER_BY_SUBREDDIT") == "true"

	for {
		runID, err := db.PopFromQueue(db.AnalyzeQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		errorCount, err := postRepo.GetErrorCount(runID)
		if err != nil {
			slog.Error("error getting error count", "error", err, "run_id", runID)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("run exceeded max retries, moving to dead letter", "run_id", runID, "error_count", errorCount)
			db.PushToQueue(db.DeadLetterKey, runID)
			continue
		}

		posts, err := postRepo.GetByRun(runID)
		if err != nil {
			slog.Error("error loading posts for run", "error", err, "run_id", runID)
			continue
		}

		if len(posts) == 0 {
			slog.Warn("run has no posts, skipping", "run_id", runID)
			continue
		}

		ctx := context.Background()

		clusters, mode, err := clusterPosts(ctx, oracle, posts, bySubreddit)
		if err != nil {
			slog.Error("error clustering titles", "error", err, "run_id", runID)

			postRepo.SaveError(runID, err.Error(), "llm_error")
			db.PushToQueue(db.AnalyzeQueueKey, runID)

			time.Sleep(5 * time.Second)
			continue
		}

		report, err := analyzer.Analyze(toTrendPosts(posts), clusters, trend.RunOptions{
			ApplyElbow:     true,
			ClusteringMode: mode,
		})
		if err != nil {
			slog.Error("error analyzing run", "error", err, "run_id", runID)
			postRepo.SaveError(runID, err.Error(), "analysis_error")
			continue
		}

		payload, err := json.Marshal(report)
		if err != nil {
			slog.Error("error marshaling report", "error", err, "run_id", runID)
			continue
		}

		var threshold float64
		if report.ElbowThreshold != nil {
			threshold = *report.ElbowThreshold
		}

		saved := model.TrendReport{
			RunID:          runID,
			ClusteringMode: mode,
			TopicCount:     len(report.TrendingTopics),
			ElbowThreshold: threshold,
			Payload:        payload,
		}

		err = reportRepo.SaveReport(&saved)
		if err != nil {
			slog.Error("error saving report", "error", err, "run_id", runID)
			continue
		}

		err = db.PushToQueue(db.BriefQueueKey, runID)
		if err != nil {
			slog.Error("error pushing to brief queue", "error", err, "run_id", runID)
		}

		slog.Info("run analyzed successfully", "run_id", runID, "report_id", saved.ID,
			"mode", mode, "topics", saved.TopicCount, "elbow_threshold", threshold)
	}
}

// newClusterOracle picks the clustering backend. OpenAI is the default;
// LLM_PROVIDER=anthropic switches to Claude.
func newClusterOracle() llm.ClusterOracle {
	if os.Getenv("LLM_PROVIDER") == "anthropic" {
		slog.Info("using anthropic clustering oracle")
		return llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"))
	}
	return llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
}

// clusterPosts sends titles to the oracle, either all at once or one call per
// subreddit with the results merged by exact cluster name.
func clusterPosts(ctx context.Context, oracle llm.ClusterOracle, posts []model.SocialPost, bySubreddit bool) ([]trend.Cluster, string, error) {
	if !bySubreddit {
		titles := make([]string, 0, len(posts))
		for _, p := range posts {
			titles = append(titles, p.Title)
		}

		clusters, err := oracle.ClusterTitles(ctx, titles)
		return clusters, trend.ModeGlobal, err
	}

	titlesBySubreddit := make(map[string][]string)
	var order []string
	for _, p := range posts {
		if _, seen := titlesBySubreddit[p.Subreddit]; !seen {
			order = append(order, p.Subreddit)
		}
		titlesBySubreddit[p.Subreddit] = append(titlesBySubreddit[p.Subreddit], p.Title)
	}

	var all []trend.Cluster
	for _, subreddit := range order {
		clusters, err := oracle.ClusterSubredditTitles(ctx, subreddit, titlesBySubreddit[subreddit])
		if err != nil {
			return nil, "", err
		}
		all = append(all, clusters...)
	}

	return trend.MergeClustersByName(all), trend.ModeBySubreddit, nil
}

func toTrendPosts(posts []model.SocialPost) []trend.Post {
	out := make([]trend.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, trend.Post{
			Title:      p.Title,
			Score:      p.Score,
			Comments:   p.Comments,
			Source:     p.Source,
			CreatedUTC: p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func scoringConfigFromEnv() trend.ScoringConfig {
	cfg := trend.DefaultScoringConfig()

	cfg.EngagementWeight = envFloat("SCORING_ENGAGEMENT_WEIGHT", cfg.EngagementWeight)
	cfg.FreshnessWeight = envFloat("SCORING_FRESHNESS_WEIGHT", cfg.FreshnessWeight)
	cfg.FrequencyWeight = envFloat("SCORING_FREQUENCY_WEIGHT", cfg.FrequencyWeight)

	if raw := os.Getenv("SCORING_WINDOW_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil {
			cfg.WindowDays = days
		} else {
			slog.Warn("invalid SCORING_WINDOW_DAYS, using default", "value", raw, "error", err)
		}
	}

	return cfg
}

func envFloat(name string, defaultValue float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("invalid env value, using default", "env", name, "value", raw, "error", err)
		return defaultValue
	}

	return value
}
