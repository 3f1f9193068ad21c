package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/db"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/repository"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/trend"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/pkg/llm"
)

const (
	maxRetries     = 3
	maxTrendBriefs = 3
	maxGapBriefs   = 2
)

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
	gapRepo := repository.NewGapRepository(db.DB)
	briefRepo := repository.NewBriefRepository(db.DB)

	writer := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))

	for {
		runID, err := db.PopFromQueue(db.BriefQueueKey, 0)
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

		report, err := reportRepo.GetByRunID(runID)
		if err != nil {
			slog.Error("error loading report", "error", err, "run_id", runID)
			continue
		}

		if report == nil {
			slog.Warn("no report for run, skipping", "run_id", runID)
			continue
		}

		var parsed trend.Report
		if err := json.Unmarshal(report.Payload, &parsed); err != nil {
			slog.Error("error parsing report payload", "error", err, "run_id", runID)
			postRepo.SaveError(runID, err.Error(), "payload_error")
			continue
		}

		gaps, err := gapRepo.GetByRun(runID)
		if err != nil {
			slog.Error("error loading gaps", "error", err, "run_id", runID)
			continue
		}

		ctx := context.Background()
		var generated int

		topics := parsed.TrendingTopics
		if len(topics) > maxTrendBriefs {
			topics = topics[:maxTrendBriefs]
		}

		for _, topic := range topics {
			if writeBrief(ctx, writer, briefRepo, postRepo, runID, topic.TopicCluster, model.BriefSourceTrending) {
				generated++
			}
		}

		if len(gaps) > maxGapBriefs {
			gaps = gaps[:maxGapBriefs]
		}

		for _, gap := range gaps {
			if writeBrief(ctx, writer, briefRepo, postRepo, runID, gap.GapTopic, model.BriefSourceGap) {
				generated++
			}
		}

		slog.Info("briefs generated", "run_id", runID, "count", generated,
			"topics", len(topics), "gaps", len(gaps))
	}
}

// writeBrief generates and persists one brief. Failures are recorded against
// the run but never stop the remaining topics.
func writeBrief(ctx context.Context, writer llm.BriefWriter, briefRepo *repository.BriefRepository, postRepo *repository.PostRepository, runID, topic, sourceType string) bool {
	brief, err := writer.WriteBrief(ctx, topic, sourceType)
	if err != nil {
		slog.Error("error generating brief", "error", err, "run_id", runID, "topic", topic)
		postRepo.SaveError(runID, err.Error(), "llm_error")
		return false
	}

	brief.RunID = runID

	if err := briefRepo.SaveBrief(brief); err != nil {
		slog.Error("error saving brief", "error", err, "run_id", runID, "topic", topic)
		return false
	}

	slog.Info("brief saved", "run_id", runID, "brief_id", brief.ID, "topic", topic, "source_type", sourceType)
	return true
}
