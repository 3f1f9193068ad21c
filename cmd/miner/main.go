package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/db"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/repository"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/pkg/llm"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/pkg/sitemap"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/pkg/social"
)

const (
	postsPerSubreddit = 50
	maxWorkers        = 4
	userAgent         = "ContentAgent/1.0 (trend mining)"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	subreddits := parseList(os.Getenv("SUBREDDITS"))
	if len(subreddits) == 0 {
		slog.Error("no subreddits configured, set SUBREDDITS")
		return
	}

	runID := uuid.NewString()
	slog.Info("starting mining run", "run_id", runID, "subreddits", subreddits)

	postRepo := repository.NewPostRepository(db.DB)
	client := social.NewRedditClient(userAgent)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var (
		mu                       sync.Mutex
		saved, duplicated, fails int
	)

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxWorkers)

	for _, subreddit := range subreddits {
		wg.Add(1)
		sem <- struct{}{}

		go func(subreddit string) {
			defer wg.Done()
			defer func() { <-sem }()

			posts, err := client.Fetch(ctx, subreddit, postsPerSubreddit)
			if err != nil {
				slog.Warn("skipping subreddit", "subreddit", subreddit, "error", err)
				mu.Lock()
				fails++
				mu.Unlock()
				return
			}

			for _, p := range posts {
				post := model.SocialPost{
					RunID:     runID,
					Title:     p.Title,
					Score:     p.Score,
					Comments:  p.Comments,
					URL:       p.URL,
					Source:    p.Source,
					Subreddit: p.Subreddit,
					CreatedAt: p.CreatedAt,
				}

				success, err := postRepo.SavePost(&post)

				mu.Lock()
				switch {
				case err != nil:
					slog.Error("error saving post", "subreddit", subreddit, "error", err)
					fails++
				case !success:
					duplicated++
				default:
					saved++
				}
				mu.Unlock()
			}
		}(subreddit)
	}

	wg.Wait()

	slog.Info("mining complete", "run_id", runID, "saved", saved, "duplicated", duplicated, "errors", fails)

	if saved == 0 {
		slog.Error("no posts saved, not enqueueing run", "run_id", runID)
		return
	}

	collectGaps(ctx, runID)

	err = db.PushToQueue(db.AnalyzeQueueKey, runID)
	if err != nil {
		log.Fatalf("error pushing run to analyze queue: %v", err)
	}

	slog.Info("run enqueued for analysis", "run_id", runID)
}

// collectGaps scrapes our own sitemap and competitor sitemaps and stores the
// topics competitors cover that we do not. Skipped entirely when the sitemap
// envs are not set, since gap analysis is optional per run.
func collectGaps(ctx context.Context, runID string) {
	ownSitemap := os.Getenv("OWN_SITEMAP_URL")
	competitorSitemaps := parseList(os.Getenv("COMPETITOR_SITEMAP_URLS"))

	if ownSitemap == "" || len(competitorSitemaps) == 0 {
		slog.Info("sitemap envs not set, skipping gap analysis")
		return
	}

	crawler := sitemap.NewCrawler(userAgent)

	ownTitles, err := crawler.CollectTitles(ctx, ownSitemap)
	if err != nil {
		slog.Error("error collecting own titles, skipping gap analysis", "error", err)
		return
	}

	var competitorTitles []string
	for _, sitemapURL := range competitorSitemaps {
		titles, err := crawler.CollectTitles(ctx, sitemapURL)
		if err != nil {
			slog.Warn("skipping competitor sitemap", "url", sitemapURL, "error", err)
			continue
		}
		competitorTitles = append(competitorTitles, titles...)
	}

	if len(competitorTitles) == 0 {
		slog.Warn("no competitor titles collected, skipping gap analysis")
		return
	}

	finder := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
	gaps := llm.AnalyzeGapsInBatches(ctx, finder, ownTitles, competitorTitles)

	if len(gaps) == 0 {
		slog.Info("no content gaps found", "run_id", runID)
		return
	}

	gapRepo := repository.NewGapRepository(db.DB)
	if err := gapRepo.SaveGaps(runID, gaps); err != nil {
		slog.Error("error saving gaps", "run_id", runID, "error", err)
		return
	}

	slog.Info("content gaps saved", "run_id", runID, "gaps", len(gaps))
}

func parseList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
