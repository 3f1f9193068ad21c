package llm

import (
	"context"
	"log/slog"
	"sort"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
)

const gapBatchSize = 50

// AnalyzeGapsInBatches runs gap analysis over competitor titles in batches,
// aggregates coverage counts per unique topic, and returns the gaps sorted by
// coverage descending. A failed batch is logged and skipped.
func AnalyzeGapsInBatches(ctx context.Context, finder GapFinder, ownTitles, competitorTitles []string) []model.ContentGap {
	coverage := make(map[string]int)
	var order []string

	totalBatches := (len(competitorTitles) + gapBatchSize - 1) / gapBatchSize

	for i := 0; i < len(competitorTitles); i += gapBatchSize {
		end := i + gapBatchSize
		if end > len(competitorTitles) {
			end = len(competitorTitles)
		}
		batch := competitorTitles[i:end]
		batchNum := i/gapBatchSize + 1

		slog.Info("processing gap batch", "batch", batchNum, "total_batches", totalBatches, "titles", len(batch))

		gaps, err := finder.FindGaps(ctx, ownTitles, batch)
		if err != nil {
			slog.Error("gap batch failed, skipping", "batch", batchNum, "error", err)
			continue
		}

		for _, g := range gaps {
			if _, seen := coverage[g.GapTopic]; !seen {
				order = append(order, g.GapTopic)
			}
			coverage[g.GapTopic] += g.CompetitorCoverage
		}
	}

	final := make([]model.ContentGap, 0, len(order))
	for _, topic := range order {
		final = append(final, model.ContentGap{GapTopic: topic, CompetitorCoverage: coverage[topic]})
	}

	sort.SliceStable(final, func(i, j int) bool {
		return final[i].CompetitorCoverage > final[j].CompetitorCoverage
	})

	slog.Info("gap analysis completed", "unique_gaps", len(final))
	return final
}
