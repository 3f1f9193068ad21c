package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
)

type fakeGapFinder struct {
	batches [][]string
	results [][]model.ContentGap
	errs    []error
	calls   int
}

func (f *fakeGapFinder) FindGaps(ctx context.Context, ownTitles, competitorTitles []string) ([]model.ContentGap, error) {
	f.batches = append(f.batches, competitorTitles)
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], err
	}
	return nil, err
}

func manyTitles(n int) []string {
	titles := make([]string, n)
	for i := range titles {
		titles[i] = "title"
	}
	return titles
}

func TestAnalyzeGapsInBatchesAggregates(t *testing.T) {
	finder := &fakeGapFinder{
		results: [][]model.ContentGap{
			{
				{GapTopic: "rag pipelines", CompetitorCoverage: 3},
				{GapTopic: "fine-tuning", CompetitorCoverage: 1},
			},
			{
				{GapTopic: "rag pipelines", CompetitorCoverage: 2},
				{GapTopic: "agents", CompetitorCoverage: 4},
			},
		},
	}

	// 60 competitor titles -> two batches of 50 and 10.
	gaps := AnalyzeGapsInBatches(context.Background(), finder, []string{"own"}, manyTitles(60))

	if finder.calls != 2 {
		t.Fatalf("expected 2 batches, got %d", finder.calls)
	}
	if len(finder.batches[0]) != 50 || len(finder.batches[1]) != 10 {
		t.Errorf("unexpected batch sizes: %d, %d", len(finder.batches[0]), len(finder.batches[1]))
	}

	if len(gaps) != 3 {
		t.Fatalf("expected 3 unique gaps, got %d", len(gaps))
	}

	// Aggregated coverage sorted descending: rag 5, agents 4, fine-tuning 1.
	if gaps[0].GapTopic != "rag pipelines" || gaps[0].CompetitorCoverage != 5 {
		t.Errorf("unexpected top gap: %+v", gaps[0])
	}
	if gaps[1].GapTopic != "agents" || gaps[2].GapTopic != "fine-tuning" {
		t.Errorf("unexpected order: %+v", gaps)
	}
}

func TestAnalyzeGapsInBatchesSkipsFailedBatch(t *testing.T) {
	finder := &fakeGapFinder{
		results: [][]model.ContentGap{
			nil,
			{{GapTopic: "agents", CompetitorCoverage: 2}},
		},
		errs: []error{errors.New("API down"), nil},
	}

	gaps := AnalyzeGapsInBatches(context.Background(), finder, []string{"own"}, manyTitles(60))

	if len(gaps) != 1 || gaps[0].GapTopic != "agents" {
		t.Errorf("failed batch should be skipped, got %+v", gaps)
	}
}
