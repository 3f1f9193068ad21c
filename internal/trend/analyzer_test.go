package trend

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzerWithClock(DefaultScoringConfig(), func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("failed to build analyzer: %v", err)
	}
	return a
}

func TestPostedAtAliases(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"created_utc with Z suffix", Post{CreatedUTC: "2025-11-20T10:00:00Z"}, true},
		{"created_utc with offset", Post{CreatedUTC: "2025-11-20T10:00:00+00:00"}, true},
		{"timestamp alias", Post{Timestamp: "2025-11-19T08:30:00Z"}, true},
		{"post_date date only", Post{PostDate: "2025-11-18"}, true},
		{"space separated", Post{CreatedUTC: "2025-11-20 10:00:00"}, true},
		{"no date fields", Post{Title: "undated"}, false},
		{"garbage value", Post{CreatedUTC: "not a date"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.post.PostedAt()
			if ok != tt.want {
				t.Errorf("PostedAt() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	a := newTestAnalyzer(t)

	today := testNow.Format(time.RFC3339)
	twoWeeksAgo := testNow.AddDate(0, 0, -14).Format(time.RFC3339)

	posts := []Post{
		{Title: "a1", Score: 100, Comments: 100, CreatedUTC: today},
		{Title: "a2", Score: 0, Comments: 0, CreatedUTC: today},
		{Title: "b1", Score: 10, Comments: 10, CreatedUTC: twoWeeksAgo},
	}
	clusters := []Cluster{
		{Name: "A", Titles: []string{"a1", "a2"}},
		{Name: "B", Titles: []string{"b1"}},
	}

	report, err := a.Analyze(posts, clusters, RunOptions{ApplyElbow: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.TrendingTopics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(report.TrendingTopics))
	}

	top := report.TrendingTopics[0]
	if top.TopicCluster != "A" || top.Rank != 1 {
		t.Errorf("expected cluster A ranked first, got %q rank %d", top.TopicCluster, top.Rank)
	}
	if top.RelevanceScore != 100 {
		t.Errorf("expected A relevance 100, got %v", top.RelevanceScore)
	}
	if top.Metrics.EngagementScore != 100 || top.Metrics.Frequency != 2 {
		t.Errorf("unexpected A metrics: %+v", top.Metrics)
	}

	second := report.TrendingTopics[1]
	if second.TopicCluster != "B" || second.Rank != 2 {
		t.Errorf("expected cluster B ranked second, got %q rank %d", second.TopicCluster, second.Rank)
	}
	// eng 10*0.4 + freshness 0*0.35 + freq 50*0.25
	if second.RelevanceScore != 16.5 {
		t.Errorf("expected B relevance 16.5, got %v", second.RelevanceScore)
	}
	if second.Metrics.FreshnessScore != 0 {
		t.Errorf("expected B freshness 0, got %v", second.Metrics.FreshnessScore)
	}

	// Two topics: elbow is a passthrough with a zero threshold.
	if report.ElbowThreshold == nil || *report.ElbowThreshold != 0.0 {
		t.Errorf("expected elbow threshold 0.0, got %v", report.ElbowThreshold)
	}

	s := report.Summary
	if s.TotalClusters != 2 || s.TotalPostsAnalyzed != 3 || s.OriginalTitles != 3 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.TotalEngagement != 110 {
		t.Errorf("expected total engagement 110, got %v", s.TotalEngagement)
	}
	if s.TopicsAfterFiltering != 2 || s.TimeWindowDays != 14 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	a := newTestAnalyzer(t)

	posts := []Post{
		{Title: "p1", Score: 5000, Comments: 900, CreatedUTC: testNow.Format(time.RFC3339)},
		{Title: "p2", Score: 1, CreatedUTC: testNow.AddDate(0, 0, -30).Format(time.RFC3339)},
		{Title: "p3", Score: 40, Comments: 2},
	}
	clusters := []Cluster{
		{Name: "hot", Titles: []string{"p1"}},
		{Name: "stale", Titles: []string{"p2"}},
		{Name: "undated", Titles: []string{"p3"}},
	}

	report, err := a.Analyze(posts, clusters, RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, topic := range report.TrendingTopics {
		if topic.RelevanceScore < 0 || topic.RelevanceScore > 100 {
			t.Errorf("relevance score out of bounds for %q: %v", topic.TopicCluster, topic.RelevanceScore)
		}
	}

	if report.ElbowThreshold != nil {
		t.Errorf("elbow threshold should be absent when filtering not requested, got %v", *report.ElbowThreshold)
	}
}

func TestAnalyzeFreshnessNeutrality(t *testing.T) {
	a := newTestAnalyzer(t)

	posts := []Post{
		{Title: "u1", Score: 10},
		{Title: "u2", Score: 20, CreatedUTC: "garbage"},
	}
	clusters := []Cluster{{Name: "undated", Titles: []string{"u1", "u2"}}}

	report, err := a.Analyze(posts, clusters, RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := report.TrendingTopics[0].Metrics.FreshnessScore; got != 50 {
		t.Errorf("cluster with no dated posts should score freshness 50, got %v", got)
	}
}

func TestAnalyzeSingleClusterSelfNormalizes(t *testing.T) {
	a := newTestAnalyzer(t)

	posts := []Post{{Title: "only", Score: 3, Comments: 1, CreatedUTC: testNow.Format(time.RFC3339)}}
	clusters := []Cluster{{Name: "solo", Titles: []string{"only"}}}

	report, err := a.Analyze(posts, clusters, RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := report.TrendingTopics[0].Metrics
	if m.EngagementScore != 100 {
		t.Errorf("single cluster should self-normalize engagement to 100, got %v", m.EngagementScore)
	}
	// frequency normalizes to 100 as well: 100*0.4 + 100*0.35 + 100*0.25
	if report.TrendingTopics[0].RelevanceScore != 100 {
		t.Errorf("expected relevance 100, got %v", report.TrendingTopics[0].RelevanceScore)
	}
}

func TestAnalyzeDeterministicRanking(t *testing.T) {
	a := newTestAnalyzer(t)

	today := testNow.Format(time.RFC3339)
	posts := []Post{
		{Title: "x", Score: 10, Comments: 0, CreatedUTC: today},
		{Title: "y", Score: 10, Comments: 0, CreatedUTC: today},
	}
	// Identical metrics: the stable sort must keep encounter order.
	clusters := []Cluster{
		{Name: "first", Titles: []string{"x"}},
		{Name: "second", Titles: []string{"y"}},
	}

	first, err := a.Analyze(posts, clusters, RunOptions{ApplyElbow: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.Analyze(posts, clusters, RunOptions{ApplyElbow: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.TrendingTopics[0].TopicCluster != "first" || first.TrendingTopics[1].TopicCluster != "second" {
		t.Errorf("tie break should keep encounter order, got %q then %q",
			first.TrendingTopics[0].TopicCluster, first.TrendingTopics[1].TopicCluster)
	}

	a1, _ := json.Marshal(first)
	a2, _ := json.Marshal(second)
	if string(a1) != string(a2) {
		t.Error("two runs with identical input and clock should serialize identically")
	}
}

func TestAnalyzeUnresolvableTitles(t *testing.T) {
	a := newTestAnalyzer(t)

	posts := []Post{{Title: "known", Score: 1, CreatedUTC: testNow.Format(time.RFC3339)}}
	clusters := []Cluster{
		{Name: "mixed", Titles: []string{"known", "phantom"}},
		{Name: "ghost", Titles: []string{"phantom only"}},
	}

	report, err := a.Analyze(posts, clusters, RunOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "ghost" resolves nothing and is dropped; "phantom" in "mixed" is ignored.
	if len(report.TrendingTopics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(report.TrendingTopics))
	}
	if report.TrendingTopics[0].Metrics.Frequency != 1 {
		t.Errorf("expected frequency 1, got %d", report.TrendingTopics[0].Metrics.Frequency)
	}
}

func TestAnalyzeStrictErrors(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.Analyze(nil, []Cluster{{Name: "c", Titles: []string{"t"}}}, RunOptions{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty posts should give ErrInvalidInput, got %v", err)
	}

	_, err = a.Analyze([]Post{{Title: "t"}}, nil, RunOptions{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty clusters should give ErrInvalidInput, got %v", err)
	}

	_, err = a.Analyze([]Post{{Title: "t"}}, []Cluster{{Name: "c", Titles: []string{"other"}}}, RunOptions{})
	if !errors.Is(err, ErrNoResolvableData) {
		t.Errorf("nothing resolvable should give ErrNoResolvableData, got %v", err)
	}
}

func TestAnalyzeLenientDegrades(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Analyze(nil, nil, RunOptions{Lenient: true})
	if err != nil {
		t.Fatalf("lenient mode should not error, got %v", err)
	}

	if report.Summary.TotalClusters != 0 || report.Summary.TotalPostsAnalyzed != 0 {
		t.Errorf("default report should have zero summary, got %+v", report.Summary)
	}
	if len(report.TrendingTopics) != 0 {
		t.Errorf("default report should have no topics, got %d", len(report.TrendingTopics))
	}
	if report.ElbowThreshold == nil || *report.ElbowThreshold != 0.0 {
		t.Errorf("default report carries a zero elbow threshold, got %v", report.ElbowThreshold)
	}
	if report.Summary.TimeWindowDays != 14 {
		t.Errorf("default report keeps the configured window, got %d", report.Summary.TimeWindowDays)
	}
}

func TestMergeClustersByName(t *testing.T) {
	clusters := []Cluster{
		{Name: "LLM Tooling", Titles: []string{"a", "b"}},
		{Name: "Career Advice", Titles: []string{"c"}},
		{Name: "LLM Tooling", Titles: []string{"d", "a"}},
		{Name: "llm tooling", Titles: []string{"e"}},
	}

	merged := MergeClustersByName(clusters)

	if len(merged) != 3 {
		t.Fatalf("expected 3 merged clusters, got %d", len(merged))
	}

	first := merged[0]
	if first.Name != "LLM Tooling" {
		t.Errorf("expected first-appearance order, got %q first", first.Name)
	}
	// Duplicates are kept and order of appearance preserved.
	want := []string{"a", "b", "d", "a"}
	if len(first.Titles) != len(want) {
		t.Fatalf("expected titles %v, got %v", want, first.Titles)
	}
	for i, title := range want {
		if first.Titles[i] != title {
			t.Errorf("title %d: expected %q, got %q", i, title, first.Titles[i])
		}
	}

	// Case-sensitive merge: the lowercase variant stays its own cluster.
	if merged[2].Name != "llm tooling" || len(merged[2].Titles) != 1 {
		t.Errorf("case variants must not merge: %+v", merged[2])
	}
}

func TestReportJSONContract(t *testing.T) {
	a := newTestAnalyzer(t)

	posts := []Post{
		{Title: "p1", Score: 10, Comments: 2, CreatedUTC: testNow.Format(time.RFC3339)},
		{Title: "p2", Score: 4, Comments: 1, CreatedUTC: testNow.Format(time.RFC3339)},
		{Title: "p3", Score: 1, Comments: 0, CreatedUTC: testNow.Format(time.RFC3339)},
	}
	clusters := []Cluster{
		{Name: "one", Titles: []string{"p1"}},
		{Name: "two", Titles: []string{"p2"}},
		{Name: "three", Titles: []string{"p3"}},
	}

	report, err := a.Analyze(posts, clusters, RunOptions{ApplyElbow: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("report should serialize: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("report JSON should round-trip: %v", err)
	}

	for _, key := range []string{"analysis_timestamp", "summary", "scoring_weights", "trending_topics", "elbow_threshold"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("report JSON missing %q", key)
		}
	}

	topics := decoded["trending_topics"].([]any)
	topic := topics[0].(map[string]any)
	for _, key := range []string{"topic_cluster", "relevance_score", "metrics", "rank"} {
		if _, ok := topic[key]; !ok {
			t.Errorf("trending topic JSON missing %q", key)
		}
	}
}
