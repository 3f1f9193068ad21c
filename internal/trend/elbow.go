package trend

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// minElbowPoints is the smallest ranked list a knee can be fitted to.
// Below this the filter is a passthrough.
const minElbowPoints = 3

// DetectElbow finds the knee point in a list of real numbers using the
// max-perpendicular-distance method: values are sorted descending, a baseline
// is drawn from the first to the last point in (rank, value) space, and the
// elbow is the point farthest from that line. Ties resolve to the lowest index.
//
// It returns the value at the elbow, the elbow index in the sorted slice, and
// the sorted slice itself.
func DetectElbow(values []float64) (float64, int, []float64, error) {
	if len(values) == 0 {
		return 0, 0, nil, fmt.Errorf("elbow detection requires a non-empty input")
	}

	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	n := len(sorted)
	x0, y0 := 0.0, sorted[0]
	x1, y1 := float64(n-1), sorted[n-1]

	dx := x1 - x0
	dy := y1 - y0
	denom := math.Hypot(dx, dy)
	if denom == 0 {
		// Single point: the baseline degenerates to that point.
		return sorted[0], 0, sorted, nil
	}

	elbowIdx := 0
	maxDist := -1.0
	for i, v := range sorted {
		dist := math.Abs(dx*(v-y0)-dy*(float64(i)-x0)) / denom
		if dist > maxDist {
			maxDist = dist
			elbowIdx = i
		}
	}

	return sorted[elbowIdx], elbowIdx, sorted, nil
}

// ApplyElbowFiltering cuts a ranked topic list at the detected elbow,
// keeping every topic whose relevance score is at or above the threshold.
// Lists with fewer than three topics are returned unchanged with threshold 0.
func ApplyElbowFiltering(topics []TrendingTopic) ([]TrendingTopic, float64) {
	if len(topics) == 0 {
		slog.Warn("no trending topics to filter")
		return []TrendingTopic{}, 0.0
	}

	if len(topics) < minElbowPoints {
		slog.Info("too few topics for elbow method, returning all", "count", len(topics))
		return topics, 0.0
	}

	scores := make([]float64, len(topics))
	for i, t := range topics {
		scores[i] = t.RelevanceScore
	}

	threshold, _, _, err := DetectElbow(scores)
	if err != nil {
		return topics, 0.0
	}

	filtered := make([]TrendingTopic, 0, len(topics))
	for _, t := range topics {
		if t.RelevanceScore >= threshold {
			filtered = append(filtered, t)
		}
	}

	slog.Info("elbow filtering applied",
		"threshold", threshold,
		"kept", len(filtered),
		"total", len(topics))

	return filtered, threshold
}
