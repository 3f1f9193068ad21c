package trend

import (
	"log/slog"
	"strings"
	"time"
)

// Post is a single social media submission as handed over by the ingest side.
// Historical exports used different timestamp field names, so all three aliases
// are carried and the first parseable one wins.
type Post struct {
	Title      string `json:"title"`
	Score      int    `json:"score"`
	Comments   int    `json:"comments"`
	Source     string `json:"source"`
	CreatedUTC string `json:"created_utc,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	PostDate   string `json:"post_date,omitempty"`
}

// Cluster is a named group of post titles returned by the clustering oracle.
type Cluster struct {
	Name   string   `json:"cluster_name"`
	Titles []string `json:"titles"`
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PostedAt returns the post timestamp from the first parseable alias,
// or false when the post carries no usable date.
func (p Post) PostedAt() (time.Time, bool) {
	for _, candidate := range []string{p.CreatedUTC, p.Timestamp, p.PostDate} {
		if t, ok := parseTimestamp(candidate); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// extractTitles builds the title -> post lookup used to resolve cluster titles.
// Posts without a title are skipped with a warning; a later post with the same
// title replaces the earlier one.
func extractTitles(posts []Post) map[string]Post {
	postsByTitle := make(map[string]Post, len(posts))
	for _, p := range posts {
		if p.Title == "" {
			slog.Warn("skipping post without title", "source", p.Source)
			continue
		}
		postsByTitle[p.Title] = p
	}
	return postsByTitle
}

// MergeClustersByName merges clusters that share an exact, case-sensitive name
// into one cluster per unique name. Title order follows order of appearance and
// duplicates are kept. Differently worded names for the same theme stay separate.
func MergeClustersByName(clusters []Cluster) []Cluster {
	merged := make(map[string]int, len(clusters))
	var out []Cluster

	for _, c := range clusters {
		idx, seen := merged[c.Name]
		if !seen {
			merged[c.Name] = len(out)
			out = append(out, Cluster{Name: c.Name, Titles: append([]string(nil), c.Titles...)})
			continue
		}
		out[idx].Titles = append(out[idx].Titles, c.Titles...)
	}

	return out
}
