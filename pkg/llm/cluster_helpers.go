package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/trend"
)

const maxRetries = 3

// formatTitlesForClustering renders the title list as an indented JSON array,
// which keeps quoting unambiguous for the model.
func formatTitlesForClustering(titles []string) (string, error) {
	encoded, err := json.MarshalIndent(titles, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding titles: %w", err)
	}
	return string(encoded), nil
}

func formatGapPrompt(ownTitles, competitorTitles []string) string {
	var sb strings.Builder
	sb.WriteString("Our titles:\n")
	for _, t := range ownTitles {
		sb.WriteString("- " + t + "\n")
	}
	sb.WriteString("\nCompetitor titles (this batch):\n")
	for _, t := range competitorTitles {
		sb.WriteString("- " + t + "\n")
	}
	return sb.String()
}

type clusterResponse struct {
	Clusters []struct {
		ClusterName string   `json:"cluster_name"`
		Titles      []string `json:"titles"`
	} `json:"clusters"`
}

func (cr clusterResponse) toClusters() []trend.Cluster {
	clusters := make([]trend.Cluster, 0, len(cr.Clusters))
	for _, c := range cr.Clusters {
		clusters = append(clusters, trend.Cluster{Name: c.ClusterName, Titles: c.Titles})
	}
	return clusters
}

type gapResponse struct {
	Gaps []struct {
		GapTopic           string `json:"gap_topic"`
		CompetitorCoverage int    `json:"competitor_coverage"`
	} `json:"gaps"`
}

type briefResponse struct {
	Audience         string   `json:"audience"`
	JobToBeDone      string   `json:"job_to_be_done"`
	Angle            string   `json:"angle"`
	Promise          string   `json:"promise"`
	CTA              string   `json:"cta"`
	KeyTalkingPoints []string `json:"key_talking_points"`
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
