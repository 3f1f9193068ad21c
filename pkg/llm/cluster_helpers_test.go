package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"clusters":[]}`,
			want:  `{"clusters":[]}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"clusters\":[]}\n```",
			want:  `{"clusters":[]}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"clusters\":[]}\n```",
			want:  `{"clusters":[]}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"clusters\":[]}  ",
			want:  `{"clusters":[]}`,
		},
		{
			name:  "extracts JSON from surrounding prose",
			input: "Here is the result:\n{\"clusters\":[]}\nLet me know if you need more.",
			want:  `{"clusters":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("cleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClusterResponseToClusters(t *testing.T) {
	raw := `{"clusters":[{"cluster_name":"Gemini 3 Launch Coverage","titles":["a","b"]},{"cluster_name":"DS Interview Prep","titles":["c"]}]}`

	var parsed clusterResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	clusters := parsed.toClusters()
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Name != "Gemini 3 Launch Coverage" || len(clusters[0].Titles) != 2 {
		t.Errorf("unexpected first cluster: %+v", clusters[0])
	}
}

func TestFormatTitlesForClustering(t *testing.T) {
	out, err := formatTitlesForClustering([]string{"one", "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var back []string
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	if len(back) != 2 || back[0] != "one" {
		t.Errorf("unexpected round trip: %v", back)
	}
}

func TestFormatGapPrompt(t *testing.T) {
	prompt := formatGapPrompt([]string{"ours"}, []string{"theirs A", "theirs B"})

	if !strings.Contains(prompt, "- ours") {
		t.Error("prompt missing own titles")
	}
	if !strings.Contains(prompt, "- theirs B") {
		t.Error("prompt missing competitor titles")
	}
}
