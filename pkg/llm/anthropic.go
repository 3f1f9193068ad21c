package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/trend"
)

// AnthropicClient is an alternative clustering oracle backend.
type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.Model("claude-haiku-4-5"),
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     c.model,
			MaxTokens: 4096,
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
			},
		})
		if err != nil {
			lastErr = fmt.Errorf("anthropic API error: %w", err)
			slog.Warn("anthropic call failed, retrying", "attempt", attempt, "max_retries", maxRetries, "error", err)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		if len(resp.Content) == 0 {
			lastErr = fmt.Errorf("no response from anthropic")
			slog.Warn("anthropic returned no content, retrying", "attempt", attempt, "max_retries", maxRetries)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		return cleanJSONResponse(resp.Content[0].Text), nil
	}

	return "", fmt.Errorf("anthropic call failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *AnthropicClient) ClusterTitles(ctx context.Context, titles []string) ([]trend.Cluster, error) {
	userPrompt, err := formatTitlesForClustering(titles)
	if err != nil {
		return nil, err
	}

	content, err := c.complete(ctx, clusterSystemPrompt, "Titles to analyze:\n"+userPrompt)
	if err != nil {
		return nil, err
	}

	var parsed clusterResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse cluster response: %w, content: %s", err, content)
	}

	return parsed.toClusters(), nil
}

func (c *AnthropicClient) ClusterSubredditTitles(ctx context.Context, subreddit string, titles []string) ([]trend.Cluster, error) {
	userPrompt, err := formatTitlesForClustering(titles)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("These titles are from r/%s.\n\nTitles to analyze:\n%s", subreddit, userPrompt)
	content, err := c.complete(ctx, clusterSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed clusterResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse cluster response: %w, content: %s", err, content)
	}

	return parsed.toClusters(), nil
}
