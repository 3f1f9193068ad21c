package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/trend"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4o,
		modelName: "gpt-4o",
	}
}

// complete runs one chat completion with retries and returns the cleaned
// response text. Transient API failures and empty responses are retried.
func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: c.model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(userPrompt),
			},
		})
		if err != nil {
			lastErr = fmt.Errorf("openai API error: %w", err)
			slog.Warn("openai call failed, retrying", "attempt", attempt, "max_retries", maxRetries, "error", err)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no response from openai")
			slog.Warn("openai returned no choices, retrying", "attempt", attempt, "max_retries", maxRetries)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		return cleanJSONResponse(resp.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("openai call failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *OpenAIClient) ClusterTitles(ctx context.Context, titles []string) ([]trend.Cluster, error) {
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

func (c *OpenAIClient) ClusterSubredditTitles(ctx context.Context, subreddit string, titles []string) ([]trend.Cluster, error) {
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

func (c *OpenAIClient) FindGaps(ctx context.Context, ownTitles, competitorTitles []string) ([]model.ContentGap, error) {
	content, err := c.complete(ctx, gapSystemPrompt, formatGapPrompt(ownTitles, competitorTitles))
	if err != nil {
		return nil, err
	}

	var parsed gapResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gap response: %w, content: %s", err, content)
	}

	gaps := make([]model.ContentGap, 0, len(parsed.Gaps))
	for _, g := range parsed.Gaps {
		if g.GapTopic == "" {
			continue
		}
		gaps = append(gaps, model.ContentGap{
			GapTopic:           g.GapTopic,
			CompetitorCoverage: g.CompetitorCoverage,
		})
	}

	return gaps, nil
}

func (c *OpenAIClient) WriteBrief(ctx context.Context, topic string, sourceType string) (*model.Brief, error) {
	userPrompt := fmt.Sprintf("Topic: %q\nSource Type: %s", topic, sourceType)

	content, err := c.complete(ctx, briefSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var parsed briefResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse brief response: %w, content: %s", err, content)
	}

	return &model.Brief{
		Topic:            topic,
		SourceType:       sourceType,
		Audience:         parsed.Audience,
		JobToBeDone:      parsed.JobToBeDone,
		Angle:            parsed.Angle,
		Promise:          parsed.Promise,
		CTA:              parsed.CTA,
		KeyTalkingPoints: parsed.KeyTalkingPoints,
		ModelUsed:        c.modelName,
	}, nil
}
