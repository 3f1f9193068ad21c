package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultRedditBaseURL = "https://www.reddit.com"

// RedditClient reads top weekly posts from the public listing endpoint.
// No OAuth: Reddit serves listings to any client with a descriptive
// User-Agent, which is all the miner needs.
type RedditClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewRedditClient(userAgent string) *RedditClient {
	return &RedditClient{
		baseURL:    defaultRedditBaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *RedditClient) Name() string {
	return "Reddit"
}

func (c *RedditClient) Fetch(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	endpoint := fmt.Sprintf("%s/r/%s/top.json?t=week&limit=%d", c.baseURL, url.PathEscape(subreddit), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("reddit request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit fetch r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("subreddit r/%s not found or private", subreddit)
	case http.StatusForbidden:
		return nil, fmt.Errorf("access forbidden to r/%s", subreddit)
	default:
		return nil, fmt.Errorf("reddit fetch r/%s: unexpected status %d", subreddit, resp.StatusCode)
	}

	var raw redditListing
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("reddit decode r/%s: %w", subreddit, err)
	}

	posts := make([]Post, 0, len(raw.Data.Children))
	for _, child := range raw.Data.Children {
		d := child.Data
		posts = append(posts, Post{
			Title:     d.Title,
			Score:     d.Score,
			Comments:  d.NumComments,
			URL:       "https://www.reddit.com" + d.Permalink,
			Source:    "r/" + subreddit,
			Subreddit: subreddit,
			CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}

	return posts, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
}
