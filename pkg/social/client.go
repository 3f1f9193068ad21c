package social

import (
	"context"
	"time"
)

// Post is a raw social submission as fetched from a platform.
type Post struct {
	Title     string
	Score     int
	Comments  int
	URL       string
	Source    string
	Subreddit string
	CreatedAt time.Time
}

// Client fetches top posts from one community on a social platform.
type Client interface {
	Fetch(ctx context.Context, community string, limit int) ([]Post, error)
	Name() string
}
