package model

import "time"

// SocialPost is a raw social media submission collected by the miner.
type SocialPost struct {
	ID        int64
	RunID     string
	Title     string
	Score     int
	Comments  int
	URL       string
	Source    string
	Subreddit string
	CreatedAt time.Time
	FetchedAt time.Time
}
