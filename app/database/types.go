package database

import (
	"time"

	"trendwatch/app/youtube"
)

// Checkpoint is a durable snapshot of in-progress collection state. One is
// written after every successful page fetch; the latest one seeds a resumed
// run. An empty NextPageToken means the last fetched page was the final one.
type Checkpoint struct {
	Items         []youtube.Video `json:"items" bson:"items"`
	NextPageToken string          `json:"nextPageToken" bson:"next_page_token"`
	RequestCount  int             `json:"requestCount" bson:"request_count"`
	CreatedAt     time.Time       `json:"createdAt" bson:"created_at"`
}
