package youtube

import (
	"time"
)

// Video is a single item from the trending chart as the API returns it.
// Statistics is a pointer because the API omits the object entirely for
// some videos (e.g. when counts are hidden by the uploader).
type Video struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	Statistics     *Statistics    `json:"statistics,omitempty"`
	ContentDetails ContentDetails `json:"contentDetails"`
}

type Snippet struct {
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
	CategoryID   string    `json:"categoryId"`
}

// Statistics carries counts as decimal strings, which is how the API
// serializes them.
type Statistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type ContentDetails struct {
	Duration string `json:"duration"` // ISO 8601, e.g. "PT4M13S"
}

// VideoListPage is one page of a paginated videos.list response.
// An empty NextPageToken means there are no further pages.
type VideoListPage struct {
	Items         []Video `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
}
