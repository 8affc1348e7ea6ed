package analyzer

import (
	"time"
)

// Record is the normalized, immutable view of one collected video. It is
// built once during the analysis pass; downstream emitters only read it.
type Record struct {
	Title           string    `json:"title"`
	Channel         string    `json:"channel"`
	URL             string    `json:"url"`
	DurationSeconds int64     `json:"durationSeconds"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	Comments        int64     `json:"comments"`
	PublishedAt     time.Time `json:"publishedAt"`
	CategoryID      string    `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
}

// Result holds the outcome of one analysis pass. Every input item lands in
// exactly one of the two lists, and the category counts sum to the total.
type Result struct {
	Shorts         []Record       `json:"shorts"`
	Regular        []Record       `json:"regular"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}

func (r *Result) Total() int {
	return len(r.Shorts) + len(r.Regular)
}
