// Package analyzer classifies collected videos into short-form and regular
// content and aggregates the category distribution in a single pass.
package analyzer

import (
	"fmt"
	"strconv"

	"trendwatch/app/youtube"
)

// ShortMaxSeconds is the inclusive upper bound for short-form content:
// a video of exactly 60 seconds counts as a short.
const ShortMaxSeconds = 60

const videoBaseURL = "https://youtu.be/"

type Analyzer struct {
	categories youtube.Categories
}

func New(categories youtube.Categories) *Analyzer {
	return &Analyzer{categories: categories}
}

// Run normalizes and classifies items in input order. It returns nil for
// empty input. A video whose duration cannot be parsed aborts the whole
// pass: dropping it silently would bias the aggregate percentages.
func (a *Analyzer) Run(items []youtube.Video) (*Result, error) {
	if len(items) == 0 {
		return nil, nil
	}

	result := &Result{
		CategoryCounts: make(map[string]int),
	}

	for _, video := range items {
		record, err := a.normalize(video)
		if err != nil {
			return nil, fmt.Errorf("video %s: %w", video.ID, err)
		}

		if record.DurationSeconds <= ShortMaxSeconds {
			result.Shorts = append(result.Shorts, record)
		} else {
			result.Regular = append(result.Regular, record)
		}

		result.CategoryCounts[record.CategoryID]++
	}

	return result, nil
}

func (a *Analyzer) normalize(video youtube.Video) (Record, error) {
	seconds, err := youtube.ParseDuration(video.ContentDetails.Duration)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Title:           video.Snippet.Title,
		Channel:         video.Snippet.ChannelTitle,
		URL:             videoBaseURL + video.ID,
		DurationSeconds: seconds,
		Views:           statCount(video.Statistics, func(s *youtube.Statistics) string { return s.ViewCount }),
		Likes:           statCount(video.Statistics, func(s *youtube.Statistics) string { return s.LikeCount }),
		Comments:        statCount(video.Statistics, func(s *youtube.Statistics) string { return s.CommentCount }),
		PublishedAt:     video.Snippet.PublishedAt,
		CategoryID:      video.Snippet.CategoryID,
		CategoryName:    a.categories.Name(video.Snippet.CategoryID),
	}, nil
}

// statCount extracts one counter from an optionally-absent statistics
// object, defaulting to 0 for missing, blank or non-numeric values.
func statCount(stats *youtube.Statistics, field func(*youtube.Statistics) string) int64 {
	if stats == nil {
		return 0
	}
	value := field(stats)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
