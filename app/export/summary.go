package export

import (
	"fmt"
	"io"
	"sort"

	"trendwatch/app/analyzer"
)

// TopByViews returns the n most-viewed records without mutating the input.
func TopByViews(records []analyzer.Record, n int) []analyzer.Record {
	sorted := make([]analyzer.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Views > sorted[j].Views
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// PrintSummary renders the human-readable run report: split percentages,
// top entries of each list by views, and the category distribution.
func PrintSummary(w io.Writer, result *analyzer.Result) {
	total := result.Total()
	if total == 0 {
		return
	}

	fmt.Fprintf(w, "\n=== TRENDING VIDEOS ANALYSIS ===\n")
	fmt.Fprintf(w, "Total videos analyzed: %d\n", total)
	fmt.Fprintf(w, "Shorts (<=60s): %d (%.1f%%)\n",
		len(result.Shorts), percent(len(result.Shorts), total))
	fmt.Fprintf(w, "Regular videos (>60s): %d (%.1f%%)\n",
		len(result.Regular), percent(len(result.Regular), total))

	printTop(w, "TOP SHORTS", result.Shorts)
	printTop(w, "TOP REGULAR VIDEOS", result.Regular)

	fmt.Fprintf(w, "\n=== CATEGORY DISTRIBUTION ===\n")
	for _, e := range categoryEntries(result) {
		fmt.Fprintf(w, "%s: %d videos (%.1f%%)\n", e.name, e.count, percent(e.count, total))
	}
}

func printTop(w io.Writer, title string, records []analyzer.Record) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(w, "\n=== %s ===\n", title)
	for i, r := range TopByViews(records, 5) {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, r.Title)
		fmt.Fprintf(w, "   Channel: %s\n", r.Channel)
		fmt.Fprintf(w, "   Category: %s\n", r.CategoryName)
		fmt.Fprintf(w, "   Duration: %d seconds\n", r.DurationSeconds)
		fmt.Fprintf(w, "   Views: %d\n", r.Views)
		fmt.Fprintf(w, "   URL: %s\n", r.URL)
	}
}

type categoryEntry struct {
	id    string
	name  string
	count int
}

// categoryEntries resolves names from the records and orders categories by
// count descending, then id for a stable layout.
func categoryEntries(result *analyzer.Result) []categoryEntry {
	names := make(map[string]string)
	for _, list := range [][]analyzer.Record{result.Shorts, result.Regular} {
		for _, r := range list {
			names[r.CategoryID] = r.CategoryName
		}
	}

	entries := make([]categoryEntry, 0, len(result.CategoryCounts))
	for id, count := range result.CategoryCounts {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("Unknown Category (%s)", id)
		}
		entries = append(entries, categoryEntry{id: id, name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].id < entries[j].id
	})
	return entries
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
