// Package export writes analysis results to report files and renders the
// console summary. Emitters only read the result; they never modify it.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"trendwatch/app/analyzer"
)

// BaseName builds the timestamped base file name shared by all reports of
// one run.
func BaseName(now time.Time) string {
	return "trending_analysis_" + now.Format("20060102_150405")
}

// WriteJSON writes the full result as indented JSON.
func WriteJSON(path string, result *analyzer.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode json to %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes one row per record, shorts first, with a Type column
// distinguishing the two lists.
func WriteCSV(path string, result *analyzer.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"Title", "Channel", "Category", "Duration (s)",
		"Views", "Likes", "Comments", "Published At", "URL", "Type",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	sections := []struct {
		kind    string
		records []analyzer.Record
	}{
		{"Short", result.Shorts},
		{"Regular", result.Regular},
	}
	for _, section := range sections {
		for _, r := range section.records {
			row := []string{
				r.Title,
				r.Channel,
				r.CategoryName,
				strconv.FormatInt(r.DurationSeconds, 10),
				strconv.FormatInt(r.Views, 10),
				strconv.FormatInt(r.Likes, 10),
				strconv.FormatInt(r.Comments, 10),
				r.PublishedAt.Format(time.RFC3339),
				r.URL,
				section.kind,
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv to %s: %w", path, err)
	}
	return nil
}

// WriteCategoryCSV writes the per-category distribution with percentages
// of the total record count.
func WriteCategoryCSV(path string, result *analyzer.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Category", "Count", "Percentage"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	total := result.Total()
	for _, e := range categoryEntries(result) {
		row := []string{
			e.name,
			strconv.Itoa(e.count),
			fmt.Sprintf("%.1f%%", float64(e.count)/float64(total)*100),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv to %s: %w", path, err)
	}
	return nil
}
