package youtube

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultCategories maps video category ids to names as returned by
// videoCategories.list for the US region.
var defaultCategories = map[string]string{
	"1":  "Film & Animation",
	"2":  "Autos & Vehicles",
	"10": "Music",
	"15": "Pets & Animals",
	"17": "Sports",
	"19": "Travel & Events",
	"20": "Gaming",
	"22": "People & Blogs",
	"23": "Comedy",
	"24": "Entertainment",
	"25": "News & Politics",
	"26": "Howto & Style",
	"27": "Education",
	"28": "Science & Technology",
	"29": "Nonprofits & Activism",
}

// Categories resolves category ids to human-readable names.
type Categories map[string]string

func DefaultCategories() Categories {
	c := make(Categories, len(defaultCategories))
	for id, name := range defaultCategories {
		c[id] = name
	}
	return c
}

// LoadCategories reads a YAML mapping of category id to name and merges it
// over the built-in defaults, so a partial file only overrides what it lists.
func LoadCategories(path string) (Categories, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse categories file %s: %w", path, err)
	}

	c := DefaultCategories()
	for id, name := range overrides {
		c[id] = name
	}
	return c, nil
}

// Name returns the human-readable name for a category id, with a stable
// fallback for ids missing from the mapping.
func (c Categories) Name(id string) string {
	if name, ok := c[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Category (%s)", id)
}
