package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// maxPageSize is the largest page the trending endpoint accepts per request.
const maxPageSize = 50

type rawCfg struct {
	// Remote API configuration
	APIKey   string `long:"api-key" env:"GOOGLE_API_KEY" description:"YouTube Data API key (required for collection)"`
	Region   string `long:"region" env:"REGION" default:"US" description:"Region code for the trending chart"`
	PageSize int    `long:"page-size" env:"PAGE_SIZE" default:"50" description:"Items per page request (API caps at 50)"`

	// Collection configuration
	TargetCount int `long:"target-count" env:"TARGET_COUNT" default:"200" description:"Total number of items to collect"`
	PageDelay   int `long:"page-delay" env:"PAGE_DELAY" default:"5" description:"Delay between page requests in seconds"`
	MaxRetries  int `long:"max-retries" env:"MAX_RETRIES" default:"3" description:"Maximum retries for a failed page request"`

	// Store configuration
	Store    string `long:"store" env:"STORE" default:"sqlite" choice:"sqlite" choice:"mongo" description:"Backend for checkpoints and analysis results"`
	DBPath   string `long:"db-path" env:"DB_PATH" default:"./trendwatch.db" description:"SQLite database path"`
	MongoURI string `long:"mongo-uri" env:"MONGO_URI" default:"mongodb://localhost:27017" description:"MongoDB connection URI"`
	MongoDB  string `long:"mongo-db" env:"MONGO_DB" default:"trendwatch" description:"MongoDB database name"`

	// Output configuration
	OutputDir       string `long:"output-dir" env:"OUTPUT_DIR" default:"./results" description:"Directory for exported report files"`
	CategoriesFile  string `long:"categories-file" env:"CATEGORIES_FILE" description:"Optional YAML file overriding the category id mapping"`
	KeepCheckpoints bool   `long:"keep-checkpoints" env:"KEEP_CHECKPOINTS" description:"Retain checkpoints after a successful run"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		APIKey:          raw.APIKey,
		Region:          raw.Region,
		PageSize:        raw.PageSize,
		TargetCount:     raw.TargetCount,
		PageDelay:       raw.PageDelay,
		MaxRetries:      raw.MaxRetries,
		Store:           raw.Store,
		DBPath:          raw.DBPath,
		MongoURI:        raw.MongoURI,
		MongoDB:         raw.MongoDB,
		OutputDir:       raw.OutputDir,
		CategoriesFile:  raw.CategoriesFile,
		KeepCheckpoints: raw.KeepCheckpoints,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validate(c *Cfg) error {
	if c.TargetCount <= 0 {
		return fmt.Errorf("target count must be positive, got %d", c.TargetCount)
	}
	if c.PageSize <= 0 || c.PageSize > maxPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", maxPageSize, c.PageSize)
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("page delay must be non-negative, got %d", c.PageDelay)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", c.MaxRetries)
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	return nil
}
