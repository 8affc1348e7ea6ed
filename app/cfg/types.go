package cfg

type Cfg struct {
	// Remote API configuration
	APIKey   string
	Region   string
	PageSize int

	// Collection configuration
	TargetCount int
	PageDelay   int // seconds between successful page requests
	MaxRetries  int

	// Store configuration
	Store    string // sqlite|mongo
	DBPath   string
	MongoURI string
	MongoDB  string

	// Output configuration
	OutputDir       string
	CategoriesFile  string
	KeepCheckpoints bool

	// Application metadata
	Debug   bool
	Version string
}
