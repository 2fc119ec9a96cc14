package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "novel-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for the scrape stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// After is the minimum award year to keep (default 1990). Entries
	// from earlier years are dropped.
	After int `json:"after" yaml:"after"`
}

// CatalogConfig holds settings for the catalog store.
type CatalogConfig struct {
	// ShelfDir is the base directory for the shelf (contains index/).
	ShelfDir string `json:"shelf_dir" yaml:"shelf_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SearchConfig holds settings for catalog search.
type SearchConfig struct {
	// RecencyWindowYears is the window for the recency-bias boost:
	// novels whose award year falls within this many years of today get
	// a score boost proportional to how recent they are (default 10).
	RecencyWindowYears int `json:"recency_window_years" yaml:"recency_window_years"`
}

// EnrichConfig holds settings for the enrichment stage.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// GoogleBooksAPIKey authenticates Google Books requests. The Google
	// Books backend is used whenever a key is present.
	GoogleBooksAPIKey string `json:"google_books_api_key,omitempty" yaml:"google_books_api_key,omitempty"`

	// ContactEmail is appended to the User-Agent for polite API access.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`

	// CacheSize is the LRU lookup cache capacity (default 256).
	CacheSize int `json:"cache_size" yaml:"cache_size"`
}

// ProcessConfig holds settings for the interactive triage loop.
type ProcessConfig struct {
	// RetailerURL is the search page opened for each novel. It must
	// contain one %s verb for the URL-escaped title.
	RetailerURL string `json:"retailer_url" yaml:"retailer_url"`
}

// Config groups all stage configurations.
type Config struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http"`
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Enrich  EnrichConfig  `json:"enrich" yaml:"enrich"`
	Process ProcessConfig `json:"process" yaml:"process"`
}
