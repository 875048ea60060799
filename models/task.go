package models

// CrawlTask is one unit of crawl work: a claimed URL at a known depth.
// Tasks are created by the scheduler once the URL wins admission into the
// frontier ledger, consumed exactly once by a worker, and never mutated.
type CrawlTask struct {
	// URL is the absolute page URL to fetch.
	URL string

	// Depth is the distance from the seed (seeds are depth 0).
	Depth int

	// Category is the seed category this task descends from; it selects
	// the output namespace for persisted artifacts.
	Category string

	// Keywords are the substrings that qualify an href as a child link.
	Keywords []string
}
