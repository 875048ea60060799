package models

import "time"

// PageResult is what one processed page contributes back to the scheduler.
type PageResult struct {
	// Artifacts is the number of tables persisted from this page.
	Artifacts int

	// PersistFailures counts store errors on this page. A store failure
	// skips one artifact but never aborts the remaining tables.
	PersistFailures int

	// Children are the resolved absolute candidate URLs found on the page.
	// They are not yet deduplicated; admission is the ledger's job.
	Children []string

	// Err is set when the page as a whole failed (fetch or parse). The
	// task then contributes zero artifacts and zero children.
	Err *CrawlError
}

// RunResult summarises one completed crawl run.
type RunResult struct {
	Artifacts       int           `json:"artifacts"`
	Pages           int           `json:"pages"`
	Duration        time.Duration `json:"duration_ns"`
	FetchFailures   int           `json:"fetch_failures"`
	ParseFailures   int           `json:"parse_failures"`
	PersistFailures int           `json:"persist_failures"`
}

// Failures is the total failure count across all error categories.
func (r RunResult) Failures() int {
	return r.FetchFailures + r.ParseFailures + r.PersistFailures
}
