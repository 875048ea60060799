package crawler

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/tablescrape/tablescrape/extract"
	"github.com/tablescrape/tablescrape/models"
)

// Fetcher retrieves a page body. The crawl shares one implementation across
// all workers.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ArtifactStore persists one normalized table under a category namespace.
type ArtifactStore interface {
	Save(category string, id int64, table models.NormalizedTable) error
}

// Processor handles a single crawl task: fetch, parse, normalize and persist
// every table on the page, then collect candidate child links.
type Processor struct {
	fetcher Fetcher
	store   ArtifactStore
	ledger  *Ledger
}

// NewProcessor creates a Processor.
func NewProcessor(fetcher Fetcher, store ArtifactStore, ledger *Ledger) *Processor {
	return &Processor{fetcher: fetcher, store: store, ledger: ledger}
}

// Process runs one task to completion. Every failure is converted into the
// result's Err or counted as a persist failure; nothing escapes as a panic
// and nothing aborts the run. A fetch or parse failure means the task
// contributes zero artifacts and zero children.
func (p *Processor) Process(ctx context.Context, task models.CrawlTask) models.PageResult {
	slog.Info("scraping page", "url", task.URL, "depth", task.Depth, "category", task.Category)

	body, err := p.fetcher.Fetch(ctx, task.URL)
	if err != nil {
		return models.PageResult{
			Err: models.NewCrawlError(models.ErrCodeFetch, "failed to fetch "+task.URL, err),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return models.PageResult{
			Err: models.NewCrawlError(models.ErrCodeParse, "failed to parse "+task.URL, err),
		}
	}

	base, err := url.Parse(task.URL)
	if err != nil {
		return models.PageResult{
			Err: models.NewCrawlError(models.ErrCodeParse, "invalid task URL "+task.URL, err),
		}
	}

	var result models.PageResult

	tables := extract.Tables(doc)
	if len(tables) == 0 {
		slog.Debug("no tables found", "url", task.URL)
	}

	for _, raw := range tables {
		normalized := extract.Normalize(raw)
		if normalized.IsEmpty() {
			// An all-empty table produces no artifact.
			continue
		}

		id := p.ledger.NextArtifactID()
		if err := p.store.Save(task.Category, id, normalized); err != nil {
			// A store failure skips one artifact, not the rest of the page.
			slog.Warn("failed to persist table",
				"url", task.URL,
				"category", task.Category,
				"artifact_id", id,
				"error", err,
			)
			result.PersistFailures++
			continue
		}
		result.Artifacts++
	}

	result.Children = extract.Links(doc, base, task.Keywords)
	return result
}
