package crawler

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tablescrape/tablescrape/config"
	"github.com/tablescrape/tablescrape/models"
)

// Scheduler drives one crawl run: it seeds the frontier, fans tasks out over
// a bounded worker pool, and resubmits qualifying children wavefront by
// wavefront until no new work appears.
type Scheduler struct {
	cfg       config.CrawlConfig
	processor *Processor
	ledger    *Ledger
}

// NewScheduler creates a Scheduler. The ledger must be the same instance the
// processor assigns artifact IDs from.
func NewScheduler(cfg config.CrawlConfig, processor *Processor, ledger *Ledger) *Scheduler {
	return &Scheduler{cfg: cfg, processor: processor, ledger: ledger}
}

// Run executes one crawl to completion and returns its summary.
//
// Each wavefront (all tasks at one depth) is processed in parallel under a
// semaphore bound of cfg.Workers (clamped to at least 1, so a zero or
// negative setting degrades to sequential rather than deadlocking); a
// completed task's children are admitted
// into the next wavefront iff the parent is below MaxDepth and the ledger
// claim wins. The loop exits when a wavefront yields zero new submissions.
//
// Depth convention: pages at depth <= MaxDepth are fetched; children are
// admitted only while the parent depth is strictly below MaxDepth. The
// check happens in exactly one place, at admission.
//
// Cancellation is cooperative: workers observe ctx at task start, and the
// per-request fetch timeout bounds any in-flight request.
func (s *Scheduler) Run(ctx context.Context) models.RunResult {
	start := time.Now()

	var result models.RunResult

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	// Seed wavefront: an empty ledger means every claim succeeds, but the
	// claim still happens here so duplicate seed URLs collapse to one task.
	categories := make([]string, 0, len(s.cfg.Seeds))
	for category := range s.cfg.Seeds {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var wavefront []models.CrawlTask
	for _, category := range categories {
		seed := s.cfg.Seeds[category]
		if !s.ledger.TryClaim(seed) {
			continue
		}
		wavefront = append(wavefront, models.CrawlTask{
			URL:      seed,
			Depth:    0,
			Category: category,
			Keywords: s.cfg.Keywords,
		})
	}

	for len(wavefront) > 0 {
		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			next   []models.CrawlTask
			cancel bool
		)

		for _, task := range wavefront {
			if ctx.Err() != nil {
				cancel = true
				break
			}

			wg.Add(1)
			go func(task models.CrawlTask) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				if ctx.Err() != nil {
					return
				}

				res := s.processor.Process(ctx, task)

				mu.Lock()
				defer mu.Unlock()

				result.Pages++
				result.Artifacts += res.Artifacts
				result.PersistFailures += res.PersistFailures

				if res.Err != nil {
					switch res.Err.Code {
					case models.ErrCodeParse:
						result.ParseFailures++
					default:
						result.FetchFailures++
					}
					slog.Warn("page task failed", "url", task.URL, "error", res.Err)
					return
				}

				if task.Depth >= s.cfg.MaxDepth {
					return
				}
				for _, child := range res.Children {
					if !s.ledger.TryClaim(child) {
						continue
					}
					next = append(next, models.CrawlTask{
						URL:      child,
						Depth:    task.Depth + 1,
						Category: task.Category,
						Keywords: task.Keywords,
					})
				}
			}(task)
		}

		wg.Wait()
		if cancel {
			break
		}

		slog.Debug("wavefront drained",
			"completed", len(wavefront),
			"submitted", len(next),
		)
		wavefront = next
	}

	result.Duration = time.Since(start)
	return result
}
