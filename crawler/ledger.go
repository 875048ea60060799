package crawler

import (
	"sync"
	"sync/atomic"
)

// Ledger is the run-scoped shared state: the set of claimed URLs and the
// artifact ID counter. It is the only state mutated by more than one worker
// and is safe for concurrent use. Construct one per run; it is never
// persisted across runs.
type Ledger struct {
	claimed    sync.Map // url -> struct{}
	artifactID atomic.Int64
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// TryClaim atomically admits a URL into the claimed set. It returns true
// exactly once per URL for the lifetime of the run; every later call with
// the same URL returns false. Claims are never released. This test-and-set
// is the sole mechanism preventing duplicate or cyclic traversal.
func (l *Ledger) TryClaim(url string) bool {
	_, loaded := l.claimed.LoadOrStore(url, struct{}{})
	return !loaded
}

// NextArtifactID increments and returns the process-wide artifact counter.
// IDs start at 1 and are strictly increasing and unique across the run.
func (l *Ledger) NextArtifactID() int64 {
	return l.artifactID.Add(1)
}
