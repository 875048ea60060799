package crawler_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablescrape/tablescrape/crawler"
	"github.com/tablescrape/tablescrape/models"
)

type fakeFetcher struct {
	body []byte
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.body, f.err
}

type fakeStore struct {
	mu     sync.Mutex
	saved  []int64
	failID int64 // Save fails for this artifact ID
}

func (s *fakeStore) Save(_ string, id int64, _ models.NormalizedTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.failID {
		return errors.New("disk full")
	}
	s.saved = append(s.saved, id)
	return nil
}

func newTask() models.CrawlTask {
	return models.CrawlTask{
		URL:      "https://attack.mitre.org/versions/v15/groups/",
		Depth:    0,
		Category: "Groups",
		Keywords: []string{"/groups/"},
	}
}

func TestProcess_FetchFailure(t *testing.T) {
	t.Parallel()

	p := crawler.NewProcessor(
		&fakeFetcher{err: errors.New("connection refused")},
		&fakeStore{},
		crawler.NewLedger(),
	)

	res := p.Process(context.Background(), newTask())
	require.NotNil(t, res.Err)
	assert.Equal(t, models.ErrCodeFetch, res.Err.Code)
	assert.Zero(t, res.Artifacts)
	assert.Empty(t, res.Children)
}

func TestProcess_StoreFailureSkipsOneArtifact(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<table><tr><th>A</th></tr><tr><td>1</td></tr></table>
		<table><tr><th>B</th></tr><tr><td>2</td></tr></table>
	</body></html>`

	fs := &fakeStore{failID: 1}
	p := crawler.NewProcessor(&fakeFetcher{body: []byte(page)}, fs, crawler.NewLedger())

	res := p.Process(context.Background(), newTask())
	require.Nil(t, res.Err)
	assert.Equal(t, 1, res.Artifacts, "the second table is still persisted")
	assert.Equal(t, 1, res.PersistFailures)
	assert.Equal(t, []int64{2}, fs.saved)
}

func TestProcess_EmptyTablesProduceNoArtifacts(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<table><tr><th>OnlyHeaders</th></tr></table>
		<table></table>
		<a href="/groups/G0007/">child</a>
	</body></html>`

	fs := &fakeStore{}
	p := crawler.NewProcessor(&fakeFetcher{body: []byte(page)}, fs, crawler.NewLedger())

	res := p.Process(context.Background(), newTask())
	require.Nil(t, res.Err)
	assert.Zero(t, res.Artifacts)
	assert.Empty(t, fs.saved)
	assert.Equal(t, []string{"https://attack.mitre.org/groups/G0007/"}, res.Children)
}
