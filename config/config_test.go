package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablescrape/tablescrape/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, 1, cfg.Crawl.MaxDepth)
	assert.Equal(t, 10, cfg.Crawl.Workers)
	assert.Equal(t, 20*time.Second, cfg.Crawl.Timeout)
	assert.Len(t, cfg.Crawl.Seeds, 3)
	assert.Contains(t, cfg.Crawl.Keywords, "/techniques/")
	assert.Equal(t, "./data", cfg.Crawl.OutputDir)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TABLESCRAPE_MAX_DEPTH", "2")
	t.Setenv("TABLESCRAPE_WORKERS", "4")
	t.Setenv("TABLESCRAPE_TIMEOUT", "5s")
	t.Setenv("TABLESCRAPE_KEYWORDS", "/campaigns/, /groups/")
	t.Setenv("TABLESCRAPE_SEEDS", "Campaigns=https://example.com/campaigns/,Groups=https://example.com/groups/")

	cfg := config.Load()

	assert.Equal(t, 2, cfg.Crawl.MaxDepth)
	assert.Equal(t, 4, cfg.Crawl.Workers)
	assert.Equal(t, 5*time.Second, cfg.Crawl.Timeout)
	assert.Equal(t, []string{"/campaigns/", "/groups/"}, cfg.Crawl.Keywords)

	require.Len(t, cfg.Crawl.Seeds, 2)
	assert.Equal(t, "https://example.com/campaigns/", cfg.Crawl.Seeds["Campaigns"])
}

func TestLoad_MalformedSeedsFallBack(t *testing.T) {
	t.Setenv("TABLESCRAPE_SEEDS", "not-a-pair,,=missing-name")

	cfg := config.Load()
	assert.Len(t, cfg.Crawl.Seeds, 3, "unusable seed list falls back to defaults")
}

func TestLoad_InvalidIntIgnored(t *testing.T) {
	t.Setenv("TABLESCRAPE_WORKERS", "many")

	cfg := config.Load()
	assert.Equal(t, 10, cfg.Crawl.Workers)
}
