package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablescrape/tablescrape/extract"
	"github.com/tablescrape/tablescrape/models"
)

func TestNormalize_ShortRowPadded(t *testing.T) {
	t.Parallel()

	raw := models.RawTable{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1", "2"}, {"3"}},
	}

	out := extract.Normalize(raw)
	require.Len(t, out.Records, 2)

	assert.Equal(t, []string{"A", "B"}, out.Records[0].Keys)
	assert.Equal(t, []string{"1", "2"}, out.Records[0].Values)
	assert.Equal(t, []string{"3", ""}, out.Records[1].Values, "short row is right-padded with empty strings")
}

func TestNormalize_LongRowTruncated(t *testing.T) {
	t.Parallel()

	raw := models.RawTable{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1", "2", "3", "4"}},
	}

	out := extract.Normalize(raw)
	require.Len(t, out.Records, 1)
	assert.Equal(t, []string{"1", "2"}, out.Records[0].Values, "extra cells are dropped")
}

func TestNormalize_HeaderlessPositionalKeys(t *testing.T) {
	t.Parallel()

	raw := models.RawTable{
		Rows: [][]string{{"x"}, {"y", "z"}},
	}

	out := extract.Normalize(raw)
	require.Len(t, out.Records, 2)

	assert.Equal(t, []string{"0"}, out.Records[0].Keys)
	assert.Equal(t, []string{"x"}, out.Records[0].Values)

	// Ragged lengths are preserved without headers.
	assert.Equal(t, []string{"0", "1"}, out.Records[1].Keys)
	assert.Equal(t, []string{"y", "z"}, out.Records[1].Values)
}

func TestNormalize_EmptyTable(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.Normalize(models.RawTable{}).IsEmpty())
	assert.True(t, extract.Normalize(models.RawTable{Headers: []string{"A"}}).IsEmpty(),
		"headers without data rows normalize to an empty table")
}
