package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablescrape/tablescrape/models"
	"github.com/tablescrape/tablescrape/store"
)

func sampleTable() models.NormalizedTable {
	return models.NormalizedTable{
		Records: []models.Record{
			{Keys: []string{"Name", "ID"}, Values: []string{"Phishing", "T1566"}},
			{Keys: []string{"Name", "ID"}, Values: []string{"Valid Accounts", "T1078"}},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	st := store.New(t.TempDir())
	require.NoError(t, st.Save("Techniques", 1, sampleTable()))

	records, err := st.Load("Techniques", "table_1.json")
	require.NoError(t, err)
	require.Len(t, records, 2)

	v, ok := records[0].Get("ID")
	require.True(t, ok)
	assert.Equal(t, "T1566", v)

	// Field order must survive the round trip.
	assert.Equal(t, []string{"Name", "ID"}, records[0].Keys)
}

func TestSave_FieldOrderOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st := store.New(dir)
	require.NoError(t, st.Save("Techniques", 7, sampleTable()))

	data, err := os.ReadFile(filepath.Join(dir, "Techniques", "website_tables", "table_7.json"))
	require.NoError(t, err)

	text := string(data)
	assert.Less(t, strings.Index(text, `"Name"`), strings.Index(text, `"ID"`),
		"fields are written in header order, not alphabetical")
}

func TestCategoriesAndList(t *testing.T) {
	t.Parallel()

	st := store.New(t.TempDir())
	require.NoError(t, st.Save("Groups", 2, sampleTable()))
	require.NoError(t, st.Save("Groups", 10, sampleTable()))
	require.NoError(t, st.Save("Techniques", 9, sampleTable()))

	categories, err := st.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Groups", "Techniques"}, categories)

	names, err := st.List("Groups")
	require.NoError(t, err)
	assert.Equal(t, []string{"table_2.json", "table_10.json"}, names,
		"artifacts sort by numeric ID, not lexically")
}

func TestEmptyBaseDir(t *testing.T) {
	t.Parallel()

	st := store.New(filepath.Join(t.TempDir(), "never-created"))

	categories, err := st.Categories()
	require.NoError(t, err)
	assert.Empty(t, categories)

	names, err := st.List("Groups")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPathTraversalRejected(t *testing.T) {
	t.Parallel()

	st := store.New(t.TempDir())

	_, err := st.Load("../etc", "table_1.json")
	assert.Error(t, err)

	_, err = st.Load("Groups", "../../secret.json")
	assert.Error(t, err)

	assert.Error(t, st.Save("a/b", 1, sampleTable()))
}
