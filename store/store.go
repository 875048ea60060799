// Package store persists normalized tables as JSON artifacts and serves as
// the read side for the viewer.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tablescrape/tablescrape/models"
)

// tablesSubdir nests artifacts one level below the category directory.
const tablesSubdir = "website_tables"

// Store reads and writes artifacts under a base directory. The layout is
// <base>/<category>/website_tables/table_<id>.json, one artifact per file.
type Store struct {
	baseDir string
}

// New creates a Store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes a normalized table as a pretty-printed UTF-8 JSON array of
// records. Record fields keep header order. The file name is derived from
// the artifact ID, so concurrent saves never collide.
func (s *Store) Save(category string, id int64, table models.NormalizedTable) error {
	dir, err := s.categoryDir(category)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(table.Records, "", "    ")
	if err != nil {
		return fmt.Errorf("store: marshal table %d: %w", id, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("table_%d.json", id))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	return nil
}

// Categories lists the category names that have an artifact directory,
// sorted alphabetically.
func (s *Store) Categories() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", s.baseDir, err)
	}

	var categories []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.baseDir, e.Name(), tablesSubdir)); err == nil {
			categories = append(categories, e.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// List returns the artifact file names in a category, sorted by the numeric
// ID embedded in the name so table_10 sorts after table_9.
func (s *Store) List(category string) ([]string, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := artifactID(names[i]), artifactID(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names, nil
}

// Load reads one artifact's records.
func (s *Store) Load(category, name string) ([]models.Record, error) {
	path, err := s.artifactPath(category, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}
	return records, nil
}

// ModTime returns an artifact file's modification time, used by the viewer
// to build cache keys that go stale when the file changes.
func (s *Store) ModTime(category, name string) (time.Time, error) {
	path, err := s.artifactPath(category, name)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}

func (s *Store) categoryDir(category string) (string, error) {
	if !safeName(category) {
		return "", fmt.Errorf("store: invalid category %q", category)
	}
	return filepath.Join(s.baseDir, category, tablesSubdir), nil
}

func (s *Store) artifactPath(category, name string) (string, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return "", err
	}
	if !safeName(name) || !strings.HasSuffix(name, ".json") {
		return "", fmt.Errorf("store: invalid artifact name %q", name)
	}
	return filepath.Join(dir, name), nil
}

// safeName rejects names that could escape the base directory.
func safeName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, "/\\") && !strings.Contains(name, "..")
}

// artifactID extracts the numeric ID from a "table_<id>.json" file name.
// Files that don't match sort first.
func artifactID(name string) int64 {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "table_"), ".json")
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return -1
	}
	return id
}
