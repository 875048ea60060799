package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablescrape/tablescrape/cache"
	"github.com/tablescrape/tablescrape/models"
	"github.com/tablescrape/tablescrape/store"
)

// previewLen is how many records a category listing shows per artifact.
const previewLen = 3

// ListCategories returns a handler for GET /api/v1/categories.
func ListCategories(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := st.Categories()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.CategoriesResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: "failed to list categories",
				},
			})
			return
		}
		if categories == nil {
			categories = []string{}
		}

		c.JSON(http.StatusOK, models.CategoriesResponse{Categories: categories})
	}
}

// ShowCategory returns a handler for GET /api/v1/categories/:category.
// Each artifact is summarised with its record count and the first few
// records as a preview. Decoded records go through the same modtime-keyed
// cache as the detail view, so a listing does not re-read every file in the
// category on each hit.
func ShowCategory(st *store.Store, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Param("category")

		names, err := st.List(category)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.CategoryResponse{
				Category: category,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		artifacts := make([]models.ArtifactSummary, 0, len(names))
		for _, name := range names {
			records, err := loadCached(st, cc, category, name)
			if err != nil {
				// One unreadable file should not hide the rest of the
				// category.
				slog.Warn("skipping unreadable artifact", "category", category, "name", name, "error", err)
				continue
			}

			preview := records
			if len(preview) > previewLen {
				preview = preview[:previewLen]
			}
			artifacts = append(artifacts, models.ArtifactSummary{
				Name:    name,
				Records: len(records),
				Preview: preview,
			})
		}

		c.JSON(http.StatusOK, models.CategoryResponse{
			Category:  category,
			Artifacts: artifacts,
		})
	}
}

// loadCached reads an artifact's records through the cache, keyed by the
// file's modification time.
func loadCached(st *store.Store, cc *cache.Cache, category, name string) ([]models.Record, error) {
	modTime, err := st.ModTime(category, name)
	if err != nil {
		return nil, err
	}

	key := cache.Key(category, name, modTime)
	if records, hit := cc.Get(key); hit {
		return records, nil
	}

	records, err := st.Load(category, name)
	if err != nil {
		return nil, err
	}
	cc.Set(key, records)
	return records, nil
}
