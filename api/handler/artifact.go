package handler

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablescrape/tablescrape/cache"
	"github.com/tablescrape/tablescrape/models"
	"github.com/tablescrape/tablescrape/store"
)

// ShowArtifact returns a handler for
// GET /api/v1/categories/:category/artifacts/:name.
//
// Decoded records are cached keyed by the file's modification time, so a
// re-crawl that rewrites an artifact invalidates its cache entry.
func ShowArtifact(st *store.Store, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Param("category")
		name := c.Param("name")

		records, err := loadCached(st, cc, category, name)
		if err != nil {
			code, status := models.ErrCodeInvalidInput, http.StatusBadRequest
			if errors.Is(err, fs.ErrNotExist) {
				code, status = models.ErrCodeNotFound, http.StatusNotFound
			}
			c.JSON(status, models.ArtifactResponse{
				Category: category,
				Name:     name,
				Error:    &models.ErrorDetail{Code: code, Message: err.Error()},
			})
			return
		}

		c.JSON(http.StatusOK, models.ArtifactResponse{
			Category: category,
			Name:     name,
			Records:  records,
		})
	}
}
