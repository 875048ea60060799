package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tablescrape/tablescrape/models"
	"github.com/tablescrape/tablescrape/store"
)

// Health returns a handler for GET /api/v1/health.
//
// Reports how many categories currently have artifacts. The viewer is
// read-only, so "degraded" here only means the output directory is
// unreadable.
func Health(st *store.Store, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		categories, err := st.Categories()
		if err != nil {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:     status,
			Uptime:     time.Since(startTime).Round(time.Second).String(),
			Categories: len(categories),
			Version:    "0.1.0",
		})
	}
}
