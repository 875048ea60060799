package models

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	Categories int    `json:"categories"`
	Version    string `json:"version"`
}

// CategoriesResponse lists the categories that have persisted artifacts.
type CategoriesResponse struct {
	Categories []string     `json:"categories"`
	Error      *ErrorDetail `json:"error,omitempty"`
}

// ArtifactSummary is one artifact in a category listing, with a short
// preview of its records.
type ArtifactSummary struct {
	Name    string   `json:"name"`
	Records int      `json:"records"`
	Preview []Record `json:"preview"`
}

// CategoryResponse is the response for GET /api/v1/categories/:category.
type CategoryResponse struct {
	Category  string            `json:"category"`
	Artifacts []ArtifactSummary `json:"artifacts"`
	Error     *ErrorDetail      `json:"error,omitempty"`
}

// ArtifactResponse is the full-detail view of one persisted artifact.
type ArtifactResponse struct {
	Category string       `json:"category"`
	Name     string       `json:"name"`
	Records  []Record     `json:"records"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// ErrorResponse is the generic failure envelope for viewer endpoints.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}
