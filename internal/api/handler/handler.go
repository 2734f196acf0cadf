// Package handler provides HTTP handlers for all API endpoints.
// Data-heavy endpoints run one aggregation pass through the league service
// and cache the marshaled response; repeated requests inside the TTL window
// are served from memory with ETag revalidation.
package handler

import (
	"net/http"
	"time"

	"github.com/albapepper/league-history/internal/api/respond"
	"github.com/albapepper/league-history/internal/cache"
	"github.com/albapepper/league-history/internal/config"
	"github.com/albapepper/league-history/internal/league"
)

// responseTTL is how long marshaled history/stats responses stay cached.
// Historical league data changes at most weekly.
const responseTTL = 1 * time.Hour

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	service *league.Service
	cache   *cache.Cache
	cfg     *config.Config
}

// New creates a Handler with shared dependencies.
func New(service *league.Service, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		cache:   c,
		cfg:     cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "League History API",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": []string{
			"/api/v1/seasons/{leagueID}",
			"/api/v1/history/{leagueID}",
			"/api/v1/stats/{leagueID}",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
