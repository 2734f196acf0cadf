package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/league-history/internal/api/respond"
	"github.com/albapepper/league-history/internal/cache"
	"github.com/albapepper/league-history/internal/league"
	"github.com/albapepper/league-history/internal/provider/sleeper"
)

// GetSeasons returns the league's resolved season lineage.
// @Summary Get season lineage
// @Description Walks the previous-league chain and returns every season of the league, ascending by year. Pass index=true to union with the platform's season index.
// @Tags history
// @Produce json
// @Param leagueID path string true "Most recent league id of the lineage"
// @Param start_year query int false "Lower bound of closed year interval"
// @Param end_year query int false "Upper bound of closed year interval"
// @Param index query bool false "Also consult the platform's season index"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /seasons/{leagueID} [get]
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	yearRange, err := parseYearRange(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_RANGE", err.Error())
		return
	}

	useIndex, _ := strconv.ParseBool(r.URL.Query().Get("index"))

	cacheKey := fmt.Sprintf("seasons:%s:%v:%v", leagueID, yearRange, useIndex)
	if h.serveCached(w, r, cacheKey) {
		return
	}

	var seasons []league.SeasonRecord
	if useIndex {
		seasons, err = h.service.ResolveSeasonsWithIndex(r.Context(), leagueID, yearRange)
	} else {
		seasons, err = h.service.ResolveSeasons(r.Context(), leagueID, yearRange)
	}
	if err != nil {
		writeServiceError(w, leagueID, err)
		return
	}

	h.writeCached(w, cacheKey, map[string]interface{}{
		"league_id": leagueID,
		"seasons":   seasons,
	})
}

// GetHistory returns every head-to-head game across the league's history.
// @Summary Get full game history
// @Description Returns all head-to-head games sorted by year, week, regular season before playoffs, plus a report of skipped slices.
// @Tags history
// @Produce json
// @Param leagueID path string true "Most recent league id of the lineage"
// @Param start_year query int false "Lower bound of closed year interval"
// @Param end_year query int false "Upper bound of closed year interval"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /history/{leagueID} [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	yearRange, err := parseYearRange(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_RANGE", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("history:%s:%v", leagueID, yearRange)
	if h.serveCached(w, r, cacheKey) {
		return
	}

	games, report, err := h.service.GetFullHistory(r.Context(), leagueID, yearRange)
	if err != nil {
		writeServiceError(w, leagueID, err)
		return
	}

	h.writeCached(w, cacheKey, map[string]interface{}{
		"league_id": leagueID,
		"games":     games,
		"report":    report,
	})
}

// GetStats returns per-manager career statistics.
// @Summary Get career statistics
// @Description Folds the league's full history into cumulative per-manager totals keyed by platform user id.
// @Tags history
// @Produce json
// @Param leagueID path string true "Most recent league id of the lineage"
// @Param start_year query int false "Lower bound of closed year interval"
// @Param end_year query int false "Upper bound of closed year interval"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /stats/{leagueID} [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	yearRange, err := parseYearRange(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_RANGE", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("stats:%s:%v", leagueID, yearRange)
	if h.serveCached(w, r, cacheKey) {
		return
	}

	careers, report, err := h.service.GetCareerStatistics(r.Context(), leagueID, yearRange)
	if err != nil {
		writeServiceError(w, leagueID, err)
		return
	}

	h.writeCached(w, cacheKey, map[string]interface{}{
		"league_id": leagueID,
		"managers":  careers,
		"report":    report,
	})
}

// serveCached serves a cached response if present, honoring If-None-Match.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, responseTTL, true)
	return true
}

// writeCached marshals v, stores it under key, and writes it.
func (h *Handler) writeCached(w http.ResponseWriter, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}
	etag := h.cache.Set(key, data, responseTTL)
	respond.WriteJSON(w, data, etag, responseTTL, false)
}

func writeServiceError(w http.ResponseWriter, leagueID string, err error) {
	if errors.Is(err, sleeper.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "LEAGUE_NOT_FOUND",
			fmt.Sprintf("League %s could not be fetched", leagueID))
		return
	}
	respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_FAILED", err.Error())
}

// parseYearRange reads optional start_year / end_year query parameters into a
// closed-interval filter. Either bound may be supplied alone.
func parseYearRange(r *http.Request) (*league.YearRange, error) {
	startStr := r.URL.Query().Get("start_year")
	endStr := r.URL.Query().Get("end_year")
	if startStr == "" && endStr == "" {
		return nil, nil
	}

	yr := &league.YearRange{Start: 0, End: 9999}
	if startStr != "" {
		start, err := strconv.Atoi(startStr)
		if err != nil {
			return nil, fmt.Errorf("start_year must be an integer")
		}
		yr.Start = start
	}
	if endStr != "" {
		end, err := strconv.Atoi(endStr)
		if err != nil {
			return nil, fmt.Errorf("end_year must be an integer")
		}
		yr.End = end
	}
	if !yr.Valid() {
		return nil, fmt.Errorf("start_year %d exceeds end_year %d", yr.Start, yr.End)
	}
	return yr, nil
}
