package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/league-history/internal/cache"
	"github.com/albapepper/league-history/internal/config"
	"github.com/albapepper/league-history/internal/league"
	"github.com/albapepper/league-history/internal/provider/sleeper"
)

// stubClient serves one single-season league ("L1", year 2023) with one
// regular-season game per week 1-2.
type stubClient struct{}

func (stubClient) League(ctx context.Context, leagueID string) (*sleeper.League, error) {
	if leagueID != "L1" {
		return nil, fmt.Errorf("league %s: %w", leagueID, sleeper.ErrNotFound)
	}
	return &sleeper.League{
		LeagueID: "L1",
		Name:     "Test League",
		Season:   "2023",
		Settings: sleeper.LeagueSettings{PlayoffWeekStart: 3, PlayoffRoundCount: 1},
	}, nil
}

func (stubClient) LeagueUsers(ctx context.Context, leagueID string) ([]sleeper.User, error) {
	return []sleeper.User{
		{UserID: "u1", DisplayName: "alice"},
		{UserID: "u2", DisplayName: "bob"},
	}, nil
}

func (stubClient) LeagueRosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error) {
	return []sleeper.Roster{
		{RosterID: 1, OwnerID: "u1", Settings: sleeper.RosterSettings{Wins: 2, FinalRank: 1}},
		{RosterID: 2, OwnerID: "u2", Settings: sleeper.RosterSettings{Losses: 2, FinalRank: 2}},
	}, nil
}

func (stubClient) Matchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error) {
	if week > 3 {
		return nil, nil
	}
	id := 1
	return []sleeper.Matchup{
		{RosterID: 1, MatchupID: &id, Points: 100},
		{RosterID: 2, MatchupID: &id, Points: 90},
	}, nil
}

func (stubClient) WinnersBracket(ctx context.Context, leagueID string) ([]sleeper.BracketMatch, error) {
	return nil, nil
}

func (stubClient) SeasonIndex(ctx context.Context, leagueID string) ([]string, error) {
	return nil, fmt.Errorf("index: %w", sleeper.ErrNotFound)
}

func newTestRouter() *chi.Mux {
	svc := league.NewService(stubClient{}, nil, 1, nil)
	h := New(svc, cache.New(true), &config.Config{})
	r := chi.NewRouter()
	r.Get("/api/v1/seasons/{leagueID}", h.GetSeasons)
	r.Get("/api/v1/history/{leagueID}", h.GetHistory)
	r.Get("/api/v1/stats/{leagueID}", h.GetStats)
	return r
}

func TestGetHistory_ReturnsGamesAndReport(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history/L1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var body struct {
		Games  []league.GameRecord `json:"games"`
		Report league.Report       `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Games, 3)
	assert.Equal(t, 1, body.Report.SeasonsResolved)
}

func TestGetHistory_SecondRequestIsCacheHit(t *testing.T) {
	r := newTestRouter()

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/history/L1", nil))
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/history/L1", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	// Conditional request revalidates without a body.
	third := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/L1", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(third, req)
	assert.Equal(t, http.StatusNotModified, third.Code)
}

func TestGetHistory_UnknownLeagueIs404(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHistory_InvalidYearRangeIs400(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history/L1?start_year=2024&end_year=2020", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats_ReturnsManagers(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats/L1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Managers map[string]league.ManagerCareerStats `json:"managers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Managers, "u1")
	assert.Equal(t, 1, body.Managers["u1"].Championships)
	assert.Equal(t, 2, body.Managers["u1"].Wins)
}

func TestGetSeasons_ReturnsLineage(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasons/L1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Seasons []league.SeasonRecord `json:"seasons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Seasons, 1)
	assert.Equal(t, 2023, body.Seasons[0].Year)
}
