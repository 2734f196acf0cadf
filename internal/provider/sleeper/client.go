// Package sleeper provides the HTTP client for the Sleeper fantasy API.
//
// Sleeper is a read-only, unauthenticated JSON API. Rate limiting is handled
// via a token bucket limiter; responses are cached through a TTL cache
// collaborator so repeated aggregation passes within the cache window never
// re-fetch.
package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/league-history/internal/cache"
)

// ErrNotFound is returned when the platform reports no resource at the
// requested path.
var ErrNotFound = errors.New("sleeper: resource not found")

// Client is the HTTP client for all Sleeper endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates a Sleeper HTTP client with rate limiting and a TTL cache.
func NewClient(baseURL string, requestsPerMinute int, c *cache.Cache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if c == nil {
		c = cache.New(false)
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cache:      c,
		logger:     logger,
	}
}

// League fetches one season's league record.
func (c *Client) League(ctx context.Context, leagueID string) (*League, error) {
	var lg League
	if err := c.get(ctx, "/league/"+leagueID, cache.TTLLeague, &lg); err != nil {
		return nil, err
	}
	return &lg, nil
}

// LeagueUsers fetches the user list for one season.
func (c *Client) LeagueUsers(ctx context.Context, leagueID string) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/league/"+leagueID+"/users", cache.TTLUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// LeagueRosters fetches the roster list for one season.
func (c *Client) LeagueRosters(ctx context.Context, leagueID string) ([]Roster, error) {
	var rosters []Roster
	if err := c.get(ctx, "/league/"+leagueID+"/rosters", cache.TTLRosters, &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

// Matchups fetches the raw per-roster rows for one week of one season.
func (c *Client) Matchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	path := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	var matchups []Matchup
	if err := c.get(ctx, path, cache.TTLMatchups, &matchups); err != nil {
		return nil, err
	}
	return matchups, nil
}

// WinnersBracket fetches the playoff winners bracket for one season.
func (c *Client) WinnersBracket(ctx context.Context, leagueID string) ([]BracketMatch, error) {
	var bracket []BracketMatch
	if err := c.get(ctx, "/league/"+leagueID+"/winners_bracket", cache.TTLBracket, &bracket); err != nil {
		return nil, err
	}
	return bracket, nil
}

// SeasonIndex returns candidate league ids for the league's other seasons in
// one call, when the platform exposes the index. Ids only — year information
// requires fetching each full record. Platforms without the index return
// ErrNotFound, which callers treat as "walk the chain instead".
func (c *Client) SeasonIndex(ctx context.Context, leagueID string) ([]string, error) {
	var ids []string
	if err := c.get(ctx, "/league/"+leagueID+"/seasons", cache.TTLLeague, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// get performs a cache-checked, rate-limited GET and decodes the JSON body
// into out. The cache key is the request path.
func (c *Client) get(ctx context.Context, path string, ttl time.Duration, out interface{}) error {
	if data, _, ok := c.cache.Get(path); ok {
		return json.Unmarshal(data, out)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sleeper %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	// Sleeper returns the JSON literal null for missing sub-resources.
	if string(body) == "null" {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.cache.Set(path, body, ttl)
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
