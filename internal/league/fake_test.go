package league

import (
	"context"
	"fmt"
	"sync"

	"github.com/albapepper/league-history/internal/provider/sleeper"
)

// fakeClient is an in-memory ResourceClient for tests. Any resource can be
// forced to fail via the fail set, keyed like the calls counter:
// "league:<id>", "users:<id>", "rosters:<id>", "matchups:<id>:<week>",
// "bracket:<id>", "index:<id>".
type fakeClient struct {
	mu       sync.Mutex
	leagues  map[string]sleeper.League
	users    map[string][]sleeper.User
	rosters  map[string][]sleeper.Roster
	matchups map[string]map[int][]sleeper.Matchup
	brackets map[string][]sleeper.BracketMatch
	index    map[string][]string
	fail     map[string]bool
	calls    map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		leagues:  make(map[string]sleeper.League),
		users:    make(map[string][]sleeper.User),
		rosters:  make(map[string][]sleeper.Roster),
		matchups: make(map[string]map[int][]sleeper.Matchup),
		brackets: make(map[string][]sleeper.BracketMatch),
		index:    make(map[string][]string),
		fail:     make(map[string]bool),
		calls:    make(map[string]int),
	}
}

func (f *fakeClient) record(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[key]++
	return f.fail[key]
}

func (f *fakeClient) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeClient) addLeague(id string, year int, previous string, playoffStart, playoffRounds int) {
	f.leagues[id] = sleeper.League{
		LeagueID:         id,
		Name:             "League " + id,
		Season:           fmt.Sprintf("%d", year),
		PreviousLeagueID: previous,
		Settings: sleeper.LeagueSettings{
			PlayoffWeekStart:  playoffStart,
			PlayoffRoundCount: playoffRounds,
		},
	}
}

func (f *fakeClient) League(ctx context.Context, leagueID string) (*sleeper.League, error) {
	if f.record("league:" + leagueID) {
		return nil, fmt.Errorf("league %s: %w", leagueID, sleeper.ErrNotFound)
	}
	lg, ok := f.leagues[leagueID]
	if !ok {
		return nil, fmt.Errorf("league %s: %w", leagueID, sleeper.ErrNotFound)
	}
	return &lg, nil
}

func (f *fakeClient) LeagueUsers(ctx context.Context, leagueID string) ([]sleeper.User, error) {
	if f.record("users:" + leagueID) {
		return nil, fmt.Errorf("users %s: %w", leagueID, sleeper.ErrNotFound)
	}
	return f.users[leagueID], nil
}

func (f *fakeClient) LeagueRosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error) {
	if f.record("rosters:" + leagueID) {
		return nil, fmt.Errorf("rosters %s: %w", leagueID, sleeper.ErrNotFound)
	}
	return f.rosters[leagueID], nil
}

func (f *fakeClient) Matchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error) {
	if f.record(fmt.Sprintf("matchups:%s:%d", leagueID, week)) {
		return nil, fmt.Errorf("matchups %s week %d: %w", leagueID, week, sleeper.ErrNotFound)
	}
	return f.matchups[leagueID][week], nil
}

func (f *fakeClient) WinnersBracket(ctx context.Context, leagueID string) ([]sleeper.BracketMatch, error) {
	if f.record("bracket:" + leagueID) {
		return nil, fmt.Errorf("bracket %s: %w", leagueID, sleeper.ErrNotFound)
	}
	return f.brackets[leagueID], nil
}

func (f *fakeClient) SeasonIndex(ctx context.Context, leagueID string) ([]string, error) {
	if f.record("index:" + leagueID) {
		return nil, fmt.Errorf("index %s: %w", leagueID, sleeper.ErrNotFound)
	}
	ids, ok := f.index[leagueID]
	if !ok {
		return nil, fmt.Errorf("index %s: %w", leagueID, sleeper.ErrNotFound)
	}
	return ids, nil
}

// pair builds the two raw rows of one head-to-head pairing.
func pair(matchupID, rosterA int, pointsA float64, rosterB int, pointsB float64) []sleeper.Matchup {
	id := matchupID
	return []sleeper.Matchup{
		{RosterID: rosterA, MatchupID: &id, Points: pointsA},
		{RosterID: rosterB, MatchupID: &id, Points: pointsB},
	}
}

func newTestService(f *fakeClient, aliases map[string]string) *Service {
	return NewService(f, aliases, 2, nil)
}
