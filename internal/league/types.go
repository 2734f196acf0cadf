// Package league turns a league's multi-season remote history into a
// normalized chronological game list and per-manager career statistics.
package league

import (
	"context"

	"github.com/albapepper/league-history/internal/provider/sleeper"
)

// ResourceClient is the read-only surface of the remote platform the
// aggregation consumes. *sleeper.Client satisfies it; tests substitute fakes.
type ResourceClient interface {
	League(ctx context.Context, leagueID string) (*sleeper.League, error)
	LeagueUsers(ctx context.Context, leagueID string) ([]sleeper.User, error)
	LeagueRosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error)
	Matchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error)
	WinnersBracket(ctx context.Context, leagueID string) ([]sleeper.BracketMatch, error)
	SeasonIndex(ctx context.Context, leagueID string) ([]string, error)
}

// SeasonRecord is one season instance of the league, normalized from the wire.
// Zero PlayoffStartWeek / PlayoffEndWeek mean "not reported".
type SeasonRecord struct {
	LeagueID         string `json:"league_id"`
	Year             int    `json:"year"`
	PreviousLeagueID string `json:"previous_league_id,omitempty"`
	PlayoffStartWeek int    `json:"playoff_start_week,omitempty"`
	PlayoffEndWeek   int    `json:"playoff_end_week,omitempty"`
	Name             string `json:"name"`
}

// RosterSummary is one roster's authoritative season totals. OwnerID may be
// empty for orphaned rosters; zero FinalRank / PlayoffRank mean "not
// reported".
type RosterSummary struct {
	RosterID    int     `json:"roster_id"`
	OwnerID     string  `json:"owner_id,omitempty"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Ties        int     `json:"ties"`
	PointsFor   float64 `json:"points_for"`
	FinalRank   int     `json:"final_rank,omitempty"`
	PlayoffRank int     `json:"playoff_rank,omitempty"`
}

// GameRecord is one head-to-head pairing. Side A is always the lower roster
// id, which keeps output deterministic. Immutable once emitted.
type GameRecord struct {
	Year         int     `json:"year"`
	Week         int     `json:"week"`
	Playoff      bool    `json:"playoff"`
	RosterIDA    int     `json:"roster_id_a"`
	RosterIDB    int     `json:"roster_id_b"`
	ManagerIDA   string  `json:"manager_id_a"`
	ManagerIDB   string  `json:"manager_id_b"`
	ManagerNameA string  `json:"manager_name_a"`
	ManagerNameB string  `json:"manager_name_b"`
	ScoreA       float64 `json:"score_a"`
	ScoreB       float64 `json:"score_b"`
}

// ManagerCareerStats is the cumulative per-manager accumulator across all
// folded seasons.
type ManagerCareerStats struct {
	UserID             string  `json:"user_id"`
	DisplayName        string  `json:"display_name"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Ties               int     `json:"ties"`
	PointsFor          float64 `json:"points_for"`
	PointsAgainst      float64 `json:"points_against"`
	Championships      int     `json:"championships"`
	PlayoffAppearances int     `json:"playoff_appearances"`
	SeasonsPlayed      int     `json:"seasons_played"`
}

// SeasonData bundles everything collected for one season, ready for the
// statistics fold.
type SeasonData struct {
	Season SeasonRecord
	// Rosters are this season's roster summaries.
	Rosters []RosterSummary
	// Identities maps platform user id to resolved display name.
	Identities map[string]string
	// Games are the season's normalized head-to-head games, regular season
	// first, weeks ascending.
	Games []GameRecord
	// ChampionRosterID is the winners-bracket champion, or 0 when the bracket
	// was unavailable or undecided. Used only when no roster reports a final
	// rank.
	ChampionRosterID int
}

// YearRange is a closed [Start, End] filter on season years.
type YearRange struct {
	Start int
	End   int
}

// Contains reports whether year falls inside the closed interval.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Valid reports whether the range is well-formed.
func (r YearRange) Valid() bool {
	return r.Start <= r.End
}
