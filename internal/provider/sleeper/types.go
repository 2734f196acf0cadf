package sleeper

import "encoding/json"

// League is one season instance of a league. Seasons are chained backwards
// via PreviousLeagueID; the earliest season has an empty link.
type League struct {
	LeagueID         string         `json:"league_id"`
	Name             string         `json:"name"`
	Season           string         `json:"season"` // year as a string, e.g. "2023"
	Status           string         `json:"status"`
	PreviousLeagueID string         `json:"previous_league_id"`
	TotalRosters     int            `json:"total_rosters"`
	Settings         LeagueSettings `json:"settings"`
}

// LeagueSettings carries the scheduling knobs the aggregation cares about.
// Zero values mean "not reported by the platform".
type LeagueSettings struct {
	PlayoffWeekStart  int `json:"playoff_week_start"`
	PlayoffRoundCount int `json:"playoff_round_count"`
}

// User is a league member for one season.
type User struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
	IsOwner     bool         `json:"is_owner"`
}

// UserMetadata is the free-form per-league user metadata. Only the fields
// identity resolution reads are decoded.
type UserMetadata struct {
	TeamName  string `json:"team_name"`
	FirstName string `json:"first_name"`
}

// Roster is one team-for-a-season. OwnerID may be empty for orphaned rosters.
type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Settings RosterSettings `json:"settings"`
}

// RosterSettings holds the platform's authoritative season totals. Points are
// split into whole and hundredths components on the wire.
type RosterSettings struct {
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Ties        int `json:"ties"`
	Fpts        int `json:"fpts"`
	FptsDecimal int `json:"fpts_decimal"`
	FinalRank   int `json:"final_rank"`
	PlayoffRank int `json:"playoff_rank"`
}

// PointsFor returns the roster's season points as a float.
func (s RosterSettings) PointsFor() float64 {
	return float64(s.Fpts) + float64(s.FptsDecimal)/100.0
}

// Matchup is one roster's row for one week. Rows sharing a MatchupID are the
// two sides of a head-to-head game; a null MatchupID means the roster had no
// pairing that week.
type Matchup struct {
	RosterID  int     `json:"roster_id"`
	MatchupID *int    `json:"matchup_id"`
	Points    float64 `json:"points"`
}

// BracketMatch is one game of the winners bracket. P is the placement the
// match decides; the championship game carries P == 1.
type BracketMatch struct {
	Round    int             `json:"r"`
	Match    int             `json:"m"`
	Team1    json.RawMessage `json:"t1"` // roster id, or an object for TBD seeds
	Team2    json.RawMessage `json:"t2"`
	Winner   *int            `json:"w"`
	Loser    *int            `json:"l"`
	Position int             `json:"p"`
}
