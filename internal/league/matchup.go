package league

import (
	"context"
	"fmt"
	"sort"

	"github.com/albapepper/league-history/internal/provider/sleeper"
)

const (
	// defaultRegularSeasonLastWeek is used when a season does not report a
	// playoff start week.
	defaultRegularSeasonLastWeek = 14

	// playoffProbeLimit bounds forward probing for playoff weeks when no
	// declared playoff end exists. Probing stops at the first week with zero
	// raw entries.
	playoffProbeLimit = 4
)

// normalizeSeason fetches the season's weekly rows and pairs them into
// GameRecords, regular-season weeks first, then playoff weeks, ascending
// within each block. Returned warnings describe week fetches that failed and
// were skipped (partial-remote slices).
func (s *Service) normalizeSeason(ctx context.Context, season SeasonRecord, rosters []RosterSummary, identities map[string]string) ([]GameRecord, []string) {
	rosterOwner := make(map[int]string, len(rosters))
	for _, r := range rosters {
		if r.OwnerID != "" {
			rosterOwner[r.RosterID] = r.OwnerID
		}
	}

	regularLast := defaultRegularSeasonLastWeek
	if season.PlayoffStartWeek > 0 {
		regularLast = season.PlayoffStartWeek - 1
	}

	var games []GameRecord
	var warnings []string

	for week := 1; week <= regularLast; week++ {
		entries, err := s.client.Matchups(ctx, season.LeagueID, week)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("season %d week %d: %v", season.Year, week, err))
			continue
		}
		games = append(games, s.pairWeek(entries, season.Year, week, false, rosterOwner, identities)...)
	}

	if season.PlayoffStartWeek > 0 && season.PlayoffEndWeek > 0 {
		for week := season.PlayoffStartWeek; week <= season.PlayoffEndWeek; week++ {
			entries, err := s.client.Matchups(ctx, season.LeagueID, week)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("season %d playoff week %d: %v", season.Year, week, err))
				continue
			}
			games = append(games, s.pairWeek(entries, season.Year, week, true, rosterOwner, identities)...)
		}
		return games, warnings
	}

	// No declared playoff end: probe forward from the week after the regular
	// season. An empty week is the termination signal — the playoffs ended or
	// never existed. A failed probe is treated the same way.
	for offset := 1; offset <= playoffProbeLimit; offset++ {
		week := regularLast + offset
		entries, err := s.client.Matchups(ctx, season.LeagueID, week)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("season %d playoff probe week %d: %v", season.Year, week, err))
			break
		}
		if len(entries) == 0 {
			break
		}
		games = append(games, s.pairWeek(entries, season.Year, week, true, rosterOwner, identities)...)
	}

	return games, warnings
}

// pairWeek groups one week's raw rows by pairing key and emits a GameRecord
// for each group of exactly two rows. Byes (size 1) and irregular groups
// (size > 2) carry no head-to-head meaning and are dropped. Pairings where
// either side's roster has no resolvable owner are skipped whole: a game's
// two manager identities are required fields.
func (s *Service) pairWeek(entries []sleeper.Matchup, year, week int, playoff bool, rosterOwner map[int]string, identities map[string]string) []GameRecord {
	groups := make(map[int][]sleeper.Matchup)
	for _, e := range entries {
		if e.MatchupID == nil {
			continue
		}
		groups[*e.MatchupID] = append(groups[*e.MatchupID], e)
	}

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var games []GameRecord
	for _, key := range keys {
		group := groups[key]
		if len(group) != 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].RosterID < group[j].RosterID })
		a, b := group[0], group[1]

		ownerA, okA := rosterOwner[a.RosterID]
		ownerB, okB := rosterOwner[b.RosterID]
		if !okA || !okB {
			s.logger.Warn("pairing skipped: unowned roster",
				"year", year, "week", week, "matchup_id", key,
				"roster_a", a.RosterID, "roster_b", b.RosterID)
			continue
		}

		games = append(games, GameRecord{
			Year:         year,
			Week:         week,
			Playoff:      playoff,
			RosterIDA:    a.RosterID,
			RosterIDB:    b.RosterID,
			ManagerIDA:   ownerA,
			ManagerIDB:   ownerB,
			ManagerNameA: displayName(identities, ownerA),
			ManagerNameB: displayName(identities, ownerB),
			ScoreA:       a.Points,
			ScoreB:       b.Points,
		})
	}
	return games
}

func displayName(identities map[string]string, userID string) string {
	if name, ok := identities[userID]; ok {
		return name
	}
	return fmt.Sprintf("User %s", userID)
}
