package league

import "sort"

// AggregateCareers folds all seasons into cumulative per-manager totals,
// keyed by platform user id. Seasons must arrive ascending by year; the fold
// is a single deterministic pass (rosters iterated by roster id within each
// season) so repeated runs over the same data produce identical totals.
//
// Wins, losses, ties and points-for come straight from the roster summary —
// the platform's season totals are authoritative, including manual scoring
// adjustments. Points-against is never in the summary's scope: it is computed
// exclusively by summing the opposing score across the season's games
// involving the roster.
func AggregateCareers(seasons []SeasonData) map[string]*ManagerCareerStats {
	careers := make(map[string]*ManagerCareerStats)

	for _, sd := range seasons {
		rosters := append([]RosterSummary(nil), sd.Rosters...)
		sort.Slice(rosters, func(i, j int) bool { return rosters[i].RosterID < rosters[j].RosterID })

		// Championship signal for this season: explicit final ranks when any
		// roster reports one, otherwise the winners-bracket champion. Exactly
		// one of the two applies, never both.
		useRankSignal := false
		for _, r := range rosters {
			if r.FinalRank > 0 {
				useRankSignal = true
				break
			}
		}

		for _, r := range rosters {
			if r.OwnerID == "" {
				continue
			}

			stats, ok := careers[r.OwnerID]
			if !ok {
				stats = &ManagerCareerStats{UserID: r.OwnerID}
				careers[r.OwnerID] = stats
			}
			if name, ok := sd.Identities[r.OwnerID]; ok {
				stats.DisplayName = name
			}

			stats.SeasonsPlayed++
			stats.Wins += r.Wins
			stats.Losses += r.Losses
			stats.Ties += r.Ties
			stats.PointsFor += r.PointsFor
			stats.PointsAgainst += pointsAgainst(sd.Games, r.RosterID)

			if useRankSignal {
				if r.FinalRank == 1 {
					stats.Championships++
				}
			} else if sd.ChampionRosterID != 0 && r.RosterID == sd.ChampionRosterID {
				stats.Championships++
			}

			// Explicit playoff rank is the primary appearance signal. The
			// playoff-game fallback can overcount a manager who plays several
			// bracket stages only relative to rank granularity, never per
			// season: one increment per roster-season either way.
			if r.PlayoffRank > 0 {
				stats.PlayoffAppearances++
			} else if playedPlayoffGame(sd.Games, r.RosterID) {
				stats.PlayoffAppearances++
			}
		}
	}

	return careers
}

// pointsAgainst sums the opposing score across every game involving rosterID.
func pointsAgainst(games []GameRecord, rosterID int) float64 {
	var total float64
	for _, g := range games {
		switch rosterID {
		case g.RosterIDA:
			total += g.ScoreB
		case g.RosterIDB:
			total += g.ScoreA
		}
	}
	return total
}

// playedPlayoffGame reports whether rosterID appears in any playoff-tagged
// game.
func playedPlayoffGame(games []GameRecord, rosterID int) bool {
	for _, g := range games {
		if g.Playoff && (g.RosterIDA == rosterID || g.RosterIDB == rosterID) {
			return true
		}
	}
	return false
}
