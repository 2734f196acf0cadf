package league

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// ResolveSeasons walks the previous-league chain starting at startID and
// returns every discovered season, ascending by year. A visited set keyed by
// league id bounds the walk even when predecessor links form a cycle or point
// at an already-seen season.
//
// Failure policy: a fetch failure on startID is fatal (the league cannot be
// determined at all). A failure anywhere deeper truncates the walk there and
// the already-resolved prefix is kept. When yearRange is non-nil the walk
// stops early once a record's year reaches the floor — years strictly
// decrease along the chain, so nothing below the floor needs inspecting — and
// the result is filtered to the closed interval.
func (s *Service) ResolveSeasons(ctx context.Context, startID string, yearRange *YearRange) ([]SeasonRecord, error) {
	if startID == "" {
		return nil, fmt.Errorf("league id is required")
	}
	if yearRange != nil && !yearRange.Valid() {
		return nil, fmt.Errorf("invalid year range: start %d exceeds end %d", yearRange.Start, yearRange.End)
	}

	visited := make(map[string]SeasonRecord)

	currentID := startID
	for currentID != "" {
		if _, seen := visited[currentID]; seen {
			break
		}

		record, err := s.fetchSeason(ctx, currentID)
		if err != nil {
			if currentID == startID {
				return nil, fmt.Errorf("fetch league %s: %w", startID, err)
			}
			s.logger.Warn("season chain truncated", "league_id", currentID, "error", err)
			break
		}
		visited[currentID] = record

		// Years strictly decrease along the chain, so at the floor year the
		// predecessor is guaranteed below it and need not be fetched.
		if yearRange != nil && record.Year <= yearRange.Start {
			break
		}
		currentID = record.PreviousLeagueID
	}

	return sortAndFilter(visited, yearRange), nil
}

// ResolveSeasonsWithIndex is the cheaper variant for platforms exposing a
// season-index lookup. Index candidates and chain discoveries are unioned by
// league id before the candidates' full records are fetched, since the index
// returns ids only. An unavailable index degrades to the plain chain walk.
func (s *Service) ResolveSeasonsWithIndex(ctx context.Context, startID string, yearRange *YearRange) ([]SeasonRecord, error) {
	records, err := s.ResolveSeasons(ctx, startID, yearRange)
	if err != nil {
		return nil, err
	}

	candidates, err := s.client.SeasonIndex(ctx, startID)
	if err != nil {
		s.logger.Warn("season index unavailable, using chain walk only", "league_id", startID, "error", err)
		return records, nil
	}

	visited := make(map[string]SeasonRecord, len(records))
	for _, r := range records {
		visited[r.LeagueID] = r
	}
	for _, id := range candidates {
		if _, seen := visited[id]; seen || id == "" {
			continue
		}
		record, err := s.fetchSeason(ctx, id)
		if err != nil {
			s.logger.Warn("season index candidate skipped", "league_id", id, "error", err)
			continue
		}
		visited[id] = record
	}

	return sortAndFilter(visited, yearRange), nil
}

// fetchSeason fetches one league record and normalizes it into a
// SeasonRecord. The playoff end week is derivable only when the platform
// reports both a start week and a round count.
func (s *Service) fetchSeason(ctx context.Context, leagueID string) (SeasonRecord, error) {
	lg, err := s.client.League(ctx, leagueID)
	if err != nil {
		return SeasonRecord{}, err
	}

	year, err := strconv.Atoi(lg.Season)
	if err != nil {
		return SeasonRecord{}, fmt.Errorf("league %s has unparseable season %q: %w", leagueID, lg.Season, err)
	}

	record := SeasonRecord{
		LeagueID:         lg.LeagueID,
		Year:             year,
		PreviousLeagueID: lg.PreviousLeagueID,
		PlayoffStartWeek: lg.Settings.PlayoffWeekStart,
		Name:             lg.Name,
	}
	if lg.Settings.PlayoffWeekStart > 0 && lg.Settings.PlayoffRoundCount > 0 {
		record.PlayoffEndWeek = lg.Settings.PlayoffWeekStart + lg.Settings.PlayoffRoundCount - 1
	}
	return record, nil
}

func sortAndFilter(visited map[string]SeasonRecord, yearRange *YearRange) []SeasonRecord {
	records := make([]SeasonRecord, 0, len(visited))
	for _, r := range visited {
		if yearRange != nil && !yearRange.Contains(r.Year) {
			continue
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		return records[i].LeagueID < records[j].LeagueID
	})
	return records
}
