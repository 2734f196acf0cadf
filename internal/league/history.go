package league

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/league-history/internal/provider/sleeper"
)

// Service is the aggregation entry point consumed by the API and CLI layers.
// It is read-only and idempotent: repeated calls within the cache window
// return identical results without re-fetching.
type Service struct {
	client      ResourceClient
	aliases     map[string]string
	concurrency int
	logger      *slog.Logger
}

// NewService creates a Service. The alias table and concurrency cap are
// construction-time configuration; aliases may be nil.
func NewService(client ResourceClient, aliases map[string]string, concurrency int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &Service{
		client:      client,
		aliases:     aliases,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Report tracks counts and skipped slices from one aggregation pass. Partial
// fetch failures never abort the pass; they land here for the caller.
type Report struct {
	SeasonsResolved int      `json:"seasons_resolved"`
	GamesEmitted    int      `json:"games_emitted"`
	SkippedSlices   int      `json:"skipped_slices"`
	Warnings        []string `json:"warnings,omitempty"`
}

// AddWarning records a skipped slice.
func (r *Report) AddWarning(msg string) {
	r.SkippedSlices++
	r.Warnings = append(r.Warnings, msg)
}

// Summary returns a human-readable summary of the pass.
func (r *Report) Summary() string {
	return fmt.Sprintf("seasons=%d games=%d skipped=%d",
		r.SeasonsResolved, r.GamesEmitted, r.SkippedSlices)
}

// GetFullHistory returns every head-to-head game across the league's history,
// sorted by year ascending, week ascending, regular season before playoffs.
// An optional yearRange restricts output to the closed interval.
func (s *Service) GetFullHistory(ctx context.Context, startID string, yearRange *YearRange) ([]GameRecord, *Report, error) {
	seasons, report, err := s.collectSeasons(ctx, startID, yearRange)
	if err != nil {
		return nil, nil, err
	}

	var games []GameRecord
	for _, sd := range seasons {
		games = append(games, sd.Games...)
	}
	report.GamesEmitted = len(games)
	return games, report, nil
}

// GetCareerStatistics folds the league's full history into per-manager career
// totals keyed by platform user id.
func (s *Service) GetCareerStatistics(ctx context.Context, startID string, yearRange *YearRange) (map[string]*ManagerCareerStats, *Report, error) {
	seasons, report, err := s.collectSeasons(ctx, startID, yearRange)
	if err != nil {
		return nil, nil, err
	}

	for _, sd := range seasons {
		report.GamesEmitted += len(sd.Games)
	}
	return AggregateCareers(seasons), report, nil
}

// collectSeasons resolves the lineage, then gathers every season's users,
// rosters, bracket, and games. Per-season fetches run concurrently under the
// configured cap; results are assembled by lineage index so output order is
// deterministic regardless of completion order.
func (s *Service) collectSeasons(ctx context.Context, startID string, yearRange *YearRange) ([]SeasonData, *Report, error) {
	records, err := s.ResolveSeasons(ctx, startID, yearRange)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{SeasonsResolved: len(records)}

	results := make([]SeasonData, len(records))
	warnings := make([][]string, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			results[i], warnings[i] = s.collectSeason(gctx, record)
			return nil
		})
	}
	// Workers never return errors; partial failures are warnings by policy.
	_ = g.Wait()

	for _, ws := range warnings {
		for _, w := range ws {
			report.AddWarning(w)
		}
	}
	return results, report, nil
}

// collectSeason gathers one season's slices. Any failed slice is recorded as
// a warning and treated as "no data", keeping the rest of the season intact.
func (s *Service) collectSeason(ctx context.Context, season SeasonRecord) (SeasonData, []string) {
	var warnings []string

	users, err := s.client.LeagueUsers(ctx, season.LeagueID)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("season %d users: %v", season.Year, err))
	}
	identities := ResolveIdentities(users, s.aliases)

	rawRosters, err := s.client.LeagueRosters(ctx, season.LeagueID)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("season %d rosters: %v", season.Year, err))
	}
	rosters := make([]RosterSummary, 0, len(rawRosters))
	for _, r := range rawRosters {
		rosters = append(rosters, RosterSummary{
			RosterID:    r.RosterID,
			OwnerID:     r.OwnerID,
			Wins:        r.Settings.Wins,
			Losses:      r.Settings.Losses,
			Ties:        r.Settings.Ties,
			PointsFor:   r.Settings.PointsFor(),
			FinalRank:   r.Settings.FinalRank,
			PlayoffRank: r.Settings.PlayoffRank,
		})
	}

	bracket, err := s.client.WinnersBracket(ctx, season.LeagueID)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("season %d bracket: %v", season.Year, err))
	}

	sd := SeasonData{
		Season:           season,
		Rosters:          rosters,
		Identities:       identities,
		ChampionRosterID: bracketChampion(bracket),
	}

	// Without rosters no pairing can resolve an owner, so fetching weeks
	// would only produce skipped pairings.
	if len(rosters) == 0 {
		return sd, warnings
	}

	games, gameWarnings := s.normalizeSeason(ctx, season, rosters, identities)
	sd.Games = games
	warnings = append(warnings, gameWarnings...)
	return sd, warnings
}

// bracketChampion returns the winner of the championship game (placement 1),
// or 0 when the bracket is missing or undecided.
func bracketChampion(bracket []sleeper.BracketMatch) int {
	for _, m := range bracket {
		if m.Position == 1 && m.Winner != nil {
			return *m.Winner
		}
	}
	return 0
}
