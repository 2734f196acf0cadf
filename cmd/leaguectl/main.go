// Command leaguectl is the league history aggregation CLI.
//
// Usage:
//
//	leaguectl seasons --league 992093891234567890
//	leaguectl history --league 992093891234567890 --start-year 2021 --end-year 2023
//	leaguectl stats --league 992093891234567890
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/league-history/internal/cache"
	"github.com/albapepper/league-history/internal/config"
	"github.com/albapepper/league-history/internal/league"
	"github.com/albapepper/league-history/internal/provider/sleeper"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "leaguectl",
		Short: "Fantasy league history aggregation CLI",
	}

	root.AddCommand(seasonsCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(statsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// shared flags and setup
// --------------------------------------------------------------------------

type runFlags struct {
	leagueID  string
	startYear int
	endYear   int
	asJSON    bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.leagueID, "league", "", "most recent league id of the lineage (defaults to LEAGUE_ID)")
	cmd.Flags().IntVar(&f.startYear, "start-year", 0, "lower bound of closed year interval")
	cmd.Flags().IntVar(&f.endYear, "end-year", 0, "upper bound of closed year interval")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "emit raw JSON instead of a table")
}

func (f *runFlags) yearRange() *league.YearRange {
	if f.startYear == 0 && f.endYear == 0 {
		return nil
	}
	yr := &league.YearRange{Start: f.startYear, End: f.endYear}
	if yr.End == 0 {
		yr.End = 9999
	}
	return yr
}

// setup loads config and builds the aggregation service. The cache is scoped
// to the single CLI run.
func setup(f *runFlags) (*league.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if f.leagueID == "" {
		f.leagueID = cfg.DefaultLeagueID
	}
	if f.leagueID == "" {
		return nil, nil, fmt.Errorf("--league or LEAGUE_ID is required")
	}

	runCache := cache.New(cfg.CacheEnabled)
	client := sleeper.NewClient(cfg.SleeperBaseURL, cfg.RequestsPerMinute, runCache, logger)
	return league.NewService(client, cfg.Aliases, cfg.FetchConcurrency, logger), cfg, nil
}

func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// --------------------------------------------------------------------------
// seasons command
// --------------------------------------------------------------------------

func seasonsCmd() *cobra.Command {
	var flags runFlags
	var useIndex bool
	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Resolve the league's season lineage",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := setup(&flags)
			if err != nil {
				return err
			}
			ctx, cancel := runContext()
			defer cancel()

			start := time.Now()
			var seasons []league.SeasonRecord
			if useIndex {
				seasons, err = service.ResolveSeasonsWithIndex(ctx, flags.leagueID, flags.yearRange())
			} else {
				seasons, err = service.ResolveSeasons(ctx, flags.leagueID, flags.yearRange())
			}
			if err != nil {
				return err
			}
			logger.Info("Lineage resolved", "seasons", len(seasons), "duration", time.Since(start).Round(time.Millisecond))

			if flags.asJSON {
				return printJSON(seasons)
			}
			for _, s := range seasons {
				fmt.Printf("%d  %-22s %s\n", s.Year, s.LeagueID, s.Name)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&useIndex, "index", false, "also consult the platform's season index")
	return cmd
}

// --------------------------------------------------------------------------
// history command
// --------------------------------------------------------------------------

func historyCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Fetch the full normalized game history",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := setup(&flags)
			if err != nil {
				return err
			}
			ctx, cancel := runContext()
			defer cancel()

			start := time.Now()
			games, report, err := service.GetFullHistory(ctx, flags.leagueID, flags.yearRange())
			if err != nil {
				return err
			}
			logger.Info("History aggregated",
				"summary", report.Summary(),
				"duration", time.Since(start).Round(time.Millisecond))
			for _, w := range report.Warnings {
				logger.Warn("Slice skipped", "detail", w)
			}

			if flags.asJSON {
				return printJSON(games)
			}
			for _, g := range games {
				tag := " "
				if g.Playoff {
					tag = "P"
				}
				fmt.Printf("%d wk%-2d %s %-20s %6.2f - %-6.2f %s\n",
					g.Year, g.Week, tag, g.ManagerNameA, g.ScoreA, g.ScoreB, g.ManagerNameB)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate per-manager career statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := setup(&flags)
			if err != nil {
				return err
			}
			ctx, cancel := runContext()
			defer cancel()

			start := time.Now()
			careers, report, err := service.GetCareerStatistics(ctx, flags.leagueID, flags.yearRange())
			if err != nil {
				return err
			}
			logger.Info("Statistics aggregated",
				"summary", report.Summary(),
				"managers", len(careers),
				"duration", time.Since(start).Round(time.Millisecond))

			if flags.asJSON {
				return printJSON(careers)
			}

			rows := make([]*league.ManagerCareerStats, 0, len(careers))
			for _, c := range careers {
				rows = append(rows, c)
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].Wins > rows[j].Wins })

			fmt.Printf("%-20s %4s %4s %4s %9s %9s %5s %5s %4s\n",
				"MANAGER", "W", "L", "T", "PF", "PA", "CHMP", "PLYF", "SZNS")
			for _, c := range rows {
				fmt.Printf("%-20s %4d %4d %4d %9.2f %9.2f %5d %5d %4d\n",
					c.DisplayName, c.Wins, c.Losses, c.Ties,
					c.PointsFor, c.PointsAgainst,
					c.Championships, c.PlayoffAppearances, c.SeasonsPlayed)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
