package usecase

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/domain/playerstats"
	"github.com/courtside/nba-stats-api/internal/domain/teamstats"
	"github.com/courtside/nba-stats-api/internal/platform/hashing"
)

// IngestTeamSeasonStatistics loads the season-total statistics of every
// persisted NBA franchise for one season.
func (s *IngestionService) IngestTeamSeasonStatistics(ctx context.Context, seasonYear int) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestTeamSeasonStatistics")
	defer span.End()

	type teamSeason struct {
		teamID int64
		rec    Record
	}

	return runPipeline(ctx, s.logger, "team_season_statistics",
		func(ctx context.Context) ([]teamSeason, error) {
			seeds, err := s.teams.ListNBAFranchises(ctx)
			if err != nil {
				return nil, errors.Wrap(err, "listing franchise teams")
			}
			if len(seeds) == 0 {
				s.logger.WarnContext(ctx, "no franchise teams persisted, run team ingestion first")
				return nil, nil
			}

			var all []teamSeason
			for _, seed := range seeds {
				records, err := s.gateway.TeamStatistics(ctx, seed.SourceID, seasonYear)
				if err != nil {
					return nil, errors.Wrapf(err, "fetching statistics for team %d", seed.SourceID)
				}
				if len(records) == 0 {
					s.logger.InfoContext(ctx, "no season statistics for team",
						"team_id", seed.SourceID, "season", seasonYear)
					continue
				}
				// The provider returns a single aggregate object per team.
				all = append(all, teamSeason{teamID: seed.SourceID, rec: records[0]})
			}
			return all, nil
		},
		func(ctx context.Context, items []teamSeason) []teamstats.SeasonStats {
			rows := make([]teamstats.SeasonStats, 0, len(items))
			for _, item := range items {
				row, ok := s.transformTeamSeasonStats(ctx, item.teamID, seasonYear, item.rec)
				if ok {
					rows = append(rows, row)
				}
			}
			return rows
		},
		func(ctx context.Context, rows []teamstats.SeasonStats) (int, error) {
			return s.teamStats.UpsertSeasonStatsBulk(ctx, rows)
		},
	)
}

func (s *IngestionService) transformTeamSeasonStats(ctx context.Context, teamID int64, seasonYear int, rec Record) (teamstats.SeasonStats, bool) {
	payload := map[string]any{"team_id": teamID, "season": seasonYear, "statistics": rec.Raw()}
	hash, err := hashing.Payload(payload)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping season statistics with unhashable payload",
			"team_id", teamID, "season", seasonYear, "error", err)
		return teamstats.SeasonStats{}, false
	}

	return teamstats.SeasonStats{
		TeamID:             teamID,
		Season:             seasonYear,
		Games:              rec.IntPtr("games"),
		FastBreakPoints:    rec.IntPtr("fastBreakPoints"),
		PointsInPaint:      rec.IntPtr("pointsInPaint"),
		BiggestLead:        rec.IntPtr("biggestLead"),
		SecondChancePoints: rec.IntPtr("secondChancePoints"),
		PointsOffTurnovers: rec.IntPtr("pointsOffTurnovers"),
		LongestRun:         rec.IntPtr("longestRun"),
		Points:             rec.IntPtr("points"),
		FGM:                rec.IntPtr("fgm"),
		FGA:                rec.IntPtr("fga"),
		FGP:                rec.StringPtr("fgp"),
		FTM:                rec.IntPtr("ftm"),
		FTA:                rec.IntPtr("fta"),
		FTP:                rec.StringPtr("ftp"),
		TPM:                rec.IntPtr("tpm"),
		TPA:                rec.IntPtr("tpa"),
		TPP:                rec.StringPtr("tpp"),
		OffReb:             rec.IntPtr("offReb"),
		DefReb:             rec.IntPtr("defReb"),
		TotReb:             rec.IntPtr("totReb"),
		Assists:            rec.IntPtr("assists"),
		PFouls:             rec.IntPtr("pFouls"),
		Steals:             rec.IntPtr("steals"),
		Turnovers:          rec.IntPtr("turnovers"),
		Blocks:             rec.IntPtr("blocks"),
		PlusMinus:          rec.StringPtr("plusMinus"),
		PayloadHash:        hash,
		IsActive:           true,
	}, true
}

// IngestPlayerStatistics loads the per-game box scores of every persisted
// player for one season.
func (s *IngestionService) IngestPlayerStatistics(ctx context.Context, seasonYear int) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestPlayerStatistics")
	defer span.End()

	return runPipeline(ctx, s.logger, "player_statistics",
		func(ctx context.Context) ([]Record, error) {
			seeds, err := s.players.ListSeeds(ctx)
			if err != nil {
				return nil, errors.Wrap(err, "listing players")
			}
			if len(seeds) == 0 {
				s.logger.WarnContext(ctx, "no players persisted, run player ingestion first")
				return nil, nil
			}

			var all []Record
			for _, seed := range seeds {
				records, err := s.gateway.PlayerStatistics(ctx, seed.SourceID, seasonYear)
				if err != nil {
					return nil, errors.Wrapf(err, "fetching statistics for player %d", seed.SourceID)
				}
				all = append(all, records...)
			}
			return all, nil
		},
		func(ctx context.Context, items []Record) []playerstats.GameStats {
			rows := make([]playerstats.GameStats, 0, len(items))
			type key struct{ playerID, gameID int64 }
			seen := make(map[key]struct{}, len(items))
			for _, rec := range items {
				row, ok := s.transformPlayerGameStats(ctx, rec)
				if !ok {
					continue
				}
				k := key{playerID: row.PlayerID, gameID: row.GameID}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				rows = append(rows, row)
			}
			return rows
		},
		func(ctx context.Context, rows []playerstats.GameStats) (int, error) {
			return s.playerStats.UpsertBulk(ctx, rows)
		},
	)
}

func (s *IngestionService) transformPlayerGameStats(ctx context.Context, rec Record) (playerstats.GameStats, bool) {
	playerID, okPlayer := rec.Int64("player.id")
	gameID, okGame := rec.Int64("game.id")
	if !okPlayer || !okGame {
		s.logger.WarnContext(ctx, "skipping player box score without player and game ids", "payload", rec.Raw())
		return playerstats.GameStats{}, false
	}
	hash, err := hashing.Payload(rec.Raw())
	if err != nil {
		s.logger.WarnContext(ctx, "skipping player box score with unhashable payload",
			"player_id", playerID, "game_id", gameID, "error", err)
		return playerstats.GameStats{}, false
	}

	return playerstats.GameStats{
		PlayerID:    playerID,
		GameID:      gameID,
		TeamID:      rec.Int64Ptr("team.id"),
		Points:      rec.IntPtr("points"),
		Position:    rec.StringPtr("pos"),
		Minutes:     rec.StringPtr("min"),
		FGM:         rec.IntPtr("fgm"),
		FGA:         rec.IntPtr("fga"),
		FGP:         rec.StringPtr("fgp"),
		FTM:         rec.IntPtr("ftm"),
		FTA:         rec.IntPtr("fta"),
		FTP:         rec.StringPtr("ftp"),
		TPM:         rec.IntPtr("tpm"),
		TPA:         rec.IntPtr("tpa"),
		TPP:         rec.StringPtr("tpp"),
		OffReb:      rec.IntPtr("offReb"),
		DefReb:      rec.IntPtr("defReb"),
		TotReb:      rec.IntPtr("totReb"),
		Assists:     rec.IntPtr("assists"),
		PFouls:      rec.IntPtr("pFouls"),
		Steals:      rec.IntPtr("steals"),
		Turnovers:   rec.IntPtr("turnover"),
		Blocks:      rec.IntPtr("blocks"),
		PlusMinus:   rec.StringPtr("plusMinus"),
		Comment:     rec.StringPtr("comment"),
		PayloadHash: hash,
		IsActive:    true,
	}, true
}
