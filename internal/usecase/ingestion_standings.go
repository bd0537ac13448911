package usecase

import (
	"context"

	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/domain/standing"
	"github.com/courtside/nba-stats-api/internal/platform/hashing"
)

// IngestStandings loads the table of one league season.
func (s *IngestionService) IngestStandings(ctx context.Context, leagueID int64, seasonYear int) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestStandings")
	defer span.End()

	return runPipeline(ctx, s.logger, "standings",
		func(ctx context.Context) ([]Record, error) {
			return s.gateway.Standings(ctx, leagueID, seasonYear)
		},
		func(ctx context.Context, items []Record) []standing.Standing {
			rows := make([]standing.Standing, 0, len(items))
			for _, rec := range items {
				row, ok := s.transformStanding(ctx, leagueID, seasonYear, rec)
				if ok {
					rows = append(rows, row)
				}
			}
			return rows
		},
		func(ctx context.Context, rows []standing.Standing) (int, error) {
			return s.standings.UpsertBulk(ctx, rows)
		},
	)
}

func (s *IngestionService) transformStanding(ctx context.Context, leagueID int64, seasonYear int, rec Record) (standing.Standing, bool) {
	teamID, ok := rec.Int64("team.id")
	if !ok {
		s.logger.WarnContext(ctx, "skipping standing without a team id", "payload", rec.Raw())
		return standing.Standing{}, false
	}
	hash, err := hashing.Payload(rec.Raw())
	if err != nil {
		s.logger.WarnContext(ctx, "skipping standing with unhashable payload",
			"team_id", teamID, "season", seasonYear, "error", err)
		return standing.Standing{}, false
	}

	return standing.Standing{
		LeagueID:            leagueID,
		Season:              seasonYear,
		TeamID:              teamID,
		ConferenceName:      rec.StringPtr("conference.name"),
		ConferenceRank:      rec.IntPtr("conference.rank"),
		ConferenceWins:      rec.IntPtr("conference.win"),
		ConferenceLosses:    rec.IntPtr("conference.loss"),
		DivisionName:        rec.StringPtr("division.name"),
		DivisionRank:        rec.IntPtr("division.rank"),
		DivisionGamesBehind: rec.StringPtr("division.gamesBehind"),
		Wins:                rec.IntPtr("win.total"),
		Losses:              rec.IntPtr("loss.total"),
		WinPercentage:       rec.StringPtr("win.percentage"),
		GamesBehind:         rec.StringPtr("gamesBehind"),
		Streak:              rec.IntPtr("streak"),
		WinStreak:           rec.BoolValue("winStreak"),
		PayloadHash:         hash,
		IsActive:            true,
	}, true
}
