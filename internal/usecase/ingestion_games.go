package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/nba-stats-api/internal/domain/game"
	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/domain/teamstats"
	"github.com/courtside/nba-stats-api/internal/platform/hashing"
)

const gameDateLayout = "2006-01-02"

// IngestGamesByDate loads every game scheduled on one calendar day together
// with the per-team box scores of the games that already finished. Box scores
// are fetched up front and written with the games in one repository call, so
// a failing statistics fetch or write leaves the day untouched.
func (s *IngestionService) IngestGamesByDate(ctx context.Context, date string) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestGamesByDate")
	defer span.End()

	summary := ingestion.RunSummary{Source: "games"}

	items, err := s.gateway.GamesByDate(ctx, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "ingestion fetch failed", "source", "games", "error", err)
		summary.Status = ingestion.StatusFailure
		summary.Errors = append(summary.Errors, fmt.Sprintf("fetch: %v", err))
		return summary
	}
	if len(items) == 0 {
		s.logger.InfoContext(ctx, "ingestion found no data", "source", "games")
		summary.Status = ingestion.StatusNoData
		return summary
	}

	rows := make([]game.Game, 0, len(items))
	for _, rec := range items {
		row, ok := s.transformGame(ctx, rec)
		if ok {
			rows = append(rows, row)
		}
	}

	stats, err := s.collectFinishedGameStats(ctx, rows)
	if err != nil {
		summary.Status = ingestion.StatusFailure
		summary.Errors = append(summary.Errors, err.Error())
		return summary
	}

	processed, err := s.games.UpsertBulk(ctx, rows, stats)
	if err != nil {
		s.logger.ErrorContext(ctx, "ingestion persist failed", "source", "games", "error", err)
		summary.Status = ingestion.StatusFailure
		summary.Errors = append(summary.Errors, fmt.Sprintf("persist: %v", err))
		return summary
	}

	summary.Status = ingestion.StatusSuccess
	summary.Processed = processed
	s.logger.InfoContext(ctx, "ingestion run finished",
		"source", "games", "processed", processed, "box_scores", len(stats))
	return summary
}

// collectFinishedGameStats fetches the team box scores for finished games
// before anything is written.
func (s *IngestionService) collectFinishedGameStats(ctx context.Context, games []game.Game) ([]teamstats.GameStats, error) {
	var rows []teamstats.GameStats
	for _, g := range games {
		if !game.IsFinishedStatus(g.Status) {
			continue
		}
		records, err := s.gateway.GameStatistics(ctx, g.SourceID)
		if err != nil {
			return nil, fmt.Errorf("game %d statistics: %v", g.SourceID, err)
		}
		for _, rec := range records {
			row, ok := s.transformTeamGameStats(ctx, g.SourceID, rec)
			if ok {
				rows = append(rows, row)
			}
		}
		if err := s.sleep(ctx, s.gameFetchDelay); err != nil {
			return nil, fmt.Errorf("game statistics aborted: %v", err)
		}
	}
	return rows, nil
}

// IngestGamesBySeason walks the season window day by day, October 1st of the
// start year through June 30th of the next, and ingests each day's games. A
// bad day is recorded and skipped, not fatal for the whole season.
func (s *IngestionService) IngestGamesBySeason(ctx context.Context, seasonYear int) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestGamesBySeason")
	defer span.End()

	summary := ingestion.RunSummary{Source: "games"}

	start := time.Date(seasonYear, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(seasonYear+1, time.June, 30, 0, 0, 0, 0, time.UTC)

	var succeeded, failed int
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		daily := s.IngestGamesByDate(ctx, day.Format(gameDateLayout))
		switch daily.Status {
		case ingestion.StatusSuccess:
			succeeded++
			summary.Processed += daily.Processed
		case ingestion.StatusFailure:
			failed++
			for _, msg := range daily.Errors {
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %s", day.Format(gameDateLayout), msg))
			}
		}

		if err := s.sleep(ctx, s.gameFetchDelay); err != nil {
			summary.Status = ingestion.StatusFailure
			summary.Errors = append(summary.Errors, fmt.Sprintf("season walk aborted: %v", err))
			return summary
		}
	}

	switch {
	case succeeded == 0 && failed == 0:
		summary.Status = ingestion.StatusNoData
	case succeeded == 0:
		summary.Status = ingestion.StatusFailure
	default:
		summary.Status = ingestion.StatusSuccess
	}
	return summary
}

func (s *IngestionService) transformGame(ctx context.Context, rec Record) (game.Game, bool) {
	sourceID, ok := rec.Int64("id")
	if !ok {
		s.logger.WarnContext(ctx, "skipping game without a source id", "payload", rec.Raw())
		return game.Game{}, false
	}
	homeID, okHome := rec.Int64("teams.home.id")
	visitorID, okVisitor := rec.Int64("teams.visitors.id")
	if !okHome || !okVisitor {
		s.logger.WarnContext(ctx, "skipping game without both team ids", "game_id", sourceID)
		return game.Game{}, false
	}
	gameDate, ok := parseGameDate(rec.StringValue("date.start"))
	if !ok {
		s.logger.WarnContext(ctx, "skipping game with unparseable start date",
			"game_id", sourceID, "date", rec.StringValue("date.start"))
		return game.Game{}, false
	}
	hash, err := hashing.Payload(rec.Raw())
	if err != nil {
		s.logger.WarnContext(ctx, "skipping game with unhashable payload", "game_id", sourceID, "error", err)
		return game.Game{}, false
	}

	seasonYear, _ := rec.Int("season")
	return game.Game{
		SourceID:      sourceID,
		League:        rec.StringValue("league"),
		Season:        seasonYear,
		GameDate:      gameDate,
		Status:        rec.StringValue("status.long"),
		HomeTeamID:    homeID,
		VisitorTeamID: visitorID,
		HomeScore:     rec.IntPtr("scores.home.points"),
		VisitorScore:  rec.IntPtr("scores.visitors.points"),
		ArenaName:     rec.StringPtr("arena.name"),
		ArenaCity:     rec.StringPtr("arena.city"),
		PayloadHash:   hash,
		IsActive:      true,
	}, true
}

func (s *IngestionService) transformTeamGameStats(ctx context.Context, gameID int64, rec Record) (teamstats.GameStats, bool) {
	teamID, ok := rec.Int64("team.id")
	if !ok {
		s.logger.WarnContext(ctx, "skipping box score without a team id", "game_id", gameID)
		return teamstats.GameStats{}, false
	}
	stats, ok := firstStatistics(rec)
	if !ok {
		s.logger.WarnContext(ctx, "skipping box score without statistics", "game_id", gameID, "team_id", teamID)
		return teamstats.GameStats{}, false
	}
	payload := map[string]any{"game_id": gameID, "team_id": teamID, "statistics": stats.Raw()}
	hash, err := hashing.Payload(payload)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping box score with unhashable payload",
			"game_id", gameID, "team_id", teamID, "error", err)
		return teamstats.GameStats{}, false
	}

	return teamstats.GameStats{
		GameID:             gameID,
		TeamID:             teamID,
		FastBreakPoints:    stats.IntPtr("fastBreakPoints"),
		PointsInPaint:      stats.IntPtr("pointsInPaint"),
		BiggestLead:        stats.IntPtr("biggestLead"),
		SecondChancePoints: stats.IntPtr("secondChancePoints"),
		PointsOffTurnovers: stats.IntPtr("pointsOffTurnovers"),
		LongestRun:         stats.IntPtr("longestRun"),
		Points:             stats.IntPtr("points"),
		FGM:                stats.IntPtr("fgm"),
		FGA:                stats.IntPtr("fga"),
		FGP:                stats.StringPtr("fgp"),
		FTM:                stats.IntPtr("ftm"),
		FTA:                stats.IntPtr("fta"),
		FTP:                stats.StringPtr("ftp"),
		TPM:                stats.IntPtr("tpm"),
		TPA:                stats.IntPtr("tpa"),
		TPP:                stats.StringPtr("tpp"),
		OffReb:             stats.IntPtr("offReb"),
		DefReb:             stats.IntPtr("defReb"),
		TotReb:             stats.IntPtr("totReb"),
		Assists:            stats.IntPtr("assists"),
		PFouls:             stats.IntPtr("pFouls"),
		Steals:             stats.IntPtr("steals"),
		Turnovers:          stats.IntPtr("turnovers"),
		Blocks:             stats.IntPtr("blocks"),
		PlusMinus:          stats.StringPtr("plusMinus"),
		PayloadHash:        hash,
		IsActive:           true,
	}, true
}

// firstStatistics digs the single-element statistics array the provider nests
// inside team and game statistic payloads.
func firstStatistics(rec Record) (Record, bool) {
	list, ok := rec.Raw()["statistics"].([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	entry, ok := list[0].(map[string]any)
	if !ok {
		return nil, false
	}
	return Record(entry), true
}

func parseGameDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), true
	}
	if parsed, err := time.Parse(gameDateLayout, raw); err == nil {
		return parsed.UTC(), true
	}
	return time.Time{}, false
}
