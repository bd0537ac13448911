package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/domain/player"
	"github.com/courtside/nba-stats-api/internal/platform/hashing"
)

const birthDateLayout = "2006-01-02"

// IngestPlayers loads the rosters of every persisted NBA franchise for one
// season. Players traded mid-season show up on several rosters, so the
// aggregated set is deduplicated by source id before the single bulk upsert.
func (s *IngestionService) IngestPlayers(ctx context.Context, seasonYear int) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestPlayers")
	defer span.End()

	type playerRows struct {
		players []player.Player
		leagues []player.PlayerLeague
	}

	return runPipeline(ctx, s.logger, "players",
		func(ctx context.Context) ([]Record, error) {
			seeds, err := s.teams.ListNBAFranchises(ctx)
			if err != nil {
				return nil, errors.Wrap(err, "listing franchise teams")
			}
			if len(seeds) == 0 {
				s.logger.WarnContext(ctx, "no franchise teams persisted, run team ingestion first")
				return nil, nil
			}

			var all []Record
			for _, seed := range seeds {
				records, err := s.gateway.Players(ctx, seed.SourceID, seasonYear)
				if err != nil {
					return nil, errors.Wrapf(err, "fetching players for team %d", seed.SourceID)
				}
				all = append(all, records...)
			}
			return all, nil
		},
		func(ctx context.Context, items []Record) []playerRows {
			out := playerRows{}
			seen := make(map[int64]struct{}, len(items))
			for _, rec := range items {
				row, links, ok := s.transformPlayer(ctx, rec)
				if !ok {
					continue
				}
				if _, dup := seen[row.SourceID]; dup {
					continue
				}
				seen[row.SourceID] = struct{}{}
				out.players = append(out.players, row)
				out.leagues = append(out.leagues, links...)
			}
			if len(out.players) == 0 {
				return nil
			}
			return []playerRows{out}
		},
		func(ctx context.Context, rows []playerRows) (int, error) {
			if len(rows) == 0 {
				return 0, nil
			}
			return s.players.UpsertBulk(ctx, rows[0].players, rows[0].leagues)
		},
	)
}

func (s *IngestionService) transformPlayer(ctx context.Context, rec Record) (player.Player, []player.PlayerLeague, bool) {
	sourceID, ok := rec.Int64("id")
	if !ok {
		s.logger.WarnContext(ctx, "skipping player without a source id", "payload", rec.Raw())
		return player.Player{}, nil, false
	}
	hash, err := hashing.Payload(rec.Raw())
	if err != nil {
		s.logger.WarnContext(ctx, "skipping player with unhashable payload", "player_id", sourceID, "error", err)
		return player.Player{}, nil, false
	}

	row := player.Player{
		SourceID:        sourceID,
		FirstName:       rec.StringValue("firstname"),
		LastName:        rec.StringValue("lastname"),
		BirthDate:       s.parseBirthDate(ctx, sourceID, rec.StringValue("birth.date")),
		BirthCountry:    rec.StringPtr("birth.country"),
		NBAStartYear:    rec.IntPtr("nba.start"),
		YearsPro:        rec.IntPtr("nba.pro"),
		HeightMeters:    rec.StringPtr("height.meters"),
		WeightKilograms: rec.StringPtr("weight.kilograms"),
		College:         rec.StringPtr("college"),
		Affiliation:     rec.StringPtr("affiliation"),
		PayloadHash:     hash,
		IsActive:        true,
	}

	var links []player.PlayerLeague
	if leagues, ok := rec.Raw()["leagues"].(map[string]any); ok {
		for name, entry := range leagues {
			info, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			linkPayload := map[string]any{"player_id": sourceID, "league": name, "details": info}
			linkHash, err := hashing.Payload(linkPayload)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping player league link with unhashable payload",
					"player_id", sourceID, "league", name, "error", err)
				continue
			}
			leagueRec := Record(info)
			links = append(links, player.PlayerLeague{
				PlayerID:    sourceID,
				LeagueName:  name,
				Jersey:      leagueRec.IntPtr("jersey"),
				Position:    leagueRec.StringPtr("pos"),
				Active:      leagueRec.BoolValue("active"),
				PayloadHash: linkHash,
				IsActive:    true,
			})
		}
	}
	return row, links, true
}

// parseBirthDate keeps the player but drops an unparseable birth date. The
// warning leaves a trail for provider payload drift.
func (s *IngestionService) parseBirthDate(ctx context.Context, playerID int64, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(birthDateLayout, raw)
	if err != nil {
		s.logger.WarnContext(ctx, "dropping unparseable player birth date",
			"player_id", playerID, "birth_date", raw)
		return nil
	}
	return &parsed
}
