package usecase

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/domain/league"
	"github.com/courtside/nba-stats-api/internal/domain/season"
	"github.com/courtside/nba-stats-api/internal/domain/team"
	"github.com/courtside/nba-stats-api/internal/platform/hashing"
)

// IngestSeasons loads the list of season start years offered by the provider.
func (s *IngestionService) IngestSeasons(ctx context.Context) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestSeasons")
	defer span.End()

	return runPipeline(ctx, s.logger, "seasons",
		s.gateway.Seasons,
		func(ctx context.Context, years []int64) []season.Season {
			rows := make([]season.Season, 0, len(years))
			for _, year := range years {
				payload := map[string]any{"season": year}
				hash, err := hashing.Payload(payload)
				if err != nil {
					s.logger.WarnContext(ctx, "skipping season with unhashable payload", "season", year, "error", err)
					continue
				}
				rows = append(rows, season.Season{
					Season:      int(year),
					SourceID:    year,
					PayloadHash: hash,
					IsActive:    true,
				})
			}
			return rows
		},
		func(ctx context.Context, rows []season.Season) (int, error) {
			return s.seasons.UpsertBulk(ctx, rows)
		},
	)
}

// ListSeasons returns the season start years already ingested, oldest first.
func (s *IngestionService) ListSeasons(ctx context.Context) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.ListSeasons")
	defer span.End()

	years, err := s.seasons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return years, nil
}

// IngestLeagues loads the provider league catalog. The endpoint mixes bare
// league-name strings with full league objects, so name-only entries get a
// synthetic stable source id derived from the name.
func (s *IngestionService) IngestLeagues(ctx context.Context) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestLeagues")
	defer span.End()

	return runPipeline(ctx, s.logger, "leagues",
		s.gateway.Leagues,
		func(ctx context.Context, items []any) []league.League {
			rows := make([]league.League, 0, len(items))
			for _, item := range items {
				row, ok := s.transformLeague(ctx, item)
				if ok {
					rows = append(rows, row)
				}
			}
			return dedupeLeaguesByName(rows)
		},
		func(ctx context.Context, rows []league.League) (int, error) {
			return s.leagues.UpsertBulk(ctx, rows)
		},
	)
}

func (s *IngestionService) transformLeague(ctx context.Context, item any) (league.League, bool) {
	switch v := item.(type) {
	case string:
		if v == "" {
			return league.League{}, false
		}
		payload := map[string]any{"name": v}
		hash, err := hashing.Payload(payload)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping league with unhashable payload", "league", v, "error", err)
			return league.League{}, false
		}
		return league.League{
			SourceID:    syntheticLeagueID(v),
			Name:        v,
			PayloadHash: hash,
			IsActive:    true,
		}, true
	case map[string]any:
		rec := Record(v)
		name := rec.StringValue("name")
		if name == "" {
			s.logger.WarnContext(ctx, "skipping league without a name", "payload", v)
			return league.League{}, false
		}
		hash, err := hashing.Payload(v)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping league with unhashable payload", "league", name, "error", err)
			return league.League{}, false
		}
		sourceID, ok := rec.Int64("id")
		if !ok {
			sourceID = syntheticLeagueID(name)
		}
		return league.League{
			SourceID:    sourceID,
			Name:        name,
			Type:        rec.StringPtr("type"),
			LogoURL:     rec.StringPtr("logo"),
			PayloadHash: hash,
			IsActive:    true,
		}, true
	default:
		s.logger.WarnContext(ctx, "skipping league entry with unexpected shape", "payload", item)
		return league.League{}, false
	}
}

// dedupeLeaguesByName keeps one row per league name, preferring entries that
// carry a real provider id over name-only entries with a synthetic one. The
// leagues upsert conflicts on name, so duplicates in one batch would clash.
func dedupeLeaguesByName(rows []league.League) []league.League {
	index := make(map[string]int, len(rows))
	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		at, seen := index[row.Name]
		if !seen {
			index[row.Name] = len(out)
			out = append(out, row)
			continue
		}
		if out[at].SourceID == syntheticLeagueID(row.Name) {
			out[at] = row
		}
	}
	return out
}

// syntheticLeagueID derives a stable eight-digit source id for leagues the
// provider returns as bare names.
func syntheticLeagueID(name string) int64 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int64(h.Sum32() % 100_000_000)
}

// IngestTeams loads the full team catalog together with the per-league
// membership rows nested inside each team payload.
func (s *IngestionService) IngestTeams(ctx context.Context) ingestion.RunSummary {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestTeams")
	defer span.End()

	type teamRows struct {
		teams   []team.Team
		leagues []team.TeamLeague
	}

	return runPipeline(ctx, s.logger, "teams",
		s.gateway.Teams,
		func(ctx context.Context, items []Record) []teamRows {
			out := teamRows{}
			for _, rec := range items {
				row, links, ok := s.transformTeam(ctx, rec)
				if !ok {
					continue
				}
				out.teams = append(out.teams, row)
				out.leagues = append(out.leagues, links...)
			}
			if len(out.teams) == 0 {
				return nil
			}
			return []teamRows{out}
		},
		func(ctx context.Context, rows []teamRows) (int, error) {
			if len(rows) == 0 {
				return 0, nil
			}
			return s.teams.UpsertBulk(ctx, rows[0].teams, rows[0].leagues)
		},
	)
}

func (s *IngestionService) transformTeam(ctx context.Context, rec Record) (team.Team, []team.TeamLeague, bool) {
	sourceID, ok := rec.Int64("id")
	if !ok {
		s.logger.WarnContext(ctx, "skipping team without a source id", "payload", rec.Raw())
		return team.Team{}, nil, false
	}
	hash, err := hashing.Payload(rec.Raw())
	if err != nil {
		s.logger.WarnContext(ctx, "skipping team with unhashable payload", "team_id", sourceID, "error", err)
		return team.Team{}, nil, false
	}

	row := team.Team{
		SourceID:       sourceID,
		Name:           rec.StringValue("name"),
		Nickname:       rec.StringPtr("nickname"),
		Code:           rec.StringPtr("code"),
		City:           rec.StringPtr("city"),
		LogoURL:        rec.StringPtr("logo"),
		IsNBAFranchise: rec.BoolValue("nbaFranchise"),
		IsAllStar:      rec.BoolValue("allStar"),
		PayloadHash:    hash,
		IsActive:       true,
	}

	var links []team.TeamLeague
	if leagues, ok := rec.Raw()["leagues"].(map[string]any); ok {
		for name, entry := range leagues {
			info, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			linkPayload := map[string]any{"team_id": sourceID, "league": name, "details": info}
			linkHash, err := hashing.Payload(linkPayload)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping team league link with unhashable payload",
					"team_id", sourceID, "league", name, "error", err)
				continue
			}
			leagueRec := Record(info)
			links = append(links, team.TeamLeague{
				TeamID:      sourceID,
				LeagueName:  name,
				Conference:  leagueRec.StringPtr("conference"),
				Division:    leagueRec.StringPtr("division"),
				PayloadHash: linkHash,
				IsActive:    true,
			})
		}
	}
	return row, links, true
}
