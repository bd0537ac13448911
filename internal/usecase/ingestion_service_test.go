package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/courtside/nba-stats-api/internal/domain/game"
	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/domain/league"
	"github.com/courtside/nba-stats-api/internal/domain/player"
	"github.com/courtside/nba-stats-api/internal/domain/playerstats"
	"github.com/courtside/nba-stats-api/internal/domain/season"
	"github.com/courtside/nba-stats-api/internal/domain/standing"
	"github.com/courtside/nba-stats-api/internal/domain/team"
	"github.com/courtside/nba-stats-api/internal/domain/teamstats"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
)

type fakeGateway struct {
	seasons          func(ctx context.Context) ([]int64, error)
	leagues          func(ctx context.Context) ([]any, error)
	teams            func(ctx context.Context) ([]Record, error)
	teamStatistics   func(ctx context.Context, teamID int64, season int) ([]Record, error)
	players          func(ctx context.Context, teamID int64, season int) ([]Record, error)
	playerStatistics func(ctx context.Context, playerID int64, season int) ([]Record, error)
	gamesByDate      func(ctx context.Context, date string) ([]Record, error)
	gameStatistics   func(ctx context.Context, gameID int64) ([]Record, error)
	standings        func(ctx context.Context, leagueID int64, season int) ([]Record, error)
}

func (f *fakeGateway) Seasons(ctx context.Context) ([]int64, error) {
	if f.seasons == nil {
		return nil, nil
	}
	return f.seasons(ctx)
}

func (f *fakeGateway) Leagues(ctx context.Context) ([]any, error) {
	if f.leagues == nil {
		return nil, nil
	}
	return f.leagues(ctx)
}

func (f *fakeGateway) Teams(ctx context.Context) ([]Record, error) {
	if f.teams == nil {
		return nil, nil
	}
	return f.teams(ctx)
}

func (f *fakeGateway) TeamStatistics(ctx context.Context, teamID int64, season int) ([]Record, error) {
	if f.teamStatistics == nil {
		return nil, nil
	}
	return f.teamStatistics(ctx, teamID, season)
}

func (f *fakeGateway) Players(ctx context.Context, teamID int64, season int) ([]Record, error) {
	if f.players == nil {
		return nil, nil
	}
	return f.players(ctx, teamID, season)
}

func (f *fakeGateway) PlayerStatistics(ctx context.Context, playerID int64, season int) ([]Record, error) {
	if f.playerStatistics == nil {
		return nil, nil
	}
	return f.playerStatistics(ctx, playerID, season)
}

func (f *fakeGateway) GamesByDate(ctx context.Context, date string) ([]Record, error) {
	if f.gamesByDate == nil {
		return nil, nil
	}
	return f.gamesByDate(ctx, date)
}

func (f *fakeGateway) GameStatistics(ctx context.Context, gameID int64) ([]Record, error) {
	if f.gameStatistics == nil {
		return nil, nil
	}
	return f.gameStatistics(ctx, gameID)
}

func (f *fakeGateway) Standings(ctx context.Context, leagueID int64, season int) ([]Record, error) {
	if f.standings == nil {
		return nil, nil
	}
	return f.standings(ctx, leagueID, season)
}

type fakeSeasonRepo struct {
	rows    []season.Season
	years   []int
	err     error
	listErr error
}

func (f *fakeSeasonRepo) UpsertBulk(_ context.Context, rows []season.Season) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.rows = rows
	return len(rows), nil
}

func (f *fakeSeasonRepo) List(context.Context) ([]int, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.years, nil
}

type fakeLeagueRepo struct {
	rows []league.League
	err  error
}

func (f *fakeLeagueRepo) UpsertBulk(_ context.Context, rows []league.League) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.rows = rows
	return len(rows), nil
}

type fakeTeamRepo struct {
	teams []team.Team
	links []team.TeamLeague
	seeds []team.Seed
	err   error
}

func (f *fakeTeamRepo) UpsertBulk(_ context.Context, teams []team.Team, links []team.TeamLeague) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.teams = teams
	f.links = links
	return len(teams), nil
}

func (f *fakeTeamRepo) ListNBAFranchises(context.Context) ([]team.Seed, error) {
	return f.seeds, nil
}

type fakePlayerRepo struct {
	players []player.Player
	links   []player.PlayerLeague
	seeds   []player.Seed
}

func (f *fakePlayerRepo) UpsertBulk(_ context.Context, players []player.Player, links []player.PlayerLeague) (int, error) {
	f.players = players
	f.links = links
	return len(players), nil
}

func (f *fakePlayerRepo) ListSeeds(context.Context) ([]player.Seed, error) {
	return f.seeds, nil
}

type fakeGameRepo struct {
	rows  []game.Game
	stats []teamstats.GameStats
	err   error
}

// UpsertBulk mirrors the real repository's all-or-nothing contract: an error
// records neither games nor box scores.
func (f *fakeGameRepo) UpsertBulk(_ context.Context, rows []game.Game, stats []teamstats.GameStats) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.rows = append(f.rows, rows...)
	f.stats = append(f.stats, stats...)
	return len(rows), nil
}

type fakeStandingRepo struct {
	rows []standing.Standing
}

func (f *fakeStandingRepo) UpsertBulk(_ context.Context, rows []standing.Standing) (int, error) {
	f.rows = rows
	return len(rows), nil
}

type fakeTeamStatsRepo struct {
	seasonRows []teamstats.SeasonStats
	err        error
}

func (f *fakeTeamStatsRepo) UpsertSeasonStatsBulk(_ context.Context, rows []teamstats.SeasonStats) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.seasonRows = rows
	return len(rows), nil
}

type fakePlayerStatsRepo struct {
	rows []playerstats.GameStats
}

func (f *fakePlayerStatsRepo) UpsertBulk(_ context.Context, rows []playerstats.GameStats) (int, error) {
	f.rows = rows
	return len(rows), nil
}

type ingestionFixture struct {
	svc         *IngestionService
	gateway     *fakeGateway
	seasons     *fakeSeasonRepo
	leagues     *fakeLeagueRepo
	teams       *fakeTeamRepo
	players     *fakePlayerRepo
	games       *fakeGameRepo
	standings   *fakeStandingRepo
	teamStats   *fakeTeamStatsRepo
	playerStats *fakePlayerStatsRepo
	sleeps      *atomic.Int64
}

func newIngestionFixture(t *testing.T) *ingestionFixture {
	t.Helper()

	f := &ingestionFixture{
		gateway:     &fakeGateway{},
		seasons:     &fakeSeasonRepo{},
		leagues:     &fakeLeagueRepo{},
		teams:       &fakeTeamRepo{},
		players:     &fakePlayerRepo{},
		games:       &fakeGameRepo{},
		standings:   &fakeStandingRepo{},
		teamStats:   &fakeTeamStatsRepo{},
		playerStats: &fakePlayerStatsRepo{},
		sleeps:      &atomic.Int64{},
	}
	f.svc = NewIngestionService(IngestionServiceConfig{
		Gateway:        f.gateway,
		Seasons:        f.seasons,
		Leagues:        f.leagues,
		Teams:          f.teams,
		Players:        f.players,
		Games:          f.games,
		Standings:      f.standings,
		TeamStats:      f.teamStats,
		PlayerStats:    f.playerStats,
		Logger:         logging.NewNop(),
		GameFetchDelay: time.Millisecond,
	})
	f.svc.sleep = func(ctx context.Context, _ time.Duration) error {
		f.sleeps.Add(1)
		return ctx.Err()
	}
	return f
}

func TestIngestSeasons(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newIngestionFixture(t)
		f.gateway.seasons = func(context.Context) ([]int64, error) {
			return []int64{2022, 2023}, nil
		}

		summary := f.svc.IngestSeasons(context.Background())

		require.Equal(t, ingestion.StatusSuccess, summary.Status)
		require.Equal(t, 2, summary.Processed)
		require.Len(t, f.seasons.rows, 2)
		require.Equal(t, 2022, f.seasons.rows[0].Season)
		require.Equal(t, int64(2022), f.seasons.rows[0].SourceID)
		require.Len(t, f.seasons.rows[0].PayloadHash, 64)
		require.True(t, f.seasons.rows[0].IsActive)
	})

	t.Run("no data from provider", func(t *testing.T) {
		f := newIngestionFixture(t)

		summary := f.svc.IngestSeasons(context.Background())

		require.Equal(t, ingestion.StatusNoData, summary.Status)
		require.Zero(t, summary.Processed)
		require.Empty(t, f.seasons.rows)
	})

	t.Run("fetch error", func(t *testing.T) {
		f := newIngestionFixture(t)
		f.gateway.seasons = func(context.Context) ([]int64, error) {
			return nil, errors.New("circuit open")
		}

		summary := f.svc.IngestSeasons(context.Background())

		require.Equal(t, ingestion.StatusFailure, summary.Status)
		require.NotEmpty(t, summary.Errors)
	})

	t.Run("persist error", func(t *testing.T) {
		f := newIngestionFixture(t)
		f.gateway.seasons = func(context.Context) ([]int64, error) {
			return []int64{2023}, nil
		}
		f.seasons.err = errors.New("connection refused")

		summary := f.svc.IngestSeasons(context.Background())

		require.Equal(t, ingestion.StatusFailure, summary.Status)
		require.Zero(t, summary.Processed)
	})
}

func TestListSeasons(t *testing.T) {
	f := newIngestionFixture(t)
	f.seasons.years = []int{2021, 2022, 2023}

	years, err := f.svc.ListSeasons(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{2021, 2022, 2023}, years)

	f.seasons.listErr = errors.New("connection refused")
	_, err = f.svc.ListSeasons(context.Background())
	require.ErrorContains(t, err, "list seasons")
}

func TestIngestLeagues_MixedShapes(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.leagues = func(context.Context) ([]any, error) {
		return []any{
			"Vegas",
			map[string]any{"id": float64(12), "name": "NBA", "type": "standard", "logo": "https://x/nba.png"},
			float64(7),
		}, nil
	}

	summary := f.svc.IngestLeagues(context.Background())

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Equal(t, 2, summary.Processed)
	require.Len(t, f.leagues.rows, 2)

	vegas := f.leagues.rows[0]
	require.Equal(t, "Vegas", vegas.Name)
	require.Equal(t, syntheticLeagueID("Vegas"), vegas.SourceID)
	require.Positive(t, vegas.SourceID)
	require.Nil(t, vegas.Type)

	nba := f.leagues.rows[1]
	require.Equal(t, int64(12), nba.SourceID)
	require.Equal(t, "NBA", nba.Name)
	require.NotNil(t, nba.Type)
	require.Equal(t, "standard", *nba.Type)
}

func TestIngestLeagues_NameOnlyThenFullObject(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.leagues = func(context.Context) ([]any, error) {
		return []any{
			"NBA",
			map[string]any{"id": float64(12), "name": "NBA", "type": "standard"},
			map[string]any{"name": "Sacramento"},
			"Sacramento",
		}, nil
	}

	summary := f.svc.IngestLeagues(context.Background())

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Len(t, f.leagues.rows, 2, "one row per league name")

	nba := f.leagues.rows[0]
	require.Equal(t, "NBA", nba.Name)
	require.Equal(t, int64(12), nba.SourceID, "provider id wins over the synthetic one")

	sacramento := f.leagues.rows[1]
	require.Equal(t, "Sacramento", sacramento.Name)
	require.Equal(t, syntheticLeagueID("Sacramento"), sacramento.SourceID)
}

func TestSyntheticLeagueID_Stable(t *testing.T) {
	require.Equal(t, syntheticLeagueID("Utah"), syntheticLeagueID("Utah"))
	require.NotEqual(t, syntheticLeagueID("Utah"), syntheticLeagueID("Vegas"))
	require.Less(t, syntheticLeagueID("Sacramento"), int64(100_000_000))
}

func TestIngestTeams(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.teams = func(context.Context) ([]Record, error) {
		return []Record{
			{
				"id":           float64(1),
				"name":         "Atlanta Hawks",
				"nickname":     "Hawks",
				"code":         "ATL",
				"city":         "Atlanta",
				"nbaFranchise": true,
				"allStar":      false,
				"leagues": map[string]any{
					"standard": map[string]any{"conference": "East", "division": "Southeast"},
				},
			},
			{"name": "broken, no id"},
		}, nil
	}

	summary := f.svc.IngestTeams(context.Background())

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Equal(t, 1, summary.Processed)
	require.Len(t, f.teams.teams, 1)
	require.True(t, f.teams.teams[0].IsNBAFranchise)
	require.Len(t, f.teams.links, 1)
	require.Equal(t, int64(1), f.teams.links[0].TeamID)
	require.Equal(t, "standard", f.teams.links[0].LeagueName)
	require.Equal(t, "East", *f.teams.links[0].Conference)
}

func TestIngestPlayers_DeduplicatesAcrossRosters(t *testing.T) {
	f := newIngestionFixture(t)
	f.teams.seeds = []team.Seed{{SourceID: 1, Name: "Hawks"}, {SourceID: 2, Name: "Celtics"}}

	traded := Record{
		"id":        float64(265),
		"firstname": "Kyle",
		"lastname":  "Korver",
		"birth":     map[string]any{"date": "1981-03-17", "country": "USA"},
		"nba":       map[string]any{"start": float64(2003), "pro": float64(15)},
		"leagues": map[string]any{
			"standard": map[string]any{"jersey": float64(26), "active": true, "pos": "G-F"},
		},
	}
	f.gateway.players = func(_ context.Context, teamID int64, seasonYear int) ([]Record, error) {
		require.Equal(t, 2017, seasonYear)
		return []Record{traded}, nil
	}

	summary := f.svc.IngestPlayers(context.Background(), 2017)

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Equal(t, 1, summary.Processed)
	require.Len(t, f.players.players, 1)

	got := f.players.players[0]
	require.Equal(t, int64(265), got.SourceID)
	require.NotNil(t, got.BirthDate)
	require.Equal(t, 1981, got.BirthDate.Year())
	require.Equal(t, 2003, *got.NBAStartYear)

	require.Len(t, f.players.links, 1)
	require.Equal(t, 26, *f.players.links[0].Jersey)
	require.True(t, f.players.links[0].Active)
}

func TestIngestPlayers_KeepsPlayerWithBadBirthDate(t *testing.T) {
	f := newIngestionFixture(t)
	f.teams.seeds = []team.Seed{{SourceID: 1, Name: "Hawks"}}
	f.gateway.players = func(context.Context, int64, int) ([]Record, error) {
		return []Record{
			{
				"id":        float64(42),
				"firstname": "Trae",
				"lastname":  "Young",
				"birth":     map[string]any{"date": "Sept 19, 1998", "country": "USA"},
			},
		}, nil
	}

	summary := f.svc.IngestPlayers(context.Background(), 2023)

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Len(t, f.players.players, 1)
	require.Nil(t, f.players.players[0].BirthDate, "an unparseable birth date stays null")
	require.Equal(t, "Trae", f.players.players[0].FirstName)
}

func TestIngestPlayers_NoFranchisesPersisted(t *testing.T) {
	f := newIngestionFixture(t)

	summary := f.svc.IngestPlayers(context.Background(), 2023)

	require.Equal(t, ingestion.StatusNoData, summary.Status)
}

func gameRecord(id int64, status string) Record {
	return Record{
		"id":     float64(id),
		"league": "standard",
		"season": float64(2023),
		"date":   map[string]any{"start": "2023-12-25T17:00:00.000Z"},
		"status": map[string]any{"long": status},
		"teams": map[string]any{
			"home":     map[string]any{"id": float64(1)},
			"visitors": map[string]any{"id": float64(2)},
		},
		"scores": map[string]any{
			"home":     map[string]any{"points": float64(110)},
			"visitors": map[string]any{"points": float64(104)},
		},
		"arena": map[string]any{"name": "TD Garden", "city": "Boston"},
	}
}

func TestIngestGamesByDate(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.gamesByDate = func(_ context.Context, date string) ([]Record, error) {
		require.Equal(t, "2023-12-25", date)
		return []Record{gameRecord(9244, "Finished"), gameRecord(9245, "Scheduled")}, nil
	}

	var statsCalls []int64
	f.gateway.gameStatistics = func(_ context.Context, gameID int64) ([]Record, error) {
		statsCalls = append(statsCalls, gameID)
		return []Record{
			{
				"team":       map[string]any{"id": float64(1)},
				"statistics": []any{map[string]any{"points": float64(110), "fgm": float64(42), "fgp": "48.8"}},
			},
		}, nil
	}

	summary := f.svc.IngestGamesByDate(context.Background(), "2023-12-25")

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Equal(t, 2, summary.Processed)
	require.Len(t, f.games.rows, 2)
	require.Equal(t, int64(1), f.games.rows[0].HomeTeamID)
	require.Equal(t, 110, *f.games.rows[0].HomeScore)

	require.Equal(t, []int64{9244}, statsCalls, "box scores only for finished games")
	require.Len(t, f.games.stats, 1)
	require.Equal(t, int64(9244), f.games.stats[0].GameID)
	require.Equal(t, 110, *f.games.stats[0].Points)
	require.Equal(t, "48.8", *f.games.stats[0].FGP)
}

func TestIngestGamesByDate_StatsFetchFailureWritesNothing(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.gamesByDate = func(context.Context, string) ([]Record, error) {
		return []Record{gameRecord(9244, "Finished"), gameRecord(9245, "Scheduled")}, nil
	}
	f.gateway.gameStatistics = func(context.Context, int64) ([]Record, error) {
		return nil, errors.New("provider down")
	}

	summary := f.svc.IngestGamesByDate(context.Background(), "2023-12-25")

	require.Equal(t, ingestion.StatusFailure, summary.Status)
	require.Contains(t, summary.Errors[0], "game 9244 statistics")
	require.Empty(t, f.games.rows, "a failed box score fetch must not leave game rows behind")
	require.Empty(t, f.games.stats)
}

func TestIngestGamesByDate_PersistFailureWritesNothing(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.gamesByDate = func(context.Context, string) ([]Record, error) {
		return []Record{gameRecord(9244, "Finished")}, nil
	}
	f.gateway.gameStatistics = func(context.Context, int64) ([]Record, error) {
		return []Record{
			{
				"team":       map[string]any{"id": float64(1)},
				"statistics": []any{map[string]any{"points": float64(110)}},
			},
		}, nil
	}
	f.games.err = errors.New("deadlock detected")

	summary := f.svc.IngestGamesByDate(context.Background(), "2023-12-25")

	require.Equal(t, ingestion.StatusFailure, summary.Status)
	require.Contains(t, summary.Errors[0], "persist:")
	require.Empty(t, f.games.rows)
	require.Empty(t, f.games.stats)
}

func TestIngestGamesByDate_SkipsBadDates(t *testing.T) {
	f := newIngestionFixture(t)
	bad := gameRecord(1, "Scheduled")
	bad["date"] = map[string]any{"start": "not a date"}
	f.gateway.gamesByDate = func(context.Context, string) ([]Record, error) {
		return []Record{bad, gameRecord(2, "Scheduled")}, nil
	}

	summary := f.svc.IngestGamesByDate(context.Background(), "2023-12-25")

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Equal(t, 1, summary.Processed)
	require.Len(t, f.games.rows, 1)
	require.Equal(t, int64(2), f.games.rows[0].SourceID)
}

func TestIngestGamesBySeason(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.gamesByDate = func(_ context.Context, date string) ([]Record, error) {
		if date == "2023-12-25" {
			return []Record{gameRecord(9244, "Scheduled")}, nil
		}
		return nil, nil
	}

	summary := f.svc.IngestGamesBySeason(context.Background(), 2023)

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Equal(t, 1, summary.Processed)
	require.Positive(t, f.sleeps.Load(), "season walk must pace provider calls")
}

func TestIngestGamesBySeason_AllDaysEmpty(t *testing.T) {
	f := newIngestionFixture(t)

	summary := f.svc.IngestGamesBySeason(context.Background(), 2023)

	require.Equal(t, ingestion.StatusNoData, summary.Status)
}

func TestIngestGamesBySeason_CancelAborts(t *testing.T) {
	f := newIngestionFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := f.svc.IngestGamesBySeason(ctx, 2023)

	require.Equal(t, ingestion.StatusFailure, summary.Status)
}

func TestIngestTeamSeasonStatistics(t *testing.T) {
	f := newIngestionFixture(t)
	f.teams.seeds = []team.Seed{{SourceID: 1, Name: "Hawks"}}
	f.gateway.teamStatistics = func(_ context.Context, teamID int64, seasonYear int) ([]Record, error) {
		return []Record{
			{"games": float64(82), "points": float64(9601), "fgp": "46.1", "plusMinus": "-12"},
		}, nil
	}

	summary := f.svc.IngestTeamSeasonStatistics(context.Background(), 2023)

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Len(t, f.teamStats.seasonRows, 1)
	got := f.teamStats.seasonRows[0]
	require.Equal(t, int64(1), got.TeamID)
	require.Equal(t, 2023, got.Season)
	require.Equal(t, 82, *got.Games)
	require.Equal(t, "46.1", *got.FGP)
}

func TestIngestPlayerStatistics(t *testing.T) {
	f := newIngestionFixture(t)
	f.players.seeds = []player.Seed{{SourceID: 265}}
	f.gateway.playerStatistics = func(_ context.Context, playerID int64, seasonYear int) ([]Record, error) {
		rec := Record{
			"player":   map[string]any{"id": float64(playerID)},
			"game":     map[string]any{"id": float64(9244)},
			"team":     map[string]any{"id": float64(1)},
			"points":   float64(21),
			"pos":      "SG",
			"min":      "34:12",
			"turnover": float64(3),
		}
		return []Record{rec, rec}, nil
	}

	summary := f.svc.IngestPlayerStatistics(context.Background(), 2023)

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Equal(t, 1, summary.Processed, "duplicate (player, game) rows collapse")
	require.Len(t, f.playerStats.rows, 1)
	require.Equal(t, 21, *f.playerStats.rows[0].Points)
	require.Equal(t, 3, *f.playerStats.rows[0].Turnovers)
}

func TestIngestStandings(t *testing.T) {
	f := newIngestionFixture(t)
	f.gateway.standings = func(_ context.Context, leagueID int64, seasonYear int) ([]Record, error) {
		require.Equal(t, int64(12), leagueID)
		return []Record{
			{
				"team":       map[string]any{"id": float64(2)},
				"conference": map[string]any{"name": "east", "rank": float64(1), "win": float64(40), "loss": float64(12)},
				"division":   map[string]any{"name": "atlantic", "rank": float64(1), "gamesBehind": "0"},
				"win":        map[string]any{"total": float64(64), "percentage": "0.780"},
				"loss":       map[string]any{"total": float64(18)},
				"streak":     float64(5),
				"winStreak":  true,
			},
		}, nil
	}

	summary := f.svc.IngestStandings(context.Background(), 12, 2023)

	require.Equal(t, ingestion.StatusSuccess, summary.Status)
	require.Len(t, f.standings.rows, 1)
	got := f.standings.rows[0]
	require.Equal(t, int64(2), got.TeamID)
	require.Equal(t, "east", *got.ConferenceName)
	require.Equal(t, 64, *got.Wins)
	require.Equal(t, "0.780", *got.WinPercentage)
	require.True(t, got.WinStreak)
}
