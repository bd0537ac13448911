package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/teamstats"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

// teamGameStatsRows shapes box scores for the team_statistics upsert. The
// game repository writes them inside the game transaction.
func teamGameStatsRows(stats []teamstats.GameStats, now time.Time) []teamGameStatsRowModel {
	rows := make([]teamGameStatsRowModel, 0, len(stats))
	for _, item := range stats {
		rows = append(rows, teamGameStatsRowModel{
			GameID:             item.GameID,
			TeamID:             item.TeamID,
			FastBreakPoints:    nullableInt(item.FastBreakPoints),
			PointsInPaint:      nullableInt(item.PointsInPaint),
			BiggestLead:        nullableInt(item.BiggestLead),
			SecondChancePoints: nullableInt(item.SecondChancePoints),
			PointsOffTurnovers: nullableInt(item.PointsOffTurnovers),
			LongestRun:         nullableInt(item.LongestRun),
			Points:             nullableInt(item.Points),
			FGM:                nullableInt(item.FGM),
			FGA:                nullableInt(item.FGA),
			FGP:                nullableString(item.FGP),
			FTM:                nullableInt(item.FTM),
			FTA:                nullableInt(item.FTA),
			FTP:                nullableString(item.FTP),
			TPM:                nullableInt(item.TPM),
			TPA:                nullableInt(item.TPA),
			TPP:                nullableString(item.TPP),
			OffReb:             nullableInt(item.OffReb),
			DefReb:             nullableInt(item.DefReb),
			TotReb:             nullableInt(item.TotReb),
			Assists:            nullableInt(item.Assists),
			PFouls:             nullableInt(item.PFouls),
			Steals:             nullableInt(item.Steals),
			Turnovers:          nullableInt(item.Turnovers),
			Blocks:             nullableInt(item.Blocks),
			PlusMinus:          nullableString(item.PlusMinus),
			PayloadHash:        item.PayloadHash,
			IsActive:           item.IsActive,
			IngestedAt:         now,
			UpdatedAt:          now,
		})
	}
	return rows
}

func (r *TeamStatsRepository) UpsertSeasonStatsBulk(ctx context.Context, stats []teamstats.SeasonStats) (int, error) {
	if len(stats) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]teamSeasonStatsRowModel, 0, len(stats))
	for _, item := range stats {
		rows = append(rows, teamSeasonStatsRowModel{
			TeamID:             item.TeamID,
			Season:             item.Season,
			Games:              nullableInt(item.Games),
			FastBreakPoints:    nullableInt(item.FastBreakPoints),
			PointsInPaint:      nullableInt(item.PointsInPaint),
			BiggestLead:        nullableInt(item.BiggestLead),
			SecondChancePoints: nullableInt(item.SecondChancePoints),
			PointsOffTurnovers: nullableInt(item.PointsOffTurnovers),
			LongestRun:         nullableInt(item.LongestRun),
			Points:             nullableInt(item.Points),
			FGM:                nullableInt(item.FGM),
			FGA:                nullableInt(item.FGA),
			FGP:                nullableString(item.FGP),
			FTM:                nullableInt(item.FTM),
			FTA:                nullableInt(item.FTA),
			FTP:                nullableString(item.FTP),
			TPM:                nullableInt(item.TPM),
			TPA:                nullableInt(item.TPA),
			TPP:                nullableString(item.TPP),
			OffReb:             nullableInt(item.OffReb),
			DefReb:             nullableInt(item.DefReb),
			TotReb:             nullableInt(item.TotReb),
			Assists:            nullableInt(item.Assists),
			PFouls:             nullableInt(item.PFouls),
			Steals:             nullableInt(item.Steals),
			Turnovers:          nullableInt(item.Turnovers),
			Blocks:             nullableInt(item.Blocks),
			PlusMinus:          nullableString(item.PlusMinus),
			PayloadHash:        item.PayloadHash,
			IsActive:           item.IsActive,
			IngestedAt:         now,
			UpdatedAt:          now,
		})
	}

	if err := upsertBulk(ctx, r.db, "team_season_statistics", rows, []string{"team_id", "season"}, hashGuard("team_season_statistics")); err != nil {
		return 0, err
	}
	return len(rows), nil
}

type teamGameStatsRowModel struct {
	GameID             int64          `db:"game_id"`
	TeamID             int64          `db:"team_id"`
	FastBreakPoints    sql.NullInt64  `db:"fast_break_points"`
	PointsInPaint      sql.NullInt64  `db:"points_in_paint"`
	BiggestLead        sql.NullInt64  `db:"biggest_lead"`
	SecondChancePoints sql.NullInt64  `db:"second_chance_points"`
	PointsOffTurnovers sql.NullInt64  `db:"points_off_turnovers"`
	LongestRun         sql.NullInt64  `db:"longest_run"`
	Points             sql.NullInt64  `db:"points"`
	FGM                sql.NullInt64  `db:"fgm"`
	FGA                sql.NullInt64  `db:"fga"`
	FGP                sql.NullString `db:"fgp"`
	FTM                sql.NullInt64  `db:"ftm"`
	FTA                sql.NullInt64  `db:"fta"`
	FTP                sql.NullString `db:"ftp"`
	TPM                sql.NullInt64  `db:"tpm"`
	TPA                sql.NullInt64  `db:"tpa"`
	TPP                sql.NullString `db:"tpp"`
	OffReb             sql.NullInt64  `db:"off_reb"`
	DefReb             sql.NullInt64  `db:"def_reb"`
	TotReb             sql.NullInt64  `db:"tot_reb"`
	Assists            sql.NullInt64  `db:"assists"`
	PFouls             sql.NullInt64  `db:"p_fouls"`
	Steals             sql.NullInt64  `db:"steals"`
	Turnovers          sql.NullInt64  `db:"turnovers"`
	Blocks             sql.NullInt64  `db:"blocks"`
	PlusMinus          sql.NullString `db:"plus_minus"`
	PayloadHash        string         `db:"payload_hash"`
	IsActive           bool           `db:"is_active"`
	IngestedAt         time.Time      `db:"ingested_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type teamSeasonStatsRowModel struct {
	TeamID             int64          `db:"team_id"`
	Season             int            `db:"season"`
	Games              sql.NullInt64  `db:"games"`
	FastBreakPoints    sql.NullInt64  `db:"fast_break_points"`
	PointsInPaint      sql.NullInt64  `db:"points_in_paint"`
	BiggestLead        sql.NullInt64  `db:"biggest_lead"`
	SecondChancePoints sql.NullInt64  `db:"second_chance_points"`
	PointsOffTurnovers sql.NullInt64  `db:"points_off_turnovers"`
	LongestRun         sql.NullInt64  `db:"longest_run"`
	Points             sql.NullInt64  `db:"points"`
	FGM                sql.NullInt64  `db:"fgm"`
	FGA                sql.NullInt64  `db:"fga"`
	FGP                sql.NullString `db:"fgp"`
	FTM                sql.NullInt64  `db:"ftm"`
	FTA                sql.NullInt64  `db:"fta"`
	FTP                sql.NullString `db:"ftp"`
	TPM                sql.NullInt64  `db:"tpm"`
	TPA                sql.NullInt64  `db:"tpa"`
	TPP                sql.NullString `db:"tpp"`
	OffReb             sql.NullInt64  `db:"off_reb"`
	DefReb             sql.NullInt64  `db:"def_reb"`
	TotReb             sql.NullInt64  `db:"tot_reb"`
	Assists            sql.NullInt64  `db:"assists"`
	PFouls             sql.NullInt64  `db:"p_fouls"`
	Steals             sql.NullInt64  `db:"steals"`
	Turnovers          sql.NullInt64  `db:"turnovers"`
	Blocks             sql.NullInt64  `db:"blocks"`
	PlusMinus          sql.NullString `db:"plus_minus"`
	PayloadHash        string         `db:"payload_hash"`
	IsActive           bool           `db:"is_active"`
	IngestedAt         time.Time      `db:"ingested_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}
