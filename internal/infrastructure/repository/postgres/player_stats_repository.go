package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) UpsertBulk(ctx context.Context, stats []playerstats.GameStats) (int, error) {
	if len(stats) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]playerGameStatsRowModel, 0, len(stats))
	for _, item := range stats {
		rows = append(rows, playerGameStatsRowModel{
			PlayerID:    item.PlayerID,
			GameID:      item.GameID,
			TeamID:      nullableInt64(item.TeamID),
			Points:      nullableInt(item.Points),
			Position:    nullableString(item.Position),
			Minutes:     nullableString(item.Minutes),
			FGM:         nullableInt(item.FGM),
			FGA:         nullableInt(item.FGA),
			FGP:         nullableString(item.FGP),
			FTM:         nullableInt(item.FTM),
			FTA:         nullableInt(item.FTA),
			FTP:         nullableString(item.FTP),
			TPM:         nullableInt(item.TPM),
			TPA:         nullableInt(item.TPA),
			TPP:         nullableString(item.TPP),
			OffReb:      nullableInt(item.OffReb),
			DefReb:      nullableInt(item.DefReb),
			TotReb:      nullableInt(item.TotReb),
			Assists:     nullableInt(item.Assists),
			PFouls:      nullableInt(item.PFouls),
			Steals:      nullableInt(item.Steals),
			Turnovers:   nullableInt(item.Turnovers),
			Blocks:      nullableInt(item.Blocks),
			PlusMinus:   nullableString(item.PlusMinus),
			Comment:     nullableString(item.Comment),
			PayloadHash: item.PayloadHash,
			IsActive:    item.IsActive,
			IngestedAt:  now,
			UpdatedAt:   now,
		})
	}

	if err := upsertBulk(ctx, r.db, "player_statistics", rows, []string{"player_id", "game_id"}, hashGuard("player_statistics")); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func nullableInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

type playerGameStatsRowModel struct {
	PlayerID    int64          `db:"player_id"`
	GameID      int64          `db:"game_id"`
	TeamID      sql.NullInt64  `db:"team_id"`
	Points      sql.NullInt64  `db:"points"`
	Position    sql.NullString `db:"position"`
	Minutes     sql.NullString `db:"minutes"`
	FGM         sql.NullInt64  `db:"fgm"`
	FGA         sql.NullInt64  `db:"fga"`
	FGP         sql.NullString `db:"fgp"`
	FTM         sql.NullInt64  `db:"ftm"`
	FTA         sql.NullInt64  `db:"fta"`
	FTP         sql.NullString `db:"ftp"`
	TPM         sql.NullInt64  `db:"tpm"`
	TPA         sql.NullInt64  `db:"tpa"`
	TPP         sql.NullString `db:"tpp"`
	OffReb      sql.NullInt64  `db:"off_reb"`
	DefReb      sql.NullInt64  `db:"def_reb"`
	TotReb      sql.NullInt64  `db:"tot_reb"`
	Assists     sql.NullInt64  `db:"assists"`
	PFouls      sql.NullInt64  `db:"p_fouls"`
	Steals      sql.NullInt64  `db:"steals"`
	Turnovers   sql.NullInt64  `db:"turnovers"`
	Blocks      sql.NullInt64  `db:"blocks"`
	PlusMinus   sql.NullString `db:"plus_minus"`
	Comment     sql.NullString `db:"comment"`
	PayloadHash string         `db:"payload_hash"`
	IsActive    bool           `db:"is_active"`
	IngestedAt  time.Time      `db:"ingested_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
