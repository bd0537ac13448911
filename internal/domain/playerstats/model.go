package playerstats

// GameStats is one player's box score for a single game. PlayerID, GameID
// and TeamID are provider ids.
type GameStats struct {
	PlayerID    int64
	GameID      int64
	TeamID      *int64
	Points      *int
	Position    *string
	Minutes     *string
	FGM         *int
	FGA         *int
	FGP         *string
	FTM         *int
	FTA         *int
	FTP         *string
	TPM         *int
	TPA         *int
	TPP         *string
	OffReb      *int
	DefReb      *int
	TotReb      *int
	Assists     *int
	PFouls      *int
	Steals      *int
	Turnovers   *int
	Blocks      *int
	PlusMinus   *string
	Comment     *string
	PayloadHash string
	IsActive    bool
}
