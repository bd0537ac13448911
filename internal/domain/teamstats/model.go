package teamstats

// GameStats is one team's box score for a single game. GameID and TeamID are
// provider ids.
type GameStats struct {
	GameID             int64
	TeamID             int64
	FastBreakPoints    *int
	PointsInPaint      *int
	BiggestLead        *int
	SecondChancePoints *int
	PointsOffTurnovers *int
	LongestRun         *int
	Points             *int
	FGM                *int
	FGA                *int
	FGP                *string
	FTM                *int
	FTA                *int
	FTP                *string
	TPM                *int
	TPA                *int
	TPP                *string
	OffReb             *int
	DefReb             *int
	TotReb             *int
	Assists            *int
	PFouls             *int
	Steals             *int
	Turnovers          *int
	Blocks             *int
	PlusMinus          *string
	PayloadHash        string
	IsActive           bool
}

// SeasonStats aggregates one team's totals for a whole season.
type SeasonStats struct {
	TeamID             int64
	Season             int
	Games              *int
	FastBreakPoints    *int
	PointsInPaint      *int
	BiggestLead        *int
	SecondChancePoints *int
	PointsOffTurnovers *int
	LongestRun         *int
	Points             *int
	FGM                *int
	FGA                *int
	FGP                *string
	FTM                *int
	FTA                *int
	FTP                *string
	TPM                *int
	TPA                *int
	TPP                *string
	OffReb             *int
	DefReb             *int
	TotReb             *int
	Assists            *int
	PFouls             *int
	Steals             *int
	Turnovers          *int
	Blocks             *int
	PlusMinus          *string
	PayloadHash        string
	IsActive           bool
}
