package standing

// Standing is one team's position in a league season table. LeagueID and
// TeamID are provider ids; the row is keyed by (league, season, team).
type Standing struct {
	LeagueID            int64
	Season              int
	TeamID              int64
	ConferenceName      *string
	ConferenceRank      *int
	ConferenceWins      *int
	ConferenceLosses    *int
	DivisionName        *string
	DivisionRank        *int
	DivisionGamesBehind *string
	Wins                *int
	Losses              *int
	WinPercentage       *string
	GamesBehind         *string
	Streak              *int
	WinStreak           bool
	PayloadHash         string
	IsActive            bool
}
