package team

// Team is one franchise or special roster (all-star squads included) as
// reported by the provider.
type Team struct {
	SourceID       int64
	Name           string
	Nickname       *string
	Code           *string
	City           *string
	LogoURL        *string
	IsNBAFranchise bool
	IsAllStar      bool
	PayloadHash    string
	IsActive       bool
}

// TeamLeague links a team to one of the provider leagues it appears in,
// keyed by the team's source id plus the league name.
type TeamLeague struct {
	TeamID      int64
	LeagueName  string
	Conference  *string
	Division    *string
	PayloadHash string
	IsActive    bool
}

// Seed identifies a persisted team used to drive dependent ingestion runs.
type Seed struct {
	SourceID int64
	Name     string
}
