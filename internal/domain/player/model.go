package player

import "time"

// Player is one athlete as reported by the provider.
type Player struct {
	SourceID        int64
	FirstName       string
	LastName        string
	BirthDate       *time.Time
	BirthCountry    *string
	NBAStartYear    *int
	YearsPro        *int
	HeightMeters    *string
	WeightKilograms *string
	College         *string
	Affiliation     *string
	PayloadHash     string
	IsActive        bool
}

// PlayerLeague links a player to one provider league, keyed by the player's
// source id plus the league name.
type PlayerLeague struct {
	PlayerID    int64
	LeagueName  string
	Jersey      *int
	Position    *string
	Active      bool
	PayloadHash string
	IsActive    bool
}

// Seed identifies a persisted player used to drive statistics ingestion.
type Seed struct {
	SourceID int64
}
