package game

import (
	"strings"
	"time"
)

// Game is a single scheduled or played game as reported by the provider.
// HomeTeamID and VisitorTeamID are provider team ids.
type Game struct {
	SourceID      int64
	League        string
	Season        int
	GameDate      time.Time
	Status        string
	HomeTeamID    int64
	VisitorTeamID int64
	HomeScore     *int
	VisitorScore  *int
	ArenaName     *string
	ArenaCity     *string
	PayloadHash   string
	IsActive      bool
}

// IsFinishedStatus reports whether box-score statistics exist for a game in
// the given provider status.
func IsFinishedStatus(status string) bool {
	switch strings.TrimSpace(status) {
	case "Finished", "Completed", "FT":
		return true
	default:
		return false
	}
}
