package querybuilder

import "testing"

type upsertRowModel struct {
	SourceID    int64  `db:"source_id"`
	Name        string `db:"name"`
	PayloadHash string `db:"payload_hash"`
	CreatedAt   string `db:"created_at"`
}

func TestUpsertModels(t *testing.T) {
	rows := []upsertRowModel{
		{SourceID: 1, Name: "one", PayloadHash: "h1", CreatedAt: "now"},
		{SourceID: 2, Name: "two", PayloadHash: "h2", CreatedAt: "now"},
	}

	query, args, err := UpsertModels("teams", rows, []string{"source_id"}, "teams.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash")
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (source_id, name, payload_hash, created_at) VALUES ($1, $2, $3, $4), ($5, $6, $7, $8) " +
		"ON CONFLICT (source_id) DO UPDATE SET name = EXCLUDED.name, payload_hash = EXCLUDED.payload_hash " +
		"WHERE teams.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 8 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
	if args[0] != int64(1) || args[4] != int64(2) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsertModels_CompositeConflictTarget(t *testing.T) {
	type seasonStats struct {
		TeamID int64 `db:"team_id"`
		Season int   `db:"season"`
		Wins   int   `db:"wins"`
	}

	query, _, err := UpsertModels("team_season_statistics", []seasonStats{{TeamID: 7, Season: 2023, Wins: 50}}, []string{"team_id", "season"}, "")
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO team_season_statistics (team_id, season, wins) VALUES ($1, $2, $3) " +
		"ON CONFLICT (team_id, season) DO UPDATE SET wins = EXCLUDED.wins"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestUpsertModels_RejectsEmptyInput(t *testing.T) {
	if _, _, err := UpsertModels("teams", []upsertRowModel{}, []string{"source_id"}, ""); err == nil {
		t.Fatalf("expected error for empty model slice")
	}
}
