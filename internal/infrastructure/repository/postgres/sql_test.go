package postgres

import (
	"database/sql"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(fakeErr("pq: relation teams does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableString(t *testing.T) {
	if got := nullableString(nil); got.Valid {
		t.Fatalf("expected invalid NullString for nil input")
	}

	value := "BOS"
	got := nullableString(&value)
	if !got.Valid || got.String != "BOS" {
		t.Fatalf("unexpected NullString %+v", got)
	}
}

func TestHashGuard(t *testing.T) {
	want := "teams.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash"
	if got := hashGuard("teams"); got != want {
		t.Fatalf("hashGuard = %q, want %q", got, want)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
