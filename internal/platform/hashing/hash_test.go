package hashing

import "testing"

func TestPayload_KeyOrderIndependent(t *testing.T) {
	a := map[string]any{
		"id":   int64(134),
		"name": "Boston Celtics",
		"meta": map[string]any{"city": "Boston", "code": "BOS"},
	}
	b := map[string]any{
		"meta": map[string]any{"code": "BOS", "city": "Boston"},
		"name": "Boston Celtics",
		"id":   int64(134),
	}

	hashA, err := Payload(a)
	if err != nil {
		t.Fatalf("Payload(a): %v", err)
	}
	hashB, err := Payload(b)
	if err != nil {
		t.Fatalf("Payload(b): %v", err)
	}

	if hashA != hashB {
		t.Fatalf("hashes differ for same payload: %s vs %s", hashA, hashB)
	}
	if len(hashA) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(hashA))
	}
}

func TestPayload_DifferentValuesDiffer(t *testing.T) {
	base := map[string]any{"id": int64(1), "points": int64(110)}
	changed := map[string]any{"id": int64(1), "points": int64(112)}

	hashBase, err := Payload(base)
	if err != nil {
		t.Fatalf("Payload(base): %v", err)
	}
	hashChanged, err := Payload(changed)
	if err != nil {
		t.Fatalf("Payload(changed): %v", err)
	}

	if hashBase == hashChanged {
		t.Fatalf("expected different hashes for different payloads")
	}
}

func TestPayload_NilAndEmptyStable(t *testing.T) {
	empty, err := Payload(map[string]any{})
	if err != nil {
		t.Fatalf("Payload(empty): %v", err)
	}
	again, err := Payload(map[string]any{})
	if err != nil {
		t.Fatalf("Payload(empty) second call: %v", err)
	}
	if empty != again {
		t.Fatalf("empty payload hash not stable")
	}
}
