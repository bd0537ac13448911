// Package hashing fingerprints provider payloads so unchanged records can be
// detected across ingestion runs.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bytedance/sonic"
)

var canonicalJSON = sonic.Config{
	SortMapKeys: true,
}.Froze()

// Payload returns the hex-encoded SHA-256 of the canonical JSON form of
// payload. Canonical form sorts object keys and uses compact separators, so
// two payloads that differ only in key order hash identically.
func Payload(payload map[string]any) (string, error) {
	raw, err := canonicalJSON.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload for hashing: %w", err)
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
