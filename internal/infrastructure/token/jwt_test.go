package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/courtside/nba-stats-api/internal/domain/user"
)

func newTestManager() *Manager {
	m := NewManager(ManagerConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		Issuer:          "nba-stats-api",
		AccessTTL:       time.Hour,
		VerificationTTL: 24 * time.Hour,
		ResetTTL:        3 * time.Hour,
	})
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	return m
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	signed, expiresAt, err := m.IssueAccessToken(user.User{ID: 42, Email: "ana@example.com", Role: user.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, m.now().Add(time.Hour), expiresAt)

	userID, claims, err := m.ParseAccessToken(signed)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
	require.Equal(t, "ana@example.com", claims.Email)
	require.Equal(t, user.RoleAdmin, claims.Role)
}

func TestParseAccessToken_RejectsExpired(t *testing.T) {
	m := newTestManager()
	signed, _, err := m.IssueAccessToken(user.User{ID: 1, Email: "a@b.c", Role: user.RoleUser})
	require.NoError(t, err)

	issued := m.now()
	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, _, err = m.ParseAccessToken(signed)
	require.Error(t, err)
}

func TestParseAccessToken_RejectsOtherPurposes(t *testing.T) {
	m := newTestManager()
	signed, err := m.IssueResetToken(7, "a@b.c")
	require.NoError(t, err)

	_, _, err = m.ParseAccessToken(signed)
	require.Error(t, err)
}

func TestParseAccessToken_RejectsForeignSignature(t *testing.T) {
	m := newTestManager()
	other := newTestManager()
	other.secret = []byte("ffffffffffffffffffffffffffffffff")

	signed, _, err := other.IssueAccessToken(user.User{ID: 1, Email: "a@b.c", Role: user.RoleUser})
	require.NoError(t, err)

	_, _, err = m.ParseAccessToken(signed)
	require.Error(t, err)
}
