// Package token issues and verifies the signed JWTs used for API access,
// email verification and password resets.
package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/courtside/nba-stats-api/internal/domain/user"
	"github.com/courtside/nba-stats-api/internal/usecase"
)

// Token purposes. A token minted for one purpose is rejected everywhere else.
const (
	PurposeAccess       = "access"
	PurposeVerification = "email_verification"
	PurposeReset        = "password_reset"
)

// Claims carried by every issued token.
type Claims struct {
	Purpose string `json:"purpose"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and parses HS256 tokens.
type Manager struct {
	secret          []byte
	issuer          string
	accessTTL       time.Duration
	verificationTTL time.Duration
	resetTTL        time.Duration
	now             func() time.Time
}

type ManagerConfig struct {
	Secret          string
	Issuer          string
	AccessTTL       time.Duration
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.Secret),
		issuer:          cfg.Issuer,
		accessTTL:       cfg.AccessTTL,
		verificationTTL: cfg.VerificationTTL,
		resetTTL:        cfg.ResetTTL,
		now:             time.Now,
	}
}

func (m *Manager) IssueAccessToken(u user.User) (string, time.Time, error) {
	expiresAt := m.now().UTC().Add(m.accessTTL)
	signed, err := m.sign(Claims{
		Purpose: PurposeAccess,
		Email:   u.Email,
		Role:    u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(m.now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *Manager) IssueVerificationToken(userID int64, email string) (string, error) {
	return m.sign(Claims{
		Purpose: PurposeVerification,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(m.now().UTC()),
			ExpiresAt: jwt.NewNumericDate(m.now().UTC().Add(m.verificationTTL)),
		},
	})
}

func (m *Manager) IssueResetToken(userID int64, email string) (string, error) {
	return m.sign(Claims{
		Purpose: PurposeReset,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(m.now().UTC()),
			ExpiresAt: jwt.NewNumericDate(m.now().UTC().Add(m.resetTTL)),
		},
	})
}

func (m *Manager) sign(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken adapts access token parsing to the HTTP middleware
// contract.
func (m *Manager) VerifyAccessToken(_ context.Context, raw string) (user.Principal, error) {
	userID, claims, err := m.ParseAccessToken(raw)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}
	return user.Principal{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// ParseAccessToken verifies an access token and returns the account id with
// the claims baked into it.
func (m *Manager) ParseAccessToken(raw string) (int64, Claims, error) {
	claims, err := m.parse(raw, PurposeAccess)
	if err != nil {
		return 0, Claims{}, err
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, Claims{}, fmt.Errorf("invalid token subject %q: %w", claims.Subject, err)
	}
	return userID, claims, nil
}

func (m *Manager) parse(raw, purpose string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.Purpose != purpose {
		return Claims{}, fmt.Errorf("token purpose %q is not %q", claims.Purpose, purpose)
	}
	return claims, nil
}
