package user

import (
	"context"
	"time"
)

// Repository describes user persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, userID int64) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByCPF(ctx context.Context, cpf string) (User, bool, error)
	GetByVerificationToken(ctx context.Context, token string) (User, bool, error)
	GetByPasswordResetToken(ctx context.Context, token string) (User, bool, error)
	// MarkVerified activates the account and clears the verification token.
	MarkVerified(ctx context.Context, userID int64) error
	SetVerificationToken(ctx context.Context, userID int64, token string, sentAt time.Time) error
	SetPasswordResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	// UpdatePassword replaces the password hash and clears any pending reset
	// token.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	List(ctx context.Context) ([]User, error)
}
