package user

import (
	"fmt"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Email and CPF are unique across accounts.
type User struct {
	ID                       int64
	FullName                 string
	Email                    string
	CPF                      string
	DateOfBirth              *time.Time
	PasswordHash             string
	Role                     string
	IsActive                 bool
	IsVerified               bool
	EmailVerificationToken   *string
	EmailVerificationSentAt  *time.Time
	PasswordResetToken       *string
	PasswordResetTokenExpiry *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.FullName) == "" {
		return fmt.Errorf("user full name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email is required")
	}
	if strings.TrimSpace(u.CPF) == "" {
		return fmt.Errorf("user cpf is required")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return fmt.Errorf("user role must be %q or %q", RoleUser, RoleAdmin)
	}

	return nil
}

// IsAdmin reports whether the account may trigger ingestion tasks.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
