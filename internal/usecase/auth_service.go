package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/courtside/nba-stats-api/internal/domain/user"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
)

const minPasswordLength = 8

// TokenManager issues the signed tokens the auth flows hand out.
type TokenManager interface {
	IssueAccessToken(u user.User) (token string, expiresAt time.Time, err error)
	IssueVerificationToken(userID int64, email string) (string, error)
	IssueResetToken(userID int64, email string) (string, error)
}

// Mailer delivers transactional account emails.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
}

type SignUpInput struct {
	FullName    string
	Email       string
	CPF         string
	DateOfBirth *time.Time
	Password    string
}

// Session is an issued login.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        user.User
}

type AuthService struct {
	users  user.Repository
	tokens TokenManager
	mailer Mailer
	logger *logging.Logger

	verificationTTL time.Duration
	resetTTL        time.Duration
	now             func() time.Time
	// background runs email delivery off the request path.
	background func(fn func())
}

type AuthServiceConfig struct {
	Users           user.Repository
	Tokens          TokenManager
	Mailer          Mailer
	Logger          *logging.Logger
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

func NewAuthService(cfg AuthServiceConfig) *AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 3 * time.Hour
	}

	return &AuthService{
		users:           cfg.Users,
		tokens:          cfg.Tokens,
		mailer:          cfg.Mailer,
		logger:          logger,
		verificationTTL: cfg.VerificationTTL,
		resetTTL:        cfg.ResetTTL,
		now:             time.Now,
		background:      func(fn func()) { go fn() },
	}
}

// SignUp registers a new unverified account and emails the verification link.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.SignUp")
	defer span.End()

	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.CPF = strings.TrimSpace(input.CPF)

	if input.FullName == "" {
		return user.User{}, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.CPF == "" {
		return user.User{}, fmt.Errorf("%w: cpf is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return user.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, exists, err := s.users.GetByEmail(ctx, input.Email); err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: email is already registered", ErrConflict)
	}
	if _, exists, err := s.users.GetByCPF(ctx, input.CPF); err != nil {
		return user.User{}, fmt.Errorf("get user by cpf: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: cpf is already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		FullName:     input.FullName,
		Email:        input.Email,
		CPF:          input.CPF,
		DateOfBirth:  input.DateOfBirth,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		IsActive:     true,
		IsVerified:   false,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendVerification(ctx, created); err != nil {
		// The account exists either way; verification can be resent.
		s.logger.ErrorContext(ctx, "sending verification email failed",
			"user_id", created.ID, "error", err)
	}

	return created, nil
}

// Login checks credentials and issues an access token. Unverified and
// deactivated accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return Session{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Session{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !account.IsActive {
		return Session{}, fmt.Errorf("%w: account is deactivated", ErrForbidden)
	}
	if !account.IsVerified {
		return Session{}, fmt.Errorf("%w: email is not verified", ErrForbidden)
	}

	token, expiresAt, err := s.tokens.IssueAccessToken(account)
	if err != nil {
		return Session{}, fmt.Errorf("issue access token: %w", err)
	}

	return Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        account,
	}, nil
}

// VerifyEmail redeems a verification token and activates the account.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.VerifyEmail")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.User{}, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	account, exists, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by verification token: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: verification token is invalid", ErrNotFound)
	}
	if account.EmailVerificationSentAt == nil ||
		s.now().After(account.EmailVerificationSentAt.Add(s.verificationTTL)) {
		return user.User{}, fmt.Errorf("%w: verification token expired", ErrUnauthorized)
	}

	if err := s.users.MarkVerified(ctx, account.ID); err != nil {
		return user.User{}, fmt.Errorf("mark user verified: %w", err)
	}

	account.IsVerified = true
	account.IsActive = true
	account.EmailVerificationToken = nil
	return account, nil
}

// ResendVerification issues a fresh verification token for an unverified
// account.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	ctx, span := startUsecaseSpan(ctx, "AuthService.ResendVerification")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	account, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: account not found", ErrNotFound)
	}
	if account.IsVerified {
		return fmt.Errorf("%w: email is already verified", ErrConflict)
	}

	return s.sendVerification(ctx, account)
}

// RequestPasswordReset stores a reset token and emails the reset link. An
// unknown email is not an error, so the endpoint cannot be used to probe for
// accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, span := startUsecaseSpan(ctx, "AuthService.RequestPasswordReset")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	account, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		s.logger.InfoContext(ctx, "password reset requested for unknown email")
		return nil
	}

	token, err := s.tokens.IssueResetToken(account.ID, account.Email)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	expiresAt := s.now().UTC().Add(s.resetTTL)
	if err := s.users.SetPasswordResetToken(ctx, account.ID, token, expiresAt); err != nil {
		return fmt.Errorf("set password reset token: %w", err)
	}

	s.deliver(ctx, "password reset", account.ID, func(ctx context.Context) error {
		return s.mailer.SendPasswordResetEmail(ctx, account.Email, account.FullName, token)
	})
	return nil
}

// ConfirmPasswordReset redeems a reset token and replaces the password. The
// token is single use: storing the new password clears it.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	ctx, span := startUsecaseSpan(ctx, "AuthService.ConfirmPasswordReset")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	account, exists, err := s.users.GetByPasswordResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("get user by reset token: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: reset token is invalid", ErrUnauthorized)
	}
	if account.PasswordResetTokenExpiry == nil || s.now().After(*account.PasswordResetTokenExpiry) {
		return fmt.Errorf("%w: reset token expired", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *AuthService) sendVerification(ctx context.Context, account user.User) error {
	token, err := s.tokens.IssueVerificationToken(account.ID, account.Email)
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}
	if err := s.users.SetVerificationToken(ctx, account.ID, token, s.now().UTC()); err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}

	s.deliver(ctx, "verification", account.ID, func(ctx context.Context) error {
		return s.mailer.SendVerificationEmail(ctx, account.Email, account.FullName, token)
	})
	return nil
}

func (s *AuthService) deliver(ctx context.Context, kind string, userID int64, send func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	s.background(func() {
		if err := send(detached); err != nil {
			s.logger.ErrorContext(detached, "sending account email failed",
				"kind", kind, "user_id", userID, "error", err)
		}
	})
}
