package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/user"
	qb "github.com/courtside/nba-stats-api/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	model := userInsertModel{
		FullName:                u.FullName,
		Email:                   u.Email,
		CPF:                     u.CPF,
		DateOfBirth:             u.DateOfBirth,
		PasswordHash:            u.PasswordHash,
		Role:                    u.Role,
		IsActive:                u.IsActive,
		IsVerified:              u.IsVerified,
		EmailVerificationToken:  nullableString(u.EmailVerificationToken),
		EmailVerificationSentAt: u.EmailVerificationSentAt,
	}

	query, args, err := qb.InsertModel("users", model, "RETURNING id, created_at, updated_at")
	if err != nil {
		return user.User{}, fmt.Errorf("build insert user query: %w", err)
	}

	var returned struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.GetContext(ctx, &returned, query, args...); err != nil {
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}

	u.ID = returned.ID
	u.CreatedAt = returned.CreatedAt
	u.UpdatedAt = returned.UpdatedAt
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("id", userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("email", email))
}

func (r *UserRepository) GetByCPF(ctx context.Context, cpf string) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("cpf", cpf))
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("email_verification_token", token))
}

func (r *UserRepository) GetByPasswordResetToken(ctx context.Context, token string) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("password_reset_token", token))
}

func (r *UserRepository) getOne(ctx context.Context, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("select user: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, userID int64) error {
	query, args, err := qb.Update("users").
		Set("is_verified", true).
		Set("is_active", true).
		SetExpr("email_verification_token", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark user verified query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	return nil
}

func (r *UserRepository) SetVerificationToken(ctx context.Context, userID int64, token string, sentAt time.Time) error {
	query, args, err := qb.Update("users").
		Set("email_verification_token", token).
		Set("email_verification_sent_at", sentAt).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set verification token query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}
	return nil
}

func (r *UserRepository) SetPasswordResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query, args, err := qb.Update("users").
		Set("password_reset_token", token).
		Set("password_reset_token_expiry", expiresAt).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set password reset token query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set password reset token: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query, args, err := qb.Update("users").
		Set("password_hash", passwordHash).
		SetExpr("password_reset_token", "NULL").
		SetExpr("password_reset_token_expiry", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update password query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type userInsertModel struct {
	FullName                string         `db:"full_name"`
	Email                   string         `db:"email"`
	CPF                     string         `db:"cpf"`
	DateOfBirth             *time.Time     `db:"date_of_birth"`
	PasswordHash            string         `db:"password_hash"`
	Role                    string         `db:"role"`
	IsActive                bool           `db:"is_active"`
	IsVerified              bool           `db:"is_verified"`
	EmailVerificationToken  sql.NullString `db:"email_verification_token"`
	EmailVerificationSentAt *time.Time     `db:"email_verification_sent_at"`
}

type userTableModel struct {
	ID                       int64          `db:"id"`
	FullName                 string         `db:"full_name"`
	Email                    string         `db:"email"`
	CPF                      string         `db:"cpf"`
	DateOfBirth              *time.Time     `db:"date_of_birth"`
	PasswordHash             string         `db:"password_hash"`
	Role                     string         `db:"role"`
	IsActive                 bool           `db:"is_active"`
	IsVerified               bool           `db:"is_verified"`
	EmailVerificationToken   sql.NullString `db:"email_verification_token"`
	EmailVerificationSentAt  *time.Time     `db:"email_verification_sent_at"`
	PasswordResetToken       sql.NullString `db:"password_reset_token"`
	PasswordResetTokenExpiry *time.Time     `db:"password_reset_token_expiry"`
	CreatedAt                time.Time      `db:"created_at"`
	UpdatedAt                time.Time      `db:"updated_at"`
}

func (m userTableModel) toDomain() user.User {
	out := user.User{
		ID:                      m.ID,
		FullName:                m.FullName,
		Email:                   m.Email,
		CPF:                     m.CPF,
		DateOfBirth:             m.DateOfBirth,
		PasswordHash:            m.PasswordHash,
		Role:                    m.Role,
		IsActive:                m.IsActive,
		IsVerified:              m.IsVerified,
		EmailVerificationSentAt: m.EmailVerificationSentAt,
		PasswordResetTokenExpiry: m.PasswordResetTokenExpiry,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
	if m.EmailVerificationToken.Valid {
		token := m.EmailVerificationToken.String
		out.EmailVerificationToken = &token
	}
	if m.PasswordResetToken.Valid {
		token := m.PasswordResetToken.String
		out.PasswordResetToken = &token
	}
	return out
}
