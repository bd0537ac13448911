package usecase

import (
	"context"
	"fmt"

	"github.com/courtside/nba-stats-api/internal/domain/user"
)

// UserService exposes the read-side account operations.
type UserService struct {
	users user.Repository
}

func NewUserService(users user.Repository) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the account identified by the access token.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.GetProfile")
	defer span.End()

	account, exists, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: account not found", ErrNotFound)
	}
	return account, nil
}

// ListUsers returns every account. Admin only.
func (s *UserService) ListUsers(ctx context.Context, requester user.User) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "UserService.ListUsers")
	defer span.End()

	if !requester.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	out, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}
