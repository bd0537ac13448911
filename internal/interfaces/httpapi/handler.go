package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/courtside/nba-stats-api/internal/domain/user"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
	"github.com/courtside/nba-stats-api/internal/usecase"
)

// DBPinger reports database reachability for the readiness endpoint.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	authService      *usecase.AuthService
	userService      *usecase.UserService
	taskService      *usecase.TaskService
	ingestionService *usecase.IngestionService
	db               DBPinger
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	userService *usecase.UserService,
	taskService *usecase.TaskService,
	ingestionService *usecase.IngestionService,
	db DBPinger,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:      authService,
		userService:      userService,
		taskService:      taskService,
		ingestionService: ingestionService,
		db:               db,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Ping")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "pong"})
}

// Ready checks database reachability.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Ready")
	defer span.End()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.ErrorContext(ctx, "database ping failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: database unreachable", usecase.ErrDependencyUnavailable))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type userDTO struct {
	ID          int64   `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	CPF         string  `json:"cpf"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
	IsVerified  bool    `json:"is_verified"`
	CreatedAt   string  `json:"created_at"`
}

func userToDTO(u user.User) userDTO {
	dto := userDTO{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		CPF:        u.CPF,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.DateOfBirth != nil {
		birth := u.DateOfBirth.Format("2006-01-02")
		dto.DateOfBirth = &birth
	}
	return dto
}

type sessionDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresAt   string  `json:"expires_at"`
	User        userDTO `json:"user"`
}

func sessionToDTO(s usecase.Session) sessionDTO {
	return sessionDTO{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresAt:   s.ExpiresAt.UTC().Format(time.RFC3339),
		User:        userToDTO(s.User),
	}
}
