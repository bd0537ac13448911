package httpapi

import (
	"fmt"
	"net/http"

	"github.com/courtside/nba-stats-api/internal/usecase"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	profile, err := h.userService.GetProfile(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(profile))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	requester, err := h.userService.GetProfile(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list users failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	accounts, err := h.userService.ListUsers(ctx, requester)
	if err != nil {
		h.logger.WarnContext(ctx, "list users failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userDTO, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, userToDTO(account))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
