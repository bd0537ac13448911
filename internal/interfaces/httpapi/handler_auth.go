package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/nba-stats-api/internal/usecase"
)

type signUpRequest struct {
	FullName    string `json:"full_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	CPF         string `json:"cpf" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUp")
	defer span.End()

	var req signUpRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.SignUpInput{
		FullName: req.FullName,
		Email:    req.Email,
		CPF:      req.CPF,
		Password: req.Password,
	}
	if req.DateOfBirth != "" {
		birth, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid date_of_birth: %v", usecase.ErrInvalidInput, err))
			return
		}
		input.DateOfBirth = &birth
	}

	account, err := h.authService.SignUp(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "sign up failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(account))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(session))
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyEmail")
	defer span.End()

	token := strings.TrimSpace(r.PathValue("token"))
	if token == "" {
		writeError(ctx, w, fmt.Errorf("%w: verification token is required", usecase.ErrInvalidInput))
		return
	}

	account, err := h.authService.VerifyEmail(ctx, token)
	if err != nil {
		h.logger.WarnContext(ctx, "email verification failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(account))
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResendVerification")
	defer span.End()

	var req resendVerificationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.ResendVerification(ctx, req.Email); err != nil {
		h.logger.WarnContext(ctx, "resend verification failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "verification email sent"})
}

func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestPasswordReset")
	defer span.End()

	var req passwordResetRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.RequestPasswordReset(ctx, req.Email); err != nil {
		h.logger.WarnContext(ctx, "password reset request failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	// Same response whether or not the email exists.
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "if the account exists, a reset email was sent"})
}

func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmPasswordReset")
	defer span.End()

	var req passwordResetConfirmRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.ConfirmPasswordReset(ctx, req.Token, req.NewPassword); err != nil {
		h.logger.WarnContext(ctx, "password reset confirm failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "password updated"})
}
