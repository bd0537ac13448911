package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /api/v1/verify", handler.Ready)
	mux.HandleFunc("GET /api/v1/verify/ping", handler.Ping)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/v1/auth/sign-up", handler.SignUp)
	mux.HandleFunc("POST /api/v1/auth/login", handler.Login)
	mux.HandleFunc("POST /api/v1/auth/resend-verification", handler.ResendVerification)
	mux.HandleFunc("POST /api/v1/auth/password-reset/request", handler.RequestPasswordReset)
	mux.HandleFunc("POST /api/v1/auth/password-reset/confirm", handler.ConfirmPasswordReset)
	mux.HandleFunc("GET /api/v1/verify/{token}", handler.VerifyEmail)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /api/v1/users/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("GET /api/v1/users", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.ListUsers))))
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /api/v1/seasons", RequireAuth(verifier, http.HandlerFunc(handler.ListSeasons)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("POST /api/v1/admin/run/initial-load", admin(handler.RunInitialLoad))
	mux.Handle("POST /api/v1/admin/run/player-load", admin(handler.RunPlayerLoad))
	mux.Handle("POST /api/v1/admin/run/historical-load", admin(handler.RunHistoricalLoad))
	mux.Handle("POST /api/v1/admin/run/daily-update", admin(handler.RunDailyUpdate))
}
