package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/nba-stats-api/internal/domain/season"
	"github.com/courtside/nba-stats-api/internal/domain/user"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
	"github.com/courtside/nba-stats-api/internal/usecase"
)

type stubSeasonRepo struct {
	years []int
}

func (s *stubSeasonRepo) UpsertBulk(_ context.Context, rows []season.Season) (int, error) {
	return len(rows), nil
}

func (s *stubSeasonRepo) List(context.Context) ([]int, error) {
	return s.years, nil
}

func newSeasonsRouter(t *testing.T, years []int) http.Handler {
	t.Helper()

	ingestionSvc := usecase.NewIngestionService(usecase.IngestionServiceConfig{
		Seasons: &stubSeasonRepo{years: years},
		Logger:  logging.NewNop(),
	})
	verifier := &fakeVerifier{principals: map[string]user.Principal{
		"user-token": {UserID: 1, Email: "fan@example.com", Role: user.RoleUser},
	}}
	handler := NewHandler(nil, nil, nil, ingestionSvc, nil, logging.NewNop())
	return NewRouter(handler, verifier, logging.NewNop(), nil)
}

func TestListSeasons(t *testing.T) {
	router := newSeasonsRouter(t, []int{2021, 2022, 2023})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data seasonListDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if len(body.Data.Seasons) != 3 || body.Data.Seasons[0] != 2021 {
		t.Fatalf("unexpected seasons payload: %v", body.Data.Seasons)
	}
}

func TestListSeasons_RequiresToken(t *testing.T) {
	router := newSeasonsRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestListSeasons_EmptyCatalog(t *testing.T) {
	router := newSeasonsRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data seasonListDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Data.Seasons == nil || len(body.Data.Seasons) != 0 {
		t.Fatalf("expected an empty seasons array, got %v", body.Data.Seasons)
	}
}
