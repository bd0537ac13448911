package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/nba-stats-api/internal/usecase"
)

type seasonListDTO struct {
	Seasons []int `json:"seasons"`
}

// ListSeasons returns the season start years the catalog load has ingested.
func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	years, err := h.ingestionService.ListSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "listing seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if years == nil {
		years = []int{}
	}

	writeSuccess(ctx, w, http.StatusOK, seasonListDTO{Seasons: years})
}

type taskDispatchDTO struct {
	Task   string `json:"task"`
	Status string `json:"status"`
	Season *int   `json:"season,omitempty"`
}

func (h *Handler) RunInitialLoad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunInitialLoad")
	defer span.End()

	if err := h.taskService.DispatchInitialLoad(ctx); err != nil {
		h.logger.ErrorContext(ctx, "dispatch initial load failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, taskDispatchDTO{
		Task:   usecase.TaskInitialLoad,
		Status: "dispatched",
	})
}

func (h *Handler) RunPlayerLoad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPlayerLoad")
	defer span.End()

	season, err := seasonFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.taskService.DispatchPlayerLoad(ctx, season); err != nil {
		h.logger.ErrorContext(ctx, "dispatch player load failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, taskDispatchDTO{
		Task:   usecase.TaskPlayerLoad,
		Status: "dispatched",
		Season: &season,
	})
}

func (h *Handler) RunHistoricalLoad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunHistoricalLoad")
	defer span.End()

	season, err := seasonFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.taskService.DispatchHistoricalLoad(ctx, season); err != nil {
		h.logger.ErrorContext(ctx, "dispatch historical load failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, taskDispatchDTO{
		Task:   usecase.TaskHistoricalLoad,
		Status: "dispatched",
		Season: &season,
	})
}

func (h *Handler) RunDailyUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDailyUpdate")
	defer span.End()

	if err := h.taskService.DispatchDailyUpdate(ctx); err != nil {
		h.logger.ErrorContext(ctx, "dispatch daily update failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, taskDispatchDTO{
		Task:   usecase.TaskDailyUpdate,
		Status: "dispatched",
	})
}

// seasonFromQuery reads the optional ?season=YYYY override, defaulting to the
// season currently in progress.
func seasonFromQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("season"))
	if raw == "" {
		return usecase.CurrentSeason(time.Now().UTC()), nil
	}

	season, err := strconv.Atoi(raw)
	if err != nil || season < 1946 || season > time.Now().UTC().Year()+1 {
		return 0, fmt.Errorf("%w: invalid season %q", usecase.ErrInvalidInput, raw)
	}
	return season, nil
}
