package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-dashboard/internal/usecase"
)

type Handler struct {
	tournamentService *usecase.TournamentService
	statisticsService *usecase.StatisticsService
	datasetService    *usecase.DatasetService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	statisticsService *usecase.StatisticsService,
	datasetService *usecase.DatasetService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		statisticsService: statisticsService,
		datasetService:    datasetService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// Healthz reports liveness plus whether a dataset is being served.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	out := healthDTO{Status: "ok"}
	if h.datasetService != nil {
		out.DatasetReady = h.datasetService.Ready()
		out.DatasetVersion = h.datasetService.Version()
	}
	if !out.DatasetReady {
		out.Status = "loading"
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadDataset")
	defer span.End()

	if h.datasetService == nil {
		writeError(ctx, w, fmt.Errorf("%w: dataset service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.datasetService.Reload(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "reload dataset failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reloadResultToDTO(result))
}
