package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"soptcli/internal/batch"
	apierrors "soptcli/internal/errors"
	"soptcli/internal/middleware"
)

// BatchHandler handles batch analytics HTTP requests with RFC 7807 errors.
type BatchHandler struct {
	service      BatchServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(service BatchServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *BatchHandler {
	return &BatchHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "batch_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the batch routes.
func (h *BatchHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/batches", h.ListBatches)
	r.Get("/variables", h.ListVariables)

	r.Route("/batches/{batchID}", func(r chi.Router) {
		r.Use(h.BatchCtx)
		r.Get("/summary", h.GetSummary)
		r.Get("/series/{variable}", h.GetSeries)
	})

	return r
}

// BatchCtx middleware validates the batch identifier parameter.
func (h *BatchHandler) BatchCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		batchID := chi.URLParam(r, "batchID")
		if batchID == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("batch_id", "Batch identifier is required"))
			return
		}
		if len(batchID) > 64 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("batch_id", "Batch identifier too long"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListBatches handles GET /api/batches
func (h *BatchHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	h.logger.InfoContext(r.Context(), "listing batches",
		slog.String("request_id", reqID))

	ids := h.service.BatchIDs(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   ids,
		"count":  len(ids),
	})
}

// ListVariables handles GET /api/variables
func (h *BatchHandler) ListVariables(w http.ResponseWriter, r *http.Request) {
	variables := h.service.Variables()

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   variables,
		"count":  len(variables),
	})
}

// GetSummary handles GET /api/batches/{batchID}/summary
func (h *BatchHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	batchID := chi.URLParam(r, "batchID")

	h.logger.InfoContext(r.Context(), "summarizing batch",
		slog.String("request_id", reqID),
		slog.String("batch_id", batchID))

	summary, err := h.service.Summary(r.Context(), batchID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to summarize batch",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("batch_id", batchID))

		if errors.Is(err, batch.ErrBatchNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.BatchNotFoundError(batchID))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetSeries handles GET /api/batches/{batchID}/series/{variable}
func (h *BatchHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	batchID := chi.URLParam(r, "batchID")
	variable := chi.URLParam(r, "variable")

	h.logger.InfoContext(r.Context(), "fetching series",
		slog.String("request_id", reqID),
		slog.String("batch_id", batchID),
		slog.String("variable", variable))

	points, err := h.service.Series(r.Context(), batchID, variable)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch series",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("batch_id", batchID),
			slog.String("variable", variable))

		if errors.Is(err, batch.ErrUnknownVariable) {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest,
				"UNKNOWN_VARIABLE",
				fmt.Sprintf("Unknown process variable '%s'", variable),
				map[string]interface{}{"variable": variable},
			))
			return
		}
		if errors.Is(err, batch.ErrBatchNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.BatchNotFoundError(batchID))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"data":     points,
		"count":    len(points),
		"batch_id": batchID,
		"variable": variable,
	})
}
