package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shopez/internal/platform/middleware"
	dErrors "shopez/pkg/domain-errors"
	"shopez/pkg/platform/audit"
	"shopez/pkg/platform/httputil"
)

const defaultRecentLimit = 50

// Source reads recorded audit events.
type Source interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler exposes the audit trail for operational inspection.
type Handler struct {
	logger *slog.Logger
	events Source
}

func New(events Source, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, events: events}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/recent", h.handleListRecent)
}

type listRecentResponse struct {
	Events []audit.Event `json:"events"`
}

func (h *Handler) handleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.events.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list audit events"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, listRecentResponse{Events: events})
}
