package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shopez/internal/catalog"
	"shopez/internal/forms"
	"shopez/internal/platform/middleware"
	"shopez/internal/session/models"
	"shopez/internal/session/service"
	id "shopez/pkg/domain"
	dErrors "shopez/pkg/domain-errors"
	"shopez/pkg/platform/httputil"
)

// Service defines the session operations the HTTP layer depends on.
type Service interface {
	Open(ctx context.Context) (*models.Session, error)
	Snapshot(ctx context.Context, sid id.SessionID) (*service.Snapshot, error)
	Close(ctx context.Context, sid id.SessionID) error
	Logout(ctx context.Context, sid id.SessionID) (*models.Session, error)
	NavigateTo(ctx context.Context, sid id.SessionID, target models.View) (*models.Session, error)
	SubmitSignUp(ctx context.Context, sid id.SessionID, values forms.Values) (*service.SubmitResult, error)
	SubmitSignIn(ctx context.Context, sid id.SessionID, values forms.Values) (*service.SubmitResult, error)
	OpenForm(ctx context.Context, sid id.SessionID, kind forms.Kind) (*models.Session, error)
	CloseForm(ctx context.Context, sid id.SessionID, kind forms.Kind) (*models.Session, error)
	EditField(ctx context.Context, sid id.SessionID, kind forms.Kind, field, value string) (*models.Session, error)
	AddToCart(ctx context.Context, sid id.SessionID, product catalog.Product) (*models.Session, error)
}

// TokenIssuer signs bearer tokens for newly opened sessions.
type TokenIssuer interface {
	Issue(sid id.SessionID, now time.Time) (string, error)
}

// Handler handles session, auth, form, and cart endpoints.
type Handler struct {
	logger   *slog.Logger
	sessions Service
	tokens   TokenIssuer
	catalog  *catalog.Catalog
}

// New creates a new session Handler.
func New(sessions Service, tokens TokenIssuer, cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		sessions: sessions,
		tokens:   tokens,
		catalog:  cat,
	}
}

// Register registers all session routes. Everything except session creation
// requires a valid bearer token.
func (h *Handler) Register(r chi.Router, requireSession func(http.Handler) http.Handler) {
	r.Post("/session", h.handleOpenSession)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/session", h.handleGetSession)
		r.Delete("/session", h.handleCloseSession)
		r.Post("/session/logout", h.handleLogout)
		r.Post("/session/view", h.handleNavigate)

		r.Post("/auth/signup", h.handleSignUp)
		r.Post("/auth/login", h.handleLogin)

		r.Post("/forms/{kind}/open", h.handleOpenForm)
		r.Post("/forms/{kind}/close", h.handleCloseForm)
		r.Post("/forms/{kind}/fields", h.handleEditField)

		r.Get("/cart", h.handleGetCart)
		r.Post("/cart/items", h.handleAddToCart)
	})
}

type openSessionResponse struct {
	Token    string            `json:"token"`
	Snapshot *snapshotResponse `json:"snapshot"`
}

func (h *Handler) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.sessions.Open(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open session",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to open session"))
		return
	}

	token, err := h.tokens.Issue(session.ID, time.Now())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session token",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to open session"))
		return
	}

	snap, err := h.sessions.Snapshot(ctx, session.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, openSessionResponse{
		Token:    token,
		Snapshot: toSnapshotResponse(snap),
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r, middleware.GetSessionID(r.Context()))
}

// handleCloseSession discards the session record entirely (tab closed).
func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessions.Close(ctx, middleware.GetSessionID(ctx)); err != nil {
		h.writeDomainError(w, r, "failed to close session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := middleware.GetSessionID(ctx)

	if _, err := h.sessions.Logout(ctx, sid); err != nil {
		h.writeDomainError(w, r, "logout failed", err)
		return
	}
	h.writeSnapshot(w, r, sid)
}

type navigateRequest struct {
	View string `json:"view"`
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := middleware.GetSessionID(ctx)

	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	target, err := models.ParseView(req.View)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.sessions.NavigateTo(ctx, sid, target); err != nil {
		h.writeDomainError(w, r, "navigation rejected", err)
		return
	}
	h.writeSnapshot(w, r, sid)
}

type submitRequest struct {
	Values map[string]string `json:"values"`
}

type submitResponse struct {
	Submitted bool              `json:"submitted"`
	Errors    map[string]string `json:"errors,omitempty"`
	Snapshot  *snapshotResponse `json:"snapshot"`
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	h.handleSubmit(w, r, h.sessions.SubmitSignUp)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	h.handleSubmit(w, r, h.sessions.SubmitSignIn)
}

func (h *Handler) handleSubmit(
	w http.ResponseWriter,
	r *http.Request,
	submit func(ctx context.Context, sid id.SessionID, values forms.Values) (*service.SubmitResult, error),
) {
	ctx := r.Context()
	sid := middleware.GetSessionID(ctx)

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := submit(ctx, sid, forms.Values(req.Values))
	if err != nil {
		h.writeDomainError(w, r, "form submission rejected", err)
		return
	}

	snap, err := h.sessions.Snapshot(ctx, sid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, submitResponse{
		Submitted: result.Submittable(),
		Errors:    result.Errors,
		Snapshot:  toSnapshotResponse(snap),
	})
}

func (h *Handler) handleOpenForm(w http.ResponseWriter, r *http.Request) {
	h.handleFormLifecycle(w, r, h.sessions.OpenForm)
}

func (h *Handler) handleCloseForm(w http.ResponseWriter, r *http.Request) {
	h.handleFormLifecycle(w, r, h.sessions.CloseForm)
}

func (h *Handler) handleFormLifecycle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sid id.SessionID, kind forms.Kind) (*models.Session, error),
) {
	ctx := r.Context()
	sid := middleware.GetSessionID(ctx)

	kind, ok := forms.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown form kind"))
		return
	}

	if _, err := op(ctx, sid, kind); err != nil {
		h.writeDomainError(w, r, "form operation rejected", err)
		return
	}
	h.writeSnapshot(w, r, sid)
}

type editFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) handleEditField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := middleware.GetSessionID(ctx)

	kind, ok := forms.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "unknown form kind"))
		return
	}

	var req editFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if _, err := h.sessions.EditField(ctx, sid, kind, req.Field, req.Value); err != nil {
		h.writeDomainError(w, r, "field edit rejected", err)
		return
	}
	h.writeSnapshot(w, r, sid)
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := middleware.GetSessionID(ctx)

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "product not found"))
		return
	}

	if _, err := h.sessions.AddToCart(ctx, sid, product); err != nil {
		h.writeDomainError(w, r, "add to cart rejected", err)
		return
	}
	h.writeSnapshot(w, r, sid)
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total int64             `json:"total"`
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.sessions.Snapshot(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		h.writeDomainError(w, r, "failed to load cart", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, cartResponse{
		Items: snap.CartItems,
		Count: snap.CartCount,
		Total: snap.CartTotal,
	})
}

type snapshotResponse struct {
	SessionID   string                           `json:"session_id"`
	Screen      string                           `json:"screen"`
	User        *models.User                     `json:"user,omitempty"`
	Cart        cartResponse                     `json:"cart"`
	Forms       map[string]*service.SnapshotForm `json:"forms"`
	InfoMessage string                           `json:"info_message,omitempty"`
}

func toSnapshotResponse(snap *service.Snapshot) *snapshotResponse {
	return &snapshotResponse{
		SessionID: snap.SessionID.String(),
		Screen:    string(snap.Screen),
		User:      snap.User,
		Cart: cartResponse{
			Items: snap.CartItems,
			Count: snap.CartCount,
			Total: snap.CartTotal,
		},
		Forms:       snap.Forms,
		InfoMessage: snap.InfoMessage,
	}
}

// writeSnapshot responds with the session's current projection. Mutating
// endpoints use it so clients always render from fresh state.
func (h *Handler) writeSnapshot(w http.ResponseWriter, r *http.Request, sid id.SessionID) {
	ctx := r.Context()

	snap, err := h.sessions.Snapshot(ctx, sid)
	if err != nil {
		h.writeDomainError(w, r, "failed to load session", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSnapshotResponse(snap))
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()

	if dErrors.Load(err) == nil {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
		return
	}

	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
