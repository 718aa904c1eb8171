// Package service implements the session commands: every state transition a
// visitor can trigger goes through here, is validated against the session's
// invariants, and applies atomically or not at all.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"shopez/internal/platform/metrics"
	"shopez/internal/session/models"
	"shopez/internal/session/store"
	"shopez/internal/view"
	id "shopez/pkg/domain"
	dErrors "shopez/pkg/domain-errors"
	"shopez/pkg/platform/audit"
	"shopez/pkg/platform/sentinel"
	"shopez/pkg/requestcontext"
)

// Fixed demo credential pair, always valid for login regardless of any
// registered account. Referenced by docs and fixtures; do not change.
const (
	DemoEmail    = "demo@shop.com"
	DemoPassword = "demo123"
)

// User-facing message strings.
const (
	MsgInvalidCredentials = "Invalid credentials. Try demo@shop.com / demo123 or Sign Up first."
	MsgSignUpSuccess      = "Sign-up successful! Now login using your email & password."
)

// AuditPublisher is the sink for audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates session commands against the store. Transport
// concerns stay out; callers hand in context-scoped request metadata via
// pkg/requestcontext.
type Service struct {
	sessions store.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditPub AuditPublisher
	tracer   trace.Tracer
}

type serviceConfig struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	auditPub AuditPublisher
}

type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

func WithAuditPublisher(pub AuditPublisher) Option {
	return func(cfg *serviceConfig) { cfg.auditPub = pub }
}

func New(sessions store.Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions: sessions,
		logger:   logger,
		metrics:  cfg.metrics,
		auditPub: cfg.auditPub,
		tracer:   otel.Tracer("shopez/internal/session/service"),
	}
}

// Open starts a fresh anonymous session. This is the "page load": a new
// state tree with no identity, an empty cart, and the auth screen showing.
func (s *Service) Open(ctx context.Context) (*models.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Open")
	defer span.End()

	session := models.NewSession(id.NewSessionID(), requestcontext.Now(ctx))
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open session")
	}

	s.metrics.IncSessionsOpened()
	s.logAudit(ctx, audit.CategoryOperations, audit.EventSessionOpened, session.ID, "", "")
	s.logger.InfoContext(ctx, "session opened", "session_id", session.ID.String())
	return session, nil
}

// Snapshot is the read-side projection consumed for rendering: the resolved
// screen, identity, cart contents and total, open form state, and the
// transient message. It is pure with respect to session state and may be
// re-run any number of times.
type Snapshot struct {
	SessionID   id.SessionID
	Screen      view.Screen
	User        *models.User
	CartItems   []models.CartItem
	CartCount   int
	CartTotal   int64
	Forms       map[string]*SnapshotForm
	InfoMessage string
}

// SnapshotForm is the rendered state of one open form.
type SnapshotForm struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

// Snapshot returns the current projection for one session.
func (s *Service) Snapshot(ctx context.Context, sid id.SessionID) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "session.Snapshot")
	defer span.End()

	session, err := s.sessions.FindByID(ctx, sid)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	return projectSnapshot(session), nil
}

func projectSnapshot(session *models.Session) *Snapshot {
	snap := &Snapshot{
		SessionID:   session.ID,
		Screen:      view.Resolve(session),
		User:        session.CurrentUser,
		CartItems:   session.Cart.Items(),
		CartCount:   session.Cart.Len(),
		CartTotal:   session.Cart.Total(),
		Forms:       make(map[string]*SnapshotForm, len(session.Forms)),
		InfoMessage: session.InfoMessage,
	}
	for kind, state := range session.Forms {
		snap.Forms[string(kind)] = &SnapshotForm{Values: state.Values, Errors: state.Errors}
	}
	return snap
}

// Close discards a session record entirely (tab closed).
func (s *Service) Close(ctx context.Context, sid id.SessionID) error {
	ctx, span := s.tracer.Start(ctx, "session.Close")
	defer span.End()

	if err := s.sessions.Delete(ctx, sid); err != nil {
		return s.translateStoreErr(err)
	}
	return nil
}

// translateStoreErr maps store sentinels to coded errors. Domain errors
// raised inside Execute validate callbacks pass through untouched.
func (s *Service) translateStoreErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	}
	if dErrors.Load(err) != nil {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "session store failure")
}

func (s *Service) logAudit(ctx context.Context, category audit.EventCategory, action audit.AuditEvent, sid id.SessionID, email, reason string) {
	if s.auditPub == nil {
		return
	}
	err := s.auditPub.Emit(ctx, audit.Event{
		Category:  category,
		Timestamp: requestcontext.Now(ctx),
		SessionID: sid,
		Action:    string(action),
		Email:     email,
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(action),
			"error", err,
		)
	}
}
