package service

import (
	"context"

	"shopez/internal/session/models"
	id "shopez/pkg/domain"
	"shopez/pkg/requestcontext"
)

// NavigateTo switches the active view. Only dashboard and cart are legal
// targets, and only for authenticated sessions; the guard lives on the
// aggregate so presentation code cannot bypass it.
func (s *Service) NavigateTo(ctx context.Context, sid id.SessionID, target models.View) (*models.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.NavigateTo")
	defer span.End()

	now := requestcontext.Now(ctx)
	session, err := s.sessions.Execute(ctx, sid,
		func(sess *models.Session) error {
			return sess.CanNavigate(target)
		},
		func(sess *models.Session) {
			sess.ApplyNavigation(target, now)
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	return session, nil
}

// OpenCart shows the cart screen.
func (s *Service) OpenCart(ctx context.Context, sid id.SessionID) (*models.Session, error) {
	return s.NavigateTo(ctx, sid, models.ViewCart)
}

// GoToDashboard returns to the dashboard screen.
func (s *Service) GoToDashboard(ctx context.Context, sid id.SessionID) (*models.Session, error) {
	return s.NavigateTo(ctx, sid, models.ViewDashboard)
}
