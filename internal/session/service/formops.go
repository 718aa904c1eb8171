package service

import (
	"context"

	"shopez/internal/forms"
	"shopez/internal/session/models"
	id "shopez/pkg/domain"
	dErrors "shopez/pkg/domain-errors"
	"shopez/pkg/requestcontext"
)

// OpenForm mounts fresh field state for the given form, discarding any
// previous state for that kind.
func (s *Service) OpenForm(ctx context.Context, sid id.SessionID, kind forms.Kind) (*models.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.OpenForm")
	defer span.End()

	now := requestcontext.Now(ctx)
	session, err := s.sessions.Execute(ctx, sid,
		nil,
		func(sess *models.Session) {
			sess.OpenForm(kind, now)
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	return session, nil
}

// CloseForm discards the form's field state.
func (s *Service) CloseForm(ctx context.Context, sid id.SessionID, kind forms.Kind) (*models.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.CloseForm")
	defer span.End()

	now := requestcontext.Now(ctx)
	session, err := s.sessions.Execute(ctx, sid,
		nil,
		func(sess *models.Session) {
			sess.CloseForm(kind, now)
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	return session, nil
}

// EditField records one keystroke: the field's value changes, that field's
// error clears, and any transient message disappears. Other fields' errors
// stay put until the next submission.
func (s *Service) EditField(ctx context.Context, sid id.SessionID, kind forms.Kind, field, value string) (*models.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.EditField")
	defer span.End()

	now := requestcontext.Now(ctx)
	if !kindHasField(kind, field) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown field for form")
	}

	session, err := s.sessions.Execute(ctx, sid,
		nil,
		func(sess *models.Session) {
			sess.Form(kind, now).Edit(field, value)
			sess.InfoMessage = ""
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}
	return session, nil
}

func kindHasField(kind forms.Kind, field string) bool {
	for _, f := range kind.Fields() {
		if f == field {
			return true
		}
	}
	return false
}
