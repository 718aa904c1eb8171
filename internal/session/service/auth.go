package service

import (
	"context"
	"strings"
	"time"

	"shopez/internal/forms"
	"shopez/internal/platform/metrics"
	"shopez/internal/session/models"
	id "shopez/pkg/domain"
	dErrors "shopez/pkg/domain-errors"
	"shopez/pkg/platform/audit"
	"shopez/pkg/requestcontext"
)

// SubmitResult reports the outcome of a form submission. A non-empty Errors
// map means validation rejected the submission; that is a recoverable
// outcome, not an error: the user edits and resubmits.
type SubmitResult struct {
	Session *models.Session
	Errors  forms.Errors
}

// Submittable reports whether the submission passed validation.
func (r *SubmitResult) Submittable() bool {
	return len(r.Errors) == 0
}

// SubmitSignUp validates the sign-up form and, on success, registers the
// account and immediately authenticates it. Registration and authentication
// are independent transitions composed by this one command: the UI treats
// sign-up as consent to proceed, skipping a second login round-trip.
func (s *Service) SubmitSignUp(ctx context.Context, sid id.SessionID, values forms.Values) (*SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "session.SubmitSignUp")
	defer span.End()

	now := requestcontext.Now(ctx)
	var fieldErrors forms.Errors
	var email string

	session, err := s.sessions.Execute(ctx, sid,
		nil,
		func(sess *models.Session) {
			form := sess.Form(forms.KindSignUp, now)
			form.Values = mergeValues(forms.KindSignUp, values)
			if !form.Submit() {
				fieldErrors = form.Errors
				return
			}

			account := models.Account{
				Name:     strings.TrimSpace(form.Values[forms.FieldName]),
				Email:    strings.TrimSpace(form.Values[forms.FieldEmail]),
				Password: form.Values[forms.FieldPassword],
			}
			email = account.Email

			// Two explicit steps: capture the account, then auto-login.
			sess.ApplyRegistration(account, now)
			sess.ApplyAuthentication(account.Email, now)

			sess.InfoMessage = MsgSignUpSuccess
			prefillSignIn(sess, account.Email, now)
			sess.CloseForm(forms.KindSignUp, now)
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}

	if len(fieldErrors) > 0 {
		return &SubmitResult{Session: session, Errors: fieldErrors}, nil
	}

	s.metrics.IncSignUps()
	s.metrics.IncLogins(metrics.LoginResultSuccess)
	s.logAudit(ctx, audit.CategoryOperations, audit.EventUserSignedUp, sid, email, "")
	s.logger.InfoContext(ctx, "user signed up",
		"session_id", sid.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &SubmitResult{Session: session}, nil
}

// prefillSignIn carries the registered email into the sign-in form and
// clears its password, the one sanctioned piece of cross-form carry-over.
func prefillSignIn(sess *models.Session, email string, now time.Time) {
	form := sess.Form(forms.KindSignIn, now)
	form.Edit(forms.FieldEmail, email)
	form.Edit(forms.FieldPassword, "")
}

// SubmitSignIn validates the sign-in form and attempts authentication.
// Credentials must exactly match the registered account or the fixed demo
// pair. On rejection nothing changes and the caller gets one generic
// message: the service never distinguishes "unknown email" from "wrong
// password".
func (s *Service) SubmitSignIn(ctx context.Context, sid id.SessionID, values forms.Values) (*SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "session.SubmitSignIn")
	defer span.End()

	now := requestcontext.Now(ctx)
	var fieldErrors forms.Errors
	var rejected bool
	var email string

	session, err := s.sessions.Execute(ctx, sid,
		nil,
		func(sess *models.Session) {
			form := sess.Form(forms.KindSignIn, now)
			form.Values = mergeValues(forms.KindSignIn, values)
			if !form.Submit() {
				fieldErrors = form.Errors
				return
			}

			email = form.Values[forms.FieldEmail]
			password := form.Values[forms.FieldPassword]
			if !credentialsMatch(sess.Registered, email, password) {
				rejected = true
				return
			}

			sess.ApplyAuthentication(email, now)
			sess.InfoMessage = ""
			sess.CloseForm(forms.KindSignIn, now)
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}

	if len(fieldErrors) > 0 {
		return &SubmitResult{Session: session, Errors: fieldErrors}, nil
	}
	if rejected {
		s.metrics.IncLogins(metrics.LoginResultRejected)
		// No email on the failure event so the audit log cannot be used to
		// enumerate accounts.
		s.logAudit(ctx, audit.CategorySecurity, audit.EventLoginFailed, sid, "", "credentials mismatch")
		return nil, dErrors.New(dErrors.CodeUnauthorized, MsgInvalidCredentials)
	}

	s.metrics.IncLogins(metrics.LoginResultSuccess)
	s.logAudit(ctx, audit.CategorySecurity, audit.EventLoginSucceeded, sid, email, "")
	s.logger.InfoContext(ctx, "login succeeded",
		"session_id", sid.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &SubmitResult{Session: session}, nil
}

// credentialsMatch implements the only two accepted credential pairs:
// the session's registered account and the build-time demo account.
// Comparison is exact and in plaintext; the demo has no backend and stores
// nothing beyond process memory.
func credentialsMatch(registered *models.Account, email, password string) bool {
	if registered != nil && email == registered.Email && password == registered.Password {
		return true
	}
	return email == DemoEmail && password == DemoPassword
}

// Logout unconditionally resets the session to anonymous: identity cleared,
// cart cleared, auth screen showing. The registered account is kept so the
// user can log straight back in. Calling it twice is the same as once.
func (s *Service) Logout(ctx context.Context, sid id.SessionID) (*models.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Logout")
	defer span.End()

	now := requestcontext.Now(ctx)
	session, err := s.sessions.Execute(ctx, sid,
		nil,
		func(sess *models.Session) {
			sess.ApplyLogout(now)
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}

	s.metrics.IncLogouts()
	s.logAudit(ctx, audit.CategorySecurity, audit.EventLoggedOut, sid, "", "")
	return session, nil
}

// mergeValues normalizes a submission to the form's fixed field set:
// unknown fields are dropped, missing fields become empty strings.
func mergeValues(kind forms.Kind, values forms.Values) forms.Values {
	merged := make(forms.Values, len(kind.Fields()))
	for _, field := range kind.Fields() {
		merged[field] = values[field]
	}
	return merged
}
