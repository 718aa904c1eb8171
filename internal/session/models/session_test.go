package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"shopez/internal/forms"
	id "shopez/pkg/domain"
	dErrors "shopez/pkg/domain-errors"
)

type SessionSuite struct {
	suite.Suite
	now time.Time
}

func (s *SessionSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) newSession() *Session {
	return NewSession(id.NewSessionID(), s.now)
}

func (s *SessionSuite) TestNewSession() {
	sess := s.newSession()
	s.False(sess.Authenticated)
	s.Nil(sess.CurrentUser)
	s.Nil(sess.Registered)
	s.Equal(ViewAuth, sess.ActiveView)
	s.Zero(sess.Cart.Len())
}

func (s *SessionSuite) TestRegistrationAndAuthentication() {
	s.Run("registration alone does not authenticate", func() {
		sess := s.newSession()
		sess.ApplyRegistration(Account{Name: "Ann", Email: "ann@x.com", Password: "secret1"}, s.now)
		s.False(sess.Authenticated)
		s.Require().NotNil(sess.Registered)
		s.Equal("ann@x.com", sess.Registered.Email)
	})

	s.Run("a later registration replaces the prior account", func() {
		sess := s.newSession()
		sess.ApplyRegistration(Account{Name: "Ann", Email: "ann@x.com", Password: "secret1"}, s.now)
		sess.ApplyRegistration(Account{Name: "Bob", Email: "bob@x.com", Password: "secret2"}, s.now)
		s.Equal("bob@x.com", sess.Registered.Email)
	})

	s.Run("authentication lands on the dashboard", func() {
		sess := s.newSession()
		sess.ApplyAuthentication("ann@x.com", s.now)
		s.True(sess.Authenticated)
		s.Require().NotNil(sess.CurrentUser)
		s.Equal("ann@x.com", sess.CurrentUser.Email)
		s.Equal(ViewDashboard, sess.ActiveView)
	})

	s.Run("display name comes from the registered account", func() {
		sess := s.newSession()
		sess.ApplyRegistration(Account{Name: "Ann", Email: "ann@x.com", Password: "secret1"}, s.now)
		sess.ApplyAuthentication("ann@x.com", s.now)
		s.Equal("Ann", sess.CurrentUser.Name)
	})

	s.Run("display name is derived when no account matches", func() {
		sess := s.newSession()
		sess.ApplyAuthentication("demo@shop.com", s.now)
		s.Equal("Demo", sess.CurrentUser.Name)
	})
}

func (s *SessionSuite) TestLogout() {
	s.Run("clears identity, cart and view but keeps the account", func() {
		sess := s.newSession()
		sess.ApplyRegistration(Account{Name: "Ann", Email: "ann@x.com", Password: "secret1"}, s.now)
		sess.ApplyAuthentication("ann@x.com", s.now)
		sess.ApplyCartAdd(CartItem{ProductID: 1, Name: "Shirt", Price: 500}, s.now)
		sess.ApplyNavigation(ViewCart, s.now)

		sess.ApplyLogout(s.now)

		s.False(sess.Authenticated)
		s.Nil(sess.CurrentUser)
		s.Zero(sess.Cart.Len())
		s.Equal(ViewAuth, sess.ActiveView)
		s.NotNil(sess.Registered, "registered account survives logout")
	})

	s.Run("is idempotent", func() {
		sess := s.newSession()
		sess.ApplyAuthentication("ann@x.com", s.now)
		sess.ApplyLogout(s.now)
		first := *sess
		sess.ApplyLogout(s.now)
		s.Equal(first.Authenticated, sess.Authenticated)
		s.Equal(first.ActiveView, sess.ActiveView)
		s.Zero(sess.Cart.Len())
	})
}

func (s *SessionSuite) TestNavigation() {
	s.Run("unauthenticated navigation is rejected", func() {
		sess := s.newSession()
		err := sess.CanNavigate(ViewCart)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("auth is not a navigation target", func() {
		sess := s.newSession()
		sess.ApplyAuthentication("ann@x.com", s.now)
		err := sess.CanNavigate(ViewAuth)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("dashboard and cart cycle while authenticated", func() {
		sess := s.newSession()
		sess.ApplyAuthentication("ann@x.com", s.now)

		s.Require().NoError(sess.CanNavigate(ViewCart))
		sess.ApplyNavigation(ViewCart, s.now)
		s.Equal(ViewCart, sess.ActiveView)

		s.Require().NoError(sess.CanNavigate(ViewDashboard))
		sess.ApplyNavigation(ViewDashboard, s.now)
		s.Equal(ViewDashboard, sess.ActiveView)
	})

	s.Run("navigation clears the transient message", func() {
		sess := s.newSession()
		sess.ApplyAuthentication("ann@x.com", s.now)
		sess.InfoMessage = "Sign-up successful!"
		sess.ApplyNavigation(ViewCart, s.now)
		s.Empty(sess.InfoMessage)
	})
}

func (s *SessionSuite) TestCartGuard() {
	sess := s.newSession()
	err := sess.CanAddToCart()
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	sess.ApplyAuthentication("ann@x.com", s.now)
	s.NoError(sess.CanAddToCart())
}

func (s *SessionSuite) TestForms() {
	s.Run("opening the sign-up form clears the message", func() {
		sess := s.newSession()
		sess.InfoMessage = "Invalid credentials."
		sess.OpenForm(forms.KindSignUp, s.now)
		s.Empty(sess.InfoMessage)
	})

	s.Run("reopening a form resets its state", func() {
		sess := s.newSession()
		state := sess.OpenForm(forms.KindSignIn, s.now)
		state.Edit(forms.FieldEmail, "ann@x.com")
		fresh := sess.OpenForm(forms.KindSignIn, s.now)
		s.Equal("", fresh.Values[forms.FieldEmail])
	})

	s.Run("closing discards state", func() {
		sess := s.newSession()
		sess.OpenForm(forms.KindSignIn, s.now)
		sess.CloseForm(forms.KindSignIn, s.now)
		s.NotContains(sess.Forms, forms.KindSignIn)
	})

	s.Run("form access opens lazily", func() {
		sess := s.newSession()
		state := sess.Form(forms.KindSignIn, s.now)
		s.NotNil(state)
		s.Contains(sess.Forms, forms.KindSignIn)
	})
}
