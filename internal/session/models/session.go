package models

import (
	"time"

	"shopez/internal/forms"
	id "shopez/pkg/domain"
	dErrors "shopez/pkg/domain-errors"
	pkgemail "shopez/pkg/email"
)

// Account holds the credentials captured by sign-up, kept for later login
// comparison. At most one exists per session; a later sign-up silently
// replaces it. It survives logout and dies with the session record.
//
// Passwords are compared in plaintext in memory. The demo has no backend,
// so there is nothing to protect them from; do not reuse this type anywhere
// credentials leave the process.
type Account struct {
	Name     string
	Email    string
	Password string
}

// User is the currently logged-in identity. Distinct from Account: the demo
// account can authenticate without ever being registered.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the aggregate root for one storefront session (one browser
// tab's lifetime).
//
// Invariants:
//   - ActiveView ∈ {dashboard, cart} only while Authenticated
//   - Authenticated ⇒ CurrentUser != nil
//   - logout clears CurrentUser, the cart, and forces ActiveView to auth,
//     but never touches Registered
//   - the cart is cleared exactly once per logout, nowhere else
//
// The view resolver additionally overrides any stale ActiveView for
// unauthenticated sessions, so the stored view is never trusted on its own.
type Session struct {
	ID            id.SessionID
	Authenticated bool
	CurrentUser   *User
	Registered    *Account
	ActiveView    View
	Cart          Cart
	Forms         map[forms.Kind]*forms.State

	// InfoMessage is a transient informational/success string, cleared on
	// the next edit or navigation.
	InfoMessage string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession returns an anonymous session showing the auth screen.
func NewSession(sid id.SessionID, now time.Time) *Session {
	return &Session{
		ID:         sid,
		ActiveView: ViewAuth,
		Forms:      make(map[forms.Kind]*forms.State),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ApplyRegistration stores the account captured by sign-up, replacing any
// prior one. Registration alone does not authenticate; sign-up composes
// this with ApplyAuthentication in one command.
func (s *Session) ApplyRegistration(account Account, now time.Time) {
	s.Registered = &account
	s.UpdatedAt = now
}

// ApplyAuthentication marks the session logged in as email and lands on the
// dashboard. The display name comes from the registered account when it
// matches, otherwise it is derived from the address.
func (s *Session) ApplyAuthentication(email string, now time.Time) {
	name := ""
	if s.Registered != nil && s.Registered.Email == email {
		name = s.Registered.Name
	}
	if name == "" {
		name = pkgemail.DisplayName(email)
	}

	s.Authenticated = true
	s.CurrentUser = &User{Email: email, Name: name}
	s.ActiveView = ViewDashboard
	s.UpdatedAt = now
}

// ApplyLogout resets the session to its anonymous shape: identity gone,
// cart cleared, auth screen showing. Unconditional and idempotent; the
// registered account is deliberately kept so the user can log back in.
func (s *Session) ApplyLogout(now time.Time) {
	s.Authenticated = false
	s.CurrentUser = nil
	s.Cart.Clear()
	s.ActiveView = ViewAuth
	s.InfoMessage = ""
	s.UpdatedAt = now
}

// CanNavigate checks whether the session may switch to the given view.
// Returns an error for non-navigable targets and for unauthenticated
// sessions.
func (s *Session) CanNavigate(view View) error {
	if !view.IsNavigable() {
		return dErrors.New(dErrors.CodeInvalidInput, "view must be dashboard or cart")
	}
	if !s.Authenticated {
		return dErrors.New(dErrors.CodeUnauthorized, "navigation requires an authenticated session")
	}
	return nil
}

// ApplyNavigation switches the active view and drops any transient message.
// Call CanNavigate first.
func (s *Session) ApplyNavigation(view View, now time.Time) {
	s.ActiveView = view
	s.InfoMessage = ""
	s.UpdatedAt = now
}

// CanAddToCart guards cart mutation the same way navigation is guarded.
func (s *Session) CanAddToCart() error {
	if !s.Authenticated {
		return dErrors.New(dErrors.CodeUnauthorized, "adding to cart requires an authenticated session")
	}
	return nil
}

// ApplyCartAdd appends a product snapshot to the cart ledger.
func (s *Session) ApplyCartAdd(item CartItem, now time.Time) {
	s.Cart.Add(item)
	s.UpdatedAt = now
}

// OpenForm creates fresh field state for the given form kind, replacing any
// previous state for that kind. Opening the sign-up form clears the
// transient message so stale success text never shows behind a fresh form.
func (s *Session) OpenForm(kind forms.Kind, now time.Time) *forms.State {
	state := forms.NewState(kind)
	s.Forms[kind] = state
	if kind == forms.KindSignUp {
		s.InfoMessage = ""
	}
	s.UpdatedAt = now
	return state
}

// CloseForm discards the field state for the given kind.
func (s *Session) CloseForm(kind forms.Kind, now time.Time) {
	delete(s.Forms, kind)
	s.UpdatedAt = now
}

// Clone returns a deep copy. Stores hand out clones so callers can only
// change canonical state through store commands.
func (s *Session) Clone() *Session {
	clone := *s
	if s.CurrentUser != nil {
		user := *s.CurrentUser
		clone.CurrentUser = &user
	}
	if s.Registered != nil {
		account := *s.Registered
		clone.Registered = &account
	}
	clone.Cart = Cart{items: s.Cart.Items()}
	clone.Forms = make(map[forms.Kind]*forms.State, len(s.Forms))
	for kind, state := range s.Forms {
		clone.Forms[kind] = state.Clone()
	}
	return &clone
}

// Form returns the open form state for kind, opening it lazily. Commands
// that act on a form treat "never opened" as "just opened" so malformed
// sequences degrade instead of failing.
func (s *Session) Form(kind forms.Kind, now time.Time) *forms.State {
	if state, ok := s.Forms[kind]; ok {
		return state
	}
	state := forms.NewState(kind)
	s.Forms[kind] = state
	s.UpdatedAt = now
	return state
}
