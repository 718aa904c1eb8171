// Package view derives which top-level screen to present from session
// state. It is the single enforcement point keeping unauthenticated
// sessions off the dashboard and cart screens: the stored active view is
// never trusted on its own.
package view

import (
	"shopez/internal/session/models"
)

// Screen is what the presentation layer actually renders.
type Screen string

const (
	ScreenAuth      Screen = "auth"
	ScreenDashboard Screen = "dashboard"
	ScreenCart      Screen = "cart"
)

// Resolve maps session state to a screen. Unauthenticated sessions always
// resolve to the auth screen, overriding any stale ActiveView; only
// authenticated sessions have their stored view reflected.
func Resolve(session *models.Session) Screen {
	if !session.Authenticated {
		return ScreenAuth
	}
	switch session.ActiveView {
	case models.ViewCart:
		return ScreenCart
	case models.ViewDashboard:
		return ScreenDashboard
	default:
		// An authenticated session with a non-navigable stored view lands
		// on the dashboard rather than leaking the auth screen.
		return ScreenDashboard
	}
}
