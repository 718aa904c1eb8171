package models

import (
	dErrors "shopez/pkg/domain-errors"
)

// View selects which top-level screen a session's presentation should show.
type View string

const (
	ViewAuth      View = "auth"
	ViewDashboard View = "dashboard"
	ViewCart      View = "cart"
)

// ParseView validates an external view string. Only dashboard and cart are
// valid navigation targets; auth is reached through logout, never directly.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewDashboard, ViewCart:
		return View(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "view must be dashboard or cart")
	}
}

func (v View) String() string {
	return string(v)
}

// IsNavigable reports whether the view is a legal navigation target.
func (v View) IsNavigable() bool {
	return v == ViewDashboard || v == ViewCart
}
