// Package store persists session aggregates for the lifetime of the
// process.
package store

import (
	"context"

	"shopez/internal/session/models"
	id "shopez/pkg/domain"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Store is the persistence port for session aggregates. Implementations
// return sentinel.ErrNotFound (optionally wrapped) for unknown IDs.
type Store interface {
	Save(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sid id.SessionID) (*models.Session, error)
	Delete(ctx context.Context, sid id.SessionID) error

	// Execute runs validate and, if it returns nil, mutate against the
	// session atomically under the store's lock, then returns a copy of the
	// session. It implements the atomic validate-then-mutate pattern: a
	// command either fully applies or has no effect.
	Execute(ctx context.Context, sid id.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error)
}
