package service

import (
	"context"

	"shopez/internal/catalog"
	"shopez/internal/session/models"
	id "shopez/pkg/domain"
	"shopez/pkg/platform/audit"
	"shopez/pkg/requestcontext"
)

// AddToCart appends a snapshot of the product to the session's cart ledger.
// The snapshot copies identifier, name, and price at add time; whatever
// happens to the catalog afterwards, the cart entry is frozen. Duplicates
// are two entries, never a quantity bump.
func (s *Service) AddToCart(ctx context.Context, sid id.SessionID, product catalog.Product) (*models.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.AddToCart")
	defer span.End()

	now := requestcontext.Now(ctx)
	item := models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	}

	session, err := s.sessions.Execute(ctx, sid,
		func(sess *models.Session) error {
			return sess.CanAddToCart()
		},
		func(sess *models.Session) {
			sess.ApplyCartAdd(item, now)
		},
	)
	if err != nil {
		return nil, s.translateStoreErr(err)
	}

	s.metrics.IncCartItemsAdded()
	s.logAudit(ctx, audit.CategoryOperations, audit.EventCartItemAdded, sid, "", product.Name)
	return session, nil
}
