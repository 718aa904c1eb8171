package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CartSuite struct {
	suite.Suite
}

func TestCartSuite(t *testing.T) {
	suite.Run(t, new(CartSuite))
}

func (s *CartSuite) TestLedgerSemantics() {
	s.Run("empty cart totals zero", func() {
		var cart Cart
		s.Zero(cart.Len())
		s.Zero(cart.Total())
	})

	s.Run("duplicates are separate entries", func() {
		var cart Cart
		shirt := CartItem{ProductID: 1, Name: "Shirt", Price: 500}
		cart.Add(shirt)
		cart.Add(shirt)
		s.Equal(2, cart.Len())
		s.Equal(int64(1000), cart.Total())
	})

	s.Run("insertion order is preserved", func() {
		var cart Cart
		cart.Add(CartItem{ProductID: 2, Name: "Sneakers", Price: 2200})
		cart.Add(CartItem{ProductID: 1, Name: "Shirt", Price: 500})
		items := cart.Items()
		s.Require().Len(items, 2)
		s.Equal(int64(2), items[0].ProductID)
		s.Equal(int64(1), items[1].ProductID)
	})

	s.Run("clear empties the ledger", func() {
		var cart Cart
		cart.Add(CartItem{ProductID: 1, Name: "Shirt", Price: 500})
		cart.Clear()
		s.Zero(cart.Len())
		s.Zero(cart.Total())
	})

	s.Run("Items returns a copy", func() {
		var cart Cart
		cart.Add(CartItem{ProductID: 1, Name: "Shirt", Price: 500})
		items := cart.Items()
		items[0].Price = 1
		s.Equal(int64(500), cart.Total())
	})
}
