// Package catalog supplies the fixed product list shown on the dashboard.
//
// The catalog is a read-only collaborator: the session core receives product
// descriptors from it but never mutates them. Cart entries snapshot product
// fields at add time, so a future catalog change cannot retroactively alter
// a cart.
package catalog

import (
	"shopez/pkg/platform/sentinel"
)

// Product describes one catalog entry. Price is in integer minor units.
type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog is an immutable ordered product list.
type Catalog struct {
	products []Product
}

// New copies the given products so later changes to the input slice cannot
// leak into the catalog.
func New(products []Product) *Catalog {
	return &Catalog{products: append([]Product(nil), products...)}
}

// Default returns the featured-products catalog the storefront ships with.
func Default() *Catalog {
	return New([]Product{
		{ID: 1, Name: "Classic Shirt", Price: 500},
		{ID: 2, Name: "Running Sneakers", Price: 2200},
		{ID: 3, Name: "Analog Watch", Price: 3500},
		{ID: 4, Name: "Canvas Backpack", Price: 1200},
		{ID: 5, Name: "Wireless Headphones", Price: 1800},
		{ID: 6, Name: "Polarized Sunglasses", Price: 900},
	})
}

// Products returns a copy of the ordered product list.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// FindByID returns the product with the given ID, or sentinel.ErrNotFound.
func (c *Catalog) FindByID(productID int64) (Product, error) {
	for _, p := range c.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return Product{}, sentinel.ErrNotFound
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
