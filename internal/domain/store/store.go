// Package store holds the inventory aggregate of a single shop.
package store

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-inventory/internal/domain/product"
)

const (
	nameFilterCapacity = 4096
	nameFilterFPR      = 0.01
)

// Store is an ordered inventory of products. Insertion order is preserved and
// duplicate names are allowed. A Store is not safe for concurrent use.
type Store struct {
	inventory []product.Product

	// names holds the folded names of every product in inventory. It only
	// answers "definitely absent"; hits are confirmed by a scan.
	names *bloom.BloomFilter
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		names: bloom.NewWithEstimates(nameFilterCapacity, nameFilterFPR),
	}
}

// FromProducts returns a Store holding products in the given order.
func FromProducts(products ...product.Product) *Store {
	s := New()
	for _, p := range products {
		s.Add(p)
	}
	return s
}

// Add appends p to the inventory and returns the Store for chaining.
func (s *Store) Add(p product.Product) *Store {
	s.inventory = append(s.inventory, p)
	s.names.AddString(foldName(p.Name))
	return s
}

// InventoryValue returns the sum of Value over all products.
func (s *Store) InventoryValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.inventory {
		total = total.Add(p.Value())
	}
	return total
}

// FindByName returns the earliest added product whose name matches name
// case-insensitively. It returns product.ErrNotFound when nothing matches.
func (s *Store) FindByName(name string) (*product.Product, error) {
	if !s.names.TestString(foldName(name)) {
		return nil, product.ErrNotFound
	}

	for i := range s.inventory {
		if strings.EqualFold(s.inventory[i].Name, name) {
			p := s.inventory[i]
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

// Inventory returns a copy of the products in insertion order.
func (s *Store) Inventory() []product.Product {
	out := make([]product.Product, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// Len returns the number of products in the inventory.
func (s *Store) Len() int {
	return len(s.inventory)
}

// foldName maps name to the key stored in the name filter. It must agree
// with strings.EqualFold for every pair of names EqualFold considers equal.
func foldName(name string) string {
	return strings.ToLower(strings.ToUpper(name))
}
