package product

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Kind enumerates the product variants.
type Kind string

const (
	// KindStandard is a plain product without an expiration date.
	KindStandard Kind = "standard"
	// KindPerishable is a product that carries an expiration date.
	KindPerishable Kind = "perishable"
)

// ExpirationLayout is the DD-MM-YYYY layout of perishable expiration dates.
const ExpirationLayout = "02-01-2006"

// Product represents an item held in store inventory.
//
// Perishable products share the value computation of standard ones and differ
// only in display. OriginalPrice is valid only on discounted copies.
type Product struct {
	ID             string
	Name           string          `validate:"required"`
	Price          decimal.Decimal `validate:"positive"`
	Quantity       int             `validate:"gte=0"`
	Kind           Kind
	ExpirationDate string
	OriginalPrice  decimal.NullDecimal
}

// New creates a standard product. It returns a *ValidationError when the name
// is empty, the price is not positive or the quantity is negative.
func New(name string, price decimal.Decimal, quantity int) (Product, error) {
	p := Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Kind:     KindStandard,
	}
	if err := Validate(p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// NewPerishable creates a perishable product expiring on expirationDate,
// given in DD-MM-YYYY form.
func NewPerishable(name string, price decimal.Decimal, quantity int, expirationDate string) (Product, error) {
	p := Product{
		Name:           name,
		Price:          price,
		Quantity:       quantity,
		Kind:           KindPerishable,
		ExpirationDate: expirationDate,
	}
	if err := Validate(p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Value returns the stock value of the product: price * quantity.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsPerishable reports whether the product carries an expiration date.
func (p Product) IsPerishable() bool {
	return p.Kind == KindPerishable
}

// Discounted reports whether the product is a discounted copy.
func (p Product) Discounted() bool {
	return p.OriginalPrice.Valid
}

// Describe renders the product for display.
func (p Product) Describe() string {
	base := fmt.Sprintf("Product: %s, Price: $%s, Quantity: %d",
		p.Name, p.Price.StringFixed(2), p.Quantity)

	switch p.Kind {
	case KindPerishable:
		return base + ", Expiry Date: " + p.ExpirationDate
	default:
		return base
	}
}

func (p Product) String() string {
	return p.Describe()
}
