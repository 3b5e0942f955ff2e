// Package discount derives discounted copies of inventory products.
package discount

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-inventory/internal/domain/product"
)

// ErrInvalidArgument is returned when a discount rate or product is rejected.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Apply returns discounted copies of products, in the same order, with each
// price multiplied by (1 - rate) and the pre-discount price kept in
// OriginalPrice. Each copy keeps the kind of its source. The input slice and
// its elements are not modified.
//
// Rate must be within [0, 1]; elements of an unknown kind are rejected.
func Apply(products []product.Product, rate decimal.Decimal) ([]product.Product, error) {
	if err := checkRate(rate); err != nil {
		return nil, err
	}

	factor := one.Sub(rate)
	out := make([]product.Product, len(products))
	for i, p := range products {
		discounted, err := applyOne(p, factor)
		if err != nil {
			return nil, errors.Wrapf(err, "product %d", i)
		}
		out[i] = discounted
	}
	return out, nil
}

func applyOne(p product.Product, factor decimal.Decimal) (product.Product, error) {
	switch p.Kind {
	case product.KindStandard:
		return product.Product{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price.Mul(factor),
			Quantity:      p.Quantity,
			Kind:          product.KindStandard,
			OriginalPrice: decimal.NewNullDecimal(p.Price),
		}, nil
	case product.KindPerishable:
		return product.Product{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price.Mul(factor),
			Quantity:       p.Quantity,
			Kind:           product.KindPerishable,
			ExpirationDate: p.ExpirationDate,
			OriginalPrice:  decimal.NewNullDecimal(p.Price),
		}, nil
	default:
		return product.Product{}, errors.Wrapf(ErrInvalidArgument, "unsupported product kind %q", p.Kind)
	}
}

func checkRate(rate decimal.Decimal) error {
	if rate.LessThan(zero) || rate.GreaterThan(one) {
		return errors.Wrapf(ErrInvalidArgument, "discount rate %s outside [0, 1]", rate)
	}
	return nil
}

// ParseRate parses a discount rate given either as a fraction ("0.15") or as
// a percentage ("15%").
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	percent := strings.HasSuffix(s, "%")
	if percent {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	rate, err := decimal.NewFromString(s)
	if err != nil {
		return zero, errors.Wrapf(ErrInvalidArgument, "discount rate %q is not a number", s)
	}
	if percent {
		rate = rate.Div(hundred)
	}

	if err := checkRate(rate); err != nil {
		return zero, err
	}
	return rate, nil
}

// Savings returns how much value the discounted collection lost relative to
// the original one.
func Savings(before, after []product.Product) decimal.Decimal {
	return totalValue(before).Sub(totalValue(after))
}

// totalValue returns the sum of price * quantity across all products.
func totalValue(products []product.Product) decimal.Decimal {
	sum := zero
	for _, p := range products {
		sum = sum.Add(p.Value())
	}
	return sum
}
