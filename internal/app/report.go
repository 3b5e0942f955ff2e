package app

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-inventory/internal/domain/product"
)

var hundred = decimal.NewFromInt(100)

// Report is the outcome of a single inventory run.
type Report struct {
	Rate            decimal.Decimal
	InitialValue    decimal.Decimal
	DiscountedValue decimal.Decimal
	Savings         decimal.Decimal
	Search          string
	Found           *product.Product
	Inventory       []product.Product
}

// WriteText writes the report in human readable form.
func (r *Report) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("=== Initial Inventory ===\n")
	ew.printf("Total Inventory Value: $%s\n\n", r.InitialValue.StringFixed(2))

	ew.printf("=== After %s%% Discount ===\n", r.Rate.Mul(hundred).String())
	ew.printf("Total Inventory Value: $%s\n", r.DiscountedValue.StringFixed(2))
	ew.printf("Savings: $%s\n\n", r.Savings.StringFixed(2))

	ew.printf("=== Product Search ===\n")
	if r.Found != nil {
		ew.printf("Found product %q:\n%s\n", r.Search, r.Found.Describe())
	} else {
		ew.printf("Product %q not found.\n", r.Search)
	}

	ew.printf("\n=== Full Inventory Details ===\n")
	for _, p := range r.Inventory {
		ew.printf("%s\n", p.Describe())
	}
	return ew.err
}

// WriteJSON writes the report as a single JSON object. Amounts are encoded as
// strings to keep their decimal precision.
func (r *Report) WriteJSON(w io.Writer) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ObjStart()
	e.FieldStart("discountRate")
	e.Str(r.Rate.String())
	e.FieldStart("initialValue")
	e.Str(r.InitialValue.StringFixed(2))
	e.FieldStart("discountedValue")
	e.Str(r.DiscountedValue.StringFixed(2))
	e.FieldStart("savings")
	e.Str(r.Savings.StringFixed(2))
	e.FieldStart("search")
	e.Str(r.Search)
	e.FieldStart("found")
	if r.Found != nil {
		encodeProduct(e, *r.Found)
	} else {
		e.Null()
	}
	e.FieldStart("inventory")
	e.ArrStart()
	for _, p := range r.Inventory {
		encodeProduct(e, p)
	}
	e.ArrEnd()
	e.ObjEnd()

	_, err := w.Write(append(e.Bytes(), '\n'))
	return err
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.ObjStart()
	if p.ID != "" {
		e.FieldStart("id")
		e.Str(p.ID)
	}
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("kind")
	e.Str(string(p.Kind))
	e.FieldStart("price")
	e.Str(p.Price.StringFixed(2))
	if p.OriginalPrice.Valid {
		e.FieldStart("originalPrice")
		e.Str(p.OriginalPrice.Decimal.StringFixed(2))
	}
	e.FieldStart("quantity")
	e.Int(p.Quantity)
	if p.IsPerishable() {
		e.FieldStart("expirationDate")
		e.Str(p.ExpirationDate)
	}
	e.FieldStart("value")
	e.Str(p.Value().StringFixed(2))
	e.ObjEnd()
}

// errWriter remembers the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
