// Package catalog reads product catalog files into validated products.
//
// A catalog is a JSON array of objects:
//
//	[{"id": "p1", "name": "Milk", "price": 3.49, "quantity": 100, "expirationDate": "15-04-2025"}]
//
// The id is optional and assigned when missing. Entries with an expiration
// date are perishable. Files ending in .gz are gzip-compressed.
package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/kart-inventory/internal/domain/product"
)

// entry is a single catalog record before validation.
type entry struct {
	ID             string
	Name           string
	Price          decimal.Decimal
	Quantity       int
	ExpirationDate string
	hasExpiration  bool
}

// Load reads every file concurrently and returns their products concatenated
// in the order the files were given.
func Load(ctx context.Context, paths ...string) ([]product.Product, error) {
	results := make([][]product.Product, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			products, err := LoadFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []product.Product
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// LoadFile reads a single catalog file. Progress is logged through the
// logger carried by ctx.
func LoadFile(ctx context.Context, path string) ([]product.Product, error) {
	lg := zctx.From(ctx).With(zap.String("path", path))
	lg.Debug("Reading catalog")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	products, err := Decode(ctx, r)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	lg.Info("Catalog loaded", zap.Int("products", len(products)))
	return products, nil
}

// Decode reads a catalog from r.
func Decode(ctx context.Context, r io.Reader) ([]product.Product, error) {
	var (
		products []product.Product
		idx      int
	)
	dec := jx.Decode(r, 4096)
	if err := dec.Arr(func(d *jx.Decoder) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		e, err := decodeEntry(d)
		if err != nil {
			return errors.Wrapf(err, "entry %d", idx)
		}
		p, err := e.product()
		if err != nil {
			return errors.Wrapf(err, "entry %d", idx)
		}

		products = append(products, p)
		idx++
		return nil
	}); err != nil {
		return nil, err
	}
	return products, nil
}

func decodeEntry(d *jx.Decoder) (entry, error) {
	var e entry
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "id":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			e.ID = v
		case "name":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "name")
			}
			e.Name = v
		case "price":
			v, err := decodePrice(d)
			if err != nil {
				return errors.Wrap(err, "price")
			}
			e.Price = v
		case "quantity":
			v, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "quantity")
			}
			e.Quantity = v
		case "expirationDate":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "expirationDate")
			}
			e.ExpirationDate = v
			e.hasExpiration = true
		default:
			return d.Skip()
		}
		return nil
	})
	return e, err
}

// decodePrice accepts a price given as a JSON number or string.
func decodePrice(d *jx.Decoder) (decimal.Decimal, error) {
	var raw string
	switch d.Next() {
	case jx.String:
		v, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		raw = v
	case jx.Number:
		v, err := d.Num()
		if err != nil {
			return decimal.Zero, err
		}
		raw = v.String()
	default:
		return decimal.Zero, errors.Errorf("unexpected %s", d.Next())
	}
	return decimal.NewFromString(raw)
}

func (e entry) product() (product.Product, error) {
	var (
		p   product.Product
		err error
	)
	if e.hasExpiration {
		p, err = product.NewPerishable(e.Name, e.Price, e.Quantity, e.ExpirationDate)
	} else {
		p, err = product.New(e.Name, e.Price, e.Quantity)
	}
	if err != nil {
		return product.Product{}, err
	}

	p.ID = e.ID
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return p, nil
}
