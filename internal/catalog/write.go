package catalog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/kart-inventory/internal/domain/product"
)

// Encode writes products to w in catalog format.
func Encode(w io.Writer, products []product.Product) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ArrStart()
	for _, p := range products {
		e.ObjStart()
		if p.ID != "" {
			e.FieldStart("id")
			e.Str(p.ID)
		}
		e.FieldStart("name")
		e.Str(p.Name)
		e.FieldStart("price")
		e.Str(p.Price.String())
		e.FieldStart("quantity")
		e.Int(p.Quantity)
		if p.IsPerishable() {
			e.FieldStart("expirationDate")
			e.Str(p.ExpirationDate)
		}
		e.ObjEnd()
	}
	e.ArrEnd()

	_, err := w.Write(e.Bytes())
	return err
}

// WriteFile writes products to path, gzip-compressed when path ends in .gz.
func WriteFile(path string, products []product.Product) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrapf(err, "close %s", path)
		}
	}()

	if filepath.Ext(path) != ".gz" {
		return Encode(f, products)
	}

	gz := pgzip.NewWriter(f)
	if err := Encode(gz, products); err != nil {
		_ = gz.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := gz.Close(); err != nil {
		return errors.Wrapf(err, "flush gzip %s", path)
	}
	return nil
}
