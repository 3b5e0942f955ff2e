package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/kart-inventory/internal/catalog"
	"github.com/xenking/kart-inventory/internal/domain/discount"
	"github.com/xenking/kart-inventory/internal/domain/product"
	"github.com/xenking/kart-inventory/internal/domain/store"
)

// Run loads the catalog, stocks a store, applies the configured discount and
// writes the report to w. It is the single wiring point for the application.
// The logger is taken from ctx.
func Run(ctx context.Context, cfg *Config, w io.Writer) error {
	lg := zctx.From(ctx)

	rate, err := cfg.Rate()
	if err != nil {
		return errors.Wrap(err, "discount rate")
	}

	products, err := loadProducts(ctx, lg, cfg.Catalog)
	if err != nil {
		return errors.Wrap(err, "load products")
	}

	shop := store.FromProducts(products...)
	lg.Info("Store stocked",
		zap.Int("products", shop.Len()),
		zap.Stringer("value", shop.InventoryValue()),
	)

	discounted, err := discount.Apply(shop.Inventory(), rate)
	if err != nil {
		return errors.Wrap(err, "apply discount")
	}
	discountedShop := store.FromProducts(discounted...)
	lg.Info("Discount applied",
		zap.Stringer("rate", rate),
		zap.Stringer("value", discountedShop.InventoryValue()),
	)

	rep := Report{
		Rate:            rate,
		InitialValue:    shop.InventoryValue(),
		DiscountedValue: discountedShop.InventoryValue(),
		Savings:         discount.Savings(products, discounted),
		Search:          cfg.Search,
		Inventory:       discountedShop.Inventory(),
	}

	found, err := discountedShop.FindByName(cfg.Search)
	switch {
	case err == nil:
		rep.Found = found
	case errors.Is(err, product.ErrNotFound):
		lg.Debug("Product not found", zap.String("search", cfg.Search))
	default:
		return errors.Wrap(err, "find product")
	}

	switch cfg.Format {
	case FormatJSON:
		err = rep.WriteJSON(w)
	default:
		err = rep.WriteText(w)
	}
	if err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

func loadProducts(ctx context.Context, lg *zap.Logger, paths []string) ([]product.Product, error) {
	if len(paths) == 0 {
		lg.Info("No catalog configured, using sample products")
		return SampleProducts()
	}

	lg.Info("Loading catalog", zap.Strings("files", paths))
	return catalog.Load(ctx, paths...)
}

// SampleProducts returns the built-in demonstration inventory.
func SampleProducts() ([]product.Product, error) {
	type sample struct {
		name    string
		price   string
		qty     int
		expires string
	}
	samples := []sample{
		{name: "Laptop", price: "999.99", qty: 10},
		{name: "Mouse", price: "24.99", qty: 50},
		{name: "Keyboard", price: "49.99", qty: 30},
		{name: "Milk", price: "3.49", qty: 100, expires: "15-04-2025"},
		{name: "Cheese", price: "5.99", qty: 40, expires: "27-04-2025"},
	}

	products := make([]product.Product, 0, len(samples))
	for _, s := range samples {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return nil, errors.Wrapf(err, "parse price of %s", s.name)
		}

		var p product.Product
		if s.expires != "" {
			p, err = product.NewPerishable(s.name, price, s.qty, s.expires)
		} else {
			p, err = product.New(s.name, price, s.qty)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "sample %s", s.name)
		}
		products = append(products, p)
	}
	return products, nil
}
