package main

import (
	"flag"
	"os"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/kart-inventory/internal/app"
	"github.com/xenking/kart-inventory/internal/catalog"
)

func main() {
	var (
		output    string
		assignIDs bool
	)

	flag.StringVar(&output, "output", "catalog.json", "catalog file to write (.gz for gzip)")
	flag.BoolVar(&assignIDs, "assign-ids", true, "assign random ids to sample products")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(lg, output, assignIDs); err != nil {
		lg.Error("Seed failed", zap.Error(err))
		_ = lg.Sync()
		os.Exit(1)
	}

	lg.Info("Seed completed successfully", zap.String("path", output))
}

func run(lg *zap.Logger, output string, assignIDs bool) error {
	products, err := app.SampleProducts()
	if err != nil {
		return errors.Wrap(err, "build sample products")
	}

	if assignIDs {
		for i := range products {
			products[i].ID = uuid.New().String()
		}
	}

	for _, p := range products {
		lg.Info("Seeding product",
			zap.String("id", p.ID),
			zap.String("name", p.Name),
			zap.String("kind", string(p.Kind)),
		)
	}

	if err := catalog.WriteFile(output, products); err != nil {
		return errors.Wrap(err, "write catalog")
	}
	return nil
}
