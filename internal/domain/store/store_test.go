package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/kart-inventory/internal/domain/discount"
	"github.com/xenking/kart-inventory/internal/domain/product"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mustProduct(t *testing.T, name, price string, qty int) product.Product {
	t.Helper()
	p, err := product.New(name, d(price), qty)
	require.NoError(t, err)
	return p
}

func mustPerishable(t *testing.T, name, price string, qty int, expires string) product.Product {
	t.Helper()
	p, err := product.NewPerishable(name, d(price), qty, expires)
	require.NoError(t, err)
	return p
}

func sampleStore(t *testing.T) *Store {
	t.Helper()
	return New().
		Add(mustProduct(t, "Laptop", "999.99", 10)).
		Add(mustProduct(t, "Mouse", "24.99", 50)).
		Add(mustProduct(t, "Keyboard", "49.99", 30)).
		Add(mustPerishable(t, "Milk", "3.49", 100, "15-04-2025")).
		Add(mustPerishable(t, "Cheese", "5.99", 40, "27-04-2025"))
}

func TestStore_Add(t *testing.T) {
	s := New()
	got := s.Add(mustProduct(t, "Apple", "1.99", 5))

	assert.Same(t, s, got)
	assert.Equal(t, 1, s.Len())

	s.Add(mustProduct(t, "Apple", "2.49", 1))
	require.Equal(t, 2, s.Len())

	inv := s.Inventory()
	assert.True(t, d("1.99").Equal(inv[0].Price))
	assert.True(t, d("2.49").Equal(inv[1].Price))
}

func TestStore_InventoryValue(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) *Store
		want  decimal.Decimal
	}{
		{
			name:  "empty store",
			store: func(*testing.T) *Store { return New() },
			want:  decimal.Zero,
		},
		{
			name: "two products",
			store: func(t *testing.T) *Store {
				return New().
					Add(mustProduct(t, "Apple", "1.99", 5)).
					Add(mustPerishable(t, "Milk", "3.49", 100, "15-04-2025"))
			},
			want: d("358.95"),
		},
		{
			name:  "sample inventory",
			store: sampleStore,
			want:  d("13337.70"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.store(t).InventoryValue()
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestStore_FindByName(t *testing.T) {
	s := sampleStore(t)

	tests := []struct {
		search   string
		wantName string
		wantErr  error
	}{
		{search: "Cheese", wantName: "Cheese"},
		{search: "cheese", wantName: "Cheese"},
		{search: "CHEESE", wantName: "Cheese"},
		{search: "mOuSe", wantName: "Mouse"},
		{search: "Bread", wantErr: product.ErrNotFound},
		{search: "Chees", wantErr: product.ErrNotFound},
		{search: "", wantErr: product.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := s.FindByName(tt.search)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestStore_FindByName_UnicodeFolding(t *testing.T) {
	s := New().
		Add(mustProduct(t, "Kiwi", "0.50", 10)).
		Add(mustProduct(t, "Sunflower", "3.00", 4)).
		Add(mustProduct(t, "Σοφία", "7.00", 1))

	tests := []struct {
		search   string
		wantName string
	}{
		{search: "\u212Aiwi", wantName: "Kiwi"},           // Kelvin sign
		{search: "\u017Funflower", wantName: "Sunflower"}, // long s
		{search: "σοφία", wantName: "Σοφία"},
		{search: "ΣΟΦΊΑ", wantName: "Σοφία"},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := s.FindByName(tt.search)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestFoldName_AgreesWithEqualFold(t *testing.T) {
	pairs := [][2]string{
		{"Kiwi", "\u212Aiwi"},
		{"sun", "\u017Fun"},
		{"Σ", "ς"},
		{"Å", "\u212B"}, // Angstrom sign
		{"µ", "Μ"},
	}
	for _, p := range pairs {
		require.True(t, strings.EqualFold(p[0], p[1]), "%q vs %q", p[0], p[1])
		assert.Equal(t, foldName(p[0]), foldName(p[1]), "%q vs %q", p[0], p[1])
	}
}

func TestStore_FindByName_EarliestDuplicate(t *testing.T) {
	s := New().
		Add(mustProduct(t, "apple", "1.00", 1)).
		Add(mustProduct(t, "Apple", "2.00", 2))

	got, err := s.FindByName("APPLE")
	require.NoError(t, err)
	assert.True(t, d("1.00").Equal(got.Price))
}

func TestStore_FindByName_ReturnsCopy(t *testing.T) {
	s := sampleStore(t)

	got, err := s.FindByName("laptop")
	require.NoError(t, err)
	got.Quantity = 0

	again, err := s.FindByName("laptop")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Quantity)
}

func TestStore_FindByName_BeyondFilterCapacity(t *testing.T) {
	s := New()
	for i := 0; i < nameFilterCapacity*2; i++ {
		s.Add(mustProduct(t, fmt.Sprintf("Item-%d", i), "1", 1))
	}

	got, err := s.FindByName("ITEM-8000")
	require.NoError(t, err)
	assert.Equal(t, "Item-8000", got.Name)
}

func TestStore_Inventory_IsCopy(t *testing.T) {
	s := sampleStore(t)

	inv := s.Inventory()
	inv[0].Name = "Changed"

	assert.Equal(t, "Laptop", s.Inventory()[0].Name)
}

func TestStore_DiscountEndToEnd(t *testing.T) {
	s := sampleStore(t)

	discounted, err := discount.Apply(s.Inventory(), d("0.15"))
	require.NoError(t, err)
	ds := FromProducts(discounted...)

	assert.True(t, d("13337.70").Equal(s.InventoryValue()))
	assert.True(t, d("11337.045").Equal(ds.InventoryValue()),
		"got %s", ds.InventoryValue())

	cheese, err := ds.FindByName("cheese")
	require.NoError(t, err)
	assert.True(t, cheese.IsPerishable())
	assert.True(t, d("5.99").Equal(cheese.OriginalPrice.Decimal))
	assert.Equal(t, "Product: Cheese, Price: $5.09, Quantity: 40, Expiry Date: 27-04-2025", cheese.Describe())

	original, err := s.FindByName("cheese")
	require.NoError(t, err)
	assert.True(t, d("5.99").Equal(original.Price))
}
