package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
)

func sugar() *models.Product {
	return &models.Product{
		Base:             models.Base{ID: 1},
		Name:             "Sugar 1kg",
		Unit:             "bag",
		PurchasePriceSYP: decimal.NewFromInt(4000),
		PurchasePriceUSD: decimal.RequireFromString("2"),
		SellingPriceSYP:  decimal.NewFromInt(5000),
		SellingPriceUSD:  decimal.RequireFromString("2.5"),
		Quantity:         50,
		MinQuantity:      10,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAdd(t *testing.T) {
	t.Run("sale_snapshots_selling_price", func(t *testing.T) {
		c := New(KindSale)
		require.NoError(t, c.Add(sugar(), 45))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.True(t, lines[0].UnitPriceSYP.Equal(dec("5000")))
		assert.True(t, lines[0].SubtotalSYP.Equal(dec("225000")))
		assert.True(t, lines[0].SubtotalUSD.Equal(dec("112.5")))
	})

	t.Run("purchase_snapshots_purchase_price", func(t *testing.T) {
		c := New(KindPurchase)
		require.NoError(t, c.Add(sugar(), 100))

		line := c.Lines()[0]
		assert.True(t, line.UnitPriceSYP.Equal(dec("4000")))
		assert.True(t, line.SubtotalUSD.Equal(dec("200")))
	})

	t.Run("later_price_edits_do_not_change_line", func(t *testing.T) {
		c := New(KindSale)
		p := sugar()
		require.NoError(t, c.Add(p, 1))

		p.SellingPriceSYP = decimal.NewFromInt(9999)
		assert.True(t, c.Lines()[0].UnitPriceSYP.Equal(dec("5000")))
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		c := New(KindSale)
		for _, q := range []float64{0, -1} {
			err := c.Add(sugar(), q)
			assert.ErrorIs(t, err, apperrors.ErrNonPositiveQty)
		}
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects_non_finite_quantity", func(t *testing.T) {
		for _, kind := range []Kind{KindSale, KindPurchase} {
			c := New(kind)
			for _, q := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				assert.ErrorIs(t, c.Add(sugar(), q), apperrors.ErrNonPositiveQty)
			}
			assert.True(t, c.IsEmpty())
		}
	})

	t.Run("sale_rejects_quantity_above_stock", func(t *testing.T) {
		c := New(KindSale)
		err := c.Add(sugar(), 51)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		assert.True(t, c.IsEmpty())
	})

	t.Run("purchase_ignores_stock", func(t *testing.T) {
		c := New(KindPurchase)
		assert.NoError(t, c.Add(sugar(), 500))
	})

	t.Run("same_product_merges_and_counts_toward_stock", func(t *testing.T) {
		c := New(KindSale)
		require.NoError(t, c.Add(sugar(), 30))
		require.NoError(t, c.Add(sugar(), 20))
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 50.0, c.Lines()[0].Quantity)

		err := c.Add(sugar(), 1)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		assert.Equal(t, 50.0, c.Lines()[0].Quantity)
	})

	t.Run("fractional_quantity", func(t *testing.T) {
		c := New(KindSale)
		require.NoError(t, c.Add(sugar(), 0.5))
		assert.True(t, c.Lines()[0].SubtotalSYP.Equal(dec("2500")))
	})
}

func TestRemoveAndClear(t *testing.T) {
	c := New(KindSale)
	p2 := sugar()
	p2.ID = 2
	p2.Name = "Rice"
	require.NoError(t, c.Add(sugar(), 1))
	require.NoError(t, c.Add(p2, 1))

	assert.ErrorIs(t, c.Remove(5), apperrors.ErrInvalidCartLine)
	assert.ErrorIs(t, c.Remove(-1), apperrors.ErrInvalidCartLine)

	require.NoError(t, c.Remove(0))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Rice", c.Lines()[0].ProductName)

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestEditQuantity(t *testing.T) {
	t.Run("recomputes_subtotal", func(t *testing.T) {
		c := New(KindSale)
		require.NoError(t, c.Add(sugar(), 1))
		require.NoError(t, c.EditQuantity(0, 4))
		assert.True(t, c.Lines()[0].SubtotalSYP.Equal(dec("20000")))
	})

	t.Run("sale_revalidates_stock", func(t *testing.T) {
		c := New(KindSale)
		require.NoError(t, c.Add(sugar(), 1))
		assert.ErrorIs(t, c.EditQuantity(0, 60), apperrors.ErrInsufficientStock)
		assert.Equal(t, 1.0, c.Lines()[0].Quantity)
	})

	t.Run("purchase_allows_any_positive_quantity", func(t *testing.T) {
		c := New(KindPurchase)
		require.NoError(t, c.Add(sugar(), 1))
		assert.NoError(t, c.EditQuantity(0, 60))
	})

	t.Run("rejects_bad_index_and_quantity", func(t *testing.T) {
		c := New(KindSale)
		require.NoError(t, c.Add(sugar(), 1))
		assert.ErrorIs(t, c.EditQuantity(1, 2), apperrors.ErrInvalidCartLine)
		assert.ErrorIs(t, c.EditQuantity(0, 0), apperrors.ErrNonPositiveQty)
	})

	t.Run("purchase_rejects_non_finite_quantity", func(t *testing.T) {
		c := New(KindPurchase)
		require.NoError(t, c.Add(sugar(), 1))
		assert.ErrorIs(t, c.EditQuantity(0, math.Inf(1)), apperrors.ErrNonPositiveQty)
		assert.ErrorIs(t, c.EditQuantity(0, math.NaN()), apperrors.ErrNonPositiveQty)
		assert.Equal(t, 1.0, c.Lines()[0].Quantity)
	})
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name        string
		discountSYP string
		discountUSD string
		wantSYP     string
		wantUSD     string
	}{
		{"no_discount", "0", "0", "225000", "112.5"},
		{"partial_discount", "25000", "12.5", "200000", "100"},
		{"discount_exceeds_total_floors_at_zero", "300000", "500", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(KindSale)
			require.NoError(t, c.Add(sugar(), 45))

			totals := c.Totals(dec(tt.discountSYP), dec(tt.discountUSD))
			assert.True(t, totals.SubtotalSYP.Equal(dec("225000")))
			assert.True(t, totals.TotalSYP.Equal(dec(tt.wantSYP)), "syp: %s", totals.TotalSYP)
			assert.True(t, totals.TotalUSD.Equal(dec(tt.wantUSD)), "usd: %s", totals.TotalUSD)
			assert.False(t, totals.TotalSYP.IsNegative())
		})
	}

	t.Run("empty_cart_is_zero", func(t *testing.T) {
		totals := New(KindPurchase).Totals(decimal.Zero, decimal.Zero)
		assert.True(t, totals.TotalSYP.IsZero())
		assert.True(t, totals.TotalUSD.IsZero())
	})
}
