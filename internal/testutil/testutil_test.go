package testutil_test

import (
	"testing"
	"time"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	for _, table := range []string{
		"categories", "products", "suppliers", "sales", "sale_items",
		"purchases", "purchase_items", "expenses", "inventory_movements",
	} {
		if n := testutil.CountRows(t, db, table); n != 0 {
			t.Errorf("expected empty table %q, got %d rows", table, n)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	category := testutil.CreateTestCategory(t, db)
	if category.ID == 0 {
		t.Fatal("category should have a non-zero ID")
	}

	product := testutil.CreateTestProduct(t, db, 50)
	reloaded := testutil.ReloadProduct(t, db, product.ID)
	if reloaded.Quantity != 50 {
		t.Errorf("expected quantity 50, got %f", reloaded.Quantity)
	}
	testutil.AssertDecimal(t, "selling price usd", reloaded.SellingPriceUSD, "2.5")

	supplier := testutil.CreateTestSupplier(t, db)
	if supplier.ID == 0 {
		t.Fatal("supplier should have a non-zero ID")
	}

	expense := testutil.CreateTestExpense(t, db, "rent", 1000, 10, time.Now())
	testutil.AssertDecimal(t, "expense syp", expense.AmountSYP, "1000")
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrProductNotFound, "custom message")
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
