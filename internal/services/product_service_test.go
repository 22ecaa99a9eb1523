package services

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/testutil"
)

func sugarInput(t *testing.T) ProductInput {
	return ProductInput{
		Name:             "Sugar 1kg",
		PurchasePriceSYP: testutil.Money(t, "4000"),
		PurchasePriceUSD: testutil.Money(t, "2"),
		SellingPriceSYP:  testutil.Money(t, "5000"),
		SellingPriceUSD:  testutil.Money(t, "2.5"),
		Quantity:         50,
		MinQuantity:      10,
		Unit:             "bag",
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		category := testutil.CreateTestCategory(t, db)

		in := sugarInput(t)
		in.CategoryID = &category.ID
		product, err := svc.CreateProduct(in)
		testutil.AssertNoError(t, err)

		if product.Quantity != 50 {
			t.Errorf("expected opening quantity 50, got %f", product.Quantity)
		}
		if product.CategoryName() != category.Name {
			t.Errorf("expected category %q, got %q", category.Name, product.CategoryName())
		}
		testutil.AssertDecimal(t, "selling price usd", product.SellingPriceUSD, "2.5")
		if product.Status() != models.StockAvailable {
			t.Errorf("expected available, got %s", product.Status())
		}
	})

	t.Run("blank_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		in := sugarInput(t)
		in.Name = " "
		_, err := svc.CreateProduct(in)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("default_unit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		product, err := svc.CreateProduct(ProductInput{Name: "Eggs"})
		testutil.AssertNoError(t, err)
		if product.Unit != models.DefaultUnit {
			t.Errorf("expected unit %q, got %q", models.DefaultUnit, product.Unit)
		}
		if !product.SellingPriceSYP.IsZero() {
			t.Errorf("expected zero price, got %s", product.SellingPriceSYP)
		}
	})

	t.Run("negative_or_non_finite_values", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(in *ProductInput)
		}{
			{"negative_quantity", func(in *ProductInput) { in.Quantity = -5 }},
			{"negative_min_quantity", func(in *ProductInput) { in.MinQuantity = -1 }},
			{"infinite_quantity", func(in *ProductInput) { in.Quantity = math.Inf(1) }},
			{"nan_min_quantity", func(in *ProductInput) { in.MinQuantity = math.NaN() }},
			{"negative_selling_price", func(in *ProductInput) { in.SellingPriceSYP = decimal.NewFromInt(-100) }},
			{"negative_purchase_price", func(in *ProductInput) { in.PurchasePriceUSD = decimal.RequireFromString("-0.5") }},
		}

		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := sugarInput(t)
				tt.mutate(&in)
				_, err := svc.CreateProduct(in)
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}

		if got := testutil.CountRows(t, db, "products"); got != 0 {
			t.Errorf("expected no products saved, got %d", got)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		missing := uint(99999)
		in := sugarInput(t)
		in.CategoryID = &missing
		_, err := svc.CreateProduct(in)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestListProducts(t *testing.T) {
	t.Run("search_matches_name_or_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		categories := NewCategoryService(db)

		dairy, err := categories.CreateCategory("Dairy", "")
		testutil.AssertNoError(t, err)

		milk := sugarInput(t)
		milk.Name = "Milk"
		milk.CategoryID = &dairy.ID
		_, err = svc.CreateProduct(milk)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateProduct(sugarInput(t))
		testutil.AssertNoError(t, err)

		all, err := svc.ListProducts("")
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Fatalf("expected 2 products, got %d", len(all))
		}
		if all[0].Name != "Sugar 1kg" {
			t.Errorf("expected newest first, got %s", all[0].Name)
		}
		if all[0].CategoryName() != models.UncategorizedLabel {
			t.Errorf("expected uncategorized, got %s", all[0].CategoryName())
		}

		byCategory, err := svc.ListProducts("dair")
		testutil.AssertNoError(t, err)
		if len(byCategory) != 1 || byCategory[0].Name != "Milk" {
			t.Errorf("expected Milk via category search, got %+v", byCategory)
		}

		byName, err := svc.ListProducts("sug")
		testutil.AssertNoError(t, err)
		if len(byName) != 1 || byName[0].Name != "Sugar 1kg" {
			t.Errorf("expected Sugar via name search, got %+v", byName)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("quantity_is_not_editable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		created, err := svc.CreateProduct(sugarInput(t))
		testutil.AssertNoError(t, err)

		in := sugarInput(t)
		in.Name = "Sugar 2kg"
		in.Quantity = 9999
		in.SellingPriceSYP = decimal.NewFromInt(9000)
		updated, err := svc.UpdateProduct(created.ID, in)
		testutil.AssertNoError(t, err)

		if updated.Name != "Sugar 2kg" {
			t.Errorf("expected renamed product, got %s", updated.Name)
		}
		if updated.Quantity != 50 {
			t.Errorf("expected quantity to stay 50, got %f", updated.Quantity)
		}
		testutil.AssertDecimal(t, "selling price syp", updated.SellingPriceSYP, "9000")
	})

	t.Run("clears_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		category := testutil.CreateTestCategory(t, db)

		in := sugarInput(t)
		in.CategoryID = &category.ID
		created, err := svc.CreateProduct(in)
		testutil.AssertNoError(t, err)

		in.CategoryID = nil
		updated, err := svc.UpdateProduct(created.ID, in)
		testutil.AssertNoError(t, err)
		if updated.CategoryID != nil {
			t.Errorf("expected no category, got %d", *updated.CategoryID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		_, err := svc.UpdateProduct(99999, sugarInput(t))
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("unreferenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		product := testutil.CreateTestProduct(t, db, 5)

		testutil.AssertNoError(t, svc.DeleteProduct(product.ID))

		_, err := svc.GetProductByID(product.ID)
		testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
	})

	t.Run("referenced_by_movement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		inventory := NewInventoryService(db)
		product := testutil.CreateTestProduct(t, db, 5)

		_, err := inventory.Adjust(product.ID, AdjustAdd, 1, "")
		testutil.AssertNoError(t, err)

		err = svc.DeleteProduct(product.ID)
		testutil.AssertAppError(t, err, "PRODUCT_IN_USE")
	})
}
