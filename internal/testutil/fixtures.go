package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Money builds a decimal from a literal, failing the test on bad input.
func Money(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestProduct creates an uncategorized product with the given stock,
// a minimum quantity of 10, purchase price (100, 0.05) and selling price
// (5000, 2.5).
func CreateTestProduct(t *testing.T, db *gorm.DB, quantity float64) *models.Product {
	t.Helper()

	return CreateTestProductWith(t, db, &models.Product{
		Name:             fmt.Sprintf("Test Product %d", nextID()),
		PurchasePriceSYP: decimal.NewFromInt(100),
		PurchasePriceUSD: decimal.RequireFromString("0.05"),
		SellingPriceSYP:  decimal.NewFromInt(5000),
		SellingPriceUSD:  decimal.RequireFromString("2.5"),
		Quantity:         quantity,
		MinQuantity:      10,
	})
}

// CreateTestProductWith inserts product as given, defaulting the unit.
func CreateTestProductWith(t *testing.T, db *gorm.DB, product *models.Product) *models.Product {
	t.Helper()

	if product.Unit == "" {
		product.Unit = models.DefaultUnit
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestSupplier creates a supplier with zero debt.
func CreateTestSupplier(t *testing.T, db *gorm.DB) *models.Supplier {
	t.Helper()

	supplier := &models.Supplier{
		Name:  fmt.Sprintf("Test Supplier %d", nextID()),
		Phone: "0930000000",
	}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("failed to create test supplier: %v", err)
	}
	return supplier
}

// CreateTestExpense creates an expense dated at the given time.
func CreateTestExpense(t *testing.T, db *gorm.DB, category string, syp, usd int64, at time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Category:    category,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		AmountSYP:   decimal.NewFromInt(syp),
		AmountUSD:   decimal.NewFromInt(usd),
		ExpenseDate: at,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// ReloadProduct reads product id back from the database.
func ReloadProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	t.Helper()

	var product models.Product
	if err := db.Preload("Category").First(&product, id).Error; err != nil {
		t.Fatalf("failed to reload product %d: %v", id, err)
	}
	return &product
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}
