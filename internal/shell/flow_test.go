package shell_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/screens"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/shell"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/testutil"
)

// testApp holds the full screen stack over an isolated database.
type testApp struct {
	DB  *gorm.DB
	Dir string
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return &testApp{DB: db, Dir: t.TempDir()}
}

// run feeds script to a fresh shell and returns everything it printed.
// Carts are shared across screens the same way the application shares them.
func (app *testApp) run(t *testing.T, script ...string) string {
	t.Helper()

	out := &bytes.Buffer{}
	term := shell.NewTerminal(strings.NewReader(strings.Join(script, "\n")+"\n"), out)
	nav := screens.NewNavigator(term)

	db := app.DB
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	supplierService := services.NewSupplierService(db)
	saleCart := cart.New(cart.KindSale)
	purchaseCart := cart.New(cart.KindPurchase)

	nav.Register("dashboard", func() screens.Screen {
		return screens.NewDashboardScreen(services.NewDashboardService(testutil.Gateway(t, db)))
	})
	nav.Register("categories", func() screens.Screen { return screens.NewCategoryScreen(categoryService, term) })
	nav.Register("products", func() screens.Screen { return screens.NewProductScreen(productService, categoryService, term) })
	nav.Register("suppliers", func() screens.Screen { return screens.NewSupplierScreen(supplierService, term) })
	nav.Register("inventory", func() screens.Screen { return screens.NewInventoryScreen(services.NewInventoryService(db)) })
	nav.Register("sales", func() screens.Screen {
		return screens.NewSaleScreen(services.NewSaleService(db), productService, saleCart, term,
			screens.ReceiptOptions{Dir: filepath.Join(app.Dir, "receipts"), StoreName: "Test Market"})
	})
	nav.Register("purchases", func() screens.Screen {
		return screens.NewPurchaseScreen(services.NewPurchaseService(db), productService, supplierService, purchaseCart, term)
	})
	nav.Register("reports", func() screens.Screen {
		return screens.NewReportScreen(services.NewReportService(testutil.Gateway(t, db)), term, filepath.Join(app.Dir, "exports"))
	})

	if err := shell.New(nav, term, out).Run(""); err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	return out.String()
}

func assertOutput(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\noutput:\n%s", want, out)
		}
	}
}

func TestStoreDayFlow(t *testing.T) {
	app := setupApp(t)
	csvPath := filepath.Join(app.Dir, "sales.csv")

	out := app.run(t,
		"categories create name=Dairy",
		`products create name="Milk 1L" category_id=1 purchase_syp=3000 purchase_usd=1 selling_syp=4000 selling_usd=1.5 min_quantity=5`,
		`suppliers create name="Al Noor" phone=0933000000`,
		"purchases add product_id=1 quantity=20",
		"purchases checkout supplier_id=1 paid_syp=50000",
		"sales add product_id=1 quantity=3",
		"sales checkout discount_syp=2000",
		"reports run kind=sales period=today",
		"reports export path="+csvPath,
		"dashboard",
		"quit",
	)

	// Step 1: purchase adds stock and leaves the unpaid part as debt
	assertOutput(t, out, "Purchase #1 saved", "Purchase #1 from Al Noor. Total: 60000 SYP / 20 USD")
	var supplier models.Supplier
	if err := app.DB.First(&supplier, 1).Error; err != nil {
		t.Fatalf("failed to load supplier: %v", err)
	}
	testutil.AssertDecimal(t, "debt syp", supplier.DebtSYP, "10000")
	testutil.AssertDecimal(t, "debt usd", supplier.DebtUSD, "20")

	// Step 2: sale applies the discount and removes stock
	assertOutput(t, out, "Sale #1 saved. Total: 10000 SYP / 4.5 USD")
	if got := testutil.ReloadProduct(t, app.DB, 1).Quantity; got != 17 {
		t.Errorf("expected 17 in stock, got %f", got)
	}

	// Step 3: report export and dashboard see the sale
	assertOutput(t, out, "Report saved to "+csvPath, "Today's sales: 10000 SYP / 4.5 USD", "Suppliers: 1")
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("expected exported report: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,") {
		t.Errorf("expected CSV header, got %q", string(data))
	}

	if got := testutil.CountRows(t, app.DB, "inventory_movements"); got != 2 {
		t.Errorf("expected 2 stock movements, got %d", got)
	}
}

func TestCheckoutAfterStockDrop(t *testing.T) {
	app := setupApp(t)
	product := testutil.CreateTestProduct(t, app.DB, 20)

	out := app.run(t,
		"sales add product_id=1 quantity=5",
		"inventory adjust product_id=1 direction=remove quantity=18 reason=spoiled",
		"sales checkout",
		"sales cart",
	)

	assertOutput(t, out, "! Invalid input:", "1 lines", "Total: 25000 SYP / 12.5 USD")
	if got := testutil.CountRows(t, app.DB, "sales"); got != 0 {
		t.Errorf("expected no sale saved, got %d", got)
	}
	if got := testutil.ReloadProduct(t, app.DB, product.ID).Quantity; got != 2 {
		t.Errorf("expected stock 2, got %f", got)
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	app := setupApp(t)
	testutil.CreateTestCategory(t, app.DB)

	out := app.run(t,
		"categories delete id=1",
		"no",
		"categories delete id=1",
		"y",
	)

	assertOutput(t, out, "Nothing deleted", "Category deleted")
	if got := testutil.CountRows(t, app.DB, "categories"); got != 0 {
		t.Errorf("expected category deleted, got %d rows", got)
	}
}
