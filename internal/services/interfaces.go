package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/pagination"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name, description string) (*models.Category, error)
	ListCategories(search string) ([]models.Category, error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	UpdateCategory(categoryID uint, name, description string) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// ProductInput carries the editable product fields. Quantity is only
// read on create; afterwards stock changes through sales, purchases and
// inventory adjustments.
type ProductInput struct {
	Name             string `validate:"notblank" label:"product name"`
	CategoryID       *uint
	PurchasePriceSYP decimal.Decimal `validate:"dgte" label:"purchase price (SYP)"`
	PurchasePriceUSD decimal.Decimal `validate:"dgte" label:"purchase price (USD)"`
	SellingPriceSYP  decimal.Decimal `validate:"dgte" label:"selling price (SYP)"`
	SellingPriceUSD  decimal.Decimal `validate:"dgte" label:"selling price (USD)"`
	Quantity         float64         `validate:"qty" label:"quantity"`
	MinQuantity      float64         `validate:"qty" label:"minimum quantity"`
	Unit             string
	Description      string
}

// ProductServicer defines the contract for product-related business logic.
type ProductServicer interface {
	CreateProduct(in ProductInput) (*models.Product, error)
	ListProducts(search string) ([]models.Product, error)
	GetProductByID(productID uint) (*models.Product, error)
	UpdateProduct(productID uint, in ProductInput) (*models.Product, error)
	DeleteProduct(productID uint) error
}

// SupplierInput carries the editable supplier fields, including debt.
type SupplierInput struct {
	Name    string `validate:"notblank" label:"supplier name"`
	Phone   string
	Address string
	Notes   string
	DebtSYP decimal.Decimal
	DebtUSD decimal.Decimal
}

// SupplierServicer defines the contract for supplier-related business logic.
type SupplierServicer interface {
	CreateSupplier(in SupplierInput) (*models.Supplier, error)
	ListSuppliers(search string) ([]models.Supplier, error)
	GetSupplierByID(supplierID uint) (*models.Supplier, error)
	UpdateSupplier(supplierID uint, in SupplierInput) (*models.Supplier, error)
	DeleteSupplier(supplierID uint) error
}

// ExpenseInput carries the editable expense fields. A zero Date means now.
type ExpenseInput struct {
	Category    string `validate:"notblank" label:"category"`
	Description string `validate:"notblank" label:"description"`
	AmountSYP   decimal.Decimal
	AmountUSD   decimal.Decimal
	Date        time.Time
}

// ExpenseFilter holds optional filters for listing expenses. Dates are
// inclusive calendar days.
type ExpenseFilter struct {
	Search   string
	FromDate *time.Time
	ToDate   *time.Time
}

// ExpenseTotals is the per-currency sum of a list of expenses.
type ExpenseTotals struct {
	Count     int
	AmountSYP decimal.Decimal
	AmountUSD decimal.Decimal
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(in ExpenseInput) (*models.Expense, error)
	ListExpenses(filter ExpenseFilter) ([]models.Expense, error)
	GetExpenseByID(expenseID uint) (*models.Expense, error)
	UpdateExpense(expenseID uint, in ExpenseInput) (*models.Expense, error)
	DeleteExpense(expenseID uint) error
}

// StockFilter selects products on the inventory screen.
type StockFilter string

const (
	StockFilterAll StockFilter = "all"
	StockFilterLow StockFilter = "low"
	StockFilterOut StockFilter = "out"
)

// AdjustDirection is the operator's choice on the adjustment form.
type AdjustDirection string

const (
	AdjustAdd    AdjustDirection = "add"
	AdjustRemove AdjustDirection = "remove"
)

// StockSummary counts products per stock status.
type StockSummary struct {
	Total     int64
	Available int64
	Low       int64
	Out       int64 `gorm:"column:out_of_stock"`
}

// InventoryServicer defines the contract for stock levels and adjustments.
type InventoryServicer interface {
	ListStock(search string, filter StockFilter) ([]models.Product, error)
	Summary() (*StockSummary, error)
	Adjust(productID uint, direction AdjustDirection, quantity float64, reason string) (*models.InventoryMovement, error)
	ListMovements(productID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.InventoryMovement], error)
}

// SaleCheckout carries the checkout form of the sales screen.
type SaleCheckout struct {
	PaymentMethod models.PaymentMethod `validate:"payment_method" label:"payment method"`
	DiscountSYP   decimal.Decimal      `validate:"dgte" label:"discount (SYP)"`
	DiscountUSD   decimal.Decimal      `validate:"dgte" label:"discount (USD)"`
	Notes         string
}

// DateFilter restricts history lists to inclusive calendar days.
type DateFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// SaleServicer defines the contract for point-of-sale operations.
type SaleServicer interface {
	SellableProducts(search string) ([]models.Product, error)
	Commit(c *cart.Cart, checkout SaleCheckout) (*models.Sale, error)
	GetSaleByID(saleID uint) (*models.Sale, error)
	ListSales(page pagination.PageRequest, filter DateFilter) (*pagination.PageResponse[models.Sale], error)
}

// PurchaseCheckout carries the checkout form of the purchases screen.
type PurchaseCheckout struct {
	SupplierID    *uint
	PaymentMethod models.PaymentMethod `validate:"payment_method" label:"payment method"`
	PaidSYP       decimal.Decimal      `validate:"dgte" label:"paid amount (SYP)"`
	PaidUSD       decimal.Decimal      `validate:"dgte" label:"paid amount (USD)"`
	Notes         string
}

// PurchaseServicer defines the contract for stock purchases.
type PurchaseServicer interface {
	PurchasableProducts(search string) ([]models.Product, error)
	Commit(c *cart.Cart, checkout PurchaseCheckout) (*models.Purchase, error)
	GetPurchaseByID(purchaseID uint) (*models.Purchase, error)
	ListPurchases(page pagination.PageRequest, filter DateFilter) (*pagination.PageResponse[models.Purchase], error)
}

// ReportServicer defines the contract for read-only aggregate reports.
type ReportServicer interface {
	Generate(kind ReportKind, dates DateRange) (*Report, error)
}

// DashboardServicer defines the contract for the home screen figures.
type DashboardServicer interface {
	Summary(now time.Time) (*Dashboard, error)
}
