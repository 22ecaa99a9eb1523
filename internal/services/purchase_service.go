package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/pagination"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/validator"
)

// purchaseService handles stock purchases and supplier debt.
type purchaseService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPurchaseService creates a new PurchaseServicer.
func NewPurchaseService(db *gorm.DB) PurchaseServicer {
	return &purchaseService{db: db, now: time.Now}
}

// PurchasableProducts lists all products by name, including out of stock.
func (s *purchaseService) PurchasableProducts(search string) ([]models.Product, error) {
	q := s.db.Model(&models.Product{})
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("name LIKE ?", likePattern(search))
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return products, nil
}

// Commit writes the purchase, its items, the stock increments, the 'in'
// movements and the supplier debt increase in one transaction. On
// success the cart is cleared.
func (s *purchaseService) Commit(c *cart.Cart, checkout PurchaseCheckout) (*models.Purchase, error) {
	if c.Kind() != cart.KindPurchase {
		return nil, apperrors.ErrCartKindMismatch
	}
	if c.IsEmpty() {
		return nil, apperrors.ErrEmptyCart
	}
	if checkout.PaymentMethod == "" {
		checkout.PaymentMethod = models.PaymentCash
	}
	if err := validator.Struct(checkout); err != nil {
		return nil, err
	}

	totals := c.Totals(decimal.Zero, decimal.Zero)
	now := s.now()
	purchase := &models.Purchase{
		SupplierID:    checkout.SupplierID,
		TotalSYP:      totals.TotalSYP,
		TotalUSD:      totals.TotalUSD,
		PaymentMethod: checkout.PaymentMethod,
		PaidAmountSYP: checkout.PaidSYP,
		PaidAmountUSD: checkout.PaidUSD,
		Notes:         strings.TrimSpace(checkout.Notes),
		PurchaseDate:  now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var supplier *models.Supplier
		if checkout.SupplierID != nil {
			var err error
			if supplier, err = findSupplier(tx, *checkout.SupplierID); err != nil {
				return err
			}
		}

		if err := tx.Omit("Supplier").Create(purchase).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		for _, line := range c.Lines() {
			item := models.PurchaseItem{
				PurchaseID:   purchase.ID,
				ProductID:    line.ProductID,
				ProductName:  line.ProductName,
				Quantity:     line.Quantity,
				UnitPriceSYP: line.UnitPriceSYP,
				UnitPriceUSD: line.UnitPriceUSD,
				SubtotalSYP:  line.SubtotalSYP,
				SubtotalUSD:  line.SubtotalUSD,
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
			purchase.Items = append(purchase.Items, item)

			reason := fmt.Sprintf("purchase #%d", purchase.ID)
			if _, err := moveStock(tx, line.ProductID, models.MovementIn, line.Quantity, reason, now); err != nil {
				return err
			}
		}

		if supplier != nil {
			if err := addSupplierDebt(tx, supplier, purchase); err != nil {
				return err
			}
			purchase.Supplier = supplier
		}
		return nil
	})
	if err != nil {
		logger.Get().Warnw("Purchase commit rolled back", "lines", c.Len(), "error", err)
		return nil, err
	}

	logger.Get().Infow("Purchase committed",
		"purchase_id", purchase.ID,
		"supplier_id", purchase.SupplierID,
		"total_syp", purchase.TotalSYP.String(),
		"total_usd", purchase.TotalUSD.String(),
	)
	c.Clear()
	return purchase, nil
}

// GetPurchaseByID retrieves a purchase with its supplier and items.
func (s *purchaseService) GetPurchaseByID(purchaseID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := s.db.Preload("Supplier").Preload("Items").First(&purchase, purchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &purchase, nil
}

// ListPurchases returns a page of purchases newest first.
func (s *purchaseService) ListPurchases(page pagination.PageRequest, filter DateFilter) (*pagination.PageResponse[models.Purchase], error) {
	page.Defaults()

	query := func() *gorm.DB {
		return applyDateFilter(s.db.Model(&models.Purchase{}), "purchase_date", filter.FromDate, filter.ToDate)
	}

	var totalItems int64
	if err := query().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var purchases []models.Purchase
	if err := query().Preload("Supplier").
		Order("purchase_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&purchases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(purchases, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// addSupplierDebt raises each currency's debt by the unpaid part of the
// purchase. Overpayment in one currency never lowers the debt.
func addSupplierDebt(tx *gorm.DB, supplier *models.Supplier, purchase *models.Purchase) error {
	shortSYP := decimal.Max(decimal.Zero, purchase.TotalSYP.Sub(purchase.PaidAmountSYP))
	shortUSD := decimal.Max(decimal.Zero, purchase.TotalUSD.Sub(purchase.PaidAmountUSD))
	if shortSYP.IsZero() && shortUSD.IsZero() {
		return nil
	}

	supplier.DebtSYP = supplier.DebtSYP.Add(shortSYP)
	supplier.DebtUSD = supplier.DebtUSD.Add(shortUSD)
	err := tx.Model(&models.Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]interface{}{
			"debt_syp": supplier.DebtSYP,
			"debt_usd": supplier.DebtUSD,
		}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

func findSupplier(db *gorm.DB, supplierID uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := db.First(&supplier, supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplierNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &supplier, nil
}
