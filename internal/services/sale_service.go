package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/pagination"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/validator"
)

// saleService handles point-of-sale commits and sales history.
type saleService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSaleService creates a new SaleServicer.
func NewSaleService(db *gorm.DB) SaleServicer {
	return &saleService{db: db, now: time.Now}
}

// SellableProducts lists in-stock products by name for the sales screen.
func (s *saleService) SellableProducts(search string) ([]models.Product, error) {
	q := s.db.Model(&models.Product{}).Where("quantity > 0")
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("name LIKE ?", likePattern(search))
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return products, nil
}

// Commit writes the sale, its items, the stock decrements and the 'out'
// movements in one transaction. Stock is re-checked inside the
// transaction; any failure leaves the database and the cart untouched.
// On success the cart is cleared.
func (s *saleService) Commit(c *cart.Cart, checkout SaleCheckout) (*models.Sale, error) {
	if c.Kind() != cart.KindSale {
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

	totals := c.Totals(checkout.DiscountSYP, checkout.DiscountUSD)
	now := s.now()
	sale := &models.Sale{
		TotalSYP:      totals.TotalSYP,
		TotalUSD:      totals.TotalUSD,
		PaymentMethod: checkout.PaymentMethod,
		DiscountSYP:   checkout.DiscountSYP,
		DiscountUSD:   checkout.DiscountUSD,
		Notes:         strings.TrimSpace(checkout.Notes),
		SaleDate:      now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		for _, line := range c.Lines() {
			product, err := findProduct(tx, line.ProductID)
			if err != nil {
				return err
			}
			if line.Quantity > product.Quantity {
				return apperrors.WithMessage(apperrors.ErrInsufficientStock,
					fmt.Sprintf("only %v of %s left in stock", product.Quantity, product.Name))
			}

			item := models.SaleItem{
				SaleID:       sale.ID,
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
			sale.Items = append(sale.Items, item)

			reason := fmt.Sprintf("sale #%d", sale.ID)
			if _, err := moveStock(tx, line.ProductID, models.MovementOut, line.Quantity, reason, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Get().Warnw("Sale commit rolled back", "lines", c.Len(), "error", err)
		return nil, err
	}

	logger.Get().Infow("Sale committed",
		"sale_id", sale.ID,
		"lines", len(sale.Items),
		"total_syp", sale.TotalSYP.String(),
		"total_usd", sale.TotalUSD.String(),
	)
	c.Clear()
	return sale, nil
}

// GetSaleByID retrieves a sale with its items.
func (s *saleService) GetSaleByID(saleID uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Preload("Items").First(&sale, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSaleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &sale, nil
}

// ListSales returns a page of sales newest first.
func (s *saleService) ListSales(page pagination.PageRequest, filter DateFilter) (*pagination.PageResponse[models.Sale], error) {
	page.Defaults()

	query := func() *gorm.DB {
		return applyDateFilter(s.db.Model(&models.Sale{}), "sale_date", filter.FromDate, filter.ToDate)
	}

	var totalItems int64
	if err := query().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var sales []models.Sale
	if err := query().Order("sale_date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(sales, page.Page, page.PageSize, totalItems)
	return &result, nil
}
