package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/pagination"
)

// DefaultAdjustReason is recorded when an adjustment has no reason.
const DefaultAdjustReason = "manual adjustment"

// inventoryService handles stock levels and manual adjustments.
type inventoryService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewInventoryService creates a new InventoryServicer.
func NewInventoryService(db *gorm.DB) InventoryServicer {
	return &inventoryService{db: db, now: time.Now}
}

// ListStock returns products ordered by quantity ascending.
func (s *inventoryService) ListStock(search string, filter StockFilter) ([]models.Product, error) {
	q := s.db.Model(&models.Product{})
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("name LIKE ?", likePattern(search))
	}

	switch filter {
	case StockFilterLow:
		q = q.Where("quantity > 0 AND quantity <= min_quantity")
	case StockFilterOut:
		q = q.Where("quantity <= 0")
	case StockFilterAll, "":
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown stock filter %q", filter))
	}

	var products []models.Product
	if err := q.Preload("Category").Order("quantity ASC, name ASC").Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return products, nil
}

// Summary counts products per stock status.
func (s *inventoryService) Summary() (*StockSummary, error) {
	var summary StockSummary
	err := s.db.Model(&models.Product{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN quantity > min_quantity THEN 1 ELSE 0 END), 0) AS available,
			COALESCE(SUM(CASE WHEN quantity > 0 AND quantity <= min_quantity THEN 1 ELSE 0 END), 0) AS low,
			COALESCE(SUM(CASE WHEN quantity <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock`).
		Scan(&summary).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &summary, nil
}

// Adjust changes a product's quantity and appends the matching movement
// in one transaction.
func (s *inventoryService) Adjust(productID uint, direction AdjustDirection, quantity float64, reason string) (*models.InventoryMovement, error) {
	var movementType models.MovementType
	switch direction {
	case AdjustAdd:
		movementType = models.MovementIn
	case AdjustRemove:
		movementType = models.MovementOut
	default:
		return nil, apperrors.ErrInvalidMovementDir
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return nil, apperrors.WithMessage(apperrors.ErrNonPositiveQty, "Quantity must be a finite number")
	}
	if quantity <= 0 {
		return nil, apperrors.ErrNonPositiveQty
	}
	if reason = strings.TrimSpace(reason); reason == "" {
		reason = DefaultAdjustReason
	}

	var movement *models.InventoryMovement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(tx, productID)
		if err != nil {
			return err
		}

		if movementType == models.MovementOut && quantity > product.Quantity {
			return apperrors.WithMessage(apperrors.ErrInsufficientStock,
				fmt.Sprintf("cannot remove %v, only %v in stock", quantity, product.Quantity))
		}

		movement, err = moveStock(tx, product.ID, movementType, quantity, reason, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("Stock adjusted",
		"product_id", productID,
		"type", movementType,
		"quantity", quantity,
		"reason", reason,
	)
	return movement, nil
}

// ListMovements returns the stock ledger newest first, optionally for a
// single product.
func (s *inventoryService) ListMovements(productID *uint, page pagination.PageRequest) (*pagination.PageResponse[models.InventoryMovement], error) {
	page.Defaults()

	query := func() *gorm.DB {
		q := s.db.Model(&models.InventoryMovement{})
		if productID != nil {
			q = q.Where("product_id = ?", *productID)
		}
		return q
	}

	var totalItems int64
	if err := query().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var movements []models.InventoryMovement
	if err := query().Preload("Product").
		Order("movement_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&movements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(movements, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// moveStock applies a quantity change and writes its ledger row. It must
// run inside the caller's transaction.
func moveStock(tx *gorm.DB, productID uint, movementType models.MovementType, quantity float64, reason string, at time.Time) (*models.InventoryMovement, error) {
	delta := gorm.Expr("quantity + ?", quantity)
	if movementType == models.MovementOut {
		delta = gorm.Expr("quantity - ?", quantity)
	}

	result := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{"quantity": delta, "updated_at": at})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrProductNotFound
	}

	movement := &models.InventoryMovement{
		ProductID:    productID,
		MovementType: movementType,
		Quantity:     quantity,
		Reason:       reason,
		MovementDate: at,
	}
	if err := tx.Create(movement).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return movement, nil
}
