package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/validator"
)

// productService handles product-related business logic.
type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// CreateProduct creates a product with its opening stock.
func (s *productService) CreateProduct(in ProductInput) (*models.Product, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkCategory(in.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Quantity: in.Quantity,
	}
	applyProductInput(product, in)

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return s.GetProductByID(product.ID)
}

// ListProducts returns products newest first. search matches the product
// name or its category name.
func (s *productService) ListProducts(search string) ([]models.Product, error) {
	q := s.db.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
	if search = strings.TrimSpace(search); search != "" {
		pattern := likePattern(search)
		q = q.Where("products.name LIKE ? OR categories.name LIKE ?", pattern, pattern)
	}

	var products []models.Product
	if err := q.Preload("Category").Order("products.id DESC").Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return products, nil
}

// GetProductByID retrieves a product with its category.
func (s *productService) GetProductByID(productID uint) (*models.Product, error) {
	return findProduct(s.db, productID)
}

// UpdateProduct updates the descriptive and price fields. Quantity is
// never changed here.
func (s *productService) UpdateProduct(productID uint, in ProductInput) (*models.Product, error) {
	product, err := s.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkCategory(in.CategoryID); err != nil {
		return nil, err
	}

	applyProductInput(product, in)
	updates := map[string]interface{}{
		"name":               product.Name,
		"category_id":        product.CategoryID,
		"purchase_price_syp": product.PurchasePriceSYP,
		"purchase_price_usd": product.PurchasePriceUSD,
		"selling_price_syp":  product.SellingPriceSYP,
		"selling_price_usd":  product.SellingPriceUSD,
		"min_quantity":       product.MinQuantity,
		"unit":               product.Unit,
		"description":        product.Description,
	}
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return s.GetProductByID(productID)
}

// DeleteProduct deletes a product that no sale, purchase or movement
// references.
func (s *productService) DeleteProduct(productID uint) error {
	product, err := s.GetProductByID(productID)
	if err != nil {
		return err
	}

	for _, table := range []string{"sale_items", "purchase_items", "inventory_movements"} {
		var count int64
		if err := s.db.Table(table).Where("product_id = ?", productID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if count > 0 {
			return apperrors.ErrProductInUse
		}
	}

	if err := s.db.Delete(product).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

func (s *productService) checkCategory(categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func applyProductInput(p *models.Product, in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.CategoryID = in.CategoryID
	p.PurchasePriceSYP = in.PurchasePriceSYP
	p.PurchasePriceUSD = in.PurchasePriceUSD
	p.SellingPriceSYP = in.SellingPriceSYP
	p.SellingPriceUSD = in.SellingPriceUSD
	p.MinQuantity = in.MinQuantity
	p.Unit = strings.TrimSpace(in.Unit)
	if p.Unit == "" {
		p.Unit = models.DefaultUnit
	}
	p.Description = strings.TrimSpace(in.Description)
}

// findProduct loads a product with its category using db, which may be a
// transaction.
func findProduct(db *gorm.DB, productID uint) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Category").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &product, nil
}
