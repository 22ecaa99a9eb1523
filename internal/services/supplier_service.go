package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/validator"
)

// supplierService handles supplier-related business logic.
type supplierService struct {
	db *gorm.DB
}

// NewSupplierService creates a new SupplierServicer.
func NewSupplierService(db *gorm.DB) SupplierServicer {
	return &supplierService{db: db}
}

// CreateSupplier creates a supplier. Debt is stored exactly as given.
func (s *supplierService) CreateSupplier(in SupplierInput) (*models.Supplier, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{}
	applySupplierInput(supplier, in)
	if err := s.db.Create(supplier).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return supplier, nil
}

// ListSuppliers returns suppliers newest first, optionally filtered by
// name or phone.
func (s *supplierService) ListSuppliers(search string) ([]models.Supplier, error) {
	q := s.db.Model(&models.Supplier{})
	if search = strings.TrimSpace(search); search != "" {
		pattern := likePattern(search)
		q = q.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}

	var suppliers []models.Supplier
	if err := q.Order("id DESC").Find(&suppliers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return suppliers, nil
}

// GetSupplierByID retrieves a supplier by ID
func (s *supplierService) GetSupplierByID(supplierID uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.First(&supplier, supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplierNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &supplier, nil
}

// UpdateSupplier replaces all editable fields. This is the only way debt
// goes down.
func (s *supplierService) UpdateSupplier(supplierID uint, in SupplierInput) (*models.Supplier, error) {
	supplier, err := s.GetSupplierByID(supplierID)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	applySupplierInput(supplier, in)
	updates := map[string]interface{}{
		"name":     supplier.Name,
		"phone":    supplier.Phone,
		"address":  supplier.Address,
		"notes":    supplier.Notes,
		"debt_syp": supplier.DebtSYP,
		"debt_usd": supplier.DebtUSD,
	}
	if err := s.db.Model(supplier).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return supplier, nil
}

// DeleteSupplier deletes a supplier. Its purchases remain and show no
// supplier.
func (s *supplierService) DeleteSupplier(supplierID uint) error {
	supplier, err := s.GetSupplierByID(supplierID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(supplier).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

func applySupplierInput(s *models.Supplier, in SupplierInput) {
	s.Name = strings.TrimSpace(in.Name)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Address = strings.TrimSpace(in.Address)
	s.Notes = strings.TrimSpace(in.Notes)
	s.DebtSYP = in.DebtSYP
	s.DebtUSD = in.DebtUSD
}
