package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit is the unit-of-measure label used when none is given.
const DefaultUnit = "piece"

// StockStatus classifies a product's on-hand quantity.
type StockStatus string

const (
	StockAvailable  StockStatus = "available"
	StockLow        StockStatus = "low"
	StockOutOfStock StockStatus = "out"
)

// Product represents a sellable item. Quantity changes only through
// sales, purchases and inventory adjustments.
type Product struct {
	Base
	Name             string          `gorm:"not null" json:"name"`
	CategoryID       *uint           `json:"category_id,omitempty"`
	PurchasePriceSYP decimal.Decimal `gorm:"column:purchase_price_syp;type:real;not null" json:"purchase_price_syp"`
	PurchasePriceUSD decimal.Decimal `gorm:"column:purchase_price_usd;type:real;not null" json:"purchase_price_usd"`
	SellingPriceSYP  decimal.Decimal `gorm:"column:selling_price_syp;type:real;not null" json:"selling_price_syp"`
	SellingPriceUSD  decimal.Decimal `gorm:"column:selling_price_usd;type:real;not null" json:"selling_price_usd"`
	Quantity         float64         `gorm:"not null" json:"quantity"`
	MinQuantity      float64         `gorm:"not null" json:"min_quantity"`
	Unit             string          `json:"unit"`
	Description      string          `json:"description"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Status reports the product's stock status.
func (p *Product) Status() StockStatus {
	switch {
	case p.Quantity <= 0:
		return StockOutOfStock
	case p.Quantity <= p.MinQuantity:
		return StockLow
	default:
		return StockAvailable
	}
}

// CategoryName returns the category name, or UncategorizedLabel when the
// product has none or its category no longer exists.
func (p *Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return UncategorizedLabel
	}
	return p.Category.Name
}
