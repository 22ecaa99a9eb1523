package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoSupplierLabel is shown for purchases without a supplier.
const NoSupplierLabel = "no supplier"

// Purchase represents a committed stock purchase.
type Purchase struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SupplierID    *uint           `json:"supplier_id,omitempty"`
	TotalSYP      decimal.Decimal `gorm:"column:total_syp;type:real;not null" json:"total_syp"`
	TotalUSD      decimal.Decimal `gorm:"column:total_usd;type:real;not null" json:"total_usd"`
	PaymentMethod PaymentMethod   `gorm:"not null" json:"payment_method"`
	PaidAmountSYP decimal.Decimal `gorm:"column:paid_amount_syp;type:real;not null" json:"paid_amount_syp"`
	PaidAmountUSD decimal.Decimal `gorm:"column:paid_amount_usd;type:real;not null" json:"paid_amount_usd"`
	Notes         string          `json:"notes"`
	PurchaseDate  time.Time       `gorm:"not null" json:"purchase_date"`

	// Relationships
	Supplier *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// SupplierName returns the supplier name or NoSupplierLabel.
func (p *Purchase) SupplierName() string {
	if p.Supplier == nil {
		return NoSupplierLabel
	}
	return p.Supplier.Name
}

// PurchaseItem has the same shape as SaleItem.
type PurchaseItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	PurchaseID   uint            `gorm:"not null" json:"purchase_id"`
	ProductID    uint            `gorm:"not null" json:"product_id"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	Quantity     float64         `gorm:"not null" json:"quantity"`
	UnitPriceSYP decimal.Decimal `gorm:"column:unit_price_syp;type:real;not null" json:"unit_price_syp"`
	UnitPriceUSD decimal.Decimal `gorm:"column:unit_price_usd;type:real;not null" json:"unit_price_usd"`
	SubtotalSYP  decimal.Decimal `gorm:"column:subtotal_syp;type:real;not null" json:"subtotal_syp"`
	SubtotalUSD  decimal.Decimal `gorm:"column:subtotal_usd;type:real;not null" json:"subtotal_usd"`
}
