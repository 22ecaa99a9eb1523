package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a committed point-of-sale transaction. Totals are
// stored after the discount is applied.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TotalSYP      decimal.Decimal `gorm:"column:total_syp;type:real;not null" json:"total_syp"`
	TotalUSD      decimal.Decimal `gorm:"column:total_usd;type:real;not null" json:"total_usd"`
	PaymentMethod PaymentMethod   `gorm:"not null" json:"payment_method"`
	DiscountSYP   decimal.Decimal `gorm:"column:discount_syp;type:real;not null" json:"discount_syp"`
	DiscountUSD   decimal.Decimal `gorm:"column:discount_usd;type:real;not null" json:"discount_usd"`
	Notes         string          `json:"notes"`
	SaleDate      time.Time       `gorm:"not null" json:"sale_date"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// SaleItem is a write-once snapshot of a product line at sale time.
type SaleItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SaleID       uint            `gorm:"not null" json:"sale_id"`
	ProductID    uint            `gorm:"not null" json:"product_id"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	Quantity     float64         `gorm:"not null" json:"quantity"`
	UnitPriceSYP decimal.Decimal `gorm:"column:unit_price_syp;type:real;not null" json:"unit_price_syp"`
	UnitPriceUSD decimal.Decimal `gorm:"column:unit_price_usd;type:real;not null" json:"unit_price_usd"`
	SubtotalSYP  decimal.Decimal `gorm:"column:subtotal_syp;type:real;not null" json:"subtotal_syp"`
	SubtotalUSD  decimal.Decimal `gorm:"column:subtotal_usd;type:real;not null" json:"subtotal_usd"`
}
