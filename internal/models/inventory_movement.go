package models

import "time"

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// InventoryMovement is an append-only ledger row written once per
// stock-affecting event.
type InventoryMovement struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ProductID    uint         `gorm:"not null" json:"product_id"`
	MovementType MovementType `gorm:"not null" json:"movement_type"`
	Quantity     float64      `gorm:"not null" json:"quantity"`
	Reason       string       `json:"reason"`
	MovementDate time.Time    `gorm:"not null" json:"movement_date"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
