package models

// UncategorizedLabel is shown for products without a (live) category.
const UncategorizedLabel = "uncategorized"

// Category represents a product category
type Category struct {
	Base
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
