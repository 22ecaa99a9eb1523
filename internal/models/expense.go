package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategories are the suggested labels for an expense. The label
// column itself is free text.
var ExpenseCategories = []string{
	"salaries", "rent", "electricity", "water", "maintenance",
	"transport", "communications", "marketing", "other",
}

// Expense represents an operating cost.
type Expense struct {
	Base
	Category    string          `gorm:"not null" json:"category"`
	Description string          `gorm:"not null" json:"description"`
	AmountSYP   decimal.Decimal `gorm:"column:amount_syp;type:real;not null" json:"amount_syp"`
	AmountUSD   decimal.Decimal `gorm:"column:amount_usd;type:real;not null" json:"amount_usd"`
	ExpenseDate time.Time       `gorm:"not null" json:"expense_date"`
}
