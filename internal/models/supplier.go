package models

import "github.com/shopspring/decimal"

// Supplier represents a vendor. Debt grows with unpaid purchase amounts
// and is only reduced by editing the supplier.
type Supplier struct {
	Base
	Name    string          `gorm:"not null" json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Notes   string          `json:"notes"`
	DebtSYP decimal.Decimal `gorm:"column:debt_syp;type:real;not null" json:"debt_syp"`
	DebtUSD decimal.Decimal `gorm:"column:debt_usd;type:real;not null" json:"debt_usd"`
}
