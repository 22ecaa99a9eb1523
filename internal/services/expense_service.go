package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/validator"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db, now: time.Now}
}

// CreateExpense records an expense. At least one amount must be positive.
func (s *expenseService) CreateExpense(in ExpenseInput) (*models.Expense, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}

	expense := &models.Expense{}
	s.apply(expense, in)
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return expense, nil
}

// ListExpenses returns expenses newest first.
func (s *expenseService) ListExpenses(filter ExpenseFilter) ([]models.Expense, error) {
	q := s.db.Model(&models.Expense{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		q = q.Where("category LIKE ? OR description LIKE ?", pattern, pattern)
	}
	q = applyDateFilter(q, "expense_date", filter.FromDate, filter.ToDate)

	var expenses []models.Expense
	if err := q.Order("expense_date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return expenses, nil
}

// GetExpenseByID retrieves an expense by ID
func (s *expenseService) GetExpenseByID(expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &expense, nil
}

// UpdateExpense replaces all editable fields of an expense.
func (s *expenseService) UpdateExpense(expenseID uint, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}
	if err := validateExpense(in); err != nil {
		return nil, err
	}

	s.apply(expense, in)
	updates := map[string]interface{}{
		"category":     expense.Category,
		"description":  expense.Description,
		"amount_syp":   expense.AmountSYP,
		"amount_usd":   expense.AmountUSD,
		"expense_date": expense.ExpenseDate,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return expense, nil
}

// DeleteExpense deletes an expense.
func (s *expenseService) DeleteExpense(expenseID uint) error {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

func (s *expenseService) apply(e *models.Expense, in ExpenseInput) {
	e.Category = strings.TrimSpace(in.Category)
	e.Description = strings.TrimSpace(in.Description)
	e.AmountSYP = in.AmountSYP
	e.AmountUSD = in.AmountUSD
	e.ExpenseDate = in.Date
	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = s.now()
	}
}

func validateExpense(in ExpenseInput) error {
	if err := validator.Struct(in); err != nil {
		return err
	}
	if !in.AmountSYP.IsPositive() && !in.AmountUSD.IsPositive() {
		return apperrors.ErrNonPositiveAmount
	}
	if in.AmountSYP.IsNegative() || in.AmountUSD.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrNonPositiveAmount, "amounts must not be negative")
	}
	return nil
}

// SumExpenses totals a list of expenses per currency.
func SumExpenses(expenses []models.Expense) ExpenseTotals {
	totals := ExpenseTotals{Count: len(expenses), AmountSYP: decimal.Zero, AmountUSD: decimal.Zero}
	for _, e := range expenses {
		totals.AmountSYP = totals.AmountSYP.Add(e.AmountSYP)
		totals.AmountUSD = totals.AmountUSD.Add(e.AmountUSD)
	}
	return totals
}
