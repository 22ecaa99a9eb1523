package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// ExpenseScreen records operating costs.
type ExpenseScreen struct {
	svc     services.ExpenseServicer
	dialogs Dialogs
	sel     selection
}

// NewExpenseScreen creates an expense screen.
func NewExpenseScreen(svc services.ExpenseServicer, dialogs Dialogs) *ExpenseScreen {
	return &ExpenseScreen{svc: svc, dialogs: dialogs}
}

func (s *ExpenseScreen) Name() string  { return "expenses" }
func (s *ExpenseScreen) Title() string { return "Expenses" }

func (s *ExpenseScreen) Actions() []string {
	return []string{"list", "categories", "select", "create", "update", "delete", "clear"}
}

func (s *ExpenseScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "list":
		return s.list(form)
	case "categories":
		return &View{
			Title:   "Expense categories",
			Message: "Suggested categories: " + strings.Join(models.ExpenseCategories, ", "),
		}, nil
	case "select":
		expenseID, err := form.ID("id")
		if err != nil {
			return nil, err
		}
		expense, err := s.svc.GetExpenseByID(expenseID)
		if err != nil {
			return nil, err
		}
		s.sel.set(expense.ID, expenseForm(expense))
		return &View{Title: s.Title(), Form: s.sel.form}, nil
	case "create":
		in, err := expenseInput(s.sel.input(form))
		if err != nil {
			return nil, err
		}
		if _, err := s.svc.CreateExpense(in); err != nil {
			return nil, err
		}
		return s.done("Expense recorded")
	case "update":
		expenseID, err := s.sel.selected()
		if err != nil {
			return nil, err
		}
		in, err := expenseInput(s.sel.input(form))
		if err != nil {
			return nil, err
		}
		if _, err := s.svc.UpdateExpense(expenseID, in); err != nil {
			return nil, err
		}
		return s.done("Expense updated")
	case "delete":
		expenseID, err := s.sel.target(form)
		if err != nil {
			return nil, err
		}
		if !s.dialogs.Confirm("Delete expense", fmt.Sprintf("Delete expense #%d?", expenseID)) {
			return &View{Title: s.Title(), Message: "Nothing deleted"}, nil
		}
		if err := s.svc.DeleteExpense(expenseID); err != nil {
			return nil, err
		}
		return s.done("Expense deleted")
	case "clear":
		s.sel.reset()
		return &View{Title: s.Title(), Message: "Form cleared"}, nil
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *ExpenseScreen) done(message string) (*View, error) {
	s.sel.reset()
	view, err := s.list(nil)
	if err != nil {
		return nil, err
	}
	view.Message = message
	return view, nil
}

func (s *ExpenseScreen) list(form Form) (*View, error) {
	from, err := form.Date("from")
	if err != nil {
		return nil, err
	}
	to, err := form.Date("to")
	if err != nil {
		return nil, err
	}

	expenses, err := s.svc.ListExpenses(services.ExpenseFilter{Search: form.Get("search"), FromDate: from, ToDate: to})
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Date", "Category", "Description", "SYP", "USD"}}
	for _, e := range expenses {
		table.Rows = append(table.Rows, []string{
			id(e.ID), e.ExpenseDate.Local().Format(dateLayout), e.Category, e.Description,
			money(e.AmountSYP), money(e.AmountUSD),
		})
	}

	totals := services.SumExpenses(expenses)
	return &View{
		Title: s.Title(),
		Table: table,
		Summary: []string{
			fmt.Sprintf("%d expenses", totals.Count),
			"Total SYP: " + money(totals.AmountSYP),
			"Total USD: " + money(totals.AmountUSD),
		},
	}, nil
}

func expenseInput(f Form) (services.ExpenseInput, error) {
	date, err := f.Date("date")
	if err != nil {
		return services.ExpenseInput{}, err
	}
	in := services.ExpenseInput{
		Category:    f.Get("category"),
		Description: f.Get("description"),
		AmountSYP:   f.Decimal("amount_syp"),
		AmountUSD:   f.Decimal("amount_usd"),
	}
	if date != nil {
		in.Date = *date
	}
	return in, nil
}

func expenseForm(e *models.Expense) Form {
	return Form{
		"category":    e.Category,
		"description": e.Description,
		"amount_syp":  e.AmountSYP.String(),
		"amount_usd":  e.AmountUSD.String(),
		"date":        e.ExpenseDate.In(time.Local).Format(dateLayout),
	}
}
