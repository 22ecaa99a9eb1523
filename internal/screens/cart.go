package screens

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
)

// cartActions are the line edits shared by the sale and purchase screens.
// Lines are numbered from 1 on screen.
type cartActions struct {
	cart    *cart.Cart
	dialogs Dialogs
	title   string
}

func (a *cartActions) add(product *models.Product, form Form) error {
	quantity := 1.0
	if form.Has("quantity") {
		quantity = form.Float("quantity")
	}
	return a.cart.Add(product, quantity)
}

func (a *cartActions) remove(form Form) error {
	line, err := lineIndex(form)
	if err != nil {
		return err
	}
	return a.cart.Remove(line)
}

func (a *cartActions) edit(form Form) error {
	line, err := lineIndex(form)
	if err != nil {
		return err
	}
	return a.cart.EditQuantity(line, form.Float("quantity"))
}

// clear empties the cart after confirmation and reports whether it did.
func (a *cartActions) clear() bool {
	if a.cart.IsEmpty() {
		return true
	}
	if !a.dialogs.Confirm("Clear cart", fmt.Sprintf("Remove all %d lines from the cart?", a.cart.Len())) {
		return false
	}
	a.cart.Clear()
	return true
}

func (a *cartActions) view(discountSYP, discountUSD decimal.Decimal) *View {
	table := &Table{Columns: []string{"#", "Product", "Qty", "Unit", "Price SYP", "Price USD", "Subtotal SYP", "Subtotal USD"}}
	for i, l := range a.cart.Lines() {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(i + 1), l.ProductName, qty(l.Quantity), l.Unit,
			money(l.UnitPriceSYP), money(l.UnitPriceUSD),
			money(l.SubtotalSYP), money(l.SubtotalUSD),
		})
	}

	totals := a.cart.Totals(discountSYP, discountUSD)
	summary := []string{fmt.Sprintf("%d lines", a.cart.Len())}
	if !discountSYP.IsZero() || !discountUSD.IsZero() {
		summary = append(summary,
			fmt.Sprintf("Subtotal: %s SYP / %s USD", money(totals.SubtotalSYP), money(totals.SubtotalUSD)),
			fmt.Sprintf("Discount: %s SYP / %s USD", money(discountSYP), money(discountUSD)),
		)
	}
	summary = append(summary, fmt.Sprintf("Total: %s SYP / %s USD", money(totals.TotalSYP), money(totals.TotalUSD)))

	return &View{Title: a.title, Table: table, Summary: summary}
}

func lineIndex(form Form) (int, error) {
	if !form.Has("line") {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "line is required")
	}
	return form.Int("line", 0) - 1, nil
}
