// Package cart holds the in-memory line items of a sale or purchase that
// has not been committed yet.
package cart

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
)

// Kind selects the pricing and stock rules of a cart.
type Kind string

const (
	// KindSale prices lines at the selling price and caps them at stock.
	KindSale Kind = "sale"
	// KindPurchase prices lines at the purchase price.
	KindPurchase Kind = "purchase"
)

// Line is one product in the cart. Prices are snapshotted when the line
// is added, so later product edits do not change it.
type Line struct {
	ProductID    uint
	ProductName  string
	Unit         string
	Quantity     float64
	UnitPriceSYP decimal.Decimal
	UnitPriceUSD decimal.Decimal
	SubtotalSYP  decimal.Decimal
	SubtotalUSD  decimal.Decimal

	// Available is the product's stock when the line was added.
	Available float64
}

func (l *Line) recompute() {
	qty := decimal.NewFromFloat(l.Quantity)
	l.SubtotalSYP = qty.Mul(l.UnitPriceSYP)
	l.SubtotalUSD = qty.Mul(l.UnitPriceUSD)
}

// Totals is the computed footer of a cart.
type Totals struct {
	SubtotalSYP decimal.Decimal
	SubtotalUSD decimal.Decimal
	DiscountSYP decimal.Decimal
	DiscountUSD decimal.Decimal
	TotalSYP    decimal.Decimal
	TotalUSD    decimal.Decimal
}

// Cart is an ordered list of lines.
type Cart struct {
	kind  Kind
	lines []Line
}

// New returns an empty cart of the given kind.
func New(kind Kind) *Cart {
	return &Cart{kind: kind}
}

// Kind returns the cart kind.
func (c *Cart) Kind() Kind { return c.kind }

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Add puts quantity of product into the cart. A product already in the
// cart has its line increased instead of getting a second line. Sale
// carts reject quantities above the product's stock.
func (c *Cart) Add(product *models.Product, quantity float64) error {
	if err := checkQuantity(quantity); err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			return c.setQuantity(i, c.lines[i].Quantity+quantity)
		}
	}

	line := Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		Unit:        product.Unit,
		Available:   product.Quantity,
	}
	if c.kind == KindSale {
		line.UnitPriceSYP = product.SellingPriceSYP
		line.UnitPriceUSD = product.SellingPriceUSD
	} else {
		line.UnitPriceSYP = product.PurchasePriceSYP
		line.UnitPriceUSD = product.PurchasePriceUSD
	}

	if err := c.checkStock(&line, quantity); err != nil {
		return err
	}
	line.Quantity = quantity
	line.recompute()

	c.lines = append(c.lines, line)
	return nil
}

// Remove deletes the line at index.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return apperrors.ErrInvalidCartLine
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// EditQuantity replaces the quantity of the line at index.
func (c *Cart) EditQuantity(index int, quantity float64) error {
	if index < 0 || index >= len(c.lines) {
		return apperrors.ErrInvalidCartLine
	}
	if err := checkQuantity(quantity); err != nil {
		return err
	}
	return c.setQuantity(index, quantity)
}

func (c *Cart) setQuantity(index int, quantity float64) error {
	line := &c.lines[index]
	if err := c.checkStock(line, quantity); err != nil {
		return err
	}
	line.Quantity = quantity
	line.recompute()
	return nil
}

func (c *Cart) checkStock(line *Line, quantity float64) error {
	if c.kind != KindSale || quantity <= line.Available {
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrInsufficientStock,
		fmt.Sprintf("only %s %s of %s available", formatQty(line.Available), line.Unit, line.ProductName))
}

// Totals sums the line subtotals per currency and subtracts the discount.
// Each total is floored at zero. Purchase carts pass a zero discount.
func (c *Cart) Totals(discountSYP, discountUSD decimal.Decimal) Totals {
	t := Totals{
		DiscountSYP: discountSYP,
		DiscountUSD: discountUSD,
	}
	for _, l := range c.lines {
		t.SubtotalSYP = t.SubtotalSYP.Add(l.SubtotalSYP)
		t.SubtotalUSD = t.SubtotalUSD.Add(l.SubtotalUSD)
	}
	t.TotalSYP = decimal.Max(decimal.Zero, t.SubtotalSYP.Sub(discountSYP))
	t.TotalUSD = decimal.Max(decimal.Zero, t.SubtotalUSD.Sub(discountUSD))
	return t
}

// checkQuantity rejects zero, negative and non-finite quantities.
func checkQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return apperrors.WithMessage(apperrors.ErrNonPositiveQty, "Quantity must be a finite number")
	}
	if q <= 0 {
		return apperrors.ErrNonPositiveQty
	}
	return nil
}

func formatQty(q float64) string {
	return decimal.NewFromFloat(q).String()
}
