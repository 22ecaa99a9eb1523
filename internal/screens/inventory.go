package screens

import (
	"fmt"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/pagination"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// InventoryScreen shows stock levels and records manual adjustments.
type InventoryScreen struct {
	svc services.InventoryServicer
}

// NewInventoryScreen creates an inventory screen.
func NewInventoryScreen(svc services.InventoryServicer) *InventoryScreen {
	return &InventoryScreen{svc: svc}
}

func (s *InventoryScreen) Name() string  { return "inventory" }
func (s *InventoryScreen) Title() string { return "Inventory" }

func (s *InventoryScreen) Actions() []string {
	return []string{"list", "summary", "adjust", "movements"}
}

func (s *InventoryScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "list":
		return s.list(form.Get("search"), services.StockFilter(form.Get("filter")))
	case "summary":
		return s.summary()
	case "adjust":
		return s.adjust(form)
	case "movements":
		return s.movements(form)
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *InventoryScreen) list(search string, filter services.StockFilter) (*View, error) {
	products, err := s.svc.ListStock(search, filter)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Name", "Category", "Qty", "Min", "Unit", "Status"}}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			id(p.ID), p.Name, p.CategoryName(), qty(p.Quantity), qty(p.MinQuantity), p.Unit, string(p.Status()),
		})
	}

	view, err := s.summary()
	if err != nil {
		return nil, err
	}
	view.Table = table
	return view, nil
}

func (s *InventoryScreen) summary() (*View, error) {
	summary, err := s.svc.Summary()
	if err != nil {
		return nil, err
	}
	return &View{
		Title: s.Title(),
		Summary: []string{
			fmt.Sprintf("Products: %d", summary.Total),
			fmt.Sprintf("Available: %d", summary.Available),
			fmt.Sprintf("Low: %d", summary.Low),
			fmt.Sprintf("Out of stock: %d", summary.Out),
		},
	}, nil
}

func (s *InventoryScreen) adjust(form Form) (*View, error) {
	productID, err := form.ID("product_id")
	if err != nil {
		return nil, err
	}
	movement, err := s.svc.Adjust(productID, services.AdjustDirection(form.Get("direction")), form.Float("quantity"), form.Get("reason"))
	if err != nil {
		return nil, err
	}

	view, err := s.list("", services.StockFilterAll)
	if err != nil {
		return nil, err
	}
	view.Message = fmt.Sprintf("Stock adjusted: %s %s of product #%d (%s)",
		movement.MovementType, qty(movement.Quantity), productID, movement.Reason)
	return view, nil
}

func (s *InventoryScreen) movements(form Form) (*View, error) {
	productID, err := form.OptionalID("product_id")
	if err != nil {
		return nil, err
	}
	page, err := s.svc.ListMovements(productID, pagination.PageRequest{Page: form.Int("page", 1), PageSize: form.Int("size", 50)})
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Date", "Product", "Type", "Qty", "Reason"}}
	for _, m := range page.Data {
		name := ""
		if m.Product != nil {
			name = m.Product.Name
		}
		table.Rows = append(table.Rows, []string{
			id(m.ID), stamp(m.MovementDate), name, string(m.MovementType), qty(m.Quantity), m.Reason,
		})
	}
	return &View{
		Title:   "Stock movements",
		Table:   table,
		Summary: []string{pageSummary(page.Page, page.TotalPages, page.TotalItems)},
	}, nil
}

func pageSummary(page, totalPages int, totalItems int64) string {
	if totalPages == 0 {
		totalPages = 1
	}
	return fmt.Sprintf("Page %d of %d (%d rows)", page, totalPages, totalItems)
}
