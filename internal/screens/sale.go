package screens

import (
	"fmt"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/export"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/pagination"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// ReceiptOptions controls where sale receipts are written.
type ReceiptOptions struct {
	Dir       string
	StoreName string
}

// SaleScreen is the point of sale. The cart is owned by the caller and
// outlives the screen.
type SaleScreen struct {
	sales    services.SaleServicer
	products services.ProductServicer
	dialogs  Dialogs
	receipts ReceiptOptions
	cart     cartActions
}

// NewSaleScreen creates a sale screen over c, which must be a sale cart.
func NewSaleScreen(sales services.SaleServicer, products services.ProductServicer, c *cart.Cart, dialogs Dialogs, receipts ReceiptOptions) *SaleScreen {
	return &SaleScreen{
		sales:    sales,
		products: products,
		dialogs:  dialogs,
		receipts: receipts,
		cart:     cartActions{cart: c, dialogs: dialogs, title: "Sale cart"},
	}
}

func (s *SaleScreen) Name() string  { return "sales" }
func (s *SaleScreen) Title() string { return "Point of sale" }

func (s *SaleScreen) Actions() []string {
	return []string{"products", "add", "remove", "edit", "cart", "clear", "checkout", "history", "details", "receipt"}
}

func (s *SaleScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "products":
		return s.productList(form.Get("search"))
	case "add":
		productID, err := form.ID("product_id")
		if err != nil {
			return nil, err
		}
		product, err := s.products.GetProductByID(productID)
		if err != nil {
			return nil, err
		}
		if err := s.cart.add(product, form); err != nil {
			return nil, err
		}
		return s.cartView(form), nil
	case "remove":
		if err := s.cart.remove(form); err != nil {
			return nil, err
		}
		return s.cartView(form), nil
	case "edit":
		if err := s.cart.edit(form); err != nil {
			return nil, err
		}
		return s.cartView(form), nil
	case "cart":
		return s.cartView(form), nil
	case "clear":
		if !s.cart.clear() {
			return s.cartView(form), nil
		}
		view := s.cartView(nil)
		view.Message = "Cart cleared"
		return view, nil
	case "checkout":
		return s.checkout(form)
	case "history":
		return s.history(form)
	case "details":
		return s.details(form)
	case "receipt":
		saleID, err := form.ID("id")
		if err != nil {
			return nil, err
		}
		sale, err := s.sales.GetSaleByID(saleID)
		if err != nil {
			return nil, err
		}
		return s.receipt(sale)
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *SaleScreen) cartView(form Form) *View {
	return s.cart.view(form.Decimal("discount_syp"), form.Decimal("discount_usd"))
}

func (s *SaleScreen) productList(search string) (*View, error) {
	products, err := s.sales.SellableProducts(search)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Name", "Price SYP", "Price USD", "In stock", "Unit"}}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			id(p.ID), p.Name, money(p.SellingPriceSYP), money(p.SellingPriceUSD), qty(p.Quantity), p.Unit,
		})
	}
	return &View{Title: "Products for sale", Table: table, Summary: []string{fmt.Sprintf("%d products in stock", len(products))}}, nil
}

func (s *SaleScreen) checkout(form Form) (*View, error) {
	sale, err := s.sales.Commit(s.cart.cart, services.SaleCheckout{
		PaymentMethod: models.PaymentMethod(form.Get("payment")),
		DiscountSYP:   form.Decimal("discount_syp"),
		DiscountUSD:   form.Decimal("discount_usd"),
		Notes:         form.Get("notes"),
	})
	if err != nil {
		return nil, err
	}

	s.dialogs.Info("Sale completed", fmt.Sprintf("Sale #%d saved. Total: %s SYP / %s USD",
		sale.ID, money(sale.TotalSYP), money(sale.TotalUSD)))

	if form.Get("receipt") == "yes" {
		if _, err := s.receipt(sale); err != nil {
			return nil, err
		}
	}

	view, err := s.productList("")
	if err != nil {
		return nil, err
	}
	view.Message = fmt.Sprintf("Sale #%d saved", sale.ID)
	return view, nil
}

func (s *SaleScreen) receipt(sale *models.Sale) (*View, error) {
	path, err := export.WriteReceipt(sale, s.receipts.Dir, s.receipts.StoreName)
	if err != nil {
		return nil, err
	}
	s.dialogs.Info("Receipt", "Receipt written to "+path)
	return &View{Title: s.Title(), Message: "Receipt written to " + path}, nil
}

func (s *SaleScreen) history(form Form) (*View, error) {
	from, err := form.Date("from")
	if err != nil {
		return nil, err
	}
	to, err := form.Date("to")
	if err != nil {
		return nil, err
	}

	page, err := s.sales.ListSales(
		pagination.PageRequest{Page: form.Int("page", 1), PageSize: form.Int("size", 50)},
		services.DateFilter{FromDate: from, ToDate: to},
	)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Date", "Total SYP", "Total USD", "Discount SYP", "Discount USD", "Payment"}}
	for _, sale := range page.Data {
		table.Rows = append(table.Rows, []string{
			id(sale.ID), stamp(sale.SaleDate), money(sale.TotalSYP), money(sale.TotalUSD),
			money(sale.DiscountSYP), money(sale.DiscountUSD), string(sale.PaymentMethod),
		})
	}
	return &View{Title: "Sales history", Table: table, Summary: []string{pageSummary(page.Page, page.TotalPages, page.TotalItems)}}, nil
}

func (s *SaleScreen) details(form Form) (*View, error) {
	saleID, err := form.ID("id")
	if err != nil {
		return nil, err
	}
	sale, err := s.sales.GetSaleByID(saleID)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"Product", "Qty", "Price SYP", "Price USD", "Subtotal SYP", "Subtotal USD"}}
	for _, item := range sale.Items {
		table.Rows = append(table.Rows, []string{
			item.ProductName, qty(item.Quantity),
			money(item.UnitPriceSYP), money(item.UnitPriceUSD),
			money(item.SubtotalSYP), money(item.SubtotalUSD),
		})
	}

	summary := []string{
		"Date: " + stamp(sale.SaleDate),
		"Payment: " + string(sale.PaymentMethod),
		fmt.Sprintf("Discount: %s SYP / %s USD", money(sale.DiscountSYP), money(sale.DiscountUSD)),
		fmt.Sprintf("Total: %s SYP / %s USD", money(sale.TotalSYP), money(sale.TotalUSD)),
	}
	if sale.Notes != "" {
		summary = append(summary, "Notes: "+sale.Notes)
	}
	return &View{Title: fmt.Sprintf("Sale #%d", sale.ID), Table: table, Summary: summary}, nil
}
