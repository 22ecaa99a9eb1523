package screens

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/cart"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/pagination"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// PurchaseScreen records stock bought from suppliers. The cart is owned by
// the caller and outlives the screen.
type PurchaseScreen struct {
	purchases services.PurchaseServicer
	products  services.ProductServicer
	suppliers services.SupplierServicer
	dialogs   Dialogs
	cart      cartActions
}

// NewPurchaseScreen creates a purchase screen over c, which must be a
// purchase cart.
func NewPurchaseScreen(purchases services.PurchaseServicer, products services.ProductServicer, suppliers services.SupplierServicer, c *cart.Cart, dialogs Dialogs) *PurchaseScreen {
	return &PurchaseScreen{
		purchases: purchases,
		products:  products,
		suppliers: suppliers,
		dialogs:   dialogs,
		cart:      cartActions{cart: c, dialogs: dialogs, title: "Purchase cart"},
	}
}

func (s *PurchaseScreen) Name() string  { return "purchases" }
func (s *PurchaseScreen) Title() string { return "Purchases" }

func (s *PurchaseScreen) Actions() []string {
	return []string{"products", "suppliers", "add", "remove", "edit", "cart", "clear", "checkout", "history", "details"}
}

func (s *PurchaseScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "products":
		return s.productList(form.Get("search"))
	case "suppliers":
		return s.supplierList()
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
		return s.cartView(), nil
	case "remove":
		if err := s.cart.remove(form); err != nil {
			return nil, err
		}
		return s.cartView(), nil
	case "edit":
		if err := s.cart.edit(form); err != nil {
			return nil, err
		}
		return s.cartView(), nil
	case "cart":
		return s.cartView(), nil
	case "clear":
		if !s.cart.clear() {
			return s.cartView(), nil
		}
		view := s.cartView()
		view.Message = "Cart cleared"
		return view, nil
	case "checkout":
		return s.checkout(form)
	case "history":
		return s.history(form)
	case "details":
		return s.details(form)
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *PurchaseScreen) cartView() *View {
	return s.cart.view(decimal.Zero, decimal.Zero)
}

func (s *PurchaseScreen) productList(search string) (*View, error) {
	products, err := s.purchases.PurchasableProducts(search)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Name", "Cost SYP", "Cost USD", "In stock", "Unit"}}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			id(p.ID), p.Name, money(p.PurchasePriceSYP), money(p.PurchasePriceUSD), qty(p.Quantity), p.Unit,
		})
	}
	return &View{Title: "Products", Table: table, Summary: []string{fmt.Sprintf("%d products", len(products))}}, nil
}

func (s *PurchaseScreen) supplierList() (*View, error) {
	suppliers, err := s.suppliers.ListSuppliers("")
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Supplier", "Phone", "Debt SYP", "Debt USD"}}
	for _, sp := range suppliers {
		table.Rows = append(table.Rows, []string{id(sp.ID), sp.Name, sp.Phone, money(sp.DebtSYP), money(sp.DebtUSD)})
	}
	return &View{Title: "Suppliers", Table: table, Message: "Set supplier_id= on checkout, or leave it blank"}, nil
}

func (s *PurchaseScreen) checkout(form Form) (*View, error) {
	supplierID, err := form.OptionalID("supplier_id")
	if err != nil {
		return nil, err
	}

	purchase, err := s.purchases.Commit(s.cart.cart, services.PurchaseCheckout{
		SupplierID:    supplierID,
		PaymentMethod: models.PaymentMethod(form.Get("payment")),
		PaidSYP:       form.Decimal("paid_syp"),
		PaidUSD:       form.Decimal("paid_usd"),
		Notes:         form.Get("notes"),
	})
	if err != nil {
		return nil, err
	}

	s.dialogs.Info("Purchase saved", fmt.Sprintf("Purchase #%d from %s. Total: %s SYP / %s USD",
		purchase.ID, purchase.SupplierName(), money(purchase.TotalSYP), money(purchase.TotalUSD)))

	view, err := s.productList("")
	if err != nil {
		return nil, err
	}
	view.Message = fmt.Sprintf("Purchase #%d saved", purchase.ID)
	return view, nil
}

func (s *PurchaseScreen) history(form Form) (*View, error) {
	from, err := form.Date("from")
	if err != nil {
		return nil, err
	}
	to, err := form.Date("to")
	if err != nil {
		return nil, err
	}

	page, err := s.purchases.ListPurchases(
		pagination.PageRequest{Page: form.Int("page", 1), PageSize: form.Int("size", 50)},
		services.DateFilter{FromDate: from, ToDate: to},
	)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Date", "Supplier", "Total SYP", "Total USD", "Paid SYP", "Paid USD", "Payment"}}
	for _, p := range page.Data {
		table.Rows = append(table.Rows, []string{
			id(p.ID), stamp(p.PurchaseDate), p.SupplierName(),
			money(p.TotalSYP), money(p.TotalUSD), money(p.PaidAmountSYP), money(p.PaidAmountUSD),
			string(p.PaymentMethod),
		})
	}
	return &View{Title: "Purchases history", Table: table, Summary: []string{pageSummary(page.Page, page.TotalPages, page.TotalItems)}}, nil
}

func (s *PurchaseScreen) details(form Form) (*View, error) {
	purchaseID, err := form.ID("id")
	if err != nil {
		return nil, err
	}
	purchase, err := s.purchases.GetPurchaseByID(purchaseID)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"Product", "Qty", "Cost SYP", "Cost USD", "Subtotal SYP", "Subtotal USD"}}
	for _, item := range purchase.Items {
		table.Rows = append(table.Rows, []string{
			item.ProductName, qty(item.Quantity),
			money(item.UnitPriceSYP), money(item.UnitPriceUSD),
			money(item.SubtotalSYP), money(item.SubtotalUSD),
		})
	}

	summary := []string{
		"Date: " + stamp(purchase.PurchaseDate),
		"Supplier: " + purchase.SupplierName(),
		"Payment: " + string(purchase.PaymentMethod),
		fmt.Sprintf("Total: %s SYP / %s USD", money(purchase.TotalSYP), money(purchase.TotalUSD)),
		fmt.Sprintf("Paid: %s SYP / %s USD", money(purchase.PaidAmountSYP), money(purchase.PaidAmountUSD)),
	}
	if purchase.Notes != "" {
		summary = append(summary, "Notes: "+purchase.Notes)
	}
	return &View{Title: fmt.Sprintf("Purchase #%d", purchase.ID), Table: table, Summary: summary}, nil
}
