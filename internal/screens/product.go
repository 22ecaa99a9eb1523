package screens

import (
	"fmt"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// ProductScreen manages the product catalogue.
type ProductScreen struct {
	products   services.ProductServicer
	categories services.CategoryServicer
	dialogs    Dialogs
	sel        selection
}

// NewProductScreen creates a product screen.
func NewProductScreen(products services.ProductServicer, categories services.CategoryServicer, dialogs Dialogs) *ProductScreen {
	return &ProductScreen{products: products, categories: categories, dialogs: dialogs}
}

func (s *ProductScreen) Name() string  { return "products" }
func (s *ProductScreen) Title() string { return "Products" }

func (s *ProductScreen) Actions() []string {
	return []string{"list", "categories", "select", "create", "update", "delete", "clear"}
}

func (s *ProductScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "list":
		return s.list(form.Get("search"))
	case "categories":
		return s.categoryChoices()
	case "select":
		productID, err := form.ID("id")
		if err != nil {
			return nil, err
		}
		product, err := s.products.GetProductByID(productID)
		if err != nil {
			return nil, err
		}
		s.sel.set(product.ID, productForm(product))
		return &View{Title: s.Title(), Form: s.sel.form}, nil
	case "create":
		in, err := productInput(s.sel.input(form))
		if err != nil {
			return nil, err
		}
		if _, err := s.products.CreateProduct(in); err != nil {
			return nil, err
		}
		return s.done("Product added")
	case "update":
		productID, err := s.sel.selected()
		if err != nil {
			return nil, err
		}
		in, err := productInput(s.sel.input(form))
		if err != nil {
			return nil, err
		}
		if _, err := s.products.UpdateProduct(productID, in); err != nil {
			return nil, err
		}
		return s.done("Product updated")
	case "delete":
		productID, err := s.sel.target(form)
		if err != nil {
			return nil, err
		}
		if !s.dialogs.Confirm("Delete product", fmt.Sprintf("Delete product #%d?", productID)) {
			return &View{Title: s.Title(), Message: "Nothing deleted"}, nil
		}
		if err := s.products.DeleteProduct(productID); err != nil {
			return nil, err
		}
		return s.done("Product deleted")
	case "clear":
		s.sel.reset()
		return &View{Title: s.Title(), Message: "Form cleared"}, nil
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *ProductScreen) done(message string) (*View, error) {
	s.sel.reset()
	view, err := s.list("")
	if err != nil {
		return nil, err
	}
	view.Message = message
	return view, nil
}

func (s *ProductScreen) list(search string) (*View, error) {
	products, err := s.products.ListProducts(search)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Name", "Category", "Buy SYP", "Buy USD", "Sell SYP", "Sell USD", "Qty", "Unit", "Status"}}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			id(p.ID), p.Name, p.CategoryName(),
			money(p.PurchasePriceSYP), money(p.PurchasePriceUSD),
			money(p.SellingPriceSYP), money(p.SellingPriceUSD),
			qty(p.Quantity), p.Unit, string(p.Status()),
		})
	}
	return &View{Title: s.Title(), Table: table, Summary: []string{fmt.Sprintf("%d products", len(products))}}, nil
}

func (s *ProductScreen) categoryChoices() (*View, error) {
	categories, err := s.categories.ListCategories("")
	if err != nil {
		return nil, err
	}
	table := &Table{Columns: []string{"ID", "Category"}}
	for _, c := range categories {
		table.Rows = append(table.Rows, []string{id(c.ID), c.Name})
	}
	return &View{Title: "Categories", Table: table, Message: "Set category_id= on create or update; leave it blank for uncategorized"}, nil
}

func productInput(f Form) (services.ProductInput, error) {
	categoryID, err := f.OptionalID("category_id")
	if err != nil {
		return services.ProductInput{}, err
	}
	return services.ProductInput{
		Name:             f.Get("name"),
		CategoryID:       categoryID,
		PurchasePriceSYP: f.Decimal("purchase_syp"),
		PurchasePriceUSD: f.Decimal("purchase_usd"),
		SellingPriceSYP:  f.Decimal("selling_syp"),
		SellingPriceUSD:  f.Decimal("selling_usd"),
		Quantity:         f.Float("quantity"),
		MinQuantity:      f.Float("min_quantity"),
		Unit:             f.Get("unit"),
		Description:      f.Get("description"),
	}, nil
}

func productForm(p *models.Product) Form {
	form := Form{
		"name":         p.Name,
		"category_id":  "",
		"purchase_syp": p.PurchasePriceSYP.String(),
		"purchase_usd": p.PurchasePriceUSD.String(),
		"selling_syp":  p.SellingPriceSYP.String(),
		"selling_usd":  p.SellingPriceUSD.String(),
		"quantity":     qty(p.Quantity),
		"min_quantity": qty(p.MinQuantity),
		"unit":         p.Unit,
		"description":  p.Description,
	}
	if p.CategoryID != nil {
		form["category_id"] = id(*p.CategoryID)
	}
	return form
}
