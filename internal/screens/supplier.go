package screens

import (
	"fmt"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// SupplierScreen manages suppliers and their debts.
type SupplierScreen struct {
	svc     services.SupplierServicer
	dialogs Dialogs
	sel     selection
}

// NewSupplierScreen creates a supplier screen.
func NewSupplierScreen(svc services.SupplierServicer, dialogs Dialogs) *SupplierScreen {
	return &SupplierScreen{svc: svc, dialogs: dialogs}
}

func (s *SupplierScreen) Name() string  { return "suppliers" }
func (s *SupplierScreen) Title() string { return "Suppliers" }

func (s *SupplierScreen) Actions() []string {
	return []string{"list", "select", "create", "update", "delete", "clear"}
}

func (s *SupplierScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "list":
		return s.list(form.Get("search"))
	case "select":
		supplierID, err := form.ID("id")
		if err != nil {
			return nil, err
		}
		supplier, err := s.svc.GetSupplierByID(supplierID)
		if err != nil {
			return nil, err
		}
		s.sel.set(supplier.ID, supplierForm(supplier))
		return &View{Title: s.Title(), Form: s.sel.form}, nil
	case "create":
		if _, err := s.svc.CreateSupplier(supplierInput(s.sel.input(form))); err != nil {
			return nil, err
		}
		return s.done("Supplier added")
	case "update":
		supplierID, err := s.sel.selected()
		if err != nil {
			return nil, err
		}
		if _, err := s.svc.UpdateSupplier(supplierID, supplierInput(s.sel.input(form))); err != nil {
			return nil, err
		}
		return s.done("Supplier updated")
	case "delete":
		supplierID, err := s.sel.target(form)
		if err != nil {
			return nil, err
		}
		if !s.dialogs.Confirm("Delete supplier", fmt.Sprintf("Delete supplier #%d? Their purchases are kept without a supplier.", supplierID)) {
			return &View{Title: s.Title(), Message: "Nothing deleted"}, nil
		}
		if err := s.svc.DeleteSupplier(supplierID); err != nil {
			return nil, err
		}
		return s.done("Supplier deleted")
	case "clear":
		s.sel.reset()
		return &View{Title: s.Title(), Message: "Form cleared"}, nil
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *SupplierScreen) done(message string) (*View, error) {
	s.sel.reset()
	view, err := s.list("")
	if err != nil {
		return nil, err
	}
	view.Message = message
	return view, nil
}

func (s *SupplierScreen) list(search string) (*View, error) {
	suppliers, err := s.svc.ListSuppliers(search)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Name", "Phone", "Address", "Debt SYP", "Debt USD"}}
	for _, sp := range suppliers {
		table.Rows = append(table.Rows, []string{id(sp.ID), sp.Name, sp.Phone, sp.Address, money(sp.DebtSYP), money(sp.DebtUSD)})
	}
	return &View{Title: s.Title(), Table: table, Summary: []string{fmt.Sprintf("%d suppliers", len(suppliers))}}, nil
}

func supplierInput(f Form) services.SupplierInput {
	return services.SupplierInput{
		Name:    f.Get("name"),
		Phone:   f.Get("phone"),
		Address: f.Get("address"),
		Notes:   f.Get("notes"),
		DebtSYP: f.Decimal("debt_syp"),
		DebtUSD: f.Decimal("debt_usd"),
	}
}

func supplierForm(sp *models.Supplier) Form {
	return Form{
		"name":     sp.Name,
		"phone":    sp.Phone,
		"address":  sp.Address,
		"notes":    sp.Notes,
		"debt_syp": sp.DebtSYP.String(),
		"debt_usd": sp.DebtUSD.String(),
	}
}
