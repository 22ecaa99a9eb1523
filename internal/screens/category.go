package screens

import (
	"fmt"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/services"
)

// CategoryScreen manages product categories.
type CategoryScreen struct {
	svc     services.CategoryServicer
	dialogs Dialogs
	sel     selection
}

// NewCategoryScreen creates a category screen.
func NewCategoryScreen(svc services.CategoryServicer, dialogs Dialogs) *CategoryScreen {
	return &CategoryScreen{svc: svc, dialogs: dialogs}
}

func (s *CategoryScreen) Name() string  { return "categories" }
func (s *CategoryScreen) Title() string { return "Categories" }

func (s *CategoryScreen) Actions() []string {
	return []string{"list", "select", "create", "update", "delete", "clear"}
}

func (s *CategoryScreen) Do(action string, form Form) (*View, error) {
	switch action {
	case "", "list":
		return s.list(form.Get("search"))
	case "select":
		return s.selectCategory(form)
	case "create":
		in := s.sel.input(form)
		if _, err := s.svc.CreateCategory(in.Get("name"), in.Get("description")); err != nil {
			return nil, err
		}
		return s.done("Category added")
	case "update":
		categoryID, err := s.sel.selected()
		if err != nil {
			return nil, err
		}
		in := s.sel.input(form)
		if _, err := s.svc.UpdateCategory(categoryID, in.Get("name"), in.Get("description")); err != nil {
			return nil, err
		}
		return s.done("Category updated")
	case "delete":
		categoryID, err := s.sel.target(form)
		if err != nil {
			return nil, err
		}
		if !s.dialogs.Confirm("Delete category", fmt.Sprintf("Delete category #%d? Its products become uncategorized.", categoryID)) {
			return &View{Title: s.Title(), Message: "Nothing deleted"}, nil
		}
		if err := s.svc.DeleteCategory(categoryID); err != nil {
			return nil, err
		}
		return s.done("Category deleted")
	case "clear":
		s.sel.reset()
		return &View{Title: s.Title(), Message: "Form cleared"}, nil
	default:
		return nil, unknownAction(s, action)
	}
}

func (s *CategoryScreen) selectCategory(form Form) (*View, error) {
	categoryID, err := form.ID("id")
	if err != nil {
		return nil, err
	}
	category, err := s.svc.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}
	s.sel.set(category.ID, categoryForm(category))
	return &View{Title: s.Title(), Form: s.sel.form}, nil
}

func (s *CategoryScreen) done(message string) (*View, error) {
	s.sel.reset()
	view, err := s.list("")
	if err != nil {
		return nil, err
	}
	view.Message = message
	return view, nil
}

func (s *CategoryScreen) list(search string) (*View, error) {
	categories, err := s.svc.ListCategories(search)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: []string{"ID", "Name", "Description", "Created"}}
	for _, c := range categories {
		table.Rows = append(table.Rows, []string{id(c.ID), c.Name, c.Description, stamp(c.CreatedAt)})
	}
	return &View{Title: s.Title(), Table: table, Summary: []string{fmt.Sprintf("%d categories", len(categories))}}, nil
}

func categoryForm(c *models.Category) Form {
	return Form{"name": c.Name, "description": c.Description}
}
