package screens

import (
	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
)

var errNothingSelected = apperrors.WithMessage(apperrors.ErrInvalidInput, "select a record first with: select id=<number>")

// selection is the form state of a CRUD screen. Selecting a record fills
// the form; create and update read the form overlaid with the fields
// typed on the command.
type selection struct {
	id   *uint
	form Form
}

func (s *selection) set(recordID uint, form Form) {
	s.id = &recordID
	s.form = form
}

func (s *selection) input(typed Form) Form {
	return s.form.Merge(typed)
}

func (s *selection) selected() (uint, error) {
	if s.id == nil {
		return 0, errNothingSelected
	}
	return *s.id, nil
}

func (s *selection) reset() {
	s.id = nil
	s.form = nil
}

// target resolves the record a delete applies to: an id= typed on the
// command wins over the selection.
func (s *selection) target(typed Form) (uint, error) {
	if typed.Has("id") {
		return typed.ID("id")
	}
	return s.selected()
}
