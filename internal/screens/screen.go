// Package screens holds the operator-facing screens. Each screen turns a
// named action plus typed form fields into service calls and returns a
// View for the shell to render.
package screens

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
)

const dateLayout = "2006-01-02"

// Screen is one page of the application.
type Screen interface {
	Name() string
	Title() string
	Actions() []string
	Do(action string, form Form) (*View, error)
}

// Dialogs asks the operator for confirmation and shows messages.
type Dialogs interface {
	Confirm(title, message string) bool
	Error(title, message string)
	Info(title, message string)
}

// Table is a rendered list.
type Table struct {
	Columns []string
	Rows    [][]string
}

// View is what an action displays.
type View struct {
	Title   string
	Form    Form
	Table   *Table
	Summary []string
	Message string
}

// Form holds the key=value fields of an action.
type Form map[string]string

// Get returns the trimmed value of key.
func (f Form) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Has reports whether key was given with a non-blank value.
func (f Form) Has(key string) bool {
	return f.Get(key) != ""
}

// Decimal parses key as a decimal. Values that fail to parse read as zero.
func (f Form) Decimal(key string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(f.Get(key), ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Float parses key as a float. Values that fail to parse, NaN and the
// infinities read as zero.
func (f Form) Float(key string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(f.Get(key), ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Int parses key as an integer, falling back to def.
func (f Form) Int(key string, def int) int {
	v, err := strconv.Atoi(f.Get(key))
	if err != nil {
		return def
	}
	return v
}

// ID parses a required record id.
func (f Form) ID(key string) (uint, error) {
	if !f.Has(key) {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, key+" is required")
	}
	id, err := strconv.ParseUint(f.Get(key), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s must be a record number, got %q", key, f.Get(key)))
	}
	return uint(id), nil
}

// OptionalID parses a record id that may be left blank.
func (f Form) OptionalID(key string) (*uint, error) {
	if !f.Has(key) {
		return nil, nil
	}
	id, err := f.ID(key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Date parses an optional YYYY-MM-DD date in local time.
func (f Form) Date(key string) (*time.Time, error) {
	if !f.Has(key) {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, f.Get(key), time.Local)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s must be YYYY-MM-DD, got %q", key, f.Get(key)))
	}
	return &t, nil
}

// Merge returns a copy of f overlaid with the fields of other.
func (f Form) Merge(other Form) Form {
	out := make(Form, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Keys returns the field names in sorted order.
func (f Form) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unknownAction(s Screen, action string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("%s has no action %q, try one of: %s", s.Name(), action, strings.Join(s.Actions(), ", ")))
}

func money(d decimal.Decimal) string {
	return d.Round(2).String()
}

func qty(q float64) string {
	return decimal.NewFromFloat(q).String()
}

func id(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
