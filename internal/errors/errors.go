// Package errors provides the application error type used across services
// and screens. Every service-layer error should be an AppError so that a
// screen can decide how to present it without inspecting driver errors.
package errors

import "errors"

// Kind classifies an AppError for presentation.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindStorage    Kind = "storage"
)

// AppError represents a structured application error with an error code,
// human-readable message, kind, and optional internal error.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Kind     Kind   `json:"-"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors produced by Wrap and WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/kind but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Kind:     sentinel.Kind,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Kind:     sentinel.Kind,
		Internal: sentinel.Internal,
	}
}

// KindOf returns the kind of err, or KindStorage when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// General errors.
var (
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", Kind: KindValidation}
	ErrNotFound     = &AppError{Code: "NOT_FOUND", Message: "Record not found", Kind: KindNotFound}
	ErrStorage      = &AppError{Code: "STORAGE_ERROR", Message: "The operation could not be completed", Kind: KindStorage}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", Kind: KindNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", Kind: KindConflict}
)

// Product errors.
var (
	ErrProductNotFound    = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found", Kind: KindNotFound}
	ErrProductInUse       = &AppError{Code: "PRODUCT_IN_USE", Message: "Product is referenced by sales, purchases or stock movements", Kind: KindConflict}
	ErrInsufficientStock  = &AppError{Code: "INSUFFICIENT_STOCK", Message: "Requested quantity exceeds available stock", Kind: KindValidation}
	ErrNonPositiveQty     = &AppError{Code: "NON_POSITIVE_QUANTITY", Message: "Quantity must be greater than zero", Kind: KindValidation}
	ErrInvalidMovementDir = &AppError{Code: "INVALID_MOVEMENT_DIRECTION", Message: "Adjustment direction must be add or remove", Kind: KindValidation}
)

// Supplier errors.
var (
	ErrSupplierNotFound = &AppError{Code: "SUPPLIER_NOT_FOUND", Message: "Supplier not found", Kind: KindNotFound}
)

// Expense errors.
var (
	ErrExpenseNotFound   = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", Kind: KindNotFound}
	ErrNonPositiveAmount = &AppError{Code: "NON_POSITIVE_AMOUNT", Message: "Enter an amount greater than zero", Kind: KindValidation}
)

// Sale and purchase errors.
var (
	ErrSaleNotFound         = &AppError{Code: "SALE_NOT_FOUND", Message: "Sale not found", Kind: KindNotFound}
	ErrPurchaseNotFound     = &AppError{Code: "PURCHASE_NOT_FOUND", Message: "Purchase not found", Kind: KindNotFound}
	ErrEmptyCart            = &AppError{Code: "EMPTY_CART", Message: "The cart is empty", Kind: KindValidation}
	ErrInvalidCartLine      = &AppError{Code: "INVALID_CART_LINE", Message: "No such line in the cart", Kind: KindValidation}
	ErrInvalidPaymentMethod = &AppError{Code: "INVALID_PAYMENT_METHOD", Message: "Unsupported payment method", Kind: KindValidation}
	ErrCartKindMismatch     = &AppError{Code: "CART_KIND_MISMATCH", Message: "Cart does not match this checkout", Kind: KindValidation}
)

// Report and export errors.
var (
	ErrInvalidReportKind = &AppError{Code: "INVALID_REPORT_KIND", Message: "Unknown report kind", Kind: KindValidation}
	ErrInvalidDateRange  = &AppError{Code: "INVALID_DATE_RANGE", Message: "Start date must not be after end date", Kind: KindValidation}
	ErrNothingToExport   = &AppError{Code: "NOTHING_TO_EXPORT", Message: "There is nothing to export", Kind: KindValidation}
	ErrExportFailed      = &AppError{Code: "EXPORT_FAILED", Message: "Export failed", Kind: KindStorage}
)
