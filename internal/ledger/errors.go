package ledger

import (
	"errors"
)

var (
	ErrMissingProduct       = errors.New("product is required")
	ErrMissingCustomer      = errors.New("customer is required")
	ErrOwnershipMismatch    = errors.New("product and customer do not belong to the same shop owner")
	ErrInvalidQuantity      = errors.New("quantity must be greater than 0")
	ErrInvalidPaymentStatus = errors.New("payment status must be paid or pending")
	ErrNegativePrice        = errors.New("price must not be negative")
)

// ValidationError reports which input a rule rejected. Err is one of the
// sentinels above, so callers match with errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Code is a stable machine readable name for the failure.
func (e *ValidationError) Code() string {
	switch e.Err {
	case ErrMissingProduct:
		return "missing_product"
	case ErrMissingCustomer:
		return "missing_customer"
	case ErrOwnershipMismatch:
		return "ownership_mismatch"
	case ErrInvalidQuantity:
		return "invalid_quantity"
	case ErrInvalidPaymentStatus:
		return "invalid_payment_status"
	case ErrNegativePrice:
		return "negative_price"
	default:
		return "invalid"
	}
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}
