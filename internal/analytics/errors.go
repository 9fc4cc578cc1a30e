package analytics

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrInvalidOption   = errors.New("invalid option")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNonNumericField = errors.New("non-numeric field")
)

// ValidationKind names which top-level input check failed.
type ValidationKind string

const (
	KindMissingData          ValidationKind = "missing_data"
	KindEmptySellers         ValidationKind = "empty_sellers"
	KindEmptyProducts        ValidationKind = "empty_products"
	KindEmptyPurchaseRecords ValidationKind = "empty_purchase_records"
)

// ValidationError reports missing or empty top-level input collections.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidOptionError reports a supplied strategy that cannot be called.
type InvalidOptionError struct {
	Option string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option: %s must be a function", e.Option)
}

func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// InvalidInputError reports an absent line item or product record.
type InvalidInputError struct {
	Argument string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s is missing", e.Argument)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NonNumericFieldError reports a required numeric field that is missing or
// not a finite number.
type NonNumericFieldError struct {
	Field string
	Value float64
}

func (e *NonNumericFieldError) Error() string {
	return fmt.Sprintf("non-numeric value in field %s: %v", e.Field, e.Value)
}

func (e *NonNumericFieldError) Is(target error) bool {
	return target == ErrNonNumericField
}
