// Package domain defines core business types and error kinds for the
// inventory system.
package domain

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a record with the given ID does not exist.
type NotFoundError struct {
	Kind string // "product" or "sale"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: id=%s", e.Kind, e.ID)
}

// DuplicateError is returned when an insert collides with an existing ID.
type DuplicateError struct {
	Kind string
	ID   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: id=%s already exists", e.Kind, e.ID)
}

// ValidationError is returned when an input field is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewProductNotFoundError(id string) error {
	return &NotFoundError{Kind: "product", ID: id}
}

func NewDuplicateProductError(id string) error {
	return &DuplicateError{Kind: "product", ID: id}
}

func NewDuplicateSaleError(id string) error {
	return &DuplicateError{Kind: "sale", ID: id}
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDuplicate checks if an error is a DuplicateError.
func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
