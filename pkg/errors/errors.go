// Package errors provides custom error types for the gallery system.
// Validation failures are reported as structured data so callers can
// batch and display every problem with a rejected catalog record at once.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the gallery system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrContractViolation indicates a caller broke a documented precondition.
	// This is a programming error, never a data error.
	ErrContractViolation = errors.New("contract violation")
)

// Kind classifies a single field-level validation failure.
type Kind string

const (
	// MissingField means a required property is absent.
	MissingField Kind = "MissingField"
	// TypeMismatch means a property has the wrong JSON type.
	TypeMismatch Kind = "TypeMismatch"
	// InvalidEnumValue means a value is outside a closed enumeration.
	InvalidEnumValue Kind = "InvalidEnumValue"
	// UnknownField means a property is not declared by the schema.
	UnknownField Kind = "UnknownField"
	// InvalidValue means a value has the right type but breaks a declared
	// constraint (length, format, uniqueness).
	InvalidValue Kind = "InvalidValue"
)

// FieldError describes one validation failure on one field.
type FieldError struct {
	Field  string `json:"field" yaml:"field"`
	Kind   Kind   `json:"kind" yaml:"kind"`
	Detail string `json:"detail" yaml:"detail"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind, e.Detail)
}

// Is implements errors.Is support
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewFieldError creates a new FieldError
func NewFieldError(field string, kind Kind, detail string, value any) *FieldError {
	return &FieldError{Field: field, Kind: kind, Detail: detail, Value: value}
}

// ValidationErrors is the complete list of failures found in one record.
// A nil or empty list means the record is valid.
type ValidationErrors []*FieldError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + v[0].Error()
	}
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(v), strings.Join(msgs, "; "))
}

// Is implements errors.Is support
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Fields returns the distinct field names that failed, in report order.
func (v ValidationErrors) Fields() []string {
	seen := make(map[string]bool, len(v))
	var fields []string
	for _, e := range v {
		if !seen[e.Field] {
			seen[e.Field] = true
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// ByKind returns the subset of errors with the given kind.
func (v ValidationErrors) ByKind(kind Kind) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// ContractError reports a broken caller precondition, for example asking
// for a popover on an entry that carries no tasks.
type ContractError struct {
	Component string
	Message   string
}

// Error implements the error interface
func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Component, e.Message)
}

// Is implements errors.Is support
func (e *ContractError) Is(target error) bool {
	return target == ErrContractViolation
}

// NewContractError creates a new ContractError
func NewContractError(component, message string) *ContractError {
	return &ContractError{Component: component, Message: message}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json" or "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "copy"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsContractViolation checks if an error is a caller contract violation
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}

// Is and As are re-exported so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
