package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// InvalidReferenceError signals that an input points at an entity that does not exist.
type InvalidReferenceError struct {
	Entity string
	ID     string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Entity, e.ID)
}

func NewInvalidReference(entity, id string) *InvalidReferenceError {
	return &InvalidReferenceError{Entity: entity, ID: id}
}

// OracleError wraps a failed or timed out call to an external language model.
type OracleError struct {
	Op  string
	Err error
}

func (e *OracleError) Error() string {
	return "oracle " + e.Op + " failed: " + e.Err.Error()
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

func NewOracle(op string, err error) *OracleError {
	return &OracleError{Op: op, Err: err}
}
