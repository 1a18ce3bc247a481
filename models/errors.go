package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = &AuthError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrEmailTaken         = &AuthError{Status: http.StatusBadRequest, Message: "Email already registered"}
	ErrSignInRequired     = &AuthError{Status: http.StatusUnauthorized, Message: "Please sign in to continue"}
	ErrForbidden          = &AuthError{Status: http.StatusForbidden, Message: "You are not allowed to act for another user"}
)

// ValidationError is caller input that can never succeed as sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// StorageError hides a datastore failure from the caller. Err is only logged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
