// Package businessflow contains the core business logic and use cases for the game backend
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Account-related errors
	ErrAccountNotFound       = errors.New("account not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthenticated       = errors.New("not logged in")

	// Fleet-related errors
	ErrShipTypeNotFound  = errors.New("ship type not found")
	ErrShipNotFound      = errors.New("ship not found")
	ErrNotOwner          = errors.New("ship belongs to another account")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsAccountNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

func IsUsernameAlreadyExists(err error) bool {
	return errors.Is(err, ErrUsernameAlreadyExists)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

func IsShipTypeNotFound(err error) bool {
	return errors.Is(err, ErrShipTypeNotFound)
}

func IsShipNotFound(err error) bool {
	return errors.Is(err, ErrShipNotFound)
}

func IsNotOwner(err error) bool {
	return errors.Is(err, ErrNotOwner)
}

func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
