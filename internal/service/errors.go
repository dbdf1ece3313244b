package service

import (
	"errors"

	"gorm.io/gorm"
)

// Every ledger failure is detected before any mutation is applied and
// surfaced as one of these values; no partial state is persisted.
var (
	ErrDuplicateName      = errors.New("flavor name already exists")
	ErrInvalidReference   = errors.New("referenced record does not exist")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInsufficientStock  = errors.New("insufficient stock remaining")
	ErrValidation         = errors.New("required field is missing or invalid")
	ErrReferencedEntity   = errors.New("record is referenced by history and cannot be deleted")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrPasswordTooShort   = errors.New("password must be at least 4 characters")
)

// mapDuplicate converts a unique-index violation into the given sentinel.
// The name pre-checks run before the insert transaction, so a concurrent
// insert can still land on the unique index; the store reports that as
// gorm.ErrDuplicatedKey.
func mapDuplicate(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return err
}
