package services

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the referenced row does not exist.
var ErrNotFound = errors.New("not found")

// Sentinels used by InvoiceService.DocumentParts to tell which entity is missing.
// All of them match ErrNotFound with errors.Is.
var (
	ErrInvoiceNotFound  = notFound("invoice not found")
	ErrCustomerNotFound = notFound("customer not found")
	ErrProfileNotFound  = notFound("user not found")
)

type notFoundError struct{ msg string }

func notFound(msg string) error { return &notFoundError{msg: msg} }

func (e *notFoundError) Error() string        { return e.msg }
func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// translate maps gorm's missing-row error to ErrNotFound.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
