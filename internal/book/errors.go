package book

import (
	"errors"
	"fmt"

	"github.com/tartampluch/addressbook/internal/config"
)

// Sentinel errors returned by book operations.
var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New(config.ErrValidation)

	// ErrNotFound is returned by Load when the book file does not exist.
	ErrNotFound = errors.New(config.ErrNotFound)

	// ErrNoBirthday is returned by birthday arithmetic on a record without one.
	ErrNoBirthday = errors.New(config.ErrNoBirthday)

	// ErrUnknownCategory is returned by ParseCategory. Record operations given an
	// unknown category do nothing instead.
	ErrUnknownCategory = errors.New(config.ErrUnknownCategory)

	// ErrCorruptFile is returned when a book file cannot be decoded.
	ErrCorruptFile = errors.New(config.ErrCorruptFile)
)

// ValidationError reports a value rejected by the rules of its field kind.
type ValidationError struct {
	Kind   FieldKind
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", config.ErrValidation, e.Kind, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
