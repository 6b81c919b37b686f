package book

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tartampluch/addressbook/internal/config"
)

// FieldKind selects the validation rule applied to a Field.
type FieldKind int

const (
	KindName FieldKind = iota
	KindPhone
	KindEmail
	KindBirthday
)

var kindNames = map[FieldKind]string{
	KindName:     config.KindName,
	KindPhone:    config.KindPhone,
	KindEmail:    config.KindEmail,
	KindBirthday: config.KindBirthday,
}

func (k FieldKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return config.ErrUnknownKind
}

// validators maps each kind to its rule. A rule returns the rejection reason,
// or "" when the value is acceptable.
var validators = map[FieldKind]func(string) string{
	KindName:     validateName,
	KindPhone:    validatePhone,
	KindEmail:    validateEmail,
	KindBirthday: validateBirthday,
}

// Field is a single validated value attached to a Record.
type Field struct {
	kind  FieldKind
	value string
}

// NewField validates value against the rules of kind.
func NewField(kind FieldKind, value string) (*Field, error) {
	if err := validate(kind, value); err != nil {
		return nil, err
	}
	return &Field{kind: kind, value: value}, nil
}

func NewName(value string) (*Field, error)     { return NewField(KindName, value) }
func NewPhone(value string) (*Field, error)    { return NewField(KindPhone, value) }
func NewEmail(value string) (*Field, error)    { return NewField(KindEmail, value) }
func NewBirthday(value string) (*Field, error) { return NewField(KindBirthday, value) }

// Kind returns the field's kind.
func (f *Field) Kind() FieldKind { return f.kind }

// Value returns the stored value.
func (f *Field) Value() string { return f.value }

func (f *Field) String() string { return f.value }

// Set replaces the value after validating it with the same rules as NewField.
// The old value is kept when validation fails.
func (f *Field) Set(value string) error {
	if err := validate(f.kind, value); err != nil {
		return err
	}
	f.value = value
	return nil
}

// Date parses a birthday field. It fails for other kinds.
func (f *Field) Date() (time.Time, error) {
	if f.kind != KindBirthday {
		return time.Time{}, &ValidationError{Kind: f.kind, Value: f.value, Reason: config.ErrBirthdayFormat}
	}
	return time.Parse(config.DateFormatBirthday, f.value)
}

// Contains reports whether query is a substring of the value.
func (f *Field) Contains(query string) bool {
	return strings.Contains(f.value, query)
}

func validate(kind FieldKind, value string) error {
	rule, ok := validators[kind]
	if !ok {
		return &ValidationError{Kind: kind, Value: value, Reason: config.ErrUnknownKind}
	}
	// Stored values must survive the JSON round trip byte for byte.
	if !utf8.ValidString(value) {
		return &ValidationError{Kind: kind, Value: value, Reason: config.ErrInvalidUTF8}
	}
	if reason := rule(value); reason != "" {
		return &ValidationError{Kind: kind, Value: value, Reason: reason}
	}
	return nil
}

func validateName(value string) string {
	if value == "" {
		return config.ErrNameEmpty
	}
	return ""
}

func validateEmail(value string) string {
	if value == "" {
		return config.ErrEmailEmpty
	}
	return ""
}

func validatePhone(value string) string {
	digits := 0
	for _, c := range value {
		if !strings.ContainsRune(config.PhoneAllowedChars, c) {
			return config.ErrPhoneChars
		}
		if unicode.IsDigit(c) {
			digits++
		}
	}
	if digits < config.PhoneMinDigits {
		return config.ErrPhoneShort
	}
	return ""
}

func validateBirthday(value string) string {
	if _, err := time.Parse(config.DateFormatBirthday, value); err != nil {
		return config.ErrBirthdayFormat
	}
	return ""
}
