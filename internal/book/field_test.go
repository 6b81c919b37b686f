package book_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/addressbook/internal/book"
	"github.com/tartampluch/addressbook/internal/config"
)

// TestNewPhone verifies the phone alphabet and the nine digit minimum.
func TestNewPhone(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"123-456-7890", true},
		{"123456789", true},
		{"+48 (22) 123.45.67", true},
		{"12/345/678/9", true},
		{"12345678", false},      // eight digits
		{"+48 (22) 12-34", false}, // eight digits with punctuation
		{"123-456-789a", false},
		{"123_456_7890", false},
		{"", false},
		{"---------", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			f, err := book.NewPhone(tt.value)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.value, f.Value())
				assert.Equal(t, book.KindPhone, f.Kind())
				return
			}
			assert.ErrorIs(t, err, book.ErrValidation)
			assert.Nil(t, f)
		})
	}
}

// TestNewBirthday accepts only real calendar dates in YYYY-MM-DD form.
func TestNewBirthday(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1990-05-15", true},
		{"2000-02-29", true},
		{"1999-02-29", false}, // not a leap year
		{"1990-13-01", false},
		{"1990-04-31", false},
		{"1990-5-15", false},
		{"15-05-1990", false},
		{"1990/05/15", false},
		{"19900515", false},
		{"1990-05-15T00:00:00Z", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, err := book.NewBirthday(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, book.ErrValidation)
			}
		})
	}
}

func TestNewName_NewEmail(t *testing.T) {
	_, err := book.NewName("")
	assert.ErrorIs(t, err, book.ErrValidation)

	_, err = book.NewEmail("")
	assert.ErrorIs(t, err, book.ErrValidation)

	n, err := book.NewName("Jan")
	require.NoError(t, err)
	assert.Equal(t, "Jan", n.String())

	// Any non-empty email is accepted.
	e, err := book.NewEmail("not really an email")
	require.NoError(t, err)
	assert.Equal(t, book.KindEmail, e.Kind())
}

// TestField_Set checks that mutation re-validates and keeps the old value on failure.
func TestField_Set(t *testing.T) {
	f, err := book.NewPhone("123-456-7890")
	require.NoError(t, err)

	err = f.Set("12")
	var verr *book.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, book.KindPhone, verr.Kind)
	assert.Equal(t, "12", verr.Value)
	assert.Equal(t, "123-456-7890", f.Value(), "Rejected value must not be stored")

	require.NoError(t, f.Set("987 654 321"))
	assert.Equal(t, "987 654 321", f.Value())
}

func TestField_Date(t *testing.T) {
	b, err := book.NewBirthday("1985-08-22")
	require.NoError(t, err)

	d, err := b.Date()
	require.NoError(t, err)
	assert.Equal(t, 1985, d.Year())
	assert.Equal(t, 22, d.Day())

	p, err := book.NewPhone("123456789")
	require.NoError(t, err)
	_, err = p.Date()
	assert.Error(t, err)
}

func TestNewField_UnknownKind(t *testing.T) {
	_, err := book.NewField(book.FieldKind(42), "x")
	assert.ErrorIs(t, err, book.ErrValidation)
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "name", book.KindName.String())
	assert.Equal(t, "phone", book.KindPhone.String())
	assert.Equal(t, "email", book.KindEmail.String())
	assert.Equal(t, "birthday", book.KindBirthday.String())
}

func TestValidationError_Message(t *testing.T) {
	_, err := book.NewPhone("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
	assert.Contains(t, err.Error(), `"abc"`)
}

// TestNewField_InvalidUTF8 rejects byte strings that are not UTF-8, for every kind.
func TestNewField_InvalidUTF8(t *testing.T) {
	kinds := []book.FieldKind{book.KindName, book.KindPhone, book.KindEmail, book.KindBirthday}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			f, err := book.NewField(kind, "\xff\xfe")
			assert.Nil(t, f)

			var vErr *book.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, kind, vErr.Kind)
			assert.Equal(t, config.ErrInvalidUTF8, vErr.Reason)
		})
	}

	f, err := book.NewName("Jan")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Set("Jan\xc3"), book.ErrValidation)
	assert.Equal(t, "Jan", f.Value(), "a rejected value keeps the old one")
}
