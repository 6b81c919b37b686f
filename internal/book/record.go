package book

import (
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/addressbook/internal/config"
)

// Category names a group of fields on a Record. Phones and Emails hold lists,
// Birthday holds at most one value.
type Category string

const (
	Phones   Category = config.CategoryPhones
	Emails   Category = config.CategoryEmails
	Birthday Category = config.CategoryBirthday
)

// Categories lists every known category in display order.
var Categories = []Category{Phones, Emails, Birthday}

// ParseCategory maps a textual category name to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(Categories, c) {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// Kind returns the field kind stored under the category.
func (c Category) Kind() (FieldKind, bool) {
	switch c {
	case Phones:
		return KindPhone, true
	case Emails:
		return KindEmail, true
	case Birthday:
		return KindBirthday, true
	}
	return 0, false
}

// IsList reports whether the category holds zero or more values.
func (c Category) IsList() bool {
	return c == Phones || c == Emails
}

// Record is one contact: an immutable name plus categorized fields.
type Record struct {
	name     *Field
	phones   []*Field
	emails   []*Field
	birthday *Field
}

// NewRecord creates a record. An empty birthday means none.
func NewRecord(name, birthday string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	r := &Record{name: n}
	if birthday != "" {
		if r.birthday, err = NewBirthday(birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Name returns the record's key.
func (r *Record) Name() string { return r.name.Value() }

// Phones returns a copy of the phone values.
func (r *Record) Phones() []string { return values(r.phones) }

// Emails returns a copy of the email values.
func (r *Record) Emails() []string { return values(r.emails) }

// Birthday returns the birthday value and whether one is set.
func (r *Record) Birthday() (string, bool) {
	if r.birthday == nil {
		return "", false
	}
	return r.birthday.Value(), true
}

// Values returns the values stored under c. Unknown categories yield nil.
func (r *Record) Values(c Category) []string {
	switch c {
	case Phones:
		return r.Phones()
	case Emails:
		return r.Emails()
	case Birthday:
		if b, ok := r.Birthday(); ok {
			return []string{b}
		}
	}
	return nil
}

// AddField appends value to a list category or replaces the birthday.
// Unknown categories are ignored.
func (r *Record) AddField(c Category, value string) error {
	kind, ok := c.Kind()
	if !ok {
		logUnknownCategory(c)
		return nil
	}
	f, err := NewField(kind, value)
	if err != nil {
		return err
	}
	switch c {
	case Phones:
		r.phones = append(r.phones, f)
	case Emails:
		r.emails = append(r.emails, f)
	case Birthday:
		r.birthday = f
	}
	return nil
}

// RemoveField drops every entry of a list category equal to value.
// The birthday and unknown categories are left untouched.
func (r *Record) RemoveField(c Category, value string) {
	match := func(f *Field) bool { return f.Value() == value }
	switch c {
	case Phones:
		r.phones = slices.DeleteFunc(r.phones, match)
	case Emails:
		r.emails = slices.DeleteFunc(r.emails, match)
	case Birthday:
	default:
		logUnknownCategory(c)
	}
}

// EditField replaces the first entry equal to oldValue with newValue.
// Nothing happens when no entry matches; a rejected newValue leaves the entry as is.
func (r *Record) EditField(c Category, oldValue, newValue string) error {
	var fields []*Field
	switch c {
	case Phones:
		fields = r.phones
	case Emails:
		fields = r.emails
	case Birthday:
		if r.birthday != nil {
			fields = []*Field{r.birthday}
		}
	default:
		logUnknownCategory(c)
		return nil
	}
	for _, f := range fields {
		if f.Value() == oldValue {
			return f.Set(newValue)
		}
	}
	return nil
}

// NextBirthday returns the next occurrence of the birthday on or after the
// calendar date of now, and the age turned on that day.
func (r *Record) NextBirthday(now time.Time) (time.Time, int, error) {
	birth, err := r.birthDate()
	if err != nil {
		return time.Time{}, 0, err
	}
	next := occurrence(now.Year(), birth, now.Location())
	if next.Before(startOfDay(now)) {
		next = occurrence(now.Year()+1, birth, now.Location())
	}
	return next, next.Year() - birth.Year(), nil
}

// DaysToBirthday counts the days from the calendar date of now to the next
// birthday. A birthday falling today counts as next year's, so the result is
// always positive.
func (r *Record) DaysToBirthday(now time.Time) (int, error) {
	birth, err := r.birthDate()
	if err != nil {
		return 0, err
	}
	today := dateOnly(now)
	days := daysBetween(today, occurrence(now.Year(), birth, time.UTC))
	if days <= 0 {
		days = daysBetween(today, occurrence(now.Year()+1, birth, time.UTC))
	}
	return days, nil
}

// Equal reports whether both records hold the same name and field values.
func (r *Record) Equal(other *Record) bool {
	if other == nil {
		return false
	}
	b1, ok1 := r.Birthday()
	b2, ok2 := other.Birthday()
	return r.Name() == other.Name() &&
		slices.Equal(r.Phones(), other.Phones()) &&
		slices.Equal(r.Emails(), other.Emails()) &&
		ok1 == ok2 && b1 == b2
}

// matches reports whether query is a substring of any field of the given kind.
func (r *Record) matches(kind FieldKind, query string) bool {
	switch kind {
	case KindName:
		return r.name.Contains(query)
	case KindPhone:
		return slices.ContainsFunc(r.phones, func(f *Field) bool { return f.Contains(query) })
	case KindEmail:
		return slices.ContainsFunc(r.emails, func(f *Field) bool { return f.Contains(query) })
	case KindBirthday:
		return r.birthday != nil && r.birthday.Contains(query)
	}
	return false
}

func (r *Record) birthDate() (time.Time, error) {
	if r.birthday == nil {
		return time.Time{}, ErrNoBirthday
	}
	return r.birthday.Date()
}

func values(fields []*Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Value())
	}
	return out
}

// occurrence places the birthday in year. time.Date normalizes Feb 29 to
// March 1st when year is not a leap year.
func occurrence(year int, birth time.Time, loc *time.Location) time.Time {
	return time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateOnly moves the calendar date of t to UTC midnight so day arithmetic is not
// skewed by DST transitions.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func logUnknownCategory(c Category) {
	slog.Debug(config.MsgCategorySkip,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyCategory, string(c))
}
