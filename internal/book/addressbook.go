package book

import (
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/addressbook/internal/config"
)

// Criteria maps a field kind to the substring searched for in fields of that kind.
type Criteria map[FieldKind]string

// UpcomingBirthday is a lightweight view of a record whose birthday is near.
type UpcomingBirthday struct {
	Name string

	// Date is the stored birthday.
	Date time.Time

	// Next is the next occurrence of the birthday, today included.
	Next time.Time

	// Age is the age turned at Next.
	Age int

	// DaysLeft is the number of days until Next; 0 means today.
	DaysLeft int
}

// AddressBook is the collection of records keyed by name.
// The zero value is an empty book ready to use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. A record with the same name is replaced in place.
func (b *AddressBook) AddRecord(r *Record) {
	if b.records == nil {
		b.records = make(map[string]*Record)
	}
	name := r.Name()
	if _, exists := b.records[name]; !exists {
		b.order = append(b.order, name)
	}
	b.records[name] = r
	slog.Debug(config.MsgRecordAdded,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyName, name)
}

// Record looks a record up by name.
func (b *AddressBook) Record(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// RemoveRecord deletes the record stored under name and reports whether it existed.
func (b *AddressBook) RemoveRecord(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	slog.Debug(config.MsgRecordRemoved,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyName, name)
	return true
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// All returns the records in insertion order. Every call yields an independent
// sequence over the names present when iteration starts.
func (b *AddressBook) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, name := range slices.Clone(b.order) {
			r, ok := b.records[name]
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Search returns the records whose name, phones, emails or birthday contain query.
func (b *AddressBook) Search(query string) []*Record {
	return b.SearchRecords(Criteria{
		KindName:     query,
		KindPhone:    query,
		KindEmail:    query,
		KindBirthday: query,
	})
}

// SearchRecords returns the records matching any of the criteria, in insertion order.
func (b *AddressBook) SearchRecords(criteria Criteria) []*Record {
	var found []*Record
	for r := range b.All() {
		for kind, query := range criteria {
			if r.matches(kind, query) {
				found = append(found, r)
				break
			}
		}
	}
	slog.Debug(config.MsgSearch,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyQuery, criteria,
		config.LogKeyCount, len(found))
	return found
}

// Upcoming lists records whose next birthday falls within the given number of
// days from now (today included), soonest first.
func (b *AddressBook) Upcoming(now time.Time, within int) []UpcomingBirthday {
	var out []UpcomingBirthday
	today := startOfDay(now)
	for r := range b.All() {
		next, age, err := r.NextBirthday(now)
		if err != nil {
			continue
		}
		days := daysBetween(dateOnly(today), dateOnly(next))
		if days > within {
			continue
		}
		date, _ := r.birthDate()
		out = append(out, UpcomingBirthday{
			Name:     r.Name(),
			Date:     date,
			Next:     next,
			Age:      age,
			DaysLeft: days,
		})
	}
	slices.SortStableFunc(out, func(a, b UpcomingBirthday) int {
		return a.DaysLeft - b.DaysLeft
	})
	return out
}
