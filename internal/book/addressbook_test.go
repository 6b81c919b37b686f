package book_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/addressbook/internal/book"
)

// sampleBook builds the two contacts used throughout the book tests.
func sampleBook(t *testing.T) *book.AddressBook {
	t.Helper()
	b := book.New()

	jan := newRecord(t, "Jan Kowalski", "1990-05-15")
	require.NoError(t, jan.AddField(book.Phones, "123-456-7890"))
	require.NoError(t, jan.AddField(book.Emails, "jan.kowalski@gmail.com"))

	zofia := newRecord(t, "Zofia Nowak", "1985-08-22")
	require.NoError(t, zofia.AddField(book.Phones, "987-654-3210"))
	require.NoError(t, zofia.AddField(book.Emails, "zofia.nowak@gmail.com"))

	b.AddRecord(jan)
	b.AddRecord(zofia)
	return b
}

func names(records []*book.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name())
	}
	return out
}

func TestAddressBook_AddAndLookup(t *testing.T) {
	b := book.New()
	r := newRecord(t, "Jan", "")
	b.AddRecord(r)

	got, ok := b.Record("Jan")
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = b.Record("Nobody")
	assert.False(t, ok)
}

func TestAddressBook_AddOverwrites(t *testing.T) {
	b := book.New()
	b.AddRecord(newRecord(t, "A", ""))
	b.AddRecord(newRecord(t, "B", ""))

	replacement := newRecord(t, "A", "2000-01-01")
	b.AddRecord(replacement)

	assert.Equal(t, 2, b.Len())
	got, _ := b.Record("A")
	assert.Same(t, replacement, got)
	assert.Equal(t, []string{"A", "B"}, names(slices.Collect(b.All())), "Overwrite keeps the original position")
}

func TestAddressBook_ZeroValue(t *testing.T) {
	var b book.AddressBook
	_, ok := b.Record("x")
	assert.False(t, ok)
	assert.Empty(t, b.Search("x"))

	b.AddRecord(newRecord(t, "x", ""))
	assert.Equal(t, 1, b.Len())
}

func TestAddressBook_RemoveRecord(t *testing.T) {
	b := sampleBook(t)

	assert.True(t, b.RemoveRecord("Jan Kowalski"))
	assert.False(t, b.RemoveRecord("Jan Kowalski"))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []string{"Zofia Nowak"}, names(slices.Collect(b.All())))
}

// TestAddressBook_Search reproduces the sample session of the original tool.
func TestAddressBook_Search(t *testing.T) {
	b := sampleBook(t)

	tests := []struct {
		query    string
		expected []string
	}{
		{"Kowalski", []string{"Jan Kowalski"}},
		{"Jan Kowalski", []string{"Jan Kowalski"}},
		{"1990-05-15", []string{"Jan Kowalski"}},
		{"1990", []string{"Jan Kowalski"}},
		{"987-654", []string{"Zofia Nowak"}},
		{"nowak@", []string{"Zofia Nowak"}},
		{"gmail.com", []string{"Jan Kowalski", "Zofia Nowak"}},
		{"-05", []string{"Jan Kowalski"}},
		{"999", nil},
		{"kowalski", []string{"Jan Kowalski"}}, // email matches, name match is case-sensitive
		{"KOWALSKI", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := b.Search(tt.query)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, names(got))
		})
	}
}

func TestAddressBook_SearchRecords_Criteria(t *testing.T) {
	b := sampleBook(t)

	// Restricting the criteria narrows which fields are inspected.
	got := b.SearchRecords(book.Criteria{book.KindName: "gmail"})
	assert.Empty(t, got)

	got = b.SearchRecords(book.Criteria{book.KindEmail: "gmail"})
	assert.Len(t, got, 2)

	got = b.SearchRecords(book.Criteria{book.KindName: "Zofia", book.KindPhone: "123-456"})
	assert.Equal(t, []string{"Jan Kowalski", "Zofia Nowak"}, names(got))

	assert.Empty(t, b.SearchRecords(nil))
}

func TestAddressBook_Search_NoBirthday(t *testing.T) {
	b := book.New()
	b.AddRecord(newRecord(t, "Plain", ""))
	assert.Empty(t, b.Search("19"))
}

// TestAddressBook_All checks that iteration is restartable and nestable.
func TestAddressBook_All(t *testing.T) {
	b := sampleBook(t)
	b.AddRecord(newRecord(t, "Adam", ""))

	expected := []string{"Jan Kowalski", "Zofia Nowak", "Adam"}
	assert.Equal(t, expected, names(slices.Collect(b.All())))
	assert.Equal(t, expected, names(slices.Collect(b.All())), "A second pass sees every record again")

	seq := b.All()
	pairs := 0
	for range seq {
		for range seq {
			pairs++
		}
	}
	assert.Equal(t, 9, pairs, "Nested iteration shares no cursor")

	// Early break.
	var first string
	for r := range b.All() {
		first = r.Name()
		break
	}
	assert.Equal(t, "Jan Kowalski", first)
}

func TestAddressBook_All_MutationDuringIteration(t *testing.T) {
	b := sampleBook(t)
	var seen []string
	for r := range b.All() {
		seen = append(seen, r.Name())
		b.RemoveRecord("Zofia Nowak")
		b.AddRecord(newRecord(t, "Late", ""))
	}
	assert.Equal(t, []string{"Jan Kowalski"}, seen)
}

func TestAddressBook_Upcoming(t *testing.T) {
	b := sampleBook(t)
	b.AddRecord(newRecord(t, "No Birthday", ""))
	b.AddRecord(newRecord(t, "Today", "2001-05-10"))

	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	got := b.Upcoming(now, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "Today", got[0].Name)
	assert.Equal(t, 0, got[0].DaysLeft)
	assert.Equal(t, 24, got[0].Age)
	assert.Equal(t, "Jan Kowalski", got[1].Name)
	assert.Equal(t, 5, got[1].DaysLeft)
	assert.Equal(t, 35, got[1].Age)
	assert.Equal(t, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), got[1].Next)

	all := b.Upcoming(now, 365)
	assert.Equal(t, []string{"Today", "Jan Kowalski", "Zofia Nowak"}, []string{all[0].Name, all[1].Name, all[2].Name})

	assert.Len(t, b.Upcoming(now, 0), 1)
}
