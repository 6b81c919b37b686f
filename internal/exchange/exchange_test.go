package exchange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tartampluch/addressbook/internal/book"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func sampleBook(t *testing.T) *book.AddressBook {
	t.Helper()
	b := book.New()

	jan, err := book.NewRecord("Jan Kowalski", "1990-05-15")
	require.NoError(t, err)
	require.NoError(t, jan.AddField(book.Phones, "123-456-7890"))
	require.NoError(t, jan.AddField(book.Phones, "+48 600 100 200"))
	require.NoError(t, jan.AddField(book.Emails, "jan.kowalski@gmail.com"))

	zofia, err := book.NewRecord("Zofia Nowak", "")
	require.NoError(t, err)
	require.NoError(t, zofia.AddField(book.Emails, "zofia.nowak@gmail.com"))

	b.AddRecord(jan)
	b.AddRecord(zofia)
	return b
}
