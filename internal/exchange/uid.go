// Package exchange converts address book records to and from the formats other
// contact and calendar tools understand: vCard, iCalendar and spreadsheets.
package exchange

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tartampluch/addressbook/internal/config"
)

// ContactUID derives a stable identifier from a contact name so repeated
// exports of the same contact carry the same UID.
func ContactUID(name string) string {
	input := fmt.Sprintf(config.FormatHashInput, config.UIDSalt, name)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(input)).String()
}
