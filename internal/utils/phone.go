package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed when a guest types a number without a country
// code.
const DefaultRegion = "US"

// NormalizePhoneNumber normalizes a phone number to E.164 format. The phone
// field is optional on the RSVP form; callers should only normalize
// non-empty input.
func NormalizePhoneNumber(phone string) (string, error) {
	phone = strings.TrimSpace(phone)

	num, err := phonenumbers.Parse(phone, DefaultRegion)
	if err != nil {
		return "", err
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}

	// Format to E.164 (e.g., +14155552671)
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
