package entity

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"

	"github.com/tbckr/insight/internal/apperr"
)

// DefaultRegion is assumed for phone numbers written without a country code.
const DefaultRegion = "US"

// E164 parses value as a phone number, assuming DefaultRegion when no
// country code is present, and formats it as E.164 (e.g. "+12025550199").
func E164(value string) (string, error) {
	num, err := phonenumbers.Parse(value, DefaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: phone number %q: %s", apperr.ErrInvalidInput, value, err)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsPhoneNumber reports whether value parses as a possible phone number.
func IsPhoneNumber(value string) bool {
	num, err := phonenumbers.Parse(value, DefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}
