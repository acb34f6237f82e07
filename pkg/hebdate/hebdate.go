// Package hebdate derives Hebrew-calendar date strings from Gregorian dates.
// The derivation is one-directional: the Hebrew date is display-only and is
// never used to recover the Gregorian date of record.
package hebdate

import (
	"fmt"
	"time"

	"github.com/hebcal/hdate"
)

// ISODate is the wire format for Gregorian dates.
const ISODate = "2006-01-02"

// FromGregorian converts an ISO Gregorian date string (YYYY-MM-DD) to its
// Hebrew-calendar rendering, e.g. "15 Sivan 5784".
func FromGregorian(gregorianDate string) (string, error) {
	parsed, err := time.Parse(ISODate, gregorianDate)
	if err != nil {
		return "", fmt.Errorf("parsing gregorian date %q: %w", gregorianDate, err)
	}
	hd := hdate.FromTime(parsed)
	return hd.String(), nil
}
