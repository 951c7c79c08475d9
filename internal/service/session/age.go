package session

import (
	"strconv"
	"time"
)

// dateLayout matches the date-input format used by onboarding.
const dateLayout = "2006-01-02"

// DeriveAge returns whole years between a date of birth and now,
// decremented by one when the birthday has not been reached this year.
// Negative results clamp to 0. Empty or unparsable input yields "".
func DeriveAge(dob string, now time.Time) string {
	if dob == "" {
		return ""
	}
	birth, err := time.Parse(dateLayout, dob)
	if err != nil {
		return ""
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return strconv.Itoa(age)
}
