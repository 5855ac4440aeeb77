// Package calclock converts between Unix timestamps and local calendar
// fields under the proleptic Gregorian calendar. It ignores leap seconds but
// respects leap years. The implementation is based on the Go standard
// library's time package but does not depend on time.Location: offsets are
// applied by the caller, so both directions here treat their input as UTC.
package calclock

import "time"

// Fields is a denormalized calendar snapshot: a year, month, day and
// time of day as observed on some wall clock. It is not validated; in
// particular Day may exceed the length of the month after arithmetic, and
// callers must clamp it with DaysInMonth before calling FromDateTime.
type Fields struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// The constants were copied from time.go in the Go standard library's time package.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	absoluteZeroYear         = -292277022399
	internalYear             = 1
	absoluteToInternal int64 = (absoluteZeroYear - internalYear) * 365.2425 * secondsPerDay
	unixToInternal     int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * secondsPerDay
	internalToUnix     int64 = -unixToInternal
)

// daysBefore[m] counts the number of days in a non-leap year before month
// m+1 begins. daysBefore[12] is the number of days in a full year.
var daysBefore = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(month time.Month, year int) int {
	if month == time.February {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return daysBefore[month] - daysBefore[month-1]
}

// FromDateTime converts calendar fields to a Unix timestamp, i.e. the number
// of seconds since 1970-01-01 00:00:00 UTC. The fields are interpreted as if
// they were observed in UTC; the caller subtracts the intended zone offset
// afterwards to obtain a true instant.
func FromDateTime(f Fields) int64 {
	d := daysSinceEpoch(f.Year) + uint64(daysBefore[f.Month-1]) + (uint64(f.Day) - 1)
	if f.Month > time.February && IsLeapYear(f.Year) {
		d++ // +leap day
	}
	abs := d*secondsPerDay + uint64(f.Hour)*secondsPerHour + uint64(f.Minute)*secondsPerMinute + uint64(f.Second)
	return int64(abs) + (absoluteToInternal + internalToUnix)
}

// ToDateTime decomposes a Unix timestamp into calendar fields, the inverse
// of FromDateTime. As with FromDateTime, the result is the wall clock of
// UTC; callers add the zone offset to the timestamp beforehand to obtain
// local fields.
func ToDateTime(unix int64) Fields {
	abs := uint64(unix + (unixToInternal + internalToAbsolute))

	secOfDay := abs % secondsPerDay
	d := abs / secondsPerDay

	// Peel off 400, 100 and 4 year cycles, then single years. The n>>2
	// corrections account for the final cycle of each size containing one
	// leap day more than the estimate assumes.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year := int(int64(y) + absoluteZeroYear)
	yday := int(d)

	day := yday
	var month time.Month
	if IsLeapYear(year) {
		switch {
		case day > 31+29-1:
			// After the leap day; pretend it wasn't there so the
			// non-leap table below lines up.
			day--
		case day == 31+29-1:
			return Fields{
				Year: year, Month: time.February, Day: 29,
				Hour:   int(secOfDay / secondsPerHour),
				Minute: int(secOfDay % secondsPerHour / secondsPerMinute),
				Second: int(secOfDay % secondsPerMinute),
			}
		}
	}
	// Estimate the month assuming every month has 31 days, then correct.
	month = time.Month(day/31) + 1
	if day >= daysBefore[month] {
		month++
	}
	day = day - daysBefore[month-1] + 1

	return Fields{
		Year: year, Month: month, Day: day,
		Hour:   int(secOfDay / secondsPerHour),
		Minute: int(secOfDay % secondsPerHour / secondsPerMinute),
		Second: int(secOfDay % secondsPerMinute),
	}
}

const internalToAbsolute = -absoluteToInternal

// daysSinceEpoch takes a year and returns the number of days from
// the absolute epoch to the start of that year.
// This is basically (year - zeroYear) * 365, but accounting for leap days.
//
// This function was copied from time.go in the Go standard library time package.
func daysSinceEpoch(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// Add in days from 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// Add in 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// Add in 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Add in non-leap years.
	n = y
	d += 365 * n

	return d
}

// DayOfWeek calculates the day of the week for a given date,
// where 0=Sunday, 1=Monday, ..., 6=Saturday.
func DayOfWeek(year int, month time.Month, day int) int {
	// Zeller's Congruence algorithm adjustment for Gregorian calendar
	m := int(month)
	if m < 3 {
		m += 12
		year -= 1
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (m + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// Adjust result to fit Sunday=0, Monday=1, ..., Saturday=6
	return (h + 6) % 7
}
