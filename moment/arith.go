package moment

import (
	"fmt"
	"math"
	"time"

	"github.com/ngrash/go-moment/internal/calclock"
)

// Unit names a calendar or fixed-duration unit for arithmetic, difference
// and granularity operations.
type Unit string

const (
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
	UnitWeek   Unit = "week"
	UnitMonth  Unit = "month"
	UnitYear   Unit = "year"
)

// fixedUnitMS gives the length of the fixed-duration units. Month and year
// are deliberately absent: they vary and go through the calendar path.
var fixedUnitMS = map[Unit]int64{
	UnitMinute: minuteMS,
	UnitHour:   60 * minuteMS,
	UnitDay:    24 * 60 * minuteMS,
	UnitWeek:   7 * 24 * 60 * minuteMS,
}

// Add shifts the Moment by value units, mutating and returning the
// receiver.
//
// Minutes, hours, days and weeks are fixed durations added directly to the
// instant, so adding a day across a DST transition keeps the same wall
// clock distance of 24 hours. Months and years shift the local calendar
// fields instead: the month overflows into the year, the day-of-month
// clamps to the target month's length, and the result is resolved back to
// an instant through the shared DST disambiguation path.
//
// A zero value is a no-op and touches neither instant nor memo.
func (m *Moment) Add(value int64, unit Unit) (*Moment, error) {
	switch unit {
	case UnitMinute, UnitHour, UnitDay, UnitWeek:
		if value == 0 {
			return m, nil
		}
		m.instant = truncateMinute(m.instant + value*fixedUnitMS[unit])
		m.cache = nil
		return m, nil
	case UnitMonth, UnitYear:
		if value == 0 {
			return m, nil
		}
		months := value
		if unit == UnitYear {
			months = value * 12
		}
		f := m.localFields()
		total := int64(f.Year)*12 + int64(f.Month-1) + months
		year := floorDiv(total, 12)
		f.Year = int(year)
		f.Month = time.Month(total-year*12) + 1
		f.Day = clampDay(f.Day, f.Month, f.Year)
		m.reconstruct(f)
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	}
}

// Subtract is Add with the value negated.
func (m *Moment) Subtract(value int64, unit Unit) (*Moment, error) {
	return m.Add(-value, unit)
}

// Set assigns one local calendar field, mutating and returning the
// receiver. Day clamps to the month's length, hour to [0,23] and minute to
// [0,59]; month takes 1-12. The mutated fields resolve back to an instant
// through the shared DST disambiguation path.
func (m *Moment) Set(value int, unit Unit) (*Moment, error) {
	f := m.localFields()
	switch unit {
	case UnitYear:
		f.Year = value
	case UnitMonth:
		f.Month = time.Month(clamp(value, 1, 12))
	case UnitDay:
		f.Day = value
	case UnitHour:
		f.Hour = clamp(value, 0, 23)
	case UnitMinute:
		f.Minute = clamp(value, 0, 59)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	}
	f.Day = clampDay(f.Day, f.Month, f.Year)
	m.reconstruct(f)
	return m, nil
}

// StartOf truncates the Moment to the beginning of the given granularity,
// mutating and returning the receiver. Weeks start on day-of-week 0
// (Sunday).
func (m *Moment) StartOf(unit Unit) (*Moment, error) {
	if unit == UnitMinute {
		// Sub-minute fields are always zero already.
		return m, nil
	}
	f := m.localFields()
	switch unit {
	case UnitHour:
		f.Minute = 0
	case UnitDay:
		f.Hour, f.Minute = 0, 0
	case UnitWeek:
		f.Hour, f.Minute = 0, 0
		back := calclock.DayOfWeek(f.Year, f.Month, f.Day)
		f.Day -= back
		for f.Day < 1 {
			f.Month--
			if f.Month < time.January {
				f.Month = time.December
				f.Year--
			}
			f.Day += calclock.DaysInMonth(f.Month, f.Year)
		}
	case UnitMonth:
		f.Day = 1
		f.Hour, f.Minute = 0, 0
	case UnitYear:
		f.Month = time.January
		f.Day = 1
		f.Hour, f.Minute = 0, 0
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGranularity, unit)
	}
	m.reconstruct(f)
	return m, nil
}

// EndOf moves the Moment to the last representable minute within the given
// granularity: the start of the next unit minus one minute. EndOf minute is
// a no-op since the value has no sub-minute resolution.
func (m *Moment) EndOf(unit Unit) (*Moment, error) {
	if unit == UnitMinute {
		return m, nil
	}
	if _, err := m.StartOf(unit); err != nil {
		return nil, err
	}
	if _, err := m.Add(1, unit); err != nil {
		return nil, err
	}
	return m.Add(-1, UnitMinute)
}

// Compare returns the signed difference of the instants in milliseconds.
// Both values must share one timezone id, otherwise the comparison fails
// with ErrIncomparableTimezones even if the instants are equal.
func (m *Moment) Compare(other *Moment) (int64, error) {
	if m.zone != other.zone {
		return 0, fmt.Errorf("%w: %q vs %q", ErrIncomparableTimezones, m.zone, other.zone)
	}
	return m.instant - other.instant, nil
}

// Diff returns the difference m minus other expressed in the given unit.
//
// Fixed-duration units divide the millisecond difference directly. Months
// and years count whole calendar boundaries crossed between the two
// instants by stepping one month (or twelve) at a time, which makes the
// cost linear in the number of months spanned. With asFloat a fractional
// remainder is added in proportion to the position inside the final partial
// unit; without it the result truncates toward zero, so negative
// differences round up and magnitudes always mean "full units elapsed".
func (m *Moment) Diff(other *Moment, unit Unit, asFloat bool) (float64, error) {
	if m.zone != other.zone {
		return 0, fmt.Errorf("%w: %q vs %q", ErrIncomparableTimezones, m.zone, other.zone)
	}
	if ms, ok := fixedUnitMS[unit]; ok {
		d := float64(m.instant-other.instant) / float64(ms)
		if !asFloat {
			d = math.Trunc(d)
		}
		return d, nil
	}
	if unit != UnitMonth && unit != UnitYear {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	}

	step := int64(1)
	if unit == UnitYear {
		step = 12
	}
	lo, hi := other, m
	sign := 1.0
	if m.instant < other.instant {
		lo, hi = m, other
		sign = -1.0
	}

	var whole int64
	cur := lo.Clone()
	for {
		next := cur.Clone()
		if _, err := next.Add(step, UnitMonth); err != nil {
			return 0, err
		}
		if next.instant > hi.instant {
			if asFloat && next.instant > cur.instant {
				frac := float64(hi.instant-cur.instant) / float64(next.instant-cur.instant)
				return sign * (float64(whole) + frac), nil
			}
			return sign * float64(whole), nil
		}
		cur = next
		whole++
	}
}

// Inclusivity tokens accepted by IsBetween.
const (
	BoundsExclusive    = "()"
	BoundsInclusive    = "[]"
	BoundsIncludeStart = "[)"
	BoundsIncludeEnd   = "(]"
)

// IsBetween reports whether the Moment lies between start and end when all
// three are truncated to the given granularity. The inclusivity token names
// the open or closed character of each bound in the usual interval
// notation.
func (m *Moment) IsBetween(start, end *Moment, unit Unit, inclusivity string) (bool, error) {
	if m.zone != start.zone || m.zone != end.zone {
		return false, fmt.Errorf("%w: %q, %q, %q", ErrIncomparableTimezones, m.zone, start.zone, end.zone)
	}
	if start.instant > end.instant {
		return false, fmt.Errorf("%w: %d > %d", ErrInvalidRange, start.instant, end.instant)
	}
	switch inclusivity {
	case BoundsExclusive, BoundsInclusive, BoundsIncludeStart, BoundsIncludeEnd:
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidInclusivity, inclusivity)
	}

	v, err := m.Clone().StartOf(unit)
	if err != nil {
		return false, err
	}
	lo, err := start.Clone().StartOf(unit)
	if err != nil {
		return false, err
	}
	hi, err := end.Clone().StartOf(unit)
	if err != nil {
		return false, err
	}

	var after, before bool
	if inclusivity[0] == '[' {
		after = v.instant >= lo.instant
	} else {
		after = v.instant > lo.instant
	}
	if inclusivity[1] == ']' {
		before = v.instant <= hi.instant
	} else {
		before = v.instant < hi.instant
	}
	return after && before, nil
}

// clampDay limits a day-of-month to the actual length of the month, so a
// month shift from the 31st lands on the 30th (or on February's tail)
// instead of carrying into the next month.
func clampDay(day int, month time.Month, year int) int {
	if day < 1 {
		return 1
	}
	if n := calclock.DaysInMonth(month, year); day > n {
		return n
	}
	return day
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
