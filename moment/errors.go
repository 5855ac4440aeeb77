package moment

import "errors"

// Failures surfaced by Moment operations. All are immediate and synchronous;
// no operation mutates state before its validation passes, so a failed call
// leaves the value exactly as it was. Match them with errors.Is.
var (
	// ErrIncomparableTimezones is returned by Compare, Diff and IsBetween
	// when the values involved do not share one timezone id, regardless of
	// whether their instants happen to be equal.
	ErrIncomparableTimezones = errors.New("moments are in different timezones")
	// ErrInvalidRange is returned by IsBetween when start is after end.
	ErrInvalidRange = errors.New("range start is after range end")
	// ErrInvalidInclusivity is returned by IsBetween for an inclusivity
	// spec other than the four canonical two-character forms.
	ErrInvalidInclusivity = errors.New("invalid inclusivity token")
	// ErrUnsupportedUnit is returned by Add, Subtract, Set and Diff for a
	// unit outside the operation's recognized set.
	ErrUnsupportedUnit = errors.New("unsupported unit")
	// ErrUnsupportedGranularity is returned by StartOf, EndOf and
	// IsBetween for a granularity outside the recognized set.
	ErrUnsupportedGranularity = errors.New("unsupported granularity")
)
