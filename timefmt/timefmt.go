// Package timefmt implements the moment pattern language: a closed set of
// field tokens mixed with literal text, used both to render calendar fields
// to a string and to extract raw field values from one.
//
// Tokens:
//
//	YYYY yyyy  four digit year
//	YY   yy    two digit year (parse pivot: >=70 -> 1900+, else 2000+)
//	MM         month 01-12
//	LM         long month name (render only)
//	DD         day 01-31
//	HH         hour 00-23
//	hh         hour 01-12 (requires aa or AA when parsing)
//	mm         minute 00-59
//	ss         second 00-59
//	aa AA      lower/upper case meridiem
//	tz         timezone id, verbatim
//
// Literal text is escaped with square brackets; the brackets are stripped on
// output and matched-and-discarded on input. Text that matches no token
// spelling is literal as well.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ngrash/go-moment/internal/calclock"
)

// DefaultPattern is used when a caller supplies no pattern.
const DefaultPattern = "YYYY-MM-DD HH:mm:ss"

// Parse and validation failures. All are wrapped with positional detail;
// match them with errors.Is.
var (
	// ErrMissingMeridiem is returned when a pattern combines the 12-hour
	// token with neither meridiem token. Raised before any scanning.
	ErrMissingMeridiem = errors.New("pattern uses 12-hour clock without meridiem token")
	// ErrUnsupportedToken is returned when a pattern contains a
	// render-only token in a parsing context.
	ErrUnsupportedToken = errors.New("unsupported parse token")
	// ErrPatternMismatch is returned when the input deviates from the
	// pattern at some position.
	ErrPatternMismatch = errors.New("input does not match pattern")
	// ErrUnconsumedInput is returned when input remains after the last
	// pattern segment.
	ErrUnconsumedInput = errors.New("unconsumed input after pattern")
)

// Token identifies one field token of the pattern language.
type Token int

const (
	// TokenNone marks a literal segment.
	TokenNone Token = iota
	TokenYearLong
	TokenYearShort
	TokenMonth
	TokenMonthName
	TokenDay
	TokenHour24
	TokenHour12
	TokenMinute
	TokenSecond
	TokenMeridiemLower
	TokenMeridiemUpper
	TokenZone
)

// spellings maps pattern text to tokens. Order matters: longer spellings
// must be tried before their prefixes (YYYY before YY).
var spellings = []struct {
	text  string
	token Token
}{
	{"YYYY", TokenYearLong},
	{"yyyy", TokenYearLong},
	{"YY", TokenYearShort},
	{"yy", TokenYearShort},
	{"MM", TokenMonth},
	{"LM", TokenMonthName},
	{"DD", TokenDay},
	{"HH", TokenHour24},
	{"hh", TokenHour12},
	{"mm", TokenMinute},
	{"ss", TokenSecond},
	{"aa", TokenMeridiemLower},
	{"AA", TokenMeridiemUpper},
	{"tz", TokenZone},
}

// Segment is one piece of a tokenized pattern: either a literal run of text
// (Token == TokenNone) or a single field token.
type Segment struct {
	Text  string
	Token Token
}

// Tokenize splits a pattern into literal and token segments. A bracketed
// run [...] becomes a literal with the brackets stripped; an unterminated
// bracket makes the remainder of the pattern literal. Adjacent literal text
// is merged into one segment.
func Tokenize(pattern string) []Segment {
	var (
		segs    []Segment
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			segs = append(segs, Segment{Text: literal.String()})
			literal.Reset()
		}
	}
	i := 0
scan:
	for i < len(pattern) {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				literal.WriteString(pattern[i+1:])
				i = len(pattern)
				break
			}
			literal.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}
		for _, s := range spellings {
			if strings.HasPrefix(pattern[i:], s.text) {
				flush()
				segs = append(segs, Segment{Token: s.token})
				i += len(s.text)
				continue scan
			}
		}
		literal.WriteByte(pattern[i])
		i++
	}
	flush()
	return segs
}

// Meta carries the non-field inputs the formatter needs: the timezone id
// rendered by tz and the month name collaborator behind LM.
type Meta struct {
	ZoneID    string
	MonthName func(year int, month time.Month) string
}

// Format renders calendar fields through a pattern.
func Format(f calclock.Fields, meta Meta, pattern string) string {
	var b strings.Builder
	for _, seg := range Tokenize(pattern) {
		switch seg.Token {
		case TokenNone:
			b.WriteString(seg.Text)
		case TokenYearLong:
			fmt.Fprintf(&b, "%04d", f.Year)
		case TokenYearShort:
			fmt.Fprintf(&b, "%02d", ((f.Year%100)+100)%100)
		case TokenMonth:
			fmt.Fprintf(&b, "%02d", int(f.Month))
		case TokenMonthName:
			if meta.MonthName != nil {
				b.WriteString(meta.MonthName(f.Year, f.Month))
			} else {
				b.WriteString(f.Month.String())
			}
		case TokenDay:
			fmt.Fprintf(&b, "%02d", f.Day)
		case TokenHour24:
			fmt.Fprintf(&b, "%02d", f.Hour)
		case TokenHour12:
			h := f.Hour % 12
			if h == 0 {
				h = 12
			}
			fmt.Fprintf(&b, "%02d", h)
		case TokenMinute:
			fmt.Fprintf(&b, "%02d", f.Minute)
		case TokenSecond:
			fmt.Fprintf(&b, "%02d", f.Second)
		case TokenMeridiemLower:
			b.WriteString(meridiem(f.Hour))
		case TokenMeridiemUpper:
			b.WriteString(strings.ToUpper(meridiem(f.Hour)))
		case TokenZone:
			b.WriteString(meta.ZoneID)
		}
	}
	return b.String()
}

func meridiem(hour24 int) string {
	if hour24 < 12 {
		return "am"
	}
	return "pm"
}

// FieldSet records which fields a parse actually saw a token for.
type FieldSet uint8

const (
	FieldYear FieldSet = 1 << iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
	FieldZone
)

// Has reports whether all fields in mask were seen.
func (s FieldSet) Has(mask FieldSet) bool {
	return s&mask == mask
}

// Parsed holds the reconciled field values extracted from an input string.
// Fields without a token in the pattern hold their epoch-start defaults
// (1970 January 1, midnight); Seen tells them apart from parsed values.
type Parsed struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
	Zone   string
	Seen   FieldSet
}

// Parse consumes input against pattern and returns the reconciled fields.
//
// Validation runs before any scanning: a pattern with hh but neither aa nor
// AA fails with ErrMissingMeridiem, and LM fails with ErrUnsupportedToken
// since month names are render-only. Scanning then walks the segments left
// to right: literals must match verbatim (ErrPatternMismatch), numeric
// tokens consume a fixed-width digit run, and tz consumes up to the next
// non-empty literal or to the end of the input. Input left over after the
// last segment fails with ErrUnconsumedInput.
func Parse(input, pattern string) (Parsed, error) {
	segs := Tokenize(pattern)

	var hasHour12, hasMeridiem bool
	for _, seg := range segs {
		switch seg.Token {
		case TokenHour12:
			hasHour12 = true
		case TokenMeridiemLower, TokenMeridiemUpper:
			hasMeridiem = true
		case TokenMonthName:
			return Parsed{}, fmt.Errorf("%w: LM", ErrUnsupportedToken)
		}
	}
	if hasHour12 && !hasMeridiem {
		return Parsed{}, ErrMissingMeridiem
	}

	p := Parsed{Year: 1970, Month: time.January, Day: 1}
	var (
		cursor int
		hour12 int
		isPM   bool
	)
	for i, seg := range segs {
		switch seg.Token {
		case TokenNone:
			if !strings.HasPrefix(input[cursor:], seg.Text) {
				return Parsed{}, fmt.Errorf("%w: expected %q at position %d", ErrPatternMismatch, seg.Text, cursor)
			}
			cursor += len(seg.Text)
		case TokenZone:
			rest := input[cursor:]
			end := len(rest)
			if lit := nextLiteral(segs[i+1:]); lit != "" {
				end = strings.Index(rest, lit)
				if end < 0 {
					return Parsed{}, fmt.Errorf("%w: expected %q after timezone at position %d", ErrPatternMismatch, lit, cursor)
				}
			}
			p.Zone = strings.TrimSpace(rest[:end])
			p.Seen |= FieldZone
			cursor += end
		case TokenMeridiemLower, TokenMeridiemUpper:
			if cursor+2 > len(input) {
				return Parsed{}, fmt.Errorf("%w: truncated meridiem at position %d", ErrPatternMismatch, cursor)
			}
			switch strings.ToLower(input[cursor : cursor+2]) {
			case "am":
				isPM = false
			case "pm":
				isPM = true
			default:
				return Parsed{}, fmt.Errorf("%w: invalid meridiem %q at position %d", ErrPatternMismatch, input[cursor:cursor+2], cursor)
			}
			cursor += 2
		default:
			width := 2
			if seg.Token == TokenYearLong {
				width = 4
			}
			v, err := digits(input, cursor, width)
			if err != nil {
				return Parsed{}, err
			}
			cursor += width
			switch seg.Token {
			case TokenYearLong:
				p.Year = v
				p.Seen |= FieldYear
			case TokenYearShort:
				// Two-digit pivot: 70-99 land in the 1900s.
				if v >= 70 {
					p.Year = 1900 + v
				} else {
					p.Year = 2000 + v
				}
				p.Seen |= FieldYear
			case TokenMonth:
				if err := inRange("month", v, 1, 12, cursor-width); err != nil {
					return Parsed{}, err
				}
				p.Month = time.Month(v)
				p.Seen |= FieldMonth
			case TokenDay:
				if err := inRange("day", v, 1, 31, cursor-width); err != nil {
					return Parsed{}, err
				}
				p.Day = v
				p.Seen |= FieldDay
			case TokenHour24:
				if err := inRange("hour", v, 0, 23, cursor-width); err != nil {
					return Parsed{}, err
				}
				p.Hour = v
				p.Seen |= FieldHour
			case TokenHour12:
				if err := inRange("hour", v, 1, 12, cursor-width); err != nil {
					return Parsed{}, err
				}
				hour12 = v
				p.Seen |= FieldHour
			case TokenMinute:
				if err := inRange("minute", v, 0, 59, cursor-width); err != nil {
					return Parsed{}, err
				}
				p.Minute = v
				p.Seen |= FieldMinute
			case TokenSecond:
				if err := inRange("second", v, 0, 59, cursor-width); err != nil {
					return Parsed{}, err
				}
				p.Second = v
				p.Seen |= FieldSecond
			}
		}
	}
	if cursor != len(input) {
		return Parsed{}, fmt.Errorf("%w: %q", ErrUnconsumedInput, input[cursor:])
	}

	if hasHour12 {
		p.Hour = hour12 % 12
		if isPM {
			p.Hour += 12
		}
	}
	return p, nil
}

// nextLiteral returns the text of the first non-empty literal segment, or
// "" if none remains. Used to delimit the free-form tz token.
func nextLiteral(segs []Segment) string {
	for _, seg := range segs {
		if seg.Token == TokenNone && seg.Text != "" {
			return seg.Text
		}
	}
	return ""
}

// inRange rejects parsed field values outside their calendar range.
func inRange(field string, v, lo, hi, pos int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %d out of range [%d,%d] at position %d", ErrPatternMismatch, field, v, lo, hi, pos)
	}
	return nil
}

// digits reads a fixed-width decimal number from input at pos.
func digits(input string, pos, width int) (int, error) {
	if pos+width > len(input) {
		return 0, fmt.Errorf("%w: expected %d digits at position %d", ErrPatternMismatch, width, pos)
	}
	s := input[pos : pos+width]
	v, err := strconv.Atoi(s)
	if err != nil || strings.ContainsAny(s, "+- ") {
		return 0, fmt.Errorf("%w: expected %d digits at position %d, got %q", ErrPatternMismatch, width, pos, s)
	}
	return v, nil
}
