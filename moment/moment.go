// Package moment implements a timezone-aware instant: a millisecond epoch
// timestamp paired with a timezone id, with arithmetic, comparison and
// string conversion that stay correct across variable month lengths, leap
// years and daylight-saving gaps and overlaps.
//
// Values have whole-minute resolution; seconds and milliseconds are
// discarded on every assignment. A Moment's timezone id is validated
// against its catalog on every write path, so a live value always carries a
// known zone.
//
// Add, Set, StartOf, EndOf and ConvertTo mutate the receiver and return it
// to allow chained calls. Use Clone first when the original must survive:
//
//	later, err := m.Clone().Add(3, moment.UnitMonth)
package moment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ngrash/go-moment/internal/calclock"
	"github.com/ngrash/go-moment/timefmt"
)

const minuteMS = 60_000

// Moment is an instant interpreted in one timezone.
type Moment struct {
	instant int64 // ms since epoch, UTC, minute-aligned
	zone    string
	env     *Env
	cache   *resolvedOffset // single-slot memo, keyed by instant
}

// New constructs a Moment from a millisecond timestamp and a timezone id.
// The timestamp is truncated to the whole minute; the id must be present in
// the catalog or the call fails with tzcat.ErrUnknownTimezone.
func (e *Env) New(instantMS int64, zone string) (*Moment, error) {
	if _, err := e.Catalog.Lookup(zone); err != nil {
		return nil, err
	}
	return &Moment{instant: truncateMinute(instantMS), zone: zone, env: e}, nil
}

// Now returns the current wall clock time in the given zone.
func (e *Env) Now(zone string) (*Moment, error) {
	return e.New(time.Now().UnixMilli(), zone)
}

// Serialized is the canonical round-trippable representation of a Moment.
type Serialized struct {
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	Timezone  string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// FromSerialized hydrates a Moment. An empty timezone falls back to
// fallbackZone, or to UTC when that is empty too.
func (e *Env) FromSerialized(s Serialized, fallbackZone string) (*Moment, error) {
	zone := s.Timezone
	if zone == "" {
		zone = fallbackZone
	}
	if zone == "" {
		zone = "UTC"
	}
	return e.New(s.Timestamp, zone)
}

// Parse consumes input against pattern and resolves the extracted local
// fields to an instant. The timezone is taken from a tz token when the
// pattern has one, otherwise from defaultZone (UTC when empty).
//
// A local time made ambiguous or non-existent by a DST transition resolves
// per the policy documented on the disambiguator: overlaps pick the earlier,
// daylight occurrence; gap times roll forward to the first valid instant.
func (e *Env) Parse(input, pattern, defaultZone string) (*Moment, error) {
	p, err := timefmt.Parse(input, pattern)
	if err != nil {
		return nil, err
	}
	zone := defaultZone
	if p.Seen.Has(timefmt.FieldZone) && p.Zone != "" {
		zone = p.Zone
	}
	if zone == "" {
		zone = "UTC"
	}
	entry, err := e.Catalog.Lookup(zone)
	if err != nil {
		return nil, err
	}
	// Seconds are resolved as zero: the value truncates to whole minutes.
	f := calclock.Fields{
		Year: p.Year, Month: p.Month, Day: p.Day,
		Hour: p.Hour, Minute: p.Minute,
	}
	inst, r := e.resolveLocal(zone, entry, f)
	return &Moment{instant: truncateMinute(inst), zone: zone, env: e, cache: &r}, nil
}

// UnixMilli returns the instant in milliseconds since the epoch, UTC.
func (m *Moment) UnixMilli() int64 {
	return m.instant
}

// Unix returns the instant in seconds since the epoch, UTC.
func (m *Moment) Unix() int64 {
	return m.instant / 1000
}

// Zone returns the timezone id the instant is interpreted in.
func (m *Moment) Zone() string {
	return m.zone
}

// Offset returns the UTC offset in seconds in effect at the instant.
func (m *Moment) Offset() int {
	return m.resolved().offsetSeconds
}

// IsDaylight reports whether daylight saving is in effect at the instant.
func (m *Moment) IsDaylight() bool {
	return m.resolved().isDaylight
}

// Fields returns the local calendar fields observed in the Moment's zone.
func (m *Moment) Fields() calclock.Fields {
	return m.localFields()
}

// Clone returns an independent copy. The copy owns its own offset memo.
func (m *Moment) Clone() *Moment {
	c := *m
	if m.cache != nil {
		memo := *m.cache
		c.cache = &memo
	}
	return &c
}

// ConvertTo re-interprets the instant in another zone. The instant itself
// never changes, only its local reading. Fails with
// tzcat.ErrUnknownTimezone before any mutation when id is not cataloged.
func (m *Moment) ConvertTo(id string) (*Moment, error) {
	if _, err := m.env.Catalog.Lookup(id); err != nil {
		return nil, err
	}
	m.zone = id
	m.cache = nil
	return m, nil
}

// CloneTo returns a copy of the Moment interpreted in another zone.
func (m *Moment) CloneTo(id string) (*Moment, error) {
	return m.Clone().ConvertTo(id)
}

// Format renders the Moment's local fields through a pattern. An empty
// pattern means timefmt.DefaultPattern.
func (m *Moment) Format(pattern string) string {
	if pattern == "" {
		pattern = timefmt.DefaultPattern
	}
	meta := timefmt.Meta{ZoneID: m.zone}
	if m.env.Names != nil {
		meta.MonthName = m.env.Names.MonthName
	}
	return timefmt.Format(m.localFields(), meta, pattern)
}

// String renders the Moment with the default pattern.
func (m *Moment) String() string {
	return m.Format(timefmt.DefaultPattern)
}

// Serialized returns the canonical representation.
func (m *Moment) Serialized() Serialized {
	return Serialized{Timestamp: m.instant, Timezone: m.zone}
}

// MarshalJSON encodes the canonical {timestamp, timezone} form.
func (m *Moment) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Serialized())
}

// resolved returns the offset in effect at the instant, memoized per exact
// instant value. Any instant or zone mutation drops the memo.
func (m *Moment) resolved() resolvedOffset {
	if m.cache != nil && m.cache.instant == m.instant {
		return *m.cache
	}
	entry, err := m.env.Catalog.Lookup(m.zone)
	if err != nil {
		// The zone was validated on every write path; a miss here means
		// the catalog was mutated underneath us.
		panic(fmt.Sprintf("moment: zone %q vanished from catalog", m.zone))
	}
	r := m.env.resolve(m.zone, entry, m.instant)
	m.cache = &r
	return r
}

func (m *Moment) localFields() calclock.Fields {
	r := m.resolved()
	return calclock.ToDateTime((m.instant + int64(r.offsetSeconds)*1000) / 1000)
}

// reconstruct maps mutated local fields back to an instant through the same
// disambiguation path parsing uses, so one DST policy governs reads and
// writes alike.
func (m *Moment) reconstruct(f calclock.Fields) {
	entry, err := m.env.Catalog.Lookup(m.zone)
	if err != nil {
		panic(fmt.Sprintf("moment: zone %q vanished from catalog", m.zone))
	}
	f.Second = 0
	inst, r := m.env.resolveLocal(m.zone, entry, f)
	m.instant = truncateMinute(inst)
	m.cache = &r
}

// truncateMinute floors a millisecond timestamp to the whole minute.
func truncateMinute(ms int64) int64 {
	return floorDiv(ms, minuteMS) * minuteMS
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
