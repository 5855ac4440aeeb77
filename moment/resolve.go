package moment

import (
	"time"

	"github.com/ngrash/go-moment/internal/calclock"
	"github.com/ngrash/go-moment/locale"
	"github.com/ngrash/go-moment/tzcat"
)

// ZoneService answers which UTC offset a timezone is actually in at a given
// instant. It is the only collaborator with knowledge of transition rules;
// the catalog merely bounds its answer to one of two offsets.
//
// Implementations must be pure functions of (id, instant). A lookup failure
// is not an error condition for the engine: callers fall back to the zone's
// standard offset.
type ZoneService interface {
	// OffsetAt returns the offset in signed seconds east of UTC in effect
	// in zone id at the given instant.
	OffsetAt(id string, instantMS int64) (int, error)
}

// HostZones resolves offsets through the host's timezone database via
// time.LoadLocation. Loaded locations are kept per id so repeated
// resolutions for one zone hit the filesystem once.
type HostZones struct {
	locs map[string]*time.Location
}

// NewHostZones returns an empty host-backed zone service.
func NewHostZones() *HostZones {
	return &HostZones{locs: make(map[string]*time.Location)}
}

// OffsetAt implements ZoneService.
func (h *HostZones) OffsetAt(id string, instantMS int64) (int, error) {
	loc, ok := h.locs[id]
	if !ok {
		var err error
		loc, err = time.LoadLocation(id)
		if err != nil {
			return 0, err
		}
		h.locs[id] = loc
	}
	_, offset := time.UnixMilli(instantMS).In(loc).Zone()
	return offset, nil
}

// Env binds the external collaborators a Moment needs: the offset catalog,
// the host zone service and the month name provider. The zero collaborators
// degrade gracefully: a nil Zones always resolves to the standard offset and
// a nil Names renders English month names.
type Env struct {
	Catalog tzcat.Catalog
	Zones   ZoneService
	Names   *locale.Names
}

// Default returns an Env over the builtin catalog, the host timezone
// database and English month names.
func Default() *Env {
	return &Env{
		Catalog: tzcat.Builtin(),
		Zones:   NewHostZones(),
		Names:   locale.English(),
	}
}

// resolvedOffset is the memoized result of one offset resolution. It is
// valid only for the exact instant it was computed for.
type resolvedOffset struct {
	instant       int64
	offsetSeconds int
	isDaylight    bool
}

// resolve determines the offset in effect in the zone at the given instant.
//
// Fixed-offset zones short-circuit to their standard offset. Otherwise the
// zone service decides; its answer is classified against the catalog pair,
// and an answer matching neither offset (extended zone data) counts as
// daylight when it lies above the standard offset. Service failures fall
// back to the standard offset.
func (e *Env) resolve(id string, entry tzcat.Entry, instantMS int64) resolvedOffset {
	std := entry.StandardOffsetSeconds
	if !entry.ObservesDaylight() {
		return resolvedOffset{instant: instantMS, offsetSeconds: std}
	}
	if e.Zones == nil {
		return resolvedOffset{instant: instantMS, offsetSeconds: std}
	}
	offset, err := e.Zones.OffsetAt(id, instantMS)
	if err != nil {
		return resolvedOffset{instant: instantMS, offsetSeconds: std}
	}
	var daylight bool
	switch offset {
	case std:
		daylight = false
	case entry.DaylightOffsetSeconds:
		daylight = true
	default:
		daylight = offset > std
	}
	return resolvedOffset{instant: instantMS, offsetSeconds: offset, isDaylight: daylight}
}

// resolveLocal maps desired local calendar fields to the single most
// plausible instant, implementing the DST disambiguation policy shared by
// parsing and calendar arithmetic.
//
// One candidate instant is computed per catalog offset. Each candidate's own
// local fields are re-derived self-consistently; the difference between them
// and the target (both treated as if UTC, for comparison only) classifies
// the candidate:
//
//	delta == 0  exact match; the local time exists under that offset
//	delta > 0   the candidate lands after the target (spring-forward gap)
//	delta < 0   the candidate lands before the target (fall-back overlap)
//
// Exact matches win, gap candidates next, overlap candidates last; within
// each class ties break toward the daylight-flagged candidate. This means an
// ambiguous fall-back time resolves to its earlier, daylight occurrence and
// a skipped spring-forward time rolls forward to the first valid instant
// after the gap. That preference is a deliberate policy, kept in this one
// function so it stays overridable, not a property of the calendar.
func (e *Env) resolveLocal(id string, entry tzcat.Entry, f calclock.Fields) (int64, resolvedOffset) {
	target := calclock.FromDateTime(f) * 1000

	std := entry.StandardOffsetSeconds
	if !entry.ObservesDaylight() {
		inst := target - int64(std)*1000
		return inst, resolvedOffset{instant: inst, offsetSeconds: std}
	}

	type candidate struct {
		instant int64
		r       resolvedOffset
		delta   int64
	}
	var exact, next, prev *candidate
	for _, offset := range []int{std, entry.DaylightOffsetSeconds} {
		inst := target - int64(offset)*1000
		r := e.resolve(id, entry, inst)
		c := candidate{
			instant: inst,
			r:       r,
			delta:   inst + int64(r.offsetSeconds)*1000 - target,
		}
		switch {
		case c.delta == 0:
			if exact == nil || (c.r.isDaylight && !exact.r.isDaylight) {
				exact = &c
			}
		case c.delta > 0:
			if next == nil || c.delta < next.delta ||
				(c.delta == next.delta && c.r.isDaylight && !next.r.isDaylight) {
				next = &c
			}
		default:
			if prev == nil || c.delta > prev.delta ||
				(c.delta == prev.delta && c.r.isDaylight && !prev.r.isDaylight) {
				prev = &c
			}
		}
	}

	switch {
	case exact != nil:
		return exact.instant, exact.r
	case next != nil:
		return next.instant, next.r
	case prev != nil:
		return prev.instant, prev.r
	}
	inst := target - int64(std)*1000
	return inst, resolvedOffset{instant: inst, offsetSeconds: std}
}
