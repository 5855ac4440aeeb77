// Package tzcat provides the timezone catalog consumed by the moment engine.
// A catalog maps an IANA-style timezone id to the pair of UTC offsets the
// zone can be in: its standard offset and its daylight-saving offset. Zones
// that never observe daylight saving carry the same value twice.
//
// The catalog is deliberately minimal data. Which of the two offsets is in
// effect at a given instant is not recorded here; that question is answered
// by the host zone service at resolution time.
package tzcat

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownTimezone is returned by Lookup when an id is not present in the
// catalog. It is wrapped with the offending id; match it with errors.Is.
var ErrUnknownTimezone = errors.New("unknown timezone")

// Entry holds the two UTC offsets a zone can be in, both in signed seconds
// east of UTC (negative values lie west of Greenwich).
type Entry struct {
	// StandardOffsetSeconds is the offset outside daylight saving time.
	StandardOffsetSeconds int `yaml:"standard" json:"standard"`
	// DaylightOffsetSeconds is the offset while daylight saving is in
	// effect. Equal to StandardOffsetSeconds for zones without DST.
	DaylightOffsetSeconds int `yaml:"daylight" json:"daylight"`
}

// Fixed returns an entry for a zone that never observes daylight saving.
func Fixed(offsetSeconds int) Entry {
	return Entry{StandardOffsetSeconds: offsetSeconds, DaylightOffsetSeconds: offsetSeconds}
}

// ObservesDaylight reports whether the zone's two offsets differ.
func (e Entry) ObservesDaylight() bool {
	return e.StandardOffsetSeconds != e.DaylightOffsetSeconds
}

// Catalog maps timezone ids to their offset pairs.
type Catalog map[string]Entry

// Lookup returns the entry for id or an error wrapping ErrUnknownTimezone.
func (c Catalog) Lookup(id string) (Entry, error) {
	e, ok := c[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, id)
	}
	return e, nil
}

// Has reports whether id is present in the catalog.
func (c Catalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// Load parses a YAML catalog document. The expected shape is a mapping from
// timezone id to entry:
//
//	Europe/Berlin:
//	  standard: 3600
//	  daylight: 7200
func Load(r io.Reader) (Catalog, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads and parses a YAML catalog file.
func LoadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

//go:embed catalog.yaml
var builtinData []byte

var (
	builtinOnce sync.Once
	builtin     Catalog
)

// Builtin returns the catalog embedded in the package. It covers a set of
// well-known zones sufficient for the command line tools and examples;
// applications with other needs load their own catalog.
//
// The returned map is shared; callers must not modify it.
func Builtin() Catalog {
	builtinOnce.Do(func() {
		if err := yaml.Unmarshal(builtinData, &builtin); err != nil {
			panic(fmt.Sprintf("tzcat: embedded catalog: %v", err))
		}
	})
	return builtin
}
