package moment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-moment/moment"
)

func mustMoment(t *testing.T, env *moment.Env, ms int64, zone string) *moment.Moment {
	t.Helper()
	m, err := env.New(ms, zone)
	require.NoError(t, err)
	return m
}

func TestAdd_FixedUnits(t *testing.T) {
	env := testEnv()
	base := utcMS(2021, time.August, 9, 14, 5)

	cases := []struct {
		value int64
		unit  moment.Unit
		want  int64
	}{
		{30, moment.UnitMinute, base + 30*60000},
		{-5, moment.UnitMinute, base - 5*60000},
		{3, moment.UnitHour, base + 3*3600000},
		{1, moment.UnitDay, base + 86400000},
		{2, moment.UnitWeek, base + 2*7*86400000},
	}
	for _, c := range cases {
		m := mustMoment(t, env, base, "UTC")
		_, err := m.Add(c.value, c.unit)
		require.NoError(t, err)
		assert.Equal(t, c.want, m.UnixMilli(), "%d %s", c.value, c.unit)
	}
}

func TestAdd_ZeroIsNoOp(t *testing.T) {
	counting := &countingZones{inner: windowZones{std: 3600, dst: 7200, start: dstStart2021, end: dstEnd2021}}
	env := &moment.Env{Catalog: testCatalog(), Zones: counting}

	m := mustMoment(t, env, 1609459200000, "Test/Berlin")
	before := m.UnixMilli()

	for _, unit := range []moment.Unit{moment.UnitMinute, moment.UnitDay, moment.UnitMonth, moment.UnitYear} {
		_, err := m.Add(0, unit)
		require.NoError(t, err)
	}
	assert.Equal(t, before, m.UnixMilli())
	assert.Zero(t, counting.calls, "zero-valued add must not trigger resolution")
}

func TestAdd_UnsupportedUnit(t *testing.T) {
	env := testEnv()
	m := mustMoment(t, env, 0, "UTC")
	_, err := m.Add(1, moment.Unit("fortnight"))
	require.ErrorIs(t, err, moment.ErrUnsupportedUnit)
	assert.Equal(t, int64(0), m.UnixMilli())
}

func TestAdd_LeapYearDays(t *testing.T) {
	env := testEnv()
	m := mustMoment(t, env, utcMS(2020, time.February, 28, 0, 0), "UTC")

	_, err := m.Add(1, moment.UnitDay)
	require.NoError(t, err)
	f := m.Fields()
	assert.Equal(t, time.February, f.Month)
	assert.Equal(t, 29, f.Day)

	_, err = m.Add(1, moment.UnitDay)
	require.NoError(t, err)
	f = m.Fields()
	assert.Equal(t, time.March, f.Month)
	assert.Equal(t, 1, f.Day)
}

func TestAdd_MonthClampsDay(t *testing.T) {
	env := testEnv()

	m := mustMoment(t, env, utcMS(2021, time.January, 31, 10, 0), "UTC")
	_, err := m.Add(1, moment.UnitMonth)
	require.NoError(t, err)
	f := m.Fields()
	assert.Equal(t, time.February, f.Month)
	assert.Equal(t, 28, f.Day)
	assert.Equal(t, 10, f.Hour, "time of day survives the clamp")

	m = mustMoment(t, env, utcMS(2021, time.March, 31, 0, 0), "UTC")
	_, err = m.Add(1, moment.UnitMonth)
	require.NoError(t, err)
	f = m.Fields()
	assert.Equal(t, time.April, f.Month)
	assert.Equal(t, 30, f.Day)
}

func TestAdd_MonthOverflowsYear(t *testing.T) {
	env := testEnv()

	m := mustMoment(t, env, utcMS(2021, time.November, 15, 0, 0), "UTC")
	_, err := m.Add(3, moment.UnitMonth)
	require.NoError(t, err)
	f := m.Fields()
	assert.Equal(t, 2022, f.Year)
	assert.Equal(t, time.February, f.Month)

	m = mustMoment(t, env, utcMS(2021, time.February, 15, 0, 0), "UTC")
	_, err = m.Subtract(14, moment.UnitMonth)
	require.NoError(t, err)
	f = m.Fields()
	assert.Equal(t, 2019, f.Year)
	assert.Equal(t, time.December, f.Month)
}

func TestAdd_YearClampsLeapDay(t *testing.T) {
	env := testEnv()
	m := mustMoment(t, env, utcMS(2020, time.February, 29, 12, 0), "UTC")

	_, err := m.Add(1, moment.UnitYear)
	require.NoError(t, err)
	f := m.Fields()
	assert.Equal(t, 2021, f.Year)
	assert.Equal(t, time.February, f.Month)
	assert.Equal(t, 28, f.Day)
}

func TestSet(t *testing.T) {
	env := testEnv()

	t.Run("day clamps to month length", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.April, 15, 6, 30), "UTC")
		_, err := m.Set(31, moment.UnitDay)
		require.NoError(t, err)
		assert.Equal(t, 30, m.Fields().Day)
	})

	t.Run("month re-clamps the day", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.January, 31, 0, 0), "UTC")
		_, err := m.Set(2, moment.UnitMonth)
		require.NoError(t, err)
		f := m.Fields()
		assert.Equal(t, time.February, f.Month)
		assert.Equal(t, 28, f.Day)
	})

	t.Run("hour and minute clamp to their ranges", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.April, 15, 6, 30), "UTC")
		_, err := m.Set(99, moment.UnitHour)
		require.NoError(t, err)
		assert.Equal(t, 23, m.Fields().Hour)

		_, err = m.Set(-10, moment.UnitMinute)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Fields().Minute)
	})

	t.Run("year off a leap day", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2020, time.February, 29, 0, 0), "UTC")
		_, err := m.Set(2021, moment.UnitYear)
		require.NoError(t, err)
		f := m.Fields()
		assert.Equal(t, 2021, f.Year)
		assert.Equal(t, 28, f.Day)
	})

	t.Run("unsupported unit", func(t *testing.T) {
		m := mustMoment(t, env, 0, "UTC")
		_, err := m.Set(1, moment.UnitWeek)
		require.ErrorIs(t, err, moment.ErrUnsupportedUnit)
	})
}

func TestStartOf(t *testing.T) {
	env := testEnv()
	base := utcMS(2021, time.August, 9, 14, 5) // a Monday

	cases := []struct {
		unit moment.Unit
		want int64
	}{
		{moment.UnitMinute, base},
		{moment.UnitHour, utcMS(2021, time.August, 9, 14, 0)},
		{moment.UnitDay, utcMS(2021, time.August, 9, 0, 0)},
		{moment.UnitWeek, utcMS(2021, time.August, 8, 0, 0)}, // back to Sunday
		{moment.UnitMonth, utcMS(2021, time.August, 1, 0, 0)},
		{moment.UnitYear, utcMS(2021, time.January, 1, 0, 0)},
	}
	for _, c := range cases {
		m := mustMoment(t, env, base, "UTC")
		_, err := m.StartOf(c.unit)
		require.NoError(t, err)
		assert.Equal(t, c.want, m.UnixMilli(), "start of %s", c.unit)
	}
}

func TestStartOf_WeekAcrossMonthBoundary(t *testing.T) {
	env := testEnv()
	// 2021-01-01 is a Friday; its week began Sunday 2020-12-27.
	m := mustMoment(t, env, utcMS(2021, time.January, 1, 15, 0), "UTC")
	_, err := m.StartOf(moment.UnitWeek)
	require.NoError(t, err)
	assert.Equal(t, utcMS(2020, time.December, 27, 0, 0), m.UnixMilli())
}

func TestStartOf_UnsupportedGranularity(t *testing.T) {
	env := testEnv()
	m := mustMoment(t, env, 0, "UTC")
	_, err := m.StartOf(moment.Unit("decade"))
	require.ErrorIs(t, err, moment.ErrUnsupportedGranularity)
}

func TestEndOf(t *testing.T) {
	env := testEnv()
	base := utcMS(2021, time.February, 10, 14, 5)

	cases := []struct {
		unit moment.Unit
		want int64
	}{
		{moment.UnitMinute, base},
		{moment.UnitHour, utcMS(2021, time.February, 10, 14, 59)},
		{moment.UnitDay, utcMS(2021, time.February, 10, 23, 59)},
		{moment.UnitMonth, utcMS(2021, time.February, 28, 23, 59)},
		{moment.UnitYear, utcMS(2021, time.December, 31, 23, 59)},
	}
	for _, c := range cases {
		m := mustMoment(t, env, base, "UTC")
		_, err := m.EndOf(c.unit)
		require.NoError(t, err)
		assert.Equal(t, c.want, m.UnixMilli(), "end of %s", c.unit)
	}
}

func TestCompare(t *testing.T) {
	env := testEnv()
	a := mustMoment(t, env, 60000, "UTC")
	b := mustMoment(t, env, 120000, "UTC")

	d, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, int64(-60000), d)

	d, err = b.Compare(a)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), d)

	// Equal instants in different zones are still incomparable.
	c := mustMoment(t, env, 60000, "Test/Fixed")
	_, err = a.Compare(c)
	require.ErrorIs(t, err, moment.ErrIncomparableTimezones)
}

func TestDiff_FixedUnits(t *testing.T) {
	env := testEnv()
	a := mustMoment(t, env, utcMS(2021, time.March, 1, 12, 0), "UTC")
	b := mustMoment(t, env, utcMS(2021, time.March, 1, 10, 30), "UTC")

	d, err := a.Diff(b, moment.UnitHour, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d, "90 minutes truncate to one full hour")

	d, err = b.Diff(a, moment.UnitHour, false)
	require.NoError(t, err)
	assert.Equal(t, -1.0, d, "negative differences truncate toward zero")

	d, err = a.Diff(b, moment.UnitHour, true)
	require.NoError(t, err)
	assert.Equal(t, 1.5, d)

	d, err = a.Diff(b, moment.UnitMinute, false)
	require.NoError(t, err)
	assert.Equal(t, 90.0, d)
}

func TestDiff_Months(t *testing.T) {
	env := testEnv()
	a := mustMoment(t, env, utcMS(2021, time.April, 10, 0, 0), "UTC")
	b := mustMoment(t, env, utcMS(2021, time.January, 15, 0, 0), "UTC")

	d, err := a.Diff(b, moment.UnitMonth, false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d, "Jan 15 to Apr 10 spans two whole months")

	d, err = b.Diff(a, moment.UnitMonth, false)
	require.NoError(t, err)
	assert.Equal(t, -2.0, d)

	d, err = a.Diff(b, moment.UnitMonth, true)
	require.NoError(t, err)
	assert.Greater(t, d, 2.0)
	assert.Less(t, d, 3.0)
	// The remainder is proportional to the position inside the partial
	// month Mar 15 - Apr 15.
	assert.InDelta(t, 2.0+26.0/31.0, d, 1e-9)
}

func TestDiff_MonthBoundaryExact(t *testing.T) {
	env := testEnv()
	a := mustMoment(t, env, utcMS(2021, time.March, 15, 0, 0), "UTC")
	b := mustMoment(t, env, utcMS(2021, time.January, 15, 0, 0), "UTC")

	d, err := a.Diff(b, moment.UnitMonth, true)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestDiff_Years(t *testing.T) {
	env := testEnv()
	a := mustMoment(t, env, utcMS(2021, time.June, 1, 0, 0), "UTC")
	b := mustMoment(t, env, utcMS(2019, time.June, 1, 0, 0), "UTC")

	d, err := a.Diff(b, moment.UnitYear, false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)

	d, err = b.Diff(a, moment.UnitYear, false)
	require.NoError(t, err)
	assert.Equal(t, -2.0, d)
}

func TestDiff_Errors(t *testing.T) {
	env := testEnv()
	a := mustMoment(t, env, 0, "UTC")
	b := mustMoment(t, env, 0, "Test/Fixed")

	_, err := a.Diff(b, moment.UnitHour, false)
	require.ErrorIs(t, err, moment.ErrIncomparableTimezones)

	c := mustMoment(t, env, 0, "UTC")
	_, err = a.Diff(c, moment.Unit("era"), false)
	require.ErrorIs(t, err, moment.ErrUnsupportedUnit)
}

func TestIsBetween(t *testing.T) {
	env := testEnv()
	start := mustMoment(t, env, utcMS(2021, time.March, 1, 0, 0), "UTC")
	end := mustMoment(t, env, utcMS(2021, time.March, 31, 0, 0), "UTC")

	t.Run("inside", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.March, 15, 9, 0), "UTC")
		ok, err := m.IsBetween(start, end, moment.UnitDay, moment.BoundsExclusive)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("bounds at day granularity", func(t *testing.T) {
		// Later in the day than the start bound, but the same day.
		m := mustMoment(t, env, utcMS(2021, time.March, 1, 23, 0), "UTC")

		ok, err := m.IsBetween(start, end, moment.UnitDay, moment.BoundsExclusive)
		require.NoError(t, err)
		assert.False(t, ok, "same day as start is outside an open bound")

		ok, err = m.IsBetween(start, end, moment.UnitDay, moment.BoundsIncludeStart)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = m.IsBetween(start, end, moment.UnitMinute, moment.BoundsExclusive)
		require.NoError(t, err)
		assert.True(t, ok, "at minute granularity 23:00 is after the bound")
	})

	t.Run("inclusive end", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.March, 31, 5, 0), "UTC")

		ok, err := m.IsBetween(start, end, moment.UnitDay, moment.BoundsIncludeEnd)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = m.IsBetween(start, end, moment.UnitDay, moment.BoundsIncludeStart)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid range", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.March, 15, 0, 0), "UTC")
		_, err := m.IsBetween(end, start, moment.UnitDay, moment.BoundsInclusive)
		require.ErrorIs(t, err, moment.ErrInvalidRange)
	})

	t.Run("invalid inclusivity", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.March, 15, 0, 0), "UTC")
		_, err := m.IsBetween(start, end, moment.UnitDay, "[[")
		require.ErrorIs(t, err, moment.ErrInvalidInclusivity)
	})

	t.Run("incomparable zones", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.March, 15, 0, 0), "Test/Fixed")
		_, err := m.IsBetween(start, end, moment.UnitDay, moment.BoundsInclusive)
		require.ErrorIs(t, err, moment.ErrIncomparableTimezones)
	})

	t.Run("unsupported granularity", func(t *testing.T) {
		m := mustMoment(t, env, utcMS(2021, time.March, 15, 0, 0), "UTC")
		_, err := m.IsBetween(start, end, moment.Unit("quarter"), moment.BoundsInclusive)
		require.ErrorIs(t, err, moment.ErrUnsupportedGranularity)
	})
}

func TestChainedMutation(t *testing.T) {
	env := testEnv()
	m := mustMoment(t, env, utcMS(2021, time.August, 9, 14, 5), "UTC")

	// Fluent calls mutate and return the same value.
	r, err := m.Add(1, moment.UnitMonth)
	require.NoError(t, err)
	assert.Same(t, m, r)
	r, err = m.StartOf(moment.UnitDay)
	require.NoError(t, err)
	assert.Same(t, m, r)
	assert.Equal(t, utcMS(2021, time.September, 9, 0, 0), m.UnixMilli())
}
