package digest_test

import (
	"testing"
	"time"

	"dnb_digest/internal/digest"

	"github.com/stretchr/testify/require"
)

func TestWeekBounds_Properties(t *testing.T) {
	// Sweep a full year of dates: every result must be a Monday..Sunday
	// span of 6 days containing the input date.
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 366; i++ {
		d := start.AddDate(0, 0, i)
		monday, sunday := digest.WeekBounds(d)

		require.Equal(t, time.Monday, monday.Weekday(), "input %s", d)
		require.Equal(t, time.Sunday, sunday.Weekday(), "input %s", d)
		require.Equal(t, 6*24*time.Hour, sunday.Sub(monday), "input %s", d)
		require.False(t, d.Before(monday), "input %s", d)
		require.False(t, sunday.AddDate(0, 0, 1).Before(d), "input %s", d)
	}
}

func TestWeekBounds_Known(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday, sunday := digest.WeekBounds(time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC))
	require.Equal(t, "2026-08-31", monday.Format("2006-01-02"))
	require.Equal(t, "2026-09-06", sunday.Format("2006-01-02"))

	// A Sunday maps back to the preceding Monday.
	monday, sunday = digest.WeekBounds(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "2026-08-31", monday.Format("2006-01-02"))
	require.Equal(t, "2026-09-06", sunday.Format("2006-01-02"))
}

func TestWeekLabel(t *testing.T) {
	monday, _ := digest.WeekBounds(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "2026-W36", digest.WeekLabel(monday))

	// ISO year can differ from the calendar year around New Year.
	monday, _ = digest.WeekBounds(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "2026-W53", digest.WeekLabel(monday))
}

func TestResolveAnchor(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	d, err := digest.ResolveAnchor("latest", now)
	require.NoError(t, err)
	require.Equal(t, now, d)

	d, err = digest.ResolveAnchor("", now)
	require.NoError(t, err)
	require.Equal(t, now, d)

	d, err = digest.ResolveAnchor("2026-05-14", now)
	require.NoError(t, err)
	require.Equal(t, "2026-05-14", d.Format("2006-01-02"))

	_, err = digest.ResolveAnchor("garbage", now)
	require.Error(t, err)
}

func TestPeriodString(t *testing.T) {
	monday, sunday := digest.WeekBounds(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "31. 8. – 6. 9. 2026", digest.PeriodString(monday, sunday))
}
