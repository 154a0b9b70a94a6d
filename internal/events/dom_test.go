package events_test

import (
	"testing"
	"time"

	"dnb_digest/internal/events"

	"github.com/stretchr/testify/require"
)

func TestFromDOM(t *testing.T) {
	html := `<html><body>
	<h2>Září 2026</h2>
	<div>
		<p><a href="/akce/1">12. 9. Neuro Night #Praha</a></p>
		<p><a href="/akce/2">26. 9. Jungle Fever #Brno</a></p>
		<p><a href="/akce/3">no date here</a></p>
	</div>
	<h2>Kontakt</h2>
	<p><a href="/kontakt">5. 5. looks like a date but sits under no month header</a></p>
	</body></html>`

	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	evs := events.FromDOM(doc(t, html), "listing", now)
	require.Len(t, evs, 2)

	require.Equal(t, "Neuro Night", evs[0].Title)
	require.Equal(t, "Praha", evs[0].Location)
	require.Equal(t, "/akce/1", evs[0].URL)
	require.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), evs[0].Start)

	require.Equal(t, "Jungle Fever", evs[1].Title)
	require.Equal(t, "Brno", evs[1].Location)
	require.Equal(t, 26, evs[1].Start.Day())
}

func TestFromDOM_DateInSiblingText(t *testing.T) {
	// The date token lives in the surrounding text node, not the anchor.
	html := `<h3>October</h3>
	<ul><li>3. 10. — <a href="https://example.com/e">Liquid Rollers</a> #Ostrava</li></ul>`

	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	evs := events.FromDOM(doc(t, html), "listing", now)
	require.Len(t, evs, 1)
	require.Equal(t, time.October, evs[0].Start.Month())
	require.Equal(t, "Ostrava", evs[0].Location)
}

func TestFromDOM_HeaderYearOverride(t *testing.T) {
	html := `<h2>Leden 2027</h2>
	<p><a href="/e">10. 1. Winter Bass #Plzeň</a></p>`

	now := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	evs := events.FromDOM(doc(t, html), "listing", now)
	require.Len(t, evs, 1)
	require.Equal(t, 2027, evs[0].Start.Year())
}

func TestFromDOM_RejectsImpossibleDates(t *testing.T) {
	html := `<h2>May</h2><p><a href="/e">40. 13. Not a date</a></p>`
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	require.Empty(t, events.FromDOM(doc(t, html), "listing", now))
}
