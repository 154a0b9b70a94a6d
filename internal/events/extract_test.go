package events_test

import (
	"strings"
	"testing"
	"time"

	"dnb_digest/internal/events"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestFromJSONLD(t *testing.T) {
	html := `<html><head>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@graph": [{
			"@type": "MusicEvent",
			"name": "Let It Roll 2026",
			"startDate": "2026-07-30",
			"endDate": "2026-08-01",
			"url": "https://letitroll.cz/tickets",
			"location": {"@type": "Place", "name": "Milovice Airport"}
		}]
	}
	</script>
	</head><body></body></html>`

	evs := events.FromJSONLD(doc(t, html), "test")
	require.Len(t, evs, 1)
	require.Equal(t, "Let It Roll 2026", evs[0].Title)
	require.Equal(t, "Milovice Airport", evs[0].Location)
	require.Equal(t, "https://letitroll.cz/tickets", evs[0].URL)
	require.Equal(t, 30, evs[0].Start.Day())
	require.Equal(t, time.August, evs[0].End.Month())
	require.Equal(t, "test", evs[0].Source)
}

func TestFromJSONLD_ReversedDatesSwapped(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type": "Event", "name": "Backwards", "startDate": "2026-09-05", "endDate": "2026-09-04"}
	</script>`

	evs := events.FromJSONLD(doc(t, html), "test")
	require.Len(t, evs, 1)
	require.False(t, evs[0].End.Before(evs[0].Start))
	require.Equal(t, 4, evs[0].Start.Day())
	require.Equal(t, 5, evs[0].End.Day())
}

func TestFromJSONLD_EndDefaultsToStart(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@type": "Event", "name": "One-dayer", "startDate": "2026-09-12"}
	</script>`

	evs := events.FromJSONLD(doc(t, html), "test")
	require.Len(t, evs, 1)
	require.True(t, evs[0].End.Equal(evs[0].Start))
}

func TestFromJSONLD_AliasKeysWithoutTypeTag(t *testing.T) {
	// No @type: recognized by name-like plus start-date-like keys.
	html := `<script type="application/ld+json">
	{"events": [
		{"title": "Warehouse session", "start_time": "2026-10-03T21:00:00", "link": "https://example.com/e/1", "city": "Brno"},
		{"title": "No date, not an event"}
	]}
	</script>`

	evs := events.FromJSONLD(doc(t, html), "test")
	require.Len(t, evs, 1)
	require.Equal(t, "Warehouse session", evs[0].Title)
	require.Equal(t, "Brno", evs[0].Location)
	require.Equal(t, 21, evs[0].Start.Hour())
}

func TestFromEmbeddedJSON(t *testing.T) {
	html := `<html><body>
	<script>
	window.__INITIAL_STATE__ = {"calendar": {"items": [
		{"name": "Hospitality Prague", "startDate": "2026-11-20", "url": "https://example.com/e/2"}
	]}};
	</script>
	</body></html>`

	evs := events.FromEmbeddedJSON(doc(t, html), "test")
	require.Len(t, evs, 1)
	require.Equal(t, "Hospitality Prague", evs[0].Title)
	require.Equal(t, time.November, evs[0].Start.Month())
}

func TestFromEmbeddedJSON_IgnoresNonJSON(t *testing.T) {
	html := `<script>function f() { if (a) { return b; } }</script>`
	require.Empty(t, events.FromEmbeddedJSON(doc(t, html), "test"))
}

func TestDedupeByURL(t *testing.T) {
	html := `<script type="application/ld+json">
	[
		{"@type": "Event", "name": "Same", "startDate": "2026-09-05", "url": "https://example.com/e"},
		{"@type": "Event", "name": "Same again", "startDate": "2026-09-05", "url": "https://example.com/e"}
	]
	</script>`

	evs := events.DedupeByURL(events.FromJSONLD(doc(t, html), "test"))
	require.Len(t, evs, 1)
	require.Equal(t, "Same", evs[0].Title)
}
