package normalize_test

import (
	"testing"
	"time"

	"dnb_digest/internal/feeds"
	"dnb_digest/internal/models"
	"dnb_digest/internal/normalize"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"
)

func TestCanonicalLink_TrackingParams(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "utm stripped, real params kept",
			raw:  "https://example.com/a?utm_source=x&id=5",
			want: "https://example.com/a?id=5",
		},
		{
			name: "fbclid and gclid stripped",
			raw:  "https://example.com/a?fbclid=abc&gclid=def&id=5",
			want: "https://example.com/a?id=5",
		},
		{
			name: "fragment dropped",
			raw:  "https://example.com/a#section",
			want: "https://example.com/a",
		},
		{
			name: "clean link unchanged",
			raw:  "https://example.com/a?id=5",
			want: "https://example.com/a?id=5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, normalize.CanonicalLink(tc.raw, ""))
		})
	}
}

func TestCanonicalLink_SameCanonicalForm(t *testing.T) {
	a := normalize.CanonicalLink("https://example.com/a?utm_source=x&id=5", "")
	b := normalize.CanonicalLink("https://example.com/a?id=5", "")
	require.Equal(t, b, a)
}

func TestCanonicalLink_GoogleNewsUnwrap(t *testing.T) {
	got := normalize.CanonicalLink("https://news.google.com/rss/articles/CBMi?url=https://example.com/a", "")
	require.Equal(t, "https://example.com/a", got)
}

func TestCanonicalLink_GoogleNewsSummaryFallback(t *testing.T) {
	summary := `<a href="https://news.google.com/articles/x">cached</a> original: <a href="https://example.com/story?utm_source=rss">here</a>`
	got := normalize.CanonicalLink("https://news.google.com/rss/articles/CBMi", summary)
	// First non-redirector URL from the summary wins, then normalizes.
	require.Equal(t, "https://example.com/story", got)
}

func TestFromFeed(t *testing.T) {
	published := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	feed := &gofeed.Feed{Items: []*gofeed.Item{
		{
			Title:           " New Hospitality lineup ",
			Description:     "<p>Full <b>lineup</b> announced</p>",
			Link:            "https://example.com/lineup?utm_campaign=feed",
			PublishedParsed: &published,
		},
		{
			Title:     "Raw date entry",
			Link:      "https://example.com/raw",
			Published: "2026-08-20 10:30:00",
		},
		{
			Title: "No date entry",
			Link:  "https://example.com/undated",
		},
		{
			Title: "", // untitled entries are dropped
			Link:  "https://example.com/untitled",
		},
	}}

	src := feeds.Source{Name: "test", Section: models.SectionInternational}
	items := normalize.FromFeed(feed, src, 280)
	require.Len(t, items, 3)

	require.Equal(t, "New Hospitality lineup", items[0].Title)
	require.Equal(t, "Full lineup announced", items[0].Summary)
	require.Equal(t, "https://example.com/lineup", items[0].Link)
	require.NotNil(t, items[0].Published)
	require.True(t, items[0].Published.Equal(published))
	require.Equal(t, "test", items[0].Source)
	require.Equal(t, models.SectionInternational, items[0].Section)

	// Raw string dates go through the fallback parser.
	require.NotNil(t, items[1].Published)
	require.Equal(t, 20, items[1].Published.Day())

	// Unresolvable dates stay nil so the window selector can skip them.
	require.Nil(t, items[2].Published)
}

func TestStripHTML(t *testing.T) {
	got := normalize.StripHTML("<div><p>Andy C  announces</p>\n<span>tour</span></div>")
	require.Equal(t, "Andy C announces tour", got)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", normalize.Truncate("short", 20))

	long := "one two three four five six seven eight nine ten"
	got := normalize.Truncate(long, 20)
	require.LessOrEqual(t, len([]rune(got)), 21) // cut + ellipsis
	require.Equal(t, "…", got[len(got)-len("…"):])
}
