package feeds

import "dnb_digest/internal/models"

// Source is one RSS/Atom feed polled during a run.
type Source struct {
	Name    string
	URL     string
	Section models.Section
	// Domestic marks Czech/Slovak sources whose items default to the
	// domestic bucket.
	Domestic bool
	// Fallback sources are skipped on the first pass and queried only
	// when a section is short of its minimum count.
	Fallback bool
}

// Registry is the static list of polled feeds. Google News queries act
// as a proxy for sites without usable feeds of their own.
var Registry = []Source{
	{Name: "UKF", URL: "https://ukf.com/feed", Section: models.SectionInternational},
	{Name: "DnB Dojo", URL: "https://dnbdojo.co.uk/feed/", Section: models.SectionInternational},
	{Name: "Google News CZ", URL: "https://news.google.com/rss/search?q=%22drum+and+bass%22+OR+drumandbass&hl=cs&gl=CZ&ceid=CZ:cs", Section: models.SectionDomestic, Domestic: true},
	{Name: "Google News", URL: "https://news.google.com/rss/search?q=%22drum+and+bass%22&hl=en-US&gl=US&ceid=US:en", Section: models.SectionInternational},
	{Name: "rave.cz", URL: "https://rave.cz/feed/", Section: models.SectionDomestic, Domestic: true},
	{Name: "musicserver.cz", URL: "https://musicserver.cz/rss/novinky.xml", Section: models.SectionDomestic, Domestic: true},
	{Name: "r/DnB", URL: "https://www.reddit.com/r/DnB/.rss", Section: models.SectionSocial},
	{Name: "Dogs On Acid", URL: "https://www.dogsonacid.com/forums/-/index.rss", Section: models.SectionSocial},
	{Name: "UKF D&B (YouTube)", URL: "https://www.youtube.com/feeds/videos.xml?channel_id=UCfLFTP1uTuIizynWsZq2nkQ", Section: models.SectionInternational},

	// Secondary sources, used to top up a short international section.
	{Name: "Mixmag", URL: "https://mixmag.net/rss.xml", Section: models.SectionInternational, Fallback: true},
	{Name: "DJ Mag", URL: "https://djmag.com/rss.xml", Section: models.SectionInternational, Fallback: true},
	{Name: "In-Reach", URL: "https://inreachmag.com/feed/", Section: models.SectionInternational, Fallback: true},
}

// Primary returns the first-pass sources plus any extra feed URLs from
// the configuration (treated as international unless classified otherwise).
func Primary(extraURLs []string) []Source {
	var out []Source
	for _, s := range Registry {
		if !s.Fallback {
			out = append(out, s)
		}
	}
	for _, u := range extraURLs {
		out = append(out, Source{Name: "extra", URL: u, Section: models.SectionInternational})
	}
	return out
}

// Secondary returns the fallback sources used for section top-up.
func Secondary() []Source {
	var out []Source
	for _, s := range Registry {
		if s.Fallback {
			out = append(out, s)
		}
	}
	return out
}
