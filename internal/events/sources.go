package events

import (
	"time"

	"dnb_digest/internal/logger"
	"dnb_digest/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// TimeSource supplies "now" so tests can pin the year inference of the
// DOM fallback.
type TimeSource func() time.Time

// PageSource is one calendar/listing page scraped for events.
type PageSource struct {
	Name string
	URL  string
}

// Pages is the static list of scraped event pages.
var Pages = []PageSource{
	{Name: "Let It Roll", URL: "https://letitroll.cz/en/"},
	{Name: "GoOut", URL: "https://goout.net/cs/akce/drum-and-bass/"},
	{Name: "Resident Advisor CZ", URL: "https://ra.co/events/cz/all"},
	{Name: "Hoofbeats", URL: "https://hoofbeats.cz/akce/"},
}

// DocFetcher is the part of the HTTP client the page scraper needs.
type DocFetcher interface {
	Document(url string) (*goquery.Document, error)
}

// Collect scrapes every event page sequentially. Per page, structured
// payloads win: JSON-LD first, then embedded JSON blobs, then the DOM
// heuristic. A failing page contributes nothing.
func Collect(f DocFetcher, pages []PageSource, now TimeSource) ([]models.Event, []models.SourceReport) {
	var out []models.Event
	var reports []models.SourceReport

	for _, page := range pages {
		log := logger.Log.WithField("source", page.Name)
		report := models.SourceReport{Source: page.Name}

		doc, err := f.Document(page.URL)
		if err != nil {
			log.Warnf("Fetch failed: %v", err)
			report.Err = err
			reports = append(reports, report)
			continue
		}

		evs := FromJSONLD(doc, page.Name)
		if len(evs) == 0 {
			evs = FromEmbeddedJSON(doc, page.Name)
		}
		if len(evs) == 0 {
			evs = FromDOM(doc, page.Name, now())
		}

		report.Fetched = len(evs)
		report.Kept = len(evs)
		log.WithField("events", len(evs)).Debug("Page processed")

		out = append(out, evs...)
		reports = append(reports, report)
	}
	return DedupeByURL(out), reports
}
