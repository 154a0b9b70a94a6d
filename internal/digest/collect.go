package digest

import (
	"time"

	"dnb_digest/internal/classify"
	"dnb_digest/internal/feeds"
	"dnb_digest/internal/logger"
	"dnb_digest/internal/models"
	"dnb_digest/internal/normalize"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

// FeedFetcher is the part of the HTTP client the collector needs.
type FeedFetcher interface {
	Feed(url string) (*gofeed.Feed, error)
}

// Collect runs the fetch → normalize → classify stages over sources,
// sequentially. A failing source contributes nothing and is recorded in
// its report; the run itself never fails here.
func Collect(f FeedFetcher, sources []feeds.Source, summaryMax int) ([]models.Item, []models.SourceReport) {
	var items []models.Item
	var reports []models.SourceReport

	for _, src := range sources {
		log := logger.Log.WithField("source", src.Name)
		report := models.SourceReport{Source: src.Name}

		feed, err := f.Feed(src.URL)
		if err != nil {
			log.Warnf("Fetch failed: %v", err)
			report.Err = err
			reports = append(reports, report)
			continue
		}

		normalized := normalize.FromFeed(feed, src, summaryMax)
		report.Fetched = len(normalized)
		for _, it := range normalized {
			if !classify.Relevant(it) {
				continue
			}
			it.Section = classify.Region(it, src.Domestic)
			items = append(items, it)
			report.Kept++
		}

		log.WithField("fetched", report.Fetched).WithField("kept", report.Kept).Debug("Source processed")
		reports = append(reports, report)
	}
	return items, reports
}

// CollectArticles ingests ad-hoc article pages (no feed available) via
// readability extraction. The pages carry no reliable timestamp, so the
// fetch time is used; hand-fed links always land in the current week.
func CollectArticles(urls []string, timeout time.Duration, summaryMax int) ([]models.Item, []models.SourceReport) {
	now := time.Now()
	var items []models.Item
	var reports []models.SourceReport

	for _, u := range urls {
		report := models.SourceReport{Source: "article:" + u}
		article, err := readability.FromURL(u, timeout)
		if err != nil {
			logger.Log.WithField("url", u).Warnf("Article extraction failed: %v", err)
			report.Err = err
			reports = append(reports, report)
			continue
		}
		report.Fetched = 1

		it := models.Item{
			Title:     article.Title,
			Summary:   normalize.Truncate(normalize.StripHTML(article.Excerpt), summaryMax),
			Link:      normalize.CanonicalLink(u, ""),
			Published: &now,
			Source:    "articles",
		}
		if it.Title == "" {
			it.Title = u
		}
		it.Section = classify.Region(it, false)
		items = append(items, it)
		report.Kept = 1
		reports = append(reports, report)
	}
	return items, reports
}
