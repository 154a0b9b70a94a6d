package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"dnb_digest/internal/feeds"
	"dnb_digest/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// FromFeed maps a parsed feed into normalized items for one source.
func FromFeed(feed *gofeed.Feed, src feeds.Source, summaryMax int) []models.Item {
	var out []models.Item
	for _, entry := range feed.Items {
		if entry == nil || entry.Title == "" {
			continue
		}
		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}
		out = append(out, models.Item{
			Title:     strings.TrimSpace(entry.Title),
			Summary:   Truncate(StripHTML(summary), summaryMax),
			Link:      CanonicalLink(entry.Link, summary),
			Published: entryTime(entry),
			Source:    src.Name,
			Section:   src.Section,
		})
	}
	return out
}

// entryTime resolves a best-effort timestamp: gofeed's parsed fields
// first, then dateparse over the raw strings. Nil when nothing parses.
func entryTime(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed
	}
	for _, raw := range []string{entry.Published, entry.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return &t
		}
	}
	return nil
}

// trackingParams are stripped from every canonical link.
var trackingParams = []string{"fbclid", "gclid", "igshid", "ref"}

// CanonicalLink normalizes a link for deduplication: tracking query
// parameters and fragments are dropped and Google News redirect
// wrappers are unwrapped. summaryHTML feeds the last-resort scan for
// wrapped links that carry no url= parameter.
func CanonicalLink(raw, summaryHTML string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if unwrapped := unwrapGoogleNews(raw, summaryHTML); unwrapped != "" {
		raw = unwrapped
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for key := range q {
		if strings.HasPrefix(key, "utm_") {
			q.Del(key)
			continue
		}
		for _, tp := range trackingParams {
			if key == tp {
				q.Del(key)
			}
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}

var linkRe = regexp.MustCompile(`https?://[^\s"'<>]+`)

// redirectors never count as the real target of a wrapped link.
var redirectors = []string{"news.google.", "google.com", "feedproxy.", "feedburner."}

func unwrapGoogleNews(raw, summaryHTML string) string {
	u, err := url.Parse(raw)
	if err != nil || !strings.Contains(u.Host, "news.google.") {
		return ""
	}
	if target := u.Query().Get("url"); target != "" {
		return target
	}
	// Item pages without a url= parameter usually embed the real link
	// in the summary HTML.
	for _, cand := range linkRe.FindAllString(summaryHTML, -1) {
		if !isRedirector(cand) {
			return strings.TrimRight(cand, ".,;)")
		}
	}
	return ""
}

func isRedirector(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return true
	}
	for _, r := range redirectors {
		if strings.Contains(u.Host, r) {
			return true
		}
	}
	return false
}

// StripHTML flattens markup to plain text.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	text := doc.Text()
	return strings.Join(strings.Fields(text), " ")
}

// Truncate cuts s to max runes, appending an ellipsis on a word border.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
