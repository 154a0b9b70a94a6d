package events

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"dnb_digest/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// monthWords anchor the DOM fallback on listing pages that group events
// under plain month headers.
var monthWords = []string{
	"leden", "únor", "březen", "duben", "květen", "červen", "červenec",
	"srpen", "září", "říjen", "listopad", "prosinec",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

var (
	dayMonthRe = regexp.MustCompile(`(\d{1,2})\.\s*(\d{1,2})\.`)
	yearRe     = regexp.MustCompile(`\b(20\d{2})\b`)
	hashtagRe  = regexp.MustCompile(`#([\p{L}\d]+)`)
)

// FromDOM is the fallback for pages without structured data: anchors
// under month headers, with a "D. M." date token somewhere in the
// anchor or its parent text. The text after the token is the title and
// a hashtag-like token names the city.
func FromDOM(doc *goquery.Document, source string, now time.Time) []models.Event {
	var out []models.Event
	doc.Find("h1, h2, h3, h4").Each(func(_ int, header *goquery.Selection) {
		headerText := strings.ToLower(header.Text())
		if !wordInText(headerText, monthWords) {
			return
		}
		year := now.Year()
		if m := yearRe.FindString(header.Text()); m != "" {
			year, _ = strconv.Atoi(m)
		}

		header.NextUntil("h1, h2, h3, h4").Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			text := a.Text()
			if !dayMonthRe.MatchString(text) {
				// Date token often lives in the surrounding text node.
				text = a.Parent().Text()
			}
			ev, ok := eventFromText(text, a.AttrOr("href", ""), source, year)
			if ok {
				out = append(out, ev)
			}
		})
	})
	return out
}

func eventFromText(text, href, source string, year int) (models.Event, bool) {
	loc := dayMonthRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return models.Event{}, false
	}
	day, _ := strconv.Atoi(text[loc[2]:loc[3]])
	month, _ := strconv.Atoi(text[loc[4]:loc[5]])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return models.Event{}, false
	}

	rest := strings.TrimSpace(text[loc[1]:])
	city := ""
	if m := hashtagRe.FindStringSubmatch(rest); m != nil {
		city = m[1]
		rest = strings.TrimSpace(strings.Replace(rest, m[0], "", 1))
	}
	title := strings.Join(strings.Fields(rest), " ")
	if title == "" {
		return models.Event{}, false
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return models.NewEvent(title, city, href, source, start, start), true
}

func wordInText(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
