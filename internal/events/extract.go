// Package events extracts structured calendar entries from third-party
// event and festival pages. Structured payloads (JSON-LD, embedded JSON
// state blobs) are preferred; a DOM heuristic covers pages without any.
package events

import (
	"encoding/json"
	"strings"
	"time"

	"dnb_digest/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// Key aliases seen across event pages. Third-party markup is
// inconsistent enough that field names have to be guessed per record.
var (
	titleKeys    = []string{"name", "title", "eventName", "summary"}
	startKeys    = []string{"startDate", "start_date", "start_time", "startTime", "start", "dateStart", "datetime", "date"}
	endKeys      = []string{"endDate", "end_date", "end_time", "endTime", "end", "dateEnd"}
	urlKeys      = []string{"url", "link", "permalink", "href", "website"}
	locationKeys = []string{"location", "venue", "place", "city", "address"}
)

// FromJSONLD scans the page's ld+json script blocks for event records.
func FromJSONLD(doc *goquery.Document, source string) []models.Event {
	var out []models.Event
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		out = append(out, fromPayload(payload, source)...)
	})
	return out
}

// FromEmbeddedJSON scans plain script blocks for JSON state blobs
// (window.__DATA__ = {...} and the like) and mines them for event
// records the same way as ld+json payloads.
func FromEmbeddedJSON(doc *goquery.Document, source string) []models.Event {
	var out []models.Event
	doc.Find("script:not([src])").Each(func(_ int, s *goquery.Selection) {
		if typ, _ := s.Attr("type"); typ == "application/ld+json" {
			return
		}
		payload, ok := looseJSON(s.Text())
		if !ok {
			return
		}
		out = append(out, fromPayload(payload, source)...)
	})
	return out
}

// looseJSON tries to pull one JSON object out of arbitrary script text:
// everything between the first '{' and the last '}', minus a trailing
// semicolon. Good enough for assignment-style state blobs.
func looseJSON(text string) (interface{}, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	var payload interface{}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func fromPayload(payload interface{}, source string) []models.Event {
	var out []models.Event
	walk(payload, func(record map[string]interface{}) {
		if !eventShaped(record) {
			return
		}
		if ev, ok := extract(record, source); ok {
			out = append(out, ev)
		}
	})
	return out
}

// walk visits every dict nested anywhere inside payload.
func walk(v interface{}, visit func(map[string]interface{})) {
	switch node := v.(type) {
	case map[string]interface{}:
		visit(node)
		for _, child := range node {
			walk(child, visit)
		}
	case []interface{}:
		for _, child := range node {
			walk(child, visit)
		}
	}
}

// eventShaped recognizes a record as an event either by its @type tag
// or by carrying both a name-like and a start-date-like key.
func eventShaped(record map[string]interface{}) bool {
	switch typ := record["@type"].(type) {
	case string:
		if strings.Contains(strings.ToLower(typ), "event") {
			return true
		}
	case []interface{}:
		for _, t := range typ {
			if s, ok := t.(string); ok && strings.Contains(strings.ToLower(s), "event") {
				return true
			}
		}
	}
	return hasAny(record, titleKeys) && hasAny(record, startKeys)
}

func extract(record map[string]interface{}, source string) (models.Event, bool) {
	title := stringField(record, titleKeys)
	if title == "" {
		return models.Event{}, false
	}
	start, ok := dateField(record, startKeys)
	if !ok {
		return models.Event{}, false
	}
	end, _ := dateField(record, endKeys)

	ev := models.NewEvent(title, locationField(record), stringField(record, urlKeys), source, start, end)
	return ev, true
}

func hasAny(record map[string]interface{}, keys []string) bool {
	for _, k := range keys {
		if _, ok := record[k]; ok {
			return true
		}
	}
	return false
}

func stringField(record map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if s, ok := record[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func dateField(record map[string]interface{}, keys []string) (time.Time, bool) {
	for _, k := range keys {
		raw, ok := record[k].(string)
		if !ok || raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// locationField accepts both flat strings and nested place/address
// objects ("location": {"name": ...} or {"address": {"addressLocality": ...}}).
func locationField(record map[string]interface{}) string {
	for _, k := range locationKeys {
		switch loc := record[k].(type) {
		case string:
			if s := strings.TrimSpace(loc); s != "" {
				return s
			}
		case map[string]interface{}:
			if s := stringField(loc, []string{"name", "addressLocality", "city"}); s != "" {
				return s
			}
			if addr, ok := loc["address"].(map[string]interface{}); ok {
				if s := stringField(addr, []string{"addressLocality", "name", "city"}); s != "" {
					return s
				}
			}
		}
	}
	return ""
}
