package events

import (
	"sort"
	"strings"
	"time"

	"dnb_digest/internal/models"
	"dnb_digest/internal/store"
)

// topBrands are festival/promoter brands that always headline the
// events section.
var topBrands = []string{
	"let it roll", "hospitality", "rampage", "liquicity", "ukf",
	"dnb allstars", "korsakov", "beats for love",
}

// midHeadliners promote an event to the middle tier.
var midHeadliners = []string{
	"andy c", "noisia", "pendulum", "sub focus", "netsky",
	"camo & krooked", "black sun empire", "dimension", "friction",
	"goldie", "calibre", "hybrid minds", "mefjus", "a.m.c",
}

// AssignTier ranks an event by brand and headliner keywords.
func AssignTier(ev models.Event) models.Tier {
	text := strings.ToLower(ev.Title + " " + ev.Location)
	for _, brand := range topBrands {
		if strings.Contains(text, brand) {
			return models.TierTop
		}
	}
	for _, name := range midHeadliners {
		if strings.Contains(text, name) {
			return models.TierMid
		}
	}
	return models.TierLow
}

// FilterTiers tags every event with its tier and drops the low tier
// whenever any higher-tier event exists.
func FilterTiers(events []models.Event) []models.Event {
	higher := false
	for i := range events {
		events[i].Tier = AssignTier(events[i])
		if events[i].Tier != models.TierLow {
			higher = true
		}
	}
	if !higher {
		return events
	}
	var out []models.Event
	for _, ev := range events {
		if ev.Tier != models.TierLow {
			out = append(out, ev)
		}
	}
	return out
}

// DedupeByURL keeps the first event per URL; events without a URL are
// keyed by title and start date instead.
func DedupeByURL(events []models.Event) []models.Event {
	seen := make(map[string]bool, len(events))
	var out []models.Event
	for _, ev := range events {
		key := ev.URL
		if key == "" {
			key = strings.ToLower(ev.Title) + "|" + ev.Start.Format("2006-01-02")
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}

// Upcoming keeps events that have not ended before today, soonest first.
func Upcoming(events []models.Event, today time.Time) []models.Event {
	// Midnight in today's own location; Truncate would round in UTC.
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var out []models.Event
	for _, ev := range events {
		if !ev.End.Before(midnight) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// MarkSeen stamps each event with its first-seen date from the cache,
// registering unknown URLs as first seen today.
func MarkSeen(events []models.Event, cache *store.SeenCache, today time.Time) []models.Event {
	for i := range events {
		if events[i].URL == "" {
			events[i].FirstSeen = today
			continue
		}
		events[i].FirstSeen = cache.Mark(events[i].URL, today)
	}
	return events
}

// NewlyAnnounced returns events first seen within the trailing window.
func NewlyAnnounced(events []models.Event, today time.Time, windowDays int) []models.Event {
	floor := today.AddDate(0, 0, -windowDays)
	var out []models.Event
	for _, ev := range events {
		if ev.FirstSeen.IsZero() {
			continue
		}
		if !ev.FirstSeen.Before(floor) {
			out = append(out, ev)
		}
	}
	return out
}
