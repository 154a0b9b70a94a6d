package models

import "time"

// Tier ranks an event by lineup/brand weight.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierTop
)

func (t Tier) String() string {
	switch t {
	case TierTop:
		return "top"
	case TierMid:
		return "mid"
	default:
		return "low"
	}
}

// Event represents a normalized calendar entry for a live show or festival.
type Event struct {
	Title     string    `json:"title"`
	Location  string    `json:"location,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Tier      Tier      `json:"tier"`
	FirstSeen time.Time `json:"first_seen,omitempty"`
}

// NewEvent builds an Event with sane dates: a missing end date defaults
// to the start date, and a reversed pair is swapped so End >= Start.
func NewEvent(title, location, url, source string, start, end time.Time) Event {
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		start, end = end, start
	}
	return Event{
		Title:    title,
		Location: location,
		Start:    start,
		End:      end,
		URL:      url,
		Source:   source,
	}
}
