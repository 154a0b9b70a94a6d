package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Section is the digest bucket an item is filed under.
type Section string

const (
	SectionDomestic      Section = "domestic"
	SectionInternational Section = "international"
	SectionSocial        Section = "social"
)

// Item represents a normalized news or social entry from one source.
// Published is nil when no timestamp could be resolved from the feed;
// such items never enter week-windowed sections.
type Item struct {
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published,omitempty"`
	Source    string     `json:"source"`
	Section   Section    `json:"section"`
}

// DedupKey collapses retellings of the same story: a truncated
// sha256 over title and canonical link.
func (it Item) DedupKey() string {
	hash := sha256.Sum256([]byte(it.Title + "|" + it.Link))
	return hex.EncodeToString(hash[:])[:16]
}

// SourceReport is the per-source outcome of one run, surfaced in the
// completion log so a source going dark is visible to operators.
type SourceReport struct {
	Source  string
	Fetched int
	Kept    int
	Err     error
}
