package digest

import (
	"strings"

	"dnb_digest/internal/classify"
	"dnb_digest/internal/models"
)

// curiosityMarkers pull an item into the Kuriozita slot: offbeat scene
// stories rather than straight release/event news.
var curiosityMarkers = []string{
	"rekord", "record", "vinyl", "dokument", "documentary", "anniversary",
	"výročí", "sample", "archiv", "archive", "ai", "robot", "study",
	"studie", "guinness",
}

// PickCuriosity selects at most max offbeat items from candidates that
// are not already placed in another section.
func PickCuriosity(candidates []models.Item, taken map[string]bool, max int) []models.Item {
	if max <= 0 {
		return nil
	}
	var out []models.Item
	for _, it := range SortNewestFirst(candidates) {
		if taken[it.DedupKey()] {
			continue
		}
		text := strings.ToLower(it.Title + " " + it.Summary)
		for _, marker := range curiosityMarkers {
			if classify.ContainsToken(text, marker) {
				taken[it.DedupKey()] = true
				out = append(out, it)
				break
			}
		}
		if len(out) >= max {
			break
		}
	}
	return out
}
