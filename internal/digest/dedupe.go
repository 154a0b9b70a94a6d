package digest

import (
	"sort"
	"time"

	"dnb_digest/internal/models"
)

// SortNewestFirst orders items by timestamp descending; items without a
// timestamp sink to the end. The sort is stable so same-time items keep
// their source order.
func SortNewestFirst(items []models.Item) []models.Item {
	out := append([]models.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Published, out[j].Published
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out
}

// Dedupe collapses items sharing a dedup key. Input is sorted
// newest-first beforehand, so the most recent telling of a story wins.
// max caps the result; max <= 0 means no cap.
func Dedupe(items []models.Item, max int) []models.Item {
	items = SortNewestFirst(items)
	seen := make(map[string]bool, len(items))
	var out []models.Item
	for _, it := range items {
		key := it.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// SelectWindow keeps items whose timestamp falls inside [monday, sunday],
// newest-first. Items without a resolvable timestamp cannot be placed in
// a period and are dropped.
func SelectWindow(items []models.Item, monday, sunday time.Time) []models.Item {
	end := sunday.AddDate(0, 0, 1) // exclusive upper bound, end of Sunday
	var out []models.Item
	for _, it := range SortNewestFirst(items) {
		if it.Published == nil {
			continue
		}
		t := *it.Published
		if !t.Before(monday) && t.Before(end) {
			out = append(out, it)
		}
	}
	return out
}

// TopUp fills selected up to min items from candidates within the wider
// lookback window ending at sunday, newest-first, never repeating a
// dedup key that is already selected.
func TopUp(selected, candidates []models.Item, min int, sunday time.Time, lookbackDays int) []models.Item {
	if len(selected) >= min {
		return selected
	}
	floor := sunday.AddDate(0, 0, -lookbackDays)
	end := sunday.AddDate(0, 0, 1)

	taken := make(map[string]bool, len(selected))
	for _, it := range selected {
		taken[it.DedupKey()] = true
	}

	for _, it := range SortNewestFirst(candidates) {
		if len(selected) >= min {
			break
		}
		if it.Published == nil {
			continue
		}
		t := *it.Published
		if t.Before(floor) || !t.Before(end) {
			continue
		}
		key := it.DedupKey()
		if taken[key] {
			continue
		}
		taken[key] = true
		selected = append(selected, it)
	}
	return selected
}
