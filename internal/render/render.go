// Package render assembles the weekly briefing: Markdown first, then a
// static HTML page converted from it. Formatting only, no fetching.
package render

import (
	"fmt"
	"strings"

	"dnb_digest/internal/models"
)

const placeholder = "_bez položek_"

// Digest is everything one rendered briefing needs.
type Digest struct {
	WeekLabel string
	Period    string

	Domestic      []models.Item
	International []models.Item
	Social        []models.Item
	Curiosity     []models.Item

	Upcoming       []models.Event
	ThisWeek       []models.Event
	NewlyAnnounced []models.Event
}

// refList numbers citation links by order of first appearance and
// deduplicates repeats onto the same number.
type refList struct {
	order []string
	index map[string]int
}

func newRefList() *refList {
	return &refList{index: make(map[string]int)}
}

func (r *refList) cite(link string) int {
	if n, ok := r.index[link]; ok {
		return n
	}
	r.order = append(r.order, link)
	r.index[link] = len(r.order)
	return len(r.order)
}

// Markdown renders the briefing document. Empty sections keep their
// heading with a placeholder line so the layout never collapses.
func Markdown(d Digest) string {
	refs := newRefList()
	var b strings.Builder

	fmt.Fprintf(&b, "# DnB Monday Briefing — týden %s\n\n", d.WeekLabel)
	fmt.Fprintf(&b, "**Období:** %s\n\n", d.Period)

	itemSection(&b, refs, "Tuzemsko", d.Domestic)
	itemSection(&b, refs, "Ze světa", d.International)
	itemSection(&b, refs, "Komunita", d.Social)
	itemSection(&b, refs, "Kuriozita", d.Curiosity)

	eventSection(&b, refs, "Události", d.Upcoming)
	eventSection(&b, refs, "Tento týden", d.ThisWeek)
	eventSection(&b, refs, "Nově oznámeno", d.NewlyAnnounced)

	b.WriteString("---\n\n## Zdroje\n\n")
	if len(refs.order) == 0 {
		b.WriteString("_neuvedeno_\n")
	}
	for i, link := range refs.order {
		fmt.Fprintf(&b, "%d. <%s>\n", i+1, link)
	}
	return b.String()
}

func itemSection(b *strings.Builder, refs *refList, heading string, items []models.Item) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if len(items) == 0 {
		b.WriteString(placeholder + "\n\n")
		return
	}
	for _, it := range items {
		line := "- **" + it.Title + "**"
		if it.Summary != "" {
			line += " — " + it.Summary
		}
		if it.Link != "" {
			line += fmt.Sprintf(" [%d]", refs.cite(it.Link))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func eventSection(b *strings.Builder, refs *refList, heading string, events []models.Event) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if len(events) == 0 {
		b.WriteString(placeholder + "\n\n")
		return
	}
	for _, ev := range events {
		line := "- " + eventDates(ev) + " **" + ev.Title + "**"
		if ev.Location != "" {
			line += " (" + ev.Location + ")"
		}
		if ev.URL != "" {
			line += fmt.Sprintf(" [%d]", refs.cite(ev.URL))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func eventDates(ev models.Event) string {
	if ev.End.Equal(ev.Start) {
		return fmt.Sprintf("%d. %d.", ev.Start.Day(), int(ev.Start.Month()))
	}
	return fmt.Sprintf("%d. %d. – %d. %d.",
		ev.Start.Day(), int(ev.Start.Month()),
		ev.End.Day(), int(ev.End.Month()))
}
