package events

import (
	"encoding/json"
	"fmt"
	"net/url"

	"dnb_digest/internal/models"
)

const graphBase = "https://graph.facebook.com/v19.0"

// Getter is the part of the HTTP client the Graph API reader needs.
type Getter interface {
	Get(url string) ([]byte, error)
}

type graphEventList struct {
	Data []graphEvent `json:"data"`
}

type graphEvent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Place     struct {
		Name string `json:"name"`
	} `json:"place"`
}

// FromGraphAPI reads upcoming events of the given Facebook pages. Only
// called when a Graph API token is configured; any per-page failure
// contributes nothing.
func FromGraphAPI(g Getter, pageIDs []string, token string) ([]models.Event, []models.SourceReport) {
	var out []models.Event
	var reports []models.SourceReport

	for _, page := range pageIDs {
		report := models.SourceReport{Source: "facebook:" + page}

		q := url.Values{}
		q.Set("fields", "name,start_time,end_time,place")
		q.Set("access_token", token)
		body, err := g.Get(fmt.Sprintf("%s/%s/events?%s", graphBase, page, q.Encode()))
		if err != nil {
			report.Err = err
			reports = append(reports, report)
			continue
		}

		var list graphEventList
		if err := json.Unmarshal(body, &list); err != nil {
			report.Err = err
			reports = append(reports, report)
			continue
		}

		report.Fetched = len(list.Data)
		for _, ge := range list.Data {
			if ge.Name == "" || ge.StartTime == "" {
				continue
			}
			record := map[string]interface{}{
				"name":       ge.Name,
				"start_time": ge.StartTime,
				"end_time":   ge.EndTime,
				"location":   ge.Place.Name,
				"url":        "https://www.facebook.com/events/" + ge.ID,
			}
			if ev, ok := extract(record, "facebook:"+page); ok {
				out = append(out, ev)
				report.Kept++
			}
		}
		reports = append(reports, report)
	}
	return out, reports
}
