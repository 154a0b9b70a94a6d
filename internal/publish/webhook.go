// Package publish pushes the finished briefing to an optional
// downstream webhook. Failures are reported, never fatal.
package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Payload is the JSON document POSTed to the webhook.
type Payload struct {
	Date       string            `json:"date"`
	Week       string            `json:"week"`
	DocumentID string            `json:"document_id,omitempty"`
	Sections   map[string]string `json:"sections"`
	References []string          `json:"references"`
}

// Webhook posts payloads to a configured URL.
type Webhook struct {
	URL    string
	DocID  string
	client *http.Client
}

func NewWebhook(url, docID string, timeout time.Duration) *Webhook {
	return &Webhook{
		URL:    url,
		DocID:  docID,
		client: &http.Client{Timeout: timeout},
	}
}

// Send POSTs the payload. Non-2xx responses count as errors so the
// caller can log them in the run report.
func (w *Webhook) Send(p Payload) error {
	p.DocumentID = w.DocID
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	resp, err := w.client.Post(w.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook %s: status %d", w.URL, resp.StatusCode)
	}
	return nil
}
