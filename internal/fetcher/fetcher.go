package fetcher

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const userAgent = "dnb-digest/1.0 (+weekly drum & bass briefing)"

// Client performs the sequential HTTP fetches of one run. Every failure
// is returned to the caller, which logs and skips the source; a broken
// source degrades the digest, never the run.
type Client struct {
	http   *http.Client
	parser *gofeed.Parser
}

func New(timeout time.Duration) *Client {
	return &Client{
		http:   &http.Client{Timeout: timeout},
		parser: gofeed.NewParser(),
	}
}

// Get downloads url and returns the body, treating non-2xx as an error.
func (c *Client) Get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Feed downloads and parses an RSS/Atom document.
func (c *Client) Feed(url string) (*gofeed.Feed, error) {
	body, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	feed, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return feed, nil
}

// Document downloads and parses an HTML page.
func (c *Client) Document(url string) (*goquery.Document, error) {
	body, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", url, err)
	}
	return doc, nil
}
