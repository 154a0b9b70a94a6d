package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config holds every tunable of one digest run.
type Config struct {
	OutputDir     string `json:"output_dir"`
	SeenCachePath string `json:"seen_cache_path"`

	// WeekAnchor is "latest" or a YYYY-MM-DD date inside the target week.
	WeekAnchor string `json:"week_anchor"`

	HTTPTimeoutSeconds int `json:"http_timeout_seconds"`
	SummaryMaxRunes    int `json:"summary_max_runes"`

	MaxDomestic      int `json:"max_domestic"`
	MaxInternational int `json:"max_international"`
	MaxSocial        int `json:"max_social"`
	MaxCuriosity     int `json:"max_curiosity"`

	MinDomestic      int `json:"min_domestic"`
	MinInternational int `json:"min_international"`
	MinSocial        int `json:"min_social"`

	FallbackLookbackDays int `json:"fallback_lookback_days"`
	NewlyAnnouncedDays   int `json:"newly_announced_days"`

	ExtraFeedURLs    []string `json:"extra_feed_urls"`
	ExtraArticleURLs []string `json:"extra_article_urls"`

	GraphAPIToken string   `json:"graph_api_token"`
	GraphPageIDs  []string `json:"graph_page_ids"`

	WebhookURL     string `json:"webhook_url"`
	WebhookDocID   string `json:"webhook_doc_id"`
	PushgatewayURL string `json:"pushgateway_url"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		OutputDir:            "docs",
		SeenCachePath:        "seen_events.json",
		WeekAnchor:           "latest",
		HTTPTimeoutSeconds:   15,
		SummaryMaxRunes:      280,
		MaxDomestic:          5,
		MaxInternational:     5,
		MaxSocial:            2,
		MaxCuriosity:         1,
		MinDomestic:          1,
		MinInternational:     2,
		MinSocial:            1,
		FallbackLookbackDays: 21,
		NewlyAnnouncedDays:   14,
	}
}

// LoadConfig reads a JSON config file at path over the defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv layers environment variables over the loaded config.
// Empty variables leave the config value untouched.
func (cfg *Config) ApplyEnv() {
	setString(&cfg.OutputDir, "OUTPUT_DIR")
	setString(&cfg.SeenCachePath, "SEEN_CACHE_PATH")
	setString(&cfg.WeekAnchor, "WEEK_ANCHOR")
	setString(&cfg.GraphAPIToken, "GRAPH_API_TOKEN")
	setString(&cfg.WebhookURL, "WEBHOOK_URL")
	setString(&cfg.WebhookDocID, "WEBHOOK_DOC_ID")
	setString(&cfg.PushgatewayURL, "PUSHGATEWAY_URL")
	setList(&cfg.ExtraFeedURLs, "EXTRA_FEED_URLS")
	setList(&cfg.ExtraArticleURLs, "EXTRA_ARTICLE_URLS")
	setList(&cfg.GraphPageIDs, "GRAPH_PAGE_IDS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) > 0 {
		*dst = append(*dst, out...)
	}
}

// Validate checks timeouts, section bounds and every configured URL.
func (cfg *Config) Validate() error {
	if cfg.HTTPTimeoutSeconds < 1 {
		return errors.New("http timeout must be ≥ 1 second")
	}
	if cfg.MaxDomestic < cfg.MinDomestic {
		return fmt.Errorf("max_domestic (%d) below min_domestic (%d)", cfg.MaxDomestic, cfg.MinDomestic)
	}
	if cfg.MaxInternational < cfg.MinInternational {
		return fmt.Errorf("max_international (%d) below min_international (%d)", cfg.MaxInternational, cfg.MinInternational)
	}
	if cfg.MaxSocial < cfg.MinSocial {
		return fmt.Errorf("max_social (%d) below min_social (%d)", cfg.MaxSocial, cfg.MinSocial)
	}
	if cfg.WeekAnchor != "latest" && !isDate(cfg.WeekAnchor) {
		return fmt.Errorf("week_anchor must be \"latest\" or YYYY-MM-DD, got %q", cfg.WeekAnchor)
	}
	urls := append([]string{}, cfg.ExtraFeedURLs...)
	urls = append(urls, cfg.ExtraArticleURLs...)
	if cfg.WebhookURL != "" {
		urls = append(urls, cfg.WebhookURL)
	}
	if cfg.PushgatewayURL != "" {
		urls = append(urls, cfg.PushgatewayURL)
	}
	for _, u := range urls {
		if _, err := url.ParseRequestURI(u); err != nil {
			return fmt.Errorf("invalid URL: %s", u)
		}
	}
	return nil
}

func isDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
