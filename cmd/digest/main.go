package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"dnb_digest/internal/config"
	"dnb_digest/internal/digest"
	"dnb_digest/internal/events"
	"dnb_digest/internal/feeds"
	"dnb_digest/internal/fetcher"
	"dnb_digest/internal/logger"
	"dnb_digest/internal/metrics"
	"dnb_digest/internal/models"
	"dnb_digest/internal/publish"
	"dnb_digest/internal/render"
	"dnb_digest/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	logger.Init()
	defer logger.Log.Info("Run finished")

	_ = godotenv.Load()

	weekFlag := flag.String("week", "", `week anchor: "latest" or YYYY-MM-DD`)
	configPath := flag.String("config", "config.json", "path to config file")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *weekFlag != "" {
		cfg.WeekAnchor = *weekFlag
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("Invalid config: %v", err)
	}

	anchor, err := digest.ResolveAnchor(cfg.WeekAnchor, time.Now())
	if err != nil {
		logger.Log.Fatalf("Invalid week anchor %q: %v", cfg.WeekAnchor, err)
	}
	monday, sunday := digest.WeekBounds(anchor)
	label := digest.WeekLabel(monday)
	logger.Log.WithField("week", label).Info("Building briefing")

	run := metrics.NewRun()
	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	client := fetcher.New(timeout)

	// News branch: fetch → normalize → classify → dedupe → window-select.
	items, reports := digest.Collect(client, feeds.Primary(cfg.ExtraFeedURLs), cfg.SummaryMaxRunes)
	articleItems, articleReports := digest.CollectArticles(cfg.ExtraArticleURLs, timeout, cfg.SummaryMaxRunes)
	items = append(items, articleItems...)
	reports = append(reports, articleReports...)

	var domestic, international, social []models.Item
	for _, it := range items {
		switch it.Section {
		case models.SectionDomestic:
			domestic = append(domestic, it)
		case models.SectionSocial:
			social = append(social, it)
		default:
			international = append(international, it)
		}
	}

	d := render.Digest{
		WeekLabel:     label,
		Period:        digest.PeriodString(monday, sunday),
		Domestic:      digest.Dedupe(digest.SelectWindow(domestic, monday, sunday), cfg.MaxDomestic),
		International: digest.Dedupe(digest.SelectWindow(international, monday, sunday), cfg.MaxInternational),
		Social:        digest.Dedupe(digest.SelectWindow(social, monday, sunday), cfg.MaxSocial),
	}

	// A short international section re-queries the secondary site list
	// with a wider lookback window.
	if len(d.International) < cfg.MinInternational {
		fallback, fbReports := digest.Collect(client, feeds.Secondary(), cfg.SummaryMaxRunes)
		reports = append(reports, fbReports...)
		var candidates []models.Item
		for _, it := range fallback {
			if it.Section == models.SectionInternational {
				candidates = append(candidates, it)
			}
		}
		d.International = digest.TopUp(d.International, candidates, cfg.MinInternational, sunday, cfg.FallbackLookbackDays)
	}

	// Short sections fall back to the renderer's placeholder; the warning
	// is the operator's signal that a source may have gone dark.
	for _, short := range []struct {
		name string
		got  int
		min  int
	}{
		{"domestic", len(d.Domestic), cfg.MinDomestic},
		{"international", len(d.International), cfg.MinInternational},
		{"social", len(d.Social), cfg.MinSocial},
	} {
		if short.got < short.min {
			logger.Log.WithField("section", short.name).
				WithField("items", short.got).
				WithField("min", short.min).
				Warn("Section below minimum")
		}
	}

	taken := make(map[string]bool)
	for _, sel := range [][]models.Item{d.Domestic, d.International, d.Social} {
		for _, it := range sel {
			taken[it.DedupKey()] = true
		}
	}
	d.Curiosity = digest.PickCuriosity(digest.SelectWindow(items, monday, sunday), taken, cfg.MaxCuriosity)

	// Event branch: calendar pages plus the optional Graph API, diffed
	// against the persisted seen cache.
	today := time.Now()
	cache, err := store.Load(cfg.SeenCachePath)
	if err != nil {
		logger.Log.Warnf("Seen cache unreadable, starting empty: %v", err)
		cache = store.New()
	}

	evs, evReports := events.Collect(client, events.Pages, time.Now)
	reports = append(reports, evReports...)
	if cfg.GraphAPIToken != "" && len(cfg.GraphPageIDs) > 0 {
		graphEvents, graphReports := events.FromGraphAPI(client, cfg.GraphPageIDs, cfg.GraphAPIToken)
		evs = events.DedupeByURL(append(evs, graphEvents...))
		reports = append(reports, graphReports...)
	}

	evs = events.FilterTiers(evs)
	evs = events.MarkSeen(evs, cache, today)
	d.Upcoming = events.Upcoming(evs, today)
	d.NewlyAnnounced = events.NewlyAnnounced(d.Upcoming, today, cfg.NewlyAnnouncedDays)

	if err := cache.Save(cfg.SeenCachePath); err != nil {
		logger.Log.Warnf("Seen cache not saved: %v", err)
	}

	// Render and persist. Writing the output dir is the only fatal step.
	md := render.Markdown(d)
	page, err := render.HTML("DnB Monday Briefing — "+label, md)
	if err != nil {
		logger.Log.Fatalf("HTML render failed: %v", err)
	}
	mdPath, htmlPath, err := render.Write(cfg.OutputDir, label, md, page)
	if err != nil {
		logger.Log.Fatalf("Output write failed: %v", err)
	}

	if cfg.WebhookURL != "" {
		hook := publish.NewWebhook(cfg.WebhookURL, cfg.WebhookDocID, timeout)
		if err := hook.Send(briefingPayload(d, today)); err != nil {
			logger.Log.Warnf("Webhook push failed: %v", err)
		}
	}

	for _, rep := range reports {
		run.Record(rep)
		log := logger.Log.WithField("source", rep.Source).
			WithField("fetched", rep.Fetched).
			WithField("kept", rep.Kept)
		if rep.Err != nil {
			log.Warnf("Source failed: %v", rep.Err)
		} else {
			log.Info("Source ok")
		}
	}
	if cfg.PushgatewayURL != "" {
		if err := run.Push(cfg.PushgatewayURL); err != nil {
			logger.Log.Warnf("Metrics push failed: %v", err)
		}
	}

	fmt.Printf("[OK] Vygenerováno: %s, %s\n", mdPath, htmlPath)
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Fatalf("Config load error: %v", err)
		}
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	return cfg
}

// briefingPayload flattens the rendered sections into the webhook JSON.
func briefingPayload(d render.Digest, today time.Time) publish.Payload {
	sections := map[string]string{
		"domestic":      itemLines(d.Domestic),
		"international": itemLines(d.International),
		"social":        itemLines(d.Social),
		"curiosity":     itemLines(d.Curiosity),
		"events":        eventLines(d.Upcoming),
		"new_events":    eventLines(d.NewlyAnnounced),
	}
	refs := newRefCollector()
	for _, sel := range [][]models.Item{d.Domestic, d.International, d.Social, d.Curiosity} {
		for _, it := range sel {
			refs.add(it.Link)
		}
	}
	for _, sel := range [][]models.Event{d.Upcoming, d.NewlyAnnounced} {
		for _, ev := range sel {
			refs.add(ev.URL)
		}
	}
	return publish.Payload{
		Date:       today.Format("2006-01-02"),
		Week:       d.WeekLabel,
		Sections:   sections,
		References: refs.order,
	}
}

type refCollector struct {
	order []string
	seen  map[string]bool
}

func newRefCollector() *refCollector {
	return &refCollector{seen: make(map[string]bool)}
}

func (r *refCollector) add(link string) {
	if link == "" || r.seen[link] {
		return
	}
	r.seen[link] = true
	r.order = append(r.order, link)
}

func itemLines(items []models.Item) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, "• "+it.Title+" — "+it.Summary)
	}
	return joinLines(lines)
}

func eventLines(evs []models.Event) string {
	var lines []string
	for _, ev := range evs {
		line := fmt.Sprintf("• %d. %d. %s", ev.Start.Day(), int(ev.Start.Month()), ev.Title)
		if ev.Location != "" {
			line += " (" + ev.Location + ")"
		}
		lines = append(lines, line)
	}
	return joinLines(lines)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return "bez položek"
	}
	return strings.Join(lines, "\n")
}
