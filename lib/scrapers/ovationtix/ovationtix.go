// Package ovationtix scrapes theaters selling through OvationTix. The hosted
// calendar at web.ovationtix.com/trs/cal/{storeId} is rendered client-side,
// so this platform goes through headless chrome rather than a plain fetch.
package ovationtix

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stagewatch-backend/lib/browser"
	"stagewatch-backend/lib/dateutil"
	"stagewatch-backend/lib/htmlutil"
	"stagewatch-backend/lib/scrapers/extract"
	"stagewatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const Source = "ovationtix"

const host = "https://web.ovationtix.com"

var hostUrl, _ = url.Parse(host)

type renderer interface {
	RenderHTML(ctx context.Context, url, waitSelector string) (string, error)
}

type Config struct {
	StoreId string
	// Timeout bounds the full page render.
	Timeout time.Duration
}

type Scraper struct {
	calendarUrl string
	renderer    renderer
}

func New(cfg Config) (*Scraper, error) {
	if strings.TrimSpace(cfg.StoreId) == "" {
		return nil, fmt.Errorf("ovationtix scraper requires a store id")
	}
	return &Scraper{
		calendarUrl: fmt.Sprintf("%s/trs/cal/%s", host, cfg.StoreId),
		renderer:    browser.Renderer{Timeout: cfg.Timeout},
	}, nil
}

func (s *Scraper) Source() string { return Source }

func (s *Scraper) Strategies() []extract.Strategy {
	return []extract.Strategy{
		{Name: "browser:calendar", Run: s.calendarStrategy},
	}
}

func (s *Scraper) calendarStrategy(ctx context.Context) ([]extract.Record, error) {
	html, err := s.renderer.RenderHTML(ctx, s.calendarUrl, "table tbody tr")
	if err != nil {
		return nil, fmt.Errorf("render calendar: %w", err)
	}
	return recordsFromCalendar(html)
}

// recordsFromCalendar walks the rendered calendar table. Each event row has
// five cells: dates, supertitle, title, subtitle, venue.
func recordsFromCalendar(html string) ([]extract.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse calendar html: %w", err)
	}

	var records []extract.Record
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		if rec := parseEventRow(row); rec != nil {
			records = append(records, rec)
		}
	})
	return records, nil
}

func parseEventRow(row *goquery.Selection) extract.Record {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return nil
	}

	datesText := textutil.CleanText(cells.Eq(0).Text())
	supertitle := textutil.CleanText(cells.Eq(1).Text())
	title := textutil.CleanText(cells.Eq(2).Text())
	subtitle := textutil.CleanText(cells.Eq(3).Text())
	venue := textutil.CleanText(cells.Eq(4).Text())

	fullTitle := joinTitle(supertitle, title, subtitle)
	if fullTitle == "" {
		return nil
	}

	rec := extract.Record{"title": fullTitle}

	start, end := dateutil.ParseDateRange(datesText)
	if start != "" {
		rec["start"] = start
	}
	if end != "" {
		rec["end"] = end
	}
	if datesText != "" {
		rec["schedule"] = datesText
	}
	if venue != "" {
		rec["venue"] = venue
	}
	if href, ok := cells.Eq(2).Find("a").First().Attr("href"); ok {
		rec["link"] = htmlutil.AbsolveURL(hostUrl, href)
	}
	if strings.Contains(strings.ToLower(row.Text()), "canceled") {
		rec["status"] = "canceled"
	}
	return rec
}

// joinTitle combines supertitle, title and subtitle into the listed name.
// Surrounding parts are joined to the main title with " - "; a row whose
// main title cell is empty has nothing to anchor the name and stays empty.
func joinTitle(supertitle, title, subtitle string) string {
	var present []string
	for _, p := range []string{supertitle, title, subtitle} {
		if p != "" {
			present = append(present, p)
		}
	}
	if len(present) > 1 {
		return strings.Join(present, " - ")
	}
	return title
}
