// Package squarespace scrapes theaters built on Squarespace, whose events
// live in the server-rendered markup of a calendar page. Squarespace themes
// vary, so container and field lookups each probe a few known patterns.
package squarespace

import (
	"context"
	"fmt"
	"strings"

	"stagewatch-backend/lib/dateutil"
	"stagewatch-backend/lib/fetch"
	"stagewatch-backend/lib/scrapers/extract"
	"stagewatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const Source = "squarespace"

// container selectors in probe order, most common theme first. the first
// selector with any matches wins; they are not unioned.
var containerSelectors = []string{
	"div.eventlist-column-info",
	`article[class*="event-item"]`,
	`div[class*="calendar-event"]`,
}

type Config struct {
	BaseUrl string
	// CalendarPath defaults to /calendar.
	CalendarPath string
	Fetch        fetch.Options
}

type Scraper struct {
	client       *fetch.Client
	calendarPath string
}

func New(cfg Config) (*Scraper, error) {
	cfg.Fetch.BaseUrl = strings.TrimSuffix(cfg.BaseUrl, "/")
	client, err := fetch.New(cfg.Fetch)
	if err != nil {
		return nil, err
	}

	calendarPath := cfg.CalendarPath
	if calendarPath == "" {
		calendarPath = "/calendar"
	}

	return &Scraper{client: client, calendarPath: calendarPath}, nil
}

func (s *Scraper) Source() string { return Source }

func (s *Scraper) Strategies() []extract.Strategy {
	return []extract.Strategy{
		{Name: "page:event-list", Run: s.calendarStrategy},
	}
}

func (s *Scraper) calendarStrategy(ctx context.Context) ([]extract.Record, error) {
	body := s.client.Get(ctx, s.calendarPath)
	if body == nil {
		return nil, fmt.Errorf("calendar page unavailable: %s", s.calendarPath)
	}
	return recordsFromCalendar(string(body))
}

func recordsFromCalendar(html string) ([]extract.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse calendar html: %w", err)
	}

	var containers *goquery.Selection
	for _, selector := range containerSelectors {
		containers = doc.Find(selector)
		if containers.Length() > 0 {
			break
		}
	}

	var records []extract.Record
	containers.Each(func(_ int, event *goquery.Selection) {
		if rec := parseEventItem(event); rec != nil {
			records = append(records, rec)
		}
	})
	return records, nil
}

// parseEventItem reads one event container. An item without a linked title
// is theme chrome, not an event, and yields nil.
func parseEventItem(event *goquery.Selection) extract.Record {
	titleLink := event.Find(
		"h1.eventlist-title a.eventlist-title-link, h2.eventlist-title a.eventlist-title-link").First()
	title := textutil.CleanText(titleLink.Text())
	if title == "" {
		return nil
	}

	start := dateAttr(event, "time.event-date")
	end := dateAttr(event, "time.event-date-end")
	timeOfDay := textutil.CleanText(event.Find("time.event-time-12hr").First().Text())

	rec := extract.Record{"title": title}
	if href, ok := titleLink.Attr("href"); ok {
		rec["url"] = href
	}
	if start != "" {
		rec["start"] = start
	}
	if end != "" {
		rec["end"] = end
	}
	if schedule := buildSchedule(timeOfDay, start, end); schedule != "" {
		rec["schedule"] = schedule
	}
	if venue := textutil.CleanText(event.Find("li.eventlist-meta-address, div.event-location").First().Text()); venue != "" {
		rec["venue"] = venue
	}
	if excerpt := textutil.CleanText(event.Find("div.eventlist-excerpt, p.event-excerpt").First().Text()); excerpt != "" {
		rec["description"] = excerpt
	}
	return rec
}

func dateAttr(event *goquery.Selection, selector string) string {
	attr, ok := event.Find(selector).First().Attr("datetime")
	if !ok {
		return ""
	}
	date, _ := dateutil.ParseDate(attr)
	return date
}

// buildSchedule renders the human-readable schedule: the time of day, with
// the date span appended for multi-day runs.
func buildSchedule(timeOfDay, start, end string) string {
	if timeOfDay == "" {
		return ""
	}
	if end != "" && end != start {
		return fmt.Sprintf("%s (%s to %s)", timeOfDay, start, end)
	}
	return timeOfDay
}
