// Package normalize maps the generic records produced by platform scrapers
// into canonical Show entities. All vendor-specific field naming, status
// vocabulary and format slop is resolved here, declaratively, so no platform
// adapter grows its own per-field conditionals.
package normalize

import (
	"fmt"
	"log/slog"
	"net/url"

	"stagewatch-backend/lib/dateutil"
	"stagewatch-backend/lib/htmlutil"
	"stagewatch-backend/lib/priceutil"
	"stagewatch-backend/lib/scrapers/extract"
	"stagewatch-backend/lib/shows"
	"stagewatch-backend/lib/textutil"
)

// fieldKeys is the schema-mapping table: canonical field -> ordered list of
// accepted vendor key names. The first present, non-empty value wins.
var fieldKeys = map[string][]string{
	"title":       {"title", "name"},
	"start":       {"start", "start_date", "firstPerformance"},
	"end":         {"end", "end_date", "lastPerformance"},
	"schedule":    {"schedule", "dates_text"},
	"description": {"description", "synopsis", "excerpt"},
	"ticket_url":  {"url", "link", "ticket_url"},
	"instance_id": {"instance_id", "instanceId"},
	"venue":       {"venue", "location"},
	"image":       {"image", "imageUrl", "image_url"},
	"playwright":  {"playwright", "writer"},
	"director":    {"director"},
	"price":       {"price", "pricing"},
	"runtime":     {"runtime", "duration"},
	"status_text": {"status"},
	"class_name":  {"className", "class_name"},
}

func field(rec extract.Record, canonical string) string {
	return rec.String(fieldKeys[canonical]...)
}

// statusRules is the explicit status-resolution policy: every rule is
// evaluated in order and the LAST match wins. The cancellation rule sits at
// the end on purpose: a "main-stage"/"perfs" class tag marks a show as
// running, but it must never downgrade an explicit cancellation.
var statusRules = []struct {
	canonical string
	markers   []string
	status    shows.Status
}{
	{"class_name", []string{"main-stage", "perfs"}, shows.StatusRunning},
	{"status_text", []string{"closed", "past"}, shows.StatusClosed},
	{"status_text", []string{"postpon"}, shows.StatusPostponed},
	{"status_text", []string{"cancel"}, shows.StatusCanceled},
}

func resolveStatus(rec extract.Record) shows.Status {
	status := shows.StatusUpcoming
	for _, rule := range statusRules {
		text := field(rec, rule.canonical)
		if text == "" {
			continue
		}
		if textutil.MatchAny(text, rule.markers) {
			status = rule.status
		}
	}
	return status
}

type Options struct {
	TheaterName string
	TheaterUrl  string
	Source      string
}

const maxDescription = 500

// FromRecord maps one generic record into a canonical Show. A record with
// no usable title yields (nil, nil): that single record is dropped, never
// the batch. A non-nil error only occurs on a construction contract
// violation (blank theater name), which is a configuration bug rather than
// bad vendor data.
func FromRecord(rec extract.Record, opts Options) (*shows.Show, error) {
	title := textutil.CleanText(field(rec, "title"))
	if title == "" {
		return nil, nil
	}

	base, err := url.Parse(opts.TheaterUrl)
	if err != nil {
		slog.Warn("unparseable theater base url", "url", opts.TheaterUrl, "err", err)
		base = nil
	}

	dates := resolveDates(rec)

	description := textutil.CleanText(field(rec, "description"))
	if description != "" {
		description = textutil.Truncate(description, maxDescription)
	}

	ticketUrl := htmlutil.AbsolveURL(base, field(rec, "ticket_url"))
	if ticketUrl == "" {
		if instanceId := field(rec, "instance_id"); instanceId != "" {
			ticketUrl = fmt.Sprintf("%s/performances/?instanceId=%s", opts.TheaterUrl, instanceId)
		}
	}

	priceRange, _ := priceutil.ExtractRange(field(rec, "price"))

	show, err := shows.NewShow(shows.Show{
		TheaterName: opts.TheaterName,
		TheaterUrl:  opts.TheaterUrl,
		Title:       title,
		Playwright:  textutil.CleanText(field(rec, "playwright")),
		Director:    textutil.CleanText(field(rec, "director")),
		Dates:       dates,
		Venue:       textutil.CleanText(field(rec, "venue")),
		Description: description,
		TicketUrl:   ticketUrl,
		PriceRange:  priceRange,
		Genres:      rec.Strings("genres"),
		Cast:        rec.Strings("cast"),
		Runtime:     textutil.CleanText(field(rec, "runtime")),
		ImageUrl:    htmlutil.AbsolveURL(base, field(rec, "image")),
		Status:      resolveStatus(rec),
		Source:      opts.Source,
	})
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// resolveDates prefers explicit start/end fields; when only a free-text
// schedule is present it tries to read a date range out of that instead.
func resolveDates(rec extract.Record) *shows.ShowDates {
	start, _ := dateutil.ParseDate(field(rec, "start"))
	end, _ := dateutil.ParseDate(field(rec, "end"))
	schedule := textutil.CleanText(field(rec, "schedule"))

	if start == "" && end == "" && schedule != "" {
		start, end = dateutil.ParseDateRange(schedule)
	}

	if start == "" && end == "" && schedule == "" {
		return nil
	}
	return &shows.ShowDates{Start: start, End: end, Schedule: schedule}
}

// All maps a batch of records, dropping the unusable ones and keeping
// per-record failures local.
func All(records []extract.Record, opts Options) ([]shows.Show, error) {
	var out []shows.Show
	for _, rec := range records {
		show, err := FromRecord(rec, opts)
		if err != nil {
			return nil, err
		}
		if show == nil {
			slog.Debug("dropping record without usable title", "theater", opts.TheaterName)
			continue
		}
		out = append(out, *show)
	}
	return out, nil
}
