// Package shows holds the canonical, vendor-independent representation of a
// theater listing. Every platform scraper normalizes into these types; no
// vendor field name or format survives past this boundary.
package shows

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// stubbed in tests
var timeNow = time.Now

// Status describes where a show is in its run. The zero value is treated as
// StatusUpcoming.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusRunning   Status = "running"
	StatusClosed    Status = "closed"
	StatusCanceled  Status = "canceled"
	StatusPostponed Status = "postponed"
)

var ErrValidation = fmt.Errorf("show validation failed")

// ShowDates carries what is known about a run's calendar. Any combination of
// fields may be absent: schedule-only listings and open-ended runs (start
// with no end) are both legal, and start <= end is deliberately not enforced.
type ShowDates struct {
	// ISO calendar dates, YYYY-MM-DD
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	// human-readable schedule, e.g. "Tues-Sat 7pm"
	Schedule string `json:"schedule,omitempty"`
}

func (d ShowDates) Empty() bool {
	return d.Start == "" && d.End == "" && d.Schedule == ""
}

// Show is one production's normalized listing. Construct through NewShow so
// the non-empty title/theater invariant holds everywhere downstream.
type Show struct {
	TheaterName string `json:"theater_name"`
	TheaterUrl  string `json:"theater_url,omitempty"`
	Title       string `json:"show_title"`

	Playwright  string     `json:"playwright,omitempty"`
	Director    string     `json:"director,omitempty"`
	Dates       *ShowDates `json:"dates,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	Description string     `json:"description,omitempty"`
	TicketUrl   string     `json:"ticket_url,omitempty"`

	PriceRange string   `json:"price_range,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Cast       []string `json:"cast,omitempty"`
	Runtime    string   `json:"runtime,omitempty"`
	ImageUrl   string   `json:"image_url,omitempty"`
	Status     Status   `json:"status"`

	ScrapedAt string `json:"scraped_at"`
	// originating platform tag, e.g. "wordpress_spektrix"
	Source string `json:"scraper_type,omitempty"`
}

// NewShow fills defaults and enforces the construction invariant: a Show
// with a blank title or blank theater name is a contract violation, reported
// as an error wrapping ErrValidation rather than silently dropped.
func NewShow(s Show) (Show, error) {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return Show{}, fmt.Errorf("%w: show title cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(s.TheaterName) == "" {
		return Show{}, fmt.Errorf("%w: theater name cannot be empty", ErrValidation)
	}

	if s.Status == "" {
		s.Status = StatusUpcoming
	}
	if s.Dates != nil && s.Dates.Empty() {
		s.Dates = nil
	}
	if s.ScrapedAt == "" {
		s.ScrapedAt = timeNow().UTC().Format(time.RFC3339)
	}
	return s, nil
}

// ScraperResult is the always-produced outcome of one theater's scrape
// session. "no data" and "crashed" are distinguished by Error and Warnings,
// never by the absence of a result.
type ScraperResult struct {
	TheaterName string   `json:"theater_name"`
	Success     bool     `json:"success"`
	Shows       []Show   `json:"shows"`
	Error       string   `json:"error,omitempty"`
	Warnings    []string `json:"warnings"`
	ScrapedAt   string   `json:"scraped_at"`
}

func (r ScraperResult) MarshalJSON() ([]byte, error) {
	// shows and warnings serialize as arrays, never null
	if r.Shows == nil {
		r.Shows = []Show{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	type alias ScraperResult
	return json.Marshal(struct {
		alias
		ShowCount int `json:"show_count"`
	}{alias(r), len(r.Shows)})
}
