// Package spektrix scrapes WordPress sites with Spektrix ticketing
// integration. These sites usually expose a REST API under
// /wp-json/spektrix/v1; older builds instead inline the event data as a
// JavaScript array in the landing page.
package spektrix

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stagewatch-backend/lib/fetch"
	"stagewatch-backend/lib/jsliteral"
	"stagewatch-backend/lib/scrapers/extract"
)

const Source = "wordpress_spektrix"

// envelopeKeys are the object keys under which API responses have been seen
// to nest their event list, in probe order.
var envelopeKeys = []string{"events", "performances", "data"}

type Config struct {
	BaseUrl string
	// ApiEndpoint overrides the conventional /wp-json/spektrix/v1 prefix.
	ApiEndpoint string
	Fetch       fetch.Options
}

type Scraper struct {
	client      *fetch.Client
	baseUrl     string
	apiEndpoint string
}

func New(cfg Config) (*Scraper, error) {
	baseUrl := strings.TrimSuffix(cfg.BaseUrl, "/")
	apiEndpoint := cfg.ApiEndpoint
	if apiEndpoint == "" {
		apiEndpoint = baseUrl + "/wp-json/spektrix/v1"
	}

	cfg.Fetch.BaseUrl = baseUrl
	client, err := fetch.New(cfg.Fetch)
	if err != nil {
		return nil, err
	}

	return &Scraper{
		client:      client,
		baseUrl:     baseUrl,
		apiEndpoint: strings.TrimSuffix(apiEndpoint, "/"),
	}, nil
}

func (s *Scraper) Source() string { return Source }

// Strategies returns the fallback chain, most reliable source first: the
// three conventional API endpoints, then a scan of the landing page for an
// embedded events array.
func (s *Scraper) Strategies() []extract.Strategy {
	return []extract.Strategy{
		{Name: "api:events", Run: s.apiStrategy(s.apiEndpoint + "/events")},
		{Name: "api:performances", Run: s.apiStrategy(s.apiEndpoint + "/performances")},
		{Name: "api:calendar", Run: s.apiStrategy(s.apiEndpoint + "/calendar")},
		{Name: "page:embedded-array", Run: s.pageStrategy},
	}
}

func (s *Scraper) apiStrategy(endpoint string) func(ctx context.Context) ([]extract.Record, error) {
	return func(ctx context.Context) ([]extract.Record, error) {
		body := s.client.Get(ctx, endpoint)
		if body == nil {
			return nil, fmt.Errorf("endpoint unavailable: %s", endpoint)
		}
		return decodeEnvelope(body)
	}
}

// decodeEnvelope tolerates the two response shapes seen in the wild: a bare
// list of events, or an object nesting the list under one of a few keys. An
// object with none of the known keys is an empty result, not an error.
func decodeEnvelope(body []byte) ([]extract.Record, error) {
	var records []extract.Record
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("response is neither an event list nor an object: %w", err)
	}

	for _, key := range envelopeKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &records); err == nil && len(records) > 0 {
			return records, nil
		}
	}
	return nil, nil
}

func (s *Scraper) pageStrategy(ctx context.Context) ([]extract.Record, error) {
	body := s.client.Get(ctx, s.baseUrl)
	if body == nil {
		return nil, fmt.Errorf("page unavailable: %s", s.baseUrl)
	}
	return recordsFromPage(string(body))
}

// recordsFromPage scans page text for a declared `events` array and parses
// it. A page without the declaration is an empty result; a declaration that
// will not parse is an error worth surfacing.
func recordsFromPage(html string) ([]extract.Record, error) {
	literal := jsliteral.ExtractDeclaredArray(html, "events")
	if literal == "" {
		return nil, nil
	}

	parsed, err := jsliteral.ParseRecords(literal)
	if err != nil {
		return nil, err
	}

	records := make([]extract.Record, len(parsed))
	for i, rec := range parsed {
		records[i] = extract.Record(rec)
	}
	return records, nil
}
