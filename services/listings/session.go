// Package listings orchestrates show scraping across theaters: it builds the
// right platform scraper for each configured theater, runs the extraction
// chain, normalizes and validates, and always produces a ScraperResult. A
// failing theater never takes down the run.
package listings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"stagewatch-backend/lib/fetch"
	"stagewatch-backend/lib/scrapers/extract"
	"stagewatch-backend/lib/scrapers/normalize"
	"stagewatch-backend/lib/scrapers/ovationtix"
	"stagewatch-backend/lib/scrapers/spektrix"
	"stagewatch-backend/lib/scrapers/squarespace"
	"stagewatch-backend/lib/shows"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/listings")

// stubbed in tests
var timeNow = time.Now

// Scraper is the contract every platform package satisfies: a source tag and
// an ordered fallback chain of extraction strategies.
type Scraper interface {
	Source() string
	Strategies() []extract.Strategy
}

type TheaterConfig struct {
	Name     string `json:"name"`
	BaseUrl  string `json:"base_url"`
	Platform string `json:"platform"`
	// ApiEndpoint overrides spektrix API autodetection.
	ApiEndpoint string `json:"api_endpoint,omitempty"`
	// CalendarPath overrides the squarespace default of /calendar.
	CalendarPath string `json:"calendar_path,omitempty"`
	// StoreId is required for ovationtix theaters.
	StoreId string `json:"store_id,omitempty"`
	Timeout time.Duration
}

// NewScraper constructs the platform scraper a theater's config calls for.
func NewScraper(cfg TheaterConfig) (Scraper, error) {
	switch cfg.Platform {
	case spektrix.Source:
		return spektrix.New(spektrix.Config{
			BaseUrl:     cfg.BaseUrl,
			ApiEndpoint: cfg.ApiEndpoint,
			Fetch:       fetch.Options{Timeout: cfg.Timeout},
		})
	case squarespace.Source:
		return squarespace.New(squarespace.Config{
			BaseUrl:      cfg.BaseUrl,
			CalendarPath: cfg.CalendarPath,
			Fetch:        fetch.Options{Timeout: cfg.Timeout},
		})
	case ovationtix.Source:
		return ovationtix.New(ovationtix.Config{
			StoreId: cfg.StoreId,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown platform: %q", cfg.Platform)
	}
}

// Session is one theater's scrape run.
type Session struct {
	Theater TheaterConfig
	Scraper Scraper
}

func NewSession(cfg TheaterConfig) (Session, error) {
	scraper, err := NewScraper(cfg)
	if err != nil {
		return Session{}, err
	}
	return Session{Theater: cfg, Scraper: scraper}, nil
}

// Run executes the scrape and always returns a ScraperResult: strategy
// failures become warnings, an empty outcome becomes success=false with an
// explanatory error, and a panic anywhere inside is converted into a failed
// result rather than escaping to the caller.
func (s Session) Run(ctx context.Context) (result shows.ScraperResult) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("theater", s.Theater.Name),
		attribute.String("platform", s.Theater.Platform),
	)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("scraper panicked: %v", r)
			slog.ErrorContext(ctx, "scrape session panicked",
				"theater", s.Theater.Name, "panic", r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			result = s.failure(err.Error(), nil)
		}
	}()

	slog.InfoContext(ctx, "starting scrape", "theater", s.Theater.Name, "platform", s.Theater.Platform)

	records, attempts := extract.RunChain(ctx, s.Scraper.Strategies())

	warnings := []string{}
	for _, err := range extract.Errs(attempts) {
		warnings = append(warnings, err.Error())
	}

	normalized, err := normalize.All(records, normalize.Options{
		TheaterName: s.Theater.Name,
		TheaterUrl:  s.Theater.BaseUrl,
		Source:      s.Scraper.Source(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return s.failure(err.Error(), warnings)
	}

	for _, show := range normalized {
		warnings = append(warnings, shows.Validate(show)...)
	}

	if len(normalized) == 0 {
		warnings = append(warnings, "could not find any event data")
		return s.failure("no shows found by any extraction strategy", warnings)
	}

	span.SetAttributes(attribute.Int("shows", len(normalized)))
	slog.InfoContext(ctx, "scrape complete",
		"theater", s.Theater.Name, "shows", len(normalized), "warnings", len(warnings))

	return shows.ScraperResult{
		TheaterName: s.Theater.Name,
		Success:     true,
		Shows:       normalized,
		Warnings:    warnings,
		ScrapedAt:   timeNow().UTC().Format(time.RFC3339),
	}
}

func (s Session) failure(message string, warnings []string) shows.ScraperResult {
	if warnings == nil {
		warnings = []string{}
	}
	return shows.ScraperResult{
		TheaterName: s.Theater.Name,
		Success:     false,
		Error:       message,
		Warnings:    warnings,
		ScrapedAt:   timeNow().UTC().Format(time.RFC3339),
	}
}

// RunAll scrapes every configured theater with at most concurrency sessions
// in flight. Results come back in config order; a theater whose scraper
// cannot even be constructed still yields a failed result in its slot.
func RunAll(ctx context.Context, theaters []TheaterConfig, concurrency int) []shows.ScraperResult {
	if concurrency <= 0 {
		concurrency = 3
	}

	ctx, span := tracer.Start(ctx, "RunAll")
	defer span.End()
	span.SetAttributes(attribute.Int("theaters", len(theaters)))

	results := make([]shows.ScraperResult, len(theaters))
	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, theater := range theaters {
		wg.Add(1)
		go func(i int, theater TheaterConfig) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			session, err := NewSession(theater)
			if err != nil {
				results[i] = shows.ScraperResult{
					TheaterName: theater.Name,
					Success:     false,
					Error:       err.Error(),
					Warnings:    []string{},
					ScrapedAt:   timeNow().UTC().Format(time.RFC3339),
				}
				return
			}
			results[i] = session.Run(ctx)
		}(i, theater)
	}
	wg.Wait()

	return results
}
