package listings

import (
	"context"
	"database/sql"

	"stagewatch-backend/lib/shows"
	"stagewatch-backend/services/listings/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Service persists scrape outcomes and answers queries over them.
type Service struct {
	store db.Store
}

func NewService(database *sql.DB) Service {
	return Service{store: db.NewStore(database)}
}

// SaveResults stores every result of a run, failed ones included: a failure
// row is how "this theater is broken" stays visible between runs.
func (s Service) SaveResults(ctx context.Context, results []shows.ScraperResult) error {
	ctx, span := tracer.Start(ctx, "SaveResults")
	defer span.End()
	span.SetAttributes(attribute.Int("results", len(results)))

	for _, result := range results {
		err := s.store.SaveResult(ctx, result)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return nil
}

// LatestShows returns the shows from a theater's most recent successful
// scrape, or nil when there has not been one.
func (s Service) LatestShows(ctx context.Context, theaterName string) ([]shows.Show, error) {
	ctx, span := tracer.Start(ctx, "LatestShows")
	defer span.End()
	span.SetAttributes(attribute.String("theater", theaterName))

	out, err := s.store.LatestShows(ctx, theaterName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}
