// Package db persists scrape results. Shows are stored twice over: the full
// normalized document as JSON for round-tripping, plus a few denormalized
// columns for querying.
package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"stagewatch-backend/lib/shows"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// SaveResult writes one scrape result and its shows atomically.
func (s Store) SaveResult(ctx context.Context, result shows.ScraperResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	warnings, err := json.Marshal(result.Warnings)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO scrape_results (theater_name, success, error, warnings, show_count, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.TheaterName, result.Success, result.Error,
		string(warnings), len(result.Shows), result.ScrapedAt)
	if err != nil {
		return err
	}
	resultId, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, show := range result.Shows {
		data, err := json.Marshal(show)
		if err != nil {
			return err
		}

		var start, end string
		if show.Dates != nil {
			start = show.Dates.Start
			end = show.Dates.End
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO shows (result_id, theater_name, title, start_date, end_date, status, data)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			resultId, show.TheaterName, show.Title, start, end, show.Status, string(data))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LatestShows returns the shows from the most recent successful scrape of a
// theater, or nil when it has never been scraped successfully.
func (s Store) LatestShows(ctx context.Context, theaterName string) ([]shows.Show, error) {
	var resultId int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM scrape_results
		 WHERE theater_name = ? AND success = 1
		 ORDER BY id DESC LIMIT 1`,
		theaterName).Scan(&resultId)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM shows WHERE result_id = ? ORDER BY id`, resultId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []shows.Show
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var show shows.Show
		if err := json.Unmarshal([]byte(data), &show); err != nil {
			return nil, err
		}
		out = append(out, show)
	}
	return out, rows.Err()
}
