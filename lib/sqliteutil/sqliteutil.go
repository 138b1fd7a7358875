package sqliteutil

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenDB opens (creating if necessary) an sqlite database at path and
// applies the given schema. The schema is expected to be idempotent
// (CREATE TABLE IF NOT EXISTS ...).
func OpenDB(schema, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
