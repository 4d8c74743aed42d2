package main

import (
	"context"
	"database/sql"

	"github.com/mailru/easyjson"
	_ "modernc.org/sqlite"

	"github.com/suremarc/go-almanac/packages/remap/report"
)

type SQLStore struct {
	db *sql.DB
}

var createTableStmts = []string{`
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	digest     TEXT NOT NULL,
	report     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS runs_digest ON runs (digest)`,
}

func NewSQLStore(address string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", address)
	if err != nil {
		return nil, err
	}

	for _, stmt := range createTableStmts {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &SQLStore{
		db: db,
	}, nil
}

// Query returns the latest report stored for digest, or sql.ErrNoRows.
func (s *SQLStore) Query(ctx context.Context, digest string) (report.Report, error) {
	var buf string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE digest = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		digest,
	).Scan(&buf)
	if err != nil {
		return report.Report{}, err
	}

	var r report.Report
	if err := easyjson.Unmarshal([]byte(buf), &r); err != nil {
		return report.Report{}, err
	}

	return r, nil
}

func (s *SQLStore) Log(ctx context.Context, r report.Report) error {
	buf, err := easyjson.Marshal(r)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, digest, report) VALUES (?, ?, ?)`,
		r.RunID, r.Digest, string(buf),
	)
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
