// Package samplestore persists downloaded sample sets in sqlite so
// tooling can reuse them without refetching. The resolution/extraction
// core never touches it.
package samplestore

import (
	"context"
	"database/sql"
	"time"

	"ojtools/lib/judge"

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

// Open opens (or creates) a sqlite-backed store at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (Store, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	_, err = database.Exec(Schema)
	if err != nil {
		database.Close()
		return Store{}, err
	}
	return NewStore(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Put replaces the stored sample set for a problem. The whole set is
// written in one transaction; a failed write leaves the previous set
// intact.
func (s Store) Put(ctx context.Context, problemUrl string, cases []judge.TestCase) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM sample_cases WHERE problem_url = ?`, problemUrl)
	if err != nil {
		return err
	}

	fetchedAt := time.Now().Unix()
	for i, c := range cases {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sample_cases
				(problem_url, idx, name, input_name, input, output_name, output, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			problemUrl, i, c.Name, c.InputName, c.Input, c.OutputName, c.Output, fetchedAt,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns the stored sample set for a problem in document order,
// or nil when none is stored.
func (s Store) Get(ctx context.Context, problemUrl string) ([]judge.TestCase, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, input_name, input, output_name, output
		FROM sample_cases
		WHERE problem_url = ?
		ORDER BY idx`,
		problemUrl,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []judge.TestCase
	for rows.Next() {
		var c judge.TestCase
		err = rows.Scan(&c.Name, &c.InputName, &c.Input, &c.OutputName, &c.Output)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}
