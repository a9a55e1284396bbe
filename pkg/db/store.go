package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/yumyai/orthoxml/pkg/stats"

	_ "modernc.org/sqlite"
)

// Defining possible error
var ErrBadRow = errors.New("row does not match table columns")

// Store is an SQLite file that accumulates export results. Every export
// is tagged with the run that produced it.
type Store struct {
	db *sql.DB
}

// Run is one recorded CLI invocation.
type Run struct {
	ID        string
	Command   string
	Source    string
	CreatedAt string
}

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		command    TEXT NOT NULL,
		source     TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS ortholog_pairs (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		gene1  TEXT NOT NULL,
		gene2  TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS roothog_groups (
		run_id   TEXT NOT NULL REFERENCES runs(run_id),
		group_id TEXT NOT NULL,
		size     INTEGER NOT NULL,
		genes    TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS taxon_gene_counts (
		run_id   TEXT NOT NULL REFERENCES runs(run_id),
		taxon    TEXT NOT NULL,
		taxon_id TEXT NOT NULL,
		depth    INTEGER NOT NULL,
		direct   INTEGER NOT NULL,
		total    INTEGER NOT NULL
	);
`

// Open creates the file and its tables when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewRun records a run. An empty id gets a fresh UUID.
func (s *Store) NewRun(ctx context.Context, id, command, source string) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, command, source, created_at) VALUES (?, ?, ?, ?)`,
		id, command, source, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

// WritePairs stores gene1, gene2 rows.
func (s *Store) WritePairs(ctx context.Context, runID string, rows [][]string) error {
	return s.insert(ctx, `INSERT INTO ortholog_pairs (run_id, gene1, gene2) VALUES (?, ?, ?)`, len(rows),
		func(i int) ([]any, error) {
			r := rows[i]
			if len(r) != 2 {
				return nil, fmt.Errorf("%w: pair row %d has %d columns", ErrBadRow, i, len(r))
			}
			return []any{runID, r[0], r[1]}, nil
		})
}

// WriteGroups stores group, size, genes rows.
func (s *Store) WriteGroups(ctx context.Context, runID string, rows [][]string) error {
	return s.insert(ctx, `INSERT INTO roothog_groups (run_id, group_id, size, genes) VALUES (?, ?, ?, ?)`, len(rows),
		func(i int) ([]any, error) {
			r := rows[i]
			if len(r) != 3 {
				return nil, fmt.Errorf("%w: group row %d has %d columns", ErrBadRow, i, len(r))
			}
			size, err := strconv.Atoi(r[1])
			if err != nil {
				return nil, fmt.Errorf("%w: group row %d size %q", ErrBadRow, i, r[1])
			}
			return []any{runID, r[0], size, r[2]}, nil
		})
}

func (s *Store) WriteTaxonCounts(ctx context.Context, runID string, counts []stats.TaxonCount) error {
	return s.insert(ctx,
		`INSERT INTO taxon_gene_counts (run_id, taxon, taxon_id, depth, direct, total) VALUES (?, ?, ?, ?, ?, ?)`,
		len(counts), func(i int) ([]any, error) {
			c := counts[i]
			return []any{runID, c.Taxon, c.ID, c.Depth, c.Direct, c.Total}, nil
		})
}

// insert runs one prepared statement n times inside a transaction.
func (s *Store) insert(ctx context.Context, query string, n int, args func(i int) ([]any, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stm, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stm.Close()

	for i := 0; i < n; i++ {
		a, err := args(i)
		if err != nil {
			return err
		}
		if _, err := stm.ExecContext(ctx, a...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RunSummary is a recorded run with the number of rows it wrote per table.
type RunSummary struct {
	Run
	Pairs       int
	Groups      int
	TaxonCounts int
}

// Runs lists every run in the file, oldest first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.command, r.source, r.created_at,
			(SELECT COUNT(*) FROM ortholog_pairs p WHERE p.run_id = r.run_id),
			(SELECT COUNT(*) FROM roothog_groups g WHERE g.run_id = r.run_id),
			(SELECT COUNT(*) FROM taxon_gene_counts c WHERE c.run_id = r.run_id)
		FROM runs r ORDER BY r.created_at, r.run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Command, &r.Source, &r.CreatedAt, &r.Pairs, &r.Groups, &r.TaxonCounts); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
