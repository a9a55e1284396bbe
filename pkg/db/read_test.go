package db

import (
	"context"

	"github.com/yumyai/orthoxml/pkg/stats"
)

// Pairs reads back the pairs of one run in insertion order.
func (s *Store) Pairs(ctx context.Context, runID string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT gene1, gene2 FROM ortholog_pairs WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, err
		}
		out = append(out, []string{a, b})
	}
	return out, rows.Err()
}

func (s *Store) TaxonCounts(ctx context.Context, runID string) ([]stats.TaxonCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT taxon, taxon_id, depth, direct, total FROM taxon_gene_counts WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []stats.TaxonCount
	for rows.Next() {
		var c stats.TaxonCount
		if err := rows.Scan(&c.Taxon, &c.ID, &c.Depth, &c.Direct, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GroupSizes maps group id to member count for one run.
func (s *Store) GroupSizes(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT group_id, size FROM roothog_groups WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}
