package cmd

import (
	"bytes"
	"errors"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yumyai/orthoxml/pkg/db"
	"github.com/yumyai/orthoxml/pkg/oxerr"
	"github.com/yumyai/orthoxml/pkg/render"
)

var (
	runsDB     string
	runsFormat string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the runs recorded in an SQLite export file",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsDB, "db", "", "SQLite file written with --format sqlite (required)")
	runsCmd.Flags().StringVar(&runsFormat, "format", "tsv", "Output format: tsv or csv")
	_ = runsCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(runsCmd)
}

var runsHeader = []string{"run_id", "command", "source", "created_at", "pairs", "groups", "taxon_counts"}

func runRuns(cmd *cobra.Command, args []string) error {
	if runsDB == "" {
		return errors.New("--db is required")
	}
	f, err := render.ParseFormat(runsFormat, render.TSV, render.CSV)
	if err != nil {
		return err
	}
	// Open would create a missing file
	if _, err := os.Stat(runsDB); err != nil {
		return oxerr.New(oxerr.ErrIO, "open %s: %v", runsDB, err)
	}

	ctx := contextOf(cmd)
	store, err := db.Open(ctx, runsDB)
	if err != nil {
		return err
	}
	defer store.Close()
	runs, err := store.Runs(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{r.ID, r.Command, r.Source, r.CreatedAt,
			strconv.Itoa(r.Pairs), strconv.Itoa(r.Groups), strconv.Itoa(r.TaxonCounts)})
	}
	var buf bytes.Buffer
	if err := render.Table(&buf, f, runsHeader, rows); err != nil {
		return err
	}
	return emit(cmd, buf.Bytes())
}
