package cmd

import (
	"bytes"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/db"
	"github.com/yumyai/orthoxml/pkg/render"
	"github.com/yumyai/orthoxml/pkg/stats"
)

var geneStatsFormat string

var geneStatsCmd = &cobra.Command{
	Use:   "gene-stats",
	Short: "Count genes per taxon, rolled up the taxonomy",
	RunE:  runGeneStats,
}

func init() {
	geneStatsCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	geneStatsCmd.Flags().StringVar(&outfile, "outfile", "", "Write to this file instead of stdout")
	geneStatsCmd.Flags().StringVar(&geneStatsFormat, "format", "json", "Output format: json, yaml, tsv, csv, text or sqlite")
	rootCmd.AddCommand(geneStatsCmd)
}

func runGeneStats(cmd *cobra.Command, args []string) error {
	f := geneStatsFormat
	if f != "text" {
		parsed, err := render.ParseFormat(f, render.JSON, render.YAML, render.TSV, render.CSV, render.SQLite)
		if err != nil {
			return err
		}
		f = string(parsed)
	}

	doc, err := loadDocument(infile)
	if err != nil {
		return err
	}
	counts := stats.TaxonCounts(doc)

	switch render.Format(f) {
	case "text":
		var buf bytes.Buffer
		if err := render.TaxonCountReport(&buf, counts); err != nil {
			return err
		}
		return emit(cmd, buf.Bytes())
	case render.SQLite:
		if outfile == "" {
			return errors.New("--format sqlite needs --outfile")
		}
		ctx := contextOf(cmd)
		store, err := db.Open(ctx, outfile)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err := store.NewRun(ctx, runID, "gene-stats", infile)
		if err != nil {
			return err
		}
		if err := store.WriteTaxonCounts(ctx, run, counts); err != nil {
			return err
		}
		logger.Info("Gene count per taxon stored", zap.String("file", outfile), zap.String("run", run))
		return nil
	}

	var buf bytes.Buffer
	if err := render.TaxonCounts(&buf, render.Format(f), counts); err != nil {
		return err
	}
	return emit(cmd, buf.Bytes())
}
