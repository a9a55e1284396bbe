package cmd

import (
	"bytes"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/db"
	"github.com/yumyai/orthoxml/pkg/export"
	"github.com/yumyai/orthoxml/pkg/render"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:       "export {pairs|groups}",
	Short:     "Export ortholog pairs or rootHOG member lists",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"pairs", "groups"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	exportCmd.Flags().StringVar(&outfile, "outfile", "", "Write to this file instead of stdout")
	exportCmd.Flags().StringVar(&xrefTag, "xref-tag", "", "Gene attribute used as label (default from ORTHOXML_XREF_TAG)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "tsv", "Output format: tsv, csv or sqlite")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := render.ParseFormat(exportFormat, render.TSV, render.CSV, render.SQLite)
	if err != nil {
		return err
	}
	doc, err := loadDocument(infile)
	if err != nil {
		return err
	}

	kind := args[0]
	var header []string
	var rows [][]string
	switch kind {
	case "pairs":
		header, rows = export.PairHeader, export.PairRows(doc, labelAttr())
	case "groups":
		header, rows = export.GroupHeader, export.GroupRows(doc, labelAttr())
	default:
		return errors.New("export type must be pairs or groups")
	}
	logger.Info("Exporting", zap.String("type", kind), zap.Int("rows", len(rows)))

	if f == render.SQLite {
		if outfile == "" {
			return errors.New("--format sqlite needs --outfile")
		}
		ctx := contextOf(cmd)
		store, err := db.Open(ctx, outfile)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err := store.NewRun(ctx, runID, "export "+kind, infile)
		if err != nil {
			return err
		}
		if kind == "pairs" {
			return store.WritePairs(ctx, run, rows)
		}
		return store.WriteGroups(ctx, run, rows)
	}

	var buf bytes.Buffer
	if err := render.Table(&buf, f, header, rows); err != nil {
		return err
	}
	return emit(cmd, buf.Bytes())
}
