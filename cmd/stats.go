package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yumyai/orthoxml/pkg/render"
	"github.com/yumyai/orthoxml/pkg/stats"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print basic counts of species, genes, groups and taxa",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&infile, "infile", "", "Path to the OrthoXML file")
	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(infile)
	if err != nil {
		return err
	}
	s := stats.Compute(doc)
	// the per-taxon table belongs to gene-stats
	s.TaxonGeneCounts = nil

	switch statsFormat {
	case "", "text":
		return render.StatsReport(cmd.OutOrStdout(), s)
	case string(render.JSON):
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "    ")
		return enc.Encode(s)
	case string(render.YAML):
		return yaml.NewEncoder(cmd.OutOrStdout()).Encode(s)
	}
	return fmt.Errorf("unsupported format %q, choices are: text, json, yaml", statsFormat)
}
