// Plain-text reports for the terminal.

package render

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yumyai/orthoxml/logger"
	"github.com/yumyai/orthoxml/pkg/stats"
)

var (
	stats_template       *template.Template
	taxon_count_template *template.Template
)

// init initializes the templates used for the text reports.
func init() {
	statsTmpl := `Number of species: {{ .Species }}
Number of genes: {{ .Genes }}
Number of genes in groups: {{ .GenesInGroups }}
Number of rootHOGs: {{ .RootHOGs }}
Number of orthologGroups: {{ .OrthologGroups }}
Number of paralogGroups: {{ .ParalogGroups }}
Number of leave taxa: {{ .LeafTaxa }}
Total number of taxa: {{ .Taxa }}
`
	stats_template = template.Must(template.New("stats").Parse(statsTmpl))

	countTmpl := `{{ range . }}{{ indent .Depth }}{{ .Taxon }}: {{ .Total }}{{ if ne .Direct .Total }} ({{ .Direct }} direct){{ end }}
{{ end }}`
	taxon_count_template = template.Must(template.New("taxon_counts").Funcs(template.FuncMap{
		"indent": func(depth int) string { return strings.Repeat("  ", depth) },
	}).Parse(countTmpl))
}

func StatsReport(w io.Writer, s stats.Summary) error {
	logger.Debug("Rendering stats report", zap.Int("genes", s.Genes), zap.Int("roothogs", s.RootHOGs))
	return stats_template.Execute(w, s)
}

// TaxonCountReport prints the per-taxon gene counts indented by depth.
func TaxonCountReport(w io.Writer, counts []stats.TaxonCount) error {
	return taxon_count_template.Execute(w, counts)
}

// TaxonCounts writes the per-taxon counts as json, yaml, csv or tsv.
func TaxonCounts(w io.Writer, format Format, counts []stats.TaxonCount) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(counts)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(counts); err != nil {
			return err
		}
		return enc.Close()
	}
	return Table(w, format, TaxonCountHeader, TaxonCountRows(counts))
}

var TaxonCountHeader = []string{"taxon", "id", "depth", "direct", "total"}

func TaxonCountRows(counts []stats.TaxonCount) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Taxon, c.ID, strconv.Itoa(c.Depth), strconv.Itoa(c.Direct), strconv.Itoa(c.Total)})
	}
	return rows
}
