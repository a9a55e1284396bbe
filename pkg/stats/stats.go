// Read-only counts over a parsed document.

package stats

import (
	"github.com/yumyai/orthoxml/pkg/model"
)

type Summary struct {
	Genes           int          `json:"genes" yaml:"genes"`
	GenesInGroups   int          `json:"genes_in_groups" yaml:"genes_in_groups"`
	Species         int          `json:"species" yaml:"species"`
	RootHOGs        int          `json:"roothogs" yaml:"roothogs"`
	OrthologGroups  int          `json:"ortholog_groups" yaml:"ortholog_groups"`
	ParalogGroups   int          `json:"paralog_groups" yaml:"paralog_groups"`
	LeafTaxa        int          `json:"leaf_taxa" yaml:"leaf_taxa"`
	Taxa            int          `json:"taxa" yaml:"taxa"`
	TaxonGeneCounts []TaxonCount `json:"taxon_gene_counts" yaml:"taxon_gene_counts"`
}

// TaxonCount holds the genes whose species is this taxon (Direct) and the
// rolled-up count over the taxon's whole subtree (Total).
type TaxonCount struct {
	Taxon  string `json:"taxon" yaml:"taxon"`
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Depth  int    `json:"depth" yaml:"depth"`
	Direct int    `json:"direct" yaml:"direct"`
	Total  int    `json:"total" yaml:"total"`
}

func Compute(doc *model.Document) Summary {
	s := Summary{
		Genes:    len(doc.Genes),
		RootHOGs: len(doc.RootHOGs),
	}

	withGenes := make(map[int]bool)
	for i := range doc.Genes {
		withGenes[doc.Genes[i].Species] = true
	}
	s.Species = len(withGenes)

	referenced := doc.ReferencedGenes(doc.RootHOGs)
	for _, r := range referenced {
		if r {
			s.GenesInGroups++
		}
	}

	for _, root := range doc.RootHOGs {
		model.Walk(root, func(n model.Node) bool {
			if g, ok := n.(*model.Group); ok {
				if g.Kind == model.Paralog {
					s.ParalogGroups++
				} else {
					s.OrthologGroups++
				}
			}
			return true
		})
	}

	if doc.Taxonomy != nil {
		s.Taxa = doc.Taxonomy.Len()
		s.LeafTaxa = len(doc.Taxonomy.Leaves())
		s.TaxonGeneCounts = TaxonCounts(doc)
	}
	return s
}

// TaxonCounts attributes each gene once to its species taxon and rolls the
// counts up the taxonomy. Result is in taxonomy preorder.
func TaxonCounts(doc *model.Document) []TaxonCount {
	tax := doc.Taxonomy
	direct := make([]int, tax.Len())
	for i := range doc.Genes {
		if ti := doc.TaxonOf(i); ti >= 0 {
			direct[ti]++
		}
	}

	total := make([]int, tax.Len())
	var rollup func(i int) int
	rollup = func(i int) int {
		sum := direct[i]
		for _, c := range tax.Get(i).Children {
			sum += rollup(c)
		}
		total[i] = sum
		return sum
	}

	depth := make([]int, tax.Len())
	order := tax.Preorder()
	if len(order) == 0 {
		return nil
	}
	rollup(tax.Root)

	out := make([]TaxonCount, 0, len(order))
	for _, i := range order {
		tx := tax.Get(i)
		if tx.Parent >= 0 {
			depth[i] = depth[tx.Parent] + 1
		}
		out = append(out, TaxonCount{
			Taxon:  tx.Name,
			ID:     tx.ID,
			Depth:  depth[i],
			Direct: direct[i],
			Total:  total[i],
		})
	}
	return out
}
