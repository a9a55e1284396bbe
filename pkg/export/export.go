// Package export flattens the group hierarchy into ortholog pairs and
// per-rootHOG member lists.
package export

import (
	"strconv"
	"strings"

	"github.com/yumyai/orthoxml/pkg/model"
)

var (
	PairHeader  = []string{"gene1", "gene2"}
	GroupHeader = []string{"group", "size", "genes"}
)

// Pair holds two gene indices that are orthologous.
type Pair struct {
	A, B int
}

// OrthologPairs emits every pair once, at the ortholog group where the two
// genes descend from different children. Pairs split only by paralog
// groups are paralogs and are skipped.
func OrthologPairs(doc *model.Document) []Pair {
	var out []Pair
	for _, r := range doc.RootHOGs {
		model.Walk(r, func(n model.Node) bool {
			g, ok := n.(*model.Group)
			if !ok || g.Kind != model.Ortholog {
				return true
			}
			sets := make([][]int, 0, len(g.Nodes))
			for _, c := range g.Nodes {
				switch c := c.(type) {
				case *model.Group:
					sets = append(sets, c.GeneRefs())
				case model.GeneRef:
					sets = append(sets, []int{c.Gene})
				}
			}
			for i := range sets {
				for j := i + 1; j < len(sets); j++ {
					for _, a := range sets[i] {
						for _, b := range sets[j] {
							out = append(out, Pair{A: a, B: b})
						}
					}
				}
			}
			return true
		})
	}
	return out
}

// Group is one rootHOG with its member genes in document order.
type Group struct {
	ID    string
	Genes []int
}

func Groups(doc *model.Document) []Group {
	out := make([]Group, 0, len(doc.RootHOGs))
	for _, r := range doc.RootHOGs {
		out = append(out, Group{ID: r.ID, Genes: r.GeneRefs()})
	}
	return out
}

// PairRows labels pairs with the attr cross-reference of each gene.
func PairRows(doc *model.Document, attr string) [][]string {
	pairs := OrthologPairs(doc)
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{doc.Genes[p.A].Label(attr), doc.Genes[p.B].Label(attr)})
	}
	return rows
}

func GroupRows(doc *model.Document, attr string) [][]string {
	groups := Groups(doc)
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		labels := make([]string, len(g.Genes))
		for i, gi := range g.Genes {
			labels[i] = doc.Genes[gi].Label(attr)
		}
		rows = append(rows, []string{g.ID, strconv.Itoa(len(labels)), strings.Join(labels, " ")})
	}
	return rows
}
