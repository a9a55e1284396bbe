// Package convert maps documents to Newick/NHX trees and back.
package convert

import (
	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/newick"
)

const DefaultLabelAttr = "protId"

type ToOptions struct {
	// LabelAttr names the gene attribute used as leaf label.
	LabelAttr string
}

// Tree is the Newick text of one rootHOG.
type Tree struct {
	RootID string
	Text   string
}

// ToNewick renders every rootHOG as its own tree. Internal nodes carry the
// LCA taxon of their genes (T) and the event (D=Y paralog, D=N ortholog);
// leaves carry their species (S).
func ToNewick(doc *model.Document, opts ToOptions) ([]Tree, error) {
	if opts.LabelAttr == "" {
		opts.LabelAttr = DefaultLabelAttr
	}
	out := make([]Tree, 0, len(doc.RootHOGs))
	for _, r := range doc.RootHOGs {
		n, _, err := toNode(doc, r, opts.LabelAttr)
		if err != nil {
			return nil, err
		}
		out = append(out, Tree{RootID: r.ID, Text: n.String()})
	}
	return out, nil
}

// toNode returns the tree for g and the LCA taxon of its genes.
func toNode(doc *model.Document, g *model.Group, attr string) (*newick.Node, int, error) {
	n := &newick.Node{}
	taxa := make([]int, 0, len(g.Nodes))
	for _, c := range g.Nodes {
		switch c := c.(type) {
		case *model.Group:
			sub, lca, err := toNode(doc, c, attr)
			if err != nil {
				return nil, -1, err
			}
			n.Children = append(n.Children, sub)
			taxa = append(taxa, lca)
		case model.GeneRef:
			sp, err := doc.SpeciesOf(c.Gene)
			if err != nil {
				return nil, -1, err
			}
			gene := &doc.Genes[c.Gene]
			leaf := &newick.Node{Name: gene.Label(attr)}
			leaf.Set("S", sp.Name)
			n.Children = append(n.Children, leaf)
			taxa = append(taxa, doc.TaxonOf(c.Gene))
		}
	}

	lca := doc.Taxonomy.LCA(taxa...)
	if lca >= 0 {
		n.Name = doc.Taxonomy.Get(lca).Name
		n.Set("T", n.Name)
	}
	if g.Kind == model.Paralog {
		n.Set("D", "Y")
	} else {
		n.Set("D", "N")
	}
	return n, lca, nil
}
