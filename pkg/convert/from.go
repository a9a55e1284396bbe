package convert

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/newick"
	"github.com/yumyai/orthoxml/pkg/oxerr"
)

type FromOptions struct {
	// LabelAttr is the gene attribute that stores the leaf label.
	LabelAttr string
	Origin    string
}

// FromNewick builds one document from every tree found in texts. Each tree
// becomes a rootHOG; all trees share one taxonomy unioned by label.
func FromNewick(texts []string, opts FromOptions) (*model.Document, error) {
	if opts.LabelAttr == "" {
		opts.LabelAttr = DefaultLabelAttr
	}
	if opts.Origin == "" {
		opts.Origin = "newick"
	}

	b := &builder{
		attr:      opts.LabelAttr,
		taxa:      newTaxonUnion(),
		geneIndex: make(map[string]int),
		spIndex:   make(map[int]int),
	}
	var roots []*model.Group
	for _, text := range texts {
		trees, err := newick.Parse(text)
		if err != nil {
			return nil, err
		}
		for _, t := range trees {
			if t.IsLeaf() {
				return nil, oxerr.New(oxerr.ErrMalformedDocument, "tree %q has no internal node", t.Name)
			}
			g, err := b.group(t, nil)
			if err != nil {
				return nil, err
			}
			roots = append(roots, g)
		}
	}
	if len(roots) == 0 {
		return nil, oxerr.New(oxerr.ErrMalformedDocument, "no tree found")
	}

	tax, pos, err := b.taxa.build()
	if err != nil {
		return nil, err
	}
	for i := range b.species {
		b.species[i].Taxon = pos[b.spTaxon[i]]
	}
	model.AssignLOFTIDs(roots)

	doc := model.NewDocument(tax, b.species, b.genes, roots)
	doc.Origin = opts.Origin
	return doc, nil
}

type builder struct {
	attr string
	taxa *taxonUnion

	genes     []model.Gene
	geneIndex map[string]int

	species []model.Species
	spTaxon []int
	spIndex map[int]int
}

// group converts an internal node. ancestors holds the union indices of
// the labelled internal nodes above n, outermost first.
func (b *builder) group(n *newick.Node, ancestors []int) (*model.Group, error) {
	kind, err := eventOf(n)
	if err != nil {
		return nil, err
	}
	g := &model.Group{Kind: kind, Nodes: make([]model.Node, 0, len(n.Children))}

	if label := internalTaxon(n); label != "" {
		self := b.taxa.taxon(label)
		b.taxa.observe(self, ancestors)
		g.TaxonID = strconv.Itoa(self + 1)
		ancestors = append(ancestors, self)
	}

	for _, c := range n.Children {
		if !c.IsLeaf() {
			sub, err := b.group(c, ancestors)
			if err != nil {
				return nil, err
			}
			g.Nodes = append(g.Nodes, sub)
			continue
		}
		ref, err := b.leaf(c, ancestors)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, ref)
	}
	return g, nil
}

func (b *builder) leaf(n *newick.Node, ancestors []int) (model.GeneRef, error) {
	if n.Name == "" {
		return model.GeneRef{}, oxerr.New(oxerr.ErrMalformedDocument, "leaf without label")
	}

	var taxon int
	if name := leafSpecies(n); name != "" {
		taxon = b.taxa.taxon(name)
		b.taxa.observe(taxon, ancestors)
	} else if len(ancestors) > 0 {
		taxon = ancestors[len(ancestors)-1]
	} else {
		return model.GeneRef{}, oxerr.New(oxerr.ErrUnknownTaxon, "no species for leaf %q", n.Name)
	}
	b.taxa.observeSpecies(taxon, ancestors)

	// a label names one gene, so it must keep its species across trees
	if i, ok := b.geneIndex[n.Name]; ok {
		if first := b.spTaxon[b.genes[i].Species]; first != taxon {
			return model.GeneRef{}, oxerr.New(oxerr.ErrUnresolvedReference,
				"leaf %q is species %q here but %q elsewhere", n.Name, b.taxa.names[taxon], b.taxa.names[first])
		}
		return model.GeneRef{Gene: i}, nil
	}

	i := len(b.genes)
	b.genes = append(b.genes, model.Gene{
		ID:      strconv.Itoa(i + 1),
		Species: b.speciesFor(taxon),
		Attrs:   []xml.Attr{{Name: xml.Name{Local: b.attr}, Value: n.Name}},
	})
	b.geneIndex[n.Name] = i
	return model.GeneRef{Gene: i}, nil
}

func (b *builder) speciesFor(taxon int) int {
	if si, ok := b.spIndex[taxon]; ok {
		return si
	}
	name := b.taxa.names[taxon]
	si := len(b.species)
	b.species = append(b.species, model.Species{
		Name:      name,
		NCBITaxID: strconv.Itoa(taxon + 1),
		Database:  model.Database{Name: name, Version: "n/a"},
	})
	b.spTaxon = append(b.spTaxon, taxon)
	b.spIndex[taxon] = si
	return si
}

// eventOf reads the event of an internal node from NHX D or Ev.
func eventOf(n *newick.Node) (model.GroupKind, error) {
	if d, ok := n.Get("D"); ok {
		if d != "" && strings.ContainsRune("dty", rune(strings.ToLower(d)[0])) {
			return model.Paralog, nil
		}
		return model.Ortholog, nil
	}

	ev, ok := n.Get("Ev")
	if !ok {
		return model.Ortholog, nil
	}
	// Ev=duplications>speciations>losses>...
	if parts := strings.Split(ev, ">"); len(parts) >= 2 {
		dups, err1 := strconv.Atoi(parts[0])
		_, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil {
			if dups > 0 {
				return model.Paralog, nil
			}
			return model.Ortholog, nil
		}
	}
	switch {
	case strings.HasPrefix(strings.ToLower(ev), "d"):
		return model.Paralog, nil
	case strings.HasPrefix(strings.ToLower(ev), "s"):
		return model.Ortholog, nil
	}
	return model.Ortholog, oxerr.New(oxerr.ErrMalformedDocument, "cannot parse annotation Ev=%s", ev)
}

func internalTaxon(n *newick.Node) string {
	for _, k := range []string{"T", "S", "name"} {
		if v, ok := n.Get(k); ok && v != "" {
			return v
		}
	}
	return n.Name
}

func leafSpecies(n *newick.Node) string {
	for _, k := range []string{"S", "T"} {
		if v, ok := n.Get(k); ok && v != "" {
			return v
		}
	}
	if k := strings.LastIndexByte(n.Name, '_'); k >= 0 {
		return n.Name[k+1:]
	}
	return ""
}
