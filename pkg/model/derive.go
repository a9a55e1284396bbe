package model

// NewDocument assembles a document from already-built parts, e.g. when
// converting from another notation.
func NewDocument(tax *Taxonomy, species []Species, genes []Gene, roots []*Group) *Document {
	d := &Document{
		Version:  DefaultVersion,
		Species:  species,
		Genes:    genes,
		Taxonomy: tax,
		RootHOGs: roots,
	}
	d.reindex()
	return d
}

// Clone copies the group forest. Taxonomy, species and genes are shared
// because they are read-only.
func (d *Document) Clone() *Document {
	roots := make([]*Group, len(d.RootHOGs))
	for i, g := range d.RootHOGs {
		roots[i] = g.Clone()
	}
	return d.Derive(roots, func(int) bool { return true })
}

// ReferencedGenes flags every gene reachable from the given roots.
func (d *Document) ReferencedGenes(roots []*Group) []bool {
	ref := make([]bool, len(d.Genes))
	for _, r := range roots {
		for _, gi := range r.GeneRefs() {
			ref[gi] = true
		}
	}
	return ref
}

// Derive builds a new document over roots (which must not be shared with d),
// keeping the genes accepted by keep. GeneRef indices inside roots are
// rewritten to the compacted gene table; refs to dropped genes are removed.
func (d *Document) Derive(roots []*Group, keep func(gene int) bool) *Document {
	remap := make([]int, len(d.Genes))
	genes := make([]Gene, 0, len(d.Genes))
	for i := range d.Genes {
		if !keep(i) {
			remap[i] = -1
			continue
		}
		remap[i] = len(genes)
		genes = append(genes, d.Genes[i])
	}
	for _, r := range roots {
		remapRefs(r, remap)
	}

	out := &Document{
		Version:       d.Version,
		Origin:        d.Origin,
		OriginVersion: d.OriginVersion,
		Species:       d.Species,
		Genes:         genes,
		Taxonomy:      d.Taxonomy,
		ScoreDefs:     d.ScoreDefs,
		RootHOGs:      roots,
		Warnings:      append([]string(nil), d.Warnings...),
	}
	out.reindex()
	return out
}

func remapRefs(g *Group, remap []int) {
	kept := g.Nodes[:0]
	for _, n := range g.Nodes {
		switch c := n.(type) {
		case *Group:
			remapRefs(c, remap)
			kept = append(kept, c)
		case GeneRef:
			if ni := remap[c.Gene]; ni >= 0 {
				kept = append(kept, GeneRef{Gene: ni})
			}
		}
	}
	g.Nodes = kept
}
