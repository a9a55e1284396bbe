package model

import "encoding/xml"

const (
	Namespace      = "http://orthoXML.org/2011/"
	DefaultVersion = "0.5"
)

type GroupKind int

const (
	Ortholog GroupKind = iota
	Paralog
)

func (k GroupKind) String() string {
	if k == Paralog {
		return "paralogGroup"
	}
	return "orthologGroup"
}

// Database is the <database> element wrapping a species' genes.
type Database struct {
	Name      string
	Version   string
	GeneLink  string
	ProtLink  string
	TransLink string
}

type Species struct {
	Name      string
	NCBITaxID string
	TaxonID   string
	Database  Database

	// taxon index in the document taxonomy
	Taxon int
}

// Gene is a leaf record. Attrs keeps the cross-reference attributes
// (protId, geneId, ...) in document order, without the internal id.
type Gene struct {
	ID      string
	Species int
	Attrs   []xml.Attr
}

// Attr returns the value of a cross-reference attribute.
func (g *Gene) Attr(name string) (string, bool) {
	for _, a := range g.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Label is the attribute value, or the internal id when the attribute is absent.
func (g *Gene) Label(attr string) string {
	if v, ok := g.Attr(attr); ok && v != "" {
		return v
	}
	return g.ID
}

type Score struct {
	Name  string
	Value float64
}

type Property struct {
	Name  string
	Value string
}

type ScoreDef struct {
	ID   string
	Desc string
}

// Document owns the taxonomy, the gene arena and the rootHOG forest.
// It is read-only once built.
type Document struct {
	Version       string
	Origin        string
	OriginVersion string

	Species   []Species
	Genes     []Gene
	Taxonomy  *Taxonomy
	ScoreDefs []ScoreDef
	RootHOGs  []*Group

	// Recovered problems, e.g. dropped non-numeric scores.
	Warnings []string

	geneByID  map[string]int
	geneTaxon []int
}

// GeneIndex looks up a gene by internal id.
func (d *Document) GeneIndex(id string) (int, bool) {
	i, ok := d.geneByID[id]
	return i, ok
}

// reindex rebuilds the lookup tables after Genes or Species change.
func (d *Document) reindex() {
	d.geneByID = make(map[string]int, len(d.Genes))
	d.geneTaxon = make([]int, len(d.Genes))
	for i := range d.Genes {
		d.geneByID[d.Genes[i].ID] = i
		sp := d.Genes[i].Species
		if sp >= 0 && sp < len(d.Species) {
			d.geneTaxon[i] = d.Species[sp].Taxon
		} else {
			d.geneTaxon[i] = -1
		}
	}
}
