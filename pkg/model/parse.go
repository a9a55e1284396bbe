package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yumyai/orthoxml/pkg/oxerr"
)

// Parse builds a Document from OrthoXML text. Structural and reference
// problems abort the parse; non-numeric scores are dropped and reported
// in Document.Warnings.
func Parse(text []byte) (*Document, error) {
	var raw xmlDoc
	if err := xml.Unmarshal(text, &raw); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, oxerr.AtLine(oxerr.ErrMalformedDocument, syntaxErr.Line, "%s", syntaxErr.Msg)
		}
		return nil, oxerr.New(oxerr.ErrMalformedDocument, "%v", err)
	}

	doc := &Document{
		Version:       raw.Version,
		Origin:        raw.Origin,
		OriginVersion: raw.OriginVersion,
	}

	// Gene table first, so geneRefs resolve regardless of element order.
	if err := doc.buildGenes(raw.Species); err != nil {
		return nil, err
	}
	if err := doc.buildTaxonomy(raw.Taxonomy); err != nil {
		return nil, err
	}
	if err := doc.resolveSpecies(); err != nil {
		return nil, err
	}
	doc.reindex()

	if raw.Scores != nil {
		for _, s := range raw.Scores.Defs {
			doc.ScoreDefs = append(doc.ScoreDefs, ScoreDef{ID: s.ID, Desc: s.Desc})
		}
	}

	if raw.Groups == nil {
		return nil, oxerr.New(oxerr.ErrMalformedDocument, "missing <groups> section")
	}
	for i := range raw.Groups.Groups {
		rg := &raw.Groups.Groups[i]
		if rg.Tag != "orthologGroup" && rg.Tag != "paralogGroup" {
			continue
		}
		g, err := doc.buildGroup(rg)
		if err != nil {
			return nil, err
		}
		doc.RootHOGs = append(doc.RootHOGs, g)
	}
	if len(doc.RootHOGs) == 0 {
		return nil, oxerr.New(oxerr.ErrMalformedDocument, "document contains no rootHOG")
	}

	return doc, nil
}

func (d *Document) buildGenes(species []xmlSpecies) error {
	seen := make(map[string]bool)
	for _, rs := range species {
		sp := Species{
			Name:      rs.Name,
			NCBITaxID: rs.NCBITaxID,
			TaxonID:   rs.TaxonID,
			Taxon:     -1,
		}
		if len(rs.Databases) > 0 {
			db := rs.Databases[0]
			sp.Database = Database{
				Name:      db.Name,
				Version:   db.Version,
				GeneLink:  db.GeneLink,
				ProtLink:  db.ProtLink,
				TransLink: db.TransLink,
			}
		}
		spIdx := len(d.Species)
		d.Species = append(d.Species, sp)

		// Several databases of one species share the species record.
		for _, db := range rs.Databases {
			for _, rg := range db.Genes.Genes {
				g := Gene{Species: spIdx}
				for _, a := range rg.Attrs {
					if a.Name.Local == "id" && a.Name.Space == "" {
						g.ID = a.Value
						continue
					}
					g.Attrs = append(g.Attrs, a)
				}
				if g.ID == "" {
					return oxerr.New(oxerr.ErrMalformedDocument, "gene without id in species %q", rs.Name)
				}
				if seen[g.ID] {
					return oxerr.New(oxerr.ErrMalformedDocument, "duplicate gene id %q", g.ID)
				}
				seen[g.ID] = true
				d.Genes = append(d.Genes, g)
			}
		}
	}
	if len(d.Genes) == 0 {
		return oxerr.New(oxerr.ErrMalformedDocument, "document declares no genes")
	}
	return nil
}

func (d *Document) buildTaxonomy(raw *xmlTaxonomy) error {
	if raw == nil || len(raw.Taxa) == 0 {
		return oxerr.New(oxerr.ErrMalformedDocument, "missing taxonomy root")
	}
	if len(raw.Taxa) > 1 {
		return oxerr.New(oxerr.ErrMalformedDocument, "taxonomy has %d top-level taxa, expected one root", len(raw.Taxa))
	}

	tax := NewTaxonomy()
	var add func(rt *xmlTaxon, parent int) error
	add = func(rt *xmlTaxon, parent int) error {
		if rt.ID != "" {
			if _, dup := tax.ByID(rt.ID); dup {
				return oxerr.New(oxerr.ErrMalformedDocument, "duplicate taxon id %q", rt.ID)
			}
		}
		name := rt.Name
		if name == "" {
			name = rt.ID
		}
		idx := tax.Add(rt.ID, name, parent)
		for i := range rt.Children {
			if err := add(&rt.Children[i], idx); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(&raw.Taxa[0], -1); err != nil {
		return err
	}
	d.Taxonomy = tax
	return nil
}

// resolveSpecies maps each species onto a taxon: taxonId, then NCBITaxId, then name.
func (d *Document) resolveSpecies() error {
	for i := range d.Species {
		sp := &d.Species[i]
		idx, ok := -1, false
		if sp.TaxonID != "" {
			idx, ok = d.Taxonomy.ByID(sp.TaxonID)
		}
		if !ok && sp.NCBITaxID != "" {
			idx, ok = d.Taxonomy.ByID(sp.NCBITaxID)
		}
		if !ok && sp.Name != "" {
			idx, ok = d.Taxonomy.ByName(sp.Name)
		}
		if !ok {
			ref := sp.TaxonID
			if ref == "" {
				ref = sp.NCBITaxID
			}
			return oxerr.New(oxerr.ErrUnresolvedReference,
				"species %q (taxon %q) does not exist in the taxonomy", sp.Name, ref)
		}
		sp.Taxon = idx
	}
	return nil
}

func (d *Document) buildGroup(rg *xmlGroup) (*Group, error) {
	g := &Group{
		ID:      rg.ID,
		TaxonID: rg.TaxonID,
		Kind:    Ortholog,
	}
	if rg.Tag == "paralogGroup" {
		g.Kind = Paralog
	}

	for _, s := range rg.Scores {
		v, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			d.Warnings = append(d.Warnings,
				fmt.Sprintf("line %d: group %q: dropped score %q with non-numeric value %q", rg.Line, rg.ID, s.ID, s.Value))
			continue
		}
		g.Scores = append(g.Scores, Score{Name: s.ID, Value: v})
	}
	for _, p := range rg.Properties {
		g.Properties = append(g.Properties, Property{Name: p.Name, Value: p.Value})
	}

	for _, it := range rg.Items {
		if it.group != nil {
			child, err := d.buildGroup(it.group)
			if err != nil {
				return nil, err
			}
			g.Nodes = append(g.Nodes, child)
			continue
		}
		gi, ok := d.geneByID[it.geneRef]
		if !ok {
			return nil, oxerr.AtLine(oxerr.ErrUnresolvedReference, rg.Line,
				"geneRef %q in group %q does not exist in the gene table", it.geneRef, rg.ID)
		}
		g.Nodes = append(g.Nodes, GeneRef{Gene: gi})
	}

	if len(g.Nodes) == 0 {
		return nil, oxerr.AtLine(oxerr.ErrMalformedDocument, rg.Line, "%s %q has no children", rg.Tag, rg.ID)
	}
	return g, nil
}
