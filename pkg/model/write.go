package model

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
)

// Marshal serializes the document as OrthoXML. Species without genes are omitted.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Write(w io.Writer, d *Document) error {
	raw := xmlDoc{
		Xmlns:         Namespace,
		Origin:        d.Origin,
		OriginVersion: d.OriginVersion,
		Version:       d.Version,
	}
	if raw.Version == "" {
		raw.Version = DefaultVersion
	}

	genesBySpecies := make([][]int, len(d.Species))
	for i := range d.Genes {
		sp := d.Genes[i].Species
		genesBySpecies[sp] = append(genesBySpecies[sp], i)
	}
	for si, sp := range d.Species {
		if len(genesBySpecies[si]) == 0 {
			continue
		}
		rs := xmlSpecies{Name: sp.Name, NCBITaxID: sp.NCBITaxID, TaxonID: sp.TaxonID}
		db := xmlDatabase{
			Name:      sp.Database.Name,
			Version:   sp.Database.Version,
			GeneLink:  sp.Database.GeneLink,
			ProtLink:  sp.Database.ProtLink,
			TransLink: sp.Database.TransLink,
		}
		for _, gi := range genesBySpecies[si] {
			g := d.Genes[gi]
			attrs := make([]xml.Attr, 0, len(g.Attrs)+1)
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "id"}, Value: g.ID})
			attrs = append(attrs, g.Attrs...)
			db.Genes.Genes = append(db.Genes.Genes, xmlGene{Attrs: attrs})
		}
		rs.Databases = []xmlDatabase{db}
		raw.Species = append(raw.Species, rs)
	}

	if d.Taxonomy != nil && d.Taxonomy.Root >= 0 {
		raw.Taxonomy = &xmlTaxonomy{Taxa: []xmlTaxon{toXMLTaxon(d.Taxonomy, d.Taxonomy.Root)}}
	}

	if len(d.ScoreDefs) > 0 {
		raw.Scores = &xmlScoreDefs{}
		for _, s := range d.ScoreDefs {
			raw.Scores.Defs = append(raw.Scores.Defs, xmlScoreDef{ID: s.ID, Desc: s.Desc})
		}
	}

	raw.Groups = &xmlGroups{}
	for _, g := range d.RootHOGs {
		raw.Groups.Groups = append(raw.Groups.Groups, *d.toXMLGroup(g))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(&raw); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func toXMLTaxon(t *Taxonomy, i int) xmlTaxon {
	tx := t.Taxa[i]
	out := xmlTaxon{ID: tx.ID, Name: tx.Name}
	for _, c := range tx.Children {
		out.Children = append(out.Children, toXMLTaxon(t, c))
	}
	return out
}

func (d *Document) toXMLGroup(g *Group) *xmlGroup {
	out := &xmlGroup{Tag: g.Kind.String(), ID: g.ID, TaxonID: g.TaxonID}
	for _, s := range g.Scores {
		out.Scores = append(out.Scores, xmlScore{ID: s.Name, Value: strconv.FormatFloat(s.Value, 'g', -1, 64)})
	}
	for _, p := range g.Properties {
		out.Properties = append(out.Properties, xmlProperty{Name: p.Name, Value: p.Value})
	}
	for _, n := range g.Nodes {
		switch c := n.(type) {
		case *Group:
			out.Items = append(out.Items, xmlItem{group: d.toXMLGroup(c)})
		case GeneRef:
			out.Items = append(out.Items, xmlItem{geneRef: d.Genes[c.Gene].ID})
		}
	}
	return out
}
