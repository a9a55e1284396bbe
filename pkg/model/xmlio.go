// Raw OrthoXML element mapping used by Parse and Write.

package model

import (
	"encoding/xml"
	"io"
)

type xmlDoc struct {
	XMLName       xml.Name      `xml:"orthoXML"`
	Xmlns         string        `xml:"xmlns,attr,omitempty"`
	Origin        string        `xml:"origin,attr,omitempty"`
	OriginVersion string        `xml:"originVersion,attr,omitempty"`
	Version       string        `xml:"version,attr"`
	Species       []xmlSpecies  `xml:"species"`
	Taxonomy      *xmlTaxonomy  `xml:"taxonomy"`
	Scores        *xmlScoreDefs `xml:"scores"`
	Groups        *xmlGroups    `xml:"groups"`
}

type xmlSpecies struct {
	Name      string        `xml:"name,attr"`
	NCBITaxID string        `xml:"NCBITaxId,attr,omitempty"`
	TaxonID   string        `xml:"taxonId,attr,omitempty"`
	Databases []xmlDatabase `xml:"database"`
}

type xmlDatabase struct {
	Name      string   `xml:"name,attr"`
	Version   string   `xml:"version,attr"`
	GeneLink  string   `xml:"geneLink,attr,omitempty"`
	ProtLink  string   `xml:"protLink,attr,omitempty"`
	TransLink string   `xml:"transcriptLink,attr,omitempty"`
	Genes     xmlGenes `xml:"genes"`
}

type xmlGenes struct {
	Genes []xmlGene `xml:"gene"`
}

type xmlGene struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type xmlTaxonomy struct {
	Taxa []xmlTaxon `xml:"taxon"`
}

type xmlTaxon struct {
	ID       string     `xml:"id,attr"`
	Name     string     `xml:"name,attr"`
	Children []xmlTaxon `xml:"taxon"`
}

type xmlScoreDefs struct {
	Defs []xmlScoreDef `xml:"scoreDef"`
}

type xmlScoreDef struct {
	ID   string `xml:"id,attr"`
	Desc string `xml:"desc,attr"`
}

type xmlGroups struct {
	Groups []xmlGroup `xml:",any"`
}

type xmlScore struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlGeneRef struct {
	ID string `xml:"id,attr"`
}

// xmlItem is one ordered child of a group: either a nested group or a geneRef.
type xmlItem struct {
	group   *xmlGroup
	geneRef string
}

// xmlGroup keeps the children of orthologGroup/paralogGroup in document order,
// which the plain struct mapping cannot do.
type xmlGroup struct {
	Tag        string
	ID         string
	TaxonID    string
	Line       int
	Scores     []xmlScore
	Properties []xmlProperty
	Items      []xmlItem
}

func (g *xmlGroup) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	g.Tag = start.Name.Local
	g.Line, _ = d.InputPos()
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			g.ID = a.Value
		case "taxonId":
			g.TaxonID = a.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "orthologGroup", "paralogGroup":
				child := &xmlGroup{}
				if err := d.DecodeElement(child, &t); err != nil {
					return err
				}
				g.Items = append(g.Items, xmlItem{group: child})
			case "geneRef":
				var ref xmlGeneRef
				if err := d.DecodeElement(&ref, &t); err != nil {
					return err
				}
				g.Items = append(g.Items, xmlItem{geneRef: ref.ID})
			case "score":
				var s xmlScore
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				g.Scores = append(g.Scores, s)
			case "property":
				var p xmlProperty
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				g.Properties = append(g.Properties, p)
			default:
				// notes and unknown extensions
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (g *xmlGroup) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: g.Tag}
	start.Attr = nil
	if g.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "id"}, Value: g.ID})
	}
	if g.TaxonID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "taxonId"}, Value: g.TaxonID})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, s := range g.Scores {
		if err := e.EncodeElement(s, xml.StartElement{Name: xml.Name{Local: "score"}}); err != nil {
			return err
		}
	}
	for _, p := range g.Properties {
		if err := e.EncodeElement(p, xml.StartElement{Name: xml.Name{Local: "property"}}); err != nil {
			return err
		}
	}
	for _, it := range g.Items {
		var err error
		if it.group != nil {
			err = e.Encode(it.group)
		} else {
			err = e.EncodeElement(xmlGeneRef{ID: it.geneRef}, xml.StartElement{Name: xml.Name{Local: "geneRef"}})
		}
		if err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
