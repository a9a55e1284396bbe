// Package validate checks OrthoXML text against the element structure of
// the 0.3 to 0.5 schemas without building a document.
package validate

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/yumyai/orthoxml/pkg/oxerr"
)

var Versions = []string{"0.3", "0.4", "0.5"}

// children lists the elements allowed directly below each element.
// notes may hold anything and is not descended into.
var children = map[string][]string{
	"orthoXML":      {"notes", "species", "taxonomy", "scores", "groups"},
	"species":       {"database", "notes"},
	"database":      {"genes"},
	"genes":         {"gene"},
	"gene":          {},
	"taxonomy":      {"taxon"},
	"taxon":         {"taxon", "notes"},
	"scores":        {"scoreDef"},
	"scoreDef":      {},
	"groups":        {"orthologGroup", "paralogGroup"},
	"orthologGroup": {"score", "property", "geneRef", "orthologGroup", "paralogGroup", "notes"},
	"paralogGroup":  {"score", "property", "geneRef", "orthologGroup", "paralogGroup", "notes"},
	"geneRef":       {"score", "notes"},
	"score":         {},
	"property":      {},
}

var required = map[string][]string{
	"orthoXML": {"version"},
	"species":  {"name"},
	"database": {"name"},
	"gene":     {"id"},
	"taxon":    {"id", "name"},
	"scoreDef": {"id"},
	"geneRef":  {"id"},
	"score":    {"id", "value"},
	"property": {"name"},
}

// Check returns nil when text is structurally valid OrthoXML, otherwise the
// first SchemaViolation with its line. Text that is not well-formed XML is
// a MalformedDocument.
func Check(text []byte) error {
	d := xml.NewDecoder(bytes.NewReader(text))
	var stack []string
	seen := make(map[string]bool)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				return oxerr.AtLine(oxerr.ErrMalformedDocument, se.Line, "%s", se.Msg)
			}
			return oxerr.New(oxerr.ErrMalformedDocument, "%v", err)
		}
		line, _ := d.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if len(stack) == 0 {
				if name != "orthoXML" {
					return violation(line, "root element is <%s>, expected <orthoXML>", name)
				}
			} else {
				parent := stack[len(stack)-1]
				if !allowed(parent, name) {
					return violation(line, "<%s> is not allowed in <%s>", name, parent)
				}
				if parent == "orthoXML" {
					seen[name] = true
				}
			}
			if err := checkAttrs(line, name, t.Attr); err != nil {
				return err
			}
			if name == "notes" {
				if err := d.Skip(); err != nil {
					return oxerr.New(oxerr.ErrMalformedDocument, "%v", err)
				}
				continue
			}
			stack = append(stack, name)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if !seen["species"] {
		return violation(0, "<orthoXML> has no <species>")
	}
	if !seen["groups"] {
		return violation(0, "<orthoXML> has no <groups>")
	}
	return nil
}

func allowed(parent, child string) bool {
	for _, c := range children[parent] {
		if c == child {
			return true
		}
	}
	return false
}

func checkAttrs(line int, name string, attrs []xml.Attr) error {
	get := func(key string) (string, bool) {
		for _, a := range attrs {
			if a.Name.Local == key && a.Name.Space == "" {
				return a.Value, true
			}
		}
		return "", false
	}
	for _, key := range required[name] {
		if _, ok := get(key); !ok {
			return violation(line, "<%s> is missing attribute %q", name, key)
		}
	}

	switch name {
	case "orthoXML":
		v, _ := get("version")
		for _, ok := range Versions {
			if v == ok {
				return nil
			}
		}
		return violation(line, "unsupported orthoXML version %q", v)
	case "score":
		v, _ := get("value")
		if f, err := strconv.ParseFloat(v, 64); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return violation(line, "score value %q is not a number", v)
		}
	}
	return nil
}

func violation(line int, format string, args ...any) error {
	return oxerr.AtLine(oxerr.ErrSchemaViolation, line, format, args...)
}
