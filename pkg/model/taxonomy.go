package model

import (
	"strings"

	"github.com/yumyai/orthoxml/pkg/oxerr"
)

// Taxon is a node of the species tree. Parent is -1 for the root.
type Taxon struct {
	ID       string
	Name     string
	Parent   int
	Children []int
	depth    int
}

// Taxonomy is an arena of taxa with a single root.
type Taxonomy struct {
	Taxa []Taxon
	Root int

	byID   map[string]int
	byName map[string]int
}

func NewTaxonomy() *Taxonomy {
	return &Taxonomy{
		Root:   -1,
		byID:   make(map[string]int),
		byName: make(map[string]int),
	}
}

// Add appends a taxon under parent (-1 for the root) and returns its index.
func (t *Taxonomy) Add(id, name string, parent int) int {
	idx := len(t.Taxa)
	depth := 0
	if parent >= 0 {
		depth = t.Taxa[parent].depth + 1
		t.Taxa[parent].Children = append(t.Taxa[parent].Children, idx)
	} else if t.Root < 0 {
		t.Root = idx
	}
	t.Taxa = append(t.Taxa, Taxon{ID: id, Name: name, Parent: parent, depth: depth})
	if id != "" {
		if _, dup := t.byID[id]; !dup {
			t.byID[id] = idx
		}
	}
	if name != "" {
		if _, dup := t.byName[name]; !dup {
			t.byName[name] = idx
		}
	}
	return idx
}

func (t *Taxonomy) ByID(id string) (int, bool) {
	i, ok := t.byID[id]
	return i, ok
}

func (t *Taxonomy) ByName(name string) (int, bool) {
	i, ok := t.byName[name]
	return i, ok
}

func (t *Taxonomy) Len() int { return len(t.Taxa) }

func (t *Taxonomy) Get(i int) *Taxon { return &t.Taxa[i] }

// Preorder lists taxon indices depth-first, children in document order.
func (t *Taxonomy) Preorder() []int {
	if t.Root < 0 {
		return nil
	}
	out := make([]int, 0, len(t.Taxa))
	var rec func(int)
	rec = func(i int) {
		out = append(out, i)
		for _, c := range t.Taxa[i].Children {
			rec(c)
		}
	}
	rec(t.Root)
	return out
}

// Leaves lists taxa without children, in preorder.
func (t *Taxonomy) Leaves() []int {
	var out []int
	for _, i := range t.Preorder() {
		if len(t.Taxa[i].Children) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// LCA returns the lowest common ancestor of the given taxa, or -1 for an empty set.
func (t *Taxonomy) LCA(taxa ...int) int {
	lca := -1
	for _, x := range taxa {
		if x < 0 {
			continue
		}
		if lca < 0 {
			lca = x
			continue
		}
		a, b := lca, x
		for t.Taxa[a].depth > t.Taxa[b].depth {
			a = t.Taxa[a].Parent
		}
		for t.Taxa[b].depth > t.Taxa[a].depth {
			b = t.Taxa[b].Parent
		}
		for a != b {
			a = t.Taxa[a].Parent
			b = t.Taxa[b].Parent
		}
		lca = a
	}
	return lca
}

// Render prints the taxonomy as an indented tree with box-drawing connectors.
func (t *Taxonomy) Render() string {
	if t.Root < 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.Taxa[t.Root].Name)
	sb.WriteString("\n")
	var rec func(i int, prefix string)
	rec = func(i int, prefix string) {
		kids := t.Taxa[i].Children
		for n, c := range kids {
			connector, next := "├── ", "│   "
			if n == len(kids)-1 {
				connector, next = "└── ", "    "
			}
			sb.WriteString(prefix)
			sb.WriteString(connector)
			sb.WriteString(t.Taxa[c].Name)
			sb.WriteString("\n")
			rec(c, prefix+next)
		}
	}
	rec(t.Root, "")
	return sb.String()
}

// SpeciesOf resolves the species taxon of a gene in O(1).
func (d *Document) SpeciesOf(gene int) (*Taxon, error) {
	if gene < 0 || gene >= len(d.geneTaxon) {
		return nil, oxerr.New(oxerr.ErrUnknownTaxon, "gene index %d out of range", gene)
	}
	ti := d.geneTaxon[gene]
	if ti < 0 || d.Taxonomy == nil || ti >= d.Taxonomy.Len() {
		return nil, oxerr.New(oxerr.ErrUnknownTaxon, "no species taxon registered for gene %q", d.Genes[gene].ID)
	}
	return &d.Taxonomy.Taxa[ti], nil
}

// TaxonOf is SpeciesOf returning the taxon index, -1 when unknown.
func (d *Document) TaxonOf(gene int) int {
	if gene < 0 || gene >= len(d.geneTaxon) {
		return -1
	}
	return d.geneTaxon[gene]
}
