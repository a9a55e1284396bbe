package model

// Node is either a *Group or a GeneRef. The interface is sealed.
type Node interface {
	Children() []Node
	Score(name string) (float64, bool)
	IsLeaf() bool
	isNode()
}

// GeneRef is a group leaf pointing into Document.Genes.
type GeneRef struct {
	Gene int
}

func (GeneRef) Children() []Node { return nil }
func (GeneRef) Score(string) (float64, bool) { return 0, false }
func (GeneRef) IsLeaf() bool { return true }
func (GeneRef) isNode() {}

type Group struct {
	ID         string
	TaxonID    string
	Kind       GroupKind
	Scores     []Score
	Properties []Property
	Nodes      []Node
}

func (g *Group) Children() []Node { return g.Nodes }
func (g *Group) IsLeaf() bool { return false }
func (g *Group) isNode() {}

// Score returns the named score. When a score id repeats, the lowest value wins.
func (g *Group) Score(name string) (float64, bool) {
	var (
		val   float64
		found bool
	)
	for _, s := range g.Scores {
		if s.Name != name {
			continue
		}
		if !found || s.Value < val {
			val = s.Value
		}
		found = true
	}
	return val, found
}

// Clone deep-copies the group subtree. Gene refs are values so they copy as-is.
func (g *Group) Clone() *Group {
	c := &Group{
		ID:         g.ID,
		TaxonID:    g.TaxonID,
		Kind:       g.Kind,
		Scores:     append([]Score(nil), g.Scores...),
		Properties: append([]Property(nil), g.Properties...),
		Nodes:      make([]Node, 0, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		if sub, ok := n.(*Group); ok {
			c.Nodes = append(c.Nodes, sub.Clone())
		} else {
			c.Nodes = append(c.Nodes, n)
		}
	}
	return c
}

// GeneRefs lists the gene indices below g in depth-first order.
func (g *Group) GeneRefs() []int {
	var out []int
	Walk(g, func(n Node) bool {
		if r, ok := n.(GeneRef); ok {
			out = append(out, r.Gene)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
