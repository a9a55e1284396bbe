// Score-based pruning of the group hierarchy.

package filter

import (
	"fmt"
	"strings"

	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/oxerr"
)

type Strategy int

const (
	TopDown Strategy = iota
	BottomUp
)

func (s Strategy) String() string {
	if s == BottomUp {
		return "bottomup"
	}
	return "topdown"
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "topdown", "top-down", "":
		return TopDown, nil
	case "bottomup", "bottom-up":
		return BottomUp, nil
	}
	return TopDown, fmt.Errorf("unsupported filter strategy %q, choices are: topdown, bottomup", s)
}

type Options struct {
	ScoreName string
	Threshold float64
	Strategy  Strategy
	// Strict fails with UnknownScoreName when no group carries ScoreName.
	Strict bool
}

// Apply returns a filtered copy of doc; doc itself is left untouched.
//
// A group disqualifies when it carries ScoreName with a value below
// Threshold. Groups without the score are never pruned for lacking it.
// Groups that end up with no children are dropped, and so are genes that
// only dropped groups referenced.
func Apply(doc *model.Document, opts Options) (*model.Document, error) {
	if opts.Strict && !HasScore(doc, opts.ScoreName) {
		return nil, oxerr.New(oxerr.ErrUnknownScoreName, "no group carries a score named %q", opts.ScoreName)
	}

	f := &pruner{name: opts.ScoreName, threshold: opts.Threshold}
	var roots []*model.Group
	for _, r := range doc.RootHOGs {
		var kept *model.Group
		if opts.Strategy == BottomUp {
			kept = f.bottomUp(r)
		} else {
			kept = f.topDown(r)
		}
		if kept != nil {
			roots = append(roots, kept)
		}
	}

	// roots still use doc's gene indices until Derive remaps them
	before := doc.ReferencedGenes(doc.RootHOGs)
	after := doc.ReferencedGenes(roots)
	return doc.Derive(roots, func(i int) bool { return after[i] || !before[i] }), nil
}

// HasScore reports whether any group of doc carries the named score.
func HasScore(doc *model.Document, name string) bool {
	found := false
	for _, r := range doc.RootHOGs {
		model.Walk(r, func(n model.Node) bool {
			if found {
				return false
			}
			if _, ok := n.Score(name); ok {
				found = true
			}
			return !found
		})
		if found {
			return true
		}
	}
	return false
}

type pruner struct {
	name      string
	threshold float64
}

// disqualifies is true only when the score is present and below the threshold.
func (p *pruner) disqualifies(g *model.Group) bool {
	v, ok := g.Score(p.name)
	return ok && v < p.threshold
}

// topDown drops a disqualifying group with its whole subtree.
func (p *pruner) topDown(g *model.Group) *model.Group {
	if p.disqualifies(g) {
		return nil
	}
	out := shell(g)
	for _, n := range g.Nodes {
		switch c := n.(type) {
		case *model.Group:
			if kept := p.topDown(c); kept != nil {
				out.Nodes = append(out.Nodes, kept)
			}
		case model.GeneRef:
			out.Nodes = append(out.Nodes, c)
		}
	}
	if len(out.Nodes) == 0 {
		return nil
	}
	return out
}

// bottomUp filters children first. A disqualifying group loses its own
// gene refs but survives as a container of surviving child groups.
func (p *pruner) bottomUp(g *model.Group) *model.Group {
	pass := !p.disqualifies(g)
	out := shell(g)
	for _, n := range g.Nodes {
		switch c := n.(type) {
		case *model.Group:
			if kept := p.bottomUp(c); kept != nil {
				out.Nodes = append(out.Nodes, kept)
			}
		case model.GeneRef:
			if pass {
				out.Nodes = append(out.Nodes, c)
			}
		}
	}
	if len(out.Nodes) == 0 {
		return nil
	}
	return out
}

func shell(g *model.Group) *model.Group {
	return &model.Group{
		ID:         g.ID,
		TaxonID:    g.TaxonID,
		Kind:       g.Kind,
		Scores:     append([]model.Score(nil), g.Scores...),
		Properties: append([]model.Property(nil), g.Properties...),
		Nodes:      make([]model.Node, 0, len(g.Nodes)),
	}
}
