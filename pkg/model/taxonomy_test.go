package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/orthoxml/internal/testutil"
)

func TestRenderTaxonomy(t *testing.T) {
	doc := mustParse(t, testutil.Vertebrates)

	want := "Vertebrata\n" +
		"├── Mammalia\n" +
		"│   ├── HUMAN\n" +
		"│   └── MOUSE\n" +
		"└── FISH\n"
	assert.Equal(t, want, doc.Taxonomy.Render())
}

func TestTaxonomyLCA(t *testing.T) {
	doc := mustParse(t, testutil.Vertebrates)
	tax := doc.Taxonomy

	human, _ := tax.ByName("HUMAN")
	mouse, _ := tax.ByName("MOUSE")
	fish, _ := tax.ByName("FISH")
	mammals, _ := tax.ByName("Mammalia")

	tests := []struct {
		name string
		in   []int
		want int
	}{
		{"Empty", nil, -1},
		{"Single", []int{human}, human},
		{"Siblings", []int{human, mouse}, mammals},
		{"AcrossLevels", []int{human, fish}, tax.Root},
		{"WithAncestor", []int{mammals, mouse}, mammals},
		{"Repeated", []int{fish, fish}, fish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.LCA(tt.in...))
		})
	}
}

func TestTaxonomyTraversal(t *testing.T) {
	doc := mustParse(t, testutil.Vertebrates)
	tax := doc.Taxonomy

	var names []string
	for _, i := range tax.Preorder() {
		names = append(names, tax.Get(i).Name)
	}
	assert.Equal(t, []string{"Vertebrata", "Mammalia", "HUMAN", "MOUSE", "FISH"}, names)

	names = names[:0]
	for _, i := range tax.Leaves() {
		names = append(names, tax.Get(i).Name)
	}
	assert.Equal(t, []string{"HUMAN", "MOUSE", "FISH"}, names)
}

func TestSpeciesOfEveryGene(t *testing.T) {
	doc := mustParse(t, testutil.Vertebrates)

	want := map[string]string{"1": "HUMAN", "2": "HUMAN", "3": "MOUSE", "4": "MOUSE", "5": "FISH", "6": "FISH"}
	for i, g := range doc.Genes {
		tx, err := doc.SpeciesOf(i)
		require.NoError(t, err)
		assert.Equal(t, want[g.ID], tx.Name, "gene %s", g.ID)
	}
}

func TestAssignLOFTIDs(t *testing.T) {
	leaf := func(i int) Node { return GeneRef{Gene: i} }
	inner := &Group{Kind: Ortholog, Nodes: []Node{leaf(2), leaf(3)}}
	para := &Group{Kind: Paralog, Nodes: []Node{
		&Group{Kind: Ortholog, Nodes: []Node{leaf(0)}},
		inner,
	}}
	root := &Group{Kind: Ortholog, Nodes: []Node{para, leaf(4)}}
	second := &Group{Kind: Ortholog, Nodes: []Node{leaf(5)}}

	AssignLOFTIDs([]*Group{root, second})

	assert.Equal(t, "HOG:00000001", root.ID)
	assert.Empty(t, para.ID)
	assert.Equal(t, "HOG:00000001.1a", para.Nodes[0].(*Group).ID)
	assert.Equal(t, "HOG:00000001.1b", inner.ID)
	assert.Equal(t, "HOG:00000002", second.ID)
}

func TestParalogSuffix(t *testing.T) {
	assert.Equal(t, "xa", paralogSuffix("x", 0))
	assert.Equal(t, "xz", paralogSuffix("x", 25))
	assert.Equal(t, "xaa", paralogSuffix("x", 26))
	assert.Equal(t, "xab", paralogSuffix("x", 27))
}

func TestCloneIsIndependent(t *testing.T) {
	doc := mustParse(t, testutil.Vertebrates)
	c := doc.Clone()

	c.RootHOGs[0].Nodes = c.RootHOGs[0].Nodes[:1]
	c.RootHOGs[0].Scores[0].Value = 0

	assert.Len(t, doc.RootHOGs[0].Nodes, 2)
	v, _ := doc.RootHOGs[0].Score("CompletenessScore")
	assert.InDelta(t, 0.9, v, 1e-9)
	assert.Same(t, doc.Taxonomy, c.Taxonomy)
}
