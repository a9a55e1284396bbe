package split

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/orthoxml/internal/testutil"
	"github.com/yumyai/orthoxml/pkg/model"
)

// triples lists (gene, species, kind of the group holding it) for a document.
func triples(t *testing.T, docs ...*model.Document) []string {
	t.Helper()
	var out []string
	for _, doc := range docs {
		var rec func(g *model.Group)
		rec = func(g *model.Group) {
			for _, n := range g.Nodes {
				switch c := n.(type) {
				case *model.Group:
					rec(c)
				case model.GeneRef:
					sp, err := doc.SpeciesOf(c.Gene)
					require.NoError(t, err)
					out = append(out, doc.Genes[c.Gene].ID+"|"+sp.Name+"|"+g.Kind.String())
				}
			}
		}
		for _, r := range doc.RootHOGs {
			rec(r)
		}
	}
	sort.Strings(out)
	return out
}

func TestByRootHOGRecombines(t *testing.T) {
	for _, fixture := range []string{testutil.Vertebrates, testutil.TwoRoots, testutil.DeepClade} {
		doc, err := model.Parse([]byte(fixture))
		require.NoError(t, err)

		parts := ByRootHOG(doc)
		require.Len(t, parts, len(doc.RootHOGs))
		assert.Equal(t, triples(t, doc), triples(t, parts...))
	}
}

func TestByRootHOGContents(t *testing.T) {
	doc, err := model.Parse([]byte(testutil.Vertebrates))
	require.NoError(t, err)

	parts := ByRootHOG(doc)
	require.Len(t, parts, 2)

	tests := []struct {
		root  string
		genes []string
	}{
		{"H1", []string{"1", "3", "4", "5"}},
		{"H2", []string{"2", "6"}},
	}
	for i, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			p := parts[i]
			require.Len(t, p.RootHOGs, 1)
			assert.Equal(t, tt.root, p.RootHOGs[0].ID)

			var ids []string
			for _, g := range p.Genes {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.genes, ids)
			assert.Equal(t, doc.Taxonomy.Render(), p.Taxonomy.Render(), "taxonomy is not pruned")

			// the part must serialize and parse back on its own
			out, err := model.Marshal(p)
			require.NoError(t, err)
			again, err := model.Parse(out)
			require.NoError(t, err)
			assert.Len(t, again.Genes, len(tt.genes))
		})
	}
}

func TestSingleRootHOGIsCopy(t *testing.T) {
	doc, err := model.Parse([]byte(testutil.DeepClade))
	require.NoError(t, err)

	parts := ByRootHOG(doc)
	require.Len(t, parts, 1)
	assert.NotSame(t, doc.RootHOGs[0], parts[0].RootHOGs[0])
	assert.Len(t, parts[0].Genes, len(doc.Genes))

	parts[0].RootHOGs[0].Nodes = nil
	assert.NotEmpty(t, doc.RootHOGs[0].Nodes)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "3_hogs.orthoxml", FileName(3, "hogs.orthoxml"))
}
