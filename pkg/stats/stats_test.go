package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/orthoxml/internal/testutil"
	"github.com/yumyai/orthoxml/pkg/model"
)

func TestCompute(t *testing.T) {
	doc, err := model.Parse([]byte(testutil.Vertebrates))
	require.NoError(t, err)

	s := Compute(doc)

	assert.Equal(t, 6, s.Genes)
	assert.Equal(t, 6, s.GenesInGroups)
	assert.Equal(t, 3, s.Species)
	assert.Equal(t, 2, s.RootHOGs)
	assert.Equal(t, 3, s.OrthologGroups)
	assert.Equal(t, 1, s.ParalogGroups)
	assert.Equal(t, 3, s.LeafTaxa)
	assert.Equal(t, 5, s.Taxa)
}

func TestTaxonCountsRollUp(t *testing.T) {
	doc, err := model.Parse([]byte(testutil.Vertebrates))
	require.NoError(t, err)

	counts := TaxonCounts(doc)
	require.Len(t, counts, 5)

	byName := make(map[string]TaxonCount)
	directSum := 0
	for _, c := range counts {
		byName[c.Taxon] = c
		directSum += c.Direct
	}

	// every gene is counted exactly once at its species
	assert.Equal(t, len(doc.Genes), directSum)
	assert.Equal(t, len(doc.Genes), counts[0].Total, "root total covers every gene")

	tests := []struct {
		taxon         string
		direct, total int
		depth         int
	}{
		{"Vertebrata", 0, 6, 0},
		{"Mammalia", 0, 4, 1},
		{"HUMAN", 2, 2, 2},
		{"MOUSE", 2, 2, 2},
		{"FISH", 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.taxon, func(t *testing.T) {
			c, ok := byName[tt.taxon]
			require.True(t, ok)
			assert.Equal(t, tt.direct, c.Direct)
			assert.Equal(t, tt.total, c.Total)
			assert.Equal(t, tt.depth, c.Depth)
		})
	}
}

func TestComputeDoesNotMutate(t *testing.T) {
	doc, err := model.Parse([]byte(testutil.Vertebrates))
	require.NoError(t, err)
	before, err := model.Marshal(doc)
	require.NoError(t, err)

	Compute(doc)

	after, err := model.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}
