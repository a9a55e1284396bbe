package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/orthoxml/internal/testutil"
	"github.com/yumyai/orthoxml/pkg/model"
)

func parse(t *testing.T, text string) *model.Document {
	t.Helper()
	doc, err := model.Parse([]byte(text))
	require.NoError(t, err)
	return doc
}

func TestPairRows(t *testing.T) {
	doc := parse(t, testutil.Vertebrates)

	assert.Equal(t, [][]string{
		{"HUMAN1", "FISH1"},
		{"MOUSE1", "FISH1"},
		{"MOUSE2", "FISH1"},
		{"HUMAN1", "MOUSE1"},
		{"HUMAN1", "MOUSE2"},
		{"HUMAN2", "6"},
	}, PairRows(doc, "protId"))
}

func TestParalogsAreNotPaired(t *testing.T) {
	doc := parse(t, testutil.Vertebrates)
	for _, p := range OrthologPairs(doc) {
		pair := [2]string{doc.Genes[p.A].ID, doc.Genes[p.B].ID}
		assert.NotEqual(t, [2]string{"3", "4"}, pair)
		assert.NotEqual(t, [2]string{"4", "3"}, pair)
	}
}

func TestEveryPairOnce(t *testing.T) {
	// DeepClade has no paralog groups, so each of its 5 genes pairs with every other exactly once
	doc := parse(t, testutil.DeepClade)
	pairs := OrthologPairs(doc)
	require.Len(t, pairs, 10)

	seen := make(map[[2]int]bool)
	for _, p := range pairs {
		a, b := p.A, p.B
		if a > b {
			a, b = b, a
		}
		assert.False(t, seen[[2]int{a, b}], "duplicate pair %v", p)
		seen[[2]int{a, b}] = true
	}
}

func TestGroupRows(t *testing.T) {
	doc := parse(t, testutil.Vertebrates)

	assert.Equal(t, [][]string{
		{"H1", "4", "HUMAN1 MOUSE1 MOUSE2 FISH1"},
		{"H2", "2", "HUMAN2 6"},
	}, GroupRows(doc, "protId"))

	assert.Equal(t, [][]string{
		{"H1", "4", "1 3 4 5"},
		{"H2", "2", "2 6"},
	}, GroupRows(doc, "id"), "unknown attribute falls back to the internal id")
}
