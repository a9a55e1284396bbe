package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/orthoxml/internal/testutil"
	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/oxerr"
)

const score = "CompletenessScore"

func parse(t *testing.T, text string) *model.Document {
	t.Helper()
	doc, err := model.Parse([]byte(text))
	require.NoError(t, err)
	return doc
}

func shape(doc *model.Document, g *model.Group) string {
	var sb strings.Builder
	sb.WriteString(g.ID)
	sb.WriteString("(")
	for i, n := range g.Nodes {
		if i > 0 {
			sb.WriteString(",")
		}
		switch c := n.(type) {
		case *model.Group:
			sb.WriteString(shape(doc, c))
		case model.GeneRef:
			sb.WriteString(doc.Genes[c.Gene].ID)
		}
	}
	sb.WriteString(")")
	return sb.String()
}

func shapes(doc *model.Document) []string {
	var out []string
	for _, r := range doc.RootHOGs {
		out = append(out, shape(doc, r))
	}
	return out
}

func survivingGenes(doc *model.Document) int {
	n := 0
	for _, r := range doc.RootHOGs {
		n += len(r.GeneRefs())
	}
	return n
}

func TestRootLevelScenario(t *testing.T) {
	for _, strategy := range []Strategy{TopDown, BottomUp} {
		t.Run(strategy.String(), func(t *testing.T) {
			doc := parse(t, testutil.TwoRoots)

			out, err := Apply(doc, Options{ScoreName: score, Threshold: 0.6, Strategy: strategy})
			require.NoError(t, err)

			assert.Equal(t, []string{"H2(g3)"}, shapes(out))
			require.Len(t, out.Genes, 1)
			assert.Equal(t, "g3", out.Genes[0].ID)
		})
	}
}

func TestTopDownAndBottomUpDiverge(t *testing.T) {
	doc := parse(t, testutil.DeepClade)
	opts := Options{ScoreName: score, Threshold: 0.5}

	opts.Strategy = TopDown
	top, err := Apply(doc, opts)
	require.NoError(t, err)
	assert.Empty(t, top.RootHOGs, "failing root removes the whole rootHOG")
	assert.Empty(t, top.Genes)

	opts.Strategy = BottomUp
	bottom, err := Apply(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"R(M(D(a1,b1)),U(a2))"}, shapes(bottom))

	var ids []string
	for _, g := range bottom.Genes {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []string{"a1", "a2", "b1"}, ids)
}

func TestInclusiveThreshold(t *testing.T) {
	doc := parse(t, testutil.Vertebrates)

	out, err := Apply(doc, Options{ScoreName: score, Threshold: 0.9, Strategy: TopDown})
	require.NoError(t, err)
	assert.Equal(t, []string{"H1(5)"}, shapes(out))

	out, err = Apply(doc, Options{ScoreName: score, Threshold: 0.9000001, Strategy: TopDown})
	require.NoError(t, err)
	assert.Empty(t, out.RootHOGs)
}

func TestBottomUpKeepsQualifyingParent(t *testing.T) {
	doc := parse(t, testutil.Vertebrates)

	out, err := Apply(doc, Options{ScoreName: score, Threshold: 0.5, Strategy: BottomUp})
	require.NoError(t, err)

	// H1.1 fails but its unscored paralog child survives as its only member
	assert.Equal(t, []string{"H1(H1.1((3,4)),5)"}, shapes(out))
}

func TestIdempotent(t *testing.T) {
	for _, strategy := range []Strategy{TopDown, BottomUp} {
		for _, threshold := range []float64{0, 0.35, 0.5, 0.9, 1} {
			doc := parse(t, testutil.Vertebrates)
			opts := Options{ScoreName: score, Threshold: threshold, Strategy: strategy}

			once, err := Apply(doc, opts)
			require.NoError(t, err)
			twice, err := Apply(once, opts)
			require.NoError(t, err)

			assert.Equal(t, shapes(once), shapes(twice), "%s at %v", strategy, threshold)
			assert.Equal(t, len(once.Genes), len(twice.Genes))
		}
	}
}

func TestTopDownMonotone(t *testing.T) {
	for _, fixture := range []string{testutil.Vertebrates, testutil.DeepClade, testutil.TwoRoots} {
		doc := parse(t, fixture)
		prev := survivingGenes(doc)
		for _, threshold := range []float64{0, 0.1, 0.25, 0.3, 0.4, 0.5, 0.8, 0.9, 0.95, 2} {
			out, err := Apply(doc, Options{ScoreName: score, Threshold: threshold})
			require.NoError(t, err)
			n := survivingGenes(out)
			assert.LessOrEqual(t, n, prev, "threshold %v", threshold)
			prev = n
		}
	}
}

func TestOriginalUntouched(t *testing.T) {
	doc := parse(t, testutil.Vertebrates)
	before := shapes(doc)

	_, err := Apply(doc, Options{ScoreName: score, Threshold: 0.95, Strategy: BottomUp})
	require.NoError(t, err)

	assert.Equal(t, before, shapes(doc))
	assert.Len(t, doc.Genes, 6)
}

func TestAbsentScore(t *testing.T) {
	doc := parse(t, testutil.Vertebrates)

	out, err := Apply(doc, Options{ScoreName: "NoSuchScore", Threshold: 10})
	require.NoError(t, err)
	assert.Equal(t, shapes(doc), shapes(out), "absent score keeps everything")

	_, err = Apply(doc, Options{ScoreName: "NoSuchScore", Threshold: 10, Strict: true})
	assert.ErrorIs(t, err, oxerr.ErrUnknownScoreName)

	_, err = Apply(doc, Options{ScoreName: score, Threshold: 10, Strict: true})
	assert.NoError(t, err)
}

func TestNaNScoreDoesNotQualify(t *testing.T) {
	doc := parse(t, strings.Replace(testutil.TwoRoots, `value="0.5"`, `value="NaN"`, 1))
	assert.False(t, HasScore(doc, score))

	_, err := Apply(doc, Options{ScoreName: score, Threshold: 1e9, Strict: true})
	assert.ErrorIs(t, err, oxerr.ErrUnknownScoreName)
}

func TestOrphanGenesKept(t *testing.T) {
	text := strings.Replace(testutil.TwoRoots, `<gene id="g2" protId="B2"/>`,
		`<gene id="g2" protId="B2"/>
        <gene id="orphan" protId="B9"/>`, 1)
	doc := parse(t, text)

	out, err := Apply(doc, Options{ScoreName: score, Threshold: 0.6})
	require.NoError(t, err)

	var ids []string
	for _, g := range out.Genes {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"g3", "orphan"}, ids)
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"topdown", TopDown, false},
		{"bottomup", BottomUp, false},
		{"BottomUp", BottomUp, false},
		{"", TopDown, false},
		{"reparent", TopDown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
