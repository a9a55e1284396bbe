package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/orthoxml/internal/testutil"
	"github.com/yumyai/orthoxml/pkg/oxerr"
)

func TestValidFixtures(t *testing.T) {
	for _, fixture := range []string{testutil.Vertebrates, testutil.TwoRoots, testutil.DeepClade} {
		assert.NoError(t, Check([]byte(fixture)))
	}
}

func TestOlderVersionsAndNotes(t *testing.T) {
	text := strings.Replace(testutil.TwoRoots, `version="0.5"`, `version="0.3"`, 1)
	text = strings.Replace(text, `<orthologGroup id="H2">`,
		`<orthologGroup id="H2">
      <notes><anything at="all">free text</anything></notes>`, 1)
	assert.NoError(t, Check([]byte(text)))
}

func TestViolations(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		msg  string
	}{
		{
			name: "non-numeric score",
			text: testutil.BadScore,
			line: 16,
			msg:  `score value "n/a" is not a number`,
		},
		{
			name: "NaN score",
			text: strings.Replace(testutil.BadScore, `value="n/a"`, `value="NaN"`, 1),
			line: 16,
			msg:  `score value "NaN" is not a number`,
		},
		{
			name: "infinite score",
			text: strings.Replace(testutil.BadScore, `value="n/a"`, `value="-Inf"`, 1),
			line: 16,
			msg:  `score value "-Inf" is not a number`,
		},
		{
			name: "unsupported version",
			text: strings.Replace(testutil.TwoRoots, `version="0.5"`, `version="0.9"`, 1),
			line: 2,
			msg:  `unsupported orthoXML version "0.9"`,
		},
		{
			name: "unknown element in group",
			text: strings.Replace(testutil.TwoRoots, `<geneRef id="g3"/>`, `<geneRef id="g3"/><member id="g3"/>`, 1),
			msg:  "<member> is not allowed in <orthologGroup>",
		},
		{
			name: "gene without id",
			text: strings.Replace(testutil.TwoRoots, `<gene id="g2" protId="B2"/>`, `<gene protId="B2"/>`, 1),
			msg:  `<gene> is missing attribute "id"`,
		},
		{
			name: "taxon without name",
			text: strings.Replace(testutil.TwoRoots, `<taxon id="2" name="speciesB"/>`, `<taxon id="2"/>`, 1),
			msg:  `<taxon> is missing attribute "name"`,
		},
		{
			name: "no groups",
			text: testutil.TwoRoots[:strings.Index(testutil.TwoRoots, "<groups>")] + "</orthoXML>\n",
			msg:  "<orthoXML> has no <groups>",
		},
		{
			name: "wrong root",
			text: `<?xml version="1.0"?><phyloxml version="0.5"/>`,
			line: 1,
			msg:  "root element is <phyloxml>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check([]byte(tt.text))
			require.Error(t, err)
			assert.ErrorIs(t, err, oxerr.ErrSchemaViolation)
			assert.Contains(t, err.Error(), tt.msg)
			if tt.line > 0 {
				var e *oxerr.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.line, e.Line)
			}
		})
	}
}

func TestNotWellFormed(t *testing.T) {
	err := Check([]byte("<orthoXML version=\"0.5\">\n<groups>\n</orthoXML>"))
	assert.ErrorIs(t, err, oxerr.ErrMalformedDocument)
}
