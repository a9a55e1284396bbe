// Package split partitions a document into one document per rootHOG.
package split

import (
	"fmt"

	"github.com/yumyai/orthoxml/pkg/model"
)

// ByRootHOG returns one document per rootHOG in source order. Each keeps
// the full taxonomy and only the genes reachable from its rootHOG.
func ByRootHOG(doc *model.Document) []*model.Document {
	out := make([]*model.Document, 0, len(doc.RootHOGs))
	for _, r := range doc.RootHOGs {
		reachable := doc.ReferencedGenes([]*model.Group{r})
		out = append(out, doc.Derive([]*model.Group{r.Clone()}, func(i int) bool { return reachable[i] }))
	}
	return out
}

// FileName is the conventional name of the n-th (1-based) split of base.
func FileName(n int, base string) string {
	return fmt.Sprintf("%d_%s", n, base)
}
