package convert

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/yumyai/orthoxml/pkg/model"
	"github.com/yumyai/orthoxml/pkg/oxerr"
)

// taxonUnion merges taxon labels from several trees into one forest.
// Indices follow first-seen order and become the taxon ids (1-based).
//
// Placements are only collected while the trees are read. build decides
// the parent of every taxon once all trees are in, so the result does not
// depend on the order of the trees.
type taxonUnion struct {
	names []string
	index map[string]int

	// above[x] holds every label seen on a path above x.
	above []map[int]bool
	// species[x] holds the species taxa of the genes seen below x.
	species []map[int]bool
}

func newTaxonUnion() *taxonUnion {
	return &taxonUnion{index: make(map[string]int)}
}

func (u *taxonUnion) taxon(name string) int {
	if i, ok := u.index[name]; ok {
		return i
	}
	i := len(u.names)
	u.names = append(u.names, name)
	u.above = append(u.above, make(map[int]bool))
	u.species = append(u.species, make(map[int]bool))
	u.index[name] = i
	return i
}

// observe records that the labels of path lie above x. Labels equal to x
// are repeats of the same clade and are skipped.
func (u *taxonUnion) observe(x int, path []int) {
	for _, a := range path {
		if a != x {
			u.above[x][a] = true
		}
	}
}

// observeSpecies records a gene of species s below the labels of path.
func (u *taxonUnion) observeSpecies(s int, path []int) {
	for _, a := range path {
		if a != s {
			u.species[a][s] = true
		}
	}
}

// closure returns, per taxon, every taxon transitively above it.
func (u *taxonUnion) closure() []map[int]bool {
	anc := make([]map[int]bool, len(u.names))
	for x := range u.names {
		seen := make(map[int]bool)
		stack := make([]int, 0, len(u.above[x]))
		for a := range u.above[x] {
			stack = append(stack, a)
		}
		for len(stack) > 0 {
			a := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[a] {
				continue
			}
			seen[a] = true
			for b := range u.above[a] {
				stack = append(stack, b)
			}
		}
		anc[x] = seen
	}
	return anc
}

// below is every species seen under t or under any taxon known to lie
// below t.
func (u *taxonUnion) below(t int, anc []map[int]bool) map[int]bool {
	out := maps.Clone(u.species[t])
	for x := range u.names {
		if anc[x][t] {
			maps.Copy(out, u.species[x])
		}
	}
	return out
}

// resolve makes the ancestors of every taxon a single lineage. Two
// unrelated labels above the same taxon are ordered by the species seen
// below them: the one holding strictly more species goes on top. When
// neither holds the other, the placement is ambiguous and fails.
func (u *taxonUnion) resolve() ([]map[int]bool, error) {
	for {
		anc := u.closure()
		for x := range u.names {
			for _, a := range sorted(anc[x]) {
				if anc[a][x] {
					return nil, oxerr.New(oxerr.ErrTaxonomyConflict,
						"taxon %q appears both above and below %q", u.names[x], u.names[a])
				}
			}
		}

		p, q, found := u.unordered(anc)
		if !found {
			return anc, nil
		}
		sp, sq := u.below(p, anc), u.below(q, anc)
		switch {
		case contains(sp, sq):
			u.above[q][p] = true
		case contains(sq, sp):
			u.above[p][q] = true
		default:
			x := u.witness(anc, p, q)
			return nil, oxerr.New(oxerr.ErrTaxonomyConflict, "taxon %q placed under both %q and %q",
				u.names[x], u.names[p], u.names[q])
		}
	}
}

// unordered finds the first pair of taxa that are both above one taxon
// without either being above the other.
func (u *taxonUnion) unordered(anc []map[int]bool) (int, int, bool) {
	for x := range u.names {
		as := sorted(anc[x])
		for i, p := range as {
			for _, q := range as[i+1:] {
				if !anc[p][q] && !anc[q][p] {
					return p, q, true
				}
			}
		}
	}
	return 0, 0, false
}

func (u *taxonUnion) witness(anc []map[int]bool, p, q int) int {
	for x := range u.names {
		if anc[x][p] && anc[x][q] {
			return x
		}
	}
	return p
}

// build converts the union into a taxonomy. Several roots are joined under
// a synthetic "Root". The returned slice maps union index to taxonomy index.
func (u *taxonUnion) build() (*model.Taxonomy, []int, error) {
	anc, err := u.resolve()
	if err != nil {
		return nil, nil, err
	}

	// the parent is the lowest ancestor, the one with the most ancestors itself
	children := make([][]int, len(u.names))
	var roots []int
	for x := range u.names {
		parent := -1
		for _, a := range sorted(anc[x]) {
			if parent < 0 || len(anc[a]) > len(anc[parent]) {
				parent = a
			}
		}
		if parent < 0 {
			roots = append(roots, x)
		} else {
			children[parent] = append(children[parent], x)
		}
	}

	tax := model.NewTaxonomy()
	pos := make([]int, len(u.names))
	var add func(i, parent int)
	add = func(i, parent int) {
		pos[i] = tax.Add(strconv.Itoa(i+1), u.names[i], parent)
		for _, c := range children[i] {
			add(c, pos[i])
		}
	}

	top := -1
	if len(roots) > 1 {
		top = tax.Add(strconv.Itoa(len(u.names)+1), u.syntheticRootName(), -1)
	}
	for _, r := range roots {
		add(r, top)
	}
	return tax, pos, nil
}

func (u *taxonUnion) syntheticRootName() string {
	name := "Root"
	for n := 1; ; n++ {
		if _, taken := u.index[name]; !taken {
			return name
		}
		name = fmt.Sprintf("Root_%d", n)
	}
}

// contains reports whether a is a strict superset of b.
func contains(a, b map[int]bool) bool {
	if len(a) <= len(b) {
		return false
	}
	for k := range b {
		if !a[k] {
			return false
		}
	}
	return true
}

func sorted(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
