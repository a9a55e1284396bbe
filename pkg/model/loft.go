package model

import "fmt"

// AssignLOFTIDs gives every ortholog group a hierarchical id. rootHOG n is
// HOG:%08d; a paralog group opens "<id>.<k>" (k counted per paralog depth
// inside the rootHOG) and its i-th child appends a base-26 letter suffix.
func AssignLOFTIDs(roots []*Group) {
	for i, root := range roots {
		dups := make(map[int]int)
		annotateLOFT(root, fmt.Sprintf("HOG:%08d", i+1), 0, dups)
	}
}

func annotateLOFT(g *Group, og string, depth int, dups map[int]int) {
	if g.Kind == Ortholog {
		g.ID = og
		for _, c := range g.Nodes {
			if sub, ok := c.(*Group); ok {
				annotateLOFT(sub, og, depth, dups)
			}
		}
		return
	}

	depth++
	dups[depth]++
	next := fmt.Sprintf("%s.%d", og, dups[depth])
	for i, c := range g.Nodes {
		if sub, ok := c.(*Group); ok {
			annotateLOFT(sub, paralogSuffix(next, i), depth, dups)
		}
	}
}

// paralogSuffix encodes nr as bijective base-26 letters: 0→a, 25→z, 26→aa.
func paralogSuffix(prefix string, nr int) string {
	var letters []byte
	for nr/26 > 0 {
		letters = append(letters, byte('a'+nr%26))
		nr = nr/26 - 1
	}
	letters = append(letters, byte('a'+nr%26))
	for l, r := 0, len(letters)-1; l < r; l, r = l+1, r-1 {
		letters[l], letters[r] = letters[r], letters[l]
	}
	return prefix + string(letters)
}
