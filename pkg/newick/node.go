// Package newick reads and writes Newick trees with NHX annotations,
// e.g. "(A:0.1[&&NHX:S=HUMAN],B[&&NHX:S=MOUSE])Mammals[&&NHX:D=N];".
package newick

import (
	"strconv"
	"strings"
)

// Annotation is one NHX key=value pair.
type Annotation struct {
	Key   string
	Value string
}

type Node struct {
	Name      string
	Length    float64
	HasLength bool
	NHX       []Annotation
	Children  []*Node
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Get returns the first NHX value stored under key.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.NHX {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Set replaces the NHX value under key or appends it.
func (n *Node) Set(key, value string) {
	for i := range n.NHX {
		if n.NHX[i].Key == key {
			n.NHX[i].Value = value
			return
		}
	}
	n.NHX = append(n.NHX, Annotation{Key: key, Value: value})
}

// Leaves lists leaf nodes left to right.
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// String formats the tree rooted at n, terminated by ';'.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	sb.WriteByte(';')
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if len(n.Children) > 0 {
		sb.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			c.write(sb)
		}
		sb.WriteByte(')')
	}
	sb.WriteString(QuoteLabel(n.Name))
	if n.HasLength {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(n.Length, 'g', -1, 64))
	}
	if len(n.NHX) > 0 {
		sb.WriteString("[&&NHX")
		for _, a := range n.NHX {
			sb.WriteByte(':')
			sb.WriteString(a.Key)
			sb.WriteByte('=')
			sb.WriteString(SanitizeValue(a.Value))
		}
		sb.WriteByte(']')
	}
}

const reserved = "()[]':;, \t\r\n"

// QuoteLabel single-quotes labels that contain Newick punctuation or blanks.
func QuoteLabel(s string) string {
	if s == "" || !strings.ContainsAny(s, reserved) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// SanitizeValue replaces the characters that delimit NHX fields.
func SanitizeValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '=', '[', ']':
			return '_'
		}
		return r
	}, s)
}
