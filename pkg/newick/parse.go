package newick

import (
	"strconv"
	"strings"

	"github.com/yumyai/orthoxml/pkg/oxerr"
)

// Parse reads every ';'-terminated tree in text. The terminator of the
// last tree may be omitted.
func Parse(text string) ([]*Node, error) {
	p := &parser{s: text, line: 1}
	var trees []*Node
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() == ';' {
			return nil, p.errorf("empty tree")
		}
		n, err := p.subtree()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.eof() {
			if p.peek() != ';' {
				return nil, p.errorf("unexpected %q after tree", p.peek())
			}
			p.pos++
		}
		trees = append(trees, n)
	}
	if len(trees) == 0 {
		return nil, oxerr.New(oxerr.ErrMalformedDocument, "no tree found")
	}
	return trees, nil
}

type parser struct {
	s    string
	pos  int
	line int
}

func (p *parser) eof() bool  { return p.pos >= len(p.s) }
func (p *parser) peek() byte { return p.s[p.pos] }

func (p *parser) errorf(format string, args ...any) error {
	return oxerr.AtLine(oxerr.ErrMalformedDocument, p.line, format, args...)
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case '\n':
			p.line++
		case ' ', '\t', '\r':
		default:
			return
		}
		p.pos++
	}
}

func (p *parser) subtree() (*Node, error) {
	p.skipSpace()
	n := &Node{}
	if !p.eof() && p.peek() == '(' {
		p.pos++
		for {
			c, err := p.subtree()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)
			p.skipSpace()
			if p.eof() {
				return nil, p.errorf("unbalanced parentheses")
			}
			ch := p.peek()
			p.pos++
			if ch == ')' {
				break
			}
			if ch != ',' {
				return nil, p.errorf("expected ',' or ')', got %q", ch)
			}
		}
	}

	p.skipSpace()
	name, err := p.label()
	if err != nil {
		return nil, err
	}
	n.Name = name

	// length and comments may come in either order
	for {
		p.skipSpace()
		if p.eof() {
			return n, nil
		}
		switch p.peek() {
		case ':':
			p.pos++
			p.skipSpace()
			start := p.pos
			for !p.eof() && !strings.ContainsRune("()[],;: \t\r\n", rune(p.peek())) {
				p.pos++
			}
			v, err := strconv.ParseFloat(p.s[start:p.pos], 64)
			if err != nil {
				return nil, p.errorf("bad branch length %q", p.s[start:p.pos])
			}
			n.Length, n.HasLength = v, true
		case '[':
			if err := p.comment(n); err != nil {
				return nil, err
			}
		default:
			return n, nil
		}
	}
}

func (p *parser) label() (string, error) {
	if p.eof() {
		return "", nil
	}
	if p.peek() != '\'' {
		start := p.pos
		for !p.eof() && !strings.ContainsRune(reserved, rune(p.peek())) {
			p.pos++
		}
		return p.s[start:p.pos], nil
	}

	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated quoted label")
		}
		ch := p.peek()
		p.pos++
		if ch == '\'' {
			// '' is an escaped quote
			if !p.eof() && p.peek() == '\'' {
				p.pos++
				sb.WriteByte('\'')
				continue
			}
			return sb.String(), nil
		}
		if ch == '\n' {
			p.line++
		}
		sb.WriteByte(ch)
	}
}

// comment consumes a bracketed comment; only NHX comments are kept.
func (p *parser) comment(n *Node) error {
	end := strings.IndexByte(p.s[p.pos:], ']')
	if end < 0 {
		return p.errorf("unterminated comment")
	}
	body := p.s[p.pos+1 : p.pos+end]
	p.line += strings.Count(body, "\n")
	p.pos += end + 1

	rest, ok := strings.CutPrefix(body, "&&NHX")
	if !ok {
		return nil
	}
	for _, field := range strings.Split(rest, ":") {
		if field == "" {
			continue
		}
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return p.errorf("NHX field %q is not key=value", field)
		}
		n.NHX = append(n.NHX, Annotation{Key: k, Value: v})
	}
	return nil
}
