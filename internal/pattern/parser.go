package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// parser is a recursive-descent scanner over the runes of one pattern.
type parser struct {
	source string
	input  []rune
	pos    int
}

// Parse compiles a pattern string into its syntax tree. Any malformed input
// is reported as a *SyntaxError and no partial tree is returned.
func Parse(s string) (*Pattern, error) {
	p := &parser{source: s, input: []rune(s)}
	nodes, err := p.parseSequence(0, 0)
	if err != nil {
		return nil, err
	}
	return &Pattern{Source: s, Nodes: nodes}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level pattern tables.
func MustParse(s string) *Pattern {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{Pattern: p.source, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// parseSequence parses siblings until the input ends or, when depth > 0,
// until the ')' closing the group opened at offset open.
func (p *parser) parseSequence(depth, open int) ([]Node, error) {
	var nodes []Node
	quantified := false

	for p.pos < len(p.input) {
		start := p.pos
		ch := p.input[p.pos]
		p.pos++

		switch ch {
		case '\\':
			if p.pos >= len(p.input) {
				return nil, p.errorf(start, "trailing backslash")
			}
			nodes = append(nodes, Node{Kind: KindLiteral, Rune: p.input[p.pos], Quantifier: One})
			p.pos++

		case '[':
			class, err := p.parseClass(start)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Kind: KindClass, Class: class, Quantifier: One})

		case '(':
			if depth >= MaxDepth {
				return nil, p.errorf(start, "groups nested deeper than %d", MaxDepth)
			}
			children, err := p.parseSequence(depth+1, start)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Kind: KindGroup, Children: children, Quantifier: One})

		case ')':
			if depth == 0 {
				return nil, p.errorf(start, "unmatched ')'")
			}
			return nodes, nil

		case '.':
			nodes = append(nodes, Node{Kind: KindAny, Quantifier: One})

		case '+', '*', '?', '{':
			if len(nodes) == 0 {
				return nil, p.errorf(start, "quantifier %q has no preceding element", ch)
			}
			if quantified {
				return nil, p.errorf(start, "duplicate quantifier %q", ch)
			}
			q, err := p.parseQuantifier(ch, start)
			if err != nil {
				return nil, err
			}
			nodes[len(nodes)-1].Quantifier = q
			quantified = true
			continue

		default:
			nodes = append(nodes, Node{Kind: KindLiteral, Rune: ch, Quantifier: One})
		}
		quantified = false
	}

	if depth > 0 {
		return nil, p.errorf(open, "unterminated group")
	}
	return nodes, nil
}

// parseQuantifier decodes the quantifier token ch found at offset start.
// For '{' the brace body is consumed up to the closing '}'.
func (p *parser) parseQuantifier(ch rune, start int) (Quantifier, error) {
	switch ch {
	case '+':
		return Quantifier{Min: 1, Unbounded: true}, nil
	case '*':
		return Quantifier{Min: 0, Unbounded: true}, nil
	case '?':
		return Quantifier{Min: 0, Max: 1}, nil
	}

	end := p.pos
	for end < len(p.input) && p.input[end] != '}' {
		end++
	}
	if end >= len(p.input) {
		return Quantifier{}, p.errorf(start, "missing '}'")
	}
	body := string(p.input[p.pos:end])
	p.pos = end + 1

	lo, hi, ranged := strings.Cut(body, ",")
	minCount, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 32)
	if err != nil {
		return Quantifier{}, p.errorf(start, "invalid repetition {%s}", body)
	}
	if !ranged {
		return Quantifier{Min: uint32(minCount), Max: uint32(minCount)}, nil
	}

	hi = strings.TrimSpace(hi)
	if hi == "" {
		return Quantifier{Min: uint32(minCount), Unbounded: true}, nil
	}
	maxCount, err := strconv.ParseUint(hi, 10, 32)
	if err != nil {
		return Quantifier{}, p.errorf(start, "invalid repetition {%s}", body)
	}
	if maxCount < minCount {
		return Quantifier{}, p.errorf(start, "repetition {%s} has max below min", body)
	}
	return Quantifier{Min: uint32(minCount), Max: uint32(maxCount)}, nil
}
