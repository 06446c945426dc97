package pattern

import "unicode/utf8"

// classIndexThreshold is the member count above which a class keeps a hash
// index for Contains instead of scanning Members.
const classIndexThreshold = 16

// classBuilder accumulates class members in first-seen order.
type classBuilder struct {
	members []rune
	seen    map[rune]struct{}
	last    rune
	hasLast bool
}

func (b *classBuilder) add(r rune) {
	b.last, b.hasLast = r, true
	if !utf8.ValidRune(r) {
		return
	}
	if _, dup := b.seen[r]; dup {
		return
	}
	b.seen[r] = struct{}{}
	b.members = append(b.members, r)
}

// addRange appends lo..hi inclusive, skipping surrogate code points.
func (b *classBuilder) addRange(lo, hi rune) {
	for r := lo; r <= hi; r++ {
		b.add(r)
	}
}

// parseClass compiles a bracket body. p.pos points just past the '[' found
// at offset start.
func (p *parser) parseClass(start int) (*Class, error) {
	b := classBuilder{seen: make(map[rune]struct{})}
	negated := false
	if p.pos < len(p.input) && p.input[p.pos] == '^' {
		negated = true
		p.pos++
	}

	for {
		if p.pos >= len(p.input) {
			return nil, p.errorf(start, "missing ']'")
		}
		at := p.pos
		ch := p.input[p.pos]
		p.pos++

		switch {
		case ch == ']':
			if len(b.members) == 0 && !negated {
				return nil, p.errorf(start, "empty character class")
			}
			class := &Class{Members: b.members, Negated: negated}
			if len(b.members) > classIndexThreshold {
				class.index = b.seen
			}
			return class, nil

		case ch == '\\':
			r, err := p.classEscape(at)
			if err != nil {
				return nil, err
			}
			b.add(r)

		case ch == '-' && b.hasLast && p.pos < len(p.input) && p.input[p.pos] != ']':
			lo := b.last
			hi := p.input[p.pos]
			p.pos++
			if hi == '\\' {
				r, err := p.classEscape(p.pos - 1)
				if err != nil {
					return nil, err
				}
				hi = r
			}
			if hi < lo {
				return nil, p.errorf(at, "invalid range %q-%q", lo, hi)
			}
			b.addRange(lo, hi)

		default:
			b.add(ch)
		}
	}
}

// classEscape reads the rune escaped by the backslash at offset at.
func (p *parser) classEscape(at int) (rune, error) {
	if p.pos >= len(p.input) {
		return 0, p.errorf(at, "trailing backslash")
	}
	r := p.input[p.pos]
	p.pos++
	return r, nil
}
