// Package keyhash synthesizes hash functions specialized to a key pattern.
//
// Keys of a fixed-length pattern share their constant bytes, so only the
// bytes drawn from classes carry information. A Layout records which bits of
// each key byte can vary; Synthesize turns it into a Func that loads only the
// 8-byte windows covering those bytes.
package keyhash

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/KromDaniel/keysynth/internal/pattern"
)

const (
	// WindowSize is the width of one load, in bytes.
	WindowSize = 8

	// MaxKeySize bounds the layouts NewLayout builds.
	MaxKeySize = 4096
)

// ErrUnsupported is returned for patterns whose keys have no fixed byte layout.
var ErrUnsupported = errors.New("keysynth: pattern has no fixed byte layout")

// Layout is the byte shape shared by every key of a pattern.
type Layout struct {
	// Size is the key length in bytes.
	Size int

	// Masks holds, per byte, the bits that differ between keys.
	// Zero marks a constant byte.
	Masks []byte
}

// Range is a run of varying bytes.
type Range struct {
	Offset int
	Len    int
}

// NewLayout computes the layout of p. Every quantifier must be fixed, and
// every position must encode to the same number of UTF-8 bytes for all the
// runes it admits, which rules out '.' and negated classes.
func NewLayout(p *pattern.Pattern) (*Layout, error) {
	masks, err := layoutNodes(nil, p.Nodes)
	if err != nil {
		return nil, err
	}
	return &Layout{Size: len(masks), Masks: masks}, nil
}

func layoutNodes(out []byte, nodes []pattern.Node) ([]byte, error) {
	for i := range nodes {
		n := &nodes[i]
		if !n.Quantifier.Fixed() {
			return nil, fmt.Errorf("%w: variable quantifier %s", ErrUnsupported, n.Quantifier)
		}
		one, err := layoutNode(n)
		if err != nil {
			return nil, err
		}
		count := int(n.Quantifier.Min)
		if len(one) == 0 || count == 0 {
			continue
		}
		if count > (MaxKeySize-len(out))/len(one) {
			return nil, fmt.Errorf("%w: keys longer than %d bytes", ErrUnsupported, MaxKeySize)
		}
		for range count {
			out = append(out, one...)
		}
	}
	return out, nil
}

func layoutNode(n *pattern.Node) ([]byte, error) {
	switch n.Kind {
	case pattern.KindLiteral:
		return make([]byte, utf8.RuneLen(n.Rune)), nil
	case pattern.KindAny:
		return nil, fmt.Errorf("%w: '.' matches runes of any width", ErrUnsupported)
	case pattern.KindClass:
		if n.Class.Negated {
			return nil, fmt.Errorf("%w: negated class matches runes of any width", ErrUnsupported)
		}
		return classMasks(n.Class)
	case pattern.KindGroup:
		return layoutNodes(nil, n.Children)
	}
	return nil, nil
}

// classMasks returns, per encoded byte, the bits that are neither always
// set nor always clear across the members.
func classMasks(c *pattern.Class) ([]byte, error) {
	var buf [utf8.UTFMax]byte
	width := utf8.EncodeRune(buf[:], c.Members[0])
	ones := make([]byte, width)
	zeros := make([]byte, width)
	for j := range width {
		ones[j], zeros[j] = 0xFF, 0xFF
	}
	for _, r := range c.Members {
		if utf8.EncodeRune(buf[:], r) != width {
			return nil, fmt.Errorf("%w: class mixes runes of different UTF-8 widths", ErrUnsupported)
		}
		for j := range width {
			ones[j] &= buf[j]
			zeros[j] &^= buf[j]
		}
	}
	masks := make([]byte, width)
	for j := range width {
		masks[j] = ^(ones[j] | zeros[j])
	}
	return masks, nil
}

// Varying reports whether any key byte can change.
func (l *Layout) Varying() bool {
	for _, m := range l.Masks {
		if m != 0 {
			return true
		}
	}
	return false
}

// Specializable reports whether a synthesized hash beats the fallback: the
// key must be longer than one window and have varying bytes.
func (l *Layout) Specializable() bool {
	return l.Size > WindowSize && l.Varying()
}

// Ranges returns the maximal runs of varying bytes in order.
func (l *Layout) Ranges() []Range {
	var ranges []Range
	for i, m := range l.Masks {
		if m == 0 {
			continue
		}
		if n := len(ranges); n > 0 && ranges[n-1].Offset+ranges[n-1].Len == i {
			ranges[n-1].Len++
			continue
		}
		ranges = append(ranges, Range{Offset: i, Len: 1})
	}
	return ranges
}

// Windows returns the load offsets covering every varying byte. Windows
// start on the first uncovered varying byte; the last one is pulled back so
// it ends at Size. Requires Size >= WindowSize.
func (l *Layout) Windows() []int {
	ranges := l.Ranges()
	if len(ranges) == 0 || l.Size < WindowSize {
		return nil
	}

	var offsets []int
	cur := ranges[0].Offset
	for i := 0; i < len(ranges); {
		offsets = append(offsets, cur)
		cur += WindowSize
		for i < len(ranges) && cur >= ranges[i].Offset+ranges[i].Len {
			i++
		}
		if i < len(ranges) && ranges[i].Offset > cur {
			cur = ranges[i].Offset
		}
	}

	if last := len(offsets) - 1; offsets[last]+WindowSize > l.Size {
		offsets[last] = l.Size - WindowSize
	}
	return offsets
}
