// Package pattern implements the key pattern grammar: a small regular
// expression dialect (literals, '.', bracket classes, groups and quantifiers)
// compiled into an immutable syntax tree that generators walk.
package pattern

import (
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Node.
type Kind uint8

const (
	// KindLiteral emits a single fixed rune.
	KindLiteral Kind = iota
	// KindAny emits any Unicode scalar value ('.').
	KindAny
	// KindClass emits a rune from (or outside of) a bracket class.
	KindClass
	// KindGroup emits a nested pattern ('(...)').
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindAny:
		return "Any"
	case KindClass:
		return "Class"
	case KindGroup:
		return "Group"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Quantifier is the repetition bound attached to every node.
// When Unbounded is false, Min <= Max holds.
type Quantifier struct {
	Min       uint32
	Max       uint32
	Unbounded bool
}

// One is the implicit quantifier of a node written without one.
var One = Quantifier{Min: 1, Max: 1}

// Fixed reports whether the quantifier always resolves to the same count.
func (q Quantifier) Fixed() bool {
	return !q.Unbounded && q.Min == q.Max
}

func (q Quantifier) String() string {
	switch {
	case q == One:
		return ""
	case q.Unbounded && q.Min == 0:
		return "*"
	case q.Unbounded && q.Min == 1:
		return "+"
	case q.Unbounded:
		return "{" + strconv.FormatUint(uint64(q.Min), 10) + ",}"
	case q.Min == 0 && q.Max == 1:
		return "?"
	case q.Min == q.Max:
		return "{" + strconv.FormatUint(uint64(q.Min), 10) + "}"
	}
	return "{" + strconv.FormatUint(uint64(q.Min), 10) + "," + strconv.FormatUint(uint64(q.Max), 10) + "}"
}

// Class is a compiled bracket expression.
type Class struct {
	// Members is ordered by first appearance and holds no duplicates.
	Members []rune
	// Negated is set for '[^...]' classes.
	Negated bool

	index map[rune]struct{}
}

// Contains reports whether r is listed in the class body,
// regardless of negation.
func (c *Class) Contains(r rune) bool {
	if c.index != nil {
		_, ok := c.index[r]
		return ok
	}
	return slices.Contains(c.Members, r)
}

// Node is one grammar element with its quantifier.
type Node struct {
	Kind       Kind
	Rune       rune     // KindLiteral
	Class      *Class   // KindClass
	Children   []Node   // KindGroup
	Quantifier Quantifier
}

// Pattern is a compiled key pattern. It is never mutated after Parse returns
// and may be shared freely between generators.
type Pattern struct {
	Source string
	Nodes  []Node
}

// Equal reports whether two patterns have the same structure.
// The source strings are not compared.
func (p *Pattern) Equal(o *Pattern) bool {
	if p == nil || o == nil {
		return p == o
	}
	return nodesEqual(p.Nodes, o.Nodes)
}

func nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two nodes have the same structure.
func (n *Node) Equal(o *Node) bool {
	if n.Kind != o.Kind || n.Quantifier != o.Quantifier {
		return false
	}
	switch n.Kind {
	case KindLiteral:
		return n.Rune == o.Rune
	case KindClass:
		return n.Class.Negated == o.Class.Negated && slices.Equal(n.Class.Members, o.Class.Members)
	case KindGroup:
		return nodesEqual(n.Children, o.Children)
	}
	return true
}

// String renders the tree in a canonical form, used by verbose logging.
func (p *Pattern) String() string {
	var b strings.Builder
	writeNodes(&b, p.Nodes)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node) {
	for i := range nodes {
		n := &nodes[i]
		switch n.Kind {
		case KindLiteral:
			if strings.ContainsRune(metaRunes, n.Rune) {
				b.WriteByte('\\')
			}
			b.WriteRune(n.Rune)
		case KindAny:
			b.WriteByte('.')
		case KindClass:
			b.WriteByte('[')
			if n.Class.Negated {
				b.WriteByte('^')
			}
			for _, r := range n.Class.Members {
				if strings.ContainsRune(classMetaRunes, r) {
					b.WriteByte('\\')
				}
				b.WriteRune(r)
			}
			b.WriteByte(']')
		case KindGroup:
			b.WriteByte('(')
			writeNodes(b, n.Children)
			b.WriteByte(')')
		}
		b.WriteString(n.Quantifier.String())
	}
}
