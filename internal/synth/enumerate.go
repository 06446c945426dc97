package synth

import (
	"slices"

	"github.com/KromDaniel/keysynth/internal/pattern"
)

// Enumerator maps sequence numbers to keys by mixed-radix decoding: nodes
// are visited right to left and each positive class takes one digit of the
// index in base len(Members).
//
// '.' and negated classes do not decode a digit. They offset
// IncrementalBase by the remaining index and step it down, so for patterns
// using them the mapping from index to key is not a bijection. Variable
// quantifiers draw their counts from the sampler, which makes key length
// independent of the index.
type Enumerator struct {
	counts Sampler
}

// NewEnumerator returns an Enumerator resolving variable repeat counts with s.
func NewEnumerator(s Sampler) *Enumerator {
	return &Enumerator{counts: s}
}

// Generate returns the key for index.
func (e *Enumerator) Generate(p *pattern.Pattern, index uint64) (string, error) {
	out, err := e.appendNodes(nil, p.Nodes, NewCounter(index))
	if err != nil {
		return "", err
	}
	slices.Reverse(out)
	return string(out), nil
}

// Emit implements Emitter; seq is the enumeration index.
func (e *Enumerator) Emit(p *pattern.Pattern, seq uint64) (string, error) {
	return e.Generate(p, seq)
}

// appendNodes appends the output of nodes to out in reverse order.
func (e *Enumerator) appendNodes(out []rune, nodes []pattern.Node, c *Counter) ([]rune, error) {
	var err error
	for i := len(nodes) - 1; i >= 0; i-- {
		n := &nodes[i]
		count := Repeat(n.Quantifier, e.counts)
		for range count {
			if out, err = e.appendNode(out, n, c); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (e *Enumerator) appendNode(out []rune, n *pattern.Node, c *Counter) ([]rune, error) {
	switch n.Kind {
	case pattern.KindLiteral:
		return append(out, n.Rune), nil

	case pattern.KindAny:
		return append(out, scalarAt(offsetIndex(c))), nil

	case pattern.KindClass:
		if !n.Class.Negated {
			return append(out, n.Class.Members[c.Consume(len(n.Class.Members))]), nil
		}
		if err := admissible(n.Class); err != nil {
			return nil, err
		}
		return append(out, pickExcluded(n.Class, offsetIndex(c))), nil

	case pattern.KindGroup:
		return e.appendNodes(out, n.Children, c)
	}
	return out, nil
}

// offsetIndex is the scalar index IncrementalBase + c.Step(), wrapped into
// the scalar domain.
func offsetIndex(c *Counter) int {
	return int((IncrementalBase + c.Step()%ScalarCount) % ScalarCount)
}
