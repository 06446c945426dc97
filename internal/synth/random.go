package synth

import (
	"strings"

	"github.com/KromDaniel/keysynth/internal/pattern"
)

// Generator produces random keys. All randomness comes from its Sampler.
type Generator struct {
	sampler Sampler
}

// NewGenerator returns a Generator drawing from s.
func NewGenerator(s Sampler) *Generator {
	return &Generator{sampler: s}
}

// Generate returns one random key matching p.
func (g *Generator) Generate(p *pattern.Pattern) (string, error) {
	var b strings.Builder
	if err := g.writeNodes(&b, p.Nodes); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Emit implements Emitter; the sequence number is ignored.
func (g *Generator) Emit(p *pattern.Pattern, _ uint64) (string, error) {
	return g.Generate(p)
}

func (g *Generator) writeNodes(b *strings.Builder, nodes []pattern.Node) error {
	for i := range nodes {
		n := &nodes[i]
		count := Repeat(n.Quantifier, g.sampler)
		for range count {
			if err := g.writeNode(b, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) writeNode(b *strings.Builder, n *pattern.Node) error {
	switch n.Kind {
	case pattern.KindLiteral:
		b.WriteRune(n.Rune)

	case pattern.KindAny:
		b.WriteRune(scalarAt(g.sampler.IntN(ScalarCount)))

	case pattern.KindClass:
		if !n.Class.Negated {
			b.WriteRune(n.Class.Members[g.sampler.IntN(len(n.Class.Members))])
			return nil
		}
		if err := admissible(n.Class); err != nil {
			return err
		}
		b.WriteRune(pickExcluded(n.Class, g.sampler.IntN(ScalarCount)))

	case pattern.KindGroup:
		return g.writeNodes(b, n.Children)
	}
	return nil
}
