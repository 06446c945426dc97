package pattern

import (
	"math"
	"math/bits"
	"sort"
	"unicode/utf8"
)

// Analysis summarizes what a pattern can produce.
type Analysis struct {
	// MinLen is the fewest runes any generated key has.
	MinLen int

	// MaxLen is the most runes any generated key has. Unbounded quantifiers
	// count with their generation window (Min + UnboundedWindow).
	MaxLen int

	// Unbounded is set when the pattern uses '+', '*' or '{n,}'.
	Unbounded bool

	// Enumerable is set when incremental generation is a bijection over
	// [0, Cardinality): only fixed quantifiers, no '.' and no negated classes.
	Enumerable bool

	// Cardinality is the number of distinct keys the pattern enumerates,
	// saturating at math.MaxUint64. Zero when the pattern is not Enumerable.
	Cardinality uint64

	// Labels name the grammar features in use, sorted alphabetically.
	Labels []string
}

type shape struct {
	minLen, maxLen int
	card           uint64
	enumerable     bool
}

// Analyze walks the tree once and reports its length bounds, enumeration
// size and feature labels.
func Analyze(p *Pattern) Analysis {
	features := make(map[string]bool)
	s := analyzeNodes(p.Nodes, features)

	if hasMultibyte(p.Source) {
		features["Multibyte"] = true
	}

	labels := make([]string, 0, len(features))
	for l := range features {
		labels = append(labels, l)
	}
	if len(labels) == 0 {
		labels = append(labels, "Simple")
	}
	sort.Strings(labels)

	a := Analysis{
		MinLen:     s.minLen,
		MaxLen:     s.maxLen,
		Unbounded:  features["Unbounded"],
		Enumerable: s.enumerable,
		Labels:     labels,
	}
	if s.enumerable {
		a.Cardinality = s.card
	}
	return a
}

func analyzeNodes(nodes []Node, features map[string]bool) shape {
	total := shape{card: 1, enumerable: true}
	for i := range nodes {
		s := analyzeNode(&nodes[i], features)
		total.minLen = satAdd(total.minLen, s.minLen)
		total.maxLen = satAdd(total.maxLen, s.maxLen)
		total.card = satMul64(total.card, s.card)
		total.enumerable = total.enumerable && s.enumerable
	}
	return total
}

func analyzeNode(n *Node, features map[string]bool) shape {
	var one shape
	switch n.Kind {
	case KindLiteral:
		features["Literal"] = true
		one = shape{minLen: 1, maxLen: 1, card: 1, enumerable: true}
	case KindAny:
		features["AnyChar"] = true
		one = shape{minLen: 1, maxLen: 1, card: 1}
	case KindClass:
		if n.Class.Negated {
			features["NegatedClass"] = true
			one = shape{minLen: 1, maxLen: 1, card: 1}
		} else {
			features["CharClass"] = true
			one = shape{minLen: 1, maxLen: 1, card: uint64(len(n.Class.Members)), enumerable: true}
		}
	case KindGroup:
		features["Group"] = true
		one = analyzeNodes(n.Children, features)
	}

	q := n.Quantifier
	if q != One {
		features["Quantifiers"] = true
	}
	maxCount := int(q.Max)
	if q.Unbounded {
		features["Unbounded"] = true
		maxCount = int(q.Min) + UnboundedWindow
	}

	return shape{
		minLen:     satMul(one.minLen, int(q.Min)),
		maxLen:     satMul(one.maxLen, maxCount),
		card:       satPow64(one.card, q.Min),
		enumerable: one.enumerable && q.Fixed(),
	}
}

func hasMultibyte(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

func satAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

func satMul64(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func satPow64(base uint64, exp uint32) uint64 {
	if exp == 0 {
		return 1
	}
	if base <= 1 {
		return base
	}
	result := uint64(1)
	for ; exp > 0; exp-- {
		result = satMul64(result, base)
		if result == math.MaxUint64 || result == 0 {
			break
		}
	}
	return result
}
