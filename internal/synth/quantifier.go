package synth

import "github.com/KromDaniel/keysynth/internal/pattern"

// Repeat resolves a quantifier to a concrete count. Fixed quantifiers never
// touch the sampler; unbounded ones draw from [Min, Min+UnboundedWindow].
func Repeat(q pattern.Quantifier, s Sampler) int {
	lo := int(q.Min)
	switch {
	case q.Unbounded:
		return between(s, lo, lo+pattern.UnboundedWindow)
	case q.Max == q.Min:
		return lo
	}
	return between(s, lo, int(q.Max))
}
