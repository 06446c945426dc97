package synth

import "unicode"

// Unicode scalar value domain: every code point except the surrogates.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800

	// ScalarCount is the number of Unicode scalar values.
	ScalarCount = unicode.MaxRune + 1 - surrogateLen
)

const (
	// IncrementalBase is the scalar value incremental generation starts from
	// for '.' and negated classes (the first printable ASCII character).
	IncrementalBase = 32

	// DefaultSeed is the seed used when none is configured.
	DefaultSeed = 223554

	// SeedMix derives the second PCG word from the user seed.
	SeedMix = 0x9E3779B97F4A7C15
)

// Normal sampler parameters on the unit interval.
const (
	normalMean   = 0.5
	normalStdDev = 0.25
)

// scalarAt maps i in [0, ScalarCount) onto the scalar values in order,
// stepping over the surrogate block.
func scalarAt(i int) rune {
	if i >= surrogateMin {
		i += surrogateLen
	}
	return rune(i)
}
