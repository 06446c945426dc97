package synth

import "math/rand/v2"

// Sampler draws integers for repeat counts and character choices.
type Sampler interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type uniformSampler struct {
	rng *rand.Rand
}

// UniformSampler draws every value in [0, n) with equal probability.
func UniformSampler(rng *rand.Rand) Sampler {
	return uniformSampler{rng: rng}
}

func (s uniformSampler) IntN(n int) int {
	return s.rng.IntN(n)
}

type normalSampler struct {
	rng *rand.Rand
}

// NormalSampler draws from N(0.5, 0.25) on the unit interval and scales the
// result to [0, n). Samples outside the interval are clamped, never redrawn.
func NormalSampler(rng *rand.Rand) Sampler {
	return normalSampler{rng: rng}
}

func (s normalSampler) IntN(n int) int {
	if n <= 0 {
		panic("synth: invalid argument to IntN")
	}
	x := normalMean + normalStdDev*s.rng.NormFloat64()
	x = min(max(x, 0), 1)
	i := int(x * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// between draws from [lo, hi] inclusive.
func between(s Sampler, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}
