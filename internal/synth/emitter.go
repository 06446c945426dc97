package synth

import (
	"fmt"
	"math/rand/v2"

	"github.com/KromDaniel/keysynth/internal/pattern"
)

// Emitter produces the key for sequence number seq. Random emitters ignore
// seq; the incremental emitter decodes it.
type Emitter interface {
	Emit(p *pattern.Pattern, seq uint64) (string, error)
}

// New returns the Emitter for d. All emitters draw from rng; the
// incremental one only uses it for variable repeat counts.
func New(d Distribution, rng *rand.Rand) (Emitter, error) {
	switch d {
	case Uniform:
		return NewGenerator(UniformSampler(rng)), nil
	case Normal:
		return NewGenerator(NormalSampler(rng)), nil
	case Incremental:
		return NewEnumerator(UniformSampler(rng)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDistribution, d)
}

// NewRand returns the PCG generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^SeedMix))
}
