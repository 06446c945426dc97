package synth

import (
	"errors"
	"fmt"
)

// ErrGeneration matches every *GenerationError via errors.Is.
var ErrGeneration = errors.New("keysynth: generation error")

// ErrUnknownDistribution is returned for a distribution name other than
// uniform, normal or incremental.
var ErrUnknownDistribution = errors.New("keysynth: unknown distribution")

// GenerationError reports a pattern that parses but cannot produce a key,
// such as a negated class excluding every scalar value.
type GenerationError struct {
	Node string
	Msg  string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("keysynth: cannot generate %s: %s", e.Node, e.Msg)
}

// Is makes errors.Is(err, ErrGeneration) hold for any GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}
