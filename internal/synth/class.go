package synth

import (
	"strconv"

	"github.com/KromDaniel/keysynth/internal/pattern"
)

// admissible fails when a negated class leaves no scalar value to emit.
// Checked before every negated draw so the scan in pickExcluded terminates.
func admissible(c *pattern.Class) error {
	if len(c.Members) >= ScalarCount {
		return &GenerationError{
			Node: "[^...]",
			Msg:  "negated class excludes all " + strconv.Itoa(ScalarCount) + " scalar values",
		}
	}
	return nil
}

// pickExcluded returns the first scalar value at or after index start
// (wrapping) that the negated class admits. The class must be admissible.
func pickExcluded(c *pattern.Class, start int) rune {
	i := start % ScalarCount
	for {
		r := scalarAt(i)
		if !c.Contains(r) {
			return r
		}
		i++
		if i == ScalarCount {
			i = 0
		}
	}
}
