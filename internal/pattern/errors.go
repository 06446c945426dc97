package pattern

import (
	"errors"
	"fmt"
)

// ErrSyntax matches every *SyntaxError via errors.Is.
var ErrSyntax = errors.New("keysynth: syntax error")

// SyntaxError reports a malformed pattern. Offset is the rune index in the
// pattern source where the problem was detected.
type SyntaxError struct {
	Pattern string
	Offset  int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("keysynth: syntax error at offset %d in %q: %s", e.Offset, e.Pattern, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) hold for any SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
