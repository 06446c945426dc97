package pattern

// Parser limits.
const (
	// MaxDepth is the deepest group nesting Parse accepts.
	// Deeper input fails with a SyntaxError instead of growing the stack.
	MaxDepth = 64

	// UnboundedWindow is how far past Min an unbounded quantifier
	// ('+', '*', '{n,}') may repeat when a count is drawn.
	UnboundedWindow = 4
)

// Runes with a meaning of their own outside and inside brackets.
// Canonical rendering escapes them.
const (
	metaRunes      = `\.[]()+*?{}`
	classMetaRunes = `\]^-`
)
