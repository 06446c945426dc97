package synth

// Counter is the index state shared by one incremental walk. Nodes read
// their digit from the low end and shift it out, so the rightmost node
// varies fastest.
type Counter struct {
	value uint64
}

// NewCounter starts a walk at index v.
func NewCounter(v uint64) *Counter {
	return &Counter{value: v}
}

// Value returns what is left of the index.
func (c *Counter) Value() uint64 {
	return c.value
}

// Consume returns value mod radix and divides the value by radix.
func (c *Counter) Consume(radix int) int {
	r := uint64(radix)
	d := c.value % r
	c.value /= r
	return int(d)
}

// Step returns the current value and moves it one towards zero.
func (c *Counter) Step() uint64 {
	v := c.value
	if c.value > 0 {
		c.value--
	}
	return v
}
