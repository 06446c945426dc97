package synth

import "testing"

func TestCounterConsume(t *testing.T) {
	tests := []struct {
		name   string
		start  uint64
		radix  []int
		digits []int
		rest   uint64
	}{
		{"decimal", 123, []int{10, 10, 10}, []int{3, 2, 1}, 0},
		{"below radix", 7, []int{10}, []int{7}, 0},
		{"mixed", 5, []int{3, 2}, []int{2, 1}, 0},
		{"leftover", 1000, []int{10, 10, 10}, []int{0, 0, 0}, 1},
		{"radix one", 42, []int{1, 1}, []int{0, 0}, 42},
		{"zero", 0, []int{26, 26}, []int{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCounter(tt.start)
			for i, r := range tt.radix {
				if got := c.Consume(r); got != tt.digits[i] {
					t.Errorf("Consume(%d) #%d = %d, want %d", r, i, got, tt.digits[i])
				}
			}
			if c.Value() != tt.rest {
				t.Errorf("Value() = %d, want %d", c.Value(), tt.rest)
			}
		})
	}
}

func TestCounterStep(t *testing.T) {
	c := NewCounter(2)
	want := []uint64{2, 1, 0, 0}
	for i, w := range want {
		if got := c.Step(); got != w {
			t.Errorf("Step() #%d = %d, want %d", i, got, w)
		}
	}
}
