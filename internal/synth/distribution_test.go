package synth

import (
	"errors"
	"testing"
)

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		input string
		want  Distribution
		err   bool
	}{
		{"uniform", Uniform, false},
		{"normal", Normal, false},
		{"incremental", Incremental, false},
		{" Normal ", Normal, false},
		{"INCREMENTAL", Incremental, false},
		{"gaussian", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDistribution(tt.input)
			if tt.err {
				if !errors.Is(err, ErrUnknownDistribution) {
					t.Errorf("ParseDistribution(%q) error = %v, want ErrUnknownDistribution", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDistribution(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDistribution(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDistributionText(t *testing.T) {
	for _, d := range []Distribution{Uniform, Normal, Incremental} {
		text, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s) error: %v", d, err)
		}
		var back Distribution
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if back != d {
			t.Errorf("text round trip of %s = %s", d, back)
		}
	}

	if _, err := Distribution(7).MarshalText(); err == nil {
		t.Error("MarshalText accepted an unknown distribution")
	}
	if got := Distribution(7).String(); got != "Distribution(7)" {
		t.Errorf("String() = %q", got)
	}
}
