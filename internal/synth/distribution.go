package synth

import (
	"fmt"
	"strings"
)

// Distribution selects how keys are produced.
type Distribution uint8

const (
	// Uniform samples every choice uniformly.
	Uniform Distribution = iota
	// Normal samples choices from a normal curve centered on the middle
	// of each range.
	Normal
	// Incremental enumerates keys from a sequence number.
	Incremental
)

var distributionNames = [...]string{
	Uniform:     "uniform",
	Normal:      "normal",
	Incremental: "incremental",
}

func (d Distribution) String() string {
	if int(d) < len(distributionNames) {
		return distributionNames[d]
	}
	return fmt.Sprintf("Distribution(%d)", uint8(d))
}

// ParseDistribution resolves a case-insensitive distribution name.
func ParseDistribution(s string) (Distribution, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range distributionNames {
		if n == name {
			return Distribution(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want uniform, normal or incremental)", ErrUnknownDistribution, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Distribution) MarshalText() ([]byte, error) {
	if int(d) >= len(distributionNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDistribution, uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Distribution can
// be read from flags and environment variables directly.
func (d *Distribution) UnmarshalText(text []byte) error {
	v, err := ParseDistribution(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
