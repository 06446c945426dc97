package keysynth

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/keysynth/internal/codegen"
	"github.com/KromDaniel/keysynth/internal/keyhash"
	"github.com/KromDaniel/keysynth/internal/pattern"
)

// HashFunc is a hash function synthesized for a fixed-length pattern.
type HashFunc = keyhash.Func

// ErrUnsupportedPattern matches patterns without a fixed byte layout:
// variable quantifiers, '.', negated classes or classes mixing UTF-8 widths.
var ErrUnsupportedPattern = keyhash.ErrUnsupported

// hashSamples bounds the keys recorded in a hash test file.
const hashSamples = 16

// HashFuncs synthesizes the hash functions for p. Patterns whose keys fit in
// one 8-byte window or never vary get the FNV-1a fallback only; otherwise
// the off-xor and pext variants are returned, pext last.
func HashFuncs(p string) ([]*HashFunc, error) {
	pat, err := pattern.Parse(p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	fns, err := keyhash.Functions(pat)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize hash: %w", err)
	}
	return fns, nil
}

// HashTestFile returns the path of the test file written next to a hash
// source file.
func HashTestFile(path string) string {
	return strings.TrimSuffix(path, ".go") + "_test.go"
}

// EmitHash writes the hash functions synthesized for opts.Pattern as Go
// source to g.OutputFile. With g.Benchmark it also writes a test file
// recording the hashes of the first keys opts generates.
func EmitHash(opts Options, g GoOptions) ([]*HashFunc, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	fns, err := HashFuncs(opts.Pattern)
	if err != nil {
		return nil, err
	}

	h := codegen.Hash{
		Package: g.Package,
		Name:    codegen.Identifier(g.Name),
		Pattern: opts.Pattern,
		Funcs:   fns,
	}
	if err := h.Save(g.OutputFile); err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	if g.Benchmark {
		sampleOpts := opts
		sampleOpts.Count = min(opts.Count, hashSamples)
		sampleOpts.Verbose = false
		if h.Samples, err = Collect(sampleOpts); err != nil {
			return nil, err
		}
		if err := h.SaveTest(HashTestFile(g.OutputFile)); err != nil {
			return nil, fmt.Errorf("failed to generate code: %w", err)
		}
	}
	return fns, nil
}
