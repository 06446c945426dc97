// Package keysynth synthesizes test keys for benchmarking key-value and hash
// containers. Keys are generated from a small pattern language (literals,
// '.', bracket classes, groups and quantifiers), either at random under a
// uniform or normal distribution or by enumerating an index.
package keysynth

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/KromDaniel/keysynth/internal/pattern"
	"github.com/KromDaniel/keysynth/internal/synth"
)

// Defaults used when the corresponding option is left empty by the CLI.
const (
	DefaultCount        = 100
	DefaultSeed         = synth.DefaultSeed
	DefaultDistribution = "uniform"
)

// Re-exported error sentinels. Use errors.Is to classify failures.
var (
	ErrSyntax              = pattern.ErrSyntax
	ErrGeneration          = synth.ErrGeneration
	ErrUnknownDistribution = synth.ErrUnknownDistribution
)

// Pattern is a compiled key pattern. It is immutable and safe to reuse.
type Pattern = pattern.Pattern

// Options configures a generation run.
type Options struct {
	// Pattern is the key pattern to generate from.
	Pattern string

	// Count is the number of keys to generate.
	Count uint64

	// Seed seeds the random generator. Runs with equal options and seed
	// produce identical output.
	Seed uint64

	// Distribution is one of "uniform", "normal" or "incremental".
	// Empty means uniform.
	Distribution string

	// Verbose logs pattern analysis to LogOutput (stderr by default).
	Verbose bool

	// LogOutput overrides where verbose logs go.
	LogOutput io.Writer
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if _, err := o.distribution(); err != nil {
		return err
	}
	return nil
}

func (o Options) distribution() (synth.Distribution, error) {
	if o.Distribution == "" {
		return synth.Uniform, nil
	}
	return synth.ParseDistribution(o.Distribution)
}

// Result summarizes a completed run.
type Result struct {
	// Lines is the number of keys written.
	Lines uint64

	// Digest is the xxhash64 of every byte written, newlines included.
	// Equal digests mean byte-identical corpora.
	Digest uint64
}

// Compile parses a pattern. Errors match ErrSyntax.
func Compile(p string) (*Pattern, error) {
	return pattern.Parse(p)
}

// Generate writes opts.Count newline-terminated keys to w.
//
// The pattern is compiled before anything is written, so a syntax error
// produces no output. A generation error stops the run; keys generated
// before it are flushed to w.
func Generate(w io.Writer, opts Options) (Result, error) {
	digest := xxhash.New()
	bw := bufio.NewWriter(io.MultiWriter(w, digest))

	lines, err := run(opts, func(key string) error {
		if _, err := bw.WriteString(key); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	})
	if flushErr := bw.Flush(); flushErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to flush output: %w", flushErr))
	}
	if err != nil {
		return Result{Lines: lines}, err
	}
	return Result{Lines: lines, Digest: digest.Sum64()}, nil
}

// Collect runs like Generate but returns the keys in memory.
func Collect(opts Options) ([]string, error) {
	keys := make([]string, 0, min(opts.Count, 1<<20))
	_, err := run(opts, func(key string) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// run compiles the pattern and feeds opts.Count keys to sink in order.
func run(opts Options, sink func(string) error) (uint64, error) {
	if err := opts.Validate(); err != nil {
		return 0, fmt.Errorf("invalid options: %w", err)
	}
	dist, _ := opts.distribution()

	p, err := pattern.Parse(opts.Pattern)
	if err != nil {
		return 0, fmt.Errorf("failed to parse pattern: %w", err)
	}

	logger := synth.NewLogger(opts.Verbose)
	if opts.LogOutput != nil {
		logger.SetOutput(opts.LogOutput)
	}
	logAnalysis(logger, p, dist, opts)

	emitter, err := synth.New(dist, synth.NewRand(opts.Seed))
	if err != nil {
		return 0, err
	}

	var seq uint64
	for ; seq < opts.Count; seq++ {
		key, err := emitter.Emit(p, seq)
		if err != nil {
			return seq, fmt.Errorf("failed to generate key %d: %w", seq, err)
		}
		if err := sink(key); err != nil {
			return seq, fmt.Errorf("failed to write key %d: %w", seq, err)
		}
	}
	logger.Log("Generated %d keys", seq)
	return seq, nil
}

// logAnalysis reports what the pattern can produce and warns about
// incremental runs that cannot yield Count distinct keys.
func logAnalysis(logger *synth.Logger, p *pattern.Pattern, dist synth.Distribution, opts Options) {
	if !logger.Enabled() {
		return
	}
	a := pattern.Analyze(p)

	logger.Section("Pattern Analysis")
	logger.Log("Pattern: %s", p.Source)
	logger.Log("Canonical form: %s", p.String())
	logger.Log("Key length: %d..%d runes", a.MinLen, a.MaxLen)
	logger.Log("Features: %v", a.Labels)
	if a.Enumerable {
		logger.Log("Distinct keys: %d", a.Cardinality)
	}

	logger.Section("Run")
	logger.Log("Distribution: %s", dist)
	logger.Log("Seed: %d", opts.Seed)
	logger.Log("Count: %d", opts.Count)

	if dist != synth.Incremental {
		return
	}
	switch {
	case !a.Enumerable:
		logger.Log("Warning: incremental keys are not unique per index for this pattern (variable quantifier, '.' or negated class)")
	case opts.Count > a.Cardinality:
		logger.Log("Warning: %d keys requested but the pattern enumerates %d; keys will repeat", opts.Count, a.Cardinality)
	}
}
