package keysynth

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/keysynth/internal/codegen"
)

// GoOptions configures rendering a corpus as Go source.
type GoOptions struct {
	// Package is the Go package name for the generated code.
	Package string

	// Name is the exported identifier of the key slice (e.g. "Keys"
	// generates Keys, KeysPattern, KeysSeed and KeysDistribution).
	Name string

	// OutputFile is the path where generated code will be written.
	OutputFile string

	// Benchmark also writes <OutputFile without .go>_test.go with map
	// insert and lookup benchmarks over the keys.
	Benchmark bool
}

// Validate checks if the options are valid.
func (o GoOptions) Validate() error {
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	return nil
}

// BenchmarkFile returns the path of the benchmark file written next to
// OutputFile.
func (o GoOptions) BenchmarkFile() string {
	return strings.TrimSuffix(o.OutputFile, ".go") + "_test.go"
}

// EmitGo generates opts.Count keys and writes them as a Go source file.
func EmitGo(opts Options, g GoOptions) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid options: %w", err)
	}

	keys, err := Collect(opts)
	if err != nil {
		return Result{}, err
	}
	dist, _ := opts.distribution()

	corpus := codegen.Corpus{
		Package:      g.Package,
		Name:         codegen.Identifier(g.Name),
		Pattern:      opts.Pattern,
		Distribution: dist.String(),
		Seed:         opts.Seed,
		Keys:         keys,
	}
	if err := corpus.Save(g.OutputFile); err != nil {
		return Result{}, fmt.Errorf("failed to generate code: %w", err)
	}
	if g.Benchmark {
		if err := corpus.SaveBenchmark(g.BenchmarkFile()); err != nil {
			return Result{}, fmt.Errorf("failed to generate code: %w", err)
		}
	}
	return Result{Lines: uint64(len(keys))}, nil
}
