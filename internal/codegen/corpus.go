package codegen

import (
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"

	"github.com/dave/jennifer/jen"
)

// Corpus is a synthesized key set together with the inputs that produced it.
type Corpus struct {
	Package      string
	Name         string
	Pattern      string
	Distribution string
	Seed         uint64
	Keys         []string
}

// Validate checks that the corpus can be rendered.
func (c Corpus) Validate() error {
	return validateNames(c.Package, c.Name)
}

func validateNames(pkg, name string) error {
	if pkg == "" {
		return errors.New("package cannot be empty")
	}
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if Identifier(name) != name {
		return fmt.Errorf("name %q is not an exported Go identifier", name)
	}
	return nil
}

func header(f *jen.File, pattern string) {
	f.HeaderComment(fmt.Sprintf("Code generated by keysynth for pattern: %q", pattern))
	f.HeaderComment("DO NOT EDIT.")
}

// File builds the corpus source: the pattern, distribution and seed as
// constants and the keys as a string slice, one per line.
func (c Corpus) File() *jen.File {
	f := jen.NewFile(c.Package)
	header(f, c.Pattern)

	f.Comment(fmt.Sprintf("%s holds %d keys synthesized from %s%s.", c.Name, len(c.Keys), c.Name, PatternSuffix))
	f.Const().Defs(
		jen.Id(c.Name+PatternSuffix).Op("=").Lit(c.Pattern),
		jen.Id(c.Name+DistributionSuffix).Op("=").Lit(c.Distribution),
		jen.Id(c.Name+SeedSuffix).Uint64().Op("=").Lit(c.Seed),
	)
	f.Line()

	keys := make([]jen.Code, len(c.Keys))
	for i, k := range c.Keys {
		keys[i] = jen.Lit(k)
	}
	f.Var().Id(c.Name).Op("=").Index().String().Custom(jen.Options{
		Open:      "{",
		Close:     "}",
		Separator: ",",
		Multi:     true,
	}, keys...)

	return f
}

// BenchmarkFile builds a test file benchmarking Go map insert and lookup
// over the corpus. It belongs to the same package as File.
func (c Corpus) BenchmarkFile() *jen.File {
	f := jen.NewFile(c.Package)
	header(f, c.Pattern)

	keys := jen.Id(c.Name)
	b := jen.Id(TestingName)
	m := jen.Id(MapName)

	fill := []jen.Code{
		m.Clone().Op(":=").Make(jen.Map(jen.String()).Int(), jen.Len(keys.Clone())),
		jen.For(jen.List(jen.Id("i"), jen.Id("k")).Op(":=").Range().Add(keys.Clone())).Block(
			m.Clone().Index(jen.Id("k")).Op("=").Id("i"),
		),
	}
	skipEmpty := jen.If(jen.Len(keys.Clone()).Op("==").Lit(0)).Block(
		b.Clone().Dot("Skip").Call(jen.Lit("empty corpus")),
	)

	f.Func().Id("Benchmark"+c.Name+"MapInsert").Params(b.Clone().Op("*").Qual("testing", "B")).Block(
		skipEmpty,
		b.Clone().Dot("ReportAllocs").Call(),
		jen.For(jen.Id("n").Op(":=").Lit(0), jen.Id("n").Op("<").Add(b.Clone()).Dot("N"), jen.Id("n").Op("++")).Block(
			fill...,
		),
	)
	f.Line()

	f.Func().Id("Benchmark"+c.Name+"MapLookup").Params(b.Clone().Op("*").Qual("testing", "B")).Block(
		skipEmpty.Clone(),
		fill[0],
		fill[1],
		b.Clone().Dot("ReportAllocs").Call(),
		b.Clone().Dot("ResetTimer").Call(),
		jen.For(jen.Id("n").Op(":=").Lit(0), jen.Id("n").Op("<").Add(b.Clone()).Dot("N"), jen.Id("n").Op("++")).Block(
			jen.Id("_").Op("=").Add(m.Clone()).Index(keys.Clone().Index(jen.Id("n").Op("%").Len(keys.Clone()))),
		),
	)

	return f
}

// Render writes the corpus source to w.
func (c Corpus) Render(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.File().Render(w)
}

// Save writes the corpus source to path and formats it.
func (c Corpus) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.File().Save(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := formatFile(path); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	return nil
}

// SaveBenchmark writes the benchmark test file to path and formats it.
func (c Corpus) SaveBenchmark(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.BenchmarkFile().Save(path); err != nil {
		return fmt.Errorf("failed to save benchmark file: %w", err)
	}
	if err := formatFile(path); err != nil {
		return fmt.Errorf("failed to format benchmark file: %w", err)
	}
	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
