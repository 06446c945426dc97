package codegen

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/keysynth/internal/keyhash"
)

// Hash is a set of hash functions synthesized for one pattern.
type Hash struct {
	Package string
	Name    string
	Pattern string
	Funcs   []*keyhash.Func

	// Samples are keys whose expected hashes TestFile records.
	Samples []string
}

// Validate checks that the hash set can be rendered.
func (h Hash) Validate() error {
	if err := validateNames(h.Package, h.Name); err != nil {
		return err
	}
	if len(h.Funcs) == 0 {
		return errors.New("no hash functions to render")
	}
	return nil
}

// FuncName returns the exported name generated for f: <Name>Hash for the
// fallback, otherwise <Name><Variant>Hash.
func (h Hash) FuncName(f *keyhash.Func) string {
	if f.Variant == keyhash.Fallback {
		return h.Name + HashSuffix
	}
	return h.Name + Identifier(variantWord(f.Variant)) + HashSuffix
}

func variantWord(v keyhash.Variant) string {
	if v == keyhash.OffXor {
		return "off-xor"
	}
	return v.String()
}

// recommended is the function <Name>Hash forwards to, or nil when <Name>Hash
// is the fallback itself.
func (h Hash) recommended() *keyhash.Func {
	var best *keyhash.Func
	for _, f := range h.Funcs {
		switch f.Variant {
		case keyhash.Fallback:
			return nil
		case keyhash.Pext:
			best = f
		default:
			if best == nil {
				best = f
			}
		}
	}
	return best
}

func (h Hash) helper(name string) string {
	return LowerFirst(h.Name) + name
}

// File builds the hash source. Every function takes the key as a string
// and needs no imports.
func (h Hash) File() *jen.File {
	f := jen.NewFile(h.Package)
	header(f, h.Pattern)

	size := h.Funcs[0].Size
	sizeName := h.Name + KeySizeSuffix
	f.Comment(fmt.Sprintf("%s is the length in bytes of every key matching the pattern.", sizeName))
	f.Const().Id(sizeName).Op("=").Lit(size)
	f.Line()

	key := jen.Id("key")
	var usesLoad, usesPext bool

	if best := h.recommended(); best != nil {
		f.Comment(fmt.Sprintf("%s hashes keys of the pattern with %s.", h.Name+HashSuffix, h.FuncName(best)))
		f.Func().Id(h.Name+HashSuffix).Params(key.Clone().String()).Uint64().Block(
			jen.Return(jen.Id(h.FuncName(best)).Call(key.Clone())),
		)
		f.Line()
	}

	for _, fn := range h.Funcs {
		name := h.FuncName(fn)
		if fn.Variant == keyhash.Fallback {
			f.Comment(fmt.Sprintf("%s is FNV-1a: the pattern has no window worth specializing.", name))
			f.Func().Id(name).Params(key.Clone().String()).Uint64().Block(
				jen.Return(jen.Id(h.helper("FNV1a")).Call(key.Clone())),
			)
			f.Line()
			continue
		}

		var expr *jen.Statement
		for i, off := range fn.Offsets {
			term := jen.Id(h.helper("Load64")).Call(key.Clone(), jen.Lit(off))
			if fn.Variant == keyhash.Pext {
				term = jen.Id(h.helper("Pext")).Call(term, hexLit(fn.Masks[i]))
				if fn.Shifts[i] != 0 {
					term = term.Op("<<").Lit(int(fn.Shifts[i]))
				}
				usesPext = true
			}
			if expr == nil {
				expr = term
			} else {
				expr = expr.Op("^").Add(term)
			}
		}
		usesLoad = true

		f.Comment(fmt.Sprintf("%s combines the 8-byte windows at offsets %s with %s.", name, joinInts(fn.Offsets), fn.Variant))
		f.Comment("Keys of any other length fall back to FNV-1a.")
		f.Func().Id(name).Params(key.Clone().String()).Uint64().Block(
			jen.If(jen.Len(key.Clone()).Op("!=").Id(sizeName)).Block(
				jen.Return(jen.Id(h.helper("FNV1a")).Call(key.Clone())),
			),
			jen.Return(expr),
		)
		f.Line()
	}

	if usesLoad {
		h.load64(f)
	}
	if usesPext {
		h.pext(f)
	}
	h.fnv1a(f)
	return f
}

// load64 emits a little-endian load of s[off:off+8].
func (h Hash) load64(f *jen.File) {
	b := jen.Id("b")
	expr := jen.Uint64().Call(b.Clone().Index(jen.Lit(0)))
	for i := 1; i < keyhash.WindowSize; i++ {
		expr = expr.Op("|").Uint64().Call(b.Clone().Index(jen.Lit(i))).Op("<<").Lit(8 * i)
	}
	f.Func().Id(h.helper("Load64")).Params(jen.Id("s").String(), jen.Id("off").Int()).Uint64().Block(
		b.Clone().Op(":=").Id("s").Index(jen.Id("off"), jen.Id("off").Op("+").Lit(keyhash.WindowSize)),
		jen.Return(expr),
	)
	f.Line()
}

// pext emits a portable parallel bit extract.
func (h Hash) pext(f *jen.File) {
	x, mask, r, bit := jen.Id("x"), jen.Id("mask"), jen.Id("r"), jen.Id("bit")
	f.Func().Id(h.helper("Pext")).Params(jen.List(x.Clone(), mask.Clone()).Uint64()).Uint64().Block(
		jen.Var().List(r.Clone(), bit.Clone()).Uint64().Op("=").List(jen.Lit(0), jen.Lit(1)),
		jen.For(jen.Empty(), mask.Clone().Op("!=").Lit(0), mask.Clone().Op("&=").Add(mask.Clone()).Op("-").Lit(1)).Block(
			jen.If(x.Clone().Op("&").Add(mask.Clone()).Op("&").Op("-").Add(mask.Clone()).Op("!=").Lit(0)).Block(
				r.Clone().Op("|=").Add(bit.Clone()),
			),
			bit.Clone().Op("<<=").Lit(1),
		),
		jen.Return(r.Clone()),
	)
	f.Line()
}

func (h Hash) fnv1a(f *jen.File) {
	s, hv, i := jen.Id("s"), jen.Id("h"), jen.Id("i")
	f.Func().Id(h.helper("FNV1a")).Params(s.Clone().String()).Uint64().Block(
		hv.Clone().Op(":=").Uint64().Call(jen.Id(fmt.Sprint(uint64(14695981039346656037)))),
		jen.For(i.Clone().Op(":=").Lit(0), i.Clone().Op("<").Len(s.Clone()), i.Clone().Op("++")).Block(
			hv.Clone().Op("^=").Uint64().Call(s.Clone().Index(i.Clone())),
			hv.Clone().Op("*=").Lit(1099511628211),
		),
		jen.Return(hv.Clone()),
	)
}

// TestFile builds a test checking every generated function against the
// hashes recorded for Samples.
func (h Hash) TestFile() *jen.File {
	f := jen.NewFile(h.Package)
	header(f, h.Pattern)

	seen := make(map[string]bool, len(h.Samples))
	var samples []string
	for _, k := range h.Samples {
		if !seen[k] {
			seen[k] = true
			samples = append(samples, k)
		}
	}

	t := jen.Id("t")
	for _, fn := range h.Funcs {
		name := h.FuncName(fn)
		vectors := make(jen.Dict, len(samples))
		for _, k := range samples {
			vectors[jen.Lit(k)] = hexLit(fn.Sum64([]byte(k)))
		}
		f.Func().Id("Test"+name).Params(t.Clone().Op("*").Qual("testing", "T")).Block(
			jen.For(jen.List(jen.Id("key"), jen.Id("want")).Op(":=").Range().Map(jen.String()).Uint64().Values(vectors)).Block(
				jen.If(jen.Id("got").Op(":=").Id(name).Call(jen.Id("key")), jen.Id("got").Op("!=").Id("want")).Block(
					t.Clone().Dot("Errorf").Call(jen.Lit(name+"(%q) = %#x, want %#x"), jen.Id("key"), jen.Id("got"), jen.Id("want")),
				),
			),
		)
		f.Line()
	}
	return f
}

// Render writes the hash source to w.
func (h Hash) Render(w io.Writer) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return h.File().Render(w)
}

// Save writes the hash source to path and formats it.
func (h Hash) Save(path string) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if err := h.File().Save(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := formatFile(path); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	return nil
}

// SaveTest writes the test file to path and formats it.
func (h Hash) SaveTest(path string) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if err := h.TestFile().Save(path); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	if err := formatFile(path); err != nil {
		return fmt.Errorf("failed to format test file: %w", err)
	}
	return nil
}

func hexLit(v uint64) *jen.Statement {
	return jen.Id(fmt.Sprintf("0x%016X", v))
}

func joinInts(vs []int) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ", ")
}
