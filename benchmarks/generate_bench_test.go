package benchmarks_test

import (
	"context"
	"io"
	"testing"

	"github.com/KromDaniel/keysynth/internal/probe"
	"github.com/KromDaniel/keysynth/pkg/keysynth"
)

var benchPatterns = []struct {
	name    string
	pattern string
}{
	{"Digits", "[0-9]{8}"},
	{"UserID", "user_[a-z0-9]{4,12}"},
	{"MAC", "([A-F0-9]{2}:){5}[A-F0-9]{2}"},
	{"Negated", "[^a-z]{6}"},
	{"Unbounded", "k.+"},
}

const benchKeys = 1000

func BenchmarkGenerate(b *testing.B) {
	for _, dist := range []string{"uniform", "normal", "incremental"} {
		for _, bp := range benchPatterns {
			b.Run(dist+"/"+bp.name, func(b *testing.B) {
				opts := keysynth.Options{Pattern: bp.pattern, Count: benchKeys, Distribution: dist}
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					// Vary the seed so every iteration does fresh work
					opts.Seed = uint64(i)
					if _, err := keysynth.Generate(io.Discard, opts); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	for _, bp := range benchPatterns {
		b.Run(bp.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := keysynth.Compile(bp.pattern); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHash measures each probe hash over a synthesized corpus.
func BenchmarkHash(b *testing.B) {
	keys, err := keysynth.Collect(keysynth.Options{Pattern: "user_[a-z0-9]{4,12}", Count: benchKeys})
	if err != nil {
		b.Fatal(err)
	}
	raw := make([][]byte, len(keys))
	for i, k := range keys {
		raw[i] = []byte(k)
	}

	for _, name := range probe.Names() {
		fn, _ := probe.Lookup(name)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				for _, k := range raw {
					_ = fn(k)
				}
			}
		})
	}
}

// BenchmarkSynthesizedHash compares the synthesized variants with xxh3 on
// fixed-length keys.
func BenchmarkSynthesizedHash(b *testing.B) {
	const pattern = "order-[0-9]{10}-[A-Z]{4}"
	keys, err := keysynth.Collect(keysynth.Options{Pattern: pattern, Count: benchKeys})
	if err != nil {
		b.Fatal(err)
	}
	raw := make([][]byte, len(keys))
	for i, k := range keys {
		raw[i] = []byte(k)
	}

	fns, err := keysynth.HashFuncs(pattern)
	if err != nil {
		b.Fatal(err)
	}
	xxh3, _ := probe.Lookup("xxh3")
	cases := []probe.NamedHash{{Name: "xxh3", Fn: xxh3}}
	for _, f := range fns {
		cases = append(cases, probe.NamedHash{Name: f.Variant.String(), Fn: f.Sum64})
	}

	for _, c := range cases {
		b.Run(c.Name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				for _, k := range raw {
					_ = c.Fn(k)
				}
			}
		})
	}
}

func BenchmarkProbeRun(b *testing.B) {
	keys, err := keysynth.Collect(keysynth.Options{Pattern: "[0-9a-f]{12}", Count: 10 * benchKeys})
	if err != nil {
		b.Fatal(err)
	}
	raw := make([][]byte, len(keys))
	for i, k := range keys {
		raw[i] = []byte(k)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := probe.Run(context.Background(), raw, probe.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
