package keysynth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateReproducible(t *testing.T) {
	opts := Options{Pattern: "[0-9]{3}", Count: 5, Seed: 223554, Distribution: "uniform"}

	var a, b bytes.Buffer
	ra, err := Generate(&a, opts)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	rb, err := Generate(&b, opts)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("identical runs differ:\n%s\nvs\n%s", a.String(), b.String())
	}
	if ra != rb {
		t.Errorf("results differ: %+v vs %+v", ra, rb)
	}
	if ra.Lines != 5 {
		t.Errorf("Lines = %d, want 5", ra.Lines)
	}

	lines := strings.Split(strings.TrimSuffix(a.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for _, l := range lines {
		if len(l) != 3 || strings.Trim(l, "0123456789") != "" {
			t.Errorf("line %q does not match [0-9]{3}", l)
		}
	}

	var c bytes.Buffer
	rc, err := Generate(&c, Options{Pattern: opts.Pattern, Count: 5, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if rc.Digest == ra.Digest {
		t.Error("different seeds produced the same digest")
	}
}

func TestGenerateSyntaxErrorWritesNothing(t *testing.T) {
	var out bytes.Buffer
	res, err := Generate(&out, Options{Pattern: "(abc", Count: 10})
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("error = %v, want ErrSyntax", err)
	}
	if out.Len() != 0 || res.Lines != 0 {
		t.Errorf("syntax error produced output %q (%d lines)", out.String(), res.Lines)
	}
}

func TestGenerateIncrementalLiterals(t *testing.T) {
	var out bytes.Buffer
	if _, err := Generate(&out, Options{Pattern: "a{3}", Count: 6, Distribution: "incremental"}); err != nil {
		t.Fatal(err)
	}
	if want := strings.Repeat("aaa\n", 6); out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestGenerateIncrementalSequence(t *testing.T) {
	keys, err := Collect(Options{Pattern: "id-[0-9]{2}", Count: 12, Distribution: "incremental"})
	if err != nil {
		t.Fatal(err)
	}
	if keys[0] != "id-00" || keys[11] != "id-11" {
		t.Errorf("keys = %v", keys)
	}
}

func TestGenerateNegatedClass(t *testing.T) {
	keys, err := Collect(Options{Pattern: "[^a]", Count: 500, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		if k == "a" {
			t.Fatal("negated class produced 'a'")
		}
	}
}

func TestGenerateGenerationError(t *testing.T) {
	var out bytes.Buffer
	res, err := Generate(&out, Options{Pattern: "k[^\x00-\U0010FFFF]", Count: 3})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
	if res.Lines != 0 || out.Len() != 0 {
		t.Errorf("got %d lines / %q, want none", res.Lines, out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGenerateWriteError(t *testing.T) {
	_, err := Generate(failingWriter{}, Options{Pattern: "[a-z]{4}", Count: 10})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("error = %v, want write failure", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		is      error
	}{
		{"uniform default", Options{Pattern: "a"}, false, nil},
		{"normal", Options{Pattern: "a", Distribution: "normal"}, false, nil},
		{"empty pattern", Options{}, true, nil},
		{"bad distribution", Options{Pattern: "a", Distribution: "zipf"}, true, ErrUnknownDistribution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Validate() = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestCollectMatchesGenerate(t *testing.T) {
	opts := Options{Pattern: "(ab|[xy]){2,4}.?", Count: 50, Seed: 99, Distribution: "normal"}
	keys, err := Collect(opts)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if _, err := Generate(&out, opts); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(keys, "\n") + "\n"; got != out.String() {
		t.Error("Collect and Generate disagree")
	}
}

func TestVerboseLogging(t *testing.T) {
	var log bytes.Buffer
	_, err := Collect(Options{
		Pattern:      "[ab]{2}",
		Count:        10,
		Distribution: "incremental",
		Verbose:      true,
		LogOutput:    &log,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"[keysynth] === Pattern Analysis ===",
		"[keysynth] Distinct keys: 4",
		"[keysynth] Distribution: incremental",
		"10 keys requested but the pattern enumerates 4",
		"[keysynth] Generated 10 keys",
	} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("log missing %q:\n%s", want, log.String())
		}
	}

	log.Reset()
	if _, err := Collect(Options{Pattern: "a", Count: 1, LogOutput: &log}); err != nil {
		t.Fatal(err)
	}
	if log.Len() != 0 {
		t.Errorf("quiet run logged %q", log.String())
	}
}

func TestAnalyze(t *testing.T) {
	res, err := Analyze("[0-9]{3}")
	if err != nil {
		t.Fatal(err)
	}
	if res.Cardinality != 1000 || !res.Enumerable {
		t.Errorf("Analyze = %+v", res)
	}
	if _, err := Analyze("a{2,1}"); !errors.Is(err, ErrSyntax) {
		t.Errorf("Analyze error = %v, want ErrSyntax", err)
	}
}

func TestEmitGo(t *testing.T) {
	dir := t.TempDir()
	g := GoOptions{Package: "keys", Name: "user ids", OutputFile: filepath.Join(dir, "keys.go"), Benchmark: true}

	res, err := EmitGo(Options{Pattern: "user_[0-9]{4}", Count: 8, Seed: 3}, g)
	if err != nil {
		t.Fatalf("EmitGo error: %v", err)
	}
	if res.Lines != 8 {
		t.Errorf("Lines = %d, want 8", res.Lines)
	}

	src, err := os.ReadFile(g.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"package keys", "UserIds = []string{", "UserIdsPattern", `"user_[0-9]{4}"`} {
		if !strings.Contains(string(src), want) {
			t.Errorf("generated file missing %q:\n%s", want, src)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "keys_test.go")); err != nil {
		t.Errorf("benchmark file not written: %v", err)
	}

	if _, err := EmitGo(Options{Pattern: "a", Count: 1}, GoOptions{Name: "K", OutputFile: g.OutputFile}); err == nil {
		t.Error("EmitGo accepted an empty package")
	}
}
