package codegen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KromDaniel/keysynth/internal/keyhash"
	"github.com/KromDaniel/keysynth/internal/pattern"
)

func testHash(t *testing.T, src string) Hash {
	t.Helper()
	fns, err := keyhash.Functions(pattern.MustParse(src))
	if err != nil {
		t.Fatalf("Functions(%q) error: %v", src, err)
	}
	return Hash{
		Package: "benchkeys",
		Name:    "Ids",
		Pattern: src,
		Funcs:   fns,
		Samples: []string{"id-1234-abcd", "id-0000-ffff", "id-1234-abcd"},
	}
}

func renderHash(t *testing.T, h Hash) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := h.Render(&buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	return buf.Bytes()
}

func TestHashFuncName(t *testing.T) {
	h := testHash(t, "id-[0-9]{4}-[a-f]{4}")
	tests := []struct {
		variant keyhash.Variant
		want    string
	}{
		{keyhash.Fallback, "IdsHash"},
		{keyhash.OffXor, "IdsOffXorHash"},
		{keyhash.Pext, "IdsPextHash"},
	}
	for _, tt := range tests {
		if got := h.FuncName(&keyhash.Func{Variant: tt.variant}); got != tt.want {
			t.Errorf("FuncName(%v) = %q, want %q", tt.variant, got, tt.want)
		}
	}
}

func TestHashRender(t *testing.T) {
	src := renderHash(t, testHash(t, "id-[0-9]{4}-[a-f]{4}"))

	if !bytes.HasPrefix(src, []byte("// Code generated by keysynth")) {
		t.Errorf("missing generated header:\n%s", src)
	}
	names := declaredNames(t, src)
	for _, want := range []string{
		"IdsKeySize", "IdsHash", "IdsOffXorHash", "IdsPextHash",
		"idsLoad64", "idsPext", "idsFNV1a",
	} {
		if !names[want] {
			t.Errorf("generated source does not declare %s", want)
		}
	}
	compact := bytes.ReplaceAll(src, []byte(" "), nil)
	for _, want := range []string{
		"returnIdsPextHash(key)",
		"0x070707000F0F0F0F",
		"<<61",
	} {
		if !bytes.Contains(compact, []byte(want)) {
			t.Errorf("generated source missing %q:\n%s", want, src)
		}
	}
	if bytes.Contains(src, []byte("import")) {
		t.Errorf("generated hash source has imports:\n%s", src)
	}
}

func TestHashRenderFallback(t *testing.T) {
	src := renderHash(t, testHash(t, "[0-9]{4}"))

	names := declaredNames(t, src)
	for _, want := range []string{"IdsKeySize", "IdsHash", "idsFNV1a"} {
		if !names[want] {
			t.Errorf("generated source does not declare %s", want)
		}
	}
	for _, unwanted := range []string{"idsLoad64", "idsPext", "IdsPextHash"} {
		if names[unwanted] {
			t.Errorf("fallback source declares %s", unwanted)
		}
	}
}

func TestHashSaveWithTest(t *testing.T) {
	dir := t.TempDir()
	h := testHash(t, "id-[0-9]{4}-[a-f]{4}")

	if err := h.Save(filepath.Join(dir, "ids_hash.go")); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	path := filepath.Join(dir, "ids_hash_test.go")
	if err := h.SaveTest(path); err != nil {
		t.Fatalf("SaveTest error: %v", err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	names := declaredNames(t, src)
	for _, want := range []string{"TestIdsOffXorHash", "TestIdsPextHash"} {
		if !names[want] {
			t.Errorf("test file does not declare %s", want)
		}
	}

	// One vector per function; the repeated sample is written once.
	if got := strings.Count(string(src), `"id-1234-abcd"`); got != len(h.Funcs) {
		t.Errorf("sample appears %d times, want %d:\n%s", got, len(h.Funcs), src)
	}
	pext := h.Funcs[len(h.Funcs)-1]
	want := fmt.Sprintf("0x%016X", pext.Sum64([]byte("id-1234-abcd")))
	if !strings.Contains(string(src), want) {
		t.Errorf("test file missing expected hash %s:\n%s", want, src)
	}
}

func TestHashValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Hash)
	}{
		{"empty package", func(h *Hash) { h.Package = "" }},
		{"unexported name", func(h *Hash) { h.Name = "ids" }},
		{"no functions", func(h *Hash) { h.Funcs = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHash(t, "id-[0-9]{4}-[a-f]{4}")
			tt.mutate(&h)
			if err := h.Validate(); err == nil {
				t.Error("Validate accepted an invalid hash set")
			}
			if err := h.Render(&bytes.Buffer{}); err == nil {
				t.Error("Render accepted an invalid hash set")
			}
		})
	}
}
