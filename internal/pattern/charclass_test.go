package pattern

import (
	"slices"
	"testing"
)

func TestParseClassMembers(t *testing.T) {
	tests := []struct {
		pattern string
		members string
		negated bool
	}{
		{"[abc]", "abc", false},
		{"[a-e]", "abcde", false},
		{"[0-9]", "0123456789", false},
		{"[a-cA-C]", "abcABC", false},
		{"[cba]", "cba", false},
		{"[aab]", "ab", false},
		{"[a-da-f]", "abcdef", false},
		{"[d-fa-e]", "defabc", false},
		{"[-a]", "-a", false},
		{"[a-]", "a-", false},
		{"[^-a]", "-a", true},
		{"[^a]", "a", true},
		{"[^a-c]", "abc", true},
		{"[a-c-e]", "abcde", false},
		{`[\]a]`, "]a", false},
		{`[a\-z]`, "a-z", false},
		{"[.+*]", ".+*", false},
		{"[^]", "", true},
		{"[x-x]", "x", false},
		{"[α-γ]", "αβγ", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if len(p.Nodes) != 1 || p.Nodes[0].Kind != KindClass {
				t.Fatalf("Parse(%q) = %s, want a single class", tt.pattern, p)
			}
			class := p.Nodes[0].Class
			if got := string(class.Members); got != tt.members {
				t.Errorf("members = %q, want %q", got, tt.members)
			}
			if class.Negated != tt.negated {
				t.Errorf("negated = %v, want %v", class.Negated, tt.negated)
			}
		})
	}
}

func TestClassContains(t *testing.T) {
	small := MustParse("[abc]").Nodes[0].Class
	large := MustParse("[a-z0-9]").Nodes[0].Class

	for _, c := range []*Class{small, large} {
		for _, r := range c.Members {
			if !c.Contains(r) {
				t.Errorf("Contains(%q) = false for member", r)
			}
		}
		if c.Contains('!') {
			t.Error("Contains('!') = true for non-member")
		}
	}
	if large.index == nil {
		t.Error("large class has no index")
	}
	if small.index != nil {
		t.Error("small class unexpectedly indexed")
	}
}

func TestClassRangeSkipsSurrogates(t *testing.T) {
	p := MustParse("[\uD7FF-\uE000]")
	got := p.Nodes[0].Class.Members
	want := []rune{0xD7FF, 0xE000}
	if !slices.Equal(got, want) {
		t.Errorf("members = %U, want %U", got, want)
	}
}

func TestClassFullRange(t *testing.T) {
	p := MustParse("[^\x00-\U0010FFFF]")
	class := p.Nodes[0].Class
	const scalars = 0x110000 - 0x800
	if len(class.Members) != scalars {
		t.Errorf("full range has %d members, want %d", len(class.Members), scalars)
	}
	if !class.Negated {
		t.Error("class not negated")
	}
}
