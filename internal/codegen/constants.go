// Package codegen renders synthesized key corpora and hash functions as Go
// source.
package codegen

import "strings"

// Names used in generated code.
const (
	PatternSuffix      = "Pattern"
	SeedSuffix         = "Seed"
	DistributionSuffix = "Distribution"
	KeySizeSuffix      = "KeySize"
	HashSuffix         = "Hash"
	MapName            = "m"
	TestingName        = "b"
)

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isAlnum(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// LowerFirst converts the first character of a string to lowercase.
// Anything but an ASCII letter is left alone.
func LowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase.
// Anything but an ASCII letter is left alone.
func UpperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

// Identifier turns a free-form name such as "user-ids" into an exported Go
// identifier ("UserIds"). It returns "" when nothing usable remains.
func Identifier(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return !isAlnum(r) })
	var b strings.Builder
	for _, w := range words {
		b.WriteString(UpperFirst(w))
	}
	id := b.String()
	if id != "" && isDigit(rune(id[0])) {
		id = "K" + id
	}
	return id
}
