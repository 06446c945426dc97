package keyhash

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/KromDaniel/keysynth/internal/pattern"
)

// Variant selects how windows are combined.
type Variant uint8

const (
	// Fallback hashes the whole key with FNV-1a.
	Fallback Variant = iota
	// OffXor XORs the raw windows.
	OffXor
	// Pext compresses each window to its varying bits and spreads the
	// results over the 64-bit word before XORing them.
	Pext
)

var variantNames = [...]string{
	Fallback: "fallback",
	OffXor:   "offxor",
	Pext:     "pext",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Func is a synthesized hash function. Keys whose length differs from Size
// are hashed with the fallback.
type Func struct {
	Variant Variant
	Size    int

	// Offsets are the window load offsets.
	Offsets []int

	// Masks and Shifts are per window; Pext only.
	Masks  []uint64
	Shifts []uint
}

// Synthesize builds the v variant for l. Layouts that are not
// Specializable always get the Fallback variant.
func Synthesize(l *Layout, v Variant) *Func {
	if v == Fallback || !l.Specializable() {
		return &Func{Variant: Fallback, Size: l.Size}
	}

	f := &Func{Variant: v, Size: l.Size}
	offsets := l.Windows()
	if v == OffXor {
		f.Offsets = offsets
		return f
	}

	// A byte shared by two windows is extracted by the first one only.
	covered := make([]bool, l.Size)
	for _, off := range offsets {
		var mask uint64
		for k := range WindowSize {
			if covered[off+k] {
				continue
			}
			covered[off+k] = true
			mask |= uint64(l.Masks[off+k]) << (8 * k)
		}
		if mask == 0 {
			continue
		}
		var shift uint
		if len(f.Offsets)%2 == 1 {
			shift = uint(64 - bits.OnesCount64(mask))
		}
		f.Offsets = append(f.Offsets, off)
		f.Masks = append(f.Masks, mask)
		f.Shifts = append(f.Shifts, shift)
	}
	return f
}

// Functions synthesizes every variant worth emitting for p: OffXor and
// Pext for specializable layouts, otherwise the Fallback alone.
func Functions(p *pattern.Pattern) ([]*Func, error) {
	l, err := NewLayout(p)
	if err != nil {
		return nil, err
	}
	if !l.Specializable() {
		return []*Func{Synthesize(l, Fallback)}, nil
	}
	return []*Func{Synthesize(l, OffXor), Synthesize(l, Pext)}, nil
}

// Sum64 hashes key.
func (f *Func) Sum64(key []byte) uint64 {
	if f.Variant == Fallback || len(key) != f.Size {
		return FNV1a(key)
	}
	var h uint64
	for i, off := range f.Offsets {
		w := binary.LittleEndian.Uint64(key[off:])
		if f.Variant == Pext {
			w = pext(w, f.Masks[i]) << f.Shifts[i]
		}
		h ^= w
	}
	return h
}

// FNV-1a parameters, 64-bit.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// FNV1a is the 64-bit FNV-1a hash, written out so generated code can
// reproduce it without imports.
func FNV1a(key []byte) uint64 {
	h := uint64(fnvOffset)
	for _, c := range key {
		h ^= uint64(c)
		h *= fnvPrime
	}
	return h
}

// pext gathers the bits of x selected by mask into the low bits of the
// result, like the BMI2 instruction.
func pext(x, mask uint64) uint64 {
	var r uint64
	var b uint
	for ; mask != 0; mask &= mask - 1 {
		if x&mask&-mask != 0 {
			r |= 1 << b
		}
		b++
	}
	return r
}
