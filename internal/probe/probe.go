// Package probe measures how evenly hash functions spread a key corpus
// across a power-of-two bucket table.
package probe

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBucketBits = 16
	MaxBucketBits     = 28

	// cancelCheckInterval is how many keys a worker hashes between
	// context checks.
	cancelCheckInterval = 1 << 14

	// tableBudget caps the bucket table memory held by concurrent workers.
	// Each table takes 4<<BucketBits bytes.
	tableBudget = 1 << 30
)

// NamedHash is a hash function supplied by the caller rather than the
// registry.
type NamedHash struct {
	Name string
	Fn   HashFunc
}

// Options selects the hashes to run and the bucket table size.
type Options struct {
	// Hashes are registry names. Empty means every registered hash.
	Hashes []string

	// Extra hashes run after the registry ones.
	Extra []NamedHash

	// BucketBits sizes the table at 1<<BucketBits buckets. Zero means
	// DefaultBucketBits.
	BucketBits int
}

// Stats is the outcome for a single hash function.
type Stats struct {
	Hash string

	// HashCollisions counts distinct keys whose full 64-bit hash was
	// already produced by another key.
	HashCollisions int

	// BucketCollisions counts distinct keys that landed in a non-empty bucket.
	BucketCollisions int

	// MaxBucket is the largest number of keys sharing one bucket.
	MaxBucket int

	// UsedBuckets is the number of buckets holding at least one key.
	UsedBuckets int
}

// Report is the outcome of Run.
type Report struct {
	Keys       int
	Distinct   int
	BucketBits int
	Stats      []Stats
}

func (o Options) resolve() ([]string, []HashFunc, int, error) {
	bits := o.BucketBits
	if bits == 0 {
		bits = DefaultBucketBits
	}
	if bits < 1 || bits > MaxBucketBits {
		return nil, nil, 0, fmt.Errorf("%w: got %d", ErrBucketBits, bits)
	}

	names := o.Hashes
	if len(names) == 0 {
		names = Names()
	}
	fns := make([]HashFunc, len(names), len(names)+len(o.Extra))
	for i, name := range names {
		fn, ok := Lookup(name)
		if !ok {
			return nil, nil, 0, fmt.Errorf("%w: %q", ErrUnknownHash, name)
		}
		fns[i] = fn
	}
	names = slices.Clip(names)
	for _, e := range o.Extra {
		if e.Name == "" || e.Fn == nil {
			return nil, nil, 0, fmt.Errorf("%w: extra hash %q has no function", ErrUnknownHash, e.Name)
		}
		names = append(names, e.Name)
		fns = append(fns, e.Fn)
	}
	return names, fns, bits, nil
}

// workers returns how many hashes may run at once without their bucket
// tables exceeding tableBudget. At MaxBucketBits they run one at a time.
func workers(bits int) int {
	return max(1, tableBudget/(4<<bits))
}

// Run hashes the distinct keys with every selected function concurrently and
// reports collisions. Stats follow the order of opts.Hashes, then opts.Extra.
// Large tables limit how many hashes run at once; see workers.
func Run(ctx context.Context, keys [][]byte, opts Options) (*Report, error) {
	names, fns, bits, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrEmptyCorpus
	}

	distinct := dedupe(keys)
	report := &Report{
		Keys:       len(keys),
		Distinct:   len(distinct),
		BucketBits: bits,
		Stats:      make([]Stats, len(names)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(bits))
	for i := range names {
		g.Go(func() error {
			s, err := measure(ctx, distinct, fns[i], bits)
			if err != nil {
				return fmt.Errorf("hash %s: %w", names[i], err)
			}
			s.Hash = names[i]
			report.Stats[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func dedupe(keys [][]byte) [][]byte {
	seen := make(map[string]struct{}, len(keys))
	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[string(k)]; ok {
			continue
		}
		seen[string(k)] = struct{}{}
		out = append(out, k)
	}
	return out
}

// measure buckets by the low bits of the hash, like a power-of-two table
// indexing with hash % size.
func measure(ctx context.Context, keys [][]byte, fn HashFunc, bits int) (Stats, error) {
	var s Stats
	hashes := make(map[uint64]struct{}, len(keys))
	buckets := make([]uint32, 1<<bits)
	mask := uint64(1)<<bits - 1

	for i, k := range keys {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Stats{}, err
			}
		}
		h := fn(k)
		if _, ok := hashes[h]; ok {
			s.HashCollisions++
		} else {
			hashes[h] = struct{}{}
		}
		b := h & mask
		if buckets[b] > 0 {
			s.BucketCollisions++
		} else {
			s.UsedBuckets++
		}
		buckets[b]++
	}
	s.MaxBucket = int(slices.Max(buckets))
	return s, nil
}
