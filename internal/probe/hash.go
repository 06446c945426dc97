package probe

import (
	"hash/fnv"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// HashFunc maps a key to a 64-bit hash.
type HashFunc func(key []byte) uint64

// murmurSeed is fixed so reports are comparable across runs.
const murmurSeed = 0x1234

var registry = map[string]HashFunc{
	"fnv1a":   fnv1a,
	"murmur3": murmur3Sum64,
	"xxh3":    xxh3.Hash,
	"xxhash":  xxhash.Sum64,
}

func fnv1a(key []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(key) // hash.Hash never returns an error
	return h.Sum64()
}

// murmur3Sum64 keeps the first half of the 128-bit MurmurHash3.
func murmur3Sum64(key []byte) uint64 {
	h1, _ := murmur3.Sum128WithSeed(key, murmurSeed)
	return h1
}

// Lookup returns the hash function registered under name.
func Lookup(name string) (HashFunc, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names lists the registered hash functions, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
