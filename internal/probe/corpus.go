package probe

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Corpus is a newline-delimited key file, as written by keysynth.
type Corpus struct {
	data []byte
	mm   mmap.MMap
}

// OpenCorpus memory-maps the file at path read-only. The file descriptor is
// closed before returning; the mapping lives until Close.
func OpenCorpus(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat corpus: %w", err)
	}
	if stat.Size() == 0 {
		// mmap(2) rejects zero-length mappings.
		return &Corpus{}, nil
	}

	fadviseSequential(int(f.Fd()), 0, stat.Size())
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap corpus: %w", err)
	}
	return &Corpus{data: mm, mm: mm}, nil
}

// NewCorpus wraps in-memory corpus data. Close is a no-op.
func NewCorpus(data []byte) *Corpus {
	return &Corpus{data: data}
}

// Size returns the corpus size in bytes.
func (c *Corpus) Size() int {
	return len(c.data)
}

// Keys splits the corpus into lines without copying. The returned slices
// alias the mapping and are invalid after Close. A final newline does not
// start an extra key, but empty lines elsewhere are empty keys. Lines may
// end in "\r\n"; one trailing '\r' is dropped from each key.
func (c *Corpus) Keys() [][]byte {
	if len(c.data) == 0 {
		return nil
	}
	keys := bytes.Split(c.data, []byte{'\n'})
	if last := keys[len(keys)-1]; len(last) == 0 {
		keys = keys[:len(keys)-1]
	}
	for i, k := range keys {
		keys[i] = bytes.TrimSuffix(k, []byte{'\r'})
	}
	return keys
}

// Close unmaps the corpus.
func (c *Corpus) Close() error {
	if c.mm == nil {
		return nil
	}
	err := c.mm.Unmap()
	c.mm, c.data = nil, nil
	return err
}
