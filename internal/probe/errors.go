package probe

import "errors"

var (
	ErrUnknownHash = errors.New("keyprobe: unknown hash function")
	ErrBucketBits  = errors.New("keyprobe: bucket bits must be between 1 and 28")
	ErrEmptyCorpus = errors.New("keyprobe: corpus has no keys")
)
