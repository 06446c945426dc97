package probe

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Write prints the report as an aligned table, one row per hash.
func (r *Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "keys: %d  distinct: %d  buckets: %d (2^%d)\n\n",
		r.Keys, r.Distinct, 1<<r.BucketBits, r.BucketBits); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "hash\thash collisions\tbucket collisions\tused buckets\tmax bucket\tload\t")
	for _, s := range r.Stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.3f\t\n",
			s.Hash, s.HashCollisions, s.BucketCollisions, s.UsedBuckets, s.MaxBucket, s.Load(r.BucketBits))
	}
	return tw.Flush()
}

// Load is the fraction of buckets holding at least one key.
func (s Stats) Load(bucketBits int) float64 {
	return float64(s.UsedBuckets) / float64(uint64(1)<<bucketBits)
}
