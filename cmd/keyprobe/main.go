package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/KromDaniel/keysynth/internal/config"
	"github.com/KromDaniel/keysynth/internal/probe"
	"github.com/KromDaniel/keysynth/pkg/keysynth"
)

const (
	appVersion = "1.0.0"
	appName    = "keyprobe"
)

// hashList collects -hash values. Each value may hold several
// comma-separated names; the first explicit value replaces the default.
type hashList struct {
	names []string
	set   bool
}

func (h *hashList) String() string {
	if h == nil {
		return ""
	}
	return strings.Join(h.names, ", ")
}

func (h *hashList) Set(value string) error {
	if !h.set {
		h.names, h.set = nil, true
	}
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := probe.Lookup(name); !ok {
			return fmt.Errorf("unknown hash %q (available: %s)", name, strings.Join(probe.Names(), ", "))
		}
		h.names = append(h.names, name)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	hashes := &hashList{names: cfg.Hashes}
	fs.Var(hashes, "hash", "Hash functions to probe, comma separated or repeated")
	bits := fs.Int("bits", cfg.BucketBits, fmt.Sprintf(
		"Bucket table size as a power of two (1-%d). Each hash holds a 4<<bits byte table;\n"+
			"concurrent tables are capped near 1 GiB, so at %d hashes run one at a time", probe.MaxBucketBits, probe.MaxBucketBits))
	keyPattern := fs.String("pattern", "", "Also probe the hash functions keysynth synthesizes for this pattern")
	helpFlag := fs.Bool("help", false, "Show help message")
	version := fs.Bool("version", false, "Print version information")
	fs.Usage = func() { printHelp(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *helpFlag {
		printHelp(fs, stdout)
		return 0
	}
	if *version {
		fmt.Fprintf(stdout, "%s version %s\n", appName, appVersion)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: exactly one corpus file is required\n\n")
		printHelp(fs, stderr)
		return 1
	}

	opts := probe.Options{Hashes: hashes.names, BucketBits: *bits}
	if *keyPattern != "" {
		extra, err := synthesized(*keyPattern)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		opts.Extra = extra
	}

	if err := probeFile(ctx, fs.Arg(0), opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// synthesized returns the hashes keysynth builds for pattern, named
// synth-<variant>.
func synthesized(pattern string) ([]probe.NamedHash, error) {
	fns, err := keysynth.HashFuncs(pattern)
	if err != nil {
		return nil, err
	}
	extra := make([]probe.NamedHash, len(fns))
	for i, f := range fns {
		extra[i] = probe.NamedHash{Name: "synth-" + f.Variant.String(), Fn: f.Sum64}
	}
	return extra, nil
}

func probeFile(ctx context.Context, path string, opts probe.Options, w io.Writer) error {
	corpus, err := probe.OpenCorpus(path)
	if err != nil {
		return err
	}
	defer corpus.Close()

	report, err := probe.Run(ctx, corpus.Keys(), opts)
	if err != nil {
		return err
	}
	return report.Write(w)
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS] <corpus-file>\n\n", appName)
	fmt.Fprintln(w, "Report hash and bucket collisions for a newline-delimited key corpus")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Hashes: %s\n", strings.Join(probe.Names(), ", "))
	fmt.Fprintln(w, "KEYPROBE_HASHES and KEYPROBE_BUCKET_BITS set the flag defaults.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  keysynth -n 100000 'user_[a-z0-9]{8}' > keys.txt && %s keys.txt\n", appName)
	fmt.Fprintf(w, "  %s -hash xxh3 -hash fnv1a -bits 12 keys.txt\n", appName)
	fmt.Fprintf(w, "  %s -pattern 'id-[0-9]{8}' ids.txt   # compare with synthesized hashes\n", appName)
}
