package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/KromDaniel/keysynth/internal/config"
	"github.com/KromDaniel/keysynth/internal/synth"
	"github.com/KromDaniel/keysynth/pkg/keysynth"
)

const (
	appVersion = "1.0.0"
	appName    = "keysynth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		count       = fs.Uint64("n", uint64(cfg.Count), "Number of keys to generate")
		seed        = fs.Uint64("seed", cfg.Seed, "Random seed")
		incremental = fs.Bool("i", false, "Shorthand for -dist incremental")
		verbose     = fs.Bool("v", cfg.Verbose, "Log pattern analysis to stderr")
		digest      = fs.Bool("digest", false, "Print the xxhash64 digest of the output to stderr")
		goFile      = fs.String("go", "", "Write the keys as Go source to this file instead of stdout")
		pkgName     = fs.String("package", "keys", "Package name for -go output")
		varName     = fs.String("name", "Keys", "Identifier of the key slice for -go output")
		hashFile    = fs.String("hash-go", "", "Write hash functions synthesized for the pattern to this Go file")
		bench       = fs.Bool("bench", false, "With -go or -hash-go, also write a _test.go file next to the output")
		helpFlag    = fs.Bool("help", false, "Show help message")
		version     = fs.Bool("version", false, "Print version information")
	)
	dist := cfg.Distribution
	fs.TextVar(&dist, "dist", cfg.Distribution, "Distribution: uniform, normal or incremental")
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
		fmt.Fprintf(stderr, "Error: exactly one pattern argument is required\n\n")
		printHelp(fs, stderr)
		return 1
	}
	if *incremental {
		dist = synth.Incremental
	}

	opts := keysynth.Options{
		Pattern:      fs.Arg(0),
		Count:        *count,
		Seed:         *seed,
		Distribution: dist.String(),
		Verbose:      *verbose,
		LogOutput:    stderr,
	}

	if *hashFile != "" {
		fns, err := keysynth.EmitHash(opts, keysynth.GoOptions{
			Package:    *pkgName,
			Name:       *varName,
			OutputFile: *hashFile,
			Benchmark:  *bench,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if *verbose {
			for _, f := range fns {
				fmt.Fprintf(stderr, "[keysynth] hash %s: %d-byte keys, windows at %v\n", f.Variant, f.Size, f.Offsets)
			}
		}
	}

	var res keysynth.Result
	switch {
	case *goFile != "":
		res, err = keysynth.EmitGo(opts, keysynth.GoOptions{
			Package:    *pkgName,
			Name:       *varName,
			OutputFile: *goFile,
			Benchmark:  *bench,
		})
	case *hashFile == "":
		res, err = keysynth.Generate(stdout, opts)
	default:
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *digest && *goFile == "" {
		fmt.Fprintf(stderr, "xxhash64 %016x  %d keys\n", res.Digest, res.Lines)
	}
	return 0
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS] <pattern>\n\n", appName)
	fmt.Fprintln(w, "Generate keys matching a regex-like pattern, one per line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  KEYSYNTH_COUNT, KEYSYNTH_SEED, KEYSYNTH_DISTRIBUTION and KEYSYNTH_VERBOSE")
	fmt.Fprintln(w, "  set the flag defaults; a .env file in the working directory is read too.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s '[0-9]{3}'                             # 100 random three digit keys\n", appName)
	fmt.Fprintf(w, "  %s -n 1000 -dist normal 'user_[a-z]{4,8}'  # bell-shaped choices\n", appName)
	fmt.Fprintf(w, "  %s -i -n 26 '[a-z]'                        # enumerate a..z\n", appName)
	fmt.Fprintf(w, "  %s -n 500 -go keys.go -bench 'id-[0-9a-f]{8}'\n", appName)
	fmt.Fprintf(w, "  %s -hash-go keys_hash.go -bench 'id-[0-9a-f]{8}'     # pattern-specific hash\n", appName)
}
