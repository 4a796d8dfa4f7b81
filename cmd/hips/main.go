package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cdeil/hips/internal/config"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitConvertError = 3
	ExitFetchError   = 4
	ExitStorageError = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "convert":
		return runConvert(cmdArgs)
	case "fetch":
		return runFetch(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

// newFlagSet returns a flag set with a usage header followed by the
// default flag listing.
func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

// loadConfig builds the base configuration: defaults, then the optional
// config file, then HIPS_* environment variables. Flag values are merged
// on top by the caller.
func loadConfig(path string) (config.Config, int) {
	cfg := config.Default()

	if path != "" {
		fileCfg, err := config.LoadFromFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file: %v\n", err)
			return cfg, ExitInvalidArgs
		}
		cfg = cfg.Merge(fileCfg)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		return cfg, ExitInvalidArgs
	}

	return cfg, ExitSuccess
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: hips <command> [options]

Commands:
  convert  Convert a HEALPix all-sky FITS map into a HiPS tile tree
  fetch    Download tiles from a remote HiPS survey into a local tree

Run 'hips <command> -h' for command-specific help.`)
}
