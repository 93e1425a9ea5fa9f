// Command fsagrep is the grep-style CLI (C17): compile a regex into an
// optimized deterministic FSA and scan a file for matching lines, via
// either the table or the JIT-contract runner.
//
// Grounded in original_source/src/main.rs's option handling and
// projectdiscovery-alterx/internal/runner/runner.go's goflags/gologger
// wiring style.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/coregx/fsagrep/config"
	"github.com/coregx/fsagrep/internal/linescan"
	"github.com/coregx/fsagrep/litfilter"
	"github.com/coregx/fsagrep/pipeline"
	"github.com/coregx/fsagrep/rexp"
	"github.com/coregx/fsagrep/runner"
)

// options holds the parsed CLI flags plus the positional input-file
// argument, which goflags has no native primitive for (see
// SPEC_FULL.md 4.15), so it is recovered from os.Args after Parse.
type options struct {
	expr      string
	jit       bool
	verbose   bool
	silent    bool
	inputFile string
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Regex grep backed by a weighted-FSA-algebra table/JIT runner.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.expr, "expr", "e", "", "regular expression to match"),
	)

	flagSet.CreateGroup("runner", "Runner",
		flagSet.BoolVarP(&opts.jit, "jit", "J", false, "use the JIT-contract runner instead of the table runner"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.silent, "silent", false, "display results only"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.expr == "" {
		gologger.Fatal().Msgf("fsagrep: -e/--expr is required\n")
	}

	// goflags has no positional-argument primitive; recover the input
	// file from the raw args the way the wider projectdiscovery
	// ecosystem does when it needs one (first arg not consumed as a
	// flag or flag value).
	opts.inputFile = positionalArg(os.Args[1:])
	if opts.inputFile == "" {
		gologger.Fatal().Msgf("fsagrep: an input file is required\n")
	}

	return opts
}

// positionalArg scans raw CLI args for the first one that is not a
// flag (-x/--x) and not the value immediately following a recognized
// value-taking flag.
func positionalArg(args []string) string {
	valueFlags := map[string]bool{
		"-e": true, "--expr": true,
	}
	skipNext := false
	for _, a := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(a, "-") {
			if valueFlags[a] {
				skipNext = true
			}
			continue
		}
		return a
	}
	return ""
}

func main() {
	opts := parseFlags()
	cfg := config.DefaultConfig()

	ast, err := rexp.Parse(opts.expr)
	if err != nil {
		gologger.Fatal().Msgf("fsagrep: %s\n", err)
	}

	nfa, err := rexp.Compile(ast)
	if err != nil {
		gologger.Fatal().Msgf("fsagrep: %s\n", err)
	}

	var dumpW io.Writer
	if cfg.DumpOptFSA {
		dumpW = os.Stderr
	}
	optimized, err := pipeline.OptimizeWithConfig(nfa, cfg, dumpW)
	if err != nil {
		gologger.Fatal().Msgf("fsagrep: %s\n", err)
	}
	if cfg.JITDumpIR {
		gologger.Info().Msgf("optimized FSA: %d states", optimized.NStates())
	}

	var filter *litfilter.Filter
	if !cfg.JITNoOpt {
		if f, ok, err := litfilter.Build(ast); err == nil && ok {
			filter = f
		}
	}

	f, err := os.Open(opts.inputFile)
	if err != nil {
		gologger.Fatal().Msgf("Cannot open the file\n")
	}
	defer f.Close()

	var r runner.Runner
	if opts.jit {
		r = runner.NewJITRunner(optimized)
	} else {
		r = runner.NewTableRunner(optimized)
	}

	if cfg.JITDumpASM != "" {
		if asmErr := dumpTableLayout(cfg.JITDumpASM, optimized, opts.jit); asmErr != nil {
			gologger.Error().Msgf("fsagrep: could not write %s: %v\n", cfg.JITDumpASM, asmErr)
		}
	}

	if filter != nil {
		if runErr := runFiltered(r, filter, f, os.Stdout); runErr != nil {
			gologger.Fatal().Msgf("fsagrep: %s\n", runErr)
		}
		return
	}

	if runErr := r.Run(f, os.Stdout); runErr != nil {
		gologger.Fatal().Msgf("fsagrep: %s\n", runErr)
	}
}

// runFiltered discards every line the prefilter proves cannot match
// before handing the surviving candidates to r, which still makes the
// real accept/reject decision per line — the prefilter only ever
// narrows the input, never decides a match itself.
func runFiltered(r runner.Runner, filter *litfilter.Filter, in io.Reader, out io.Writer) error {
	var candidates bytes.Buffer
	sc := linescan.NewScanner(in)
	for sc.Scan() {
		line := sc.Bytes()
		if filter.MayMatch(line) {
			candidates.Write(line)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return r.Run(&candidates, out)
}

// dumpTableLayout writes the table/JIT layout's shape to path in lieu
// of real assembly (RUSTRE_JIT_DUMPASM's contract, see DESIGN.md).
func dumpTableLayout(path string, optimized interface{ NStates() int }, jit bool) error {
	kind := "table"
	if jit {
		kind = "jit"
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("runner=%s states=%d\n", kind, optimized.NStates())), 0o644)
}
