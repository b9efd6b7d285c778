// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/mipsasm/config"
	"github.com/ezrec/mipsasm/internal"
	"github.com/ezrec/mipsasm/listing"
	"github.com/ezrec/mipsasm/mips"
	"github.com/ezrec/mipsasm/translate"
)

// defines collects repeated -D name=address flags.
type defines map[string]uint32

func (d defines) String() string {
	var parts []string
	for label, address := range d {
		parts = append(parts, fmt.Sprintf("%v=%v", label, mips.Hex(address)))
	}
	return strings.Join(parts, ",")
}

func (d defines) Set(value string) (err error) {
	label, text, ok := strings.Cut(value, "=")
	if !ok || len(label) == 0 {
		return fmt.Errorf("%q: expected name=address", value)
	}
	address, err := mips.ParseAddress(text)
	if err != nil {
		return
	}
	d[label] = address
	return
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout))
}

// run assembles per the command line, and returns the process exit code.
// Deferred cleanup completes before run returns.
func run(args []string, stdin io.Reader, stdout io.Writer) (code int) {
	var compile string
	var start string
	var script string
	var strict bool
	var verbose bool
	var fields bool
	var lang string
	var at string
	predefined := defines{}

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)

	flags.StringVar(&compile, "c", "-", ".s file to assemble")
	flags.StringVar(&start, "a", "", "Starting address (default "+mips.DEFAULT_STARTING+")")
	flags.StringVar(&script, "f", "", "Starlark configuration script")
	flags.Var(predefined, "D", "Predefine a label as name=address (repeatable)")
	flags.BoolVar(&strict, "strict", false, "Reject repeated labels")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&fields, "fields", false, "List the decoded fields of every instruction")
	flags.StringVar(&lang, "lang", "", "Message language, such as en-US")
	flags.StringVar(&at, "at", "", "Only show the instruction at this address")

	err := flags.Parse(args[1:])
	if err != nil {
		return 2
	}

	if flags.NArg() != 0 {
		log.Printf("%v: Unknown arguments: %v", args[0], flags.Args())
		return 2
	}

	if len(lang) != 0 {
		err = translate.SetLanguage(lang)
		if err != nil {
			log.Printf("-lang %v: %v", lang, err)
			return 1
		}
	}

	cfg := &config.Config{}
	if len(script) != 0 {
		cfg, err = config.Load(script, nil)
		if err != nil {
			log.Printf("%v: %v", script, err)
			return 1
		}
	}

	// Flags override the configuration script.
	if len(start) == 0 {
		start = cfg.Start
	}
	if len(start) == 0 {
		start = mips.DEFAULT_STARTING
	}

	asm := &mips.Assembler{
		Verbose:      verbose || cfg.Verbose,
		StrictLabels: strict || cfg.Strict,
	}
	for label, address := range internal.IterSeq2Concat(maps.All(cfg.Labels), maps.All(predefined)) {
		asm.Predefine(label, address)
	}

	input := stdin
	if compile != "-" {
		inf, err := os.Open(compile)
		if err != nil {
			log.Printf("%v: %v", compile, err)
			return 1
		}
		defer inf.Close()
		input = inf
	}

	prog, err := asm.Parse(input, start)
	if err != nil {
		log.Printf("%v: %v", compile, err)
		return 1
	}

	opts := listing.Options{Fields: fields}
	if file, ok := stdout.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		width, _, err := term.GetSize(int(file.Fd()))
		if err == nil && width > 40 {
			opts.Width = width - 40
		}
	}

	if len(at) != 0 {
		address, err := mips.ParseAddress(at)
		if err != nil {
			log.Printf("-at %v: %v", at, err)
			return 1
		}
		dbg := prog.Debug(address)
		if dbg.Result == nil {
			log.Printf("-at %v: no instruction", at)
			return 1
		}
		prog = &mips.Program{
			StartingAddress: dbg.Address,
			Results:         []mips.Result{*dbg.Result},
		}
	}

	err = listing.Write(stdout, prog, opts)
	if err != nil {
		log.Print(err)
		return 1
	}

	for _, err := range prog.Errors() {
		log.Printf("%v: %v", compile, err)
		code = 1
	}

	return
}
