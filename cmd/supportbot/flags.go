// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --catalog, --print, --rpc, --format, --seed, --watch, --transcript, --export

package main

import (
	"flag"
	"io"

	"github.com/mauromedda/supportbot-go/internal/config"
)

type cliArgs struct {
	catalog      string
	catalogDir   string
	welcome      string
	seed         uint64
	print        bool
	rpc          bool
	outputFormat string
	verbose      bool
	logLevel     string
	listCatalogs bool
	explain      bool
	version      bool
	noDelay      bool
	typingDelay  int
	watch        bool
	transcript   string
	export       string

	rest []string
}

// parseFlags parses argv (without the program name).
func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs
	fs := flag.NewFlagSet("supportbot", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&args.catalog, "catalog", "", "Catalog name (support, wellbeing, ...) or path to a YAML catalog")
	fs.StringVar(&args.catalogDir, "catalog-dir", "", "Extra directory of YAML catalogs")
	fs.StringVar(&args.welcome, "welcome", "", "Override the greeting shown when the chat opens")
	fs.Uint64Var(&args.seed, "seed", 0, "Seed for response selection (0 = time-based)")
	fs.BoolVar(&args.print, "print", false, "Non-interactive print mode (args or stdin lines)")
	fs.BoolVar(&args.rpc, "rpc", false, "JSON-RPC over stdin/stdout")
	fs.StringVar(&args.outputFormat, "format", "", "Print mode output: text, json or stream-json")
	fs.BoolVar(&args.verbose, "verbose", false, "Debug logging")
	fs.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVar(&args.listCatalogs, "list-catalogs", false, "List available catalogs and exit")
	fs.BoolVar(&args.explain, "explain", false, "Show the effective settings and exit")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.noDelay, "no-delay", false, "Show replies immediately in the chat")
	fs.IntVar(&args.typingDelay, "typing-delay", -1, "Base typing delay in milliseconds")
	fs.BoolVar(&args.watch, "watch", false, "Reload a file catalog when it changes")
	fs.StringVar(&args.transcript, "transcript", "", "Append the session as JSONL to this file")
	fs.StringVar(&args.export, "export", "", "Render a JSONL transcript as HTML on stdout and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	args.rest = fs.Args()
	return args, nil
}

// overrides maps CLI flags to a Settings layer applied over the config files.
func (a cliArgs) overrides() *config.Settings {
	s := &config.Settings{
		Catalog:      a.catalog,
		CatalogDir:   a.catalogDir,
		Welcome:      a.welcome,
		Seed:         a.seed,
		LogLevel:     a.logLevel,
		OutputFormat: a.outputFormat,
		Watch:        a.watch,
		Transcript:   a.transcript,
	}
	if a.verbose {
		s.LogLevel = "debug"
	}
	switch {
	case a.noDelay:
		zero := 0
		s.TypingDelay = &zero
	case a.typingDelay >= 0:
		d := a.typingDelay
		s.TypingDelay = &d
	}
	return s
}
