// ABOUTME: CLI entry point for supportbot
// ABOUTME: Parses flags, loads config and catalogs, builds the engine, dispatches to a mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"golang.org/x/term"

	"github.com/mauromedda/supportbot-go/internal/catalog"
	"github.com/mauromedda/supportbot-go/internal/config"
	"github.com/mauromedda/supportbot-go/internal/intent"
	"github.com/mauromedda/supportbot-go/internal/log"
	"github.com/mauromedda/supportbot-go/internal/mode/interactive"
	"github.com/mauromedda/supportbot-go/internal/mode/print"
	"github.com/mauromedda/supportbot-go/internal/mode/rpc"
	"github.com/mauromedda/supportbot-go/internal/session"
	"github.com/mauromedda/supportbot-go/internal/stats"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("supportbot %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type runMode int

const (
	modeInteractive runMode = iota
	modePrint
	modeRPC
)

// selectMode picks the front-end. Explicit flags win; otherwise a terminal on
// stdin gets the chat and anything else is answered line by line.
func selectMode(a cliArgs, stdinTTY bool) runMode {
	switch {
	case a.rpc:
		return modeRPC
	case a.print, len(a.rest) > 0, !stdinTTY:
		return modePrint
	}
	return modeInteractive
}

// run performs the full initialization sequence and dispatches to the selected mode.
func run(ctx context.Context, args cliArgs) error {
	if args.print && args.rpc {
		return fmt.Errorf("--print and --rpc are mutually exclusive")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	settings, err := config.Load(cwd)
	if err != nil {
		return err
	}
	settings = settings.Override(args.overrides())
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if lvl, ok := log.ParseLevel(settings.LogLevel); ok {
		log.SetLevel(lvl)
	}

	if args.export != "" {
		return exportTranscript(os.Stdout, args.export)
	}

	if args.explain {
		fmt.Print(config.Explain(settings))
		return nil
	}

	registry, err := buildRegistry(ctx, cwd, settings)
	if err != nil {
		return err
	}

	if args.listCatalogs {
		return listCatalogs(os.Stdout, registry)
	}

	bundle, err := registry.Get(settings.Catalog)
	if err != nil {
		return err
	}
	log.Debug("catalog: using %q from %s", bundle.Name(), bundle.Source)

	picker := newPicker(settings.Seed)
	holder := intent.NewHolder(intent.NewEngine(bundle.Catalog, intent.WithPicker(picker)))
	var current atomic.Pointer[catalog.Bundle]
	current.Store(bundle)

	welcome := settings.Welcome
	if welcome == "" {
		welcome = bundle.Welcome
	}
	sess := session.New(session.NewID(), holder, session.WithWelcome(welcome))

	counter := stats.NewCounter()
	defer counter.Attach(sess.Bus())()

	if settings.Transcript != "" {
		closeTranscript, err := openTranscript(settings.Transcript, sess, bundle)
		if err != nil {
			return err
		}
		defer closeTranscript()
	}

	mode := selectMode(args, term.IsTerminal(int(os.Stdin.Fd())))

	var reloads chan *catalog.Bundle
	if settings.Watch && mode != modePrint {
		if isBuiltin(bundle) {
			log.Warn("watch: %q is a builtin catalog; nothing to watch", bundle.Name())
		} else {
			reloads = make(chan *catalog.Bundle, 1)
			r := &reloader{path: bundle.Source, picker: picker, holder: holder, current: &current, out: reloads}
			w := config.NewWatcher([]string{bundle.Source}, r.reload)
			w.Start(ctx)
			defer w.Stop()
		}
	}

	switch mode {
	case modeRPC:
		router := rpc.NewRouter()
		rpc.RegisterHandlers(router, &rpc.Deps{
			Session: sess,
			Bundle:  current.Load,
			Stats:   counter,
		})
		return rpc.NewServer(router.Handle).Run(ctx)

	case modePrint:
		return print.Run(ctx, print.Config{
			OutputFormat: settings.Format(),
			Notice:       bundle.Notice,
		}, sess, args.rest)
	}

	closeLog := logToFile()
	defer closeLog()

	return interactive.Run(ctx, interactive.AppDeps{
		Session:      sess,
		Bundle:       bundle,
		Stats:        counter,
		TypingDelay:  settings.Delay(),
		TypingJitter: config.TypingJitter,
		Picker:       picker,
		Reloads:      reloads,
	})
}

// buildRegistry collects the builtin catalogs plus any found in the global,
// project and configured catalog directories, later ones overriding earlier.
func buildRegistry(ctx context.Context, cwd string, s *config.Settings) (*catalog.Registry, error) {
	registry, err := catalog.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, dir := range config.CatalogDirs(cwd) {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := registry.AddDir(ctx, dir); err != nil {
			return nil, fmt.Errorf("loading %s: %w", dir, err)
		}
	}
	if s.CatalogDir != "" {
		if err := registry.AddDir(ctx, s.CatalogDir); err != nil {
			return nil, fmt.Errorf("loading %s: %w", s.CatalogDir, err)
		}
	}
	return registry, nil
}

func listCatalogs(w io.Writer, r *catalog.Registry) error {
	for _, name := range r.Names() {
		b, err := r.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-12s %-40s %s\n", name, b.Description, b.Source)
	}
	return nil
}

func newPicker(seed uint64) intent.Picker {
	if seed != 0 {
		return intent.NewPicker(seed)
	}
	return intent.NewTimePicker()
}

// openTranscript starts a JSONL transcript for sess and returns the function
// that ends it.
func openTranscript(path string, sess *session.Session, b *catalog.Bundle) (func(), error) {
	w, err := session.NewWriter(path)
	if err != nil {
		return nil, err
	}
	if err := w.WriteRecord(session.RecordSessionStart, session.StartData{
		ID:      sess.ID,
		Catalog: b.Name(),
		Source:  b.Source,
	}); err != nil {
		w.Close()
		return nil, err
	}
	unsubscribe := w.Record(sess.Bus())

	return func() {
		unsubscribe()
		end := session.EndData{ID: sess.ID, Exchanges: len(sess.History())}
		if err := w.WriteRecord(session.RecordSessionEnd, end); err != nil {
			log.Warn("transcript: %v", err)
		}
		if err := w.Close(); err != nil {
			log.Warn("transcript: %v", err)
		}
	}, nil
}

// logToFile sends log output to a file while the chat owns the terminal.
func logToFile() func() {
	path := filepath.Join(config.GlobalDir(), "supportbot.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
}
