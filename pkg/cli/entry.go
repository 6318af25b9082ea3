package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/funvibe/funqy/internal/backend"
	"github.com/funvibe/funqy/internal/config"
	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/export"
	"github.com/funvibe/funqy/internal/lexer"
	"github.com/funvibe/funqy/internal/logging"
	"github.com/funvibe/funqy/internal/parser"
	"github.com/funvibe/funqy/internal/pipeline"
	"github.com/funvibe/funqy/internal/prettyprinter"
	"github.com/funvibe/funqy/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const usageText = `Usage: funqy <command> [flags] [args]

Commands:
  run <file>      Run a program (also: funqy <file>)
  repl            Start an interactive session
  fmt <file>...   Reformat programs
  history         List journaled runs
  version         Print the version

Run 'funqy <command> -h' for command flags.
`

// Run is the process entry point.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()
	os.Exit(Main(os.Args[1:], os.Stdout, os.Stderr))
}

// Main dispatches a command line and returns the exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return 2
	}

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == "run":
		return cmdRun(rest, stdout, stderr)
	case cmd == "repl":
		return cmdRepl(rest, stdout, stderr)
	case cmd == "fmt":
		return cmdFmt(rest, stdout, stderr)
	case cmd == "history":
		return cmdHistory(rest, stdout, stderr)
	case cmd == "version" || cmd == "-v" || cmd == "-version" || cmd == "--version":
		fmt.Fprintln(stdout, "funqy "+config.Version)
		return 0
	case cmd == "help" || cmd == "-h" || cmd == "-help" || cmd == "--help":
		fmt.Fprint(stdout, usageText)
		return 0
	case config.HasSourceExt(cmd):
		return cmdRun(args, stdout, stderr)
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usageText)
	return 2
}

// session is the configuration shared by every command.
type session struct {
	settings *config.Settings
	log      zerolog.Logger
}

func newSession(configPath string, stderr io.Writer) (*session, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logging.New(logging.Config{
		Level:  settings.LogLevel,
		Pretty: settings.LogPretty,
		Out:    stderr,
	})
	return &session{settings: settings, log: log}, nil
}

func (s *session) limits() evaluator.Limits {
	return evaluator.Limits{
		MaxDepth:    s.settings.MaxDepth,
		MaxSteps:    s.settings.MaxSteps,
		MaxBranches: s.settings.MaxBranches,
	}
}

// seed returns the flag value when given, then the configured seed, then a fresh one.
func (s *session) seed(flagSeed uint64, set bool) uint64 {
	switch {
	case set:
		return flagSeed
	case s.settings.Seed != nil:
		return *s.settings.Seed
	default:
		return rand.Uint64()
	}
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "write the final value to `file` (.yaml, .msgpack, or text)")
	seed := fs.Uint64("seed", 0, "seed for measurement")
	tree := fs.Bool("tree", false, "print a structure dump of the final value")
	journal := fs.String("journal", "", "record the run in the sqlite `db`")
	configPath := fs.String("config", "", "settings `file` (default funqy.yaml)")
	expr := fs.String("e", "", "run `source` given on the command line")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var (
		source []byte
		path   string
		err    error
	)
	switch {
	case *expr != "":
		source, path = []byte(*expr), "<eval>"
	case fs.NArg() == 1:
		path = fs.Arg(0)
		if source, err = os.ReadFile(path); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	default:
		fmt.Fprintln(stderr, "usage: funqy run [flags] <file>")
		return 2
	}

	sess, err := newSession(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	runSeed := sess.seed(*seed, flagWasSet(fs, "seed"))
	runID := uuid.New()
	log := sess.log.With().Str("run", runID.String()).Logger()
	log.Info().Str("file", path).Uint64("seed", runSeed).Msg("run started")

	started := time.Now()
	ctx := runPipeline(string(source), path, func(e *evaluator.Evaluator) {
		e.Out = stdout
		e.Random = evaluator.NewSeededSource(runSeed)
		e.Limits = sess.limits()
		e.Log = log
	})
	elapsed := time.Since(started)

	result, _ := ctx.Result.(evaluator.Value)
	status := 0
	if len(ctx.Errors) > 0 {
		fmt.Fprintln(stderr, "Processing failed with errors:")
		for _, err := range ctx.Errors {
			fmt.Fprintf(stderr, "- %s\n", err.Error())
		}
		status = 1
	} else if result != nil {
		fmt.Fprintf(stdout, ">> %s\n", result.Inspect())
		if *tree {
			fmt.Fprint(stdout, export.Tree(result))
		}
		if *output != "" {
			if err := writeOutput(*output, result); err != nil {
				fmt.Fprintf(stderr, "Error: %s\n", err)
				status = 1
			}
		}
	} else if *output != "" {
		fmt.Fprintln(stderr, "Error: program has no final value to write")
		status = 1
	}
	log.Info().Dur("elapsed", elapsed).Int("status", status).Msg("run finished")

	dbPath := *journal
	if dbPath == "" {
		dbPath = sess.settings.Journal
	}
	if dbPath != "" {
		run := &store.Run{
			ID:        runID,
			File:      path,
			Seed:      runSeed,
			Prints:    ctx.Prints,
			StartedAt: started,
			Duration:  elapsed,
		}
		if result != nil {
			snap := export.Capture(result)
			run.Result = &snap
		}
		if len(ctx.Errors) > 0 {
			run.Error = errors.Join(diagnosticErrors(ctx)...).Error()
		}
		if err := recordRun(dbPath, run, log); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			status = 1
		}
	}
	return status
}

// runPipeline lexes, parses and evaluates source with a freshly configured evaluator.
func runPipeline(source, path string, configure func(*evaluator.Evaluator)) *pipeline.PipelineContext {
	initialContext := pipeline.NewPipelineContext(source)
	initialContext.FilePath = path

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		backend.NewExecutionProcessor(backend.NewTreeWalk(configure)),
	)
	return processingPipeline.Run(initialContext)
}

func diagnosticErrors(ctx *pipeline.PipelineContext) []error {
	errs := make([]error, 0, len(ctx.Errors))
	for _, e := range ctx.Errors {
		errs = append(errs, e)
	}
	return errs
}

func writeOutput(path string, v evaluator.Value) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Encode(f, []export.Snapshot{export.Capture(v)}, export.FormatFromPath(path)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func recordRun(path string, run *store.Run, log zerolog.Logger) error {
	ctx := context.Background()
	j, err := store.Open(ctx, path, log)
	if err != nil {
		return err
	}
	defer j.Close()
	return j.Record(ctx, run)
}

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func cmdFmt(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	write := fs.Bool("w", false, "write result to the source file instead of stdout")
	check := fs.Bool("check", false, "list files whose formatting differs; exit 1 if any")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: funqy fmt [-w] [-check] <file>...")
		return 2
	}

	status := 0
	for _, path := range fs.Args() {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			status = 1
			continue
		}
		prog, err := parser.ParseSource(string(src), path)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			status = 1
			continue
		}
		formatted := prettyprinter.Print(prog)

		switch {
		case *check:
			if formatted != string(src) {
				fmt.Fprintln(stdout, path)
				status = 1
			}
		case *write:
			if formatted == string(src) {
				continue
			}
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(stderr, "Error: %s\n", err)
				status = 1
			}
		default:
			fmt.Fprint(stdout, formatted)
		}
	}
	return status
}

// -----------------------------------------------------------------------------
// history
// -----------------------------------------------------------------------------

func cmdHistory(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	journal := fs.String("journal", "", "sqlite `db` to read")
	limit := fs.Int("n", 10, "number of runs to list")
	configPath := fs.String("config", "", "settings `file` (default funqy.yaml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	sess, err := newSession(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	dbPath := *journal
	if dbPath == "" {
		dbPath = sess.settings.Journal
	}
	if dbPath == "" {
		fmt.Fprintf(stderr, "Error: no journal configured (use -journal or %s)\n", config.EnvJournal)
		return 1
	}

	ctx := context.Background()
	j, err := store.Open(ctx, dbPath, sess.log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	defer j.Close()

	runs, err := j.Recent(ctx, *limit)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	for _, run := range runs {
		fmt.Fprintln(stdout, formatRun(run))
	}
	return 0
}

func formatRun(run store.Run) string {
	outcome := "-"
	switch {
	case run.Error != "":
		outcome = "error: " + firstLine(run.Error)
	case run.Result != nil:
		outcome = ">> " + run.Result.Repr
	}
	return fmt.Sprintf("%s  %s  %s  seed=%d  %s  %s",
		run.ID.String()[:8],
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		filepath.Base(run.File),
		run.Seed,
		run.Duration.Round(time.Microsecond),
		outcome,
	)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
