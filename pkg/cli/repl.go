package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/funvibe/funqy/internal/config"
	"github.com/funvibe/funqy/internal/export"
	"github.com/funvibe/funqy/internal/lexer"
	"github.com/funvibe/funqy/internal/logging"
	"github.com/funvibe/funqy/internal/token"
	funqy "github.com/funvibe/funqy/pkg/embed"
	"github.com/peterh/liner"
)

const (
	historyFile = ".funqy_history"
	promptMain  = "funqy> "
	promptCont  = "  ...> "
)

const replHelp = `REPL commands:
  :tree <expr>  Show the structure of a value
  :names        List bound names
  :reset        Drop all bindings
  :help         Show this help
  :quit         Exit the REPL
`

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

// repl holds one interactive session's interpreter and output streams.
type repl struct {
	newInterpreter func() *funqy.Interpreter
	in             *funqy.Interpreter
	stdout, stderr io.Writer
	color          bool
}

func cmdRepl(args []string, stdout, stderr io.Writer) (ret int) {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	history := fs.String("history", "", "history `file` (default ~/"+historyFile+")")
	seed := fs.Uint64("seed", 0, "seed for measurement")
	configPath := fs.String("config", "", "settings `file` (default funqy.yaml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	sess, err := newSession(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	histPath := *history
	if histPath == "" {
		histPath = sess.settings.History
	}
	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}
	runSeed := sess.seed(*seed, flagWasSet(fs, "seed"))
	sess.log.Info().Uint64("seed", runSeed).Msg("repl started")

	r := newRepl(stdout, stderr, func() *funqy.Interpreter {
		return funqy.New(
			funqy.WithSeed(runSeed),
			funqy.WithOutput(stdout),
			funqy.WithLimits(sess.limits()),
			funqy.WithLogger(sess.log),
		)
	})

	fmt.Fprintf(stdout, "funqy %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", config.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if !r.handle(code) {
			return 0
		}
	}
}

func newRepl(stdout, stderr io.Writer, newInterpreter func() *funqy.Interpreter) *repl {
	return &repl{
		newInterpreter: newInterpreter,
		in:             newInterpreter(),
		stdout:         stdout,
		stderr:         stderr,
		color:          logging.IsTerminal(stderr),
	}
}

// handle runs one complete input and reports false when the session should end.
func (r *repl) handle(code string) bool {
	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}

	res, err := r.in.Eval(code)
	if err != nil {
		r.report(err)
		return true
	}
	if res.Value != nil {
		fmt.Fprintf(r.stdout, ">> %s\n", res.Value.Inspect())
	}
	return true
}

func (r *repl) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(name) {
	case ":quit", ":q":
		return false
	case ":help":
		fmt.Fprint(r.stdout, replHelp)
	case ":names":
		fmt.Fprintln(r.stdout, strings.Join(r.in.Names(), " "))
	case ":reset":
		r.in = r.newInterpreter()
	case ":tree":
		if strings.TrimSpace(arg) == "" {
			fmt.Fprintln(r.stderr, "usage: :tree <expr>")
			break
		}
		res, err := r.in.Eval(arg)
		if err != nil {
			r.report(err)
			break
		}
		if res.Value == nil {
			fmt.Fprintln(r.stderr, ":tree needs an expression")
			break
		}
		fmt.Fprint(r.stdout, export.Tree(res.Value))
	default:
		fmt.Fprintf(r.stderr, "unknown command %s. Type :help for commands.\n", name)
	}
	return true
}

func (r *repl) report(err error) {
	msg := err.Error()
	if r.color {
		msg = red(msg)
	}
	fmt.Fprintln(r.stderr, msg)
}

// readInput reads lines until brackets balance, so a case table or block can
// span several lines.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src has unclosed brackets.
func incomplete(src string) bool {
	depth := 0
	for _, tok := range lexer.New(src).Tokenize() {
		switch tok.Type {
		case token.LPAREN, token.LBRACE, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACE, token.RBRACKET:
			depth--
		}
	}
	return depth > 0
}
