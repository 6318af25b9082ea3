// Package funqy embeds the interpreter in Go programs.
//
// An Interpreter keeps its bindings between calls, so declarations made by
// one Eval are visible to the next:
//
//	in := funqy.New(funqy.WithSeed(7))
//	in.Eval(`import "std/gates"`)
//	res, err := in.Eval(`bell(F, F)`)
package funqy

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/export"
	"github.com/funvibe/funqy/internal/modules"
	"github.com/funvibe/funqy/internal/parser"
	"github.com/rs/zerolog"
)

// Value is an evaluated value.
type Value = evaluator.Value

// Limits bounds a single evaluation.
type Limits = evaluator.Limits

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithSeed makes measurements reproducible.
func WithSeed(seed uint64) Option {
	return func(in *Interpreter) { in.eval.Random = evaluator.NewSeededSource(seed) }
}

// WithRandom replaces the measurement source.
func WithRandom(r evaluator.RandomSource) Option {
	return func(in *Interpreter) { in.eval.Random = r }
}

// WithOutput redirects print statements. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.eval.Out = w }
}

func WithLimits(l Limits) Option {
	return func(in *Interpreter) { in.eval.Limits = l }
}

func WithLogger(log zerolog.Logger) Option {
	return func(in *Interpreter) { in.eval.Log = log }
}

// WithBaseDir sets the directory relative imports resolve against.
func WithBaseDir(dir string) Option {
	return func(in *Interpreter) { in.eval.BaseDir = dir }
}

// Result is the outcome of one Eval call.
type Result struct {
	// Prints holds the output of print statements run by this call.
	Prints []string
	// Value is the last expression statement's value, or nil.
	Value Value
}

func (r *Result) String() string {
	if r.Value == nil {
		return ""
	}
	return r.Value.Inspect()
}

// Interpreter evaluates programs against a persistent environment.
type Interpreter struct {
	eval *evaluator.Evaluator
	env  *evaluator.Environment
}

func New(opts ...Option) *Interpreter {
	e := evaluator.New()
	e.Out = io.Discard
	e.Loader = modules.NewLoader()
	e.BaseDir = "."
	in := &Interpreter{eval: e, env: evaluator.NewEnvironment()}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Eval runs src. Bindings made before a failing statement are kept.
func (in *Interpreter) Eval(src string) (*Result, error) {
	return in.EvalContext(context.Background(), src)
}

// EvalContext is Eval with cancellation.
func (in *Interpreter) EvalContext(ctx context.Context, src string) (*Result, error) {
	return in.run(ctx, src, "<eval>")
}

// EvalFile runs a source file; its relative imports resolve against its directory.
func (in *Interpreter) EvalFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	prevDir := in.eval.BaseDir
	in.eval.BaseDir = filepath.Dir(path)
	defer func() { in.eval.BaseDir = prevDir }()
	return in.run(context.Background(), string(src), path)
}

func (in *Interpreter) run(ctx context.Context, src, file string) (*Result, error) {
	program, err := parser.ParseSource(src, file)
	if err != nil {
		return nil, err
	}

	in.eval.Context = ctx
	start := len(in.eval.Prints)
	val, env, err := in.eval.EvalProgram(program, in.env)
	in.env = env

	res := &Result{Prints: append([]string(nil), in.eval.Prints[start:]...)}
	if err != nil {
		return res, err
	}
	res.Value = val
	return res, nil
}

// Lookup returns a bound name.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	return in.env.Get(name)
}

// Names lists every bound name.
func (in *Interpreter) Names() []string {
	return in.env.Names()
}

// Measure collapses v using the interpreter's random source.
func (in *Interpreter) Measure(v Value) (Value, error) {
	return in.eval.Measure(v)
}

// Snapshot describes v with per-branch amplitudes and probabilities.
func Snapshot(v Value) export.Snapshot {
	return export.Capture(v)
}
