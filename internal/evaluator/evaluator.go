package evaluator

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/funvibe/funqy/internal/ast"
	"github.com/rs/zerolog"
)

// Limits bounds evaluation. A zero field disables that limit.
type Limits struct {
	MaxDepth    int // nesting depth of Eval calls
	MaxSteps    int // total Eval calls per evaluator
	MaxBranches int // branches in any single superposition
}

func DefaultLimits() Limits {
	return Limits{MaxDepth: 10000, MaxSteps: 0, MaxBranches: 1 << 16}
}

// ModuleLoader resolves and parses imported files.
type ModuleLoader interface {
	// Load returns the parsed module and its canonical path.
	Load(path, baseDir string) (*ast.Program, string, error)
}

type Evaluator struct {
	// Context for cancellation
	Context context.Context

	Out io.Writer
	// Prints collects the representation of every print statement, in order.
	Prints []string
	// Random drives measurement outcomes
	Random RandomSource
	Limits Limits
	Log    zerolog.Logger

	// Loader for modules
	Loader ModuleLoader
	// BaseDir for import resolution (optional)
	BaseDir string
	// CurrentFile being evaluated
	CurrentFile string
	// ModuleCache holds the exports of every evaluated module by canonical path
	ModuleCache map[string]map[string]Value

	importing map[string]bool
	evalDepth int
	steps     int
}

func New() *Evaluator {
	return &Evaluator{
		Context:     context.Background(),
		Out:         os.Stdout,
		Random:      NewSeededSource(uint64(time.Now().UnixNano())),
		Limits:      DefaultLimits(),
		Log:         zerolog.Nop(),
		ModuleCache: make(map[string]map[string]Value),
		importing:   make(map[string]bool),
	}
}

// Eval evaluates an expression in env.
func (e *Evaluator) Eval(node ast.Expression, env *Environment) (Value, error) {
	e.evalDepth++
	defer func() { e.evalDepth-- }()

	if e.Limits.MaxDepth > 0 && e.evalDepth > e.Limits.MaxDepth {
		e.Log.Warn().Int("depth", e.evalDepth).Msg("recursion limit reached")
		return nil, withPosition(newError(ResourceExhausted, "maximum recursion depth %d exceeded", e.Limits.MaxDepth), node.GetToken())
	}
	e.steps++
	if e.Limits.MaxSteps > 0 && e.steps > e.Limits.MaxSteps {
		e.Log.Warn().Int("steps", e.steps).Msg("step limit reached")
		return nil, withPosition(newError(ResourceExhausted, "step limit %d exceeded", e.Limits.MaxSteps), node.GetToken())
	}
	if e.Context != nil && e.steps%1024 == 0 {
		if err := e.Context.Err(); err != nil {
			return nil, withPosition(newError(ResourceExhausted, "evaluation cancelled: %v", err), node.GetToken())
		}
	}

	val, err := e.evalCore(node, env)
	if err != nil {
		return nil, withPosition(err, node.GetToken())
	}
	return val, nil
}

func (e *Evaluator) evalCore(node ast.Expression, env *Environment) (Value, error) {
	switch node := node.(type) {
	case *ast.Identifier:
		return env.Lookup(node.Value)
	case *ast.TupleLiteral:
		return e.evalTuple(node, env)
	case *ast.FunctionLiteral:
		return &Closure{Parameter: node.Parameter, Body: node.Body, Env: env}, nil
	case *ast.CaseFunction:
		return &Closure{Cases: node.Cases, Env: env}, nil
	case *ast.CallExpression:
		return e.evalCall(node, env)
	case *ast.ExtractExpression:
		scrutinee, err := e.Eval(node.Scrutinee, env)
		if err != nil {
			return nil, err
		}
		return e.Extract(scrutinee, node.Cases, env)
	case *ast.IfExpression:
		return e.evalIf(node, env)
	case *ast.SupExpression:
		return e.evalSup(node, env)
	case *ast.PhaseFlipExpression:
		val, err := e.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		return PhaseFlip(val), nil
	case *ast.MeasureExpression:
		val, err := e.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		return e.Measure(val)
	case *ast.InvertExpression:
		return e.evalInvert(node, env)
	case *ast.RepeatExpression:
		return e.evalRepeat(node, env)
	case *ast.AmplitudeExpression:
		return e.evalAmplitude(node, env)
	case *ast.BlockExpression:
		return e.evalBlock(node, env)
	case *ast.StringLiteral:
		return nil, newError(Internal, "string literal %q is only valid as an import path", node.Value)
	}
	return nil, newError(Internal, "unknown expression %T", node)
}

// EvalProgram runs every statement in order and returns the value of the last
// expression statement (nil if there is none) together with the final environment.
func (e *Evaluator) EvalProgram(program *ast.Program, env *Environment) (Value, *Environment, error) {
	if program.File != "" {
		e.CurrentFile = program.File
	}
	var result Value
	for _, stmt := range program.Statements {
		next, val, err := e.execStatement(stmt, env)
		if err != nil {
			return nil, env, err
		}
		env = next
		if val != nil {
			result = val
		}
	}
	return result, env, nil
}

// checkBranches enforces Limits.MaxBranches on a superposition about to be built.
func (e *Evaluator) checkBranches(n int) error {
	if e.Limits.MaxBranches > 0 && n > e.Limits.MaxBranches {
		e.Log.Warn().Int("branches", n).Int("limit", e.Limits.MaxBranches).Msg("branch limit reached")
		return newError(ResourceExhausted, "superposition of %d branches exceeds the limit of %d", n, e.Limits.MaxBranches)
	}
	return nil
}
