package evaluator

import (
	"fmt"
	"path/filepath"

	"github.com/funvibe/funqy/internal/ast"
)

// execStatement returns the environment seen by the following statement and,
// for expression statements, the produced value.
func (e *Evaluator) execStatement(stmt ast.Statement, env *Environment) (*Environment, Value, error) {
	var (
		next = env
		val  Value
		err  error
	)
	switch stmt := stmt.(type) {
	case *ast.DataDeclaration:
		next = e.evalDataDeclaration(stmt, env)
	case *ast.LetStatement:
		next, err = e.evalLet(stmt, env)
	case *ast.AssertStatement:
		err = e.evalAssert(stmt, env)
	case *ast.PrintStatement:
		err = e.evalPrint(stmt, env)
	case *ast.ImportStatement:
		next, err = e.evalImport(stmt, env)
	case *ast.ExpressionStatement:
		val, err = e.Eval(stmt.Expression, env)
	default:
		err = newError(Internal, "unknown statement %T", stmt)
	}
	if err != nil {
		return env, nil, withPosition(err, stmt.GetToken())
	}
	return next, val, nil
}

func (e *Evaluator) evalDataDeclaration(stmt *ast.DataDeclaration, env *Environment) *Environment {
	dt := &DataType{Name: stmt.Name.Value, Variants: make([]string, len(stmt.Variants))}
	bindings := make(map[string]Value, len(stmt.Variants))
	for i, v := range stmt.Variants {
		dt.Variants[i] = v.Value
		bindings[v.Value] = &Atom{Data: dt, Index: i}
	}
	return env.Extend(bindings)
}

func (e *Evaluator) evalLet(stmt *ast.LetStatement, env *Environment) (*Environment, error) {
	val, err := e.Eval(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	if id, ok := stmt.Pattern.(*ast.IdentifierPattern); ok {
		if c, ok := val.(*Closure); ok && c.Name == "" {
			val = c.named(id.Value)
		}
	}
	return Bind(stmt.Pattern, val, env)
}

func (e *Evaluator) evalAssert(stmt *ast.AssertStatement, env *Environment) error {
	expected, err := e.Eval(stmt.Expected, env)
	if err != nil {
		return err
	}
	actual, err := e.Eval(stmt.Actual, env)
	if err != nil {
		return err
	}
	if !Equal(expected, actual) {
		return &AssertionError{Expected: expected, Actual: actual}
	}
	return nil
}

func (e *Evaluator) evalPrint(stmt *ast.PrintStatement, env *Environment) error {
	val, err := e.Eval(stmt.Value, env)
	if err != nil {
		return err
	}
	repr := val.Inspect()
	e.Prints = append(e.Prints, repr)
	if e.Out != nil {
		fmt.Fprintf(e.Out, ":: %s\n", repr)
	}
	return nil
}

// evalImport evaluates a module once in a fresh scope and brings all of its
// top-level bindings into env.
func (e *Evaluator) evalImport(stmt *ast.ImportStatement, env *Environment) (*Environment, error) {
	if e.Loader == nil {
		return nil, newError(Internal, "imports are not available: no module loader configured")
	}
	prog, resolved, err := e.Loader.Load(stmt.Path.Value, e.BaseDir)
	if err != nil {
		return nil, newError(UnboundIdentifier, "cannot import %q: %v", stmt.Path.Value, err)
	}
	if e.ModuleCache == nil {
		e.ModuleCache = make(map[string]map[string]Value)
	}
	if e.importing == nil {
		e.importing = make(map[string]bool)
	}
	if exports, ok := e.ModuleCache[resolved]; ok {
		return env.Extend(exports), nil
	}
	if e.importing[resolved] {
		return nil, newError(Internal, "import cycle through %s", resolved)
	}
	e.importing[resolved] = true
	defer delete(e.importing, resolved)

	savedDir, savedFile := e.BaseDir, e.CurrentFile
	e.BaseDir = filepath.Dir(resolved)
	defer func() { e.BaseDir, e.CurrentFile = savedDir, savedFile }()

	e.Log.Debug().Str("module", resolved).Msg("importing module")
	_, modEnv, err := e.EvalProgram(prog, NewEnvironment())
	if err != nil {
		return nil, err
	}
	exports := modEnv.Bindings()
	e.ModuleCache[resolved] = exports
	return env.Extend(exports), nil
}
