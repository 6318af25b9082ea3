package backend

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/modules"
	"github.com/funvibe/funqy/internal/pipeline"
)

// TreeWalkBackend evaluates the AST directly.
type TreeWalkBackend struct {
	Loader *modules.Loader
	// Configure is applied to every fresh evaluator before it runs.
	Configure func(*evaluator.Evaluator)
	// Context for cancellation
	Context context.Context
}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk(configure func(*evaluator.Evaluator)) *TreeWalkBackend {
	return &TreeWalkBackend{
		Loader:    modules.NewLoader(),
		Configure: configure,
		Context:   context.Background(),
	}
}

// Run executes the program and records its prints and result on ctx.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Value, error) {
	if ctx.AstRoot == nil {
		return nil, fmt.Errorf("no AST to execute")
	}
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("expected a program, got %T", ctx.AstRoot)
	}

	eval := b.newEvaluator(ctx.FilePath)
	result, _, err := eval.EvalProgram(program, evaluator.NewEnvironment())
	ctx.Prints = eval.Prints
	if err != nil {
		return nil, err
	}
	ctx.Result = result
	return result, nil
}

func (b *TreeWalkBackend) newEvaluator(file string) *evaluator.Evaluator {
	eval := evaluator.New()
	if b.Context != nil {
		eval.Context = b.Context
	}
	if b.Loader == nil {
		b.Loader = modules.NewLoader()
	}
	eval.Loader = b.Loader

	// Set BaseDir and CurrentFile from the file path
	if file != "" {
		eval.BaseDir = filepath.Dir(file)
		eval.CurrentFile = file
	} else {
		eval.BaseDir = "."
		eval.CurrentFile = "<stdin>"
	}
	if b.Configure != nil {
		b.Configure(eval)
	}
	return eval
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
