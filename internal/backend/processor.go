package backend

import (
	"errors"

	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/pipeline"
	"github.com/funvibe/funqy/internal/token"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	if _, err := p.Backend.Run(ctx); err != nil {
		p.handleError(ctx, err)
	}
	return ctx
}

// handleError converts evaluator failures into positioned diagnostics; the
// original error stays reachable through errors.As.
func (p *ExecutionProcessor) handleError(ctx *pipeline.PipelineContext, err error) {
	var diag *diagnostics.DiagnosticError
	if errors.As(err, &diag) {
		ctx.Errors = append(ctx.Errors, diag)
		return
	}

	var (
		rerr *evaluator.RuntimeError
		aerr *evaluator.AssertionError
	)
	switch {
	case errors.As(err, &rerr):
		tok := token.Token{Line: rerr.Line, Column: rerr.Column}
		d := diagnostics.NewError(diagnostics.ErrR001, tok, "%s: %s", rerr.Kind, rerr.Message)
		d.Err = err
		ctx.Errors = append(ctx.Errors, d)
	case errors.As(err, &aerr):
		tok := token.Token{Line: aerr.Line, Column: aerr.Column}
		d := diagnostics.NewError(diagnostics.ErrR001, tok, "AssertionFailed: expected %s, got %s",
			aerr.Expected.Inspect(), aerr.Actual.Inspect())
		d.Err = err
		ctx.Errors = append(ctx.Errors, d)
	default:
		ctx.Errors = append(ctx.Errors, diagnostics.Wrap(diagnostics.ErrR001, token.Token{}, err))
	}
}
