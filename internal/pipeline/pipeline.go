package pipeline

import (
	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/token"
)

// PipelineContext carries one source text through lexing, parsing and execution.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	TokenStream []token.Token
	AstRoot     ast.Node

	// Result is the value of the last expression statement, set by the execution stage.
	Result interface{}
	// Prints holds the printed representations produced by print statements, in order.
	Prints []string

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Later stages check ctx.Errors themselves so every stage gets a chance to report.
	}
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
