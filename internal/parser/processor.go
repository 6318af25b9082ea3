package parser

import (
	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/pipeline"
	"github.com/funvibe/funqy/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// This case should ideally not be hit if lexer runs first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	if len(ctx.Errors) > 0 {
		// Lexical errors already reported; parsing ILLEGAL tokens only adds noise.
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	prog := parser.ParseProgram()
	prog.File = ctx.FilePath
	ctx.AstRoot = prog

	return ctx
}
