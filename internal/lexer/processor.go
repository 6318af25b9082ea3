package lexer

import (
	"github.com/funvibe/funqy/internal/diagnostics"
	"github.com/funvibe/funqy/internal/pipeline"
	"github.com/funvibe/funqy/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens := New(ctx.SourceCode).Tokenize()
	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			msg, _ := tok.Literal.(string)
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrL001, tok, "%s", msg))
		}
	}
	ctx.TokenStream = tokens
	return ctx
}
