package lexer

import (
	"testing"

	"github.com/funvibe/funqy/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `data Bool = F | T
let had = fn { F => sup(F, T), T => sup(F, phf(T)) } // gate
assert x == @[-0.5, 2] ~_
\(a, b) -> "std/gates";`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.DATA, "data"},
		{token.IDENT_UPPER, "Bool"},
		{token.ASSIGN, "="},
		{token.IDENT_UPPER, "F"},
		{token.PIPE, "|"},
		{token.IDENT_UPPER, "T"},
		{token.NEWLINE, "\n"},
		{token.LET, "let"},
		{token.IDENT_LOWER, "had"},
		{token.ASSIGN, "="},
		{token.FN, "fn"},
		{token.LBRACE, "{"},
		{token.IDENT_UPPER, "F"},
		{token.FAT_ARROW, "=>"},
		{token.SUP, "sup"},
		{token.LPAREN, "("},
		{token.IDENT_UPPER, "F"},
		{token.COMMA, ","},
		{token.IDENT_UPPER, "T"},
		{token.RPAREN, ")"},
		{token.COMMA, ","},
		{token.IDENT_UPPER, "T"},
		{token.FAT_ARROW, "=>"},
		{token.SUP, "sup"},
		{token.LPAREN, "("},
		{token.IDENT_UPPER, "F"},
		{token.COMMA, ","},
		{token.PHF, "phf"},
		{token.LPAREN, "("},
		{token.IDENT_UPPER, "T"},
		{token.RPAREN, ")"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.ASSERT, "assert"},
		{token.IDENT_LOWER, "x"},
		{token.EQ, "=="},
		{token.AT, "@"},
		{token.LBRACKET, "["},
		{token.MINUS, "-"},
		{token.NUMBER, "0.5"},
		{token.COMMA, ","},
		{token.NUMBER, "2"},
		{token.RBRACKET, "]"},
		{token.TILDE, "~"},
		{token.UNDERSCORE, "_"},
		{token.NEWLINE, "\n"},
		{token.BACKSLASH, "\\"},
		{token.LPAREN, "("},
		{token.IDENT_LOWER, "a"},
		{token.COMMA, ","},
		{token.IDENT_LOWER, "b"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.STRING, `"std/gates"`},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestPositions(t *testing.T) {
	l := New("let x = T\n  print x")
	toks := l.Tokenize()
	var printTok token.Token
	for _, tok := range toks {
		if tok.Type == token.PRINT {
			printTok = tok
		}
	}
	if printTok.Line != 2 || printTok.Column != 3 {
		t.Fatalf("print at %d:%d, want 2:3", printTok.Line, printTok.Column)
	}
}

func TestNumberLiteral(t *testing.T) {
	tok := New("0.25").NextToken()
	if tok.Type != token.NUMBER {
		t.Fatalf("expected NUMBER, got %s", tok.Type)
	}
	if v, ok := tok.Literal.(float64); !ok || v != 0.25 {
		t.Fatalf("literal = %v, want 0.25", tok.Literal)
	}
}

func TestIllegal(t *testing.T) {
	tok := New("$").NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
}
