package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers + literals
	IDENT_LOWER TokenType = "IDENT_LOWER" // x, had, cnot
	IDENT_UPPER TokenType = "IDENT_UPPER" // T, F, Bool
	UNDERSCORE  TokenType = "_"
	NUMBER      TokenType = "NUMBER"
	STRING      TokenType = "STRING"

	// Operators
	ASSIGN    TokenType = "="
	EQ        TokenType = "=="
	FAT_ARROW TokenType = "=>"
	ARROW     TokenType = "->"
	BACKSLASH TokenType = "\\"
	PIPE      TokenType = "|"
	TILDE     TokenType = "~"
	AT        TokenType = "@"
	MINUS     TokenType = "-"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	DATA    TokenType = "DATA"
	LET     TokenType = "LET"
	ASSERT  TokenType = "ASSERT"
	PRINT   TokenType = "PRINT"
	IMPORT  TokenType = "IMPORT"
	EXTRACT TokenType = "EXTRACT"
	FN      TokenType = "FN"
	IF      TokenType = "IF"
	THEN    TokenType = "THEN"
	ELSE    TokenType = "ELSE"
	SUP     TokenType = "SUP"
	PHF     TokenType = "PHF"
	MEASURE TokenType = "MEASURE"
	INV     TokenType = "INV"
	REPEAT  TokenType = "REPEAT"
)

var keywords = map[string]TokenType{
	"data":    DATA,
	"let":     LET,
	"assert":  ASSERT,
	"print":   PRINT,
	"import":  IMPORT,
	"extract": EXTRACT,
	"fn":      FN,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"sup":     SUP,
	"phf":     PHF,
	"measure": MEASURE,
	"inv":     INV,
	"repeat":  REPEAT,
}

// LookupIdent classifies an identifier as keyword, constructor or variable.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if ident == "_" {
		return UNDERSCORE
	}
	if ident[0] >= 'A' && ident[0] <= 'Z' {
		return IDENT_UPPER
	}
	return IDENT_LOWER
}

// IsKeyword reports whether name is reserved.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
