package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/funqy/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
	inline bool // keep case tables and blocks on one line
	column int  // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// NewInlinePrinter prints everything on a single line.
func NewInlinePrinter() *CodePrinter {
	return &CodePrinter{inline: true}
}

// Print renders a node as formatted source.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

// Inline renders a node as single-line source.
func Inline(node ast.Node) string {
	p := NewInlinePrinter()
	node.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	// Track column position
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *CodePrinter) node(n ast.Node) {
	if n == nil {
		p.write("<???>")
		return
	}
	n.Accept(p)
}

// printOperand wraps expressions that would otherwise swallow what follows.
func (p *CodePrinter) printOperand(expr ast.Expression) {
	switch expr.(type) {
	case *ast.FunctionLiteral, *ast.IfExpression, *ast.AmplitudeExpression:
		p.write("(")
		p.node(expr)
		p.write(")")
	default:
		p.node(expr)
	}
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	var prev ast.Statement
	for _, stmt := range n.Statements {
		// blank line between groups and around function definitions
		if prev != nil && (isDeclaration(stmt) != isDeclaration(prev) || definesFunction(stmt) || definesFunction(prev)) {
			p.writeln()
		}
		p.node(stmt)
		p.writeln()
		prev = stmt
	}
}

func isDeclaration(s ast.Statement) bool {
	switch s.(type) {
	case *ast.DataDeclaration, *ast.ImportStatement:
		return true
	}
	return false
}

func definesFunction(s ast.Statement) bool {
	let, ok := s.(*ast.LetStatement)
	if !ok {
		return false
	}
	switch let.Value.(type) {
	case *ast.FunctionLiteral, *ast.CaseFunction:
		return true
	}
	return false
}

func (p *CodePrinter) VisitDataDeclaration(n *ast.DataDeclaration) {
	p.write("data ")
	p.node(n.Name)
	p.write(" = ")
	for i, v := range n.Variants {
		if i > 0 {
			p.write(" | ")
		}
		p.node(v)
	}
}

func (p *CodePrinter) VisitLetStatement(n *ast.LetStatement) {
	p.write("let ")
	p.node(n.Pattern)
	p.write(" = ")
	p.node(n.Value)
}

func (p *CodePrinter) VisitAssertStatement(n *ast.AssertStatement) {
	p.write("assert ")
	p.node(n.Expected)
	p.write(" == ")
	p.node(n.Actual)
}

func (p *CodePrinter) VisitPrintStatement(n *ast.PrintStatement) {
	p.write("print ")
	p.node(n.Value)
}

func (p *CodePrinter) VisitImportStatement(n *ast.ImportStatement) {
	p.write("import ")
	p.node(n.Path)
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.node(n.Expression)
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitTupleLiteral(n *ast.TupleLiteral) {
	p.write("(")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.node(el)
	}
	p.write(")")
}

func (p *CodePrinter) VisitFunctionLiteral(n *ast.FunctionLiteral) {
	p.write("\\")
	p.node(n.Parameter)
	p.write(" -> ")
	p.node(n.Body)
}

func (p *CodePrinter) VisitCaseFunction(n *ast.CaseFunction) {
	p.write("fn ")
	p.printCases(n.Cases)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.printOperand(n.Function)
	p.write("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			p.write(", ")
		}
		p.node(arg)
	}
	p.write(")")
}

func (p *CodePrinter) VisitExtractExpression(n *ast.ExtractExpression) {
	p.write("extract ")
	p.printOperand(n.Scrutinee)
	p.write(" ")
	p.printCases(n.Cases)
}

// printCases prints `{ p => e, ... }`, one aligned case per line unless inline.
func (p *CodePrinter) printCases(cases []*ast.MatchCase) {
	if p.inline {
		p.write("{ ")
		for i, c := range cases {
			if i > 0 {
				p.write(", ")
			}
			p.node(c.Pattern)
			p.write(" => ")
			p.node(c.Body)
		}
		p.write(" }")
		return
	}

	// Calculate max pattern width for alignment
	maxPatLen := 0
	patStrings := make([]string, len(cases))
	for i, c := range cases {
		temp := NewInlinePrinter()
		temp.node(c.Pattern)
		patStrings[i] = temp.String()
		if len(patStrings[i]) > maxPatLen {
			maxPatLen = len(patStrings[i])
		}
	}

	p.write("{")
	p.writeln()
	p.indent++
	for i, c := range cases {
		p.writeIndent()
		p.write(patStrings[i])
		// Align arrows
		p.write(strings.Repeat(" ", maxPatLen-len(patStrings[i])))
		p.write(" => ")
		p.node(c.Body)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitIfExpression(n *ast.IfExpression) {
	p.write("if ")
	p.node(n.Condition)
	p.write(" then ")
	p.node(n.Consequence)
	p.write(" else ")
	p.node(n.Alternative)
}

func (p *CodePrinter) VisitSupExpression(n *ast.SupExpression) {
	p.write("sup(")
	for i, arg := range n.Arguments {
		if i > 0 {
			p.write(", ")
		}
		p.node(arg)
	}
	p.write(")")
}

func (p *CodePrinter) VisitPhaseFlipExpression(n *ast.PhaseFlipExpression) {
	p.write("phf(")
	p.node(n.Value)
	p.write(")")
}

func (p *CodePrinter) VisitMeasureExpression(n *ast.MeasureExpression) {
	p.write("measure(")
	p.node(n.Value)
	p.write(")")
}

func (p *CodePrinter) VisitInvertExpression(n *ast.InvertExpression) {
	p.write("inv(")
	p.node(n.Function)
	p.write(")")
}

func (p *CodePrinter) VisitRepeatExpression(n *ast.RepeatExpression) {
	p.write("repeat(")
	p.node(n.Value)
	p.write(", " + strconv.Itoa(n.Count) + ")")
}

func (p *CodePrinter) VisitAmplitudeExpression(n *ast.AmplitudeExpression) {
	p.write("@[" + formatNumber(n.Phase))
	if n.Magnitude != 1 {
		p.write(", " + formatNumber(n.Magnitude))
	}
	p.write("] ")
	p.printOperand(n.Value)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (p *CodePrinter) VisitBlockExpression(n *ast.BlockExpression) {
	if p.inline {
		p.write("{ ")
		for _, stmt := range n.Statements {
			p.node(stmt)
			p.write("; ")
		}
		p.node(n.Result)
		p.write(" }")
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for _, stmt := range n.Statements {
		p.writeIndent()
		p.node(stmt)
		p.writeln()
	}
	p.writeIndent()
	p.node(n.Result)
	p.writeln()
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitWildcardPattern(n *ast.WildcardPattern) { p.write("_") }
func (p *CodePrinter) VisitIdentifierPattern(n *ast.IdentifierPattern) {
	p.write(n.Value)
}
func (p *CodePrinter) VisitConstructorPattern(n *ast.ConstructorPattern) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitTuplePattern(n *ast.TuplePattern) {
	p.write("(")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.node(el)
	}
	p.write(")")
}

func (p *CodePrinter) VisitAlternativePattern(n *ast.AlternativePattern) {
	for i, alt := range n.Alternatives {
		if i > 0 {
			p.write(" | ")
		}
		p.node(alt)
	}
}

func (p *CodePrinter) VisitPhasePattern(n *ast.PhasePattern) {
	p.write("~")
	if _, ok := n.Pattern.(*ast.AlternativePattern); ok {
		p.write("(")
		p.node(n.Pattern)
		p.write(")")
		return
	}
	p.node(n.Pattern)
}
