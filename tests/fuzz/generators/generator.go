package generators

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 || s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

// Prelude declares the names every generated program may use.
const Prelude = `data Bool = F | T
let not = fn { F => T, T => F }
let had = fn { F => sup(F, T), T => sup(F, phf(T)) }
let cnot = fn { (F, x) => (F, x), (T, x) => (T, not(x)) }
`

// Generator generates random well-formed programs over Bool.
type Generator struct {
	src   RandomSource
	depth int
	vars  []string
	fresh int
}

const (
	MaxDepth      = 4
	MaxStatements = 5
)

func New(seed int64) *Generator {
	return &Generator{src: &RandSource{rand.New(rand.NewSource(seed))}}
}

func NewFromData(data []byte) *Generator {
	return &Generator{src: &ByteSource{data: data}}
}

// GenerateProgram returns the prelude, some statements and a final expression.
func (g *Generator) GenerateProgram() string {
	var sb strings.Builder
	sb.WriteString(Prelude)
	count := g.src.Intn(MaxStatements) + 1
	for i := 0; i < count; i++ {
		sb.WriteString(g.GenerateStatement())
		sb.WriteString("\n")
	}
	sb.WriteString(g.GenerateExpression())
	sb.WriteString("\n")
	return sb.String()
}

func (g *Generator) GenerateStatement() string {
	switch g.src.Intn(3) {
	case 0:
		return "print " + g.GenerateExpression()
	case 1:
		e := g.GenerateExpression()
		return fmt.Sprintf("assert %s == %s", e, e)
	default:
		name := g.newVar()
		stmt := fmt.Sprintf("let %s = %s", name, g.GenerateExpression())
		g.vars = append(g.vars, name)
		return stmt
	}
}

// GenerateExpression returns a Bool-valued expression, possibly superposed.
func (g *Generator) GenerateExpression() string {
	if g.depth >= MaxDepth {
		return g.leaf()
	}
	g.depth++
	defer func() { g.depth-- }()

	switch g.src.Intn(12) {
	case 0:
		return fmt.Sprintf("had(%s)", g.GenerateExpression())
	case 1:
		return fmt.Sprintf("not(%s)", g.GenerateExpression())
	case 2:
		return fmt.Sprintf("phf(%s)", g.GenerateExpression())
	case 3:
		return fmt.Sprintf("sup(%s, %s)", g.GenerateExpression(), g.GenerateExpression())
	case 4:
		return fmt.Sprintf("extract %s { F => %s, T => %s }", g.operand(), g.GenerateExpression(), g.GenerateExpression())
	case 5:
		return fmt.Sprintf("(if %s then %s else %s)", g.GenerateExpression(), g.GenerateExpression(), g.GenerateExpression())
	case 6:
		return fmt.Sprintf("(@[%s] %s)", g.phase(), g.GenerateExpression())
	case 7:
		return fmt.Sprintf("measure(%s)", g.GenerateExpression())
	case 8:
		name := g.newVar()
		return fmt.Sprintf("{ let %s = %s; %s }", name, g.GenerateExpression(), name)
	case 9:
		return fmt.Sprintf("extract cnot(%s, %s) { (a, b) => b }", g.GenerateExpression(), g.GenerateExpression())
	case 10:
		return fmt.Sprintf("inv(not)(%s)", g.GenerateExpression())
	default:
		return g.leaf()
	}
}

// operand wraps an expression so it can precede a case table.
func (g *Generator) operand() string {
	return "(" + g.GenerateExpression() + ")"
}

func (g *Generator) leaf() string {
	if len(g.vars) > 0 && g.src.Intn(3) == 0 {
		return g.vars[g.src.Intn(len(g.vars))]
	}
	if g.src.Intn(2) == 0 {
		return "F"
	}
	return "T"
}

func (g *Generator) phase() string {
	phases := []string{"0", "0.5", "1", "-0.5", "0.25"}
	return phases[g.src.Intn(len(phases))]
}

func (g *Generator) newVar() string {
	g.fresh++
	return fmt.Sprintf("v%d", g.fresh)
}
