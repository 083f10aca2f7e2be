// File: parser/grammar.go
package parser

import (
	"fmt"
	"sort"
)

// MaxArgPriority is the highest priority a term may have inside an argument
// list, list or clause body, where ',' acts as a separator.
const MaxArgPriority = 999

// OperatorType is the operator specifier: x marks an argument of strictly
// lower priority, y an argument of lower or equal priority.
type OperatorType string

const (
	XFX OperatorType = "xfx"
	XFY OperatorType = "xfy"
	YFX OperatorType = "yfx"
	FY  OperatorType = "fy"
	FX  OperatorType = "fx"
)

// Operator is one entry in a grammar's operator table
type Operator struct {
	Name     string       `yaml:"name"`
	Type     OperatorType `yaml:"type"`
	Priority int          `yaml:"priority"`
}

// IsPrefix reports whether the operator takes a single right argument
func (o Operator) IsPrefix() bool {
	return o.Type == FY || o.Type == FX
}

// argPriorities returns the maximum priority of the left and right
// arguments. For prefix operators only right is meaningful.
func (o Operator) argPriorities() (left, right int) {
	switch o.Type {
	case XFY:
		return o.Priority - 1, o.Priority
	case YFX:
		return o.Priority, o.Priority - 1
	case FY:
		return 0, o.Priority
	default: // XFX, FX
		return o.Priority - 1, o.Priority - 1
	}
}

// Grammar holds the operator table the parser climbs over. A grammar with
// a single infix priority behaves as one flat left-associative tier.
type Grammar struct {
	Name   string
	infix  map[string]Operator
	prefix map[string]Operator
}

// NewGrammar creates a grammar with an empty operator table
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:   name,
		infix:  make(map[string]Operator),
		prefix: make(map[string]Operator),
	}
}

// Define adds or replaces an operator. Only names the lexer can produce as
// a single token are accepted: identifier atoms and the symbolic operators.
func (g *Grammar) Define(op Operator) error {
	if op.Priority < 1 || op.Priority > MaxArgPriority {
		return fmt.Errorf("operator %q: priority %d out of range 1..%d", op.Name, op.Priority, MaxArgPriority)
	}
	switch op.Type {
	case XFX, XFY, YFX, FY, FX:
	default:
		return fmt.Errorf("operator %q: unknown type %q", op.Name, op.Type)
	}
	if !isOperatorName(op.Name) {
		return fmt.Errorf("operator %q: name is not an identifier or symbolic operator", op.Name)
	}

	if op.IsPrefix() {
		g.prefix[op.Name] = op
	} else {
		g.infix[op.Name] = op
	}
	return nil
}

// Infix looks up an infix operator
func (g *Grammar) Infix(name string) (Operator, bool) {
	op, ok := g.infix[name]
	return op, ok
}

// Prefix looks up a prefix operator
func (g *Grammar) Prefix(name string) (Operator, bool) {
	op, ok := g.prefix[name]
	return op, ok
}

// Operators lists the table ordered by descending priority, then name
func (g *Grammar) Operators() []Operator {
	ops := make([]Operator, 0, len(g.infix)+len(g.prefix))
	for _, op := range g.infix {
		ops = append(ops, op)
	}
	for _, op := range g.prefix {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Priority != ops[j].Priority {
			return ops[i].Priority > ops[j].Priority
		}
		if ops[i].Name != ops[j].Name {
			return ops[i].Name < ops[j].Name
		}
		return ops[i].Type < ops[j].Type
	})
	return ops
}

// Tiered reports whether the infix operators use more than one priority
func (g *Grammar) Tiered() bool {
	seen := -1
	for _, op := range g.infix {
		if seen >= 0 && op.Priority != seen {
			return true
		}
		seen = op.Priority
	}
	return false
}

var (
	comparisonOps = []string{"=", `\=`, "==", `\==`, "=:=", `=\=`, "<", ">", "=<", ">=", "=..", "is"}
	additiveOps   = []string{"+", "-"}
	multiplyOps   = []string{"*", "/", "//", "mod", "rem"}
	prefixOps     = []string{"-", "+", `\`, "~"}
)

// StandardGrammar returns the tiered operator table
func StandardGrammar() *Grammar {
	g := NewGrammar("standard")
	for _, name := range comparisonOps {
		g.mustDefine(Operator{Name: name, Type: XFX, Priority: 700})
	}
	for _, name := range additiveOps {
		g.mustDefine(Operator{Name: name, Type: YFX, Priority: 500})
	}
	for _, name := range multiplyOps {
		g.mustDefine(Operator{Name: name, Type: YFX, Priority: 400})
	}
	g.mustDefine(Operator{Name: "**", Type: XFX, Priority: 200})
	g.mustDefine(Operator{Name: "^", Type: XFY, Priority: 200})
	g.mustDefine(Operator{Name: ":", Type: XFY, Priority: 200})
	for _, name := range prefixOps {
		g.mustDefine(Operator{Name: name, Type: FY, Priority: 200})
	}
	g.mustDefine(Operator{Name: `\+`, Type: FY, Priority: 900})
	return g
}

// FlatGrammar returns a table with every infix operator in one
// left-associative tier. Prefix operators bind tighter than the tier.
func FlatGrammar() *Grammar {
	g := NewGrammar("flat")
	var all []string
	all = append(all, comparisonOps...)
	all = append(all, additiveOps...)
	all = append(all, multiplyOps...)
	all = append(all, "**", "^", ":")
	for _, name := range all {
		g.mustDefine(Operator{Name: name, Type: YFX, Priority: 500})
	}
	for _, name := range prefixOps {
		g.mustDefine(Operator{Name: name, Type: FY, Priority: 200})
	}
	g.mustDefine(Operator{Name: `\+`, Type: FY, Priority: 200})
	return g
}

// GrammarByName resolves "standard" or "flat"
func GrammarByName(name string) (*Grammar, error) {
	switch name {
	case "", "standard":
		return StandardGrammar(), nil
	case "flat":
		return FlatGrammar(), nil
	default:
		return nil, fmt.Errorf("unknown grammar %q", name)
	}
}

func (g *Grammar) mustDefine(op Operator) {
	if err := g.Define(op); err != nil {
		panic(err)
	}
}

func isOperatorName(name string) bool {
	if name == "" {
		return false
	}
	if _, control := controlOperators[name]; control {
		return false
	}
	for _, sym := range symbolicOperators {
		if name == sym {
			return true
		}
	}
	if !isLower(rune(name[0])) {
		return false
	}
	for _, ch := range name {
		if !isLetter(ch) && !isDigit(ch) && ch != '_' {
			return false
		}
	}
	return true
}
