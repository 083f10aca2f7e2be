// File: model/term.go
package model

import (
	"reflect"
	"strconv"
	"strings"
)

// Term is any syntactic value. The set of implementations is closed:
// *Atom, *Variable, *Number, *String, *Compound and *List.
type Term interface {
	String() string
	isTerm()
}

// Atom is a constant symbol, e.g. tom or 'New York'
type Atom struct {
	Name string
}

// Variable is a logic variable, e.g. X or _Name
type Variable struct {
	Name string
}

// Number keeps the literal text so 1 and 1.0 stay distinct
type Number struct {
	Literal string
}

// String is a double-quoted string literal with escapes resolved
type String struct {
	Value string
}

// Compound is a functor applied to one or more arguments
type Compound struct {
	Functor string
	Args    []Term
}

// List is [E1, ..., En] or [E1, ..., En | Tail]
type List struct {
	Elems []Term
	Tail  Term // nil for a proper list
}

func (*Atom) isTerm()     {}
func (*Variable) isTerm() {}
func (*Number) isTerm()   {}
func (*String) isTerm()   {}
func (*Compound) isTerm() {}
func (*List) isTerm()     {}

func NewAtom(name string) *Atom         { return &Atom{Name: name} }
func NewVariable(name string) *Variable { return &Variable{Name: name} }
func NewNumber(literal string) *Number  { return &Number{Literal: literal} }
func NewString(value string) *String    { return &String{Value: value} }

// NewCompound builds a compound term. Callers must pass at least one argument.
func NewCompound(functor string, args ...Term) *Compound {
	return &Compound{Functor: functor, Args: args}
}

// NewList builds a list; tail may be nil
func NewList(elems []Term, tail Term) *List {
	return &List{Elems: elems, Tail: tail}
}

// Arity is the number of arguments
func (c *Compound) Arity() int {
	return len(c.Args)
}

// Float64 converts the literal
func (n *Number) Float64() (float64, error) {
	return strconv.ParseFloat(n.Literal, 64)
}

// IsAnonymous reports whether the variable is the anonymous variable _
func (v *Variable) IsAnonymous() bool {
	return v.Name == "_"
}

// IsCallable reports whether t may appear as a clause head or goal
func IsCallable(t Term) bool {
	switch t.(type) {
	case *Atom, *Compound:
		return true
	default:
		return false
	}
}

// Equal compares two terms structurally
func Equal(a, b Term) bool {
	return reflect.DeepEqual(a, b)
}

func (a *Atom) String() string     { return quoteAtom(a.Name) }
func (v *Variable) String() string { return v.Name }
func (n *Number) String() string   { return n.Literal }
func (s *String) String() string   { return strconv.Quote(s.Value) }

func (c *Compound) String() string {
	var b strings.Builder
	b.WriteString(quoteAtom(c.Functor))
	b.WriteByte('(')
	writeTerms(&b, c.Args)
	b.WriteByte(')')
	return b.String()
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	writeTerms(&b, l.Elems)
	if l.Tail != nil {
		b.WriteByte('|')
		b.WriteString(l.Tail.String())
	}
	b.WriteByte(']')
	return b.String()
}

func writeTerms(b *strings.Builder, terms []Term) {
	for i, t := range terms {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
}

const symbolChars = `+-*/\^<>=~:.?@#&$`

// quoteAtom renders an atom name, quoting it unless it is a plain
// identifier, a run of symbol characters, or one of the solo atoms.
func quoteAtom(name string) string {
	switch {
	case name == "[]" || name == ";" || name == "!":
		return name
	case isIdentAtom(name):
		return name
	case name != "" && strings.Trim(name, symbolChars) == "":
		return name
	}
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range name {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func isIdentAtom(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !('a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' || ch == '_') {
			return false
		}
	}
	return true
}
