// File: model/model.go
package model

import (
	"strconv"
	"strings"
)

// Position locates a construct in the source text
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// ClauseKind distinguishes the top-level clause forms
type ClauseKind int

const (
	Fact ClauseKind = iota
	Rule
	Query     // ?- body.
	Directive // :- body.
)

func (k ClauseKind) String() string {
	switch k {
	case Fact:
		return "fact"
	case Rule:
		return "rule"
	case Query:
		return "query"
	case Directive:
		return "directive"
	default:
		return "unknown"
	}
}

// Clause is the top-level unit of a program
type Clause struct {
	Kind ClauseKind
	Head Term   // nil for queries and directives
	Body []Term // top-level conjunction, nil for facts
	Pos  Position
}

// IsFact reports whether the clause has no body
func (c *Clause) IsFact() bool {
	return c.Kind == Fact
}

// Indicator returns the name/arity of the clause head, or "" when there is no head
func (c *Clause) Indicator() string {
	switch h := c.Head.(type) {
	case *Atom:
		return h.Name + "/0"
	case *Compound:
		return h.Functor + "/" + strconv.Itoa(h.Arity())
	default:
		return ""
	}
}

func (c *Clause) String() string {
	var b strings.Builder
	switch c.Kind {
	case Query:
		b.WriteString("?- ")
	case Directive:
		b.WriteString(":- ")
	default:
		b.WriteString(c.Head.String())
		if c.Kind == Rule {
			b.WriteString(" :- ")
		}
	}
	for i, goal := range c.Body {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(goal.String())
	}
	b.WriteString(".")
	return b.String()
}

// Program represents one parsed input file
type Program struct {
	Clauses []*Clause
	Source  string // Source file path, empty for in-memory input
}

// NewProgram creates an empty program
func NewProgram() *Program {
	return &Program{
		Clauses: []*Clause{},
	}
}

// AddClause appends a clause to the program
func (p *Program) AddClause(clause *Clause) {
	p.Clauses = append(p.Clauses, clause)
}

// Predicates returns the indicators of all clause heads in first-seen order
func (p *Program) Predicates() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range p.Clauses {
		ind := c.Indicator()
		if ind == "" || seen[ind] {
			continue
		}
		seen[ind] = true
		out = append(out, ind)
	}
	return out
}
