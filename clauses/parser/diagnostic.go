// File: parser/diagnostic.go
package parser

import (
	"errors"
	"strings"

	"github.com/dangerclosesec/clausecheck/clauses/model"
)

var (
	// ErrLexical classifies diagnostics raised by the lexer
	ErrLexical = errors.New("lexical error")
	// ErrSyntax classifies diagnostics raised by the parser
	ErrSyntax = errors.New("syntax error")
)

// DiagnosticKind tells lexical and syntax failures apart
type DiagnosticKind int

const (
	LexicalError DiagnosticKind = iota
	SyntaxError
)

func (k DiagnosticKind) String() string {
	if k == LexicalError {
		return "lexical error"
	}
	return "syntax error"
}

// Diagnostic describes the first point of failure in a file. It is built
// once at the failure site and never modified afterwards.
type Diagnostic struct {
	Kind     DiagnosticKind
	Pos      model.Position
	Expected string // description of what the grammar required, may be empty
	Found    string // description of what was actually there
	Message  string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	b.WriteString(" at ")
	b.WriteString(d.Pos.String())

	detail := ""
	switch {
	case d.Expected != "" && d.Found != "":
		detail = "expected " + d.Expected + ", found " + d.Found
	case d.Expected != "":
		detail = "expected " + d.Expected
	case d.Found != "":
		detail = "unexpected " + d.Found
	}
	if d.Message != "" {
		if detail != "" {
			detail += ": "
		}
		detail += d.Message
	}
	if detail != "" {
		b.WriteString(": ")
		b.WriteString(detail)
	}
	return b.String()
}

// Unwrap lets callers use errors.Is with ErrLexical and ErrSyntax
func (d *Diagnostic) Unwrap() error {
	if d.Kind == LexicalError {
		return ErrLexical
	}
	return ErrSyntax
}

// Diagnostics is returned when recovery mode collected more than one failure
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

func (ds Diagnostics) Unwrap() []error {
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errs
}

// AsDiagnostics flattens an error returned by the parser into its diagnostics
func AsDiagnostics(err error) []*Diagnostic {
	var list Diagnostics
	if errors.As(err, &list) {
		return list
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return []*Diagnostic{d}
	}
	return nil
}

func lexicalError(pos model.Position, expected, found, msg string) *Diagnostic {
	return &Diagnostic{Kind: LexicalError, Pos: pos, Expected: expected, Found: found, Message: msg}
}

func syntaxError(tok Token, expected, msg string) *Diagnostic {
	return &Diagnostic{Kind: SyntaxError, Pos: tok.Pos, Expected: expected, Found: tok.String(), Message: msg}
}
