// File: parser/parse.go
package parser

import (
	"fmt"
	"os"

	"github.com/dangerclosesec/clausecheck/clauses/model"
)

// ParseString parses a complete program held in memory
func ParseString(input string, opts ...Option) (*model.Program, error) {
	return NewParser(NewLexer(input), opts...).ParseProgram()
}

// ParseTermString parses a single term such as "[H|T]" or "foo(X, 1)"
func ParseTermString(input string, opts ...Option) (model.Term, error) {
	return NewParser(NewLexer(input), opts...).ParseTerm()
}

// ParseFile parses a source file. Read failures are returned wrapped;
// parse failures are returned as *Diagnostic or Diagnostics.
func ParseFile(filePath string, opts ...Option) (*model.Program, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}

	prog, err := ParseString(string(content), opts...)
	if err != nil {
		return nil, err
	}
	prog.Source = filePath

	return prog, nil
}
