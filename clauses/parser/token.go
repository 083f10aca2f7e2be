// File: parser/token.go
package parser

import (
	"fmt"

	"github.com/dangerclosesec/clausecheck/clauses/model"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Pos     model.Position
	// Call is set on atoms and symbolic operators immediately followed by '('
	Call bool
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return "'" + t.Literal + "'"
}

// TokenType represents the type of a token
type TokenType int

// Token types
const (
	TokenIllegal TokenType = iota
	TokenEOF

	// Identifiers and literals
	TokenAtom
	TokenVariable
	TokenNumber
	TokenString

	// Punctuation
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenComma    // ,
	TokenBar      // |
	TokenEnd      // .

	// Control operators
	TokenNeck      // :-
	TokenQuery     // ?-
	TokenSemicolon // ;
	TokenArrow     // ->

	// Arithmetic and comparison symbols; Literal carries the operator
	TokenOperator
)

var tokenNames = map[TokenType]string{
	TokenIllegal:   "ILLEGAL",
	TokenEOF:       "EOF",
	TokenAtom:      "ATOM",
	TokenVariable:  "VARIABLE",
	TokenNumber:    "NUMBER",
	TokenString:    "STRING",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenComma:     ",",
	TokenBar:       "|",
	TokenEnd:       ".",
	TokenNeck:      ":-",
	TokenQuery:     "?-",
	TokenSemicolon: ";",
	TokenArrow:     "->",
	TokenOperator:  "OPERATOR",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Category is the coarse lexical class of a token
type Category int

const (
	CategoryInvalid Category = iota
	CategoryAtom
	CategoryVariable
	CategoryNumber
	CategoryString
	CategoryPunctuation
	CategoryOperator
	CategoryEndOfInput
)

func (c Category) String() string {
	switch c {
	case CategoryAtom:
		return "ATOM"
	case CategoryVariable:
		return "VARIABLE"
	case CategoryNumber:
		return "NUMBER"
	case CategoryString:
		return "STRING"
	case CategoryPunctuation:
		return "PUNCTUATION"
	case CategoryOperator:
		return "OPERATOR"
	case CategoryEndOfInput:
		return "END_OF_INPUT"
	default:
		return "INVALID"
	}
}

// Category maps the token type onto its lexical category
func (t TokenType) Category() Category {
	switch t {
	case TokenAtom:
		return CategoryAtom
	case TokenVariable:
		return CategoryVariable
	case TokenNumber:
		return CategoryNumber
	case TokenString:
		return CategoryString
	case TokenLParen, TokenRParen, TokenLBracket, TokenRBracket, TokenComma, TokenBar, TokenEnd:
		return CategoryPunctuation
	case TokenNeck, TokenQuery, TokenSemicolon, TokenArrow, TokenOperator:
		return CategoryOperator
	case TokenEOF:
		return CategoryEndOfInput
	default:
		return CategoryInvalid
	}
}

// symbolicOperators lists the multi- and single-character operators,
// longest first so the lexer can match greedily.
var symbolicOperators = []string{
	`=:=`, `=\=`, `\==`, `=..`,
	`:-`, `?-`, `->`, `\=`, `==`, `=<`, `>=`, `//`, `**`, `\+`,
	`+`, `-`, `*`, `/`, `\`, `^`, `~`, `:`, `=`, `<`, `>`,
}

// controlOperators maps operators with their own token type
var controlOperators = map[string]TokenType{
	":-": TokenNeck,
	"?-": TokenQuery,
	"->": TokenArrow,
}
