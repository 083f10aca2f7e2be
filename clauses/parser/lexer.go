// File: parser/lexer.go
package parser

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dangerclosesec/clausecheck/clauses/model"
)

const eof rune = -1

// Lexer tokenizes input text
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int
	column       int
	err          *Diagnostic // first lexical error; the stream stops there
}

// NewLexer creates a new Lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		if l.ch != eof {
			l.column++
		}
		l.ch = eof
		l.position = len(l.input)
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += width
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() model.Position {
	return model.Position{Offset: l.position, Line: l.line, Column: l.column}
}

// NextToken returns the next token. After the first lexical error every
// call returns that same error.
func (l *Lexer) NextToken() (Token, error) {
	if l.err != nil {
		return Token{Type: TokenIllegal, Pos: l.err.Pos}, l.err
	}

	if d := l.skipWhitespaceAndComments(); d != nil {
		return l.fail(d)
	}

	pos := l.pos()
	single := func(t TokenType) (Token, error) {
		tok := Token{Type: t, Literal: string(l.ch), Pos: pos}
		l.readChar()
		return tok, nil
	}

	switch l.ch {
	case eof:
		return Token{Type: TokenEOF, Pos: pos}, nil
	case '(':
		return single(TokenLParen)
	case ')':
		return single(TokenRParen)
	case '[':
		return single(TokenLBracket)
	case ']':
		return single(TokenRBracket)
	case ',':
		return single(TokenComma)
	case '|':
		return single(TokenBar)
	case ';':
		return single(TokenSemicolon)
	case '.':
		return single(TokenEnd)
	case '"':
		value, d := l.readQuoted('"', "string")
		if d != nil {
			return l.fail(d)
		}
		return Token{Type: TokenString, Literal: value, Pos: pos}, nil
	case '\'':
		name, d := l.readQuoted('\'', "quoted atom")
		if d != nil {
			return l.fail(d)
		}
		return Token{Type: TokenAtom, Literal: name, Pos: pos, Call: l.ch == '('}, nil
	}

	switch {
	case isLower(l.ch):
		name := l.readIdentifier()
		return Token{Type: TokenAtom, Literal: name, Pos: pos, Call: l.ch == '('}, nil
	case isUpper(l.ch) || l.ch == '_':
		return Token{Type: TokenVariable, Literal: l.readIdentifier(), Pos: pos}, nil
	case isDigit(l.ch):
		literal, d := l.readNumber()
		if d != nil {
			return l.fail(d)
		}
		return Token{Type: TokenNumber, Literal: literal, Pos: pos}, nil
	}

	if op := l.matchOperator(); op != "" {
		for range len(op) {
			l.readChar()
		}
		t, ok := controlOperators[op]
		if !ok {
			t = TokenOperator
		}
		return Token{Type: t, Literal: op, Pos: pos, Call: l.ch == '('}, nil
	}

	return l.fail(lexicalError(pos, "", "'"+string(l.ch)+"'", "invalid character"))
}

func (l *Lexer) fail(d *Diagnostic) (Token, error) {
	l.err = d
	return Token{Type: TokenIllegal, Pos: d.Pos}, d
}

// skipWhitespaceAndComments skips blanks, % line comments and /* */ blocks
func (l *Lexer) skipWhitespaceAndComments() *Diagnostic {
	for {
		switch {
		case l.ch != eof && unicode.IsSpace(l.ch):
			l.readChar()
		case l.ch == '%':
			l.skipComment()
		case l.ch == '/' && l.peekChar() == '*':
			if d := l.skipBlockComment(); d != nil {
				return d
			}
		default:
			return nil
		}
	}
}

// skipComment skips over a comment line
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != eof {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() *Diagnostic {
	start := l.pos()
	l.readChar()
	l.readChar()
	for {
		if l.ch == eof {
			return lexicalError(start, "'*/'", "end of input", "unterminated block comment")
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return nil
		}
		l.readChar()
	}
}

// readIdentifier reads an identifier
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads digits with an optional fraction. A '.' after the digits
// ends the number only when it can be a clause terminator.
func (l *Lexer) readNumber() (string, *Diagnostic) {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	fraction := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		fraction = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == '.' && !l.terminatorFollows() {
		found := "'" + l.input[position:l.position] + ".'"
		if fraction {
			return "", lexicalError(l.pos(), "", found, "number has more than one decimal point")
		}
		return "", lexicalError(l.pos(), "", found, "decimal point must be followed by digits")
	}

	return l.input[position:l.position], nil
}

// terminatorFollows reports whether the '.' under examination is followed
// by layout or end of input, which makes it a clause terminator
func (l *Lexer) terminatorFollows() bool {
	next := l.peekChar()
	return next == eof || next == '%' || unicode.IsSpace(next)
}

// readQuoted reads a quoted string or atom starting at the opening quote
func (l *Lexer) readQuoted(quote rune, what string) (string, *Diagnostic) {
	start := l.pos()
	closing := "closing " + string(quote)
	l.readChar()

	var b strings.Builder
	for {
		switch l.ch {
		case eof:
			return "", lexicalError(start, closing, "end of input", "unterminated "+what)
		case '\n':
			return "", lexicalError(start, closing, "end of line", "unterminated "+what)
		case quote:
			l.readChar()
			if l.ch != quote {
				return b.String(), nil
			}
			// doubled quote stands for itself
			b.WriteRune(quote)
			l.readChar()
		case '\\':
			l.readChar()
			switch l.ch {
			case eof:
				return "", lexicalError(start, closing, "end of input", "unterminated "+what)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			default:
				b.WriteRune(l.ch)
			}
			l.readChar()
		default:
			b.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// matchOperator returns the longest symbolic operator at the current position
func (l *Lexer) matchOperator() string {
	rest := l.input[l.position:]
	for _, op := range symbolicOperators {
		if strings.HasPrefix(rest, op) {
			return op
		}
	}
	return ""
}

// Tokenize lexes the whole input, including the trailing EOF token
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	for tok, err := range Tokens(input) {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Tokens returns a restartable sequence over the tokens of input. Each
// iteration uses a fresh Lexer and ends after EOF or the first error.
func Tokens(input string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		l := NewLexer(input)
		for {
			tok, err := l.NextToken()
			if !yield(tok, err) || err != nil || tok.Type == TokenEOF {
				return
			}
		}
	}
}

// isLetter returns true if the character is an ASCII letter
func isLetter(ch rune) bool {
	return isLower(ch) || isUpper(ch)
}

func isLower(ch rune) bool {
	return 'a' <= ch && ch <= 'z'
}

func isUpper(ch rune) bool {
	return 'A' <= ch && ch <= 'Z'
}

// isDigit returns true if the character is a digit
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
