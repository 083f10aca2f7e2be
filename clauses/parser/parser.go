// File: parser/parser.go
package parser

import (
	"errors"
	"fmt"

	"github.com/dangerclosesec/clausecheck/clauses/model"
)

// Parser is a recursive-descent parser over a Lexer with one token of
// lookahead. Each grammar production is one method.
type Parser struct {
	l           *Lexer
	curToken    Token
	lexErr      error
	grammar     *Grammar
	recovery    bool
	diagnostics []*Diagnostic
}

// Option configures a Parser
type Option func(*Parser)

// WithGrammar selects the operator table, StandardGrammar by default
func WithGrammar(g *Grammar) Option {
	return func(p *Parser) {
		if g != nil {
			p.grammar = g
		}
	}
}

// WithRecovery enables panic-mode recovery: after a syntax error the parser
// skips past the next '.' and keeps going, collecting one diagnostic per
// failed clause. Lexical errors still end the parse.
func WithRecovery(enabled bool) Option {
	return func(p *Parser) {
		p.recovery = enabled
	}
}

// NewParser creates a new Parser
func NewParser(l *Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:       l,
		grammar: StandardGrammar(),
	}
	for _, opt := range opts {
		opt(p)
	}

	// Load the first token so curToken is set
	_ = p.nextToken()

	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() error {
	tok, err := p.l.NextToken()
	p.curToken = tok
	if err != nil {
		p.lexErr = err
	}
	return err
}

// Diagnostics returns every diagnostic recorded by ParseProgram
func (p *Parser) Diagnostics() []*Diagnostic {
	out := make([]*Diagnostic, len(p.diagnostics))
	copy(out, p.diagnostics)
	return out
}

// ParseProgram parses clauses up to the end of input. It returns either a
// complete program or the diagnostic(s); never both.
func (p *Parser) ParseProgram() (*model.Program, error) {
	prog := model.NewProgram()

	for p.lexErr != nil || p.curToken.Type != TokenEOF {
		clause, err := p.ParseClause()
		if err == nil {
			prog.AddClause(clause)
			continue
		}

		var d *Diagnostic
		if !errors.As(err, &d) {
			return nil, err
		}
		p.diagnostics = append(p.diagnostics, d)
		if !p.recovery || d.Kind == LexicalError || !p.synchronize() {
			break
		}
	}

	switch len(p.diagnostics) {
	case 0:
		return prog, nil
	case 1:
		return nil, p.diagnostics[0]
	default:
		return nil, Diagnostics(p.Diagnostics())
	}
}

// synchronize skips to just past the next clause terminator. It returns
// false when the input ended or a lexical error stopped the scan.
func (p *Parser) synchronize() bool {
	for p.curToken.Type != TokenEnd && p.curToken.Type != TokenEOF {
		if err := p.nextToken(); err != nil {
			p.recordLexical(err)
			return false
		}
	}
	if p.curToken.Type == TokenEOF {
		return false
	}
	if err := p.nextToken(); err != nil {
		p.recordLexical(err)
		return false
	}
	return true
}

func (p *Parser) recordLexical(err error) {
	var d *Diagnostic
	if errors.As(err, &d) {
		p.diagnostics = append(p.diagnostics, d)
	}
}

// ParseClause parses one clause including its terminating '.'
//
//	clause := ( ':-' body | '?-' body | term ( ':-' body )? ) '.'
func (p *Parser) ParseClause() (*model.Clause, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}

	start := p.curToken
	clause := &model.Clause{Pos: start.Pos}

	switch start.Type {
	case TokenNeck, TokenQuery:
		clause.Kind = model.Directive
		if start.Type == TokenQuery {
			clause.Kind = model.Query
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		clause.Body = body
	default:
		head, err := p.parseTerm(MaxArgPriority)
		if err != nil {
			return nil, err
		}
		if !model.IsCallable(head) {
			return nil, syntaxError(start, "callable term",
				fmt.Sprintf("clause head must be an atom or compound term, not %s", head))
		}
		clause.Head = head
		clause.Kind = model.Fact

		if p.curToken.Type == TokenNeck {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			body, err := p.parseBody()
			if err != nil {
				return nil, err
			}
			clause.Body = body
			clause.Kind = model.Rule
		}
	}

	if err := p.expect(TokenEnd, "'.'"); err != nil {
		return nil, err
	}
	return clause, nil
}

// ParseTerm parses a single term that must be followed by end of input,
// optionally after one '.'
func (p *Parser) ParseTerm() (model.Term, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	t, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type == TokenEnd {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	if p.curToken.Type != TokenEOF {
		return nil, syntaxError(p.curToken, "end of input", "")
	}
	return t, nil
}

// parseBody parses a rule body and splits its top-level conjunction
func (p *Parser) parseBody() ([]model.Term, error) {
	goal, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}

	var goals []model.Term
	for {
		c, ok := goal.(*model.Compound)
		if !ok || c.Functor != "," || c.Arity() != 2 {
			break
		}
		goals = append(goals, c.Args[0])
		goal = c.Args[1]
	}
	return append(goals, goal), nil
}

// parseDisjunction parses  ifthen ( ';' ifthen )*
func (p *Parser) parseDisjunction() (model.Term, error) {
	return p.parseSeparated(TokenSemicolon, ";", p.parseIfThen)
}

// parseIfThen parses  conjunction ( '->' ifthen )?
func (p *Parser) parseIfThen() (model.Term, error) {
	cond, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != TokenArrow {
		return cond, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	then, err := p.parseIfThen()
	if err != nil {
		return nil, err
	}
	return model.NewCompound("->", cond, then), nil
}

// parseConjunction parses  term ( ',' term )*
func (p *Parser) parseConjunction() (model.Term, error) {
	return p.parseSeparated(TokenComma, ",", p.parseArg)
}

// parseSeparated parses one or more items separated by sep and folds them
// right-nested under functor, the way the control constructs associate
func (p *Parser) parseSeparated(sep TokenType, functor string, item func() (model.Term, error)) (model.Term, error) {
	first, err := item()
	if err != nil {
		return nil, err
	}
	items := []model.Term{first}
	for p.curToken.Type == sep {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		next, err := item()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}

	result := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		result = model.NewCompound(functor, items[i], result)
	}
	return result, nil
}

func (p *Parser) parseArg() (model.Term, error) {
	return p.parseTerm(MaxArgPriority)
}

// parseTerm parses a term of priority at most maxPriority by precedence
// climbing over the grammar's infix operators
func (p *Parser) parseTerm(maxPriority int) (model.Term, error) {
	left, leftPriority, err := p.parseOperand(maxPriority)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.curInfix()
		if !ok || op.Priority > maxPriority {
			break
		}
		leftMax, rightMax := op.argPriorities()
		if leftPriority > leftMax {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm(rightMax)
		if err != nil {
			return nil, err
		}
		left = model.NewCompound(op.Name, left, right)
		leftPriority = op.Priority
	}

	return left, nil
}

// parseOperand parses a prefix-operator term or a primary and reports the
// priority of what it built
func (p *Parser) parseOperand(maxPriority int) (model.Term, int, error) {
	tok := p.curToken
	op, ok := p.curPrefix()
	if !ok {
		t, err := p.parsePrimary()
		return t, 0, err
	}

	if err := p.nextToken(); err != nil {
		return nil, 0, err
	}

	// An operator with nothing to apply to is just an atom
	if !p.canStartTerm() {
		return model.NewAtom(tok.Literal), 0, nil
	}

	// -1 written without a gap is a negative number, not -(1)
	if tok.Literal == "-" && p.curToken.Type == TokenNumber && p.curToken.Pos.Offset == tok.Pos.Offset+1 {
		num := model.NewNumber("-" + p.curToken.Literal)
		if err := p.nextToken(); err != nil {
			return nil, 0, err
		}
		return num, 0, nil
	}

	if op.Priority > maxPriority {
		op.Priority = maxPriority
	}
	_, argMax := op.argPriorities()
	arg, err := p.parseTerm(argMax)
	if err != nil {
		return nil, 0, err
	}
	return model.NewCompound(op.Name, arg), op.Priority, nil
}

// parsePrimary parses
//
//	primary := atom | variable | number | string
//	         | atom '(' arglist ')' | '(' body ')' | '[' listbody? ']'
func (p *Parser) parsePrimary() (model.Term, error) {
	tok := p.curToken

	switch tok.Type {
	case TokenAtom, TokenOperator:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if tok.Call {
			return p.parseCompound(tok)
		}
		if tok.Type == TokenOperator && p.canStartTerm() {
			return nil, syntaxError(tok, "term", fmt.Sprintf("%s is not a prefix operator", tok))
		}
		return model.NewAtom(tok.Literal), nil
	case TokenVariable:
		return model.NewVariable(tok.Literal), p.nextToken()
	case TokenNumber:
		return model.NewNumber(tok.Literal), p.nextToken()
	case TokenString:
		return model.NewString(tok.Literal), p.nextToken()
	case TokenLParen:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		inner, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case TokenLBracket:
		return p.parseList()
	default:
		return nil, syntaxError(tok, "term", "")
	}
}

// parseCompound parses the argument list of a functor whose name token has
// already been consumed; curToken is the '(' that followed it
//
//	arglist := term ( ',' term )*
func (p *Parser) parseCompound(functor Token) (model.Term, error) {
	if err := p.expect(TokenLParen, "'('"); err != nil {
		return nil, err
	}
	if p.curToken.Type == TokenRParen {
		return nil, syntaxError(p.curToken, "term",
			fmt.Sprintf("%s() has no arguments, write it as the atom %s", functor.Literal, functor.Literal))
	}

	var args []model.Term
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curToken.Type != TokenComma {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return model.NewCompound(functor.Literal, args...), nil
}

// parseList parses
//
//	'[' ( term ( ',' term )* ( '|' term )? )? ']'
func (p *Parser) parseList() (model.Term, error) {
	if err := p.expect(TokenLBracket, "'['"); err != nil {
		return nil, err
	}
	if p.curToken.Type == TokenRBracket {
		return model.NewList(nil, nil), p.nextToken()
	}

	var elems []model.Term
	for {
		elem, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if p.curToken.Type != TokenComma {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	var tail model.Term
	if p.curToken.Type == TokenBar {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		t, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		tail = t
	}

	if err := p.expect(TokenRBracket, "']'"); err != nil {
		return nil, err
	}
	return model.NewList(elems, tail), nil
}

// expect checks that the current token has type t and advances past it.
// expected describes the token for the diagnostic.
func (p *Parser) expect(t TokenType, expected string) error {
	if p.curToken.Type != t {
		return syntaxError(p.curToken, expected, "")
	}
	return p.nextToken()
}

// curInfix returns the infix operator at the current token, if any
func (p *Parser) curInfix() (Operator, bool) {
	switch p.curToken.Type {
	case TokenOperator, TokenAtom:
		return p.grammar.Infix(p.curToken.Literal)
	}
	return Operator{}, false
}

// curPrefix returns the prefix operator at the current token, if any. A
// functor written as -(X) is a compound, not a prefix application.
func (p *Parser) curPrefix() (Operator, bool) {
	switch p.curToken.Type {
	case TokenOperator, TokenAtom:
		if p.curToken.Call {
			return Operator{}, false
		}
		return p.grammar.Prefix(p.curToken.Literal)
	}
	return Operator{}, false
}

// canStartTerm reports whether the current token can begin a term
func (p *Parser) canStartTerm() bool {
	switch p.curToken.Type {
	case TokenAtom, TokenVariable, TokenNumber, TokenString, TokenLParen, TokenLBracket:
		return true
	case TokenOperator:
		_, ok := p.curPrefix()
		return ok || p.curToken.Call
	default:
		return false
	}
}
