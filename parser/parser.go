package parser

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/midas/ast"
	"github.com/pontaoski/midas/errors"
	"github.com/pontaoski/midas/literal"
	"github.com/pontaoski/midas/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/midas", "parser")

// Parser is a recursive descent parser over a fully scanned token slice.
//
//	program     := declaration* EOF
//	declaration := "var" IDENT ( "=" expression )? ";" | statement
//	statement   := "print" expression ";" | expression ";"
//	expression  := equality
//	equality    := comparison ( ( "!=" | "==" ) comparison )*
//	comparison  := term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        := factor ( ( "-" | "+" ) factor )*
//	factor      := unary ( ( "/" | "*" ) unary )*
//	unary       := ( "!" | "-" ) unary | primary
//	primary     := NUMBER | STRING | "true" | "false" | "nil" | "null"
//	             | "(" expression ")" | IDENT
type Parser struct {
	tokens  []types.Token
	current int
}

func NewParser(tokens []types.Token) *Parser {
	return &Parser{tokens: tokens}
}

// guard runs fn, turning a panicked pipeline error into a return value.
// Anything else is a bug and keeps panicking.
func (p *Parser) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(errors.Error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()
	fn()
	return nil
}

// ParseExpression parses a single expression starting at the cursor. It
// stops at the first token that cannot continue the expression.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	var expr ast.Expr
	if err := p.guard(func() { expr = p.expression() }); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return expr, nil
}

// Parse parses a whole program. A statement that fails to parse is
// reported and skipped with Synchronize, so one call reports every broken
// statement. The statements that did parse are returned either way.
func (p *Parser) Parse() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	var errs errors.List

	for !p.AtEnd() {
		var stmt ast.Stmt
		if err := p.guard(func() { stmt = p.declaration() }); err != nil {
			errs = append(errs, err)
			p.Synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}

	plog.Debugf("parsed %d statements, %d errors", len(stmts), len(errs))

	if len(errs) > 0 {
		return stmts, tracerr.Wrap(errs)
	}
	return stmts, nil
}

// Synchronize discards tokens until the next one starts a statement or the
// input runs out.
func (p *Parser) Synchronize() {
	p.advance()

	for !p.AtEnd() {
		switch p.peek().Kind {
		case types.CLASS, types.FUN, types.VAR, types.FOR, types.IF, types.WHILE, types.PRINT, types.RETURN:
			return
		}
		p.advance()
	}
}

// AtEnd reports whether only EOF is left.
func (p *Parser) AtEnd() bool {
	return p.peek().Kind == types.EOF
}

func (p *Parser) peek() types.Token {
	if p.current >= len(p.tokens) {
		tok := types.Token{Kind: types.EOF}
		if len(p.tokens) > 0 {
			tok.Line = p.tokens[len(p.tokens)-1].Line
		}
		return tok
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() types.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() types.Token {
	tok := p.peek()
	if !p.AtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	if p.AtEnd() {
		return false
	}
	tok := p.peek()
	for _, kind := range k {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) match(k ...types.TokenKind) bool {
	if p.PeekIs(k...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind types.TokenKind, context string) types.Token {
	if p.PeekIs(kind) {
		return p.advance()
	}

	panic(errors.ExpectedKindGotKind{
		Expected: kind,
		Got:      p.peek(),
		Context:  context,
	})
}

func (p *Parser) declaration() ast.Stmt {
	if p.match(types.VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.expect(types.IDENT, "variable name")

	var init ast.Expr = ast.Literal{Value: literal.Nil}
	if p.match(types.EQUAL) {
		init = p.expression()
	}

	p.expect(types.SEMICOLON, "';' after variable declaration")
	return ast.VarDecl{Name: name, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	if p.match(types.PRINT) {
		expr := p.expression()
		p.expect(types.SEMICOLON, "';' after value")
		return ast.PrintStmt{Expr: expr}
	}

	expr := p.expression()
	p.expect(types.SEMICOLON, "';' after expression")
	return ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) expression() ast.Expr {
	return p.equality()
}

// binary parses one left-associative precedence level.
func (p *Parser) binary(next func() ast.Expr, ops ...types.TokenKind) ast.Expr {
	expr := next()

	for p.match(ops...) {
		operator := p.previous()
		right := next()
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *Parser) equality() ast.Expr {
	return p.binary(p.comparison, types.BANG_EQUAL, types.EQUAL_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return p.binary(p.term, types.GREATER, types.GREATER_EQUAL, types.LESS, types.LESS_EQUAL)
}

func (p *Parser) term() ast.Expr {
	return p.binary(p.factor, types.MINUS, types.PLUS)
}

func (p *Parser) factor() ast.Expr {
	return p.binary(p.unary, types.SLASH, types.STAR)
}

func (p *Parser) unary() ast.Expr {
	if p.match(types.BANG, types.MINUS) {
		operator := p.previous()
		return ast.Unary{Operator: operator, Operand: p.unary()}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case types.LPAREN:
		p.advance()
		expr := p.expression()
		p.expect(types.RPAREN, "')' after expression")
		return ast.Grouping{Inner: expr}
	case types.TRUE, types.FALSE, types.NIL, types.NULL, types.NUMBER, types.STRING:
		p.advance()
		return ast.Literal{Value: literal.FromToken(tok)}
	case types.IDENT:
		p.advance()
		return ast.Variable{Name: tok}
	}

	panic(errors.ExpectedExpression{Got: tok})
}
