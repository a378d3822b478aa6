package interpreter

import (
	"github.com/pontaoski/midas/lexer"
	"github.com/pontaoski/midas/literal"
	"github.com/pontaoski/midas/parser"
)

// RunSource scans, parses and runs a whole program. Nothing runs when
// scanning or parsing fails.
func (i *Interpreter) RunSource(src string) error {
	tokens, err := lexer.Scan(src)
	if err != nil {
		return err
	}

	stmts, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return err
	}

	return i.Run(stmts)
}

// EvalSource treats src as a lone expression when it is one, returning its
// value with ok set. Otherwise src runs as a program.
func (i *Interpreter) EvalSource(src string) (v literal.Value, ok bool, err error) {
	tokens, err := lexer.Scan(src)
	if err != nil {
		return nil, false, err
	}

	p := parser.NewParser(tokens)
	if expr, perr := p.ParseExpression(); perr == nil && p.AtEnd() {
		v, err := i.Interpret(expr)
		return v, err == nil, err
	}

	stmts, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return nil, false, err
	}

	return nil, false, i.Run(stmts)
}
