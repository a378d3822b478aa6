package ast

import "fmt"

// Print renders an expression in fully parenthesized prefix form, for
// example "(== (- 8 2) (+ 5 1))".
func Print(e Expr) string {
	switch e := e.(type) {
	case Binary:
		return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, Print(e.Left), Print(e.Right))
	case Grouping:
		return fmt.Sprintf("(group %s)", Print(e.Inner))
	case Literal:
		return e.Value.Format()
	case Unary:
		return fmt.Sprintf("(%s %s)", e.Operator.Lexeme, Print(e.Operand))
	case Variable:
		return fmt.Sprintf("(var %s)", e.Name.Lexeme)
	}

	panic(fmt.Sprintf("ast: unhandled expression %T", e))
}

// PrintStatement renders a statement the same way.
func PrintStatement(s Stmt) string {
	switch s := s.(type) {
	case ExpressionStmt:
		return fmt.Sprintf("(expr %s)", Print(s.Expr))
	case PrintStmt:
		return fmt.Sprintf("(print %s)", Print(s.Expr))
	case VarDecl:
		return fmt.Sprintf("(define %s %s)", s.Name.Lexeme, Print(s.Initializer))
	}

	panic(fmt.Sprintf("ast: unhandled statement %T", s))
}

func (v Binary) String() string   { return Print(v) }
func (v Grouping) String() string { return Print(v) }
func (v Literal) String() string  { return Print(v) }
func (v Unary) String() string    { return Print(v) }
func (v Variable) String() string { return Print(v) }

func (v ExpressionStmt) String() string { return PrintStatement(v) }
func (v PrintStmt) String() string      { return PrintStatement(v) }
func (v VarDecl) String() string        { return PrintStatement(v) }
