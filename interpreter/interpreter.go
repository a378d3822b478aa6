package interpreter

import (
	"fmt"
	"io"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/midas/ast"
	"github.com/pontaoski/midas/errors"
	"github.com/pontaoski/midas/literal"
	"github.com/pontaoski/midas/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/midas", "interpreter")

// Eval evaluates an expression, children first. The first failing child
// aborts the evaluation.
func Eval(e ast.Expr, env *Environment) (literal.Value, error) {
	switch e := e.(type) {
	case ast.Literal:
		return e.Value, nil
	case ast.Grouping:
		return Eval(e.Inner, env)
	case ast.Variable:
		v, ok := env.Get(e.Name.Lexeme)
		if !ok {
			return nil, errors.UndefinedVariable{Name: e.Name.Lexeme, Line: e.Name.Line}
		}
		return v, nil
	case ast.Unary:
		operand, err := Eval(e.Operand, env)
		if err != nil {
			return nil, err
		}
		return evalUnary(e.Operator, operand)
	case ast.Binary:
		left, err := Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return evalBinary(left, e.Operator, right)
	}

	panic(fmt.Sprintf("interpreter: unhandled expression %T", e))
}

func evalUnary(op types.Token, operand literal.Value) (literal.Value, error) {
	switch op.Kind {
	case types.MINUS:
		n, ok := operand.(literal.Number)
		if !ok {
			return nil, errors.UnaryTypeMismatch{Operator: op.Lexeme, Operand: operand.TypeName()}
		}
		return -n, nil
	case types.BANG:
		return literal.IsFalsy(operand), nil
	}

	return nil, errors.UnimplementedOperator{Operator: op.Lexeme, Operands: []string{operand.TypeName()}}
}

func evalBinary(left literal.Value, op types.Token, right literal.Value) (literal.Value, error) {
	switch op.Kind {
	case types.EQUAL_EQUAL:
		return literal.FromBool(left == right), nil
	case types.BANG_EQUAL:
		return literal.FromBool(left != right), nil
	}

	switch l := left.(type) {
	case literal.Number:
		switch r := right.(type) {
		case literal.Number:
			return numberOp(l, op, r)
		case literal.String:
			return nil, mismatch(left, op, right)
		}
	case literal.String:
		switch r := right.(type) {
		case literal.String:
			return stringOp(l, op, r)
		case literal.Number:
			return nil, mismatch(left, op, right)
		}
	}

	return nil, unimplemented(left, op, right)
}

func numberOp(l literal.Number, op types.Token, r literal.Number) (literal.Value, error) {
	switch op.Kind {
	case types.PLUS:
		return l + r, nil
	case types.MINUS:
		return l - r, nil
	case types.STAR:
		return l * r, nil
	case types.SLASH:
		if r == 0 {
			return nil, errors.DivisionByZero{Dividend: l.Format()}
		}
		return l / r, nil
	case types.GREATER:
		return literal.FromBool(l > r), nil
	case types.GREATER_EQUAL:
		return literal.FromBool(l >= r), nil
	case types.LESS:
		return literal.FromBool(l < r), nil
	case types.LESS_EQUAL:
		return literal.FromBool(l <= r), nil
	}
	return nil, unimplemented(l, op, r)
}

func stringOp(l literal.String, op types.Token, r literal.String) (literal.Value, error) {
	switch op.Kind {
	case types.PLUS:
		return l + r, nil
	case types.GREATER:
		return literal.FromBool(l > r), nil
	case types.GREATER_EQUAL:
		return literal.FromBool(l >= r), nil
	case types.LESS:
		return literal.FromBool(l < r), nil
	case types.LESS_EQUAL:
		return literal.FromBool(l <= r), nil
	}
	return nil, unimplemented(l, op, r)
}

func mismatch(left literal.Value, op types.Token, right literal.Value) error {
	return errors.BinaryTypeMismatch{
		Operator:  op.Lexeme,
		LeftType:  left.TypeName(),
		RightType: right.TypeName(),
		Left:      left.Format(),
		Right:     right.Format(),
	}
}

func unimplemented(left literal.Value, op types.Token, right literal.Value) error {
	return errors.UnimplementedOperator{
		Operator: op.Lexeme,
		Operands: []string{left.TypeName(), right.TypeName()},
	}
}

// Execute runs one statement. print writes to out.
func Execute(s ast.Stmt, env *Environment, out io.Writer) error {
	switch s := s.(type) {
	case ast.ExpressionStmt:
		_, err := Eval(s.Expr, env)
		return err
	case ast.PrintStmt:
		v, err := Eval(s.Expr, env)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, v.Format())
		return err
	case ast.VarDecl:
		v, err := Eval(s.Initializer, env)
		if err != nil {
			return err
		}
		plog.Tracef("define %s = %s", s.Name.Lexeme, v.Format())
		env.Define(s.Name.Lexeme, v)
		return nil
	}

	panic(fmt.Sprintf("interpreter: unhandled statement %T", s))
}

// Interpreter owns the environment of one program run.
type Interpreter struct {
	env *Environment
	out io.Writer
}

func New(out io.Writer) *Interpreter {
	return &Interpreter{env: NewEnvironment(), out: out}
}

func (i *Interpreter) Environment() *Environment {
	return i.env
}

// Interpret evaluates a bare expression against the interpreter's bindings.
func (i *Interpreter) Interpret(e ast.Expr) (literal.Value, error) {
	v, err := Eval(e, i.env)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return v, nil
}

// Run executes statements in order and stops at the first error.
func (i *Interpreter) Run(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := Execute(stmt, i.env, i.out); err != nil {
			return tracerr.Wrap(err)
		}
	}
	plog.Debugf("ran %d statements", len(stmts))
	return nil
}
