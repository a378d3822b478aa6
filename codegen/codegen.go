// Package codegen lowers programs that only use numbers to LLVM IR. Each
// variable becomes a global double and print calls printf.
package codegen

import (
	"fmt"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/midas/ast"
	"github.com/pontaoski/midas/errors"
	"github.com/pontaoski/midas/literal"
	mtypes "github.com/pontaoski/midas/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/midas", "codegen")

// Unsupported is returned for constructs that have no numeric lowering.
type Unsupported struct {
	What string
	Line int
}

func (u Unsupported) Error() string {
	if u.Line > 0 {
		return fmt.Sprintf("cannot lower %s to LLVM IR. line %d", u.What, u.Line)
	}
	return fmt.Sprintf("cannot lower %s to LLVM IR", u.What)
}

type ctx struct {
	module  *ir.Module
	globals map[string]*ir.Global
	order   []string
	printf  value.Value
	format  value.Value
}

// Lower builds a module whose main function runs stmts.
func Lower(stmts []ast.Stmt) (m *ir.Module, err error) {
	defer func() {
		if v := recover(); v != nil {
			lerr, ok := v.(error)
			if !ok {
				panic(v)
			}
			switch lerr.(type) {
			case Unsupported, errors.Error:
				m, err = nil, lerr
			default:
				panic(v)
			}
		}
	}()

	c := &ctx{
		module:  ir.NewModule(),
		globals: map[string]*ir.Global{},
		order:   []string{},
	}

	builtins := addBuiltins(c.module)
	c.printf = builtins["printf"]

	fn := c.module.NewFunc("main", types.I32)
	entry := fn.NewBlock("entry")

	format := builtins[".fmt"].(*ir.Global)
	zero := constant.NewInt(types.I64, 0)
	c.format = entry.NewGetElementPtr(format.ContentType, format, zero, zero)

	for _, stmt := range stmts {
		c.statement(stmt, entry)
	}
	entry.NewRet(constant.NewInt(types.I32, 0))

	registerGlobalsWithModule(globalsInfo{Globals: c.order}, c.module)

	plog.Debugf("lowered %d statements, %d globals", len(stmts), len(c.order))

	return c.module, nil
}

func (c *ctx) global(name string) *ir.Global {
	if g, ok := c.globals[name]; ok {
		return g
	}

	g := c.module.NewGlobalDef("g."+name, constant.NewFloat(Number, 0))
	c.globals[name] = g
	c.order = append(c.order, name)
	return g
}

func (c *ctx) statement(s ast.Stmt, b *ir.Block) {
	switch stmt := s.(type) {
	case ast.ExpressionStmt:
		c.expression(stmt.Expr, b)
	case ast.PrintStmt:
		v := c.expression(stmt.Expr, b)
		b.NewCall(c.printf, c.format, v)
	case ast.VarDecl:
		v := c.expression(stmt.Initializer, b)
		b.NewStore(v, c.global(stmt.Name.Lexeme))
	default:
		panic(Unsupported{What: fmt.Sprintf("%T", s)})
	}
}

// isZero reports whether e is a literal zero, looking through groupings.
func isZero(e ast.Expr) bool {
	switch expr := e.(type) {
	case ast.Grouping:
		return isZero(expr.Inner)
	case ast.Literal:
		return expr.Value == literal.Value(literal.Number(0))
	}
	return false
}

func (c *ctx) expression(e ast.Expr, b *ir.Block) value.Value {
	switch expr := e.(type) {
	case ast.Literal:
		n, ok := expr.Value.(literal.Number)
		if !ok {
			panic(Unsupported{What: expr.Value.TypeName() + " literal " + expr.Value.Format()})
		}
		return constant.NewFloat(Number, float64(n))
	case ast.Grouping:
		return c.expression(expr.Inner, b)
	case ast.Variable:
		g, ok := c.globals[expr.Name.Lexeme]
		if !ok {
			panic(errors.UndefinedVariable{Name: expr.Name.Lexeme, Line: expr.Name.Line})
		}
		return b.NewLoad(Number, g)
	case ast.Unary:
		if expr.Operator.Kind != mtypes.MINUS {
			panic(Unsupported{What: "operator " + expr.Operator.Lexeme, Line: expr.Operator.Line})
		}
		return b.NewFNeg(c.expression(expr.Operand, b))
	case ast.Binary:
		left := c.expression(expr.Left, b)
		right := c.expression(expr.Right, b)

		switch expr.Operator.Kind {
		case mtypes.PLUS:
			return b.NewFAdd(left, right)
		case mtypes.MINUS:
			return b.NewFSub(left, right)
		case mtypes.STAR:
			return b.NewFMul(left, right)
		case mtypes.SLASH:
			if isZero(expr.Right) {
				panic(errors.DivisionByZero{Dividend: ast.Print(expr.Left)})
			}
			return b.NewFDiv(left, right)
		}

		panic(Unsupported{What: "operator " + expr.Operator.Lexeme, Line: expr.Operator.Line})
	}

	panic(Unsupported{What: fmt.Sprintf("%T", e)})
}
