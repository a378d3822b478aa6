package interpreter

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pontaoski/midas/ast"
	"github.com/pontaoski/midas/errors"
	"github.com/pontaoski/midas/lexer"
	"github.com/pontaoski/midas/literal"
	"github.com/pontaoski/midas/parser"
	"github.com/pontaoski/midas/types"
)

func token(kind types.TokenKind, lexeme string) types.Token {
	return types.Token{Kind: kind, Lexeme: lexeme, Line: 1}
}

func num(v float64) ast.Expr {
	return ast.Literal{Value: literal.Number(v)}
}

func str(s string) ast.Expr {
	return ast.Literal{Value: literal.String(s)}
}

func evalSrc(t *testing.T, src string) (literal.Value, error) {
	t.Helper()
	tokens, err := lexer.Scan(src)
	if err != nil {
		t.Fatalf("Scan(%q) failed: %v", src, err)
	}
	expr, err := parser.NewParser(tokens).ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression(%q) failed: %v", src, err)
	}
	return Eval(expr, NewEnvironment())
}

func wantValue(t *testing.T, src string, expected literal.Value) {
	t.Helper()
	v, err := evalSrc(t, src)
	if err != nil {
		t.Fatalf("%q: unexpected error %v", src, err)
	}
	if v != expected {
		t.Fatalf("%q: expected %#v, got %#v", src, expected, v)
	}
}

func wantKind(t *testing.T, src string, kind errors.Kind) error {
	t.Helper()
	_, err := evalSrc(t, src)
	if !errors.Is(err, kind) {
		t.Fatalf("%q: expected %s, got %v", src, kind, err)
	}
	return err
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src      string
		expected float64
	}{
		{"1 + 2", 3},
		{"8 - 2 * 3", 2},
		{"(8 - 2) * 3", 18},
		{"7 / 2", 3.5},
		{"-4 + 1", -3},
		{"--4", 4},
		{"2 * 3 / 4", 1.5},
	}

	for _, tt := range tests {
		wantValue(t, tt.src, literal.Number(tt.expected))
	}
}

func TestComparisons(t *testing.T) {
	tests := map[string]literal.Value{
		"1 < 2":           literal.True,
		"2 <= 2":          literal.True,
		"3 > 4":           literal.False,
		"4 >= 5":          literal.False,
		`"abc" < "abd"`:   literal.True,
		`"b" >= "a"`:      literal.True,
		`"a" > "b"`:       literal.False,
		`"a" <= "a"`:      literal.True,
		"8 - 2 == 5 + 1":  literal.True,
		"1 != 1":          literal.False,
		`"a" == "a"`:      literal.True,
		"nil == null":     literal.True,
		"true == false":   literal.False,
		"nil != false":    literal.True,
		`1 == "1"`:        literal.False,
		`1 != "1"`:        literal.True,
		"(1 < 2) == true": literal.True,
	}

	for src, expected := range tests {
		wantValue(t, src, expected)
	}
}

func TestStrings(t *testing.T) {
	wantValue(t, `"foo" + "bar"`, literal.String("foobar"))
	wantValue(t, `"" + ""`, literal.String(""))
}

func TestBang(t *testing.T) {
	tests := map[string]literal.Value{
		"!0":     literal.True,
		"!3":     literal.False,
		`!""`:    literal.True,
		`!"a"`:   literal.False,
		"!true":  literal.False,
		"!false": literal.True,
		"!nil":   literal.True,
		"!!1":    literal.True,
	}

	for src, expected := range tests {
		wantValue(t, src, expected)
	}
}

func TestDivisionByZero(t *testing.T) {
	expr := ast.Binary{Left: num(4), Operator: token(types.SLASH, "/"), Right: num(0)}

	v, err := Eval(expr, NewEnvironment())
	if err == nil {
		t.Fatalf("expected an error, got %#v", v)
	}
	if n, ok := v.(literal.Number); ok && math.IsInf(float64(n), 0) {
		t.Fatal("division by zero must not produce infinity")
	}
	if kind, _ := errors.KindOf(err); kind != errors.KindDivisionByZero {
		t.Fatalf("expected DivisionByZero, got %v", err)
	}
	if !strings.Contains(err.Error(), "4") {
		t.Fatalf("expected the dividend in %q", err.Error())
	}
}

func TestEqualityAcrossTypes(t *testing.T) {
	expr := ast.Binary{Left: num(1), Operator: token(types.EQUAL_EQUAL, "=="), Right: str("1")}

	v, err := Eval(expr, NewEnvironment())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v != literal.False {
		t.Fatalf("expected false, got %#v", v)
	}
}

func TestTypeErrors(t *testing.T) {
	err := wantKind(t, `1 + "a"`, errors.KindBinaryType)
	if !strings.Contains(err.Error(), "Number and String") {
		t.Errorf("expected both operand types in %q", err.Error())
	}
	wantKind(t, `"a" * 2`, errors.KindBinaryType)
	wantKind(t, `"a" < 2`, errors.KindBinaryType)

	err = wantKind(t, `-"a"`, errors.KindUnaryType)
	if !strings.Contains(err.Error(), "String") {
		t.Errorf("expected operand type in %q", err.Error())
	}
	wantKind(t, "-true", errors.KindUnaryType)
	wantKind(t, "-nil", errors.KindUnaryType)

	wantKind(t, "true < false", errors.KindUnimplementedOperator)
	wantKind(t, "nil + 1", errors.KindUnimplementedOperator)
	wantKind(t, `"a" - "b"`, errors.KindUnimplementedOperator)
	wantKind(t, `"a" / "b"`, errors.KindUnimplementedOperator)
}

func TestErrorsShortCircuit(t *testing.T) {
	wantKind(t, "missing + (1 / 0)", errors.KindUndefinedVariable)
	wantKind(t, "(1 / 0) + missing", errors.KindDivisionByZero)
}

func TestUndefinedVariable(t *testing.T) {
	err := wantKind(t, "nope", errors.KindUndefinedVariable)
	if !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected the name in %q", err.Error())
	}
}

func run(t *testing.T, src string) (string, *Interpreter, error) {
	t.Helper()
	tokens, err := lexer.Scan(src)
	if err != nil {
		t.Fatalf("Scan(%q) failed: %v", src, err)
	}
	stmts, err := parser.NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}

	var out bytes.Buffer
	intr := New(&out)
	err = intr.Run(stmts)
	return out.String(), intr, err
}

func TestRun(t *testing.T) {
	out, intr, err := run(t, `
var a = 1;
var b = "two";
print a + 2;
print b + "!";
print a == 1;
print nil;
var a = a * 10;
print a;
a;
var c;
print c;
`)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	expected := "3\ntwo!\ntrue\nnull\n10\nnull\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}

	v, ok := intr.Environment().Get("a")
	if !ok || v != literal.Value(literal.Number(10)) {
		t.Fatalf("expected a = 10, got %#v", v)
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	out, intr, err := run(t, "print 1;\nprint missing;\nvar after = 2;")
	if !errors.Is(err, errors.KindUndefinedVariable) {
		t.Fatalf("expected UndefinedVariable, got %v", err)
	}
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, ok := intr.Environment().Get("after"); ok {
		t.Fatal("statements after the failing one must not run")
	}
}

func TestInterpret(t *testing.T) {
	intr := New(&bytes.Buffer{})
	intr.Environment().Define("x", literal.Number(4))

	v, err := intr.Interpret(ast.Binary{
		Left:     ast.Variable{Name: token(types.IDENT, "x")},
		Operator: token(types.STAR, "*"),
		Right:    num(2),
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v != literal.Value(literal.Number(8)) {
		t.Fatalf("expected 8, got %#v", v)
	}
}
