package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/midas/types"
	"github.com/ztrue/tracerr"
)

type Kind int

const (
	KindLex Kind = iota
	KindUnterminatedString
	KindNumberParse
	KindParse
	KindUnaryType
	KindBinaryType
	KindDivisionByZero
	KindUndefinedVariable
	KindUnimplementedOperator
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindUnterminatedString:
		return "UnterminatedString"
	case KindNumberParse:
		return "NumberParseError"
	case KindParse:
		return "ParseError"
	case KindUnaryType:
		return "UnaryTypeError"
	case KindBinaryType:
		return "BinaryTypeError"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindUndefinedVariable:
		return "UndefinedVariable"
	case KindUnimplementedOperator:
		return "UnimplementedOperator"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Static reports whether errors of this kind are found before evaluation.
func (k Kind) Static() bool {
	return k <= KindParse
}

// Error is implemented by every error the pipeline reports.
type Error interface {
	error
	Kind() Kind
}

type UnexpectedCharacter struct {
	Char     rune
	Location types.Position
}

func (e UnexpectedCharacter) Kind() Kind { return KindLex }
func (e UnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character %q. %s", e.Char, e.Location)
}

type UnterminatedString struct {
	Location types.Position
}

func (e UnterminatedString) Kind() Kind { return KindUnterminatedString }
func (e UnterminatedString) Error() string {
	return fmt.Sprintf("unterminated string. %s", e.Location)
}

type InvalidNumber struct {
	Text     string
	Location types.Position
}

func (e InvalidNumber) Kind() Kind { return KindNumberParse }
func (e InvalidNumber) Error() string {
	return fmt.Sprintf("could not parse number %s. %s", e.Text, e.Location)
}

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.Token
	Context  string
}

func (e ExpectedKindGotKind) Kind() Kind { return KindParse }
func (e ExpectedKindGotKind) Error() string {
	want := e.Context
	if want == "" {
		want = e.Expected.String()
	}
	return fmt.Sprintf("expected %s, got %s. line %d", want, e.Got.Describe(), e.Got.Line)
}

type ExpectedExpression struct {
	Got types.Token
}

func (e ExpectedExpression) Kind() Kind { return KindParse }
func (e ExpectedExpression) Error() string {
	return fmt.Sprintf("expected expression, got %s. line %d", e.Got.Describe(), e.Got.Line)
}

type UnaryTypeMismatch struct {
	Operator string
	Operand  string
}

func (e UnaryTypeMismatch) Kind() Kind { return KindUnaryType }
func (e UnaryTypeMismatch) Error() string {
	return fmt.Sprintf("cannot use %s operator on type %s", e.Operator, e.Operand)
}

type BinaryTypeMismatch struct {
	Operator  string
	LeftType  string
	RightType string
	Left      string
	Right     string
}

func (e BinaryTypeMismatch) Kind() Kind { return KindBinaryType }
func (e BinaryTypeMismatch) Error() string {
	return fmt.Sprintf("cannot use %s operator between %s and %s types (%s and %s)", e.Operator, e.LeftType, e.RightType, e.Left, e.Right)
}

type DivisionByZero struct {
	Dividend string
}

func (e DivisionByZero) Kind() Kind { return KindDivisionByZero }
func (e DivisionByZero) Error() string {
	return fmt.Sprintf("cannot divide %s by 0", e.Dividend)
}

type UndefinedVariable struct {
	Name string
	Line int
}

func (e UndefinedVariable) Kind() Kind { return KindUndefinedVariable }
func (e UndefinedVariable) Error() string {
	return fmt.Sprintf("variable %s has not been declared. line %d", e.Name, e.Line)
}

type UnimplementedOperator struct {
	Operator string
	Operands []string
}

func (e UnimplementedOperator) Kind() Kind { return KindUnimplementedOperator }
func (e UnimplementedOperator) Error() string {
	return fmt.Sprintf("%s not yet implemented for %s", e.Operator, strings.Join(e.Operands, " and "))
}

// List collects several errors from one stage.
type List []error

func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// Kinds returns the kinds of every pipeline error inside err, looking
// through tracerr wrappers and lists.
func Kinds(err error) []Kind {
	if err == nil {
		return nil
	}

	switch e := tracerr.Unwrap(err).(type) {
	case List:
		var ret []Kind
		for _, inner := range e {
			ret = append(ret, Kinds(inner)...)
		}
		return ret
	case Error:
		return []Kind{e.Kind()}
	}

	return nil
}

// KindOf returns the kind of the first pipeline error inside err.
func KindOf(err error) (Kind, bool) {
	kinds := Kinds(err)
	if len(kinds) == 0 {
		return 0, false
	}
	return kinds[0], true
}

// Is reports whether err carries an error of kind k.
func Is(err error, k Kind) bool {
	for _, kind := range Kinds(err) {
		if kind == k {
			return true
		}
	}
	return false
}
