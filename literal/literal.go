// Package literal holds the runtime values produced by evaluation.
//
// Values are comparable with ==: two values are equal only when they have
// the same variant and the same payload.
package literal

import (
	"fmt"
	"strconv"

	"github.com/pontaoski/midas/types"
)

type Value interface {
	is_Value()
	// Format renders the value the way print shows it.
	Format() string
	// TypeName names the value's type in error messages.
	TypeName() string
}

type Number float64

func (v Number) is_Value()        {}
func (v Number) Format() string   { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Number) TypeName() string { return "Number" }

type String string

func (v String) is_Value()        {}
func (v String) Format() string   { return string(v) }
func (v String) TypeName() string { return "String" }

type Boolean bool

func (v Boolean) is_Value() {}
func (v Boolean) Format() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Boolean) TypeName() string { return "Boolean" }

type Null struct{}

func (v Null) is_Value()        {}
func (v Null) Format() string   { return "null" }
func (v Null) TypeName() string { return "Boolean" }

var (
	True  Value = Boolean(true)
	False Value = Boolean(false)
	Nil   Value = Null{}
)

// FromBool converts a Go bool.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// IsFalsy answers "is v falsy" as a Boolean. The unary ! operator returns
// this result unchanged.
func IsFalsy(v Value) Value {
	switch v := v.(type) {
	case Number:
		return FromBool(v == 0)
	case String:
		return FromBool(len(v) == 0)
	case Boolean:
		return FromBool(!bool(v))
	case Null:
		return True
	}
	panic(fmt.Sprintf("literal: unknown value %#v", v))
}

// FromToken converts a literal token. Any other token kind is a parser bug
// and panics.
func FromToken(tok types.Token) Value {
	switch tok.Kind {
	case types.NUMBER:
		switch lit := tok.Literal.(type) {
		case types.Float:
			return Number(lit)
		case types.Int:
			return Number(lit)
		}
	case types.STRING:
		if lit, ok := tok.Literal.(types.Str); ok {
			return String(lit)
		}
	case types.TRUE:
		return True
	case types.FALSE:
		return False
	case types.NIL, types.NULL:
		return Nil
	}
	panic(fmt.Sprintf("literal: token %s is not a literal", tok))
}
