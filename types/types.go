package types

import (
	"fmt"
	"strconv"
)

// Position locates a token or error in its source.
type Position struct {
	Line     int
	Filename string
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

type TokenKind int

const (
	EOF TokenKind = iota

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	IDENT
	STRING
	NUMBER

	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	NULL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

var kindNames = map[TokenKind]string{
	EOF:           "EOF",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	LBRACE:        "LBRACE",
	RBRACE:        "RBRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENT:         "IDENT",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	CLASS:         "CLASS",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	FUN:           "FUN",
	FOR:           "FOR",
	IF:            "IF",
	NIL:           "NIL",
	NULL:          "NULL",
	OR:            "OR",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	VAR:           "VAR",
	WHILE:         "WHILE",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return "TokenKind(" + strconv.Itoa(int(t)) + ")"
}

// Keywords maps every reserved word to its token kind. It is shared by all
// lexers and must not be modified.
var Keywords = map[string]TokenKind{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"null":   NULL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdent returns the keyword kind for ident, or IDENT.
func LookupIdent(ident string) TokenKind {
	if kind, ok := Keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Literal is the payload carried by NUMBER, STRING and IDENT tokens.
type Literal interface {
	is_Literal()
	String() string
}

type Int int64

func (v Int) is_Literal()    {}
func (v Int) String() string { return "Int(" + strconv.FormatInt(int64(v), 10) + ")" }

type Float float64

func (v Float) is_Literal() {}
func (v Float) String() string {
	return "Float(" + strconv.FormatFloat(float64(v), 'f', -1, 64) + ")"
}

type Str string

func (v Str) is_Literal()    {}
func (v Str) String() string { return "Str(" + strconv.Quote(string(v)) + ")" }

type Ident string

func (v Ident) is_Literal()    {}
func (v Ident) String() string { return "Ident(" + strconv.Quote(string(v)) + ")" }

type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal Literal
	Line    int
}

// String renders the token as "<kind> <lexeme> <literal>".
func (t Token) String() string {
	lit := "nil"
	if t.Literal != nil {
		lit = t.Literal.String()
	}
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, lit)
}

// Describe names the token for error messages.
func (t Token) Describe() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}
