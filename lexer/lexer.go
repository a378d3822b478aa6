package lexer

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/midas/errors"
	"github.com/pontaoski/midas/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/midas", "lexer")

type Lexer struct {
	pos    types.Position
	reader *bufio.Reader
	lexeme strings.Builder
	tokens []types.Token
	errs   errors.List
	ioErr  error
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// Scan tokenizes a whole source string.
func Scan(source string) ([]types.Token, error) {
	return NewLexer(strings.NewReader(source), "").Scan()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func (l *Lexer) read() (rune, int, bool) {
	if l.ioErr != nil {
		return 0, 0, false
	}
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.ioErr = err
		}
		return 0, 0, false
	}
	return r, size, true
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
}

// advance consumes the next rune into the current lexeme. It returns 0 at
// the end of input.
func (l *Lexer) advance() rune {
	r, _ := l.next()
	return r
}

// next consumes the next rune into the current lexeme and reports whether
// there was one. Bytes that are not valid UTF-8 go into the lexeme as is.
func (l *Lexer) next() (rune, bool) {
	r, size, ok := l.read()
	if !ok {
		return 0, false
	}
	if r == utf8.RuneError && size == 1 {
		l.backup()
		b, err := l.reader.ReadByte()
		if err != nil {
			panic(err)
		}
		l.lexeme.WriteByte(b)
		return r, true
	}
	l.lexeme.WriteRune(r)
	return r, true
}

// peek returns the next rune without consuming it, or 0 at the end of input.
func (l *Lexer) peek() rune {
	r, _, ok := l.read()
	if !ok {
		return 0
	}
	l.backup()
	return r
}

// peekNextDigit reports whether the byte after the next one is an ASCII digit.
func (l *Lexer) peekNextDigit() bool {
	byt, err := l.reader.Peek(2)
	if err != nil || len(byt) < 2 {
		return false
	}
	return isDigit(rune(byt[1]))
}

func (l *Lexer) atEnd() bool {
	_, err := l.reader.Peek(1)
	return err != nil
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) add(kind types.TokenKind, lit types.Literal) {
	l.tokens = append(l.tokens, types.Token{
		Kind:    kind,
		Lexeme:  l.lexeme.String(),
		Literal: lit,
		Line:    l.pos.Line,
	})
}

func (l *Lexer) fail(err error) {
	l.errs = append(l.errs, err)
}

func (l *Lexer) pick(next rune, two, one types.TokenKind) {
	if l.match(next) {
		l.add(two, nil)
		return
	}
	l.add(one, nil)
}

var single = map[rune]types.TokenKind{
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	',': types.COMMA,
	'.': types.DOT,
	'-': types.MINUS,
	'+': types.PLUS,
	';': types.SEMICOLON,
	'*': types.STAR,
}

// Scan consumes the reader and returns every token followed by one EOF
// token. Lexical errors do not stop scanning; when any occurred they are
// all returned together and no tokens are.
func (l *Lexer) Scan() ([]types.Token, error) {
	for {
		l.lexeme.Reset()
		r, ok := l.next()
		if !ok {
			break
		}
		l.lexToken(r)
	}

	if l.ioErr != nil {
		return nil, tracerr.Wrap(l.ioErr)
	}

	l.lexeme.Reset()
	l.add(types.EOF, nil)

	plog.Debugf("scanned %d tokens, %d errors", len(l.tokens), len(l.errs))

	if len(l.errs) > 0 {
		return nil, tracerr.Wrap(l.errs)
	}
	return l.tokens, nil
}

func (l *Lexer) lexToken(r rune) {
	if kind, ok := single[r]; ok {
		l.add(kind, nil)
		return
	}

	switch r {
	case '!':
		l.pick('=', types.BANG_EQUAL, types.BANG)
	case '=':
		l.pick('=', types.EQUAL_EQUAL, types.EQUAL)
	case '<':
		l.pick('=', types.LESS_EQUAL, types.LESS)
	case '>':
		l.pick('=', types.GREATER_EQUAL, types.GREATER)
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.atEnd() {
				l.advance()
			}
			return
		}
		l.add(types.SLASH, nil)
	case ' ', '\r', '\t':
	case '\n':
		l.pos.Line++
	case '"':
		l.lexString()
	default:
		switch {
		case isDigit(r):
			l.lexNumber()
		case firstChar(r):
			l.lexIdent()
		default:
			l.fail(errors.UnexpectedCharacter{Char: r, Location: l.pos})
		}
	}
}

func (l *Lexer) lexString() {
	start := l.pos
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.pos.Line++
		}
		l.advance()
	}

	if l.atEnd() {
		l.fail(errors.UnterminatedString{Location: start})
		return
	}

	l.advance()

	text := l.lexeme.String()
	l.add(types.STRING, types.Str(text[1:len(text)-1]))
}

func (l *Lexer) lexNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && l.peekNextDigit() {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.lexeme.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		l.fail(errors.InvalidNumber{Text: text, Location: l.pos})
		return
	}
	l.add(types.NUMBER, types.Float(v))
}

func (l *Lexer) lexIdent() {
	for otherChar(l.peek()) {
		l.advance()
	}

	text := l.lexeme.String()
	kind := types.LookupIdent(text)
	if kind == types.IDENT {
		l.add(kind, types.Ident(text))
		return
	}
	l.add(kind, nil)
}
