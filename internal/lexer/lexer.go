package lexer

import (
	"bytes"

	cfgerrors "github.com/KimNorgaard/go-altcfg/errors"
	"github.com/KimNorgaard/go-altcfg/internal/escape"
	"github.com/KimNorgaard/go-altcfg/internal/token"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Lexer holds the state for tokenizing alt-config source.
type Lexer struct {
	input    []byte
	position int // bytes consumed so far
	line     int
	column   int
	buf      bytes.Buffer
}

// New creates and returns a new Lexer. A leading UTF-8 byte order mark is
// stripped from input.
func New(input []byte) *Lexer {
	return &Lexer{input: bytes.TrimPrefix(input, bom), line: 1}
}

// Tokenize scans the whole input of a new Lexer. See (*Lexer).Tokenize.
func Tokenize(input []byte) ([]token.Token, error) {
	return New(input).Tokenize()
}

// Tokenize scans the remaining input and returns all of its tokens. The
// result is wrapped in a synthesized MAPPING_START/MAPPING_END pair, so a
// document of bare "key: value" entries reads as a single mapping.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	tokens := []token.Token{{Type: token.MAPPING_START, Line: 1}}
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			tok.Type = token.MAPPING_END
			return append(tokens, tok), nil
		}
		tokens = append(tokens, tok)
	}
}

// NextToken scans the input and returns the next token. At the end of input
// it returns a token of type EOF.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipToNextToken()
	if l.atEOF() {
		return l.newToken(token.EOF, ""), nil
	}

	switch ch := l.peekChar(); ch {
	case '[', ']', '{', '}':
		l.advance()
		return l.newToken(token.Type(ch), string(ch)), nil
	case '\'', '"':
		raw, err := l.readQuoted()
		if err != nil {
			return token.Token{}, err
		}
		return l.keyOrScalar(raw), nil
	default:
		return l.keyOrScalar(l.readUnquoted()), nil
	}
}

func (l *Lexer) newToken(typ token.Type, literal string) token.Token {
	return token.Token{Type: typ, Literal: literal, Offset: l.position, Line: l.line, Column: l.column}
}

// keyOrScalar classifies a just-read value by the byte that follows it and
// consumes a trailing ':' or ',' separator.
func (l *Lexer) keyOrScalar(raw string) token.Token {
	typ := token.SCALAR
	if l.peekChar() == ':' {
		typ = token.KEY
	}
	tok := l.newToken(typ, escape.Unescape(raw))
	if ch := l.peekChar(); ch == ':' || ch == ',' {
		l.advance()
	}
	return tok
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// peekChar returns the next unread byte, or 0 at the end of input.
func (l *Lexer) peekChar() byte {
	if l.atEOF() {
		return 0
	}
	return l.input[l.position]
}

func (l *Lexer) advance() byte {
	ch := l.input[l.position]
	l.position++
	l.column++
	if ch == '\n' {
		l.line++
		l.column = 0
	}
	return ch
}

func (l *Lexer) skipToNextToken() {
	for !l.atEOF() {
		switch l.peekChar() {
		case ' ', '\t', '\r', '\n', ',':
			l.advance()
		case '#':
			l.skipComment()
		default:
			return
		}
	}
}

// skipComment consumes a comment. A comment ends after the next newline or
// the next '#'. A double quoted span inside a comment may contain '#'; it
// runs to the closing quote or the end of the line.
func (l *Lexer) skipComment() {
	l.advance() // consume '#'
	for !l.atEOF() {
		switch l.advance() {
		case '\n', '#':
			return
		case '"':
			for !l.atEOF() && l.peekChar() != '\n' {
				if l.advance() == '"' {
					break
				}
			}
		}
	}
}

// readQuoted reads a single or double quoted string and returns its raw,
// still escaped content. Line breaks inside the string are normalized to
// '\n'.
func (l *Lexer) readQuoted() (string, error) {
	quote := l.advance()
	l.buf.Reset()
	for {
		if l.atEOF() {
			return "", cfgerrors.New(cfgerrors.ErrUnexpectedEOF, l.position, l.line, l.column, "unterminated string")
		}
		switch ch := l.advance(); ch {
		case quote:
			return l.buf.String(), nil
		case '\\':
			l.buf.WriteByte(ch)
			// The escaped byte is taken verbatim so it cannot close the
			// string. Line breaks go through the normalization below.
			if next := l.peekChar(); !l.atEOF() && next != '\r' && next != '\n' {
				l.buf.WriteByte(l.advance())
			}
		case '\r':
			if l.peekChar() == '\n' {
				l.advance()
			}
			l.buf.WriteByte('\n')
		default:
			l.buf.WriteByte(ch)
		}
	}
}

func (l *Lexer) readUnquoted() string {
	start := l.position
	for !l.atEOF() && !isUnquotedTerminator(l.peekChar()) {
		l.advance()
	}
	return string(l.input[start:l.position])
}

func isUnquotedTerminator(ch byte) bool {
	switch ch {
	case '\n', ':', ',', ']', '}', '#':
		return true
	}
	return false
}
