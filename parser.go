package altcfg

import (
	cfgerrors "github.com/KimNorgaard/go-altcfg/errors"
	"github.com/KimNorgaard/go-altcfg/internal/token"
)

// parser builds a Node tree from a tokenized document.
type parser struct {
	tokens []token.Token
	next   int
	eof    bool
	depth  int
	opts   *options

	curToken token.Token
}

func newParser(tokens []token.Token, opts *options) *parser {
	p := &parser{tokens: tokens, opts: opts}
	p.nextToken()
	return p
}

// nextToken advances to the next token. At the end of the stream curToken
// keeps the last token so errors can still report a position.
func (p *parser) nextToken() {
	if p.next >= len(p.tokens) {
		p.eof = true
		return
	}
	p.curToken = p.tokens[p.next]
	p.next++
}

func (p *parser) curTokenIs(t token.Type) bool {
	return !p.eof && p.curToken.Type == t
}

// parseDocument parses the whole token stream. The stream starts with the
// lexer's synthesized '{' and must end with the matching '}'.
func (p *parser) parseDocument() (*Node, error) {
	if !p.curTokenIs(token.MAPPING_START) {
		return nil, p.unexpected()
	}
	p.nextToken()

	var (
		doc *Node
		err error
	)
	if p.curTokenIs(token.MAPPING_START) {
		// The whole document is wrapped in explicit braces.
		doc, err = p.parseMapping()
	} else {
		doc, err = p.parseMappingBody()
	}
	if err != nil {
		return nil, err
	}

	if p.eof {
		return nil, p.errorf(cfgerrors.ErrUnexpectedEOF, "")
	}
	if !p.curTokenIs(token.MAPPING_END) {
		return nil, p.unexpected()
	}
	p.nextToken()
	if !p.eof {
		return nil, p.unexpected()
	}
	return doc, nil
}

func (p *parser) parseValue() (*Node, error) {
	if p.eof {
		return nil, p.errorf(cfgerrors.ErrUnexpectedEOF, "")
	}
	switch p.curToken.Type {
	case token.SCALAR:
		n := Scalar(p.curToken.Literal)
		p.nextToken()
		return n, nil
	case token.SEQUENCE_START:
		return p.parseList()
	case token.MAPPING_START:
		return p.parseMapping()
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseList() (*Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	list := &Node{kind: KindList}
	p.nextToken() // consume '['
	for !p.curTokenIs(token.SEQUENCE_END) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list.list = append(list.list, v)
	}
	p.nextToken() // consume ']'
	return list, nil
}

func (p *parser) parseMapping() (*Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.nextToken() // consume '{'
	dict, err := p.parseMappingBody()
	if err != nil {
		return nil, err
	}
	p.nextToken() // consume '}'
	return dict, nil
}

// parseMappingBody parses key/value entries up to, but not including, the
// closing '}'.
func (p *parser) parseMappingBody() (*Node, error) {
	dict := &Node{kind: KindDict, dict: make(map[string]*Node)}
	for {
		if p.eof {
			return nil, p.errorf(cfgerrors.ErrUnexpectedEOF, "")
		}
		if p.curTokenIs(token.MAPPING_END) {
			return dict, nil
		}
		if !p.curTokenIs(token.KEY) {
			return nil, p.errorf(cfgerrors.ErrKeyExpected, "")
		}

		key := p.curToken.Literal
		if _, dup := dict.dict[key]; dup && p.opts.noDuplicates {
			return nil, p.errorf(cfgerrors.ErrDuplicateKey, key)
		}
		p.nextToken()

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		dict.dict[key] = v
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opts.maxDepth {
		return p.errorf(cfgerrors.ErrMaxDepth, "")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) unexpected() error {
	return p.errorf(cfgerrors.ErrUnexpectedToken, p.curToken.Type.Describe())
}

func (p *parser) errorf(kind error, detail string) error {
	t := p.curToken
	return cfgerrors.New(kind, t.Offset, t.Line, t.Column, detail)
}
