package altcfg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-altcfg/internal/escape"
	"github.com/KimNorgaard/go-altcfg/internal/lexer"
)

// Parse parses an alt-config document and returns its root mapping. The
// whole input is tokenized before the tree is built; on error no tree is
// returned.
func Parse(data []byte, opts ...Option) (*Node, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.Tokenize(data)
	if err != nil {
		return nil, err
	}
	return newParser(tokens, o).parseDocument()
}

// ParseReader reads r to the end and parses the result. See Parse.
func ParseReader(r io.Reader, opts ...Option) (*Node, error) {
	if r == nil {
		return nil, fmt.Errorf("altcfg: ParseReader(nil reader)")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

// Marshal returns the canonical text of n.
func Marshal(n *Node, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Escape returns s with newlines, carriage returns, quotes and backslashes
// escaped, ready to be placed between single quotes.
func Escape(s string) string {
	return escape.Escape(s)
}

// Unescape resolves the escapes in raw scalar text and trims trailing
// whitespace, exactly as the parser does for every key and scalar.
func Unescape(raw string) string {
	return escape.Unescape(raw)
}

// Decoder reads alt-config documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Note: This is a non-streaming implementation. Decode reads the entire
// reader into memory first before parsing.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the document from its input and stores the parsed tree in n,
// replacing whatever n held. On error n is left unchanged.
func (d *Decoder) Decode(n *Node) error {
	if n == nil {
		return fmt.Errorf("altcfg: Decode(nil *Node)")
	}
	doc, err := ParseReader(d.r, d.opts...)
	if err != nil {
		return err
	}
	*n = *doc
	return nil
}
