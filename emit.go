package altcfg

import (
	"io"
	"strings"

	"github.com/KimNorgaard/go-altcfg/internal/escape"
)

// Encoder writes the canonical text of trees to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the canonical text of n to the stream.
//
// Scalars are always single quoted, mapping entries are sorted by key and
// entries holding none are left out. A top-level mapping is written without
// braces, so the output of a parsed document parses back to an equal tree.
func (e *Encoder) Encode(n *Node) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	em := &emitter{w: e.w, indent: strings.Repeat(" ", o.indent)}
	return em.emit(n, 0, true)
}

// Emit writes the canonical text of n to w using the default options.
func Emit(w io.Writer, n *Node) error {
	return NewEncoder(w).Encode(n)
}

// emitter writes a Node tree depth first. depth is the nesting level of the
// node being written; isLast tells whether it is the final sibling, which
// decides the comma after a closing bracket or brace.
type emitter struct {
	w      io.Writer
	indent string
}

func (e *emitter) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *emitter) writeIndent(depth int) error {
	if depth <= 0 || e.indent == "" {
		return nil
	}
	return e.write(strings.Repeat(e.indent, depth))
}

func (e *emitter) emit(n *Node, depth int, isLast bool) error {
	switch n.Kind() {
	case KindScalar:
		return e.write("'" + escape.Escape(n.scalar) + "'\n")
	case KindList:
		return e.emitList(n, depth, isLast)
	case KindDict:
		return e.emitDict(n, depth, isLast)
	}
	return nil
}

func (e *emitter) emitList(n *Node, depth int, isLast bool) error {
	if err := e.write("[\n"); err != nil {
		return err
	}
	items := make([]*Node, 0, len(n.list))
	for _, item := range n.list {
		if !item.IsNone() {
			items = append(items, item)
		}
	}
	for i, item := range items {
		if err := e.writeIndent(depth); err != nil {
			return err
		}
		if err := e.emit(item, depth+1, i == len(items)-1); err != nil {
			return err
		}
	}
	return e.writeClose("]", depth, isLast)
}

func (e *emitter) emitDict(n *Node, depth int, isLast bool) error {
	if depth > 0 {
		if err := e.write("{\n"); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(n.dict))
	for k, v := range n.Entries() {
		if !v.IsNone() {
			keys = append(keys, k)
		}
	}
	for i, k := range keys {
		if err := e.writeIndent(depth); err != nil {
			return err
		}
		if err := e.write(formatKey(k) + ": "); err != nil {
			return err
		}
		if err := e.emit(n.dict[k], depth+1, i == len(keys)-1); err != nil {
			return err
		}
	}
	if depth == 0 {
		return nil
	}
	return e.writeClose("}", depth, isLast)
}

// writeClose writes a closing delimiter aligned with the line that opened
// the container.
func (e *emitter) writeClose(delim string, depth int, isLast bool) error {
	if err := e.writeIndent(depth - 1); err != nil {
		return err
	}
	if !isLast {
		delim += ","
	}
	return e.write(delim + "\n")
}

// formatKey quotes keys that would not read back as the same key when
// written bare. A leading byte order mark would be stripped from the first
// line of the output.
func formatKey(k string) string {
	if k == "" || strings.ContainsAny(k, ":,[]{}#'\"\\\n\r") ||
		strings.IndexAny(k[:1], " \t\v\f") == 0 || strings.HasPrefix(k, "\uFEFF") {
		return "'" + escape.Escape(k) + "'"
	}
	return k
}
