package altcfg

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind is the type of the value held by a Node.
type Kind int

const (
	KindNone Kind = iota
	KindScalar
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a value of a configuration tree: none, a scalar string, an ordered
// list of nodes or a mapping from string keys to nodes. The zero value is a
// none node.
//
// A nil *Node stands for a value that does not exist. All query methods
// accept a nil receiver and treat it like a none node, so lookups can be
// chained without intermediate checks:
//
//	port := root.Get("server").Get("port").ToNumberOr(7788)
//
// Containers own their children. Constructors and mutators store deep
// copies of the nodes passed to them, so two trees never share a node.
//
// A Node is not safe for concurrent use. Note that Get inserts missing keys,
// so even reading through Get is a write.
type Node struct {
	kind   Kind
	scalar string
	list   []*Node
	dict   map[string]*Node
}

// None returns a new none node.
func None() *Node {
	return &Node{}
}

// Scalar returns a new scalar node holding s.
func Scalar(s string) *Node {
	return &Node{kind: KindScalar, scalar: s}
}

// Bool returns a new scalar node holding "true" or "false".
func Bool(b bool) *Node {
	return Scalar(strconv.FormatBool(b))
}

// Number returns a new scalar node holding f formatted with at most 15
// significant digits.
func Number(f float64) *Node {
	return Scalar(formatNumber(f))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', 15, 64)
}

// List returns a new list node holding copies of items.
func List(items ...*Node) *Node {
	n := &Node{kind: KindList, list: make([]*Node, 0, len(items))}
	for _, item := range items {
		n.list = append(n.list, own(item))
	}
	return n
}

// Dict returns a new mapping node holding copies of the entries of m.
func Dict(m map[string]*Node) *Node {
	n := &Node{kind: KindDict, dict: make(map[string]*Node, len(m))}
	for k, v := range m {
		n.dict[k] = own(v)
	}
	return n
}

// own returns a copy of v that can be stored in a container. Absent values
// are stored as none nodes.
func own(v *Node) *Node {
	if v == nil {
		return &Node{}
	}
	return v.Clone()
}

// Kind returns the kind of n. A nil node is of kind KindNone.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNone
	}
	return n.kind
}

// IsNone reports whether n is absent or a none node.
func (n *Node) IsNone() bool { return n.Kind() == KindNone }

// IsScalar reports whether n is a scalar node.
func (n *Node) IsScalar() bool { return n.Kind() == KindScalar }

// IsList reports whether n is a list node.
func (n *Node) IsList() bool { return n.Kind() == KindList }

// IsDict reports whether n is a mapping node.
func (n *Node) IsDict() bool { return n.Kind() == KindDict }

// ToBool interprets a scalar as a boolean. "true" and "yes" are true,
// "false" and "no" are false. Anything else fails with ErrInvalidCast.
func (n *Node) ToBool() (bool, error) {
	if !n.IsScalar() {
		return false, castError("not a bool", n)
	}
	switch n.scalar {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	}
	return false, castError("not a bool", n)
}

// ToBoolOr is like ToBool but returns def instead of failing.
func (n *Node) ToBoolOr(def bool) bool {
	b, err := n.ToBool()
	if err != nil {
		return def
	}
	return b
}

// ToNumber interprets a scalar as a floating point number. The whole scalar,
// apart from leading whitespace, must be a number.
func (n *Node) ToNumber() (float64, error) {
	if !n.IsScalar() {
		return 0, castError("not a number", n)
	}
	f, err := strconv.ParseFloat(strings.TrimLeft(n.scalar, " \t\n\v\f\r"), 64)
	if err != nil {
		return 0, castError("not a number", n)
	}
	return f, nil
}

// ToNumberOr is like ToNumber but returns def instead of failing.
func (n *Node) ToNumberOr(def float64) float64 {
	f, err := n.ToNumber()
	if err != nil {
		return def
	}
	return f
}

// ToString returns the text of a scalar.
func (n *Node) ToString() (string, error) {
	if !n.IsScalar() {
		return "", castError("not a string", n)
	}
	return n.scalar, nil
}

// ToStringOr is like ToString but returns def instead of failing.
func (n *Node) ToStringOr(def string) string {
	if !n.IsScalar() {
		return def
	}
	return n.scalar
}

// ToList returns the elements of a list. The returned slice is a copy, the
// elements are the list's own nodes.
func (n *Node) ToList() ([]*Node, error) {
	if !n.IsList() {
		return nil, castError("not a list", n)
	}
	return slices.Clone(n.list), nil
}

// ToDict returns the entries of a mapping. The returned map is the node's
// own map; changes to it change the node.
func (n *Node) ToDict() (map[string]*Node, error) {
	if !n.IsDict() {
		return nil, castError("not a dict", n)
	}
	if n.dict == nil {
		n.dict = make(map[string]*Node)
	}
	return n.dict, nil
}

// Len returns the number of elements of a list or entries of a mapping, and
// 0 for any other node.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindList:
		return len(n.list)
	case KindDict:
		return len(n.dict)
	}
	return 0
}

// Index returns the i-th element of a list. It returns nil if n is not a
// list or i is out of range; the list is never modified.
func (n *Node) Index(i int) *Node {
	if !n.IsList() || i < 0 || i >= len(n.list) {
		return nil
	}
	return n.list[i]
}

// Get returns the entry of a mapping stored under key. If there is no such
// entry, a none node is inserted under key and returned, so the result can
// be assigned to. Get returns nil if n is not a mapping.
//
// Use Lookup to read without inserting.
func (n *Node) Get(key string) *Node {
	if !n.IsDict() {
		return nil
	}
	if v, ok := n.dict[key]; ok {
		return v
	}
	if n.dict == nil {
		n.dict = make(map[string]*Node)
	}
	v := &Node{}
	n.dict[key] = v
	return v
}

// Lookup returns the entry of a mapping stored under key and whether it
// exists. It never modifies n.
func (n *Node) Lookup(key string) (*Node, bool) {
	if !n.IsDict() {
		return nil, false
	}
	v, ok := n.dict[key]
	return v, ok
}

// Keys returns the keys of a mapping in lexicographic order.
func (n *Node) Keys() []string {
	if !n.IsDict() {
		return nil
	}
	return slices.Sorted(maps.Keys(n.dict))
}

// Entries returns an iterator over the entries of a mapping in lexicographic
// key order.
func (n *Node) Entries() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, k := range n.Keys() {
			if !yield(k, n.dict[k]) {
				return
			}
		}
	}
}

// Assign replaces the value of n with a deep copy of src. Whatever n held
// before is dropped. A nil src turns n into a none node.
func (n *Node) Assign(src *Node) {
	*n = *own(src)
}

// Set stores a copy of v under key. It fails if n is not a mapping.
func (n *Node) Set(key string, v *Node) error {
	if !n.IsDict() {
		return castError("not a dict", n)
	}
	if n.dict == nil {
		n.dict = make(map[string]*Node)
	}
	n.dict[key] = own(v)
	return nil
}

// Delete removes the entry stored under key. It fails if n is not a
// mapping.
func (n *Node) Delete(key string) error {
	if !n.IsDict() {
		return castError("not a dict", n)
	}
	delete(n.dict, key)
	return nil
}

// Append adds a copy of v to the end of a list. It fails if n is not a
// list.
func (n *Node) Append(v *Node) error {
	if !n.IsList() {
		return castError("not a list", n)
	}
	n.list = append(n.list, own(v))
	return nil
}

// Clone returns a deep copy of n. The clone of nil is nil.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{kind: n.kind, scalar: n.scalar}
	switch n.kind {
	case KindList:
		c.list = make([]*Node, len(n.list))
		for i, v := range n.list {
			c.list[i] = v.Clone()
		}
	case KindDict:
		c.dict = make(map[string]*Node, len(n.dict))
		for k, v := range n.dict {
			c.dict[k] = v.Clone()
		}
	}
	return c
}

// Equal reports whether n and other hold the same value. Absent and none
// nodes are equal to each other.
func (n *Node) Equal(other *Node) bool {
	if n.Kind() != other.Kind() {
		return false
	}
	switch n.Kind() {
	case KindScalar:
		return n.scalar == other.scalar
	case KindList:
		return slices.EqualFunc(n.list, other.list, (*Node).Equal)
	case KindDict:
		return maps.EqualFunc(n.dict, other.dict, (*Node).Equal)
	}
	return true
}

// String returns the canonical text of n.
func (n *Node) String() string {
	var sb strings.Builder
	if err := Emit(&sb, n); err != nil {
		return fmt.Sprintf("%%!(altcfg: %v)", err)
	}
	return sb.String()
}
