package altcfg

import "fmt"

const (
	defaultMaxDepth = 1000
	defaultIndent   = 2
)

// Option configures parsing and emitting.
type Option func(*options) error

type options struct {
	maxDepth     int
	noDuplicates bool
	indent       int
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth: defaultMaxDepth,
		indent:   defaultIndent,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth returns an Option that sets the maximum nesting depth of lists
// and mappings accepted by the parser. This helps prevent stack overflows
// on hostile input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("altcfg: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// DisallowDuplicateKeys returns an Option that makes the parser reject a
// mapping that repeats a key. By default the last occurrence wins.
func DisallowDuplicateKeys() Option {
	return func(o *options) error {
		o.noDuplicates = true
		return nil
	}
}

// Indent returns an Option that sets the number of spaces per nesting level
// used by the emitter. The default is 2.
func Indent(spaces int) Option {
	return func(o *options) error {
		if spaces < 0 {
			return fmt.Errorf("altcfg: indent must be a non-negative integer")
		}
		o.indent = spaces
		return nil
	}
}
