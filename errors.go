package altcfg

import (
	"errors"
	"fmt"

	cfgerrors "github.com/KimNorgaard/go-altcfg/errors"
)

// ErrInvalidCast is returned by the strict conversions of Node when the node
// does not hold a value of the requested type.
var ErrInvalidCast = errors.New("invalid cast")

// ParseError is returned for malformed input. See the errors package for the
// kinds it unwraps to.
type ParseError = cfgerrors.ParseError

// Kinds of parse failures, re-exported from the errors package.
var (
	ErrUnexpectedEOF   = cfgerrors.ErrUnexpectedEOF
	ErrKeyExpected     = cfgerrors.ErrKeyExpected
	ErrUnexpectedToken = cfgerrors.ErrUnexpectedToken
	ErrDuplicateKey    = cfgerrors.ErrDuplicateKey
	ErrMaxDepth        = cfgerrors.ErrMaxDepth
)

func castError(msg string, n *Node) error {
	return fmt.Errorf("altcfg: %w: %s (got %s)", ErrInvalidCast, msg, n.Kind())
}
