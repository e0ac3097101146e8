package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	err := New(ErrKeyExpected, 12, 3, 4, "")
	require.Equal(t, "altcfg: key expected at line 3, column 4 (offset 12)", err.Error())
	require.True(t, errors.Is(err, ErrKeyExpected))
	require.False(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestParseErrorDetail(t *testing.T) {
	var err error = New(ErrUnexpectedToken, 7, 1, 7, "']'")
	require.EqualError(t, err, "altcfg: unexpected token: ']' at line 1, column 7 (offset 7)")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 7, perr.Offset)
	require.Equal(t, 1, perr.Line)
	require.Equal(t, 7, perr.Column)
}
