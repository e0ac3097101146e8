package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStructural(t *testing.T) {
	tests := []struct {
		input    Type
		expected bool
	}{
		{SEQUENCE_START, true},
		{SEQUENCE_END, true},
		{MAPPING_START, true},
		{MAPPING_END, true},
		{KEY, false},
		{SCALAR, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.input.IsStructural())
		})
	}
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "'{'", MAPPING_START.Describe())
	require.Equal(t, "key", KEY.Describe())
	require.Equal(t, "scalar", SCALAR.Describe())
	require.Equal(t, "other", Type("other").Describe())
}
