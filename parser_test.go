package altcfg_test

import (
	"testing"

	"github.com/KimNorgaard/go-altcfg"
	"github.com/KimNorgaard/go-altcfg/internal/testutil"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string, opts ...altcfg.Option) *altcfg.Node {
	t.Helper()
	n, err := altcfg.Parse([]byte(input), opts...)
	require.NoError(t, err)
	return n
}

func TestParseDocument(t *testing.T) {
	input := `# server configuration
name: 'My Server'
port: 7788
debug: yes
modules: [
  chat
  'free roam',
]
voice: {
  bitrate: 64000, external: false
}
`
	root := mustParse(t, input)
	require.True(t, root.IsDict())
	require.Equal(t, []string{"debug", "modules", "name", "port", "voice"}, root.Keys())

	require.Equal(t, "My Server", root.Get("name").ToStringOr(""))
	require.Equal(t, 7788.0, root.Get("port").ToNumberOr(0))
	require.True(t, root.Get("debug").ToBoolOr(false))

	modules := root.Get("modules")
	require.True(t, modules.IsList())
	require.Equal(t, 2, modules.Len())
	require.Equal(t, "chat", modules.Index(0).ToStringOr(""))
	require.Equal(t, "free roam", modules.Index(1).ToStringOr(""))

	voice := root.Get("voice")
	require.True(t, voice.IsDict())
	require.Equal(t, 64000.0, voice.Get("bitrate").ToNumberOr(0))
	external, err := voice.Get("external").ToBool()
	require.NoError(t, err)
	require.False(t, external)
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "# nothing here\n", "\xEF\xBB\xBF", "{}", "{ }"} {
		root := mustParse(t, input)
		require.True(t, root.IsDict(), "input %q", input)
		require.Equal(t, 0, root.Len(), "input %q", input)
	}
}

func TestParseCommentSkipping(t *testing.T) {
	root := mustParse(t, "key: 'value' # trailing comment\nkey2: 1")
	require.Equal(t, 2, root.Len())
	require.True(t, root.Get("key").IsScalar())
	require.True(t, root.Get("key2").IsScalar())
	require.Equal(t, "value", root.Get("key").ToStringOr(""))
}

func TestParseEscapedQuote(t *testing.T) {
	root := mustParse(t, `msg: 'it\'s ok'`)
	require.Equal(t, "it's ok", root.Get("msg").ToStringOr(""))
}

func TestParseNested(t *testing.T) {
	root := mustParse(t, "matrix: [[1, 2], [3, [4]], []]\nempty: {}")

	matrix := root.Get("matrix")
	require.Equal(t, 3, matrix.Len())
	require.Equal(t, 2, matrix.Index(0).Len())
	require.Equal(t, "4", matrix.Index(1).Index(1).Index(0).ToStringOr(""))
	require.True(t, matrix.Index(2).IsList())
	require.Equal(t, 0, matrix.Index(2).Len())

	require.True(t, root.Get("empty").IsDict())
	require.Equal(t, 0, root.Get("empty").Len())
}

func TestParseListOfMappings(t *testing.T) {
	root := mustParse(t, `servers: [
  { host: a.example.com, port: 1 },
  { host: b.example.com, port: 2 },
]`)
	servers := root.Get("servers")
	require.Equal(t, 2, servers.Len())
	require.Equal(t, "b.example.com", servers.Index(1).Get("host").ToStringOr(""))
}

func TestParseExplicitBraces(t *testing.T) {
	root := mustParse(t, "{\n  a: 1\n  b: { c: 2 }\n}\n")
	require.Equal(t, []string{"a", "b"}, root.Keys())
	require.Equal(t, "2", root.Get("b").Get("c").ToStringOr(""))
}

func TestParseDuplicateKeys(t *testing.T) {
	root := mustParse(t, "a: 1\nb: 2\na: 3")
	require.Equal(t, 2, root.Len())
	require.Equal(t, "3", root.Get("a").ToStringOr(""))

	_, err := altcfg.Parse([]byte("a: 1\nb: 2\na: 3"), altcfg.DisallowDuplicateKeys())
	require.ErrorIs(t, err, altcfg.ErrDuplicateKey)
	require.Contains(t, err.Error(), "duplicate key: a")

	var perr *altcfg.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 3, perr.Line)

	// The same key in different mappings is fine.
	mustParse(t, "a: { x: 1 }\nb: { x: 2 }", altcfg.DisallowDuplicateKeys())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   error
		line   int
		column int
	}{
		{
			name:   "scalar without key",
			input:  "just a value",
			kind:   altcfg.ErrKeyExpected,
			line:   1,
			column: 12,
		},
		{
			name:   "list at mapping level",
			input:  "a: 1\n[1, 2]",
			kind:   altcfg.ErrKeyExpected,
			line:   2,
			column: 1,
		},
		{
			name:   "missing value",
			input:  "a:",
			kind:   altcfg.ErrUnexpectedToken,
			line:   1,
			column: 2,
		},
		{
			name:   "key as value",
			input:  "a: b: c",
			kind:   altcfg.ErrUnexpectedToken,
			line:   1,
			column: 4,
		},
		{
			name:   "key inside list",
			input:  "a: [x: 1]",
			kind:   altcfg.ErrUnexpectedToken,
			line:   1,
			column: 5,
		},
		{
			name:   "unterminated list",
			input:  "a: [1, 2",
			kind:   altcfg.ErrUnexpectedToken,
			line:   1,
			column: 8,
		},
		{
			name:   "unterminated mapping",
			input:  "a: {\n  b: 1\n",
			kind:   altcfg.ErrUnexpectedEOF,
			line:   3,
			column: 0,
		},
		{
			name:   "unbalanced closing brace",
			input:  "a: 1 }\nb: 2",
			kind:   altcfg.ErrUnexpectedToken,
			line:   2,
			column: 1,
		},
		{
			name:   "stray closing bracket",
			input:  "a: 1\n]",
			kind:   altcfg.ErrKeyExpected,
			line:   2,
			column: 1,
		},
		{
			name:   "unterminated string",
			input:  "a: 'open",
			kind:   altcfg.ErrUnexpectedEOF,
			line:   1,
			column: 8,
		},
		{
			name:   "content after explicit braces",
			input:  "{ a: 1 } b: 2",
			kind:   altcfg.ErrUnexpectedToken,
			line:   1,
			column: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := altcfg.Parse([]byte(tt.input))
			require.Nil(t, root)
			require.ErrorIs(t, err, tt.kind)

			var perr *altcfg.ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, tt.line, perr.Line, "line")
			require.Equal(t, tt.column, perr.Column, "column")
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	_, err := altcfg.Parse([]byte("a: [[[1]]]"), altcfg.MaxDepth(2))
	require.ErrorIs(t, err, altcfg.ErrMaxDepth)

	root := mustParse(t, "a: [[1]]", altcfg.MaxDepth(2))
	require.Equal(t, "1", root.Get("a").Index(0).Index(0).ToStringOr(""))

	_, err = altcfg.Parse([]byte("a: 1"), altcfg.MaxDepth(0))
	require.EqualError(t, err, "altcfg: max depth must be a positive integer")
}

func BenchmarkParse(b *testing.B) {
	input, err := testutil.ReadTestData("voice.cfg")
	if err != nil {
		b.Fatalf("failed to read benchmark file: %v", err)
	}
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := altcfg.Parse(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshal(b *testing.B) {
	input, err := testutil.ReadTestData("voice.cfg")
	if err != nil {
		b.Fatalf("failed to read benchmark file: %v", err)
	}
	root, err := altcfg.Parse(input)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := altcfg.Marshal(root); err != nil {
			b.Fatal(err)
		}
	}
}
