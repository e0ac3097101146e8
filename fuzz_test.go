package altcfg_test

import (
	"testing"

	"github.com/KimNorgaard/go-altcfg"
	"github.com/KimNorgaard/go-altcfg/internal/testutil"
	"github.com/stretchr/testify/require"
)

func FuzzRoundTrip(f *testing.F) {
	docs, err := testutil.Documents()
	if err != nil {
		f.Fatalf("failed to list seed documents: %v", err)
	}
	for _, doc := range docs {
		data, err := testutil.ReadTestData(doc)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", doc, err)
		}
		f.Add(data)
	}

	f.Add([]byte("{}"))
	f.Add([]byte("a: []"))
	f.Add([]byte("a: 'x\\'y'"))
	f.Add([]byte("# c \"#\" d\na: b"))
	f.Add([]byte("'': ''"))

	f.Fuzz(func(t *testing.T, data []byte) {
		first, err := altcfg.Parse(data)
		if err != nil {
			// Invalid input; only panics are interesting here.
			return
		}

		out, err := altcfg.Marshal(first)
		require.NoError(t, err, "Marshal failed for a parsed tree")

		second, err := altcfg.Parse(out)
		require.NoError(t, err, "Parse failed on our own output:\n%s", out)

		require.True(t, first.Equal(second), "tree changed after a round trip:\n%s", out)
	})
}
