package altcfg_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/KimNorgaard/go-altcfg"
	"github.com/KimNorgaard/go-altcfg/internal/testutil"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

func TestGolden(t *testing.T) {
	docs, err := testutil.Documents()
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			src, err := testutil.ReadTestData(doc)
			require.NoError(t, err)

			var actual []byte
			root, err := altcfg.Parse(src)
			if err != nil {
				// Documents that fail to parse keep the error message as
				// their golden output.
				actual = []byte(err.Error())
			} else {
				actual, err = altcfg.Marshal(root)
				require.NoError(t, err)
			}

			goldenFile := testutil.GoldenName(doc)
			if *update {
				// Run from the module root: go test . -update
				err := os.WriteFile(filepath.Join(testutil.Dir, goldenFile), actual, 0o644)
				require.NoError(t, err)
				return
			}

			expected, err := testutil.ReadTestData(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")

			require.Equal(t, string(expected), string(actual), "Canonical output does not match golden file.")
		})
	}
}

// The canonical output of every valid sample must itself be canonical.
func TestGoldenIdempotent(t *testing.T) {
	docs, err := testutil.Documents()
	require.NoError(t, err)

	for _, doc := range docs {
		src, err := testutil.ReadTestData(doc)
		require.NoError(t, err)
		root, err := altcfg.Parse(src)
		if err != nil {
			continue
		}
		first, err := altcfg.Marshal(root)
		require.NoError(t, err)

		again, err := altcfg.Parse(first)
		require.NoError(t, err, doc)
		require.True(t, root.Equal(again), doc)

		second, err := altcfg.Marshal(again)
		require.NoError(t, err)
		require.Equal(t, string(first), string(second), doc)
	}
}
