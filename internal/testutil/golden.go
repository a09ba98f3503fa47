package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateGoldenEnv rewrites golden files instead of comparing when set.
const UpdateGoldenEnv = "TASKBOARD_UPDATE_GOLDEN"

// GoldenString compares got against testdata/<name>.golden.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateGoldenEnv) != "" {
		require.NoError(t, os.MkdirAll("testdata", 0755))
		require.NoError(t, os.WriteFile(path, []byte(got), 0644))
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "reading golden file %s", path)
	assert.Equal(t, string(want), got, "output mismatch for %s", name)
}
