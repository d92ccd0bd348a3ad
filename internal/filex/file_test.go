package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesAndIsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubdDir("certificates")
	require.NoError(t, err)

	// t.TempDir may sit behind a symlink (macOS /var -> /private/var).
	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "certificates"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(first)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)

	fi, err := os.Stat(first)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	second, err := EnsureSubdDir("certificates")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureSubdDir_FailsWhenFileExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()
	require.NoError(t, os.WriteFile("certificates", []byte("x"), 0o600))

	_, err := EnsureSubdDir("certificates")
	require.Error(t, err)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "course-42", SafeName("course-42"))
	assert.Equal(t, "_etc_passwd", SafeName("/etc/passwd"))
	assert.Equal(t, "_", SafeName("../"))
	assert.Equal(t, "unnamed", SafeName(".."))
	assert.Equal(t, "unnamed", SafeName(""))
}
