package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depictio "github.com/depictio/depictio-models"
)

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DATA_ROOT", "/data")

	got, err := ExpandEnvVars("{DATA_ROOT}/runs")
	require.NoError(t, err)
	assert.Equal(t, "/data/runs", got)

	got, err = ExpandEnvVars("/plain/path")
	require.NoError(t, err)
	assert.Equal(t, "/plain/path", got)
}

func TestExpandEnvVarsUnsetIsHardFailure(t *testing.T) {
	os.Unsetenv("DEPICTIO_TEST_UNSET_VAR")

	_, err := ExpandEnvVars("{DEPICTIO_TEST_UNSET_VAR}/runs")
	require.Error(t, err)
	assert.Equal(t, depictio.KindMissingEnvVar, depictio.KindOf(err))
}

func TestDirectoryPathInCLIContext(t *testing.T) {
	dir := t.TempDir()
	rule := DirectoryPath(depictio.ContextCLI)

	got, err := rule(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = rule(filepath.Join(dir, "missing"))
	assert.Equal(t, depictio.KindPathNotFound, depictio.KindOf(err))

	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = rule(file)
	assert.Equal(t, depictio.KindNotADirectory, depictio.KindOf(err))
}

func TestDirectoryPathInServerContext(t *testing.T) {
	rule := DirectoryPath(depictio.ContextServer)

	got, err := rule("/definitely/not/there")
	require.NoError(t, err, "server context must skip filesystem checks")
	assert.Equal(t, "/definitely/not/there", got)

	_, err = rule("")
	require.Error(t, err)
}

func TestFilePathInCLIContext(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "run.log")
	require.NoError(t, os.WriteFile(file, []byte("ok"), 0o644))

	rule := FilePath(depictio.ContextCLI)

	got, err := rule(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	_, err = rule(dir)
	assert.Equal(t, depictio.KindNotAFile, depictio.KindOf(err))

	_, err = rule(filepath.Join(dir, "missing.log"))
	assert.Equal(t, depictio.KindPathNotFound, depictio.KindOf(err))
}

func TestAbsolutePath(t *testing.T) {
	cli := AbsolutePath(depictio.ContextCLI)

	_, err := cli("/etc/depictio/config.yaml")
	require.NoError(t, err)

	_, err = cli("relative/config.yaml")
	require.Error(t, err)

	server := AbsolutePath(depictio.ContextServer)
	_, err = server("relative/config.yaml")
	require.NoError(t, err, "server context accepts any non-empty path")
}
