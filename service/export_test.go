package service

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportStorageSave(t *testing.T) {
	exports, err := NewExportStorage(t.TempDir())
	require.NoError(t, err)

	filename, err := exports.Save("\"a\",\"b\"\n")
	require.NoError(t, err)

	data, err := os.ReadFile(exports.Path(filename))
	require.NoError(t, err)
	assert.Equal(t, "\"a\",\"b\"\n", string(data))
}

func TestExportStorageFileNamePattern(t *testing.T) {
	exports, err := NewExportStorage(t.TempDir())
	require.NoError(t, err)

	name := exports.GenerateFileName()

	assert.Regexp(t, regexp.MustCompile(`^result_\d{8}_\d{6}_\d+\.csv$`), name)
}

func TestExportStorageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	_, err := NewExportStorage(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExportStoragePathStripsTraversal(t *testing.T) {
	exports, err := NewExportStorage(t.TempDir())
	require.NoError(t, err)

	p := exports.Path("../../etc/passwd")

	assert.Equal(t, filepath.Base(p), "passwd")
	assert.NotContains(t, p, "..")
}
