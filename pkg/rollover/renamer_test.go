package rollover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jademcosta/logroller/pkg/rollover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameMovesTheFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	dst := filepath.Join(dir, "app.log.123.tmp")
	require.NoError(t, os.WriteFile(src, []byte("some data"), 0644))

	err := rollover.Rename(src, dst)
	assert.NoError(t, err, "the rename should succeed")

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "the source should no longer exist")

	data, err := os.ReadFile(dst)
	assert.NoError(t, err, "the destination should exist")
	assert.Equal(t, "some data", string(data), "the data should be unchanged")
}

func TestRenameFailsWhenSourceIsMissing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "does-not-exist.log")
	dst := filepath.Join(dir, "app.log.123.tmp")

	err := rollover.Rename(src, dst)
	assert.Error(t, err, "renaming a missing file should fail")

	var rollErr *rollover.RolloverError
	assert.ErrorAs(t, err, &rollErr, "the error should be a RolloverError")
	assert.Equal(t, src, rollErr.Path, "the error should carry the source path")

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err), "no destination file should have been created")
}

func TestRenameRefusesToOverwriteAnExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	dst := filepath.Join(dir, "app.log.123.tmp")
	require.NoError(t, os.WriteFile(src, []byte("fresh data"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("older data"), 0644))

	err := rollover.Rename(src, dst)
	assert.Error(t, err, "renaming onto an existing target should fail")

	var rollErr *rollover.RolloverError
	assert.ErrorAs(t, err, &rollErr, "the error should be a RolloverError")

	data, err := os.ReadFile(src)
	assert.NoError(t, err, "the source should be left untouched")
	assert.Equal(t, "fresh data", string(data), "the source data should be unchanged")

	data, err = os.ReadFile(dst)
	assert.NoError(t, err, "the target should be left untouched")
	assert.Equal(t, "older data", string(data), "the target data should be unchanged")
}
