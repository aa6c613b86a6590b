package localstorage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jademcosta/logroller/pkg/adapters/objstorage/localstorage"
	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var llog = logger.NewDummy()

func TestUploadCopiesTheFileUnderTheKey(t *testing.T) {
	storageDir := t.TempDir()
	sourceDir := t.TempDir()

	artifact := filepath.Join(sourceDir, "app.2024-05-31.log.gz")
	require.NoError(t, os.WriteFile(artifact, []byte("compressed data"), 0644))

	sut, err := localstorage.New(llog, &localstorage.Config{Path: storageDir})
	require.NoError(t, err, "should create the storage")

	result, err := sut.Upload(context.Background(), &domain.UploadTask{
		LocalPath: artifact,
		Key:       "logs/app.2024-05-31.log.gz",
	})
	require.NoError(t, err, "the upload should succeed")

	data, err := os.ReadFile(filepath.Join(storageDir, "logs", "app.2024-05-31.log.gz"))
	assert.NoError(t, err, "the object should exist under the key")
	assert.Equal(t, "compressed data", string(data), "the object data should be unchanged")

	assert.Equal(t, "logs/app.2024-05-31.log.gz", result.Path, "the result should carry the key")
	assert.Equal(t, len("compressed data"), result.SizeInBytes, "the result should carry the size")
	assert.Equal(t, localstorage.TYPE, result.Bucket, "the result bucket should be the storage type")
}

func TestUploadFailsWhenTheLocalFileIsMissing(t *testing.T) {
	storageDir := t.TempDir()

	sut, err := localstorage.New(llog, &localstorage.Config{Path: storageDir})
	require.NoError(t, err, "should create the storage")

	_, err = sut.Upload(context.Background(), &domain.UploadTask{
		LocalPath: filepath.Join(storageDir, "does-not-exist.gz"),
		Key:       "whatever.gz",
	})
	assert.Error(t, err, "uploading a missing file should fail")
}

func TestNewRefusesInvalidPaths(t *testing.T) {
	_, err := localstorage.New(llog, &localstorage.Config{Path: "/does/not/exist/at/all"})
	assert.Error(t, err, "a nonexistent directory should be refused")

	dir := t.TempDir()
	file := filepath.Join(dir, "a-file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err = localstorage.New(llog, &localstorage.Config{Path: file})
	assert.Error(t, err, "a plain file should be refused as path")
}

func TestParseConfig(t *testing.T) {
	confData := []byte(`path: "/tmp/somewhere"`)

	conf, err := localstorage.ParseConfig(confData)
	require.NoError(t, err, "should parse the config")
	assert.Equal(t, "/tmp/somewhere", conf.Path, "should have parsed the correct path")
}
