package objstorage_test

import (
	"testing"

	"github.com/jademcosta/logroller/pkg/adapters/objstorage"
	"github.com/jademcosta/logroller/pkg/adapters/objstorage/localstorage"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var llog = logger.NewDummy()

func TestFactoryCreatesLocalStorage(t *testing.T) {
	dir := t.TempDir()
	conf := &config.ObjectStorageConfig{
		Type:   localstorage.TYPE,
		Config: map[interface{}]interface{}{"path": dir},
	}

	sut, err := objstorage.New(llog, prometheus.NewRegistry(), conf)
	require.NoError(t, err, "should create the storage")
	assert.Equal(t, localstorage.TYPE, sut.Type(), "the storage type should be localstorage")
}

func TestFactoryFailsOnUnknownType(t *testing.T) {
	conf := &config.ObjectStorageConfig{Type: "ftp"}

	_, err := objstorage.New(llog, prometheus.NewRegistry(), conf)
	assert.Error(t, err, "an unknown storage type should be refused")
}

func TestFactoryFailsOnEmptyType(t *testing.T) {
	conf := &config.ObjectStorageConfig{}

	_, err := objstorage.New(llog, prometheus.NewRegistry(), conf)
	assert.Error(t, err, "an empty storage type should be refused")
}
