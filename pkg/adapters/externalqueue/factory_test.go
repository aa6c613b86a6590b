package externalqueue_test

import (
	"testing"

	"github.com/jademcosta/logroller/pkg/adapters/externalqueue"
	"github.com/jademcosta/logroller/pkg/adapters/externalqueue/noopqueue"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var llog = logger.NewDummy()

func TestFactoryDefaultsToTheNoopQueue(t *testing.T) {
	testCases := []string{"", noopqueue.TYPE}

	for _, queueType := range testCases {
		conf := &config.ExternalQueueConfig{Type: queueType}

		sut, err := externalqueue.New(llog, prometheus.NewRegistry(), conf)
		require.NoError(t, err, "should create the queue for type %q", queueType)
		assert.Equal(t, noopqueue.TYPE, sut.Type(), "the queue type should be noop for %q", queueType)

		err = sut.Enqueue(&domain.MessageContext{Bucket: "b", Path: "p"})
		assert.NoError(t, err, "the noop queue should accept anything")
	}
}

func TestFactoryFailsOnUnknownType(t *testing.T) {
	conf := &config.ExternalQueueConfig{Type: "kafka"}

	_, err := externalqueue.New(llog, prometheus.NewRegistry(), conf)
	assert.Error(t, err, "an unknown queue type should be refused")
}
