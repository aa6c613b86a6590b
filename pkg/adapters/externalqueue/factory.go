package externalqueue

import (
	"fmt"
	"log/slog"

	"github.com/jademcosta/logroller/pkg/adapters/externalqueue/noopqueue"
	"github.com/jademcosta/logroller/pkg/adapters/externalqueue/sqs"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/uploader"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v2"
)

type ExtQueueWithMetadata interface {
	uploader.ExternalQueue
	Type() string
	Name() string
}

func New(
	l *slog.Logger, metricRegistry *prometheus.Registry, conf *config.ExternalQueueConfig,
) (ExtQueueWithMetadata, error) {

	var externalQueue ExtQueueWithMetadata
	specificConf, err := yaml.Marshal(conf.Config)
	if err != nil {
		return nil, fmt.Errorf("error parsing external queue config: %w", err)
	}

	switch conf.Type {
	case noopqueue.TYPE, "":
		externalQueue = noopqueue.New(l)
	case sqs.TYPE:
		c, err := sqs.ParseConfig(specificConf)
		if err != nil {
			return nil, fmt.Errorf("error parsing SQS-specific config: %w", err)
		}

		externalQueue, err = sqs.New(l, c)
		if err != nil {
			return nil, fmt.Errorf("error creating SQS: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid external queue type %s", conf.Type)
	}

	return NewExternalQueueWithMetrics(externalQueue, metricRegistry), nil
}
