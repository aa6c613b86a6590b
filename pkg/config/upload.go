package config

import (
	"errors"
	"time"
)

const (
	DefaultQueueMaxSize               = 1024
	DefaultCBFailureThreshold  uint32 = 5
	DefaultCBOpenIntervalMilli int64  = 60_000
)

type UploadConfig struct {
	Folder         string               `yaml:"folder"`
	QueueMaxSize   int                  `yaml:"queue_max_size"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	Enabled              bool   `yaml:"enabled"`
	FailureThreshold     uint32 `yaml:"failure_threshold"`
	OpenIntervalInMillis int64  `yaml:"open_interval_milliseconds"`
}

func (upConf UploadConfig) fillDefaultValues() UploadConfig {
	if upConf.QueueMaxSize == 0 {
		upConf.QueueMaxSize = DefaultQueueMaxSize
	}

	if upConf.CircuitBreaker.FailureThreshold == 0 {
		upConf.CircuitBreaker.FailureThreshold = DefaultCBFailureThreshold
	}

	if upConf.CircuitBreaker.OpenIntervalInMillis == 0 {
		upConf.CircuitBreaker.OpenIntervalInMillis = DefaultCBOpenIntervalMilli
	}

	return upConf
}

func (upConf UploadConfig) validate() error {
	if upConf.QueueMaxSize < 1 {
		return errors.New("upload.queue_max_size must be >= 1")
	}

	if upConf.CircuitBreaker.OpenIntervalInMillis < 0 {
		return errors.New("upload.circuit_breaker.open_interval_milliseconds cannot be negative")
	}

	return nil
}

func (cbConf CircuitBreakerConfig) OpenInterval() time.Duration {
	return time.Duration(cbConf.OpenIntervalInMillis) * time.Millisecond
}
