package config

import (
	"errors"
	"time"
)

const (
	DefaultCompressionTimeoutInMillis int64 = 5_000
	DefaultDrainTimeoutInMillis       int64 = 600_000
	DefaultTriggerIntervalInMillis    int64 = 3_600_000
)

type RolloverConfig struct {
	ActiveFile                 string `yaml:"active_file"`
	FileNamePattern            string `yaml:"file_name_pattern"`
	RollingOnExit              bool   `yaml:"rolling_on_exit"`
	TriggerIntervalInMillis    int64  `yaml:"trigger_interval_milliseconds"`
	CompressionTimeoutInMillis int64  `yaml:"compression_timeout_milliseconds"`
	DrainTimeoutInMillis       int64  `yaml:"drain_timeout_milliseconds"`
}

func (rollConf RolloverConfig) fillDefaultValues() RolloverConfig {
	if rollConf.CompressionTimeoutInMillis == 0 {
		rollConf.CompressionTimeoutInMillis = DefaultCompressionTimeoutInMillis
	}

	if rollConf.DrainTimeoutInMillis == 0 {
		rollConf.DrainTimeoutInMillis = DefaultDrainTimeoutInMillis
	}

	if rollConf.TriggerIntervalInMillis == 0 {
		rollConf.TriggerIntervalInMillis = DefaultTriggerIntervalInMillis
	}

	return rollConf
}

func (rollConf RolloverConfig) validate() error {
	if rollConf.ActiveFile == "" {
		return errors.New("rollover.active_file is mandatory")
	}

	if rollConf.FileNamePattern == "" {
		return errors.New("rollover.file_name_pattern is mandatory")
	}

	if rollConf.CompressionTimeoutInMillis < 0 ||
		rollConf.DrainTimeoutInMillis < 0 ||
		rollConf.TriggerIntervalInMillis < 0 {
		return errors.New("rollover timeouts and intervals cannot be negative")
	}

	return nil
}

func (rollConf RolloverConfig) CompressionTimeout() time.Duration {
	return time.Duration(rollConf.CompressionTimeoutInMillis) * time.Millisecond
}

func (rollConf RolloverConfig) DrainTimeout() time.Duration {
	return time.Duration(rollConf.DrainTimeoutInMillis) * time.Millisecond
}

func (rollConf RolloverConfig) TriggerInterval() time.Duration {
	return time.Duration(rollConf.TriggerIntervalInMillis) * time.Millisecond
}
