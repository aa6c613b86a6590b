package config_test

import (
	"testing"
	"time"

	"github.com/jademcosta/logroller/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestRolloverDurationHelpers(t *testing.T) {
	conf := config.RolloverConfig{
		TriggerIntervalInMillis:    1_500,
		CompressionTimeoutInMillis: 5_000,
		DrainTimeoutInMillis:       600_000,
	}

	assert.Equal(t, 1500*time.Millisecond, conf.TriggerInterval(),
		"trigger interval duration doesn't match")
	assert.Equal(t, 5*time.Second, conf.CompressionTimeout(),
		"compression timeout duration doesn't match")
	assert.Equal(t, 10*time.Minute, conf.DrainTimeout(),
		"drain timeout duration doesn't match")
}
