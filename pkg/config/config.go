package config

import (
	"gopkg.in/yaml.v2"
)

var allowedVals map[string][]string

func init() {
	allowedVals = map[string][]string{
		"log.level":         {"debug", "info", "warn", "error"},
		"log.format":        {"json", "console"},
		"compression.type":  {"", "gzip", "zip"},
		"compression.level": {"1", "2", "3", "4", "5", "6", "7", "8", "9"},
	}
}

type Config struct {
	Log             LogConfig           `yaml:"log"`
	Version         string              `yaml:"version"`
	API             APIConfig           `yaml:"api"`
	Tracing         TracingConfig       `yaml:"tracing"`
	Rollover        RolloverConfig      `yaml:"rollover"`
	Compression     CompressionConfig   `yaml:"compression"`
	Upload          UploadConfig        `yaml:"upload"`
	ObjectStorage   ObjectStorageConfig `yaml:"object_storage"`
	ExternalQueue   ExternalQueueConfig `yaml:"external_queue"`
	DisableMaxProcs bool                `yaml:"disable_max_procs"`
}

func New(confData []byte) (*Config, error) {
	c := &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},

		API: APIConfig{
			Port: 9010,
		},

		Rollover: RolloverConfig{
			RollingOnExit: true,
		},
	}

	err := yaml.Unmarshal(confData, &c)
	if err != nil {
		return nil, err
	}

	c.fillDefaultValues()

	err = c.validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) fillDefaultValues() {
	c.Rollover = c.Rollover.fillDefaultValues()
	c.Upload = c.Upload.fillDefaultValues()
	c.Tracing = c.Tracing.fillDefaultValues()
}

func (c *Config) validate() error {
	err := c.Log.validate()
	if err != nil {
		return err
	}

	err = c.API.validate()
	if err != nil {
		return err
	}

	err = c.Rollover.validate()
	if err != nil {
		return err
	}

	err = c.Compression.validate()
	if err != nil {
		return err
	}

	err = c.Upload.validate()
	if err != nil {
		return err
	}

	return c.ObjectStorage.validate()
}

func allowed(group []string, elem string) bool {
	for _, a := range group {
		if a == elem {
			return true
		}
	}
	return false
}

func allowedValues(key string) []string {
	return allowedVals[key]
}
